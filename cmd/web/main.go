package main

import (
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/AdamBeresnev/bracket-generator/internal/config"
	"github.com/AdamBeresnev/bracket-generator/internal/service"
	"github.com/AdamBeresnev/bracket-generator/internal/store"
	"github.com/alexedwards/scs/v2"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}

	level, _ := cfg.Level()
	logger := newLogger(cfg.LogFormat, level)
	slog.SetDefault(logger)

	sessionManager := scs.New()
	sessionManager.Lifetime = cfg.SessionLifetime

	tournamentService := service.NewTournamentService(
		store.NewTournamentStore(cfg.MaxHistory),
		service.NewBracketService(nil),
		logger,
	)

	router := newRouter(sessionManager, tournamentService)

	slog.Info("Server starting", "addr", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatal(err)
	}
}

func newLogger(format string, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
