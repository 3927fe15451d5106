package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/AdamBeresnev/bracket-generator/internal/bracket"
	"github.com/AdamBeresnev/bracket-generator/internal/httputil"
	"github.com/AdamBeresnev/bracket-generator/internal/middleware"
	"github.com/AdamBeresnev/bracket-generator/internal/service"
	"github.com/AdamBeresnev/bracket-generator/internal/store"
	"github.com/AdamBeresnev/bracket-generator/views"
	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

type createTournamentRequest struct {
	Name        string               `json:"name"`
	Entries     []service.EntryInput `json:"entries"`
	EntriesText string               `json:"entries_text"`
}

type recordWinnerRequest struct {
	WinnerID string `json:"winner_id"`
}

func newRouter(sessionManager *scs.SessionManager, tournamentService *service.TournamentService) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(sessionManager.LoadAndSave)
	r.Use(middleware.LoadActiveTournament(sessionManager))

	// Writes the bracket view of the current snapshot of a tournament
	renderBracket := func(w http.ResponseWriter, r *http.Request, status int, id uuid.UUID) {
		data, err := tournamentService.GetTournamentData(r.Context(), id)
		if err != nil {
			handleServiceError(w, err)
			return
		}
		httputil.WriteJSON(w, status, bracketView(data))
	}

	r.Get("/rounds/label", func(w http.ResponseWriter, r *http.Request) {
		round, err := strconv.Atoi(r.URL.Query().Get("round"))
		if err != nil || round < 1 {
			httputil.BadRequest(w, "Invalid round", err)
			return
		}
		total, err := strconv.Atoi(r.URL.Query().Get("total"))
		if err != nil || total < round {
			httputil.BadRequest(w, "Invalid total rounds", err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"label": bracket.RoundLabel(round, total)})
	})

	r.Route("/tournaments", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			tournaments, err := tournamentService.ListTournaments(r.Context())
			if err != nil {
				httputil.InternalServerError(w, "Failed to get tournaments", err)
				return
			}
			httputil.WriteJSON(w, http.StatusOK, views.Summarize(tournaments))
		})

		r.Post("/", func(w http.ResponseWriter, r *http.Request) {
			var req createTournamentRequest
			if err := httputil.DecodeJSON(r, &req); err != nil {
				httputil.BadRequest(w, "Invalid request body", err)
				return
			}

			entries := req.Entries
			if req.EntriesText != "" {
				entries = append(entries, service.ParseEntries(req.EntriesText)...)
			}

			id, err := tournamentService.CreateTournament(r.Context(), req.Name, entries)
			if err != nil {
				handleServiceError(w, err)
				return
			}

			middleware.RememberTournament(r.Context(), sessionManager, id)
			w.Header().Set("Location", "/tournaments/"+id.String())
			renderBracket(w, r, http.StatusCreated, id)
		})

		r.Get("/current", func(w http.ResponseWriter, r *http.Request) {
			id, ok := middleware.GetTournamentIDFromContext(r.Context())
			if !ok {
				httputil.NotFound(w, "No active tournament", nil)
				return
			}
			renderBracket(w, r, http.StatusOK, id)
		})

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", func(w http.ResponseWriter, r *http.Request) {
				id, ok := parseIDParam(w, r, "id", "Invalid tournament ID")
				if !ok {
					return
				}
				data, err := tournamentService.GetTournamentData(r.Context(), id)
				if err != nil {
					handleServiceError(w, err)
					return
				}
				middleware.RememberTournament(r.Context(), sessionManager, id)
				httputil.WriteJSON(w, http.StatusOK, bracketView(data))
			})

			r.Delete("/", func(w http.ResponseWriter, r *http.Request) {
				id, ok := parseIDParam(w, r, "id", "Invalid tournament ID")
				if !ok {
					return
				}
				if err := tournamentService.DeleteTournament(r.Context(), id); err != nil {
					handleServiceError(w, err)
					return
				}
				if current, ok := middleware.GetTournamentIDFromContext(r.Context()); ok && current == id {
					middleware.ForgetTournament(r.Context(), sessionManager)
				}
				w.WriteHeader(http.StatusNoContent)
			})

			r.Post("/matches/{matchID}/winner", func(w http.ResponseWriter, r *http.Request) {
				id, ok := parseIDParam(w, r, "id", "Invalid tournament ID")
				if !ok {
					return
				}
				matchID, ok := parseIDParam(w, r, "matchID", "Invalid match ID")
				if !ok {
					return
				}

				var req recordWinnerRequest
				if err := httputil.DecodeJSON(r, &req); err != nil {
					httputil.BadRequest(w, "Invalid request body", err)
					return
				}
				winnerID, err := uuid.Parse(req.WinnerID)
				if err != nil {
					httputil.BadRequest(w, "Invalid winner ID", err)
					return
				}

				if _, err := tournamentService.AdvanceWinner(r.Context(), id, matchID, winnerID); err != nil {
					handleServiceError(w, err)
					return
				}
				renderBracket(w, r, http.StatusOK, id)
			})

			r.Post("/matches/{matchID}/reset", func(w http.ResponseWriter, r *http.Request) {
				id, ok := parseIDParam(w, r, "id", "Invalid tournament ID")
				if !ok {
					return
				}
				matchID, ok := parseIDParam(w, r, "matchID", "Invalid match ID")
				if !ok {
					return
				}

				if _, err := tournamentService.ResetMatch(r.Context(), id, matchID); err != nil {
					handleServiceError(w, err)
					return
				}
				renderBracket(w, r, http.StatusOK, id)
			})

			r.Post("/undo", func(w http.ResponseWriter, r *http.Request) {
				id, ok := parseIDParam(w, r, "id", "Invalid tournament ID")
				if !ok {
					return
				}
				if _, err := tournamentService.Undo(r.Context(), id); err != nil {
					handleServiceError(w, err)
					return
				}
				renderBracket(w, r, http.StatusOK, id)
			})

			r.Post("/redo", func(w http.ResponseWriter, r *http.Request) {
				id, ok := parseIDParam(w, r, "id", "Invalid tournament ID")
				if !ok {
					return
				}
				if _, err := tournamentService.Redo(r.Context(), id); err != nil {
					handleServiceError(w, err)
					return
				}
				renderBracket(w, r, http.StatusOK, id)
			})
		})
	})

	return r
}

func parseIDParam(w http.ResponseWriter, r *http.Request, param, msg string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		httputil.BadRequest(w, msg, err)
		return uuid.Nil, false
	}
	return id, true
}

func bracketView(data *service.TournamentData) views.BracketData {
	view := views.PrepareBracketData(data.Tournament)
	view.NextMatchID = data.NextMatchID
	view.CanUndo = data.UndoSteps > 0
	view.CanRedo = data.RedoSteps > 0
	return view
}

func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		httputil.NotFound(w, "Tournament not found", err)
	case errors.Is(err, service.ErrMatchNotFound):
		httputil.NotFound(w, "Match not found", err)
	case errors.Is(err, service.ErrNothingToReset):
		httputil.Conflict(w, "Match has no result to reset", err)
	case errors.Is(err, store.ErrNoHistory):
		httputil.Conflict(w, "Nothing to apply", err)
	case errors.Is(err, store.ErrStale):
		httputil.Conflict(w, "Tournament was changed by another request", err)
	case errors.Is(err, service.ErrWinnerNotInMatch),
		errors.Is(err, service.ErrMatchDecided),
		errors.Is(err, service.ErrMatchNotReady),
		errors.Is(err, service.ErrInvalidName),
		errors.Is(err, service.ErrNotEnoughParticipants),
		errors.Is(err, service.ErrDuplicateParticipant),
		errors.Is(err, service.ErrDuplicateSeed),
		errors.Is(err, service.ErrInvalidSeed),
		errors.Is(err, service.ErrEntryNameTooLong):
		httputil.BadRequest(w, err.Error(), err)
	default:
		httputil.InternalServerError(w, "Failed to process tournament", err)
	}
}
