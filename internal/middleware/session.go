package middleware

import (
	"context"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/google/uuid"
)

type ContextKey string

const TournamentIDKey ContextKey = "tournamentID"

const activeTournamentSessionKey = "tournamentID"

// LoadActiveTournament puts the tournament the session last worked on into
// the request context.
func LoadActiveTournament(sessionManager *scs.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			idStr := sessionManager.GetString(r.Context(), activeTournamentSessionKey)
			if idStr == "" {
				next.ServeHTTP(w, r)
				return
			}

			id, err := uuid.Parse(idStr)
			if err != nil {
				sessionManager.Remove(r.Context(), activeTournamentSessionKey)
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), TournamentIDKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func RememberTournament(ctx context.Context, sessionManager *scs.SessionManager, id uuid.UUID) {
	sessionManager.Put(ctx, activeTournamentSessionKey, id.String())
}

func ForgetTournament(ctx context.Context, sessionManager *scs.SessionManager) {
	sessionManager.Remove(ctx, activeTournamentSessionKey)
}

func GetTournamentIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	val := ctx.Value(TournamentIDKey)
	if val == nil {
		return uuid.Nil, false
	}

	id, ok := val.(uuid.UUID)
	return id, ok
}
