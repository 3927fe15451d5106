package service

import (
	"context"
	"log/slog"

	"github.com/AdamBeresnev/bracket-generator/internal/bracket"
	"github.com/AdamBeresnev/bracket-generator/internal/store"
	"github.com/google/uuid"
)

type TournamentService struct {
	store   *store.TournamentStore
	builder *BracketGeneration
	logger  *slog.Logger
}

func NewTournamentService(store *store.TournamentStore, builder *BracketGeneration, logger *slog.Logger) *TournamentService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TournamentService{store: store, builder: builder, logger: logger}
}

type TournamentData struct {
	Tournament  *bracket.Tournament
	NextMatchID *uuid.UUID
	UndoSteps   int
	RedoSteps   int
}

func (s *TournamentService) CreateTournament(ctx context.Context, name string, entryInputs []EntryInput) (uuid.UUID, error) {
	participants, err := s.builder.NewParticipants(entryInputs)
	if err != nil {
		return uuid.Nil, err
	}

	tournament, err := s.builder.Build(participants, name)
	if err != nil {
		return uuid.Nil, err
	}

	if err := s.store.CreateTournament(ctx, tournament); err != nil {
		return uuid.Nil, err
	}

	s.logger.InfoContext(ctx, "tournament created",
		"tournament_id", tournament.ID,
		"participants", len(tournament.Participants),
		"rounds", tournament.Rounds,
		"matches", len(tournament.Matches))
	return tournament.ID, nil
}

func (s *TournamentService) GetTournamentData(ctx context.Context, id uuid.UUID) (*TournamentData, error) {
	tournament, undos, redos, err := s.store.GetTournamentWithHistory(ctx, id)
	if err != nil {
		return nil, err
	}

	var nextMatchID *uuid.UUID
	for _, m := range tournament.Matches {
		if m.IsPlayable() {
			id := m.ID
			nextMatchID = &id
			break
		}
	}

	return &TournamentData{
		Tournament:  tournament,
		NextMatchID: nextMatchID,
		UndoSteps:   undos,
		RedoSteps:   redos,
	}, nil
}

func (s *TournamentService) ListTournaments(ctx context.Context) ([]*bracket.Tournament, error) {
	return s.store.GetTournaments(ctx)
}

func (s *TournamentService) AdvanceWinner(ctx context.Context, tournamentID, matchID, winnerID uuid.UUID) (*bracket.Tournament, error) {
	return s.apply(ctx, tournamentID, "winner recorded", func(t *bracket.Tournament) (*bracket.Tournament, error) {
		return RecordWinner(t, matchID, winnerID)
	}, "match_id", matchID, "winner_id", winnerID)
}

func (s *TournamentService) ResetMatch(ctx context.Context, tournamentID, matchID uuid.UUID) (*bracket.Tournament, error) {
	return s.apply(ctx, tournamentID, "match reset", func(t *bracket.Tournament) (*bracket.Tournament, error) {
		return ResetMatch(t, matchID)
	}, "match_id", matchID)
}

func (s *TournamentService) Undo(ctx context.Context, tournamentID uuid.UUID) (*bracket.Tournament, error) {
	tournament, err := s.store.Undo(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	s.logger.DebugContext(ctx, "undo applied", "tournament_id", tournamentID, "status", tournament.Status)
	return tournament, nil
}

func (s *TournamentService) Redo(ctx context.Context, tournamentID uuid.UUID) (*bracket.Tournament, error) {
	tournament, err := s.store.Redo(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	s.logger.DebugContext(ctx, "redo applied", "tournament_id", tournamentID, "status", tournament.Status)
	return tournament, nil
}

func (s *TournamentService) DeleteTournament(ctx context.Context, tournamentID uuid.UUID) error {
	if err := s.store.DeleteTournament(ctx, tournamentID); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "tournament deleted", "tournament_id", tournamentID)
	return nil
}

// apply runs a progression operation against the current snapshot and stores
// the result as a new history entry.
func (s *TournamentService) apply(ctx context.Context, tournamentID uuid.UUID, msg string, op func(*bracket.Tournament) (*bracket.Tournament, error), attrs ...any) (*bracket.Tournament, error) {
	current, err := s.store.GetTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	updated, err := op(current)
	if err != nil {
		return nil, err
	}

	if err := s.store.UpdateTournament(ctx, current, updated); err != nil {
		return nil, err
	}

	attrs = append(attrs, "tournament_id", tournamentID, "status", updated.Status)
	if updated.Champion != nil {
		attrs = append(attrs, "champion", updated.Champion.Name)
	}
	s.logger.InfoContext(ctx, msg, attrs...)
	return updated, nil
}
