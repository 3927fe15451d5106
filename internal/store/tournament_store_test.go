package store

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/AdamBeresnev/bracket-generator/internal/bracket"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTournament(name string, createdAt time.Time) *bracket.Tournament {
	return &bracket.Tournament{
		ID:        uuid.New(),
		Name:      name,
		Status:    bracket.TournamentInProgress,
		CreatedAt: createdAt,
	}
}

// revision returns a copy of t with a different status so snapshots can be told apart
func revision(t *bracket.Tournament, status bracket.TournamentStatus) *bracket.Tournament {
	next := t.Clone()
	next.Status = status
	return next
}

func TestCreateAndGetTournament(t *testing.T) {
	ctx := context.Background()
	store := NewTournamentStore(0)

	tournament := newTournament("Test Tournament", time.Now().UTC())
	require.NoError(t, store.CreateTournament(ctx, tournament))

	fetched, err := store.GetTournament(ctx, tournament.ID)
	require.NoError(t, err)
	assert.Same(t, tournament, fetched)

	err = store.CreateTournament(ctx, tournament)
	assert.ErrorIs(t, err, ErrAlreadyExists)

	_, err = store.GetTournament(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetTournamentsNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := NewTournamentStore(0)

	now := time.Now().UTC()
	older := newTournament("Older", now.Add(-time.Hour))
	newer := newTournament("Newer", now)
	require.NoError(t, store.CreateTournament(ctx, older))
	require.NoError(t, store.CreateTournament(ctx, newer))

	tournaments, err := store.GetTournaments(ctx)
	require.NoError(t, err)
	require.Len(t, tournaments, 2)
	assert.Equal(t, "Newer", tournaments[0].Name)
	assert.Equal(t, "Older", tournaments[1].Name)
}

func TestUpdateUndoRedo(t *testing.T) {
	ctx := context.Background()
	store := NewTournamentStore(0)

	first := newTournament("History", time.Now().UTC())
	require.NoError(t, store.CreateTournament(ctx, first))

	second := revision(first, bracket.TournamentCompleted)
	require.NoError(t, store.UpdateTournament(ctx, first, second))

	undos, redos, err := store.History(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, undos)
	assert.Equal(t, 0, redos)

	restored, err := store.Undo(ctx, first.ID)
	require.NoError(t, err)
	assert.Same(t, first, restored)

	_, err = store.Undo(ctx, first.ID)
	assert.ErrorIs(t, err, ErrNoHistory)

	redone, err := store.Redo(ctx, first.ID)
	require.NoError(t, err)
	assert.Same(t, second, redone)

	_, err = store.Redo(ctx, first.ID)
	assert.ErrorIs(t, err, ErrNoHistory)

	// A new update after undo discards the redo branch
	_, err = store.Undo(ctx, first.ID)
	require.NoError(t, err)
	third := revision(first, bracket.TournamentInProgress)
	require.NoError(t, store.UpdateTournament(ctx, first, third))

	undos, redos, err = store.History(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, undos)
	assert.Equal(t, 0, redos)
}

func TestUpdateRejectsStaleSnapshot(t *testing.T) {
	ctx := context.Background()
	store := NewTournamentStore(0)

	first := newTournament("Stale", time.Now().UTC())
	require.NoError(t, store.CreateTournament(ctx, first))
	require.NoError(t, store.UpdateTournament(ctx, first, revision(first, bracket.TournamentCompleted)))

	err := store.UpdateTournament(ctx, first, revision(first, bracket.TournamentInProgress))
	assert.ErrorIs(t, err, ErrStale)

	err = store.UpdateTournament(ctx, first, newTournament("Unknown", time.Now()))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestHistoryLimit(t *testing.T) {
	ctx := context.Background()
	store := NewTournamentStore(2)

	current := newTournament("Limited", time.Now().UTC())
	require.NoError(t, store.CreateTournament(ctx, current))

	for i := 0; i < 5; i++ {
		next := revision(current, bracket.TournamentInProgress)
		require.NoError(t, store.UpdateTournament(ctx, current, next))
		current = next
	}

	undos, _, err := store.History(ctx, current.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, undos)
}

func TestGetTournamentWithHistory(t *testing.T) {
	ctx := context.Background()
	store := NewTournamentStore(1000)

	current := newTournament("0", time.Now().UTC())
	require.NoError(t, store.CreateTournament(ctx, current))

	_, _, _, err := store.GetTournamentWithHistory(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)

	const steps = 200
	id := current.ID

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 1; i <= steps; i++ {
			next := current.Clone()
			next.Name = strconv.Itoa(i)
			if err := store.UpdateTournament(ctx, current, next); err != nil {
				return
			}
			current = next
		}
	}()

	// Every snapshot named n sits on top of exactly n undo steps
	for {
		tournament, undos, redos, err := store.GetTournamentWithHistory(ctx, id)
		require.NoError(t, err)
		require.Equal(t, strconv.Itoa(undos), tournament.Name)
		require.Equal(t, 0, redos)
		if undos == steps {
			break
		}
	}
	wg.Wait()

	_, err = store.Undo(ctx, id)
	require.NoError(t, err)
	tournament, undos, redos, err := store.GetTournamentWithHistory(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, strconv.Itoa(steps-1), tournament.Name)
	assert.Equal(t, steps-1, undos)
	assert.Equal(t, 1, redos)
}

func TestDeleteTournament(t *testing.T) {
	ctx := context.Background()
	store := NewTournamentStore(0)

	tournament := newTournament("Delete me", time.Now().UTC())
	require.NoError(t, store.CreateTournament(ctx, tournament))
	require.NoError(t, store.DeleteTournament(ctx, tournament.ID))

	_, err := store.GetTournament(ctx, tournament.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, store.DeleteTournament(ctx, tournament.ID), ErrNotFound)
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := NewTournamentStore(0)
	_, err := store.GetTournaments(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
