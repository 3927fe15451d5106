package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/AdamBeresnev/bracket-generator/internal/bracket"
	"github.com/google/uuid"
)

var (
	ErrNotFound      = errors.New("tournament not found")
	ErrAlreadyExists = errors.New("tournament already exists")
	ErrStale         = errors.New("tournament was changed by another request")
	ErrNoHistory     = errors.New("no history entry to apply")
)

const DefaultMaxHistory = 50

type record struct {
	current *bracket.Tournament
	undo    []*bracket.Tournament
	redo    []*bracket.Tournament
}

// TournamentStore keeps tournament snapshots in memory for the lifetime of
// the process, together with their undo and redo history. Stored snapshots
// are never modified.
type TournamentStore struct {
	mu         sync.RWMutex
	records    map[uuid.UUID]*record
	maxHistory int
}

func NewTournamentStore(maxHistory int) *TournamentStore {
	if maxHistory <= 0 {
		maxHistory = DefaultMaxHistory
	}
	return &TournamentStore{
		records:    make(map[uuid.UUID]*record),
		maxHistory: maxHistory,
	}
}

func (s *TournamentStore) CreateTournament(ctx context.Context, tournament *bracket.Tournament) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[tournament.ID]; ok {
		return fmt.Errorf("create %s: %w", tournament.ID, ErrAlreadyExists)
	}
	s.records[tournament.ID] = &record{current: tournament}
	return nil
}

func (s *TournamentStore) GetTournament(ctx context.Context, id uuid.UUID) (*bracket.Tournament, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, fmt.Errorf("get %s: %w", id, ErrNotFound)
	}
	return rec.current, nil
}

// GetTournaments returns the current snapshots, newest first.
func (s *TournamentStore) GetTournaments(ctx context.Context) ([]*bracket.Tournament, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	tournaments := make([]*bracket.Tournament, 0, len(s.records))
	for _, rec := range s.records {
		tournaments = append(tournaments, rec.current)
	}
	s.mu.RUnlock()

	sort.Slice(tournaments, func(i, j int) bool {
		if !tournaments[i].CreatedAt.Equal(tournaments[j].CreatedAt) {
			return tournaments[i].CreatedAt.After(tournaments[j].CreatedAt)
		}
		return tournaments[i].Name < tournaments[j].Name
	})
	return tournaments, nil
}

// UpdateTournament replaces prev with next. It fails with ErrStale when prev
// is no longer the current snapshot.
func (s *TournamentStore) UpdateTournament(ctx context.Context, prev, next *bracket.Tournament) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[next.ID]
	if !ok {
		return fmt.Errorf("update %s: %w", next.ID, ErrNotFound)
	}
	if rec.current != prev {
		return fmt.Errorf("update %s: %w", next.ID, ErrStale)
	}

	rec.undo = s.push(rec.undo, rec.current)
	rec.redo = nil
	rec.current = next
	return nil
}

func (s *TournamentStore) Undo(ctx context.Context, id uuid.UUID) (*bracket.Tournament, error) {
	return s.step(ctx, id, true)
}

func (s *TournamentStore) Redo(ctx context.Context, id uuid.UUID) (*bracket.Tournament, error) {
	return s.step(ctx, id, false)
}

func (s *TournamentStore) step(ctx context.Context, id uuid.UUID, undo bool) (*bracket.Tournament, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, fmt.Errorf("history %s: %w", id, ErrNotFound)
	}

	from, to := &rec.redo, &rec.undo
	if undo {
		from, to = &rec.undo, &rec.redo
	}
	if len(*from) == 0 {
		return nil, fmt.Errorf("history %s: %w", id, ErrNoHistory)
	}

	last := len(*from) - 1
	restored := (*from)[last]
	*from = (*from)[:last]

	*to = s.push(*to, rec.current)
	rec.current = restored
	return restored, nil
}

// History reports how many undo and redo steps are available.
func (s *TournamentStore) History(ctx context.Context, id uuid.UUID) (int, int, error) {
	if err := ctx.Err(); err != nil {
		return 0, 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return 0, 0, fmt.Errorf("history %s: %w", id, ErrNotFound)
	}
	return len(rec.undo), len(rec.redo), nil
}

// GetTournamentWithHistory returns the current snapshot together with its
// undo and redo depths, read under a single lock.
func (s *TournamentStore) GetTournamentWithHistory(ctx context.Context, id uuid.UUID) (*bracket.Tournament, int, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, 0, 0, fmt.Errorf("tournament %s: %w", id, ErrNotFound)
	}
	return rec.current, len(rec.undo), len(rec.redo), nil
}

func (s *TournamentStore) DeleteTournament(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return fmt.Errorf("delete %s: %w", id, ErrNotFound)
	}
	delete(s.records, id)
	return nil
}

// push appends and drops the oldest entries beyond the history limit.
func (s *TournamentStore) push(stack []*bracket.Tournament, t *bracket.Tournament) []*bracket.Tournament {
	stack = append(stack, t)
	if over := len(stack) - s.maxHistory; over > 0 {
		stack = append([]*bracket.Tournament(nil), stack[over:]...)
	}
	return stack
}
