package bracket

import (
	"time"

	"github.com/google/uuid"
)

type TournamentStatus string

const (
	TournamentInProgress TournamentStatus = "in_progress"
	TournamentCompleted  TournamentStatus = "completed"
)

// Tournament is a snapshot of a single-elimination bracket. Snapshots are
// treated as immutable; progression returns a new one built with Clone.
type Tournament struct {
	ID           uuid.UUID        `json:"id"`
	Name         string           `json:"name"`
	Slug         string           `json:"slug"`
	Participants []Participant    `json:"participants"`
	Matches      []Match          `json:"matches"`
	Rounds       int              `json:"rounds"`
	Champion     *Participant     `json:"champion"`
	Status       TournamentStatus `json:"status"`
	CreatedAt    time.Time        `json:"created_at"`
}

type Progress struct {
	Decided int `json:"decided"`
	Total   int `json:"total"`
}

// Clone copies the participant and match collections. Participant values are
// never written through, so the pointers held by matches are shared.
func (t *Tournament) Clone() *Tournament {
	c := *t
	c.Participants = append([]Participant(nil), t.Participants...)
	c.Matches = append([]Match(nil), t.Matches...)
	return &c
}

func (t *Tournament) Match(id uuid.UUID) (*Match, bool) {
	for i := range t.Matches {
		if t.Matches[i].ID == id {
			return &t.Matches[i], true
		}
	}
	return nil, false
}

func (t *Tournament) MatchAt(round, position int) (*Match, bool) {
	for i := range t.Matches {
		if t.Matches[i].Round == round && t.Matches[i].Position == position {
			return &t.Matches[i], true
		}
	}
	return nil, false
}

func (t *Tournament) FinalMatch() *Match {
	for i := range t.Matches {
		if t.Matches[i].IsFinal() {
			return &t.Matches[i]
		}
	}
	return nil
}

func (t *Tournament) Participant(id uuid.UUID) (*Participant, bool) {
	for i := range t.Participants {
		if t.Participants[i].ID == id {
			return &t.Participants[i], true
		}
	}
	return nil, false
}

// SyncChampion derives the champion and status from the final match.
func (t *Tournament) SyncChampion() {
	final := t.FinalMatch()
	if final != nil && final.Winner != nil {
		t.Champion = final.Winner
		t.Status = TournamentCompleted
		return
	}
	t.Champion = nil
	t.Status = TournamentInProgress
}

// Progress counts decided matches against matches holding at least one
// participant. Byes count as decided.
func (t *Tournament) Progress() Progress {
	var p Progress
	for i := range t.Matches {
		if t.Matches[i].IsEmpty() {
			continue
		}
		p.Total++
		if t.Matches[i].IsDecided() {
			p.Decided++
		}
	}
	return p
}
