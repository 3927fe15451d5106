package bracket

import (
	"github.com/google/uuid"
)

// Slot names one of the two participant positions of a match.
type Slot int

const (
	SlotOne Slot = 1
	SlotTwo Slot = 2
)

func (s Slot) String() string {
	switch s {
	case SlotOne:
		return "first"
	case SlotTwo:
		return "second"
	default:
		return "unknown"
	}
}

type Match struct {
	ID uuid.UUID `json:"id"`

	// Position in the tournament for reconstructing the view
	Round    int `json:"round"`
	Position int `json:"position"`

	Participant1 *Participant `json:"participant_1"`
	Participant2 *Participant `json:"participant_2"`
	Winner       *Participant `json:"winner"`

	// Both nil only for the final
	WinnerNextMatchID *uuid.UUID `json:"winner_next_match_id"`
	WinnerNextSlot    *Slot      `json:"winner_next_slot"`
}

func (m *Match) Occupant(slot Slot) *Participant {
	switch slot {
	case SlotOne:
		return m.Participant1
	case SlotTwo:
		return m.Participant2
	}
	return nil
}

func (m *Match) SetOccupant(slot Slot, p *Participant) {
	switch slot {
	case SlotOne:
		m.Participant1 = p
	case SlotTwo:
		m.Participant2 = p
	}
}

// SlotOf reports which slot the participant occupies.
func (m *Match) SlotOf(id uuid.UUID) (Slot, bool) {
	if m.Participant1.Is(id) {
		return SlotOne, true
	}
	if m.Participant2.Is(id) {
		return SlotTwo, true
	}
	return 0, false
}

func (m *Match) IsFinal() bool {
	return m.WinnerNextMatchID == nil
}

func (m *Match) IsDecided() bool {
	return m.Winner != nil
}

// IsBye is true when exactly one slot is occupied.
func (m *Match) IsBye() bool {
	return (m.Participant1 == nil) != (m.Participant2 == nil)
}

// IsPlayable is true when both slots are filled and no winner is recorded yet.
func (m *Match) IsPlayable() bool {
	return m.Participant1 != nil && m.Participant2 != nil && m.Winner == nil
}

func (m *Match) IsEmpty() bool {
	return m.Participant1 == nil && m.Participant2 == nil
}

// LoneOccupant returns the only participant of a bye match.
func (m *Match) LoneOccupant() *Participant {
	if !m.IsBye() {
		return nil
	}
	if m.Participant1 != nil {
		return m.Participant1
	}
	return m.Participant2
}

func (m *Match) IsWinner(slot Slot) bool {
	occupant := m.Occupant(slot)
	return m.Winner != nil && occupant != nil && occupant.ID == m.Winner.ID
}

func (m *Match) IsLoser(slot Slot) bool {
	return m.Winner != nil && m.Occupant(slot) != nil && !m.IsWinner(slot)
}
