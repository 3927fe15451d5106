package service

import (
	"github.com/AdamBeresnev/bracket-generator/internal/bracket"
	"github.com/google/uuid"
)

type feederKey struct {
	matchID uuid.UUID
	slot    bracket.Slot
}

// matchIndex maps ids to the matches of one snapshot so propagation walks the
// bracket in O(rounds). Pointers stay valid while the matches slice is not
// reallocated.
type matchIndex struct {
	byID    map[uuid.UUID]*bracket.Match
	feeders map[feederKey]*bracket.Match
}

func newMatchIndex(tournament *bracket.Tournament) *matchIndex {
	ix := &matchIndex{
		byID:    make(map[uuid.UUID]*bracket.Match, len(tournament.Matches)),
		feeders: make(map[feederKey]*bracket.Match, len(tournament.Matches)),
	}
	for i := range tournament.Matches {
		m := &tournament.Matches[i]
		ix.byID[m.ID] = m
		if m.WinnerNextMatchID != nil && m.WinnerNextSlot != nil {
			ix.feeders[feederKey{*m.WinnerNextMatchID, *m.WinnerNextSlot}] = m
		}
	}
	return ix
}

func (ix *matchIndex) next(m *bracket.Match) *bracket.Match {
	if m.WinnerNextMatchID == nil || m.WinnerNextSlot == nil {
		return nil
	}
	return ix.byID[*m.WinnerNextMatchID]
}

// isDeadSlot reports whether the slot can never receive a participant, which
// is the case when every round 1 match feeding it is empty.
func (ix *matchIndex) isDeadSlot(m *bracket.Match, slot bracket.Slot) bool {
	if m.Occupant(slot) != nil {
		return false
	}
	feeder, ok := ix.feeders[feederKey{m.ID, slot}]
	if !ok {
		return true
	}
	if feeder.Round == 1 {
		return feeder.IsEmpty()
	}
	return ix.isDeadSlot(feeder, bracket.SlotOne) && ix.isDeadSlot(feeder, bracket.SlotTwo)
}

func otherSlot(slot bracket.Slot) bracket.Slot {
	if slot == bracket.SlotOne {
		return bracket.SlotTwo
	}
	return bracket.SlotOne
}
