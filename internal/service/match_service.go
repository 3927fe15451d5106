package service

import (
	"errors"
	"fmt"

	"github.com/AdamBeresnev/bracket-generator/internal/bracket"
	"github.com/google/uuid"
)

// RecordWinner returns a new snapshot with the winner set on the match and
// copied into the slot of the match it feeds. Deciding the final crowns the
// champion. On error the input tournament is returned untouched.
func RecordWinner(tournament *bracket.Tournament, matchID uuid.UUID, winnerID uuid.UUID) (*bracket.Tournament, error) {
	updated := tournament.Clone()
	index := newMatchIndex(updated)

	match, ok := index.byID[matchID]
	if !ok {
		return tournament, fmt.Errorf("record winner for match %s: %w", matchID, ErrMatchNotFound)
	}
	if match.Winner != nil {
		return tournament, fmt.Errorf("record winner for match %s: %w", matchID, ErrMatchDecided)
	}

	// Verify winner is in the match
	slot, ok := match.SlotOf(winnerID)
	if !ok {
		return tournament, fmt.Errorf("record winner %s for match %s: %w", winnerID, matchID, ErrWinnerNotInMatch)
	}

	// A lone participant only walks over when no opponent can still arrive
	if match.IsBye() && !index.isDeadSlot(match, otherSlot(slot)) {
		return tournament, fmt.Errorf("record winner for match %s: %w", matchID, ErrMatchNotReady)
	}

	match.Winner = match.Occupant(slot)

	// Single level only, byes are not re-resolved here
	if next := index.next(match); next != nil {
		next.SetOccupant(*match.WinnerNextSlot, match.Winner)
	}

	updated.SyncChampion()
	return updated, nil
}

// ResetMatch undoes the result of a match and unwinds every downstream match
// that received it. Champion and status are derived again from the final.
func ResetMatch(tournament *bracket.Tournament, matchID uuid.UUID) (*bracket.Tournament, error) {
	updated := tournament.Clone()
	index := newMatchIndex(updated)

	match, ok := index.byID[matchID]
	if !ok {
		return tournament, fmt.Errorf("reset match %s: %w", matchID, ErrMatchNotFound)
	}
	if match.Winner == nil {
		return tournament, fmt.Errorf("reset match %s: %w", matchID, ErrNothingToReset)
	}

	index.clearDownstream(match)
	match.Winner = nil

	updated.SyncChampion()
	return updated, nil
}

func (ix *matchIndex) clearDownstream(match *bracket.Match) {
	next := ix.next(match)
	if next == nil {
		return
	}

	if next.Winner != nil {
		ix.clearDownstream(next)
		next.Winner = nil
	}
	next.SetOccupant(*match.WinnerNextSlot, nil)
}

// IgnoreNoop drops the errors for an unknown match or a match without a
// result, for callers that treat those operations as idempotent no-ops.
func IgnoreNoop(tournament *bracket.Tournament, err error) (*bracket.Tournament, error) {
	if errors.Is(err, ErrMatchNotFound) || errors.Is(err, ErrNothingToReset) {
		return tournament, nil
	}
	return tournament, err
}
