package service

import "errors"

var (
	ErrInvalidName           = errors.New("tournament name is required")
	ErrNotEnoughParticipants = errors.New("at least two participants are required")
	ErrDuplicateParticipant  = errors.New("duplicate participant id")
	ErrDuplicateSeed         = errors.New("duplicate seed")
	ErrInvalidSeed           = errors.New("seed must be a positive integer")
	ErrEntryNameTooLong      = errors.New("entry name is too long")

	ErrMatchNotFound    = errors.New("match not found")
	ErrNothingToReset   = errors.New("match has no result to reset")
	ErrWinnerNotInMatch = errors.New("winner is not part of this match")
	ErrMatchDecided     = errors.New("match already has a winner")
	ErrMatchNotReady    = errors.New("match is still waiting for an opponent")
)
