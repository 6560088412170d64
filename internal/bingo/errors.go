package bingo

import "errors"

var (
	// ErrInvalidConfig is returned when a game cannot be generated from the
	// given options and song pool. It is reported before any random draw.
	ErrInvalidConfig = errors.New("invalid game configuration")
	// ErrConsistency means a ticket references a song that is not in the play
	// order. It indicates a bug, not a recoverable condition.
	ErrConsistency = errors.New("ticket inconsistent with play order")
	// ErrMalformedChecker is returned when a ticket checker file cannot be parsed.
	ErrMalformedChecker = errors.New("malformed ticket checker file")
	// ErrUnknownTicket is returned when a ticket number is not in the checker file.
	ErrUnknownTicket = errors.New("unknown ticket")
)
