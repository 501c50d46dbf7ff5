package model

import "errors"

// Error kinds. Every sentinel below wraps exactly one of these, so callers can
// branch on errors.Is(err, ErrNotFound) without knowing the specific cause.
var (
	ErrBadRequest = errors.New("bad request")
	ErrConflict   = errors.New("conflict")
	ErrNotFound   = errors.New("not found")
)

type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

func newError(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound    = newError(ErrNotFound, "player not found")
	ErrPlayerExists      = newError(ErrConflict, "player already exists")
	ErrPlayerInRound     = newError(ErrConflict, "player is registered in the current round")
	ErrInvalidPlayerName = newError(ErrBadRequest, "player name is required")

	// Move errors
	ErrMoveNotFound = newError(ErrNotFound, "move not found")
	ErrMoveExists   = newError(ErrConflict, "move already exists")
	ErrMoveInRound  = newError(ErrConflict, "move is used in the current round")
	ErrInvalidMove  = newError(ErrBadRequest, "only Rock, Paper, Scissors, Lizard and Spock can be registered")

	// Round errors
	ErrNoActiveRound       = newError(ErrNotFound, "no active round")
	ErrAlreadyMoved        = newError(ErrConflict, "player has already moved this round")
	ErrInsufficientPlayers = newError(ErrBadRequest, "round has fewer than two players")
	ErrInvalidCommand      = newError(ErrBadRequest, "invalid command")
	ErrRoundChanged        = newError(ErrConflict, "round changed while it was being resolved")

	// Archive errors
	ErrGameNotFound = newError(ErrNotFound, "game not found")
)

// Kind returns the error kind of err, or nil if it carries none
func Kind(err error) error {
	for _, kind := range []error{ErrBadRequest, ErrConflict, ErrNotFound} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
