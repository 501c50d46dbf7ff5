package model

import "time"

// Move is one of the five canonical gestures
type Move string

const (
	Rock     Move = "Rock"
	Paper    Move = "Paper"
	Scissors Move = "Scissors"
	Lizard   Move = "Lizard"
	Spock    Move = "Spock"
)

// AllMoves returns the canonical moves in resolution order
func AllMoves() []Move {
	return []Move{Spock, Scissors, Paper, Rock, Lizard}
}

// IsValid reports whether m is one of the five canonical moves
func (m Move) IsValid() bool {
	switch m {
	case Rock, Paper, Scissors, Lizard, Spock:
		return true
	}
	return false
}

// String returns the canonical name
func (m Move) String() string {
	return string(m)
}

// RegisteredMove is a move admitted to the move registry
type RegisteredMove struct {
	Move      Move
	Name      string // text as registered, e.g. "Move Rock"
	CreatedAt time.Time
}
