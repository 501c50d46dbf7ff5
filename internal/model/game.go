package model

import "time"

// GameID identifies a resolved game in the archive
type GameID int64

// Outcome is the structured result of resolving a round
type Outcome struct {
	Tie         bool
	WinningMove Move     // Empty on tie
	Winners     []string // Submission order
}

// ResolvedGame is an archived, immutable snapshot of a resolved round
type ResolvedGame struct {
	ID         GameID
	Entries    []RoundEntry
	Outcome    Outcome
	Result     string // Human-readable summary as returned to the caller
	ResolvedAt time.Time
}
