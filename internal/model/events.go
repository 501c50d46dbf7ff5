package model

import "time"

// EventType identifies the type of event
type EventType string

const (
	EventMoveSubmitted EventType = "move_submitted"
	EventRoundResolved EventType = "round_resolved"
	EventRoundReset    EventType = "round_reset"
	EventGameDeleted   EventType = "game_deleted"
)

// Event describes a change to the open round or the archive
type Event struct {
	Type      EventType
	Timestamp time.Time
	Player    string // move_submitted
	Move      Move   // move_submitted, winning move of round_resolved
	GameID    GameID // round_resolved, game_deleted
	Result    string // round_resolved
}
