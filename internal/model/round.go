package model

import "time"

// RoundEntry is a single player's move in the open round
type RoundEntry struct {
	Player      string
	Move        Move
	SubmittedAt time.Time
}

// Round is the ordered set of entries submitted since the last resolution
type Round struct {
	Entries []RoundEntry
}

// Count returns the number of entries
func (r *Round) Count() int {
	return len(r.Entries)
}

// HasPlayer reports whether the player already has an entry
func (r *Round) HasPlayer(name string) bool {
	key := NameKey(name)
	for _, e := range r.Entries {
		if NameKey(e.Player) == key {
			return true
		}
	}
	return false
}

// HasMove reports whether any entry uses the move
func (r *Round) HasMove(move Move) bool {
	for _, e := range r.Entries {
		if e.Move == move {
			return true
		}
	}
	return false
}

// HasPrefix reports whether the round starts with exactly the given entries
func (r *Round) HasPrefix(entries []RoundEntry) bool {
	if len(entries) > len(r.Entries) {
		return false
	}
	for i, e := range entries {
		open := r.Entries[i]
		if NameKey(open.Player) != NameKey(e.Player) || open.Move != e.Move || !open.SubmittedAt.Equal(e.SubmittedAt) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the round
func (r *Round) Clone() *Round {
	entries := make([]RoundEntry, len(r.Entries))
	copy(entries, r.Entries)
	return &Round{Entries: entries}
}
