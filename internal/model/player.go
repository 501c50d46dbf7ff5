package model

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// Player is a registered participant, identified by name
type Player struct {
	Name      string
	CreatedAt time.Time
}

// Key returns the identity key of the player
func (p *Player) Key() string {
	return NameKey(p.Name)
}

// NameKey folds a player name into its case-insensitive identity.
// Two names are the same player iff their keys are equal.
func NameKey(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}
