package response

import (
	"time"

	"github.com/mcoot/rpslsgame/internal/model"
	"github.com/mcoot/rpslsgame/internal/services/rules"
)

// Player represents a player in API responses
type Player struct {
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		Name:      p.Name,
		CreatedAt: p.CreatedAt,
	}
}

// PlayersFromModel converts a player list
func PlayersFromModel(players []*model.Player) []Player {
	out := make([]Player, len(players))
	for i, p := range players {
		out[i] = PlayerFromModel(p)
	}
	return out
}

// Move represents a registered move
type Move struct {
	Move      string    `json:"move"`
	Name      string    `json:"name"`
	Beats     []string  `json:"beats"`
	CreatedAt time.Time `json:"created_at"`
}

// MoveFromModel converts a model.RegisteredMove
func MoveFromModel(m *model.RegisteredMove) Move {
	defeated := rules.Defeats(m.Move)
	beats := make([]string, len(defeated))
	for i, d := range defeated {
		beats[i] = string(d)
	}
	return Move{
		Move:      string(m.Move),
		Name:      m.Name,
		Beats:     beats,
		CreatedAt: m.CreatedAt,
	}
}

// MovesFromModel converts a move list
func MovesFromModel(moves []*model.RegisteredMove) []Move {
	out := make([]Move, len(moves))
	for i, m := range moves {
		out[i] = MoveFromModel(m)
	}
	return out
}

// RoundEntry is a single move in a round
type RoundEntry struct {
	Player      string    `json:"player"`
	Move        string    `json:"move"`
	SubmittedAt time.Time `json:"submitted_at"`
}

func roundEntriesFromModel(entries []model.RoundEntry) []RoundEntry {
	out := make([]RoundEntry, len(entries))
	for i, e := range entries {
		out[i] = RoundEntry{
			Player:      e.Player,
			Move:        string(e.Move),
			SubmittedAt: e.SubmittedAt,
		}
	}
	return out
}

// Round represents the open round
type Round struct {
	Entries []RoundEntry `json:"entries"`
}

// RoundFromModel converts a model.Round
func RoundFromModel(r *model.Round) Round {
	return Round{Entries: roundEntriesFromModel(r.Entries)}
}

// Game represents an archived game
type Game struct {
	ID          int64        `json:"id"`
	Entries     []RoundEntry `json:"entries"`
	Tie         bool         `json:"tie"`
	WinningMove string       `json:"winning_move,omitempty"`
	Winners     []string     `json:"winners"`
	Result      string       `json:"result"`
	ResolvedAt  time.Time    `json:"resolved_at"`
}

// GameFromModel converts a model.ResolvedGame
func GameFromModel(g *model.ResolvedGame) Game {
	winners := g.Outcome.Winners
	if winners == nil {
		winners = []string{}
	}
	return Game{
		ID:          int64(g.ID),
		Entries:     roundEntriesFromModel(g.Entries),
		Tie:         g.Outcome.Tie,
		WinningMove: string(g.Outcome.WinningMove),
		Winners:     winners,
		Result:      g.Result,
		ResolvedAt:  g.ResolvedAt,
	}
}

// GamesFromModel converts a game list
func GamesFromModel(games []*model.ResolvedGame) []Game {
	out := make([]Game, len(games))
	for i, g := range games {
		out[i] = GameFromModel(g)
	}
	return out
}

// PlayResponse is the response to a play command. Result is empty for a
// submitted move.
type PlayResponse struct {
	Result string `json:"result"`
}
