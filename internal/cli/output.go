package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == FormatJSON {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == FormatJSON {
		data, _ := json.Marshal(map[string]string{"message": msg})
		_, _ = fmt.Fprintln(o.w, string(data))
	} else {
		_, _ = fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case []Player:
		o.printPlayers(v)
	case Move:
		o.printMove(v)
	case []Move:
		o.printMoves(v)
	case Round:
		o.printRound(v)
	case Game:
		o.printGame(v)
	case []Game:
		o.printGames(v)
	case PlayResult:
		o.printPlayResult(v)
	case HealthResult:
		o.printHealthResult(v)
	case Event:
		o.printEvent(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Move response type
type Move struct {
	Move      string    `json:"move"`
	Name      string    `json:"name"`
	Beats     []string  `json:"beats"`
	CreatedAt time.Time `json:"created_at"`
}

// RoundEntry response type
type RoundEntry struct {
	Player      string    `json:"player"`
	Move        string    `json:"move"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// Round response type
type Round struct {
	Entries []RoundEntry `json:"entries"`
}

// Game response type
type Game struct {
	ID          int64        `json:"id"`
	Entries     []RoundEntry `json:"entries"`
	Tie         bool         `json:"tie"`
	WinningMove string       `json:"winning_move,omitempty"`
	Winners     []string     `json:"winners"`
	Result      string       `json:"result"`
	ResolvedAt  time.Time    `json:"resolved_at"`
}

// PlayResult response type
type PlayResult struct {
	Result string `json:"result"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(o.w, format, args...)
}

func (o *Output) printPlayer(p Player) {
	o.printf("Player: %s\n", p.Name)
	o.printf("Registered: %s\n", p.CreatedAt.Format(time.RFC3339))
}

func (o *Output) printPlayers(players []Player) {
	if len(players) == 0 {
		o.printf("No players registered\n")
		return
	}
	o.printf("Players (%d):\n", len(players))
	for _, p := range players {
		o.printf("  - %s\n", p.Name)
	}
}

func (o *Output) printMove(m Move) {
	o.printf("Move: %s (%s)\n", m.Name, m.Move)
	if len(m.Beats) > 0 {
		o.printf("Beats: %s\n", strings.Join(m.Beats, ", "))
	}
	o.printf("Registered: %s\n", m.CreatedAt.Format(time.RFC3339))
}

func (o *Output) printMoves(moves []Move) {
	if len(moves) == 0 {
		o.printf("No moves registered\n")
		return
	}
	o.printf("Moves (%d):\n", len(moves))
	for _, m := range moves {
		o.printf("  - %s (%s)\n", m.Name, m.Move)
	}
}

func (o *Output) printEntries(entries []RoundEntry) {
	for _, e := range entries {
		o.printf("  - %s: %s\n", e.Player, e.Move)
	}
}

func (o *Output) printRound(r Round) {
	o.printf("Open round (%d moves):\n", len(r.Entries))
	o.printEntries(r.Entries)
}

func (o *Output) printGame(g Game) {
	o.printf("Game: %d\n", g.ID)
	o.printf("Resolved: %s\n", g.ResolvedAt.Format(time.RFC3339))
	o.printf("Moves:\n")
	o.printEntries(g.Entries)
	if g.Tie {
		o.printf("Outcome: tie\n")
	} else {
		o.printf("Winning move: %s\n", g.WinningMove)
		o.printf("Winners: %s\n", strings.Join(g.Winners, ", "))
	}
	o.printf("Result: %s\n", g.Result)
}

func (o *Output) printGames(games []Game) {
	if len(games) == 0 {
		o.printf("No games played\n")
		return
	}
	for _, g := range games {
		o.printf("%d\t%s\n", g.ID, g.Result)
	}
}

func (o *Output) printPlayResult(p PlayResult) {
	if p.Result == "" {
		o.printf("Move submitted\n")
		return
	}
	o.printf("%s\n", p.Result)
}

func (o *Output) printEvent(e Event) {
	switch {
	case e.Player != "":
		o.printf("%s: %s %s\n", e.Type, e.Player, e.Move)
	case e.Result != "":
		o.printf("%s: game %d: %s\n", e.Type, derefID(e.GameID), e.Result)
	case e.GameID != nil:
		o.printf("%s: game %d\n", e.Type, *e.GameID)
	default:
		o.printf("%s\n", e.Type)
	}
}

func derefID(id *int64) int64 {
	if id == nil {
		return 0
	}
	return *id
}

func (o *Output) printHealthResult(h HealthResult) {
	o.printf("Status: %s\n", h.Status)
}
