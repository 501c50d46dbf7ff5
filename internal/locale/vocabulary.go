// Package locale holds the language-specific literals of the game: the
// command grammar, move names and result wording.
package locale

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"github.com/mcoot/rpslsgame/internal/model"
)

// Locale names
const (
	LocaleEnglish    = "en"
	LocalePortuguese = "pt"
)

// Vocabulary is the set of words used to parse commands and print results
type Vocabulary struct {
	Name string

	// Command grammar
	ResolveDirective string // Command that resolves the open round
	Separator        string // Splits "<player><sep><move>"
	Qualifier        string // Optional word preceding a move name

	// Localized move names; canonical English names are always accepted too
	MoveNames map[model.Move]string

	// Result wording
	ResultPrefix string
	VictoryWord  string
	TieWord      string
	WinnerJoiner string
}

// English is the default vocabulary
var English = Vocabulary{
	Name:             LocaleEnglish,
	ResolveDirective: "play",
	Separator:        " e ",
	Qualifier:        "Move",
	MoveNames: map[model.Move]string{
		model.Rock:     "Rock",
		model.Paper:    "Paper",
		model.Scissors: "Scissors",
		model.Lizard:   "Lizard",
		model.Spock:    "Spock",
	},
	ResultPrefix: "Result",
	VictoryWord:  "Victory",
	TieWord:      "Tie",
	WinnerJoiner: " and ",
}

// Portuguese follows the wording of the original jokenpo service
var Portuguese = Vocabulary{
	Name:             LocalePortuguese,
	ResolveDirective: "jogar",
	Separator:        " e ",
	Qualifier:        "Jogada",
	MoveNames: map[model.Move]string{
		model.Rock:     "Pedra",
		model.Paper:    "Papel",
		model.Scissors: "Tesoura",
		model.Lizard:   "Lagarto",
		model.Spock:    "Spock",
	},
	ResultPrefix: "Resultado",
	VictoryWord:  "Vitória",
	TieWord:      "Empate",
	WinnerJoiner: " e ",
}

// ByName returns the vocabulary for a BCP 47 locale tag. Regional tags
// such as "pt-BR" select the vocabulary of their base language.
func ByName(name string) (Vocabulary, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return English, nil
	}

	tag, err := language.Parse(name)
	if err != nil {
		return Vocabulary{}, fmt.Errorf("parse locale tag %q: %w", name, err)
	}
	base, _ := tag.Base()

	switch base.String() {
	case LocaleEnglish:
		return English, nil
	case LocalePortuguese:
		return Portuguese, nil
	default:
		return Vocabulary{}, fmt.Errorf("unknown locale %q", name)
	}
}

// IsResolveDirective reports whether the command asks to resolve the round
func (v Vocabulary) IsResolveDirective(command string) bool {
	return strings.EqualFold(strings.TrimSpace(command), v.ResolveDirective)
}

// ParseMove maps free text to a canonical move. Matching is exact and
// case-insensitive; a leading qualifier word ("Move Rock") is allowed.
func (v Vocabulary) ParseMove(text string) (model.Move, bool) {
	fields := strings.Fields(text)
	if len(fields) == 2 && strings.EqualFold(fields[0], v.Qualifier) {
		fields = fields[1:]
	}
	if len(fields) != 1 {
		return "", false
	}
	name := fields[0]

	for _, m := range model.AllMoves() {
		if strings.EqualFold(name, v.MoveName(m)) || strings.EqualFold(name, string(m)) {
			return m, true
		}
	}
	return "", false
}

// MoveName returns the localized name of a move
func (v Vocabulary) MoveName(m model.Move) string {
	if name, ok := v.MoveNames[m]; ok {
		return name
	}
	return string(m)
}

// Summary renders an outcome as the human-readable result line
func (v Vocabulary) Summary(outcome model.Outcome) string {
	if outcome.Tie || len(outcome.Winners) == 0 {
		return v.ResultPrefix + " " + v.TieWord
	}
	return v.ResultPrefix + " " + strings.Join(outcome.Winners, v.WinnerJoiner) + " " + v.VictoryWord
}
