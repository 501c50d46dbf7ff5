package command

import (
	"strings"

	"github.com/mcoot/rpslsgame/internal/locale"
	"github.com/mcoot/rpslsgame/internal/model"
)

// Kind identifies what a command asks for
type Kind int

const (
	KindSubmit Kind = iota
	KindResolve
)

func (k Kind) String() string {
	switch k {
	case KindSubmit:
		return "submit"
	case KindResolve:
		return "resolve"
	default:
		return "unknown"
	}
}

// Command is a parsed play command
type Command struct {
	Kind     Kind
	Player   string // Set for KindSubmit
	MoveText string // Set for KindSubmit; resolved against the move registry
}

// Parser turns free-text commands into Commands
type Parser struct {
	vocab locale.Vocabulary
}

// NewParser creates a Parser for the given vocabulary
func NewParser(vocab locale.Vocabulary) *Parser {
	return &Parser{vocab: vocab}
}

// Parse interprets a command line: either the resolve directive, or
// "<player><separator><move>" with exactly two non-empty tokens
func (p *Parser) Parse(line string) (Command, error) {
	if p.vocab.IsResolveDirective(line) {
		return Command{Kind: KindResolve}, nil
	}

	tokens := strings.Split(line, p.vocab.Separator)
	if len(tokens) != 2 {
		return Command{}, model.ErrInvalidCommand
	}

	player := strings.TrimSpace(tokens[0])
	moveText := strings.TrimSpace(tokens[1])
	if player == "" || moveText == "" {
		return Command{}, model.ErrInvalidCommand
	}

	return Command{
		Kind:     KindSubmit,
		Player:   player,
		MoveText: moveText,
	}, nil
}
