package rules

import (
	"github.com/mcoot/rpslsgame/internal/model"
)

// dominance maps each move to the two moves it beats
var dominance = map[model.Move][2]model.Move{
	model.Spock:    {model.Scissors, model.Rock},
	model.Scissors: {model.Paper, model.Lizard},
	model.Paper:    {model.Rock, model.Spock},
	model.Rock:     {model.Lizard, model.Scissors},
	model.Lizard:   {model.Spock, model.Paper},
}

// Beats reports whether a defeats b. Both moves must be canonical.
func Beats(a, b model.Move) bool {
	for _, m := range dominance[a] {
		if m == b {
			return true
		}
	}
	return false
}

// Defeats returns the moves that a beats
func Defeats(a model.Move) []model.Move {
	beaten := dominance[a]
	return []model.Move{beaten[0], beaten[1]}
}

// Service resolves rounds under the dominance table
type Service struct{}

// New creates a new rules Service
func New() *Service {
	return &Service{}
}

// WinningMove returns the single surviving move category among the present
// moves: a move that is present, beats at least one other present move and is
// beaten by none. The second result is false when no such category exists.
//
// The table is a complete tournament (every pair of distinct moves has a
// winner), so at most one present move can be unbeaten.
func (s *Service) WinningMove(present map[model.Move]bool) (model.Move, bool) {
	for _, m := range model.AllMoves() {
		if !present[m] {
			continue
		}

		beatsSomething := false
		beaten := false
		for other := range present {
			if !present[other] || other == m {
				continue
			}
			if Beats(m, other) {
				beatsSomething = true
			}
			if Beats(other, m) {
				beaten = true
				break
			}
		}

		if beatsSomething && !beaten {
			return m, true
		}
	}
	return "", false
}

// Decide computes the outcome of a round. Winners are the players whose move
// equals the winning category, in submission order.
func (s *Service) Decide(entries []model.RoundEntry) model.Outcome {
	present := make(map[model.Move]bool, len(model.AllMoves()))
	for _, e := range entries {
		present[e.Move] = true
	}

	winning, ok := s.WinningMove(present)
	if !ok {
		return model.Outcome{Tie: true}
	}

	var winners []string
	for _, e := range entries {
		if e.Move == winning {
			winners = append(winners, e.Player)
		}
	}

	return model.Outcome{
		WinningMove: winning,
		Winners:     winners,
	}
}

// Interface for dependency injection
type ServiceInterface interface {
	WinningMove(present map[model.Move]bool) (model.Move, bool)
	Decide(entries []model.RoundEntry) model.Outcome
}

var _ ServiceInterface = (*Service)(nil)
