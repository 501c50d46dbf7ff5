package locale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/rpslsgame/internal/model"
)

func TestParseMove(t *testing.T) {
	tests := []struct {
		name  string
		vocab Vocabulary
		input string
		want  model.Move
		ok    bool
	}{
		{"canonical", English, "Rock", model.Rock, true},
		{"lowercase", English, "spock", model.Spock, true},
		{"qualified", English, "Move Lizard", model.Lizard, true},
		{"qualified mixed case", English, "mOVE pAPER", model.Paper, true},
		{"surrounding space", English, "  Scissors ", model.Scissors, true},
		{"unknown", English, "Banana", "", false},
		{"substring is not a match", English, "Rocks", "", false},
		{"qualifier only", English, "Move", "", false},
		{"wrong qualifier", English, "Jogada Rock", "", false},
		{"portuguese name", Portuguese, "Tesoura", model.Scissors, true},
		{"portuguese qualified", Portuguese, "Jogada Pedra", model.Rock, true},
		{"english accepted in portuguese", Portuguese, "paper", model.Paper, true},
		{"empty", English, "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.vocab.ParseMove(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsResolveDirective(t *testing.T) {
	assert.True(t, English.IsResolveDirective("play"))
	assert.True(t, English.IsResolveDirective(" PLAY "))
	assert.False(t, English.IsResolveDirective("play now"))
	assert.False(t, English.IsResolveDirective("jogar"))
	assert.True(t, Portuguese.IsResolveDirective("Jogar"))
}

func TestSummary(t *testing.T) {
	assert.Equal(t, "Result Tie", English.Summary(model.Outcome{Tie: true}))
	assert.Equal(t, "Result Player1 Victory", English.Summary(model.Outcome{
		WinningMove: model.Rock,
		Winners:     []string{"Player1"},
	}))
	assert.Equal(t, "Result Player1 and Player2 and Player3 Victory", English.Summary(model.Outcome{
		WinningMove: model.Scissors,
		Winners:     []string{"Player1", "Player2", "Player3"},
	}))
	assert.Equal(t, "Resultado Jogador 1 e Jogador 2 Vitória", Portuguese.Summary(model.Outcome{
		WinningMove: model.Paper,
		Winners:     []string{"Jogador 1", "Jogador 2"},
	}))
	assert.Equal(t, "Resultado Empate", Portuguese.Summary(model.Outcome{Tie: true}))
}

func TestByName(t *testing.T) {
	v, err := ByName("")
	require.NoError(t, err)
	assert.Equal(t, LocaleEnglish, v.Name)

	v, err = ByName("PT")
	require.NoError(t, err)
	assert.Equal(t, LocalePortuguese, v.Name)

	v, err = ByName("pt-BR")
	require.NoError(t, err)
	assert.Equal(t, LocalePortuguese, v.Name)

	v, err = ByName("en-GB")
	require.NoError(t, err)
	assert.Equal(t, LocaleEnglish, v.Name)

	_, err = ByName("fr")
	assert.Error(t, err)

	_, err = ByName("not a tag!")
	assert.Error(t, err)
}

func TestMoveName(t *testing.T) {
	assert.Equal(t, "Lagarto", Portuguese.MoveName(model.Lizard))
	assert.Equal(t, "Lizard", English.MoveName(model.Lizard))
	assert.Equal(t, "Lizard", Vocabulary{}.MoveName(model.Lizard))
}

func TestParseMoveWithoutLocalizedNames(t *testing.T) {
	m, ok := Vocabulary{}.ParseMove("spock")
	require.True(t, ok)
	assert.Equal(t, model.Spock, m)
}
