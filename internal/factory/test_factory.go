package factory

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/mcoot/rpslsgame/internal/dependencies/mocks"
	"github.com/mcoot/rpslsgame/internal/locale"
	"github.com/mcoot/rpslsgame/internal/metrics"
	"github.com/mcoot/rpslsgame/internal/model"
	"github.com/mcoot/rpslsgame/internal/storage/memory"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock *mocks.MockClock
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	return NewTestAppWithVocabulary(locale.English)
}

// NewTestAppWithVocabulary creates a test App speaking the given vocabulary
func NewTestAppWithVocabulary(vocab locale.Vocabulary) *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	app := newWithDependencies(store, mockClock, vocab, metrics.New(), logger)

	return &TestApp{
		App:       app,
		MockClock: mockClock,
	}
}

// RegisterAll registers the given players and every move under its localized
// name
func (t *TestApp) RegisterAll(ctx context.Context, players ...string) error {
	for _, name := range players {
		if _, err := t.PlayerService.Create(ctx, name); err != nil {
			return err
		}
	}
	for _, m := range model.AllMoves() {
		if _, err := t.MoveService.Create(ctx, t.Vocabulary.MoveName(m)); err != nil {
			return err
		}
	}
	return nil
}
