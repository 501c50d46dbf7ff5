package round

import (
	"context"
	"log/slog"

	"github.com/mcoot/rpslsgame/internal/dependencies/clock"
	"github.com/mcoot/rpslsgame/internal/model"
	"github.com/mcoot/rpslsgame/internal/storage"
)

// Service manages the open round
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new round Service
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger,
	}
}

// Submit appends the player's move to the open round, opening one if needed.
// Fails with model.ErrAlreadyMoved if the player already has an entry.
func (s *Service) Submit(ctx context.Context, player string, move model.Move) error {
	entry := model.RoundEntry{
		Player:      player,
		Move:        move,
		SubmittedAt: s.clock.Now(),
	}

	if err := s.storage.AddRoundEntry(ctx, entry); err != nil {
		return err
	}

	s.logger.Debug("move submitted",
		slog.String("player", player),
		slog.String("move", string(move)),
	)
	return nil
}

// Count returns the number of entries in the open round
func (s *Service) Count(ctx context.Context) (int, error) {
	return s.storage.CountRoundEntries(ctx)
}

// Snapshot returns a copy of the open round.
// Fails with model.ErrNoActiveRound when nothing has been submitted.
func (s *Service) Snapshot(ctx context.Context) (*model.Round, error) {
	return s.storage.GetRound(ctx)
}

// Reset discards the open round
func (s *Service) Reset(ctx context.Context) error {
	if err := s.storage.ClearRound(ctx); err != nil {
		return err
	}
	s.logger.Info("round reset")
	return nil
}

// ServiceInterface defines the contract for round operations
type ServiceInterface interface {
	Submit(ctx context.Context, player string, move model.Move) error
	Count(ctx context.Context) (int, error)
	Snapshot(ctx context.Context) (*model.Round, error)
	Reset(ctx context.Context) error
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)
