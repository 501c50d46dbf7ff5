package move

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/mcoot/rpslsgame/internal/dependencies/clock"
	"github.com/mcoot/rpslsgame/internal/locale"
	"github.com/mcoot/rpslsgame/internal/model"
	"github.com/mcoot/rpslsgame/internal/storage"
)

// Service handles the move registry. Only registered moves may be played.
type Service struct {
	storage storage.Storage
	vocab   locale.Vocabulary
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new move Service
func New(storage storage.Storage, vocab locale.Vocabulary, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		vocab:   vocab,
		clock:   clock,
		logger:  logger,
	}
}

// Create registers a move. The name must be one of the five moves, in the
// active locale or in English, optionally preceded by the qualifier word.
func (s *Service) Create(ctx context.Context, name string) (*model.RegisteredMove, error) {
	name = strings.TrimSpace(name)
	mv, ok := s.vocab.ParseMove(name)
	if !ok {
		return nil, model.ErrInvalidMove
	}

	if _, err := s.storage.GetMove(ctx, mv); err == nil {
		return nil, model.ErrMoveExists
	} else if !errors.Is(err, model.ErrMoveNotFound) {
		return nil, err
	}

	registered := &model.RegisteredMove{
		Move:      mv,
		Name:      name,
		CreatedAt: s.clock.Now(),
	}

	if err := s.storage.SaveMove(ctx, registered); err != nil {
		s.logger.Error("failed to save move",
			slog.String("move", string(mv)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.logger.Info("move created",
		slog.String("move", string(mv)),
		slog.String("name", name),
	)
	return registered, nil
}

// List returns all registered moves
func (s *Service) List(ctx context.Context) ([]*model.RegisteredMove, error) {
	return s.storage.ListMoves(ctx)
}

// Lookup resolves free text to a registered move. Text that names no move is
// reported as not found.
func (s *Service) Lookup(ctx context.Context, name string) (*model.RegisteredMove, error) {
	mv, ok := s.vocab.ParseMove(name)
	if !ok {
		return nil, model.ErrMoveNotFound
	}
	return s.storage.GetMove(ctx, mv)
}

// Exists reports whether the text names a registered move
func (s *Service) Exists(ctx context.Context, name string) (bool, error) {
	_, err := s.Lookup(ctx, name)
	if errors.Is(err, model.ErrMoveNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Delete unregisters a move. A move used in the open round cannot be deleted.
func (s *Service) Delete(ctx context.Context, name string) error {
	registered, err := s.Lookup(ctx, name)
	if err != nil {
		return err
	}

	if err := s.storage.DeleteMove(ctx, registered.Move); err != nil {
		return err
	}

	s.logger.Info("move deleted", slog.String("move", string(registered.Move)))
	return nil
}

// ServiceInterface defines the contract for the move registry
type ServiceInterface interface {
	Create(ctx context.Context, name string) (*model.RegisteredMove, error)
	List(ctx context.Context) ([]*model.RegisteredMove, error)
	Lookup(ctx context.Context, name string) (*model.RegisteredMove, error)
	Exists(ctx context.Context, name string) (bool, error)
	Delete(ctx context.Context, name string) error
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)
