package player

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/mcoot/rpslsgame/internal/dependencies/clock"
	"github.com/mcoot/rpslsgame/internal/model"
	"github.com/mcoot/rpslsgame/internal/storage"
)

// Service handles the player registry
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new player Service
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger,
	}
}

// Create registers a new player. Names are unique case-insensitively.
func (s *Service) Create(ctx context.Context, name string) (*model.Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, model.ErrInvalidPlayerName
	}

	if _, err := s.storage.GetPlayer(ctx, name); err == nil {
		return nil, model.ErrPlayerExists
	} else if !errors.Is(err, model.ErrPlayerNotFound) {
		return nil, err
	}

	player := &model.Player{
		Name:      name,
		CreatedAt: s.clock.Now(),
	}

	if err := s.storage.SavePlayer(ctx, player); err != nil {
		s.logger.Error("failed to save player",
			slog.String("player", name),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.logger.Info("player created", slog.String("player", name))
	return player, nil
}

// List returns all players in registration order
func (s *Service) List(ctx context.Context) ([]*model.Player, error) {
	return s.storage.ListPlayers(ctx)
}

// Lookup returns the player with the given name
func (s *Service) Lookup(ctx context.Context, name string) (*model.Player, error) {
	return s.storage.GetPlayer(ctx, name)
}

// Exists reports whether a player with the given name is registered
func (s *Service) Exists(ctx context.Context, name string) (bool, error) {
	_, err := s.storage.GetPlayer(ctx, name)
	if errors.Is(err, model.ErrPlayerNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Delete removes a player. A player with an entry in the open round cannot
// be deleted.
func (s *Service) Delete(ctx context.Context, name string) error {
	player, err := s.storage.GetPlayer(ctx, name)
	if err != nil {
		return err
	}

	// Storage refuses atomically while the player is in the open round
	if err := s.storage.DeletePlayer(ctx, player.Name); err != nil {
		return err
	}

	s.logger.Info("player deleted", slog.String("player", player.Name))
	return nil
}

// ServiceInterface defines the contract for the player registry
type ServiceInterface interface {
	Create(ctx context.Context, name string) (*model.Player, error)
	List(ctx context.Context) ([]*model.Player, error)
	Lookup(ctx context.Context, name string) (*model.Player, error)
	Exists(ctx context.Context, name string) (bool, error)
	Delete(ctx context.Context, name string) error
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)
