package factory

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mcoot/rpslsgame/internal/dependencies/clock"
	"github.com/mcoot/rpslsgame/internal/events"
	"github.com/mcoot/rpslsgame/internal/locale"
	"github.com/mcoot/rpslsgame/internal/metrics"
	"github.com/mcoot/rpslsgame/internal/services/game"
	"github.com/mcoot/rpslsgame/internal/services/move"
	"github.com/mcoot/rpslsgame/internal/services/player"
	"github.com/mcoot/rpslsgame/internal/services/round"
	"github.com/mcoot/rpslsgame/internal/services/rules"
	"github.com/mcoot/rpslsgame/internal/storage"
	"github.com/mcoot/rpslsgame/internal/storage/memory"
	redisstorage "github.com/mcoot/rpslsgame/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock clock.Clock

	// Language of commands and results
	Vocabulary locale.Vocabulary

	// Observability
	Logger  *slog.Logger
	Metrics *metrics.Metrics
	Events  *events.Hub

	// Services
	RulesService   *rules.Service
	PlayerService  *player.Service
	MoveService    *move.Service
	RoundService   *round.Service
	GameController *game.Controller
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// Locale selects the command and result vocabulary ("en" or "pt")
	// If empty, defaults to English
	Locale string
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	vocab, err := locale.ByName(cfg.Locale)
	if err != nil {
		return nil, err
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	return newWithDependencies(store, clock.New(), vocab, metrics.New(), logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, vocab locale.Vocabulary, m *metrics.Metrics, logger *slog.Logger) *App {
	rulesService := rules.New()
	playerService := player.New(store, clk, logger)
	moveService := move.New(store, vocab, clk, logger)
	roundService := round.New(store, clk, logger)
	hub := events.NewHub(logger)
	go hub.Run()
	gameController := game.NewController(store, playerService, moveService, roundService, rulesService, vocab, clk, m, hub, logger)

	return &App{
		Storage:        store,
		Clock:          clk,
		Vocabulary:     vocab,
		Logger:         logger,
		Metrics:        m,
		Events:         hub,
		RulesService:   rulesService,
		PlayerService:  playerService,
		MoveService:    moveService,
		RoundService:   roundService,
		GameController: gameController,
	}
}

// Close disconnects event subscribers and releases storage connections
func (a *App) Close() error {
	a.Events.Close()
	if closer, ok := a.Storage.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
