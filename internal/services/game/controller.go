package game

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/mcoot/rpslsgame/internal/dependencies/clock"
	"github.com/mcoot/rpslsgame/internal/locale"
	"github.com/mcoot/rpslsgame/internal/model"
	"github.com/mcoot/rpslsgame/internal/services/command"
	"github.com/mcoot/rpslsgame/internal/services/move"
	"github.com/mcoot/rpslsgame/internal/services/player"
	"github.com/mcoot/rpslsgame/internal/services/round"
	"github.com/mcoot/rpslsgame/internal/services/rules"
	"github.com/mcoot/rpslsgame/internal/storage"
)

// Metrics receives game events
type Metrics interface {
	MoveSubmitted()
	RoundResolved(tie bool)
	CommandFailed(err error)
}

// Publisher receives round and archive events
type Publisher interface {
	Publish(event model.Event)
}

// Controller coordinates the open round and the archive. Submissions and
// resolutions are serialized so a move cannot slip in between the snapshot
// and the archive write.
type Controller struct {
	mu sync.Mutex

	storage storage.Storage
	players player.ServiceInterface
	moves   move.ServiceInterface
	round   round.ServiceInterface
	rules   rules.ServiceInterface
	parser  *command.Parser
	vocab   locale.Vocabulary
	clock   clock.Clock
	metrics Metrics
	events  Publisher
	logger  *slog.Logger
}

// NewController creates a new game Controller
func NewController(
	storage storage.Storage,
	players player.ServiceInterface,
	moves move.ServiceInterface,
	round round.ServiceInterface,
	rules rules.ServiceInterface,
	vocab locale.Vocabulary,
	clock clock.Clock,
	metrics Metrics,
	events Publisher,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage: storage,
		players: players,
		moves:   moves,
		round:   round,
		rules:   rules,
		parser:  command.NewParser(vocab),
		vocab:   vocab,
		clock:   clock,
		metrics: metrics,
		events:  events,
		logger:  logger,
	}
}

// SubmitOrResolve interprets a play command. A submission returns an empty
// result; the resolve directive returns the result line of the archived game.
func (c *Controller) SubmitOrResolve(ctx context.Context, line string) (string, error) {
	result, err := c.dispatch(ctx, line)
	if err != nil {
		c.metrics.CommandFailed(err)
		c.logger.Debug("command rejected",
			slog.String("command", line),
			slog.String("error", err.Error()),
		)
		return "", err
	}
	return result, nil
}

func (c *Controller) dispatch(ctx context.Context, line string) (string, error) {
	cmd, err := c.parser.Parse(line)
	if err != nil {
		return "", err
	}

	switch cmd.Kind {
	case command.KindResolve:
		game, err := c.Resolve(ctx)
		if err != nil {
			return "", err
		}
		return game.Result, nil
	default:
		return "", c.Submit(ctx, cmd.Player, cmd.MoveText)
	}
}

// Submit enters a registered player's move into the open round
func (c *Controller) Submit(ctx context.Context, playerName, moveText string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, err := c.players.Lookup(ctx, playerName)
	if err != nil {
		return err
	}

	m, err := c.moves.Lookup(ctx, moveText)
	if err != nil {
		return err
	}

	// Storage rejects the entry if a registry delete won the race
	if err := c.round.Submit(ctx, p.Name, m.Move); err != nil {
		return err
	}

	c.metrics.MoveSubmitted()
	c.events.Publish(model.Event{
		Type:      model.EventMoveSubmitted,
		Timestamp: c.clock.Now(),
		Player:    p.Name,
		Move:      m.Move,
	})
	return nil
}

// maxResolveAttempts bounds retries when another server changes the round
// between the snapshot and the archive write
const maxResolveAttempts = 3

// Resolve decides the open round, archives it under the next game id and
// starts a new round
func (c *Controller) Resolve(ctx context.Context) (*model.ResolvedGame, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var err error
	for attempt := 0; attempt < maxResolveAttempts; attempt++ {
		var game *model.ResolvedGame
		game, err = c.resolveOnce(ctx)
		if !errors.Is(err, model.ErrRoundChanged) {
			return game, err
		}
		c.logger.Debug("round changed during resolve, retrying", slog.Int("attempt", attempt+1))
	}
	return nil, err
}

func (c *Controller) resolveOnce(ctx context.Context) (*model.ResolvedGame, error) {
	count, err := c.round.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count < 2 {
		return nil, model.ErrInsufficientPlayers
	}

	snapshot, err := c.round.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if snapshot.Count() < 2 {
		return nil, model.ErrInsufficientPlayers
	}

	outcome := c.rules.Decide(snapshot.Entries)
	result := c.vocab.Summary(outcome)

	game, err := c.storage.ArchiveRound(ctx, snapshot.Entries, outcome, result, c.clock.Now())
	if errors.Is(err, model.ErrRoundChanged) {
		return nil, err
	}
	if err != nil {
		c.logger.Error("failed to archive round",
			slog.Int("entries", len(snapshot.Entries)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.metrics.RoundResolved(outcome.Tie)
	c.events.Publish(model.Event{
		Type:      model.EventRoundResolved,
		Timestamp: game.ResolvedAt,
		Move:      outcome.WinningMove,
		GameID:    game.ID,
		Result:    result,
	})
	c.logger.Info("round resolved",
		slog.Int64("game_id", int64(game.ID)),
		slog.Int("entries", len(game.Entries)),
		slog.String("result", result),
	)
	return game, nil
}

// CurrentRound returns the entries of the open round
func (c *Controller) CurrentRound(ctx context.Context) (*model.Round, error) {
	return c.round.Snapshot(ctx)
}

// ResetRound discards the open round without archiving it
func (c *Controller) ResetRound(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.round.Reset(ctx); err != nil {
		return err
	}
	c.events.Publish(model.Event{Type: model.EventRoundReset, Timestamp: c.clock.Now()})
	return nil
}

// ListGames returns the archive ordered by id
func (c *Controller) ListGames(ctx context.Context) ([]*model.ResolvedGame, error) {
	return c.storage.ListGames(ctx)
}

// GetGame returns an archived game
func (c *Controller) GetGame(ctx context.Context, id model.GameID) (*model.ResolvedGame, error) {
	return c.storage.GetGame(ctx, id)
}

// DeleteGame removes an archived game. Its id is not reused.
func (c *Controller) DeleteGame(ctx context.Context, id model.GameID) error {
	if err := c.storage.DeleteGame(ctx, id); err != nil {
		return err
	}
	c.logger.Info("game deleted", slog.Int64("game_id", int64(id)))
	c.events.Publish(model.Event{Type: model.EventGameDeleted, Timestamp: c.clock.Now(), GameID: id})
	return nil
}

// ControllerInterface defines the contract for game operations
type ControllerInterface interface {
	SubmitOrResolve(ctx context.Context, line string) (string, error)
	Submit(ctx context.Context, playerName, moveText string) error
	Resolve(ctx context.Context) (*model.ResolvedGame, error)
	CurrentRound(ctx context.Context) (*model.Round, error)
	ResetRound(ctx context.Context) error
	ListGames(ctx context.Context) ([]*model.ResolvedGame, error)
	GetGame(ctx context.Context, id model.GameID) (*model.ResolvedGame, error)
	DeleteGame(ctx context.Context, id model.GameID) error
}

// Ensure Controller implements ControllerInterface
var _ ControllerInterface = (*Controller)(nil)
