package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/rpslsgame/internal/model"
	"github.com/mcoot/rpslsgame/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return NewWithClient(client, cfg), nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	if cfg.MaxTxRetries <= 0 {
		cfg.MaxTxRetries = DefaultConfig().MaxTxRetries
	}
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	data, err := json.Marshal(player)
	if err != nil {
		return err
	}
	return s.client.HSet(ctx, playersKey(), player.Key(), data).Err()
}

func (s *Storage) GetPlayer(ctx context.Context, name string) (*model.Player, error) {
	data, err := s.client.HGet(ctx, playersKey(), model.NameKey(name)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var player model.Player
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	values, err := s.client.HVals(ctx, playersKey()).Result()
	if err != nil {
		return nil, err
	}

	players := make([]*model.Player, 0, len(values))
	for _, val := range values {
		var player model.Player
		if err := json.Unmarshal([]byte(val), &player); err != nil {
			continue // Skip invalid data
		}
		players = append(players, &player)
	}

	// Registration order, name as tie-break
	sort.SliceStable(players, func(i, j int) bool {
		if !players[i].CreatedAt.Equal(players[j].CreatedAt) {
			return players[i].CreatedAt.Before(players[j].CreatedAt)
		}
		return players[i].Key() < players[j].Key()
	})
	return players, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, name string) error {
	txf := func(tx *redis.Tx) error {
		round, err := readRound(ctx, tx)
		if err != nil {
			return err
		}
		if round.HasPlayer(name) {
			return model.ErrPlayerInRound
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HDel(ctx, playersKey(), model.NameKey(name))
			return nil
		})
		return err
	}
	return s.watch(ctx, "delete player", txf, roundKey())
}

// Move operations

func (s *Storage) SaveMove(ctx context.Context, move *model.RegisteredMove) error {
	data, err := json.Marshal(move)
	if err != nil {
		return err
	}
	return s.client.HSet(ctx, movesKey(), string(move.Move), data).Err()
}

func (s *Storage) GetMove(ctx context.Context, move model.Move) (*model.RegisteredMove, error) {
	data, err := s.client.HGet(ctx, movesKey(), string(move)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrMoveNotFound
		}
		return nil, err
	}

	var m model.RegisteredMove
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *Storage) ListMoves(ctx context.Context) ([]*model.RegisteredMove, error) {
	values, err := s.client.HVals(ctx, movesKey()).Result()
	if err != nil {
		return nil, err
	}

	moves := make([]*model.RegisteredMove, 0, len(values))
	for _, val := range values {
		var m model.RegisteredMove
		if err := json.Unmarshal([]byte(val), &m); err != nil {
			continue // Skip invalid data
		}
		moves = append(moves, &m)
	}

	sort.SliceStable(moves, func(i, j int) bool {
		if !moves[i].CreatedAt.Equal(moves[j].CreatedAt) {
			return moves[i].CreatedAt.Before(moves[j].CreatedAt)
		}
		return moves[i].Move < moves[j].Move
	})
	return moves, nil
}

func (s *Storage) DeleteMove(ctx context.Context, move model.Move) error {
	txf := func(tx *redis.Tx) error {
		round, err := readRound(ctx, tx)
		if err != nil {
			return err
		}
		if round.HasMove(move) {
			return model.ErrMoveInRound
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HDel(ctx, movesKey(), string(move))
			return nil
		})
		return err
	}
	return s.watch(ctx, "delete move", txf, roundKey())
}

// Round operations

func (s *Storage) AddRoundEntry(ctx context.Context, entry model.RoundEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	// Optimistic lock on the round and both registries: the checks and the
	// append must observe the same state
	txf := func(tx *redis.Tx) error {
		registered, err := tx.HExists(ctx, playersKey(), model.NameKey(entry.Player)).Result()
		if err != nil {
			return err
		}
		if !registered {
			return model.ErrPlayerNotFound
		}
		registered, err = tx.HExists(ctx, movesKey(), string(entry.Move)).Result()
		if err != nil {
			return err
		}
		if !registered {
			return model.ErrMoveNotFound
		}

		round, err := readRound(ctx, tx)
		if err != nil {
			return err
		}
		if round.HasPlayer(entry.Player) {
			return model.ErrAlreadyMoved
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.RPush(ctx, roundKey(), data)
			return nil
		})
		return err
	}
	return s.watch(ctx, "add round entry", txf, roundKey(), playersKey(), movesKey())
}

func (s *Storage) GetRound(ctx context.Context) (*model.Round, error) {
	round, err := readRound(ctx, s.client)
	if err != nil {
		return nil, err
	}
	if round.Count() == 0 {
		return nil, model.ErrNoActiveRound
	}
	return round, nil
}

func (s *Storage) CountRoundEntries(ctx context.Context) (int, error) {
	n, err := s.client.LLen(ctx, roundKey()).Result()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func (s *Storage) ClearRound(ctx context.Context) error {
	return s.client.Del(ctx, roundKey()).Err()
}

// watch runs txf under WATCH on keys, retrying while other clients change
// them before EXEC
func (s *Storage) watch(ctx context.Context, op string, txf func(*redis.Tx) error, keys ...string) error {
	for i := 0; i < s.cfg.MaxTxRetries; i++ {
		err := s.client.Watch(ctx, txf, keys...)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return fmt.Errorf("%s: %w", op, redis.TxFailedErr)
}

// listReader is satisfied by both *redis.Client and *redis.Tx
type listReader interface {
	LRange(ctx context.Context, key string, start, stop int64) *redis.StringSliceCmd
}

// readRound loads the round list; an empty list is an empty round
func readRound(ctx context.Context, c listReader) (*model.Round, error) {
	values, err := c.LRange(ctx, roundKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	round := &model.Round{Entries: make([]model.RoundEntry, 0, len(values))}
	for _, val := range values {
		var entry model.RoundEntry
		if err := json.Unmarshal([]byte(val), &entry); err != nil {
			return nil, fmt.Errorf("decode round entry: %w", err)
		}
		round.Entries = append(round.Entries, entry)
	}
	return round, nil
}

// Archive operations

func (s *Storage) ArchiveRound(ctx context.Context, entries []model.RoundEntry, outcome model.Outcome, result string, resolvedAt time.Time) (*model.ResolvedGame, error) {
	var archived *model.ResolvedGame

	// Optimistic lock on the round and the id counter: another server may
	// resolve or reset the same round concurrently
	txf := func(tx *redis.Tx) error {
		round, err := readRound(ctx, tx)
		if err != nil {
			return err
		}
		if round.Count() == 0 || !round.HasPrefix(entries) {
			return model.ErrRoundChanged
		}

		// The counter holds the number of ids handed out
		next, err := tx.Get(ctx, gameSeqKey()).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}

		game := &model.ResolvedGame{
			ID:         model.GameID(next),
			Entries:    append([]model.RoundEntry(nil), entries...),
			Outcome:    outcome,
			Result:     result,
			ResolvedAt: resolvedAt,
		}
		data, err := json.Marshal(game)
		if err != nil {
			return err
		}

		// LTRIM past the end removes the key
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Incr(ctx, gameSeqKey())
			pipe.HSet(ctx, gamesKey(), gameField(game.ID), data)
			pipe.LTrim(ctx, roundKey(), int64(len(entries)), -1)
			return nil
		})
		if err != nil {
			return err
		}
		archived = game
		return nil
	}

	if err := s.watch(ctx, "archive round", txf, roundKey(), gameSeqKey()); err != nil {
		return nil, err
	}
	return archived, nil
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.ResolvedGame, error) {
	data, err := s.client.HGet(ctx, gamesKey(), gameField(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrGameNotFound
		}
		return nil, err
	}

	var game model.ResolvedGame
	if err := json.Unmarshal(data, &game); err != nil {
		return nil, err
	}
	return &game, nil
}

func (s *Storage) ListGames(ctx context.Context) ([]*model.ResolvedGame, error) {
	values, err := s.client.HVals(ctx, gamesKey()).Result()
	if err != nil {
		return nil, err
	}

	games := make([]*model.ResolvedGame, 0, len(values))
	for _, val := range values {
		var game model.ResolvedGame
		if err := json.Unmarshal([]byte(val), &game); err != nil {
			continue // Skip invalid data
		}
		games = append(games, &game)
	}

	sort.Slice(games, func(i, j int) bool {
		return games[i].ID < games[j].ID
	})
	return games, nil
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	n, err := s.client.HDel(ctx, gamesKey(), gameField(id)).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return model.ErrGameNotFound
	}
	return nil
}
