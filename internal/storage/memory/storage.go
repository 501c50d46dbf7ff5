package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/mcoot/rpslsgame/internal/model"
	"github.com/mcoot/rpslsgame/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	players     map[string]*model.Player // keyed by model.NameKey
	playerOrder []string
	moves       map[model.Move]*model.RegisteredMove
	moveOrder   []model.Move

	round *model.Round // nil when no round is open

	games      map[model.GameID]*model.ResolvedGame
	nextGameID model.GameID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players: make(map[string]*model.Player),
		moves:   make(map[model.Move]*model.RegisteredMove),
		games:   make(map[model.GameID]*model.ResolvedGame),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := player.Key()
	if _, ok := s.players[key]; !ok {
		s.playerOrder = append(s.playerOrder, key)
	}
	p := *player
	s.players[key] = &p
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, name string) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	player, ok := s.players[model.NameKey(name)]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	p := *player
	return &p, nil
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	players := make([]*model.Player, 0, len(s.playerOrder))
	for _, key := range s.playerOrder {
		p := *s.players[key]
		players = append(players, &p)
	}
	return players, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := model.NameKey(name)
	if _, ok := s.players[key]; !ok {
		return nil
	}
	if s.round != nil && s.round.HasPlayer(name) {
		return model.ErrPlayerInRound
	}
	delete(s.players, key)
	for i, k := range s.playerOrder {
		if k == key {
			s.playerOrder = append(s.playerOrder[:i], s.playerOrder[i+1:]...)
			break
		}
	}
	return nil
}

// Move operations

func (s *Storage) SaveMove(ctx context.Context, move *model.RegisteredMove) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.moves[move.Move]; !ok {
		s.moveOrder = append(s.moveOrder, move.Move)
	}
	m := *move
	s.moves[move.Move] = &m
	return nil
}

func (s *Storage) GetMove(ctx context.Context, move model.Move) (*model.RegisteredMove, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.moves[move]
	if !ok {
		return nil, model.ErrMoveNotFound
	}
	result := *m
	return &result, nil
}

func (s *Storage) ListMoves(ctx context.Context) ([]*model.RegisteredMove, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	moves := make([]*model.RegisteredMove, 0, len(s.moveOrder))
	for _, mv := range s.moveOrder {
		m := *s.moves[mv]
		moves = append(moves, &m)
	}
	return moves, nil
}

func (s *Storage) DeleteMove(ctx context.Context, move model.Move) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.moves[move]; !ok {
		return nil
	}
	if s.round != nil && s.round.HasMove(move) {
		return model.ErrMoveInRound
	}
	delete(s.moves, move)
	for i, m := range s.moveOrder {
		if m == move {
			s.moveOrder = append(s.moveOrder[:i], s.moveOrder[i+1:]...)
			break
		}
	}
	return nil
}

// Round operations

func (s *Storage) AddRoundEntry(ctx context.Context, entry model.RoundEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.players[model.NameKey(entry.Player)]; !ok {
		return model.ErrPlayerNotFound
	}
	if _, ok := s.moves[entry.Move]; !ok {
		return model.ErrMoveNotFound
	}

	if s.round == nil {
		s.round = &model.Round{}
	}
	if s.round.HasPlayer(entry.Player) {
		return model.ErrAlreadyMoved
	}
	s.round.Entries = append(s.round.Entries, entry)
	return nil
}

func (s *Storage) GetRound(ctx context.Context) (*model.Round, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.round == nil {
		return nil, model.ErrNoActiveRound
	}
	return s.round.Clone(), nil
}

func (s *Storage) CountRoundEntries(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.round == nil {
		return 0, nil
	}
	return s.round.Count(), nil
}

func (s *Storage) ClearRound(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.round = nil
	return nil
}

// Archive operations

func (s *Storage) ArchiveRound(ctx context.Context, entries []model.RoundEntry, outcome model.Outcome, result string, resolvedAt time.Time) (*model.ResolvedGame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.round == nil || !s.round.HasPrefix(entries) {
		return nil, model.ErrRoundChanged
	}

	game := &model.ResolvedGame{
		ID:         s.nextGameID,
		Entries:    append([]model.RoundEntry(nil), entries...),
		Outcome:    outcome,
		Result:     result,
		ResolvedAt: resolvedAt,
	}
	game.Outcome.Winners = append([]string(nil), outcome.Winners...)
	s.nextGameID++
	s.games[game.ID] = game
	s.trimRound(len(entries))

	return cloneGame(game), nil
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.ResolvedGame, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	game, ok := s.games[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return cloneGame(game), nil
}

func (s *Storage) ListGames(ctx context.Context) ([]*model.ResolvedGame, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	games := make([]*model.ResolvedGame, 0, len(s.games))
	for _, game := range s.games {
		games = append(games, cloneGame(game))
	}
	sort.Slice(games, func(i, j int) bool {
		return games[i].ID < games[j].ID
	})
	return games, nil
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.games[id]; !ok {
		return model.ErrGameNotFound
	}
	delete(s.games, id)
	return nil
}

// trimRound drops the first n entries; entries submitted after the snapshot
// stay open
func (s *Storage) trimRound(n int) {
	if s.round == nil || n >= len(s.round.Entries) {
		s.round = nil
		return
	}
	s.round.Entries = append([]model.RoundEntry(nil), s.round.Entries[n:]...)
}

// cloneGame copies a game so callers cannot mutate archived entries
func cloneGame(game *model.ResolvedGame) *model.ResolvedGame {
	g := *game
	g.Entries = append([]model.RoundEntry(nil), game.Entries...)
	g.Outcome.Winners = append([]string(nil), game.Outcome.Winners...)
	return &g
}
