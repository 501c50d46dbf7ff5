package redis

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/rpslsgame/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
	base    time.Time
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.storage = NewWithClient(client, DefaultConfig())
	s.ctx = context.Background()
	s.base = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

// Player tests

func (s *StorageSuite) TestSaveAndGetPlayer() {
	err := s.storage.SavePlayer(s.ctx, &model.Player{Name: "Alice", CreatedAt: s.base})
	s.Require().NoError(err)

	retrieved, err := s.storage.GetPlayer(s.ctx, "ALICE")
	s.Require().NoError(err)
	s.Equal("Alice", retrieved.Name)
	s.True(s.base.Equal(retrieved.CreatedAt))
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
	s.ErrorIs(err, model.ErrNotFound)
}

func (s *StorageSuite) TestListPlayersKeepsRegistrationOrder() {
	_ = s.storage.SavePlayer(s.ctx, &model.Player{Name: "Carol", CreatedAt: s.base})
	_ = s.storage.SavePlayer(s.ctx, &model.Player{Name: "Alice", CreatedAt: s.base.Add(time.Second)})
	_ = s.storage.SavePlayer(s.ctx, &model.Player{Name: "Bob", CreatedAt: s.base.Add(2 * time.Second)})

	players, err := s.storage.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(players, 3)
	s.Equal("Carol", players[0].Name)
	s.Equal("Alice", players[1].Name)
	s.Equal("Bob", players[2].Name)
}

func (s *StorageSuite) TestDeletePlayer() {
	_ = s.storage.SavePlayer(s.ctx, &model.Player{Name: "Alice"})

	err := s.storage.DeletePlayer(s.ctx, "alice")
	s.Require().NoError(err)

	_, err = s.storage.GetPlayer(s.ctx, "Alice")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Move tests

func (s *StorageSuite) TestSaveGetAndDeleteMove() {
	s.Require().NoError(s.storage.SaveMove(s.ctx, &model.RegisteredMove{Move: model.Spock, Name: "Spock", CreatedAt: s.base}))
	s.Require().NoError(s.storage.SaveMove(s.ctx, &model.RegisteredMove{Move: model.Rock, Name: "Rock", CreatedAt: s.base.Add(time.Second)}))

	m, err := s.storage.GetMove(s.ctx, model.Spock)
	s.Require().NoError(err)
	s.Equal("Spock", m.Name)

	moves, err := s.storage.ListMoves(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(moves, 2)
	s.Equal(model.Spock, moves[0].Move)
	s.Equal(model.Rock, moves[1].Move)

	s.Require().NoError(s.storage.DeleteMove(s.ctx, model.Spock))
	_, err = s.storage.GetMove(s.ctx, model.Spock)
	s.ErrorIs(err, model.ErrMoveNotFound)
}

// Round tests

func (s *StorageSuite) TestGetRoundWhenNoneOpen() {
	_, err := s.storage.GetRound(s.ctx)
	s.ErrorIs(err, model.ErrNoActiveRound)

	count, err := s.storage.CountRoundEntries(s.ctx)
	s.Require().NoError(err)
	s.Equal(0, count)
}

func (s *StorageSuite) TestAddRoundEntryKeepsOrder() {
	s.Require().NoError(s.enter("Bob", model.Rock))
	s.Require().NoError(s.enter("Alice", model.Paper))

	round, err := s.storage.GetRound(s.ctx)
	s.Require().NoError(err)
	s.Require().Equal(2, round.Count())
	s.Equal("Bob", round.Entries[0].Player)
	s.Equal(model.Paper, round.Entries[1].Move)
}

func (s *StorageSuite) TestAddRoundEntryRejectsDuplicatePlayer() {
	s.Require().NoError(s.enter("Bob", model.Rock))

	err := s.enter("BOB", model.Paper)
	s.ErrorIs(err, model.ErrAlreadyMoved)

	count, _ := s.storage.CountRoundEntries(s.ctx)
	s.Equal(1, count)
}

func (s *StorageSuite) TestConcurrentAddRoundEntrySamePlayer() {
	s.Require().NoError(s.storage.SavePlayer(s.ctx, &model.Player{Name: "Bob"}))
	s.Require().NoError(s.storage.SaveMove(s.ctx, &model.RegisteredMove{Move: model.Rock, Name: "Rock"}))

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- s.storage.AddRoundEntry(s.ctx, model.RoundEntry{Player: "Bob", Move: model.Rock})
		}()
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
		}
	}
	s.Equal(1, succeeded)

	count, _ := s.storage.CountRoundEntries(s.ctx)
	s.Equal(1, count)
}

func (s *StorageSuite) TestClearRound() {
	_ = s.enter("Bob", model.Rock)

	s.Require().NoError(s.storage.ClearRound(s.ctx))
	s.Require().NoError(s.storage.ClearRound(s.ctx))

	_, err := s.storage.GetRound(s.ctx)
	s.ErrorIs(err, model.ErrNoActiveRound)
}

// Archive tests

// enter registers the player and move when needed and submits the entry
func (s *StorageSuite) enter(player string, move model.Move) error {
	if _, err := s.storage.GetPlayer(s.ctx, player); err != nil {
		s.Require().NoError(s.storage.SavePlayer(s.ctx, &model.Player{Name: player}))
	}
	if _, err := s.storage.GetMove(s.ctx, move); err != nil {
		s.Require().NoError(s.storage.SaveMove(s.ctx, &model.RegisteredMove{Move: move, Name: string(move)}))
	}
	return s.storage.AddRoundEntry(s.ctx, model.RoundEntry{Player: player, Move: move})
}

// archive opens a round for the players and archives it
func (s *StorageSuite) archive(players ...string) *model.ResolvedGame {
	for _, p := range players {
		s.Require().NoError(s.enter(p, model.Rock))
	}
	round, err := s.storage.GetRound(s.ctx)
	s.Require().NoError(err)

	game, err := s.storage.ArchiveRound(s.ctx, round.Entries, model.Outcome{Tie: true}, "Result Tie", s.base)
	s.Require().NoError(err)
	return game
}

func (s *StorageSuite) TestArchiveRoundClearsRoundAndStoresGame() {
	game := s.archive("Bob", "Alice")
	s.Equal(model.GameID(0), game.ID)

	_, err := s.storage.GetRound(s.ctx)
	s.ErrorIs(err, model.ErrNoActiveRound)

	stored, err := s.storage.GetGame(s.ctx, game.ID)
	s.Require().NoError(err)
	s.Equal("Result Tie", stored.Result)
	s.True(stored.Outcome.Tie)
	s.Require().Len(stored.Entries, 2)
	s.Equal("Alice", stored.Entries[1].Player)
}

func (s *StorageSuite) TestArchiveIDsNotReusedAfterDelete() {
	s.archive("A", "B")
	s.archive("A", "B")

	s.Require().NoError(s.storage.DeleteGame(s.ctx, 0))
	s.Require().NoError(s.storage.DeleteGame(s.ctx, 1))

	s.Equal(model.GameID(2), s.archive("A", "B").ID)
}

func (s *StorageSuite) TestListGamesOrderedByID() {
	for i := 0; i < 12; i++ {
		s.archive("A", "B")
	}

	games, err := s.storage.ListGames(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(games, 12)
	for i, g := range games {
		s.Equal(model.GameID(i), g.ID)
	}
}

func (s *StorageSuite) TestGetAndDeleteGameNotFound() {
	_, err := s.storage.GetGame(s.ctx, 7)
	s.ErrorIs(err, model.ErrGameNotFound)

	err = s.storage.DeleteGame(s.ctx, 7)
	s.ErrorIs(err, model.ErrGameNotFound)
}

// Key tests

func (s *StorageSuite) TestKeysUsePrefix() {
	_ = s.storage.SavePlayer(s.ctx, &model.Player{Name: "Alice"})
	_ = s.enter("Alice", model.Rock)

	s.True(s.mini.Exists("rpsls:players"))
	s.True(s.mini.Exists("rpsls:round"))
	s.Equal("rpsls:games:seq", gameSeqKey())
	s.Equal("12", gameField(12))
}

func (s *StorageSuite) TestArchiveRoundKeepsLaterEntries() {
	_ = s.enter("A", model.Rock)
	_ = s.enter("B", model.Paper)
	snapshot, _ := s.storage.GetRound(s.ctx)

	// Submitted after the snapshot
	_ = s.enter("C", model.Spock)

	_, err := s.storage.ArchiveRound(s.ctx, snapshot.Entries, model.Outcome{}, "", s.base)
	s.Require().NoError(err)

	round, err := s.storage.GetRound(s.ctx)
	s.Require().NoError(err)
	s.Require().Equal(1, round.Count())
	s.Equal("C", round.Entries[0].Player)
}

func (s *StorageSuite) TestAddRoundEntryRequiresRegistration() {
	err := s.storage.AddRoundEntry(s.ctx, model.RoundEntry{Player: "Ghost", Move: model.Rock})
	s.ErrorIs(err, model.ErrPlayerNotFound)

	s.Require().NoError(s.storage.SavePlayer(s.ctx, &model.Player{Name: "Alice"}))
	err = s.storage.AddRoundEntry(s.ctx, model.RoundEntry{Player: "Alice", Move: model.Spock})
	s.ErrorIs(err, model.ErrMoveNotFound)

	count, _ := s.storage.CountRoundEntries(s.ctx)
	s.Equal(0, count)
}

func (s *StorageSuite) TestDeleteRefusedWhileInRound() {
	s.Require().NoError(s.enter("Alice", model.Rock))

	s.ErrorIs(s.storage.DeletePlayer(s.ctx, "ALICE"), model.ErrPlayerInRound)
	s.ErrorIs(s.storage.DeleteMove(s.ctx, model.Rock), model.ErrMoveInRound)

	_, err := s.storage.GetPlayer(s.ctx, "Alice")
	s.NoError(err)
	_, err = s.storage.GetMove(s.ctx, model.Rock)
	s.NoError(err)

	s.Require().NoError(s.storage.ClearRound(s.ctx))
	s.NoError(s.storage.DeletePlayer(s.ctx, "Alice"))
	s.NoError(s.storage.DeleteMove(s.ctx, model.Rock))
}

func (s *StorageSuite) TestArchiveRoundRejectsStaleSnapshot() {
	s.Require().NoError(s.enter("A", model.Rock))
	s.Require().NoError(s.enter("B", model.Paper))
	stale, err := s.storage.GetRound(s.ctx)
	s.Require().NoError(err)

	// Another server resolves the round and a new one opens
	s.Require().NoError(s.storage.ClearRound(s.ctx))
	s.Require().NoError(s.enter("C", model.Spock))
	s.Require().NoError(s.enter("D", model.Lizard))

	_, err = s.storage.ArchiveRound(s.ctx, stale.Entries, model.Outcome{}, "", s.base)
	s.ErrorIs(err, model.ErrRoundChanged)

	round, err := s.storage.GetRound(s.ctx)
	s.Require().NoError(err)
	s.Equal(2, round.Count())
	games, err := s.storage.ListGames(s.ctx)
	s.Require().NoError(err)
	s.Empty(games)

	// A rejected archive hands out no id
	s.Equal(model.GameID(0), s.archive().ID)
	s.False(s.mini.Exists("rpsls:round"))
}

func (s *StorageSuite) TestConcurrentArchiveOfSameRound() {
	s.Require().NoError(s.enter("A", model.Rock))
	s.Require().NoError(s.enter("B", model.Scissors))
	snapshot, err := s.storage.GetRound(s.ctx)
	s.Require().NoError(err)

	var wg sync.WaitGroup
	errs := make(chan error, 5)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.storage.ArchiveRound(s.ctx, snapshot.Entries, model.Outcome{}, "", s.base)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	archived := 0
	for err := range errs {
		if err == nil {
			archived++
			continue
		}
		s.ErrorIs(err, model.ErrRoundChanged)
	}
	s.Equal(1, archived)

	games, err := s.storage.ListGames(s.ctx)
	s.Require().NoError(err)
	s.Len(games, 1)
}
