package redis

import (
	"fmt"
	"strconv"

	"github.com/mcoot/rpslsgame/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "rpsls"

// playersKey returns the HASH of player name key -> Player
func playersKey() string {
	return fmt.Sprintf("%s:players", keyPrefix)
}

// movesKey returns the HASH of canonical move -> RegisteredMove
func movesKey() string {
	return fmt.Sprintf("%s:moves", keyPrefix)
}

// roundKey returns the LIST of entries in the open round
func roundKey() string {
	return fmt.Sprintf("%s:round", keyPrefix)
}

// gamesKey returns the HASH of game id -> ResolvedGame
func gamesKey() string {
	return fmt.Sprintf("%s:games", keyPrefix)
}

// gameSeqKey returns the counter used to allocate game ids
func gameSeqKey() string {
	return fmt.Sprintf("%s:games:seq", keyPrefix)
}

// gameField returns the hash field for a game id
func gameField(id model.GameID) string {
	return strconv.FormatInt(int64(id), 10)
}
