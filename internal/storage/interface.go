package storage

import (
	"context"
	"time"

	"github.com/mcoot/rpslsgame/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Player registry operations. Names are matched by model.NameKey.
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, name string) (*model.Player, error)
	ListPlayers(ctx context.Context) ([]*model.Player, error)
	// DeletePlayer fails with model.ErrPlayerInRound while the player has an
	// entry in the open round; the check and the delete are atomic.
	DeletePlayer(ctx context.Context, name string) error

	// Move registry operations
	SaveMove(ctx context.Context, move *model.RegisteredMove) error
	GetMove(ctx context.Context, move model.Move) (*model.RegisteredMove, error)
	ListMoves(ctx context.Context) ([]*model.RegisteredMove, error)
	// DeleteMove fails with model.ErrMoveInRound while the open round uses
	// the move.
	DeleteMove(ctx context.Context, move model.Move) error

	// Open round operations.
	// AddRoundEntry fails with model.ErrPlayerNotFound or
	// model.ErrMoveNotFound unless both are registered, and with
	// model.ErrAlreadyMoved if the player already has an entry. The checks
	// and the append are atomic with the registry deletes.
	AddRoundEntry(ctx context.Context, entry model.RoundEntry) error
	// GetRound fails with model.ErrNoActiveRound when no round is open.
	GetRound(ctx context.Context) (*model.Round, error)
	CountRoundEntries(ctx context.Context) (int, error)
	ClearRound(ctx context.Context) error

	// Archive operations.
	// ArchiveRound stores the entries under the next sequential game id and,
	// in the same atomic step, removes that many entries from the head of the
	// open round. Entries submitted after the snapshot was taken remain open.
	// It fails with model.ErrRoundChanged, archiving nothing, when the open
	// round no longer starts with entries.
	ArchiveRound(ctx context.Context, entries []model.RoundEntry, outcome model.Outcome, result string, resolvedAt time.Time) (*model.ResolvedGame, error)
	GetGame(ctx context.Context, id model.GameID) (*model.ResolvedGame, error)
	ListGames(ctx context.Context) ([]*model.ResolvedGame, error)
	DeleteGame(ctx context.Context, id model.GameID) error
}
