package friendship

import (
	"context"

	"github.com/battlelog/cr-tracker/internal/domain/player"
)

// Repository persists friendship pairs between registered players.
type Repository interface {
	// CreateOrGet links the pair if not yet linked, otherwise returns the
	// existing row. The pair must already be in storage order.
	CreateOrGet(ctx context.Context, playerID1, playerID2 int64) (Friendship, error)
	// ListFriends returns the players linked to the given player, either side
	// of the pair, ordered by when the friendship was created.
	ListFriends(ctx context.Context, playerID int64) ([]player.Player, error)
}
