package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/battlelog/cr-tracker/internal/domain/friendship"
	"github.com/battlelog/cr-tracker/internal/domain/player"
	qb "github.com/battlelog/cr-tracker/internal/platform/querybuilder"
)

type FriendshipRepository struct {
	db *sqlx.DB
}

// listFriendsQuery resolves the other side of every pair the player appears
// in, oldest friendship first.
const listFriendsQuery = `
SELECT p.id, p.username, p.player_tag, p.created_at
FROM friendships f
JOIN players p
  ON p.id = CASE WHEN f.player_id_1 = $1 THEN f.player_id_2 ELSE f.player_id_1 END
WHERE f.player_id_1 = $1 OR f.player_id_2 = $1
ORDER BY f.created_at, f.id`

func NewFriendshipRepository(db *sqlx.DB) *FriendshipRepository {
	return &FriendshipRepository{db: db}
}

func (r *FriendshipRepository) CreateOrGet(ctx context.Context, playerID1, playerID2 int64) (friendship.Friendship, error) {
	query, args, err := qb.InsertModel("friendships",
		friendshipInsertModel{PlayerID1: playerID1, PlayerID2: playerID2},
		"ON CONFLICT (player_id_1, player_id_2) DO NOTHING")
	if err != nil {
		return friendship.Friendship{}, fmt.Errorf("build insert friendship query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil && !isUniqueViolation(err) {
		return friendship.Friendship{}, fmt.Errorf("insert friendship pair=(%d,%d): %w", playerID1, playerID2, err)
	}

	return r.getByPair(ctx, playerID1, playerID2)
}

func (r *FriendshipRepository) ListFriends(ctx context.Context, playerID int64) ([]player.Player, error) {
	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, listFriendsQuery, playerID); err != nil {
		return nil, fmt.Errorf("select friends player_id=%d: %w", playerID, err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *FriendshipRepository) getByPair(ctx context.Context, playerID1, playerID2 int64) (friendship.Friendship, error) {
	query, args, err := qb.Select("id", "player_id_1", "player_id_2", "created_at").
		From("friendships").
		Where(
			qb.Eq("player_id_1", playerID1),
			qb.Eq("player_id_2", playerID2),
		).
		ToSQL()
	if err != nil {
		return friendship.Friendship{}, fmt.Errorf("build select friendship query: %w", err)
	}

	var row friendshipTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return friendship.Friendship{}, fmt.Errorf("select friendship pair=(%d,%d): %w", playerID1, playerID2, err)
	}
	return row.toDomain(), nil
}
