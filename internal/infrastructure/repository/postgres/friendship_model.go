package postgres

import (
	"time"

	"github.com/battlelog/cr-tracker/internal/domain/friendship"
)

type friendshipTableModel struct {
	ID        int64     `db:"id"`
	PlayerID1 int64     `db:"player_id_1"`
	PlayerID2 int64     `db:"player_id_2"`
	CreatedAt time.Time `db:"created_at"`
}

func (m friendshipTableModel) toDomain() friendship.Friendship {
	return friendship.Friendship{
		ID:        m.ID,
		PlayerID1: m.PlayerID1,
		PlayerID2: m.PlayerID2,
		CreatedAt: m.CreatedAt,
	}
}

type friendshipInsertModel struct {
	PlayerID1 int64 `db:"player_id_1"`
	PlayerID2 int64 `db:"player_id_2"`
}
