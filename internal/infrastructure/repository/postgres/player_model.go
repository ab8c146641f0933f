package postgres

import (
	"time"

	"github.com/battlelog/cr-tracker/internal/domain/player"
)

type playerTableModel struct {
	ID        int64     `db:"id"`
	Username  string    `db:"username"`
	Tag       string    `db:"player_tag"`
	CreatedAt time.Time `db:"created_at"`
}

func (m playerTableModel) toDomain() player.Player {
	return player.Player{
		ID:        m.ID,
		Username:  m.Username,
		Tag:       m.Tag,
		CreatedAt: m.CreatedAt,
	}
}

type playerInsertModel struct {
	Username string `db:"username"`
	Tag      string `db:"player_tag"`
}
