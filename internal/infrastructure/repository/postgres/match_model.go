package postgres

import (
	"database/sql"
	"time"

	"github.com/battlelog/cr-tracker/internal/domain/match"
)

type matchTableModel struct {
	ID           int64          `db:"id"`
	BattleKey    string         `db:"battle_key"`
	ParticipantA string         `db:"participant_a"`
	ParticipantB string         `db:"participant_b"`
	WinnerTag    sql.NullString `db:"winner_tag"`
	OccurredAt   time.Time      `db:"occurred_at"`
	GameMode     string         `db:"game_mode"`
	CrownsA      int            `db:"crowns_a"`
	CrownsB      int            `db:"crowns_b"`
}

func (m matchTableModel) toDomain() match.Match {
	return match.Match{
		ID:           m.ID,
		BattleKey:    m.BattleKey,
		ParticipantA: m.ParticipantA,
		ParticipantB: m.ParticipantB,
		WinnerTag:    m.WinnerTag.String,
		OccurredAt:   m.OccurredAt,
		GameMode:     m.GameMode,
		CrownsA:      m.CrownsA,
		CrownsB:      m.CrownsB,
	}
}
