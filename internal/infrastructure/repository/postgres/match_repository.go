package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/battlelog/cr-tracker/internal/domain/match"
	qb "github.com/battlelog/cr-tracker/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

var matchSelectColumns = []string{
	"id",
	"battle_key",
	"participant_a",
	"participant_b",
	"COALESCE(winner_tag, '') AS winner_tag",
	"occurred_at",
	"game_mode",
	"crowns_a",
	"crowns_b",
}

var matchInsertColumns = []string{
	"battle_key",
	"participant_a",
	"participant_b",
	"winner_tag",
	"occurred_at",
	"game_mode",
	"crowns_a",
	"crowns_b",
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

// UpsertBatch lands the whole batch in one statement. The battle_key unique
// constraint makes replays no-ops and RowsAffected counts only fresh rows.
func (r *MatchRepository) UpsertBatch(ctx context.Context, records []match.Match) (int64, error) {
	if len(records) == 0 {
		return 0, nil
	}

	builder := qb.InsertInto("matches").Columns(matchInsertColumns...)
	for _, m := range records {
		builder.Values(
			m.BattleKey,
			m.ParticipantA,
			m.ParticipantB,
			nullableString(m.WinnerTag),
			m.OccurredAt,
			m.GameMode,
			m.CrownsA,
			m.CrownsB,
		)
	}

	query, args, err := builder.Suffix("ON CONFLICT (battle_key) DO NOTHING").ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build insert matches query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("insert matches: %w", err)
	}

	inserted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count inserted matches: %w", err)
	}
	return inserted, nil
}

func (r *MatchRepository) ListByParticipant(ctx context.Context, tag string, limit int) ([]match.Match, error) {
	limit = match.ClampHistoryLimit(limit)

	query, args, err := qb.Select(matchSelectColumns...).From("matches").
		Where(qb.Expr("(participant_a = ? OR participant_b = ?)", tag, tag)).
		OrderBy("occurred_at DESC", "id DESC").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matches query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matches by participant: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *MatchRepository) GetByBattleKey(ctx context.Context, key string) (match.Match, bool, error) {
	query, args, err := qb.Select(matchSelectColumns...).From("matches").
		Where(qb.Eq("battle_key", key)).
		ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build select match query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("select match by battle key: %w", err)
	}
	return row.toDomain(), true, nil
}
