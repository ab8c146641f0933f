package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/battlelog/cr-tracker/internal/domain/player"
	qb "github.com/battlelog/cr-tracker/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

var playerSelectColumns = []string{
	"id",
	"username",
	"player_tag",
	"created_at",
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

// CreateOrGet inserts the player and re-reads by tag. A tag collision means
// someone registered first; their row wins and is returned unchanged.
func (r *PlayerRepository) CreateOrGet(ctx context.Context, p player.Player) (player.Player, error) {
	query, args, err := qb.InsertModel("players",
		playerInsertModel{Username: p.Username, Tag: p.Tag},
		"ON CONFLICT (player_tag) DO NOTHING")
	if err != nil {
		return player.Player{}, fmt.Errorf("build insert player query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return player.Player{}, fmt.Errorf("insert player tag=%s: %w", p.Tag, err)
	}

	stored, found, err := r.GetByTag(ctx, p.Tag)
	if err != nil {
		return player.Player{}, err
	}
	if !found {
		return player.Player{}, fmt.Errorf("player tag=%s missing after insert", p.Tag)
	}
	return stored, nil
}

func (r *PlayerRepository) GetByTag(ctx context.Context, tag string) (player.Player, bool, error) {
	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(qb.Eq("player_tag", tag)).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build select player query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("select player by tag: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *PlayerRepository) ListAll(ctx context.Context) ([]player.Player, error) {
	query, args, err := qb.Select(playerSelectColumns...).From("players").
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
