package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/battlelog/cr-tracker/internal/domain/rawdata"
	qb "github.com/battlelog/cr-tracker/internal/platform/querybuilder"
)

type RawDataRepository struct {
	db *sqlx.DB
}

func NewRawDataRepository(db *sqlx.DB) *RawDataRepository {
	return &RawDataRepository{db: db}
}

// Upsert keeps the newest archived payload per (source, player tag).
func (r *RawDataRepository) Upsert(ctx context.Context, item rawdata.Payload) error {
	insertModel := rawPayloadInsertModel{
		Source:      item.Source,
		PlayerTag:   item.PlayerTag,
		Payload:     item.PayloadJSON,
		PayloadHash: item.PayloadHash,
		FetchedAt:   item.FetchedAt,
	}

	query, args, err := qb.InsertModel("raw_battlelog_payloads", insertModel, `ON CONFLICT (source, player_tag)
DO UPDATE SET
    payload = EXCLUDED.payload,
    payload_hash = EXCLUDED.payload_hash,
    fetched_at = EXCLUDED.fetched_at`)
	if err != nil {
		return fmt.Errorf("build upsert raw payload query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert raw payload source=%s tag=%s: %w", item.Source, item.PlayerTag, err)
	}
	return nil
}

type rawPayloadInsertModel struct {
	Source      string    `db:"source"`
	PlayerTag   string    `db:"player_tag"`
	Payload     string    `db:"payload"`
	PayloadHash string    `db:"payload_hash"`
	FetchedAt   time.Time `db:"fetched_at"`
}
