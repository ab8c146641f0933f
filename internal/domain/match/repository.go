package match

import "context"

// History reads are bounded by the upstream battle log's rolling window, so
// nothing ever needs more than 50 rows.
const (
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 50
)

// ClampHistoryLimit maps any requested page size into [1, MaxHistoryLimit],
// with non-positive values falling back to the default.
func ClampHistoryLimit(limit int) int {
	if limit <= 0 {
		return DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		return MaxHistoryLimit
	}
	return limit
}

// Repository exposes the conflict-tolerant match store.
type Repository interface {
	// UpsertBatch inserts every record whose battle key is not already
	// present and reports how many rows were actually written. Records
	// colliding with an existing key are ignored: first writer wins.
	UpsertBatch(ctx context.Context, records []Match) (int64, error)
	// ListByParticipant returns matches where the tag appears on either
	// side, most recent first, bounded by limit.
	ListByParticipant(ctx context.Context, tag string, limit int) ([]Match, error)
	GetByBattleKey(ctx context.Context, key string) (Match, bool, error)
}
