package rawdata

import "context"

// Repository keeps the latest raw payload per (source, player tag).
type Repository interface {
	Upsert(ctx context.Context, item Payload) error
}
