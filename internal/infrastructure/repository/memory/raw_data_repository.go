package memory

import (
	"context"
	"sync"

	"github.com/battlelog/cr-tracker/internal/domain/rawdata"
)

// RawDataRepository keeps the latest archived payload per (source, player tag).
type RawDataRepository struct {
	mu       sync.RWMutex
	payloads map[string]rawdata.Payload
}

func NewRawDataRepository() *RawDataRepository {
	return &RawDataRepository{payloads: make(map[string]rawdata.Payload)}
}

func (r *RawDataRepository) Upsert(_ context.Context, p rawdata.Payload) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.payloads[p.Source+"|"+p.PlayerTag] = p
	return nil
}

func (r *RawDataRepository) Get(source, playerTag string) (rawdata.Payload, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.payloads[source+"|"+playerTag]
	return p, ok
}
