package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/battlelog/cr-tracker/internal/domain/match"
)

// MatchRepository is an in-memory match.Repository with the same first-writer-
// wins semantics as the Postgres store.
type MatchRepository struct {
	mu     sync.RWMutex
	byKey  map[string]match.Match
	nextID int64
}

func NewMatchRepository() *MatchRepository {
	return &MatchRepository{
		byKey:  make(map[string]match.Match),
		nextID: 1,
	}
}

func (r *MatchRepository) UpsertBatch(_ context.Context, records []match.Match) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var inserted int64
	for _, m := range records {
		if _, exists := r.byKey[m.BattleKey]; exists {
			continue
		}
		m.ID = r.nextID
		r.nextID++
		r.byKey[m.BattleKey] = m
		inserted++
	}
	return inserted, nil
}

func (r *MatchRepository) ListByParticipant(_ context.Context, tag string, limit int) ([]match.Match, error) {
	limit = match.ClampHistoryLimit(limit)

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0, limit)
	for _, m := range r.byKey {
		if m.ParticipantA == tag || m.ParticipantB == tag {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].OccurredAt.Equal(out[j].OccurredAt) {
			return out[i].OccurredAt.After(out[j].OccurredAt)
		}
		return out[i].ID > out[j].ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *MatchRepository) GetByBattleKey(_ context.Context, key string) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.byKey[key]
	return m, ok, nil
}

// Len reports how many distinct matches are stored.
func (r *MatchRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byKey)
}
