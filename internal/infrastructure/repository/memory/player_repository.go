package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/battlelog/cr-tracker/internal/domain/player"
)

type PlayerRepository struct {
	mu     sync.RWMutex
	byTag  map[string]player.Player
	nextID int64
}

func NewPlayerRepository(players ...player.Player) *PlayerRepository {
	r := &PlayerRepository{
		byTag:  make(map[string]player.Player),
		nextID: 1,
	}
	for _, p := range players {
		if p.ID == 0 {
			p.ID = r.nextID
		}
		if p.ID >= r.nextID {
			r.nextID = p.ID + 1
		}
		r.byTag[p.Tag] = p
	}
	return r
}

func (r *PlayerRepository) CreateOrGet(_ context.Context, p player.Player) (player.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.byTag[p.Tag]; ok {
		return existing, nil
	}

	p.ID = r.nextID
	r.nextID++
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	r.byTag[p.Tag] = p
	return p, nil
}

func (r *PlayerRepository) GetByTag(_ context.Context, tag string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byTag[tag]
	return p, ok, nil
}

func (r *PlayerRepository) ListAll(_ context.Context) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(r.byTag))
	for _, p := range r.byTag {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
