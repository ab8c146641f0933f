package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/battlelog/cr-tracker/internal/domain/friendship"
	"github.com/battlelog/cr-tracker/internal/domain/player"
)

// FriendshipRepository keeps sorted friend pairs in memory. It resolves friend
// listings against the player repository it was built with.
type FriendshipRepository struct {
	mu      sync.RWMutex
	pairs   map[string]friendship.Friendship
	ordered []friendship.Friendship
	players *PlayerRepository
	nextID  int64
}

func NewFriendshipRepository(players *PlayerRepository) *FriendshipRepository {
	return &FriendshipRepository{
		pairs:   make(map[string]friendship.Friendship),
		players: players,
		nextID:  1,
	}
}

func (r *FriendshipRepository) CreateOrGet(_ context.Context, playerID1, playerID2 int64) (friendship.Friendship, error) {
	key := pairKey(playerID1, playerID2)

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.pairs[key]; ok {
		return existing, nil
	}

	f := friendship.Friendship{
		ID:        r.nextID,
		PlayerID1: playerID1,
		PlayerID2: playerID2,
		CreatedAt: time.Now().UTC(),
	}
	r.nextID++
	r.pairs[key] = f
	r.ordered = append(r.ordered, f)
	return f, nil
}

func (r *FriendshipRepository) ListFriends(ctx context.Context, playerID int64) ([]player.Player, error) {
	r.mu.RLock()
	friendIDs := make([]int64, 0, len(r.ordered))
	for _, f := range r.ordered {
		switch playerID {
		case f.PlayerID1:
			friendIDs = append(friendIDs, f.PlayerID2)
		case f.PlayerID2:
			friendIDs = append(friendIDs, f.PlayerID1)
		}
	}
	r.mu.RUnlock()

	all, err := r.players.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]player.Player, len(all))
	for _, p := range all {
		byID[p.ID] = p
	}

	out := make([]player.Player, 0, len(friendIDs))
	for _, id := range friendIDs {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func pairKey(id1, id2 int64) string {
	return fmt.Sprintf("%d:%d", id1, id2)
}
