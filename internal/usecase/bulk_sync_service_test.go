package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/battlelog/cr-tracker/internal/infrastructure/repository/memory"
	"github.com/battlelog/cr-tracker/internal/platform/cache"
)

func TestBulkSyncService_SyncsEveryRegisteredPlayer(t *testing.T) {
	t.Parallel()

	client := &fakeBattleLogClient{
		battlesByTag: map[string][]ExternalBattle{
			"#AAA111": {battleAt("20250101T100000.000Z", "#AAA111", "#BBB222", 3, 0)},
			"#BBB222": {battleAt("20250101T100000.000Z", "#BBB222", "#AAA111", 0, 3)},
			"#CCC333": {battleAt("20250102T100000.000Z", "#CCC333", "#DDD444", 2, 1)},
		},
	}

	players := memory.NewPlayerRepository()
	playerSvc := NewPlayerService(players)
	ctx := context.Background()
	for _, p := range []struct{ name, tag string }{
		{"alice", "#AAA111"},
		{"bob", "#BBB222"},
		{"carol", "#CCC333"},
	} {
		if _, err := playerSvc.Register(ctx, p.name, p.tag); err != nil {
			t.Fatalf("register %s: %v", p.name, err)
		}
	}

	matches := memory.NewMatchRepository()
	store := cache.NewStore(time.Minute, 0)
	defer store.Close()
	syncSvc := NewSyncService(client, matches, memory.NewRawDataRepository(), store, quietLogger())
	bulk := NewBulkSyncService(players, syncSvc, 2, quietLogger())

	results, err := bulk.SyncAll(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i := 1; i < len(results); i++ {
		if results[i].PlayerTag < results[i-1].PlayerTag {
			t.Fatalf("results must be sorted by tag")
		}
	}
	for _, r := range results {
		if r.Error != "" {
			t.Fatalf("unexpected per-player error for %s: %s", r.PlayerTag, r.Error)
		}
	}

	// Alice and Bob share one battle; Carol adds another.
	if matches.Len() != 2 {
		t.Fatalf("expected 2 stored matches, got %d", matches.Len())
	}
}

func TestBulkSyncService_OneFailureDoesNotAbortOthers(t *testing.T) {
	t.Parallel()

	client := &fakeBattleLogClient{
		battlesByTag: map[string][]ExternalBattle{
			"#AAA111": {battleAt("20250101T100000.000Z", "#AAA111", "#BBB222", 3, 0)},
			// #BBB222 absent: fetch returns empty, still succeeds.
		},
	}
	players := memory.NewPlayerRepository()
	playerSvc := NewPlayerService(players)
	ctx := context.Background()
	if _, err := playerSvc.Register(ctx, "alice", "#AAA111"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := playerSvc.Register(ctx, "bob", "#BBB222"); err != nil {
		t.Fatalf("register: %v", err)
	}

	matches := memory.NewMatchRepository()
	syncSvc := NewSyncService(client, matches, nil, nil, quietLogger())
	bulk := NewBulkSyncService(players, syncSvc, 1, quietLogger())

	results, err := bulk.SyncAll(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if matches.Len() != 1 {
		t.Fatalf("expected alice's match stored, got %d", matches.Len())
	}
}

func TestBulkSyncService_EmptyRosterIsNoop(t *testing.T) {
	t.Parallel()

	bulk := NewBulkSyncService(memory.NewPlayerRepository(), NewSyncService(&fakeBattleLogClient{}, memory.NewMatchRepository(), nil, nil, quietLogger()), 2, quietLogger())

	results, err := bulk.SyncAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected no results, got %d", len(results))
	}
}
