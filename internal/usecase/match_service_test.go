package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/battlelog/cr-tracker/internal/domain/match"
	"github.com/battlelog/cr-tracker/internal/infrastructure/repository/memory"
	"github.com/battlelog/cr-tracker/internal/platform/cache"
)

func seedMatches(t *testing.T, repo *memory.MatchRepository, count int, tag string) {
	t.Helper()

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	records := make([]match.Match, 0, count)
	for i := 0; i < count; i++ {
		occurred := base.Add(time.Duration(i) * time.Hour)
		records = append(records, match.Match{
			BattleKey:    match.BattleKey(occurred.Format("20060102T150405.000Z0700"), tag, "#FOE999"),
			ParticipantA: tag,
			ParticipantB: "#FOE999",
			WinnerTag:    tag,
			OccurredAt:   occurred,
			GameMode:     match.ModePvP,
			CrownsA:      3,
		})
	}
	if _, err := repo.UpsertBatch(context.Background(), records); err != nil {
		t.Fatalf("seed matches: %v", err)
	}
}

func TestMatchService_HistoryNewestFirst(t *testing.T) {
	t.Parallel()

	repo := memory.NewMatchRepository()
	seedMatches(t, repo, 3, "#AAA111")
	svc := NewMatchService(repo, nil)

	got, err := svc.History(context.Background(), "aaa111", 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].OccurredAt.After(got[i-1].OccurredAt) {
			t.Fatalf("history must be newest first")
		}
	}
}

func TestMatchService_HistoryLimitClamped(t *testing.T) {
	t.Parallel()

	repo := memory.NewMatchRepository()
	seedMatches(t, repo, 60, "#AAA111")
	svc := NewMatchService(repo, nil)

	cases := []struct {
		requested int
		want      int
	}{
		{requested: 0, want: 50},
		{requested: -3, want: 50},
		{requested: 10, want: 10},
		{requested: 500, want: 50},
	}
	for _, tc := range cases {
		got, err := svc.History(context.Background(), "#AAA111", tc.requested)
		if err != nil {
			t.Fatalf("limit %d: %v", tc.requested, err)
		}
		if len(got) != tc.want {
			t.Fatalf("limit %d: expected %d matches, got %d", tc.requested, tc.want, len(got))
		}
	}
}

func TestMatchService_HistoryServedFromCache(t *testing.T) {
	t.Parallel()

	repo := memory.NewMatchRepository()
	seedMatches(t, repo, 1, "#AAA111")

	store := cache.NewStore(time.Minute, 0)
	defer store.Close()
	svc := NewMatchService(repo, store)

	first, err := svc.History(context.Background(), "#AAA111", 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A write that bypasses invalidation is invisible until the TTL expires.
	seedMatches(t, repo, 2, "#ZZZ888")
	extra := match.Match{
		BattleKey:    match.BattleKey("20250301T000000.000Z", "#AAA111", "#DDD444"),
		ParticipantA: "#AAA111",
		ParticipantB: "#DDD444",
		OccurredAt:   time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		GameMode:     match.ModePvP,
	}
	if _, err := repo.UpsertBatch(context.Background(), []match.Match{extra}); err != nil {
		t.Fatalf("seed extra: %v", err)
	}

	second, err := svc.History(context.Background(), "#AAA111", 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(second) != len(first) {
		t.Fatalf("expected cached result of %d matches, got %d", len(first), len(second))
	}

	store.DeletePrefix(matchListCachePrefix("#AAA111"))
	third, err := svc.History(context.Background(), "#AAA111", 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(third) != len(first)+1 {
		t.Fatalf("expected fresh read after invalidation, got %d", len(third))
	}
}

func TestMatchService_HistoryInvalidTag(t *testing.T) {
	t.Parallel()

	svc := NewMatchService(memory.NewMatchRepository(), nil)
	if _, err := svc.History(context.Background(), "??", 50); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestMatchService_GetByBattleKey(t *testing.T) {
	t.Parallel()

	repo := memory.NewMatchRepository()
	seedMatches(t, repo, 1, "#AAA111")
	svc := NewMatchService(repo, nil)

	listed, err := svc.History(context.Background(), "#AAA111", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := svc.GetByBattleKey(context.Background(), listed[0].BattleKey)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.BattleKey != listed[0].BattleKey {
		t.Fatalf("unexpected match: %+v", got)
	}

	if _, err := svc.GetByBattleKey(context.Background(), "deadbeef"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.GetByBattleKey(context.Background(), ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
