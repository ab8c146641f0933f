package usecase

import (
	"context"
	"fmt"
	"strconv"

	"github.com/battlelog/cr-tracker/internal/domain/match"
	"github.com/battlelog/cr-tracker/internal/domain/player"
	"github.com/battlelog/cr-tracker/internal/platform/cache"
)

// MatchService serves match history reads through a short-lived cache. Sync
// invalidates the cached lists for affected tags, so staleness is bounded by
// the cache TTL between syncs.
type MatchService struct {
	matches match.Repository
	cache   *cache.Store
}

func NewMatchService(matches match.Repository, store *cache.Store) *MatchService {
	return &MatchService{matches: matches, cache: store}
}

func (s *MatchService) History(ctx context.Context, rawTag string, limit int) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "MatchService.History")
	defer span.End()

	tag, err := player.NormalizeTag(rawTag)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	limit = match.ClampHistoryLimit(limit)

	if s.cache == nil {
		return s.matches.ListByParticipant(ctx, tag, limit)
	}

	value, err := s.cache.GetOrLoad(matchListCacheKey(tag, limit), func() (any, error) {
		return s.matches.ListByParticipant(ctx, tag, limit)
	})
	if err != nil {
		return nil, err
	}

	records, ok := value.([]match.Match)
	if !ok {
		return s.matches.ListByParticipant(ctx, tag, limit)
	}
	return records, nil
}

func (s *MatchService) GetByBattleKey(ctx context.Context, key string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "MatchService.GetByBattleKey")
	defer span.End()

	if key == "" {
		return match.Match{}, fmt.Errorf("%w: battle key is required", ErrInvalidInput)
	}

	m, found, err := s.matches.GetByBattleKey(ctx, key)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match battle_key=%s: %w", key, err)
	}
	if !found {
		return match.Match{}, fmt.Errorf("%w: match %s", ErrNotFound, key)
	}
	return m, nil
}

func matchListCacheKey(tag string, limit int) string {
	return matchListCachePrefix(tag) + strconv.Itoa(limit)
}

func matchListCachePrefix(tag string) string {
	return "matches:" + tag + ":"
}
