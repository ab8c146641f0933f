package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"github.com/battlelog/cr-tracker/internal/domain/match"
	"github.com/battlelog/cr-tracker/internal/domain/player"
	"github.com/battlelog/cr-tracker/internal/domain/rawdata"
	"github.com/battlelog/cr-tracker/internal/platform/cache"
)

// BattleLogSource labels archived payloads from the game API.
const BattleLogSource = "clashroyale"

// SyncReport summarizes one sync pass over a player's battle log.
type SyncReport struct {
	PlayerTag  string             `json:"playerTag"`
	Fetched    int                `json:"fetched"`
	Accepted   int                `json:"accepted"`
	Skipped    int                `json:"skipped"`
	SkipCounts map[SkipReason]int `json:"skipCounts,omitempty"`
	NewMatches int64              `json:"newMatches"`
}

// SyncService pulls a player's battle log from upstream and lands it in the
// match store. Re-running a sync is harmless: the battle key constraint turns
// replays into no-ops.
type SyncService struct {
	client  BattleLogClient
	matches match.Repository
	rawData rawdata.Repository
	cache   *cache.Store
	logger  *slog.Logger
	now     func() time.Time
}

func NewSyncService(client BattleLogClient, matches match.Repository, rawData rawdata.Repository, store *cache.Store, logger *slog.Logger) *SyncService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SyncService{
		client:  client,
		matches: matches,
		rawData: rawData,
		cache:   store,
		logger:  logger,
		now:     time.Now,
	}
}

func (s *SyncService) Sync(ctx context.Context, rawTag string) (SyncReport, error) {
	ctx, span := startUsecaseSpan(ctx, "SyncService.Sync")
	defer span.End()

	tag, err := player.NormalizeTag(rawTag)
	if err != nil {
		return SyncReport{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	battles, rawBody, err := s.client.FetchBattleLog(ctx, tag)
	if err != nil {
		return SyncReport{}, fmt.Errorf("fetch battle log tag=%s: %w", tag, err)
	}

	report := SyncReport{
		PlayerTag:  tag,
		Fetched:    len(battles),
		SkipCounts: make(map[SkipReason]int),
	}

	accepted := make([]match.Match, 0, len(battles))
	seen := make(map[string]struct{}, len(battles))
	for _, raw := range battles {
		m, skip := NormalizeBattle(raw)
		if skip != SkipNone {
			report.Skipped++
			report.SkipCounts[skip]++
			continue
		}
		if _, dup := seen[m.BattleKey]; dup {
			continue
		}
		seen[m.BattleKey] = struct{}{}
		accepted = append(accepted, m)
	}
	report.Accepted = len(accepted)

	if len(accepted) > 0 {
		inserted, err := s.matches.UpsertBatch(ctx, accepted)
		if err != nil {
			return SyncReport{}, fmt.Errorf("store battle log tag=%s: %w", tag, err)
		}
		report.NewMatches = inserted
	}

	s.archivePayload(ctx, tag, rawBody)
	s.invalidateHistory(tag, accepted)

	s.logger.InfoContext(ctx, "battle log synced",
		"player_tag", tag,
		"fetched", report.Fetched,
		"accepted", report.Accepted,
		"skipped", report.Skipped,
		"new_matches", report.NewMatches,
	)
	return report, nil
}

// archivePayload keeps the latest raw response per player for debugging what
// the provider actually sent. Failures are logged, never surfaced.
func (s *SyncService) archivePayload(ctx context.Context, tag string, rawBody []byte) {
	if s.rawData == nil || len(rawBody) == 0 {
		return
	}

	digest := sha256.Sum256(rawBody)
	payload := rawdata.Payload{
		Source:      BattleLogSource,
		PlayerTag:   tag,
		PayloadJSON: string(rawBody),
		PayloadHash: hex.EncodeToString(digest[:]),
		FetchedAt:   s.now().UTC(),
	}
	if err := s.rawData.Upsert(ctx, payload); err != nil {
		s.logger.WarnContext(ctx, "raw payload archive failed", "player_tag", tag, "error", err)
	}
}

func (s *SyncService) invalidateHistory(requestedTag string, accepted []match.Match) {
	if s.cache == nil {
		return
	}

	tags := map[string]struct{}{requestedTag: {}}
	for _, m := range accepted {
		tags[m.ParticipantA] = struct{}{}
		tags[m.ParticipantB] = struct{}{}
	}
	for tag := range tags {
		s.cache.DeletePrefix(matchListCachePrefix(tag))
	}
}
