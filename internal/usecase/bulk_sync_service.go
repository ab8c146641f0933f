package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/battlelog/cr-tracker/internal/domain/player"
)

const defaultBulkSyncWorkers = 4

// BulkSyncResult is one player's outcome within a sync-all run.
type BulkSyncResult struct {
	PlayerTag string     `json:"playerTag"`
	Report    SyncReport `json:"report"`
	Error     string     `json:"error,omitempty"`
}

// BulkSyncService syncs every registered player inside one request using a
// bounded worker pool. One player's upstream failure never aborts the run.
type BulkSyncService struct {
	players player.Repository
	sync    *SyncService
	workers int
	logger  *slog.Logger
}

func NewBulkSyncService(players player.Repository, syncService *SyncService, workers int, logger *slog.Logger) *BulkSyncService {
	if workers < 1 {
		workers = defaultBulkSyncWorkers
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &BulkSyncService{
		players: players,
		sync:    syncService,
		workers: workers,
		logger:  logger,
	}
}

func (s *BulkSyncService) SyncAll(ctx context.Context) ([]BulkSyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "BulkSyncService.SyncAll")
	defer span.End()

	registered, err := s.players.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	if len(registered) == 0 {
		return []BulkSyncResult{}, nil
	}

	pool, err := ants.NewPool(s.workers)
	if err != nil {
		return nil, fmt.Errorf("create sync worker pool: %w", err)
	}
	defer pool.Release()

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results = make([]BulkSyncResult, 0, len(registered))
	)

	record := func(r BulkSyncResult) {
		mu.Lock()
		results = append(results, r)
		mu.Unlock()
	}

	for _, p := range registered {
		tag := p.Tag
		wg.Add(1)
		task := func() {
			defer wg.Done()

			report, syncErr := s.sync.Sync(ctx, tag)
			result := BulkSyncResult{PlayerTag: tag, Report: report}
			if syncErr != nil {
				result.Error = syncErr.Error()
				s.logger.WarnContext(ctx, "bulk sync player failed", "player_tag", tag, "error", syncErr)
			}
			record(result)
		}
		if submitErr := pool.Submit(task); submitErr != nil {
			wg.Done()
			record(BulkSyncResult{PlayerTag: tag, Error: submitErr.Error()})
		}
	}
	wg.Wait()

	sort.Slice(results, func(i, j int) bool { return results[i].PlayerTag < results[j].PlayerTag })
	return results, nil
}
