package app

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	"github.com/battlelog/cr-tracker/external/clashroyale"
	"github.com/battlelog/cr-tracker/internal/config"
	"github.com/battlelog/cr-tracker/internal/infrastructure/repository/postgres"
	"github.com/battlelog/cr-tracker/internal/interfaces/httpapi"
	"github.com/battlelog/cr-tracker/internal/platform/cache"
	"github.com/battlelog/cr-tracker/internal/platform/logging"
	"github.com/battlelog/cr-tracker/internal/platform/resilience"
	"github.com/battlelog/cr-tracker/internal/usecase"
)

// App owns the long-lived resources behind the HTTP server.
type App struct {
	Server *http.Server
	db     *sqlx.DB
	cache  *cache.Store
}

func New(cfg config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := connectDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	matchRepo := postgres.NewMatchRepository(db)
	playerRepo := postgres.NewPlayerRepository(db)
	friendshipRepo := postgres.NewFriendshipRepository(db)
	rawDataRepo := postgres.NewRawDataRepository(db)

	var store *cache.Store
	if cfg.CacheEnabled {
		store = cache.NewStore(cfg.CacheTTL, cfg.CacheTTL)
	}

	client := clashroyale.NewClient(clashroyale.ClientConfig{
		BaseURL:    cfg.ClashRoyaleBaseURL,
		Token:      cfg.ClashRoyaleToken,
		Timeout:    cfg.ClashRoyaleTimeout,
		MaxRetries: cfg.ClashRoyaleMaxRetries,
		Logger:     logging.Default(),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.ClashRoyaleCircuitEnabled,
			FailureThreshold: cfg.ClashRoyaleCircuitFailureCount,
			OpenTimeout:      cfg.ClashRoyaleCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.ClashRoyaleCircuitHalfOpenMaxReq,
		},
	})

	playerSvc := usecase.NewPlayerService(playerRepo)
	matchSvc := usecase.NewMatchService(matchRepo, store)
	friendSvc := usecase.NewFriendService(playerRepo, friendshipRepo)
	syncSvc := usecase.NewSyncService(client, matchRepo, rawDataRepo, store, logger)
	bulkSyncSvc := usecase.NewBulkSyncService(playerRepo, syncSvc, cfg.SyncAllWorkers, logger)

	handler := httpapi.NewHandler(playerSvc, matchSvc, friendSvc, syncSvc, bulkSyncSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return &App{Server: server, db: db, cache: store}, nil
}

// Close releases the database pool and cache janitor. The HTTP server is
// shut down separately by the caller.
func (a *App) Close() error {
	if a.cache != nil {
		a.cache.Close()
	}
	if a.db != nil {
		return a.db.Close()
	}

	return nil
}

func connectDB(cfg config.Config) (*sqlx.DB, error) {
	dbURL := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Connect("postgres", dbURL,
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
		otelsql.WithDBName(dbNameFromURL(dbURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}
