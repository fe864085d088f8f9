package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/dcastillo/pageant-scoring/internal/config"
	"github.com/dcastillo/pageant-scoring/internal/domain/activity"
	"github.com/dcastillo/pageant-scoring/internal/domain/category"
	"github.com/dcastillo/pageant-scoring/internal/domain/contestant"
	"github.com/dcastillo/pageant-scoring/internal/domain/judge"
	"github.com/dcastillo/pageant-scoring/internal/domain/lock"
	"github.com/dcastillo/pageant-scoring/internal/domain/score"
	"github.com/dcastillo/pageant-scoring/internal/events"
	"github.com/dcastillo/pageant-scoring/internal/infrastructure/account/anubis"
	"github.com/dcastillo/pageant-scoring/internal/infrastructure/repository/memory"
	"github.com/dcastillo/pageant-scoring/internal/infrastructure/repository/postgres"
	"github.com/dcastillo/pageant-scoring/internal/interfaces/httpapi"
	"github.com/dcastillo/pageant-scoring/internal/platform/cache"
	idgen "github.com/dcastillo/pageant-scoring/internal/platform/id"
	"github.com/dcastillo/pageant-scoring/internal/platform/logging"
	"github.com/dcastillo/pageant-scoring/internal/platform/resilience"
	"github.com/dcastillo/pageant-scoring/internal/usecase"
)

type repositorySet struct {
	contestants contestant.Repository
	judges      judge.Repository
	categories  category.Repository
	scores      score.Repository
	locks       lock.Repository
	activity    activity.Repository
}

// NewHTTPServer wires repositories, services and the HTTP router into a ready
// server. The returned cleanup releases everything the wiring opened (database
// pool, retry pool, webhook bridge) and must run after Shutdown.
func NewHTTPServer(cfg config.Config, logger *logging.Logger, httpLogger *slog.Logger) (*http.Server, func(), error) {
	if logger == nil {
		logger = logging.Default()
	}
	if httpLogger == nil {
		httpLogger = slog.Default()
	}

	var cleanups []func()
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	repos, err := buildRepositories(cfg, logger, &cleanups)
	if err != nil {
		return nil, nil, err
	}

	var summaryCache *cache.Store
	if cfg.CacheEnabled {
		summaryCache = cache.NewStore(cfg.CacheTTL)
	}

	broker := events.NewBroker(cfg.EventReplayCapacity, logger)
	idGen := idgen.NewRandomGenerator()

	activitySvc, err := usecase.NewActivityService(repos.activity, idGen, broker, logger)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("build activity service: %w", err)
	}
	cleanups = append(cleanups, activitySvc.Close)

	scoringSvc := usecase.NewScoringService(
		repos.scores,
		repos.locks,
		repos.judges,
		repos.contestants,
		repos.categories,
		activitySvc,
		broker,
		summaryCache,
		logger,
	)
	lockSvc := usecase.NewLockService(
		repos.locks,
		repos.judges,
		repos.contestants,
		repos.categories,
		activitySvc,
		broker,
		summaryCache,
		logger,
	)
	tabulationSvc := usecase.NewTabulationService(
		repos.scores,
		repos.contestants,
		repos.judges,
		repos.categories,
		summaryCache,
		logger,
	)
	adminSvc := usecase.NewAdminService(
		repos.contestants,
		repos.judges,
		repos.scores,
		repos.locks,
		activitySvc,
		broker,
		summaryCache,
		idGen,
		logger,
	)

	anubisClient := anubis.NewClient(
		&http.Client{Timeout: cfg.AnubisTimeout},
		cfg.AnubisBaseURL,
		cfg.AnubisIntrospectPath,
		cfg.AnubisCacheTTL,
		resilience.CircuitBreakerConfig{
			Enabled:          cfg.AnubisCircuitEnabled,
			FailureThreshold: cfg.AnubisCircuitFailureCount,
			OpenTimeout:      cfg.AnubisCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.AnubisCircuitHalfOpenMaxReq,
		},
		httpLogger,
	)

	if cfg.WebhookEnabled {
		bridge, err := events.NewWebhookBridge(events.WebhookBridgeConfig{
			TargetURL: cfg.WebhookTargetURL,
			Token:     cfg.WebhookToken,
			Timeout:   cfg.WebhookTimeout,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.WebhookCircuitEnabled,
				FailureThreshold: cfg.WebhookCircuitFailureCount,
				OpenTimeout:      cfg.WebhookCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.WebhookCircuitHalfOpenMaxReq,
			},
		}, logger)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("build webhook bridge: %w", err)
		}

		bridgeCtx, stopBridge := context.WithCancel(context.Background())
		go bridge.Run(bridgeCtx, broker)
		cleanups = append(cleanups, stopBridge)
	}

	handler := httpapi.NewHandler(
		scoringSvc,
		lockSvc,
		tabulationSvc,
		activitySvc,
		adminSvc,
		repos.contestants,
		repos.judges,
		repos.categories,
		broker,
		logger,
	)
	router := httpapi.NewRouter(handler, anubisClient, httpLogger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		cleanup()
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, cleanup, nil
}

func buildRepositories(cfg config.Config, logger *logging.Logger, cleanups *[]func()) (repositorySet, error) {
	if strings.TrimSpace(cfg.DBURL) == "" {
		logger.Warn("DB_URL is empty, using in-memory repositories with seed data")
		return repositorySet{
			contestants: memory.NewContestantRepository(memory.SeedContestants()),
			judges:      memory.NewJudgeRepository(memory.SeedJudges()),
			categories:  memory.NewCategoryRepository(memory.SeedCategories()),
			scores:      memory.NewScoreRepository(),
			locks:       memory.NewLockRepository(),
			activity:    memory.NewActivityRepository(),
		}, nil
	}

	db, err := connectDB(cfg)
	if err != nil {
		return repositorySet{}, err
	}
	*cleanups = append(*cleanups, func() { _ = db.Close() })

	return repositorySet{
		contestants: postgres.NewContestantRepository(db),
		judges:      postgres.NewJudgeRepository(db),
		categories:  postgres.NewCategoryRepository(db),
		scores:      postgres.NewScoreRepository(db),
		locks:       postgres.NewLockRepository(db),
		activity:    postgres.NewActivityRepository(db),
	}, nil
}

func connectDB(cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Connect("postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	return db, nil
}
