package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/kaisarfc/club-backend/external/soccerapi"
	"github.com/kaisarfc/club-backend/internal/config"
	"github.com/kaisarfc/club-backend/internal/domain/match"
	"github.com/kaisarfc/club-backend/internal/domain/media"
	"github.com/kaisarfc/club-backend/internal/domain/player"
	"github.com/kaisarfc/club-backend/internal/domain/standing"
	"github.com/kaisarfc/club-backend/internal/domain/syncrun"
	"github.com/kaisarfc/club-backend/internal/domain/teamstats"
	repocache "github.com/kaisarfc/club-backend/internal/infrastructure/repository/cache"
	"github.com/kaisarfc/club-backend/internal/infrastructure/repository/memory"
	"github.com/kaisarfc/club-backend/internal/infrastructure/repository/postgres"
	"github.com/kaisarfc/club-backend/internal/interfaces/httpapi"
	platformcache "github.com/kaisarfc/club-backend/internal/platform/cache"
	"github.com/kaisarfc/club-backend/internal/platform/logging"
	"github.com/kaisarfc/club-backend/internal/platform/resilience"
	"github.com/kaisarfc/club-backend/internal/usecase"
)

// App bundles the wired HTTP server with the background pieces main has to
// run and tear down.
type App struct {
	Server    *http.Server
	Scheduler *usecase.SyncScheduler
	closeFns  []func(context.Context) error
}

// Close releases resources in reverse wiring order.
func (a *App) Close(ctx context.Context) error {
	var firstErr error
	for i := len(a.closeFns) - 1; i >= 0; i-- {
		if err := a.closeFns[i](ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}

type repositories struct {
	standings standing.Repository
	matches   match.Repository
	players   player.Repository
	teamStats teamstats.Repository
	syncRuns  syncrun.Repository
	media     media.Repository
}

// Build wires the whole service: storage, the provider client, the sync
// engine, read services and the HTTP router. An empty DB_URL falls back to
// in-memory repositories, which is what local development without Postgres
// uses.
func Build(cfg config.Config, httpLogger *slog.Logger, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	a := &App{}

	repos, err := buildRepositories(cfg, logger, a)
	if err != nil {
		return nil, err
	}

	if cfg.CacheEnabled {
		store := platformcache.NewStore(cfg.CacheTTL)
		repos.standings = repocache.NewStandingRepository(repos.standings, store)
	}

	provider := soccerapi.NewClient(soccerapi.ClientConfig{
		BaseURL:      cfg.SoccerAPIBaseURL,
		Token:        cfg.SoccerAPIToken,
		Timeout:      cfg.SoccerAPITimeout,
		MaxRetries:   cfg.SoccerAPIMaxRetries,
		GamePageSize: cfg.SoccerAPIGamePageSize,
		Logger:       logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.SoccerAPICircuitEnabled,
			FailureThreshold: cfg.SoccerAPICircuitFailures,
			OpenTimeout:      cfg.SoccerAPICircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.SoccerAPICircuitHalfOpenMax,
		},
	})

	syncSvc := usecase.NewSyncService(
		provider,
		repos.standings,
		repos.matches,
		repos.players,
		repos.teamStats,
		repos.syncRuns,
		usecase.SyncConfig{
			HomeClubID:      cfg.HomeClubID,
			DefaultSeasonID: cfg.DefaultSeasonID,
			RunTimeout:      cfg.SyncRunTimeout,
		},
		logger,
	)
	standingSvc := usecase.NewStandingService(repos.standings, repos.media, repos.syncRuns, cfg.DefaultSeasonID, logger)
	playerSvc := usecase.NewPlayerService(repos.players, repos.syncRuns, cfg.HomeClubID, cfg.DefaultSeasonID, logger)
	teamStatsSvc := usecase.NewTeamStatsService(repos.teamStats, repos.syncRuns, cfg.HomeClubID, cfg.DefaultSeasonID, logger)

	if cfg.SchedulerEnabled {
		a.Scheduler = usecase.NewSyncScheduler(syncSvc, usecase.SchedulerConfig{
			Enabled:          true,
			LeagueTableEvery: cfg.SyncLeagueTableInterval,
			MatchesEvery:     cfg.SyncMatchesInterval,
			PlayersEvery:     cfg.SyncPlayersInterval,
			TeamStatsEvery:   cfg.SyncTeamStatsInterval,
		}, logger)
	}

	handler := httpapi.NewHandler(standingSvc, playerSvc, teamStatsSvc, syncSvc, httpLogger)
	router := httpapi.NewRouter(handler, httpLogger, cfg.CORSAllowedOrigins, cfg.SyncToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}
	a.Server = server

	return a, nil
}

func buildRepositories(cfg config.Config, logger *logging.Logger, a *App) (repositories, error) {
	if strings.TrimSpace(cfg.DBURL) == "" {
		logger.Warn("DB_URL empty, using in-memory repositories")
		return repositories{
			standings: memory.NewStandingRepository(),
			matches:   memory.NewMatchRepository(),
			players:   memory.NewPlayerRepository(),
			teamStats: memory.NewTeamStatsRepository(),
			syncRuns:  memory.NewSyncRunRepository(),
			media:     memory.NewMediaRepository(nil),
		}, nil
	}

	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return repositories{}, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return repositories{}, fmt.Errorf("ping database: %w", err)
	}
	a.closeFns = append(a.closeFns, func(context.Context) error { return db.Close() })

	return repositories{
		standings: postgres.NewStandingRepository(db),
		matches:   postgres.NewMatchRepository(db),
		players:   postgres.NewPlayerRepository(db),
		teamStats: postgres.NewTeamStatsRepository(db),
		syncRuns:  postgres.NewSyncRunRepository(db),
		media:     postgres.NewMediaRepository(db),
	}, nil
}
