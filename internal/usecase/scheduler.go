package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/kaisarfc/club-backend/internal/domain/syncrun"
	"github.com/kaisarfc/club-backend/internal/platform/logging"
)

type SchedulerConfig struct {
	Enabled          bool
	LeagueTableEvery time.Duration
	MatchesEvery     time.Duration
	PlayersEvery     time.Duration
	TeamStatsEvery   time.Duration
}

// SyncScheduler triggers periodic background runs so CMS content stays fresh
// without manual triggers. Each entity type ticks on its own interval; a tick
// that collides with a manual run in flight is skipped by the entity lock and
// retried on the next tick.
type SyncScheduler struct {
	sync   *SyncService
	cfg    SchedulerConfig
	logger *logging.Logger
}

func NewSyncScheduler(sync *SyncService, cfg SchedulerConfig, logger *logging.Logger) *SyncScheduler {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.LeagueTableEvery <= 0 {
		cfg.LeagueTableEvery = 15 * time.Minute
	}
	if cfg.MatchesEvery <= 0 {
		cfg.MatchesEvery = 10 * time.Minute
	}
	if cfg.PlayersEvery <= 0 {
		cfg.PlayersEvery = 6 * time.Hour
	}
	if cfg.TeamStatsEvery <= 0 {
		cfg.TeamStatsEvery = time.Hour
	}

	return &SyncScheduler{sync: sync, cfg: cfg, logger: logger}
}

// Run blocks until ctx is cancelled.
func (s *SyncScheduler) Run(ctx context.Context) {
	if !s.cfg.Enabled {
		s.logger.InfoContext(ctx, "sync scheduler is disabled")
		return
	}

	var wg conc.WaitGroup
	wg.Go(func() { s.loop(ctx, syncrun.EntityLeagueTable, s.cfg.LeagueTableEvery) })
	wg.Go(func() { s.loop(ctx, syncrun.EntityMatches, s.cfg.MatchesEvery) })
	wg.Go(func() { s.loop(ctx, syncrun.EntityPlayers, s.cfg.PlayersEvery) })
	wg.Go(func() { s.loop(ctx, syncrun.EntityTeamStats, s.cfg.TeamStatsEvery) })
	wg.Wait()
}

func (s *SyncScheduler) loop(ctx context.Context, entityType syncrun.EntityType, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			run, err := s.sync.dispatchEntitySync(ctx, entityType, SyncInput{})
			switch {
			case errors.Is(err, ErrSyncInProgress):
				s.logger.InfoContext(ctx, "scheduled sync skipped, run already in flight",
					"entity_type", string(entityType),
				)
			case err != nil:
				s.logger.WarnContext(ctx, "scheduled sync failed",
					"entity_type", string(entityType),
					"error", err,
					"items_failed", run.ItemsFailed,
				)
			}
		}
	}
}
