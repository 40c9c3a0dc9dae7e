package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/kaisarfc/club-backend/internal/domain/match"
	"github.com/kaisarfc/club-backend/internal/domain/player"
	"github.com/kaisarfc/club-backend/internal/domain/standing"
	"github.com/kaisarfc/club-backend/internal/domain/syncrun"
	"github.com/kaisarfc/club-backend/internal/domain/teamstats"
	"github.com/kaisarfc/club-backend/internal/platform/logging"
)

const (
	defaultRunTimeout  = 2 * time.Minute
	defaultSyncAllSize = 4
)

type SyncConfig struct {
	HomeClubID      int64
	DefaultSeasonID int64
	RunTimeout      time.Duration
}

// SyncInput carries the per-trigger parameters. Zero values fall back to the
// configured defaults where a default exists.
type SyncInput struct {
	SeasonID    int64
	TeamID      int64
	MatchID     int64
	SyncDetails bool
	Force       bool
}

type SyncService struct {
	provider      UpstreamProvider
	standingRepo  standing.Repository
	matchRepo     match.Repository
	playerRepo    player.Repository
	teamStatsRepo teamstats.Repository
	runRepo       syncrun.Repository
	locks         *entityLocks
	cfg           SyncConfig
	logger        *logging.Logger
	now           func() time.Time
}

func NewSyncService(
	provider UpstreamProvider,
	standingRepo standing.Repository,
	matchRepo match.Repository,
	playerRepo player.Repository,
	teamStatsRepo teamstats.Repository,
	runRepo syncrun.Repository,
	cfg SyncConfig,
	logger *logging.Logger,
) *SyncService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.RunTimeout <= 0 {
		cfg.RunTimeout = defaultRunTimeout
	}

	return &SyncService{
		provider:      provider,
		standingRepo:  standingRepo,
		matchRepo:     matchRepo,
		playerRepo:    playerRepo,
		teamStatsRepo: teamStatsRepo,
		runRepo:       runRepo,
		locks:         newEntityLocks(),
		cfg:           cfg,
		logger:        logger,
		now:           time.Now,
	}
}

func (s *SyncService) SyncLeagueTable(ctx context.Context, input SyncInput) (syncrun.Run, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.SyncLeagueTable")
	defer span.End()

	return s.runSync(ctx, syncrun.EntityLeagueTable, input, s.syncLeagueTableRun)
}

func (s *SyncService) SyncMatches(ctx context.Context, input SyncInput) (syncrun.Run, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.SyncMatches")
	defer span.End()

	return s.runSync(ctx, syncrun.EntityMatches, input, s.syncMatchesRun)
}

func (s *SyncService) SyncPlayers(ctx context.Context, input SyncInput) (syncrun.Run, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.SyncPlayers")
	defer span.End()

	return s.runSync(ctx, syncrun.EntityPlayers, input, s.syncPlayersRun)
}

func (s *SyncService) SyncTeamStats(ctx context.Context, input SyncInput) (syncrun.Run, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.SyncTeamStats")
	defer span.End()

	return s.runSync(ctx, syncrun.EntityTeamStats, input, s.syncTeamStatsRun)
}

// SyncAllResult aggregates the per-entity runs of a combined trigger. A run
// that could not start because another trigger holds its lock is reported as
// skipped, not failed.
type SyncAllResult struct {
	Runs    []syncrun.Run
	Skipped []syncrun.EntityType
}

func (r SyncAllResult) AllSucceeded() bool {
	if len(r.Skipped) > 0 {
		return false
	}
	for _, run := range r.Runs {
		if !run.Success {
			return false
		}
	}
	return true
}

// SyncAll runs every entity type concurrently on a worker pool. Each entity
// keeps its own lock, state machine and recorded run; one failing entity does
// not stop the others.
func (s *SyncService) SyncAll(ctx context.Context, input SyncInput) (SyncAllResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.SyncAll")
	defer span.End()

	type taskOutcome struct {
		entityType syncrun.EntityType
		run        syncrun.Run
		err        error
	}

	pool, err := ants.NewPool(defaultSyncAllSize)
	if err != nil {
		return SyncAllResult{}, fmt.Errorf("create sync worker pool: %w", err)
	}
	defer pool.Release()

	outcomes := make(chan taskOutcome, len(syncrun.AllEntityTypes))

	var workers sync.WaitGroup
	for _, entityType := range syncrun.AllEntityTypes {
		entityType := entityType
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			run, runErr := s.dispatchEntitySync(ctx, entityType, input)
			outcomes <- taskOutcome{entityType: entityType, run: run, err: runErr}
		}); err != nil {
			workers.Done()
			return SyncAllResult{}, fmt.Errorf("submit sync task entity_type=%s: %w", entityType, err)
		}
	}

	workers.Wait()
	close(outcomes)

	result := SyncAllResult{Runs: make([]syncrun.Run, 0, len(syncrun.AllEntityTypes))}
	for outcome := range outcomes {
		if errors.Is(outcome.err, ErrSyncInProgress) {
			result.Skipped = append(result.Skipped, outcome.entityType)
			continue
		}
		result.Runs = append(result.Runs, outcome.run)
	}
	return result, nil
}

func (s *SyncService) dispatchEntitySync(ctx context.Context, entityType syncrun.EntityType, input SyncInput) (syncrun.Run, error) {
	switch entityType {
	case syncrun.EntityLeagueTable:
		return s.runSync(ctx, entityType, input, s.syncLeagueTableRun)
	case syncrun.EntityMatches:
		return s.runSync(ctx, entityType, input, s.syncMatchesRun)
	case syncrun.EntityPlayers:
		return s.runSync(ctx, entityType, input, s.syncPlayersRun)
	case syncrun.EntityTeamStats:
		return s.runSync(ctx, entityType, input, s.syncTeamStatsRun)
	default:
		return syncrun.Run{}, fmt.Errorf("%w: unknown entity type %q", ErrInvalidInput, entityType)
	}
}

// Status returns the last recorded run for one entity type.
func (s *SyncService) Status(ctx context.Context, entityType syncrun.EntityType) (syncrun.Run, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.Status")
	defer span.End()

	run, found, err := s.runRepo.GetByEntityType(ctx, entityType)
	if err != nil {
		return syncrun.Run{}, fmt.Errorf("get sync run entity_type=%s: %w", entityType, err)
	}
	if !found {
		return syncrun.Run{}, fmt.Errorf("%w: no sync run recorded for entity_type=%s", ErrNotFound, entityType)
	}
	return run, nil
}

type syncStep func(ctx context.Context, input SyncInput, run *syncrun.Run) error

// runSync drives the shared run lifecycle: take the per-entity lock, walk the
// state machine, record the finished run, release the lock. Failures keep the
// counters accumulated so far so partial progress stays visible.
func (s *SyncService) runSync(
	ctx context.Context,
	entityType syncrun.EntityType,
	input SyncInput,
	step syncStep,
) (syncrun.Run, error) {
	if !s.locks.tryAcquire(entityType) {
		return syncrun.Run{}, fmt.Errorf("%w: entity_type=%s", ErrSyncInProgress, entityType)
	}
	defer s.locks.release(entityType)

	ctx, cancel := context.WithTimeout(ctx, s.cfg.RunTimeout)
	defer cancel()

	run := syncrun.Run{
		EntityType: entityType,
		SeasonID:   s.resolveSeasonID(input),
		TeamID:     input.TeamID,
		State:      syncrun.StatePending,
		StartedAt:  s.now().UTC(),
	}

	err := step(ctx, input, &run)

	finishedAt := s.now().UTC()
	run.FinishedAt = &finishedAt

	switch {
	case err == nil:
		run.State = syncrun.StateDone
		run.Success = true
	case errors.Is(err, ErrUpstreamNotFound):
		// Upstream having no data for the query is a completed empty run,
		// not a failure. Existing records stay untouched.
		run.State = syncrun.StateDone
		run.Success = true
		err = nil
	default:
		run.State = syncrun.StateFailed
		run.Success = false
		run.ErrorDetail = err.Error()
		if errors.Is(err, context.DeadlineExceeded) {
			run.ErrorDetail = fmt.Sprintf("run timed out after %s: %s", s.cfg.RunTimeout, err.Error())
		}
	}

	// The run record must survive the run timeout itself.
	recordCtx := context.WithoutCancel(ctx)
	if run.Success {
		run.LastSuccessAt = run.FinishedAt
	} else if prev, found, prevErr := s.runRepo.GetByEntityType(recordCtx, entityType); prevErr == nil && found {
		// A failed run supersedes the previous row but must not erase when
		// the entity last synced successfully.
		run.LastSuccessAt = prev.LastSuccess()
	}
	if recordErr := s.runRepo.Record(recordCtx, run); recordErr != nil {
		s.logger.ErrorContext(recordCtx, "record sync run",
			"entity_type", string(entityType),
			"error", recordErr,
		)
	}

	s.logger.InfoContext(recordCtx, "sync run finished",
		"entity_type", string(entityType),
		"state", string(run.State),
		"success", run.Success,
		"items_processed", run.ItemsProcessed,
		"items_created", run.ItemsCreated,
		"items_updated", run.ItemsUpdated,
		"items_failed", run.ItemsFailed,
	)

	return run, err
}

func (s *SyncService) resolveSeasonID(input SyncInput) int64 {
	if input.SeasonID > 0 {
		return input.SeasonID
	}
	return s.cfg.DefaultSeasonID
}

func (s *SyncService) resolveTeamID(input SyncInput) int64 {
	if input.TeamID > 0 {
		return input.TeamID
	}
	return s.cfg.HomeClubID
}

func (s *SyncService) syncLeagueTableRun(ctx context.Context, input SyncInput, run *syncrun.Run) error {
	seasonID := s.resolveSeasonID(input)
	if seasonID <= 0 {
		return fmt.Errorf("%w: season id is required for league table sync", ErrInvalidInput)
	}

	run.State = syncrun.StateFetching
	items, err := s.provider.FetchScoreTable(ctx, seasonID)
	if err != nil {
		return fmt.Errorf("fetch score table season_id=%d: %w", seasonID, err)
	}

	run.State = syncrun.StateDiffing
	syncedAt := s.now().UTC()

	// Upstream score-table rows carry no explicit position. Rank by points
	// descending, breaking ties by the provider's list order, so stored
	// positions run 1..N.
	ranked := make([]ExternalStanding, len(items))
	copy(ranked, items)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Points > ranked[j].Points
	})

	run.State = syncrun.StateWriting
	position := 0
	for _, item := range ranked {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("write standings season_id=%d: %w", seasonID, err)
		}
		run.ItemsProcessed++

		if item.TeamID <= 0 {
			run.ItemsFailed++
			s.logger.WarnContext(ctx, "skip standing row without team id",
				"season_id", seasonID,
				"team_name", item.TeamName,
			)
			continue
		}
		position++

		row := mapExternalStandingToRow(seasonID, s.cfg.HomeClubID, position, item, syncedAt)

		existing, found, err := s.standingRepo.GetByKey(ctx, seasonID, row.TeamID)
		if err != nil {
			run.ItemsFailed++
			s.logger.WarnContext(ctx, "load standing row", "team_id", row.TeamID, "error", err)
			continue
		}

		if !found {
			if err := s.standingRepo.Create(ctx, row); err != nil {
				run.ItemsFailed++
				s.logger.WarnContext(ctx, "create standing row", "team_id", row.TeamID, "error", err)
				continue
			}
			run.ItemsCreated++
			continue
		}

		if !input.Force && existing.UpstreamEqual(row) {
			continue
		}

		if err := s.standingRepo.Update(ctx, row); err != nil {
			run.ItemsFailed++
			s.logger.WarnContext(ctx, "update standing row", "team_id", row.TeamID, "error", err)
			continue
		}
		run.ItemsUpdated++
	}

	return nil
}

func (s *SyncService) syncMatchesRun(ctx context.Context, input SyncInput, run *syncrun.Run) error {
	seasonID := s.resolveSeasonID(input)
	if seasonID <= 0 {
		return fmt.Errorf("%w: season id is required for match sync", ErrInvalidInput)
	}

	if input.MatchID > 0 {
		return s.syncSingleMatch(ctx, input, seasonID, run)
	}

	run.State = syncrun.StateFetching
	source := s.provider.Games(seasonID, input.TeamID)

	for {
		items, ok, err := source.Next(ctx)
		if err != nil {
			return fmt.Errorf("fetch games page season_id=%d: %w", seasonID, err)
		}

		run.State = syncrun.StateWriting
		for _, item := range items {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("write matches season_id=%d: %w", seasonID, err)
			}
			run.ItemsProcessed++
			s.upsertMatch(ctx, input, seasonID, item, run)
		}

		if !ok {
			break
		}
		run.State = syncrun.StateFetching
	}

	return nil
}

func (s *SyncService) syncSingleMatch(ctx context.Context, input SyncInput, seasonID int64, run *syncrun.Run) error {
	run.State = syncrun.StateFetching
	item, err := s.provider.FetchGameDetails(ctx, input.MatchID)
	if err != nil {
		return fmt.Errorf("fetch game details match_id=%d: %w", input.MatchID, err)
	}

	if !input.SyncDetails {
		item.HasDetails = false
		item.Lineups = nil
		item.Events = nil
	}

	run.State = syncrun.StateWriting
	run.ItemsProcessed++
	s.upsertMatch(ctx, input, seasonID, item, run)
	return nil
}

func (s *SyncService) upsertMatch(ctx context.Context, input SyncInput, seasonID int64, item ExternalMatch, run *syncrun.Run) {
	if item.ID <= 0 {
		run.ItemsFailed++
		s.logger.WarnContext(ctx, "skip match without external id", "season_id", seasonID)
		return
	}

	syncedAt := s.now().UTC()
	mapped := mapExternalMatchToDomain(seasonID, item, syncedAt)

	if input.SyncDetails && !mapped.HasDetails {
		detailed, err := s.provider.FetchGameDetails(ctx, item.ID)
		if err != nil {
			s.logger.WarnContext(ctx, "fetch match details", "match_id", item.ID, "error", err)
		} else if detailed.HasDetails {
			mapped.HasDetails = true
			mapped.Details = mapExternalMatchDetails(detailed)
		}
	}

	existing, found, err := s.matchRepo.GetByExternalID(ctx, mapped.ExternalID)
	if err != nil {
		run.ItemsFailed++
		s.logger.WarnContext(ctx, "load match", "match_id", mapped.ExternalID, "error", err)
		return
	}

	if !found {
		if err := s.matchRepo.Create(ctx, mapped); err != nil {
			run.ItemsFailed++
			s.logger.WarnContext(ctx, "create match", "match_id", mapped.ExternalID, "error", err)
			return
		}
		run.ItemsCreated++
		return
	}

	// A summary row never downgrades a match that already carries details.
	if !mapped.HasDetails && existing.HasDetails {
		mapped.HasDetails = true
		mapped.Details = existing.Details
	}

	if !input.Force && existing.UpstreamEqual(mapped) {
		return
	}

	if err := s.matchRepo.Update(ctx, mapped); err != nil {
		run.ItemsFailed++
		s.logger.WarnContext(ctx, "update match", "match_id", mapped.ExternalID, "error", err)
		return
	}
	run.ItemsUpdated++
}

func (s *SyncService) syncPlayersRun(ctx context.Context, input SyncInput, run *syncrun.Run) error {
	seasonID := s.resolveSeasonID(input)
	teamID := s.resolveTeamID(input)
	if seasonID <= 0 || teamID <= 0 {
		return fmt.Errorf("%w: season id and team id are required for player sync", ErrInvalidInput)
	}
	run.TeamID = teamID

	run.State = syncrun.StateFetching
	items, err := s.provider.FetchTeamPlayers(ctx, teamID, seasonID)
	if err != nil {
		return fmt.Errorf("fetch team players team_id=%d season_id=%d: %w", teamID, seasonID, err)
	}

	run.State = syncrun.StateDiffing
	run.State = syncrun.StateWriting
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("write players team_id=%d: %w", teamID, err)
		}
		run.ItemsProcessed++

		if item.ID <= 0 {
			run.ItemsFailed++
			s.logger.WarnContext(ctx, "skip player without external id", "team_id", teamID)
			continue
		}

		fields := mapExternalPlayerFields(seasonID, item)

		existing, found, err := s.playerRepo.GetByExternalID(ctx, item.ID)
		if err != nil {
			run.ItemsFailed++
			s.logger.WarnContext(ctx, "load player", "player_id", item.ID, "error", err)
			continue
		}

		if !found {
			created := newPlayerFromUpstream(item.ID, teamID, fields)
			if err := s.playerRepo.Create(ctx, created); err != nil {
				run.ItemsFailed++
				s.logger.WarnContext(ctx, "create player", "player_id", item.ID, "error", err)
				continue
			}
			run.ItemsCreated++
			continue
		}

		// Only the provider-owned fields are ever written on update. The
		// editorial fields stay exactly as the CMS authors left them,
		// force or not.
		if !input.Force && existing.UpstreamFields.UpstreamEqual(fields) {
			continue
		}

		if err := s.playerRepo.UpdateUpstream(ctx, item.ID, fields); err != nil {
			run.ItemsFailed++
			s.logger.WarnContext(ctx, "update player upstream fields", "player_id", item.ID, "error", err)
			continue
		}
		run.ItemsUpdated++
	}

	return nil
}

func (s *SyncService) syncTeamStatsRun(ctx context.Context, input SyncInput, run *syncrun.Run) error {
	seasonID := s.resolveSeasonID(input)
	teamID := s.resolveTeamID(input)
	if seasonID <= 0 || teamID <= 0 {
		return fmt.Errorf("%w: season id and team id are required for team stats sync", ErrInvalidInput)
	}
	run.TeamID = teamID

	run.State = syncrun.StateFetching
	item, err := s.provider.FetchTeamStats(ctx, teamID, seasonID)
	if err != nil {
		return fmt.Errorf("fetch team stats team_id=%d season_id=%d: %w", teamID, seasonID, err)
	}

	run.State = syncrun.StateDiffing
	syncedAt := s.now().UTC()
	mapped := mapExternalTeamStatsToDomain(teamID, seasonID, item, syncedAt)

	run.State = syncrun.StateWriting
	run.ItemsProcessed++

	existing, found, err := s.teamStatsRepo.GetByKey(ctx, teamID, seasonID)
	if err != nil {
		run.ItemsFailed++
		return fmt.Errorf("load team stats team_id=%d season_id=%d: %w", teamID, seasonID, err)
	}

	if !found {
		if err := s.teamStatsRepo.Create(ctx, mapped); err != nil {
			run.ItemsFailed++
			return fmt.Errorf("create team stats team_id=%d season_id=%d: %w", teamID, seasonID, err)
		}
		run.ItemsCreated++
		return nil
	}

	if !input.Force && existing.UpstreamEqual(mapped) {
		return nil
	}

	if err := s.teamStatsRepo.Update(ctx, mapped); err != nil {
		run.ItemsFailed++
		return fmt.Errorf("update team stats team_id=%d season_id=%d: %w", teamID, seasonID, err)
	}
	run.ItemsUpdated++
	return nil
}
