package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/kaisarfc/club-backend/internal/domain/syncrun"
	"github.com/kaisarfc/club-backend/internal/domain/teamstats"
	"github.com/kaisarfc/club-backend/internal/platform/logging"
)

// TeamStatsView is the public read model for the season stats block.
type TeamStatsView struct {
	Stats      teamstats.Stats `json:"stats"`
	LastSyncAt *time.Time      `json:"lastSyncAt,omitempty"`
}

type TeamStatsService struct {
	statsRepo       teamstats.Repository
	runRepo         syncrun.Repository
	homeClubID      int64
	defaultSeasonID int64
	logger          *logging.Logger
}

func NewTeamStatsService(
	statsRepo teamstats.Repository,
	runRepo syncrun.Repository,
	homeClubID int64,
	defaultSeasonID int64,
	logger *logging.Logger,
) *TeamStatsService {
	if logger == nil {
		logger = logging.Default()
	}

	return &TeamStatsService{
		statsRepo:       statsRepo,
		runRepo:         runRepo,
		homeClubID:      homeClubID,
		defaultSeasonID: defaultSeasonID,
		logger:          logger,
	}
}

func (s *TeamStatsService) GetTeamStats(ctx context.Context, teamID, seasonID int64) (TeamStatsView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamStatsService.GetTeamStats")
	defer span.End()

	if teamID <= 0 {
		teamID = s.homeClubID
	}
	if seasonID <= 0 {
		seasonID = s.defaultSeasonID
	}
	if teamID <= 0 || seasonID <= 0 {
		return TeamStatsView{}, fmt.Errorf("%w: team id and season id are required", ErrInvalidInput)
	}

	stats, found, err := s.statsRepo.GetByKey(ctx, teamID, seasonID)
	if err != nil {
		return TeamStatsView{}, fmt.Errorf("get team stats team_id=%d season_id=%d: %w", teamID, seasonID, err)
	}
	if !found {
		return TeamStatsView{}, fmt.Errorf("%w: team stats team_id=%d season_id=%d", ErrNotFound, teamID, seasonID)
	}

	view := TeamStatsView{Stats: stats}

	run, foundRun, err := s.runRepo.GetByEntityType(ctx, syncrun.EntityTeamStats)
	if err != nil {
		s.logger.WarnContext(ctx, "get team stats sync run", "error", err)
	} else if foundRun {
		view.LastSyncAt = run.LastSuccess()
	}

	return view, nil
}
