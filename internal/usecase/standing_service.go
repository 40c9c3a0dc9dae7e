package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/kaisarfc/club-backend/internal/domain/media"
	"github.com/kaisarfc/club-backend/internal/domain/standing"
	"github.com/kaisarfc/club-backend/internal/domain/syncrun"
	"github.com/kaisarfc/club-backend/internal/platform/logging"
)

// LeagueTableView is the public read model for the standings page.
type LeagueTableView struct {
	SeasonID   int64          `json:"seasonId"`
	Rows       []standing.Row `json:"rows"`
	LastSyncAt *time.Time     `json:"lastSyncAt,omitempty"`
}

type StandingService struct {
	standingRepo    standing.Repository
	mediaRepo       media.Repository
	runRepo         syncrun.Repository
	defaultSeasonID int64
	logger          *logging.Logger
}

func NewStandingService(
	standingRepo standing.Repository,
	mediaRepo media.Repository,
	runRepo syncrun.Repository,
	defaultSeasonID int64,
	logger *logging.Logger,
) *StandingService {
	if logger == nil {
		logger = logging.Default()
	}

	return &StandingService{
		standingRepo:    standingRepo,
		mediaRepo:       mediaRepo,
		runRepo:         runRepo,
		defaultSeasonID: defaultSeasonID,
		logger:          logger,
	}
}

// GetLeagueTable returns the stored table ordered by position. Team logos are
// swapped for locally hosted media when an asset exists for the team; the
// provider URL stays as the fallback. A missing media lookup degrades to the
// stored URLs instead of failing the page.
func (s *StandingService) GetLeagueTable(ctx context.Context, seasonID int64) (LeagueTableView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingService.GetLeagueTable")
	defer span.End()

	if seasonID <= 0 {
		seasonID = s.defaultSeasonID
	}
	if seasonID <= 0 {
		return LeagueTableView{}, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}

	rows, err := s.standingRepo.ListBySeason(ctx, seasonID)
	if err != nil {
		return LeagueTableView{}, fmt.Errorf("list standings season_id=%d: %w", seasonID, err)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Position < rows[j].Position
	})

	assets, err := s.mediaRepo.ListTeamLogos(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "list team logo assets", "error", err)
	} else {
		overrides := make(map[int64]string, len(assets))
		for _, asset := range assets {
			overrides[asset.TeamID] = media.URL("teams", asset.Filename)
		}
		for i := range rows {
			if url, ok := overrides[rows[i].TeamID]; ok && url != "" {
				rows[i].TeamLogoURL = url
			}
		}
	}

	view := LeagueTableView{SeasonID: seasonID, Rows: rows}

	run, found, err := s.runRepo.GetByEntityType(ctx, syncrun.EntityLeagueTable)
	if err != nil {
		s.logger.WarnContext(ctx, "get league table sync run", "error", err)
	} else if found {
		view.LastSyncAt = run.LastSuccess()
	}

	return view, nil
}
