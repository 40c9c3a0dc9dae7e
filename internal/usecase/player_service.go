package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/kaisarfc/club-backend/internal/domain/player"
	"github.com/kaisarfc/club-backend/internal/domain/syncrun"
	"github.com/kaisarfc/club-backend/internal/platform/logging"
)

// SquadView is the public read model for the squad page.
type SquadView struct {
	TeamID     int64           `json:"teamId"`
	SeasonID   int64           `json:"seasonId"`
	Players    []player.Player `json:"players"`
	LastSyncAt *time.Time      `json:"lastSyncAt,omitempty"`
}

type PlayerService struct {
	playerRepo      player.Repository
	runRepo         syncrun.Repository
	homeClubID      int64
	defaultSeasonID int64
	logger          *logging.Logger
}

func NewPlayerService(
	playerRepo player.Repository,
	runRepo syncrun.Repository,
	homeClubID int64,
	defaultSeasonID int64,
	logger *logging.Logger,
) *PlayerService {
	if logger == nil {
		logger = logging.Default()
	}

	return &PlayerService{
		playerRepo:      playerRepo,
		runRepo:         runRepo,
		homeClubID:      homeClubID,
		defaultSeasonID: defaultSeasonID,
		logger:          logger,
	}
}

// ListPlayers returns the stored squad sorted by jersey number, name as the
// tiebreak. Players whose stats belong to a different season are still listed;
// the season only scopes what a sync run fetches.
func (s *PlayerService) ListPlayers(ctx context.Context, teamID, seasonID int64) (SquadView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.ListPlayers")
	defer span.End()

	if teamID <= 0 {
		teamID = s.homeClubID
	}
	if seasonID <= 0 {
		seasonID = s.defaultSeasonID
	}
	if teamID <= 0 {
		return SquadView{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	players, err := s.playerRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return SquadView{}, fmt.Errorf("list players team_id=%d: %w", teamID, err)
	}

	sort.SliceStable(players, func(i, j int) bool {
		if players[i].JerseyNumber != players[j].JerseyNumber {
			return players[i].JerseyNumber < players[j].JerseyNumber
		}
		return players[i].Name < players[j].Name
	})

	view := SquadView{TeamID: teamID, SeasonID: seasonID, Players: players}

	run, found, err := s.runRepo.GetByEntityType(ctx, syncrun.EntityPlayers)
	if err != nil {
		s.logger.WarnContext(ctx, "get players sync run", "error", err)
	} else if found {
		view.LastSyncAt = run.LastSuccess()
	}

	return view, nil
}

// GetPlayer returns one player by external id.
func (s *PlayerService) GetPlayer(ctx context.Context, externalID int64) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.GetPlayer")
	defer span.End()

	if externalID <= 0 {
		return player.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	item, found, err := s.playerRepo.GetByExternalID(ctx, externalID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player player_id=%d: %w", externalID, err)
	}
	if !found {
		return player.Player{}, fmt.Errorf("%w: player player_id=%d", ErrNotFound, externalID)
	}
	return item, nil
}
