package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/kaisarfc/club-backend/internal/domain/teamstats"
	qb "github.com/kaisarfc/club-backend/internal/platform/querybuilder"
)

type teamStatsTableModel struct {
	TeamID        int64     `db:"team_id"`
	SeasonID      int64     `db:"season_id"`
	Matches       int       `db:"matches"`
	Wins          int       `db:"wins"`
	Draws         int       `db:"draws"`
	Losses        int       `db:"losses"`
	GoalsFor      int       `db:"goals_for"`
	GoalsAgainst  int       `db:"goals_against"`
	CleanSheets   int       `db:"clean_sheets"`
	YellowCards   int       `db:"yellow_cards"`
	RedCards      int       `db:"red_cards"`
	Shots         int       `db:"shots"`
	ShotsOnTarget int       `db:"shots_on_target"`
	PossessionPct float64   `db:"possession_pct"`
	LastSyncAt    time.Time `db:"last_sync_at"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

type teamStatsInsertModel struct {
	TeamID        int64     `db:"team_id"`
	SeasonID      int64     `db:"season_id"`
	Matches       int       `db:"matches"`
	Wins          int       `db:"wins"`
	Draws         int       `db:"draws"`
	Losses        int       `db:"losses"`
	GoalsFor      int       `db:"goals_for"`
	GoalsAgainst  int       `db:"goals_against"`
	CleanSheets   int       `db:"clean_sheets"`
	YellowCards   int       `db:"yellow_cards"`
	RedCards      int       `db:"red_cards"`
	Shots         int       `db:"shots"`
	ShotsOnTarget int       `db:"shots_on_target"`
	PossessionPct float64   `db:"possession_pct"`
	LastSyncAt    time.Time `db:"last_sync_at"`
}

type TeamStatsRepository struct {
	db *sqlx.DB
}

func NewTeamStatsRepository(db *sqlx.DB) *TeamStatsRepository {
	return &TeamStatsRepository{db: db}
}

func (r *TeamStatsRepository) GetByKey(ctx context.Context, teamID, seasonID int64) (teamstats.Stats, bool, error) {
	query, args, err := qb.Select("*").From("team_stats").
		Where(
			qb.Eq("team_id", teamID),
			qb.Eq("season_id", seasonID),
		).
		ToSQL()
	if err != nil {
		return teamstats.Stats{}, false, fmt.Errorf("build get team stats query: %w", err)
	}

	var row teamStatsTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return teamstats.Stats{}, false, nil
		}
		return teamstats.Stats{}, false, fmt.Errorf("get team stats: %w", err)
	}

	return teamstats.Stats{
		TeamID:        row.TeamID,
		SeasonID:      row.SeasonID,
		Matches:       row.Matches,
		Wins:          row.Wins,
		Draws:         row.Draws,
		Losses:        row.Losses,
		GoalsFor:      row.GoalsFor,
		GoalsAgainst:  row.GoalsAgainst,
		CleanSheets:   row.CleanSheets,
		YellowCards:   row.YellowCards,
		RedCards:      row.RedCards,
		Shots:         row.Shots,
		ShotsOnTarget: row.ShotsOnTarget,
		PossessionPct: row.PossessionPct,
		LastSyncAt:    row.LastSyncAt,
	}, true, nil
}

func (r *TeamStatsRepository) Create(ctx context.Context, stats teamstats.Stats) error {
	model := teamStatsInsertModel{
		TeamID:        stats.TeamID,
		SeasonID:      stats.SeasonID,
		Matches:       stats.Matches,
		Wins:          stats.Wins,
		Draws:         stats.Draws,
		Losses:        stats.Losses,
		GoalsFor:      stats.GoalsFor,
		GoalsAgainst:  stats.GoalsAgainst,
		CleanSheets:   stats.CleanSheets,
		YellowCards:   stats.YellowCards,
		RedCards:      stats.RedCards,
		Shots:         stats.Shots,
		ShotsOnTarget: stats.ShotsOnTarget,
		PossessionPct: stats.PossessionPct,
		LastSyncAt:    stats.LastSyncAt,
	}

	query, args, err := qb.InsertModel("team_stats", model, "")
	if err != nil {
		return fmt.Errorf("build insert team stats query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert team stats team=%d season=%d: %w", stats.TeamID, stats.SeasonID, err)
	}
	return nil
}

func (r *TeamStatsRepository) Update(ctx context.Context, stats teamstats.Stats) error {
	query, args, err := qb.Update("team_stats").
		Set("matches", stats.Matches).
		Set("wins", stats.Wins).
		Set("draws", stats.Draws).
		Set("losses", stats.Losses).
		Set("goals_for", stats.GoalsFor).
		Set("goals_against", stats.GoalsAgainst).
		Set("clean_sheets", stats.CleanSheets).
		Set("yellow_cards", stats.YellowCards).
		Set("red_cards", stats.RedCards).
		Set("shots", stats.Shots).
		Set("shots_on_target", stats.ShotsOnTarget).
		Set("possession_pct", stats.PossessionPct).
		Set("last_sync_at", stats.LastSyncAt).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("team_id", stats.TeamID),
			qb.Eq("season_id", stats.SeasonID),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update team stats query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update team stats team=%d season=%d: %w", stats.TeamID, stats.SeasonID, err)
	}
	return nil
}
