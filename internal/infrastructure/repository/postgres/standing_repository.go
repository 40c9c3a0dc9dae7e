package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/kaisarfc/club-backend/internal/domain/standing"
	qb "github.com/kaisarfc/club-backend/internal/platform/querybuilder"
)

type StandingRepository struct {
	db *sqlx.DB
}

func NewStandingRepository(db *sqlx.DB) *StandingRepository {
	return &StandingRepository{db: db}
}

func (r *StandingRepository) ListBySeason(ctx context.Context, seasonID int64) ([]standing.Row, error) {
	query, args, err := qb.Select("*").From("standings").
		Where(qb.Eq("season_id", seasonID)).
		OrderBy("position", "team_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list standings query: %w", err)
	}

	var rows []standingTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list standings: %w", err)
	}

	out := make([]standing.Row, 0, len(rows))
	for _, row := range rows {
		out = append(out, standingFromTableModel(row))
	}
	return out, nil
}

func (r *StandingRepository) GetByKey(ctx context.Context, seasonID, teamID int64) (standing.Row, bool, error) {
	query, args, err := qb.Select("*").From("standings").
		Where(
			qb.Eq("season_id", seasonID),
			qb.Eq("team_id", teamID),
		).
		ToSQL()
	if err != nil {
		return standing.Row{}, false, fmt.Errorf("build get standing query: %w", err)
	}

	var row standingTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return standing.Row{}, false, nil
		}
		return standing.Row{}, false, fmt.Errorf("get standing: %w", err)
	}

	return standingFromTableModel(row), true, nil
}

func (r *StandingRepository) Create(ctx context.Context, row standing.Row) error {
	query, args, err := qb.InsertModel("standings", standingToInsertModel(row), "")
	if err != nil {
		return fmt.Errorf("build insert standing query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert standing season=%d team=%d: %w", row.SeasonID, row.TeamID, err)
	}
	return nil
}

func (r *StandingRepository) Update(ctx context.Context, row standing.Row) error {
	query, args, err := qb.Update("standings").
		Set("team_name", row.TeamName).
		Set("position", row.Position).
		Set("played", row.Played).
		Set("won", row.Won).
		Set("drawn", row.Drawn).
		Set("lost", row.Lost).
		Set("goals_for", row.GoalsFor).
		Set("goals_against", row.GoalsAgainst).
		Set("goal_difference", row.GoalDifference).
		Set("points", row.Points).
		Set("is_kaisar", row.IsKaisar).
		Set("team_logo_url", row.TeamLogoURL).
		Set("last_sync_at", row.LastSyncAt).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("season_id", row.SeasonID),
			qb.Eq("team_id", row.TeamID),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update standing query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update standing season=%d team=%d: %w", row.SeasonID, row.TeamID, err)
	}
	return nil
}
