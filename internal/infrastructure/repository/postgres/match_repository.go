package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/kaisarfc/club-backend/internal/domain/match"
	qb "github.com/kaisarfc/club-backend/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) ListBySeason(ctx context.Context, seasonID int64) ([]match.Match, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(qb.Eq("season_id", seasonID)).
		OrderBy("kickoff_at", "external_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list matches query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		item, err := matchFromTableModel(row)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *MatchRepository) GetByExternalID(ctx context.Context, externalID int64) (match.Match, bool, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(qb.Eq("external_id", externalID)).
		ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build get match query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("get match: %w", err)
	}

	item, err := matchFromTableModel(row)
	if err != nil {
		return match.Match{}, false, err
	}
	return item, true, nil
}

func (r *MatchRepository) Create(ctx context.Context, item match.Match) error {
	model, err := matchToInsertModel(item)
	if err != nil {
		return err
	}

	query, args, err := qb.InsertModel("matches", model, "")
	if err != nil {
		return fmt.Errorf("build insert match query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert match external_id=%d: %w", item.ExternalID, err)
	}
	return nil
}

func (r *MatchRepository) Update(ctx context.Context, item match.Match) error {
	details, err := marshalMatchDetails(item.Details)
	if err != nil {
		return err
	}

	query, args, err := qb.Update("matches").
		Set("season_id", item.SeasonID).
		Set("tour", item.Tour).
		Set("kickoff_at", item.KickoffAt).
		Set("home_team_id", item.HomeTeamID).
		Set("away_team_id", item.AwayTeamID).
		Set("home_team_name", item.HomeTeamName).
		Set("away_team_name", item.AwayTeamName).
		Set("home_score", intPtrToNullInt64(item.HomeScore)).
		Set("away_score", intPtrToNullInt64(item.AwayScore)).
		Set("venue", item.Venue).
		Set("status", item.Status).
		Set("has_details", item.HasDetails).
		Set("details", details).
		Set("last_sync_at", item.LastSyncAt).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("external_id", item.ExternalID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update match query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update match external_id=%d: %w", item.ExternalID, err)
	}
	return nil
}
