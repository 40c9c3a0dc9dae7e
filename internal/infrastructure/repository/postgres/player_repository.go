package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/kaisarfc/club-backend/internal/domain/player"
	qb "github.com/kaisarfc/club-backend/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) ListByTeam(ctx context.Context, teamID int64) ([]player.Player, error) {
	query, args, err := qb.Select("*").From("players").
		Where(qb.Eq("team_id", teamID)).
		OrderBy("jersey_number", "external_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list players query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		item, err := playerFromTableModel(row)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *PlayerRepository) GetByExternalID(ctx context.Context, externalID int64) (player.Player, bool, error) {
	query, args, err := qb.Select("*").From("players").
		Where(qb.Eq("external_id", externalID)).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build get player query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("get player: %w", err)
	}

	item, err := playerFromTableModel(row)
	if err != nil {
		return player.Player{}, false, err
	}
	return item, true, nil
}

func (r *PlayerRepository) Create(ctx context.Context, item player.Player) error {
	model, err := playerToInsertModel(item)
	if err != nil {
		return err
	}

	query, args, err := qb.InsertModel("players", model, "")
	if err != nil {
		return fmt.Errorf("build insert player query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert player external_id=%d: %w", item.ExternalID, err)
	}
	return nil
}

// UpdateUpstream writes only the provider-owned columns. The editorial
// columns are not part of the statement at all, so a concurrent admin edit
// can never be clobbered by a sync run.
func (r *PlayerRepository) UpdateUpstream(ctx context.Context, externalID int64, fields player.UpstreamFields) error {
	query, args, err := qb.Update("players").
		Set("name", fields.Name).
		Set("first_name", fields.FirstName).
		Set("last_name", fields.LastName).
		Set("jersey_number", fields.JerseyNumber).
		Set("position", fields.Position).
		Set("nationality", fields.Nationality).
		Set("birth_date", timePtrToNullTime(fields.BirthDate)).
		Set("height_cm", fields.HeightCM).
		Set("weight_kg", fields.WeightKG).
		Set("photo_url", fields.PhotoURL).
		Set("stats_season_id", fields.Stats.SeasonID).
		Set("stats_matches", fields.Stats.Matches).
		Set("stats_goals", fields.Stats.Goals).
		Set("stats_assists", fields.Stats.Assists).
		Set("stats_yellow_cards", fields.Stats.YellowCards).
		Set("stats_red_cards", fields.Stats.RedCards).
		Set("stats_minutes", fields.Stats.Minutes).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("external_id", externalID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update player upstream query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update player upstream external_id=%d: %w", externalID, err)
	}
	return nil
}
