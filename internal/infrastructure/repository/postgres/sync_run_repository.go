package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/kaisarfc/club-backend/internal/domain/syncrun"
	qb "github.com/kaisarfc/club-backend/internal/platform/querybuilder"
)

type syncRunTableModel struct {
	EntityType     string       `db:"entity_type"`
	SeasonID       int64        `db:"season_id"`
	TeamID         int64        `db:"team_id"`
	State          string       `db:"state"`
	StartedAt      time.Time    `db:"started_at"`
	FinishedAt     sql.NullTime `db:"finished_at"`
	Success        bool         `db:"success"`
	ItemsProcessed int          `db:"items_processed"`
	ItemsCreated   int          `db:"items_created"`
	ItemsUpdated   int          `db:"items_updated"`
	ItemsFailed    int          `db:"items_failed"`
	ErrorDetail    string       `db:"error_detail"`
	LastSuccessAt  sql.NullTime `db:"last_success_at"`
	UpdatedAt      time.Time    `db:"updated_at"`
}

type syncRunInsertModel struct {
	EntityType     string       `db:"entity_type"`
	SeasonID       int64        `db:"season_id"`
	TeamID         int64        `db:"team_id"`
	State          string       `db:"state"`
	StartedAt      time.Time    `db:"started_at"`
	FinishedAt     sql.NullTime `db:"finished_at"`
	Success        bool         `db:"success"`
	ItemsProcessed int          `db:"items_processed"`
	ItemsCreated   int          `db:"items_created"`
	ItemsUpdated   int          `db:"items_updated"`
	ItemsFailed    int          `db:"items_failed"`
	ErrorDetail    string       `db:"error_detail"`
	LastSuccessAt  sql.NullTime `db:"last_success_at"`
}

// SyncRunRepository keeps one row per entity type: the latest finished run.
type SyncRunRepository struct {
	db *sqlx.DB
}

func NewSyncRunRepository(db *sqlx.DB) *SyncRunRepository {
	return &SyncRunRepository{db: db}
}

func (r *SyncRunRepository) Record(ctx context.Context, run syncrun.Run) error {
	model := syncRunInsertModel{
		EntityType:     string(run.EntityType),
		SeasonID:       run.SeasonID,
		TeamID:         run.TeamID,
		State:          string(run.State),
		StartedAt:      run.StartedAt,
		FinishedAt:     timePtrToNullTime(run.FinishedAt),
		Success:        run.Success,
		ItemsProcessed: run.ItemsProcessed,
		ItemsCreated:   run.ItemsCreated,
		ItemsUpdated:   run.ItemsUpdated,
		ItemsFailed:    run.ItemsFailed,
		ErrorDetail:    run.ErrorDetail,
		LastSuccessAt:  timePtrToNullTime(run.LastSuccessAt),
	}

	query, args, err := qb.InsertModel("sync_runs", model, `ON CONFLICT (entity_type)
DO UPDATE SET
    season_id = EXCLUDED.season_id,
    team_id = EXCLUDED.team_id,
    state = EXCLUDED.state,
    started_at = EXCLUDED.started_at,
    finished_at = EXCLUDED.finished_at,
    success = EXCLUDED.success,
    items_processed = EXCLUDED.items_processed,
    items_created = EXCLUDED.items_created,
    items_updated = EXCLUDED.items_updated,
    items_failed = EXCLUDED.items_failed,
    error_detail = EXCLUDED.error_detail,
    last_success_at = EXCLUDED.last_success_at,
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert sync run query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert sync run entity_type=%s: %w", run.EntityType, err)
	}
	return nil
}

func (r *SyncRunRepository) GetByEntityType(ctx context.Context, entityType syncrun.EntityType) (syncrun.Run, bool, error) {
	query, args, err := qb.Select("*").From("sync_runs").
		Where(qb.Eq("entity_type", string(entityType))).
		ToSQL()
	if err != nil {
		return syncrun.Run{}, false, fmt.Errorf("build get sync run query: %w", err)
	}

	var row syncRunTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return syncrun.Run{}, false, nil
		}
		return syncrun.Run{}, false, fmt.Errorf("get sync run: %w", err)
	}

	return syncrun.Run{
		EntityType:     syncrun.EntityType(row.EntityType),
		SeasonID:       row.SeasonID,
		TeamID:         row.TeamID,
		State:          syncrun.State(row.State),
		StartedAt:      row.StartedAt,
		FinishedAt:     nullTimeToTimePtr(row.FinishedAt),
		Success:        row.Success,
		ItemsProcessed: row.ItemsProcessed,
		ItemsCreated:   row.ItemsCreated,
		ItemsUpdated:   row.ItemsUpdated,
		ItemsFailed:    row.ItemsFailed,
		ErrorDetail:    row.ErrorDetail,
		LastSuccessAt:  nullTimeToTimePtr(row.LastSuccessAt),
	}, true, nil
}
