package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/kaisarfc/club-backend/internal/domain/media"
	qb "github.com/kaisarfc/club-backend/internal/platform/querybuilder"
)

const mediaKindTeamLogo = "team_logo"

type mediaAssetTableModel struct {
	Kind     string `db:"kind"`
	OwnerID  int64  `db:"owner_id"`
	Filename string `db:"filename"`
}

// MediaRepository reads admin-uploaded assets. Rows are written by the CMS,
// never by sync, so the repository is read-only here.
type MediaRepository struct {
	db *sqlx.DB
}

func NewMediaRepository(db *sqlx.DB) *MediaRepository {
	return &MediaRepository{db: db}
}

func (r *MediaRepository) GetTeamLogo(ctx context.Context, teamID int64) (media.TeamAsset, bool, error) {
	query, args, err := qb.Select("kind", "owner_id", "filename").From("media_assets").
		Where(
			qb.Eq("kind", mediaKindTeamLogo),
			qb.Eq("owner_id", teamID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return media.TeamAsset{}, false, fmt.Errorf("build get team logo query: %w", err)
	}

	var row mediaAssetTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return media.TeamAsset{}, false, nil
		}
		return media.TeamAsset{}, false, fmt.Errorf("get team logo: %w", err)
	}

	return media.TeamAsset{TeamID: row.OwnerID, Filename: row.Filename}, true, nil
}

func (r *MediaRepository) ListTeamLogos(ctx context.Context) ([]media.TeamAsset, error) {
	query, args, err := qb.Select("kind", "owner_id", "filename").From("media_assets").
		Where(
			qb.Eq("kind", mediaKindTeamLogo),
			qb.IsNull("deleted_at"),
		).
		OrderBy("owner_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list team logos query: %w", err)
	}

	var rows []mediaAssetTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list team logos: %w", err)
	}

	out := make([]media.TeamAsset, 0, len(rows))
	for _, row := range rows {
		out = append(out, media.TeamAsset{TeamID: row.OwnerID, Filename: row.Filename})
	}
	return out, nil
}
