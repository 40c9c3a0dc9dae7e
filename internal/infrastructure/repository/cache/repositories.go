package cache

import (
	"context"
	"strconv"

	"github.com/kaisarfc/club-backend/internal/domain/standing"
	basecache "github.com/kaisarfc/club-backend/internal/platform/cache"
)

// StandingRepository caches the standings read path. Writes go straight to
// the underlying repository and invalidate the affected season so the next
// page load reflects the sync immediately.
type StandingRepository struct {
	next  standing.Repository
	cache *basecache.Store
}

func NewStandingRepository(next standing.Repository, cache *basecache.Store) *StandingRepository {
	return &StandingRepository{next: next, cache: cache}
}

type cachedStandingByKey struct {
	value  standing.Row
	exists bool
}

func (r *StandingRepository) ListBySeason(ctx context.Context, seasonID int64) ([]standing.Row, error) {
	key := seasonListKey(seasonID)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		rows, err := r.next.ListBySeason(ctx, seasonID)
		if err != nil {
			return nil, err
		}
		return append([]standing.Row(nil), rows...), nil
	})
	if err != nil {
		return nil, err
	}

	rows, _ := v.([]standing.Row)
	return append([]standing.Row(nil), rows...), nil
}

func (r *StandingRepository) GetByKey(ctx context.Context, seasonID, teamID int64) (standing.Row, bool, error) {
	key := rowKey(seasonID, teamID)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		row, exists, err := r.next.GetByKey(ctx, seasonID, teamID)
		if err != nil {
			return nil, err
		}
		return cachedStandingByKey{value: row, exists: exists}, nil
	})
	if err != nil {
		return standing.Row{}, false, err
	}

	cached, _ := v.(cachedStandingByKey)
	return cached.value, cached.exists, nil
}

func (r *StandingRepository) Create(ctx context.Context, row standing.Row) error {
	if err := r.next.Create(ctx, row); err != nil {
		return err
	}
	r.invalidate(ctx, row)
	return nil
}

func (r *StandingRepository) Update(ctx context.Context, row standing.Row) error {
	if err := r.next.Update(ctx, row); err != nil {
		return err
	}
	r.invalidate(ctx, row)
	return nil
}

func (r *StandingRepository) invalidate(ctx context.Context, row standing.Row) {
	r.cache.Delete(ctx, seasonListKey(row.SeasonID))
	r.cache.Delete(ctx, rowKey(row.SeasonID, row.TeamID))
}

func seasonListKey(seasonID int64) string {
	return "standing:season:" + strconv.FormatInt(seasonID, 10)
}

func rowKey(seasonID, teamID int64) string {
	return "standing:row:" + strconv.FormatInt(seasonID, 10) + ":" + strconv.FormatInt(teamID, 10)
}
