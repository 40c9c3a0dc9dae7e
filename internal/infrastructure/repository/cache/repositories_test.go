package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kaisarfc/club-backend/internal/domain/standing"
	basecache "github.com/kaisarfc/club-backend/internal/platform/cache"
)

type countingStandingRepo struct {
	rows      map[int64][]standing.Row
	listCalls int
}

func (r *countingStandingRepo) ListBySeason(_ context.Context, seasonID int64) ([]standing.Row, error) {
	r.listCalls++
	return append([]standing.Row(nil), r.rows[seasonID]...), nil
}

func (r *countingStandingRepo) GetByKey(_ context.Context, seasonID, teamID int64) (standing.Row, bool, error) {
	for _, row := range r.rows[seasonID] {
		if row.TeamID == teamID {
			return row, true, nil
		}
	}
	return standing.Row{}, false, nil
}

func (r *countingStandingRepo) Create(_ context.Context, row standing.Row) error {
	r.rows[row.SeasonID] = append(r.rows[row.SeasonID], row)
	return nil
}

func (r *countingStandingRepo) Update(_ context.Context, row standing.Row) error {
	rows := r.rows[row.SeasonID]
	for i := range rows {
		if rows[i].TeamID == row.TeamID {
			rows[i] = row
			return nil
		}
	}
	return r.Create(context.Background(), row)
}

func TestStandingRepository_ListBySeason_ServesFromCache(t *testing.T) {
	t.Parallel()

	next := &countingStandingRepo{rows: map[int64][]standing.Row{
		2025: {{SeasonID: 2025, TeamID: 10, TeamName: "Kaisar FC", Position: 1, Points: 53}},
	}}
	repo := NewStandingRepository(next, basecache.NewStore(time.Minute))
	ctx := context.Background()

	first, err := repo.ListBySeason(ctx, 2025)
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := repo.ListBySeason(ctx, 2025)
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, 1, next.listCalls, "second read must be served from cache")
}

func TestStandingRepository_WriteInvalidatesSeason(t *testing.T) {
	t.Parallel()

	next := &countingStandingRepo{rows: map[int64][]standing.Row{
		2025: {{SeasonID: 2025, TeamID: 10, TeamName: "Kaisar FC", Position: 1, Points: 53}},
	}}
	repo := NewStandingRepository(next, basecache.NewStore(time.Minute))
	ctx := context.Background()

	_, err := repo.ListBySeason(ctx, 2025)
	require.NoError(t, err)

	updated := standing.Row{SeasonID: 2025, TeamID: 10, TeamName: "Kaisar FC", Position: 1, Points: 56}
	require.NoError(t, repo.Update(ctx, updated))

	rows, err := repo.ListBySeason(ctx, 2025)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, 56, rows[0].Points, "write must invalidate the cached season")
	require.Equal(t, 2, next.listCalls)
}

func TestStandingRepository_CachesNegativeLookups(t *testing.T) {
	t.Parallel()

	next := &countingStandingRepo{rows: map[int64][]standing.Row{}}
	repo := NewStandingRepository(next, basecache.NewStore(time.Minute))
	ctx := context.Background()

	_, exists, err := repo.GetByKey(ctx, 2025, 99)
	require.NoError(t, err)
	require.False(t, exists)

	_, exists, err = repo.GetByKey(ctx, 2025, 99)
	require.NoError(t, err)
	require.False(t, exists)
}
