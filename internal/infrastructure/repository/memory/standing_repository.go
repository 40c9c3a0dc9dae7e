package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/kaisarfc/club-backend/internal/domain/standing"
)

type standingKey struct {
	seasonID int64
	teamID   int64
}

type StandingRepository struct {
	mu   sync.RWMutex
	rows map[standingKey]standing.Row
}

func NewStandingRepository() *StandingRepository {
	return &StandingRepository{rows: make(map[standingKey]standing.Row)}
}

func (r *StandingRepository) ListBySeason(_ context.Context, seasonID int64) ([]standing.Row, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]standing.Row, 0, len(r.rows))
	for key, row := range r.rows {
		if key.seasonID == seasonID {
			out = append(out, row)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (r *StandingRepository) GetByKey(_ context.Context, seasonID, teamID int64) (standing.Row, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	row, ok := r.rows[standingKey{seasonID: seasonID, teamID: teamID}]
	return row, ok, nil
}

func (r *StandingRepository) Create(_ context.Context, row standing.Row) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rows[standingKey{seasonID: row.SeasonID, teamID: row.TeamID}] = row
	return nil
}

func (r *StandingRepository) Update(_ context.Context, row standing.Row) error {
	return r.Create(context.Background(), row)
}
