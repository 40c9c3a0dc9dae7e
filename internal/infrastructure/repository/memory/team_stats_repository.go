package memory

import (
	"context"
	"sync"

	"github.com/kaisarfc/club-backend/internal/domain/teamstats"
)

type teamStatsKey struct {
	teamID   int64
	seasonID int64
}

type TeamStatsRepository struct {
	mu    sync.RWMutex
	items map[teamStatsKey]teamstats.Stats
}

func NewTeamStatsRepository() *TeamStatsRepository {
	return &TeamStatsRepository{items: make(map[teamStatsKey]teamstats.Stats)}
}

func (r *TeamStatsRepository) GetByKey(_ context.Context, teamID, seasonID int64) (teamstats.Stats, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[teamStatsKey{teamID: teamID, seasonID: seasonID}]
	return item, ok, nil
}

func (r *TeamStatsRepository) Create(_ context.Context, stats teamstats.Stats) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[teamStatsKey{teamID: stats.TeamID, seasonID: stats.SeasonID}] = stats
	return nil
}

func (r *TeamStatsRepository) Update(_ context.Context, stats teamstats.Stats) error {
	return r.Create(context.Background(), stats)
}
