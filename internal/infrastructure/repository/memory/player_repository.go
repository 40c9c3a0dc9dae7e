package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/kaisarfc/club-backend/internal/domain/player"
)

type PlayerRepository struct {
	mu    sync.RWMutex
	items map[int64]player.Player
}

func NewPlayerRepository() *PlayerRepository {
	return &PlayerRepository{items: make(map[int64]player.Player)}
}

func (r *PlayerRepository) ListByTeam(_ context.Context, teamID int64) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(r.items))
	for _, item := range r.items {
		if item.TeamID == teamID {
			out = append(out, item)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].JerseyNumber != out[j].JerseyNumber {
			return out[i].JerseyNumber < out[j].JerseyNumber
		}
		return out[i].ExternalID < out[j].ExternalID
	})
	return out, nil
}

func (r *PlayerRepository) GetByExternalID(_ context.Context, externalID int64) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[externalID]
	return item, ok, nil
}

func (r *PlayerRepository) Create(_ context.Context, item player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ExternalID] = item
	return nil
}

func (r *PlayerRepository) UpdateUpstream(_ context.Context, externalID int64, fields player.UpstreamFields) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[externalID]
	if !ok {
		return fmt.Errorf("player external_id=%d does not exist", externalID)
	}
	item.ApplyUpstream(fields)
	r.items[externalID] = item
	return nil
}
