package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/kaisarfc/club-backend/internal/domain/media"
)

type MediaRepository struct {
	mu    sync.RWMutex
	logos map[int64]media.TeamAsset
}

func NewMediaRepository(logos []media.TeamAsset) *MediaRepository {
	byTeam := make(map[int64]media.TeamAsset, len(logos))
	for _, asset := range logos {
		byTeam[asset.TeamID] = asset
	}
	return &MediaRepository{logos: byTeam}
}

func (r *MediaRepository) GetTeamLogo(_ context.Context, teamID int64) (media.TeamAsset, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	asset, ok := r.logos[teamID]
	return asset, ok, nil
}

func (r *MediaRepository) ListTeamLogos(_ context.Context) ([]media.TeamAsset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]media.TeamAsset, 0, len(r.logos))
	for _, asset := range r.logos {
		out = append(out, asset)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TeamID < out[j].TeamID })
	return out, nil
}

// SetTeamLogo mirrors what the CMS upload path does in production.
func (r *MediaRepository) SetTeamLogo(_ context.Context, asset media.TeamAsset) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.logos[asset.TeamID] = asset
}
