package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/kaisarfc/club-backend/internal/domain/match"
)

type MatchRepository struct {
	mu    sync.RWMutex
	items map[int64]match.Match
}

func NewMatchRepository() *MatchRepository {
	return &MatchRepository{items: make(map[int64]match.Match)}
}

func (r *MatchRepository) ListBySeason(_ context.Context, seasonID int64) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0, len(r.items))
	for _, item := range r.items {
		if item.SeasonID == seasonID {
			out = append(out, item)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].KickoffAt.Equal(out[j].KickoffAt) {
			return out[i].KickoffAt.Before(out[j].KickoffAt)
		}
		return out[i].ExternalID < out[j].ExternalID
	})
	return out, nil
}

func (r *MatchRepository) GetByExternalID(_ context.Context, externalID int64) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[externalID]
	return item, ok, nil
}

func (r *MatchRepository) Create(_ context.Context, item match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ExternalID] = item
	return nil
}

func (r *MatchRepository) Update(_ context.Context, item match.Match) error {
	return r.Create(context.Background(), item)
}
