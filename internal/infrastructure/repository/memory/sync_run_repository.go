package memory

import (
	"context"
	"sync"

	"github.com/kaisarfc/club-backend/internal/domain/syncrun"
)

type SyncRunRepository struct {
	mu   sync.RWMutex
	runs map[syncrun.EntityType]syncrun.Run
}

func NewSyncRunRepository() *SyncRunRepository {
	return &SyncRunRepository{runs: make(map[syncrun.EntityType]syncrun.Run)}
}

func (r *SyncRunRepository) Record(_ context.Context, run syncrun.Run) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.runs[run.EntityType] = run
	return nil
}

func (r *SyncRunRepository) GetByEntityType(_ context.Context, entityType syncrun.EntityType) (syncrun.Run, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	run, ok := r.runs[entityType]
	return run, ok, nil
}
