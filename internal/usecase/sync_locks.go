package usecase

import (
	"sync"

	"github.com/kaisarfc/club-backend/internal/domain/syncrun"
)

// entityLocks serializes sync runs per entity type. Scope is the process:
// in a multi-process deployment two replicas can still race, which is a
// documented limitation until an external lock is added.
type entityLocks struct {
	mu   sync.Mutex
	held map[syncrun.EntityType]bool
}

func newEntityLocks() *entityLocks {
	return &entityLocks{held: make(map[syncrun.EntityType]bool, len(syncrun.AllEntityTypes))}
}

// tryAcquire takes the lock for one entity type without blocking. A second
// trigger while a run is in flight must fail fast, never queue.
func (l *entityLocks) tryAcquire(entityType syncrun.EntityType) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.held[entityType] {
		return false
	}
	l.held[entityType] = true
	return true
}

func (l *entityLocks) release(entityType syncrun.EntityType) {
	l.mu.Lock()
	delete(l.held, entityType)
	l.mu.Unlock()
}
