package syncrun

import "context"

// Repository persists the last run per entity type.
type Repository interface {
	// Record upserts the run keyed by its entity type.
	Record(ctx context.Context, run Run) error
	GetByEntityType(ctx context.Context, entityType EntityType) (Run, bool, error)
}
