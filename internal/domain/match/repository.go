package match

import "context"

// Repository describes match persistence needs from use cases. Sync never
// deletes matches; removal stays a manual admin action.
type Repository interface {
	ListBySeason(ctx context.Context, seasonID int64) ([]Match, error)
	GetByExternalID(ctx context.Context, externalID int64) (Match, bool, error)
	Create(ctx context.Context, item Match) error
	Update(ctx context.Context, item Match) error
}
