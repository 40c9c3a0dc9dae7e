package standing

import "context"

// Repository describes league-table persistence needs from use cases.
type Repository interface {
	ListBySeason(ctx context.Context, seasonID int64) ([]Row, error)
	GetByKey(ctx context.Context, seasonID, teamID int64) (Row, bool, error)
	Create(ctx context.Context, row Row) error
	Update(ctx context.Context, row Row) error
}
