package teamstats

import "context"

type Repository interface {
	GetByKey(ctx context.Context, teamID, seasonID int64) (Stats, bool, error)
	Create(ctx context.Context, item Stats) error
	Update(ctx context.Context, item Stats) error
}
