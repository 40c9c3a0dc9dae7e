package media

import "context"

// Repository exposes read access to admin-uploaded assets.
type Repository interface {
	GetTeamLogo(ctx context.Context, teamID int64) (TeamAsset, bool, error)
	ListTeamLogos(ctx context.Context) ([]TeamAsset, error)
}
