package player

import "context"

// Repository describes player persistence needs from use cases.
//
// UpdateUpstream writes only the provider-owned zone of an existing player;
// admin-owned fields are persisted exclusively through admin tooling outside
// this service.
type Repository interface {
	ListByTeam(ctx context.Context, teamID int64) ([]Player, error)
	GetByExternalID(ctx context.Context, externalID int64) (Player, bool, error)
	Create(ctx context.Context, item Player) error
	UpdateUpstream(ctx context.Context, externalID int64, fields UpstreamFields) error
}
