package syncrun

import (
	"strings"
	"time"
)

// EntityType identifies which mirrored collection a run reconciles.
type EntityType string

const (
	EntityLeagueTable EntityType = "league_table"
	EntityMatches     EntityType = "matches"
	EntityPlayers     EntityType = "players"
	EntityTeamStats   EntityType = "team_stats"
)

// AllEntityTypes lists every syncable collection in scheduler order.
var AllEntityTypes = []EntityType{EntityLeagueTable, EntityMatches, EntityPlayers, EntityTeamStats}

func ParseEntityType(value string) (EntityType, bool) {
	switch EntityType(strings.ToLower(strings.TrimSpace(value))) {
	case EntityLeagueTable:
		return EntityLeagueTable, true
	case EntityMatches:
		return EntityMatches, true
	case EntityPlayers:
		return EntityPlayers, true
	case EntityTeamStats:
		return EntityTeamStats, true
	default:
		return "", false
	}
}

// State is the linear progress marker of a run. Failed is reachable from any
// state; the rest only advance forward.
type State string

const (
	StatePending  State = "pending"
	StateFetching State = "fetching"
	StateDiffing  State = "diffing"
	StateWriting  State = "writing"
	StateDone     State = "done"
	StateFailed   State = "failed"
)

// Run is the status record of one sync execution. The store keeps exactly one
// row per entity type; each run supersedes the previous one, success or not.
type Run struct {
	EntityType     EntityType
	SeasonID       int64
	TeamID         int64
	State          State
	StartedAt      time.Time
	FinishedAt     *time.Time
	Success        bool
	ItemsProcessed int
	ItemsCreated   int
	ItemsUpdated   int
	ItemsFailed    int
	ErrorDetail    string
	// LastSuccessAt carries the finish time of the most recent successful run
	// across later failed runs. Readers report freshness from it instead of
	// losing the timestamp when the latest run fails.
	LastSuccessAt *time.Time
}

// LastSuccess returns when this entity type last completed a successful run,
// or nil when it never has.
func (r Run) LastSuccess() *time.Time {
	if r.Success && r.FinishedAt != nil {
		return r.FinishedAt
	}
	return r.LastSuccessAt
}
