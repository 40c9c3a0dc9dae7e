package standing

import "time"

// Row represents one league-table row for a team in a season.
type Row struct {
	SeasonID       int64
	TeamID         int64
	TeamName       string
	Position       int
	Played         int
	Won            int
	Drawn          int
	Lost           int
	GoalsFor       int
	GoalsAgainst   int
	GoalDifference int
	Points         int
	IsKaisar       bool
	TeamLogoURL    string
	LastSyncAt     time.Time
}

// RecomputeGoalDifference keeps the derived column consistent with the goal
// columns regardless of what the provider reported.
func (r *Row) RecomputeGoalDifference() {
	r.GoalDifference = r.GoalsFor - r.GoalsAgainst
}

// UpstreamEqual reports whether two rows carry the same provider-owned values.
// TeamLogoURL participates because the provider owns the external logo; the
// local override is applied at read time, not stored on the row.
func (r Row) UpstreamEqual(other Row) bool {
	return r.TeamName == other.TeamName &&
		r.Position == other.Position &&
		r.Played == other.Played &&
		r.Won == other.Won &&
		r.Drawn == other.Drawn &&
		r.Lost == other.Lost &&
		r.GoalsFor == other.GoalsFor &&
		r.GoalsAgainst == other.GoalsAgainst &&
		r.GoalDifference == other.GoalDifference &&
		r.Points == other.Points &&
		r.IsKaisar == other.IsKaisar &&
		r.TeamLogoURL == other.TeamLogoURL
}
