package teamstats

import "time"

// Stats is the season aggregate for one team. The whole record is
// provider-owned: every sync overwrites it in full.
type Stats struct {
	TeamID        int64
	SeasonID      int64
	Matches       int
	Wins          int
	Draws         int
	Losses        int
	GoalsFor      int
	GoalsAgainst  int
	CleanSheets   int
	YellowCards   int
	RedCards      int
	Shots         int
	ShotsOnTarget int
	PossessionPct float64
	LastSyncAt    time.Time
}

// UpstreamEqual compares everything except LastSyncAt.
func (s Stats) UpstreamEqual(other Stats) bool {
	s.LastSyncAt = time.Time{}
	other.LastSyncAt = time.Time{}
	return s == other
}
