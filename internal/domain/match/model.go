package match

import (
	"strings"
	"time"
)

const (
	StatusScheduled = "SCHEDULED"
	StatusLive      = "LIVE"
	StatusFinished  = "FINISHED"
	StatusCancelled = "CANCELLED"
	StatusPostponed = "POSTPONED"
)

// Match represents one game mirrored from the provider. ExternalID is the
// stable provider identifier and the only merge key across syncs.
type Match struct {
	ExternalID   int64
	SeasonID     int64
	Tour         int
	KickoffAt    time.Time
	HomeTeamID   int64
	AwayTeamID   int64
	HomeTeamName string
	AwayTeamName string
	HomeScore    *int
	AwayScore    *int
	Venue        string
	Status       string
	HasDetails   bool
	Details      *Details
	LastSyncAt   time.Time
}

// Details carries the heavy per-match payload (lineups and in-game events)
// that only a detail sync fills in. A summary sync leaves it nil.
type Details struct {
	Lineups []LineupEntry `json:"lineups"`
	Events  []Event       `json:"events"`
}

type LineupEntry struct {
	PlayerExternalID int64  `json:"player_external_id"`
	PlayerName       string `json:"player_name"`
	TeamID           int64  `json:"team_id"`
	JerseyNumber     int    `json:"jersey_number"`
	Position         string `json:"position"`
	Starting         bool   `json:"starting"`
}

type Event struct {
	Minute           int    `json:"minute"`
	Type             string `json:"type"`
	TeamID           int64  `json:"team_id"`
	PlayerExternalID int64  `json:"player_external_id"`
	Detail           string `json:"detail,omitempty"`
}

func NormalizeStatus(value string) string {
	status := strings.ToUpper(strings.TrimSpace(value))
	if status == "" {
		return StatusScheduled
	}
	return status
}

func IsFinishedStatus(status string) bool {
	switch NormalizeStatus(status) {
	case StatusFinished, "FT", "AET", "PEN":
		return true
	default:
		return false
	}
}

// UpstreamEqual reports whether the provider-owned part of two matches is
// identical. Details are compared only by presence: a detail backfill always
// counts as an update.
func (m Match) UpstreamEqual(other Match) bool {
	if m.ExternalID != other.ExternalID ||
		m.SeasonID != other.SeasonID ||
		m.Tour != other.Tour ||
		!m.KickoffAt.Equal(other.KickoffAt) ||
		m.HomeTeamID != other.HomeTeamID ||
		m.AwayTeamID != other.AwayTeamID ||
		m.HomeTeamName != other.HomeTeamName ||
		m.AwayTeamName != other.AwayTeamName ||
		m.Venue != other.Venue ||
		m.Status != other.Status ||
		m.HasDetails != other.HasDetails {
		return false
	}
	return intPtrEqual(m.HomeScore, other.HomeScore) && intPtrEqual(m.AwayScore, other.AwayScore)
}

func intPtrEqual(left, right *int) bool {
	if left == nil || right == nil {
		return left == right
	}
	return *left == *right
}
