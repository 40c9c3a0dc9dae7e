package usecase

import "context"

// UpstreamProvider is the read-only feed of provider data consumed by the
// sync engine. Implementations do bounded transport-level retries only; the
// engine never retries a whole run.
type UpstreamProvider interface {
	FetchScoreTable(ctx context.Context, seasonID int64) ([]ExternalStanding, error)
	// Games returns a lazy, finite page sequence over the provider's games
	// list. Each Next call is an independent request; the sequence is not
	// restartable mid-page.
	Games(seasonID, teamID int64) GamesSource
	FetchGameDetails(ctx context.Context, gameID int64) (ExternalMatch, error)
	FetchTeamPlayers(ctx context.Context, teamID, seasonID int64) ([]ExternalPlayer, error)
	FetchTeamStats(ctx context.Context, teamID, seasonID int64) (ExternalTeamStats, error)
}

// GamesSource yields one provider page per Next call. ok is false once the
// sequence is exhausted.
type GamesSource interface {
	Next(ctx context.Context) (items []ExternalMatch, ok bool, err error)
}

// ExternalStanding is one raw score-table row as the provider ships it. Goals
// stays the provider's "for:against" string; the mapping layer parses it.
type ExternalStanding struct {
	TeamID   int64
	TeamName string
	LogoURL  string
	Played   int
	Won      int
	Drawn    int
	Lost     int
	Goals    string
	Points   int
}

type ExternalMatch struct {
	ID           int64
	SeasonID     int64
	Tour         int
	Date         string
	Time         string
	HomeTeamID   int64
	AwayTeamID   int64
	HomeTeamName string
	AwayTeamName string
	HomeScore    *int
	AwayScore    *int
	Venue        string
	Status       string
	HasDetails   bool
	Lineups      []ExternalLineupEntry
	Events       []ExternalMatchEvent
}

type ExternalLineupEntry struct {
	PlayerID   int64
	PlayerName string
	TeamID     int64
	Number     int
	Position   string
	Starting   bool
}

type ExternalMatchEvent struct {
	Minute   int
	Type     string
	TeamID   int64
	PlayerID int64
	Detail   string
}

type ExternalPlayer struct {
	ID            int64
	TeamID        int64
	FirstName     string
	LastName      string
	Number        int
	Position      string
	Nationality   string
	BirthDate     string
	HeightCM      int
	WeightKG      int
	PhotoFilename string
	PhotoURL      string
	Stats         ExternalPlayerStats
}

type ExternalPlayerStats struct {
	SeasonID    int64
	Matches     int
	Goals       int
	Assists     int
	YellowCards int
	RedCards    int
	Minutes     int
}

type ExternalTeamStats struct {
	TeamID        int64
	SeasonID      int64
	Matches       int
	Wins          int
	Draws         int
	Losses        int
	Goals         string
	CleanSheets   int
	YellowCards   int
	RedCards      int
	Shots         int
	ShotsOnTarget int
	PossessionPct float64
}
