package soccerapi

// Wire shapes for the provider's JSON API. Every list endpoint wraps its rows
// in a data field; paged endpoints add a meta block with total/limit/offset.

type scoreTableEnvelope struct {
	Data []scoreTableRow `json:"data"`
}

type scoreTableRow struct {
	TeamID   int64  `json:"team_id"`
	TeamName string `json:"team"`
	LogoURL  string `json:"logo_url"`
	Played   int    `json:"played"`
	Won      int    `json:"won"`
	Drawn    int    `json:"drawn"`
	Lost     int    `json:"lost"`
	Goals    string `json:"goals"`
	Points   int    `json:"points"`
}

type gamesEnvelope struct {
	Data []gameItem `json:"data"`
	Meta pageMeta   `json:"meta"`
}

type gameEnvelope struct {
	Data gameItem `json:"data"`
}

type pageMeta struct {
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

type gameItem struct {
	ID         int64           `json:"id"`
	SeasonID   int64           `json:"season_id"`
	Tour       int             `json:"tour"`
	Date       string          `json:"date"`
	Time       string          `json:"time"`
	HomeTeam   gameParticipant `json:"home_team"`
	AwayTeam   gameParticipant `json:"away_team"`
	HomeScore  *int            `json:"home_score"`
	AwayScore  *int            `json:"away_score"`
	Venue      string          `json:"venue"`
	Status     string          `json:"status"`
	HasDetails bool            `json:"has_details"`
	Lineups    []lineupItem    `json:"lineups"`
	Events     []eventItem     `json:"events"`
}

type gameParticipant struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type lineupItem struct {
	PlayerID   int64  `json:"player_id"`
	PlayerName string `json:"player"`
	TeamID     int64  `json:"team_id"`
	Number     int    `json:"number"`
	Position   string `json:"position"`
	Starting   bool   `json:"starting"`
}

type eventItem struct {
	Minute   int    `json:"minute"`
	Type     string `json:"type"`
	TeamID   int64  `json:"team_id"`
	PlayerID int64  `json:"player_id"`
	Detail   string `json:"detail"`
}

type playersEnvelope struct {
	Data []playerItem `json:"data"`
}

type playerItem struct {
	ID          int64           `json:"id"`
	TeamID      int64           `json:"team_id"`
	FirstName   string          `json:"first_name"`
	LastName    string          `json:"last_name"`
	Number      int             `json:"number"`
	Position    string          `json:"position"`
	Nationality string          `json:"nationality"`
	BirthDate   string          `json:"birth_date"`
	HeightCM    int             `json:"height_cm"`
	WeightKG    int             `json:"weight_kg"`
	Photo       string          `json:"photo"`
	PhotoURL    string          `json:"photo_url"`
	Stats       playerStatsItem `json:"stats"`
}

type playerStatsItem struct {
	SeasonID    int64 `json:"season_id"`
	Matches     int   `json:"matches"`
	Goals       int   `json:"goals"`
	Assists     int   `json:"assists"`
	YellowCards int   `json:"yellow_cards"`
	RedCards    int   `json:"red_cards"`
	Minutes     int   `json:"minutes"`
}

type teamStatsEnvelope struct {
	Data teamStatsItem `json:"data"`
}

type teamStatsItem struct {
	TeamID        int64   `json:"team_id"`
	SeasonID      int64   `json:"season_id"`
	Matches       int     `json:"matches"`
	Wins          int     `json:"wins"`
	Draws         int     `json:"draws"`
	Losses        int     `json:"losses"`
	Goals         string  `json:"goals"`
	CleanSheets   int     `json:"clean_sheets"`
	YellowCards   int     `json:"yellow_cards"`
	RedCards      int     `json:"red_cards"`
	Shots         int     `json:"shots"`
	ShotsOnTarget int     `json:"shots_on_target"`
	PossessionPct float64 `json:"possession_pct"`
}
