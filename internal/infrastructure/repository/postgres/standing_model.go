package postgres

import (
	"time"

	"github.com/kaisarfc/club-backend/internal/domain/standing"
)

type standingTableModel struct {
	SeasonID       int64     `db:"season_id"`
	TeamID         int64     `db:"team_id"`
	TeamName       string    `db:"team_name"`
	Position       int       `db:"position"`
	Played         int       `db:"played"`
	Won            int       `db:"won"`
	Drawn          int       `db:"drawn"`
	Lost           int       `db:"lost"`
	GoalsFor       int       `db:"goals_for"`
	GoalsAgainst   int       `db:"goals_against"`
	GoalDifference int       `db:"goal_difference"`
	Points         int       `db:"points"`
	IsKaisar       bool      `db:"is_kaisar"`
	TeamLogoURL    string    `db:"team_logo_url"`
	LastSyncAt     time.Time `db:"last_sync_at"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

type standingInsertModel struct {
	SeasonID       int64     `db:"season_id"`
	TeamID         int64     `db:"team_id"`
	TeamName       string    `db:"team_name"`
	Position       int       `db:"position"`
	Played         int       `db:"played"`
	Won            int       `db:"won"`
	Drawn          int       `db:"drawn"`
	Lost           int       `db:"lost"`
	GoalsFor       int       `db:"goals_for"`
	GoalsAgainst   int       `db:"goals_against"`
	GoalDifference int       `db:"goal_difference"`
	Points         int       `db:"points"`
	IsKaisar       bool      `db:"is_kaisar"`
	TeamLogoURL    string    `db:"team_logo_url"`
	LastSyncAt     time.Time `db:"last_sync_at"`
}

func standingToInsertModel(row standing.Row) standingInsertModel {
	return standingInsertModel{
		SeasonID:       row.SeasonID,
		TeamID:         row.TeamID,
		TeamName:       row.TeamName,
		Position:       row.Position,
		Played:         row.Played,
		Won:            row.Won,
		Drawn:          row.Drawn,
		Lost:           row.Lost,
		GoalsFor:       row.GoalsFor,
		GoalsAgainst:   row.GoalsAgainst,
		GoalDifference: row.GoalDifference,
		Points:         row.Points,
		IsKaisar:       row.IsKaisar,
		TeamLogoURL:    row.TeamLogoURL,
		LastSyncAt:     row.LastSyncAt,
	}
}

func standingFromTableModel(row standingTableModel) standing.Row {
	return standing.Row{
		SeasonID:       row.SeasonID,
		TeamID:         row.TeamID,
		TeamName:       row.TeamName,
		Position:       row.Position,
		Played:         row.Played,
		Won:            row.Won,
		Drawn:          row.Drawn,
		Lost:           row.Lost,
		GoalsFor:       row.GoalsFor,
		GoalsAgainst:   row.GoalsAgainst,
		GoalDifference: row.GoalDifference,
		Points:         row.Points,
		IsKaisar:       row.IsKaisar,
		TeamLogoURL:    row.TeamLogoURL,
		LastSyncAt:     row.LastSyncAt,
	}
}
