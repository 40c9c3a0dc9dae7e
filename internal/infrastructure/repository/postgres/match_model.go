package postgres

import (
	"database/sql"
	"fmt"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/kaisarfc/club-backend/internal/domain/match"
)

type matchTableModel struct {
	ExternalID   int64         `db:"external_id"`
	SeasonID     int64         `db:"season_id"`
	Tour         int           `db:"tour"`
	KickoffAt    time.Time     `db:"kickoff_at"`
	HomeTeamID   int64         `db:"home_team_id"`
	AwayTeamID   int64         `db:"away_team_id"`
	HomeTeamName string        `db:"home_team_name"`
	AwayTeamName string        `db:"away_team_name"`
	HomeScore    sql.NullInt64 `db:"home_score"`
	AwayScore    sql.NullInt64 `db:"away_score"`
	Venue        string        `db:"venue"`
	Status       string        `db:"status"`
	HasDetails   bool          `db:"has_details"`
	Details      []byte        `db:"details"`
	LastSyncAt   time.Time     `db:"last_sync_at"`
	CreatedAt    time.Time     `db:"created_at"`
	UpdatedAt    time.Time     `db:"updated_at"`
}

type matchInsertModel struct {
	ExternalID   int64         `db:"external_id"`
	SeasonID     int64         `db:"season_id"`
	Tour         int           `db:"tour"`
	KickoffAt    time.Time     `db:"kickoff_at"`
	HomeTeamID   int64         `db:"home_team_id"`
	AwayTeamID   int64         `db:"away_team_id"`
	HomeTeamName string        `db:"home_team_name"`
	AwayTeamName string        `db:"away_team_name"`
	HomeScore    sql.NullInt64 `db:"home_score"`
	AwayScore    sql.NullInt64 `db:"away_score"`
	Venue        string        `db:"venue"`
	Status       string        `db:"status"`
	HasDetails   bool          `db:"has_details"`
	Details      []byte        `db:"details"`
	LastSyncAt   time.Time     `db:"last_sync_at"`
}

func matchToInsertModel(item match.Match) (matchInsertModel, error) {
	details, err := marshalMatchDetails(item.Details)
	if err != nil {
		return matchInsertModel{}, err
	}

	return matchInsertModel{
		ExternalID:   item.ExternalID,
		SeasonID:     item.SeasonID,
		Tour:         item.Tour,
		KickoffAt:    item.KickoffAt,
		HomeTeamID:   item.HomeTeamID,
		AwayTeamID:   item.AwayTeamID,
		HomeTeamName: item.HomeTeamName,
		AwayTeamName: item.AwayTeamName,
		HomeScore:    intPtrToNullInt64(item.HomeScore),
		AwayScore:    intPtrToNullInt64(item.AwayScore),
		Venue:        item.Venue,
		Status:       item.Status,
		HasDetails:   item.HasDetails,
		Details:      details,
		LastSyncAt:   item.LastSyncAt,
	}, nil
}

func matchFromTableModel(row matchTableModel) (match.Match, error) {
	out := match.Match{
		ExternalID:   row.ExternalID,
		SeasonID:     row.SeasonID,
		Tour:         row.Tour,
		KickoffAt:    row.KickoffAt,
		HomeTeamID:   row.HomeTeamID,
		AwayTeamID:   row.AwayTeamID,
		HomeTeamName: row.HomeTeamName,
		AwayTeamName: row.AwayTeamName,
		HomeScore:    nullInt64ToIntPtr(row.HomeScore),
		AwayScore:    nullInt64ToIntPtr(row.AwayScore),
		Venue:        row.Venue,
		Status:       row.Status,
		HasDetails:   row.HasDetails,
		LastSyncAt:   row.LastSyncAt,
	}

	if len(row.Details) > 0 {
		var details match.Details
		if err := sonic.Unmarshal(row.Details, &details); err != nil {
			return match.Match{}, fmt.Errorf("decode match details match_id=%d: %w", row.ExternalID, err)
		}
		out.Details = &details
	}
	return out, nil
}

func marshalMatchDetails(details *match.Details) ([]byte, error) {
	if details == nil {
		return nil, nil
	}
	raw, err := sonic.Marshal(details)
	if err != nil {
		return nil, fmt.Errorf("encode match details: %w", err)
	}
	return raw, nil
}
