package postgres

import (
	"database/sql"
	"fmt"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/kaisarfc/club-backend/internal/domain/player"
)

type playerTableModel struct {
	ExternalID       int64        `db:"external_id"`
	TeamID           int64        `db:"team_id"`
	Name             string       `db:"name"`
	FirstName        string       `db:"first_name"`
	LastName         string       `db:"last_name"`
	JerseyNumber     int          `db:"jersey_number"`
	Position         string       `db:"position"`
	Nationality      string       `db:"nationality"`
	BirthDate        sql.NullTime `db:"birth_date"`
	HeightCM         int          `db:"height_cm"`
	WeightKG         int          `db:"weight_kg"`
	PhotoURL         string       `db:"photo_url"`
	StatsSeasonID    int64        `db:"stats_season_id"`
	StatsMatches     int          `db:"stats_matches"`
	StatsGoals       int          `db:"stats_goals"`
	StatsAssists     int          `db:"stats_assists"`
	StatsYellowCards int          `db:"stats_yellow_cards"`
	StatsRedCards    int          `db:"stats_red_cards"`
	StatsMinutes     int          `db:"stats_minutes"`
	IsHero           bool         `db:"is_hero"`
	Biography        string       `db:"biography"`
	Slug             string       `db:"slug"`
	SocialLinks      []byte       `db:"social_links"`
	ActionPhotos     []byte       `db:"action_photos"`
	CreatedAt        time.Time    `db:"created_at"`
	UpdatedAt        time.Time    `db:"updated_at"`
}

type playerInsertModel struct {
	ExternalID       int64        `db:"external_id"`
	TeamID           int64        `db:"team_id"`
	Name             string       `db:"name"`
	FirstName        string       `db:"first_name"`
	LastName         string       `db:"last_name"`
	JerseyNumber     int          `db:"jersey_number"`
	Position         string       `db:"position"`
	Nationality      string       `db:"nationality"`
	BirthDate        sql.NullTime `db:"birth_date"`
	HeightCM         int          `db:"height_cm"`
	WeightKG         int          `db:"weight_kg"`
	PhotoURL         string       `db:"photo_url"`
	StatsSeasonID    int64        `db:"stats_season_id"`
	StatsMatches     int          `db:"stats_matches"`
	StatsGoals       int          `db:"stats_goals"`
	StatsAssists     int          `db:"stats_assists"`
	StatsYellowCards int          `db:"stats_yellow_cards"`
	StatsRedCards    int          `db:"stats_red_cards"`
	StatsMinutes     int          `db:"stats_minutes"`
	IsHero           bool         `db:"is_hero"`
	Biography        string       `db:"biography"`
	Slug             string       `db:"slug"`
	SocialLinks      []byte       `db:"social_links"`
	ActionPhotos     []byte       `db:"action_photos"`
}

func playerToInsertModel(item player.Player) (playerInsertModel, error) {
	socialLinks, err := marshalJSONColumn(item.SocialLinks, "player social links")
	if err != nil {
		return playerInsertModel{}, err
	}
	actionPhotos, err := marshalJSONColumn(item.ActionPhotos, "player action photos")
	if err != nil {
		return playerInsertModel{}, err
	}

	return playerInsertModel{
		ExternalID:       item.ExternalID,
		TeamID:           item.TeamID,
		Name:             item.Name,
		FirstName:        item.FirstName,
		LastName:         item.LastName,
		JerseyNumber:     item.JerseyNumber,
		Position:         item.Position,
		Nationality:      item.Nationality,
		BirthDate:        timePtrToNullTime(item.BirthDate),
		HeightCM:         item.HeightCM,
		WeightKG:         item.WeightKG,
		PhotoURL:         item.PhotoURL,
		StatsSeasonID:    item.Stats.SeasonID,
		StatsMatches:     item.Stats.Matches,
		StatsGoals:       item.Stats.Goals,
		StatsAssists:     item.Stats.Assists,
		StatsYellowCards: item.Stats.YellowCards,
		StatsRedCards:    item.Stats.RedCards,
		StatsMinutes:     item.Stats.Minutes,
		IsHero:           item.IsHero,
		Biography:        item.Biography,
		Slug:             item.Slug,
		SocialLinks:      socialLinks,
		ActionPhotos:     actionPhotos,
	}, nil
}

func playerFromTableModel(row playerTableModel) (player.Player, error) {
	out := player.Player{
		ExternalID: row.ExternalID,
		TeamID:     row.TeamID,
		UpstreamFields: player.UpstreamFields{
			Name:         row.Name,
			FirstName:    row.FirstName,
			LastName:     row.LastName,
			JerseyNumber: row.JerseyNumber,
			Position:     row.Position,
			Nationality:  row.Nationality,
			BirthDate:    nullTimeToTimePtr(row.BirthDate),
			HeightCM:     row.HeightCM,
			WeightKG:     row.WeightKG,
			PhotoURL:     row.PhotoURL,
			Stats: player.SeasonStats{
				SeasonID:    row.StatsSeasonID,
				Matches:     row.StatsMatches,
				Goals:       row.StatsGoals,
				Assists:     row.StatsAssists,
				YellowCards: row.StatsYellowCards,
				RedCards:    row.StatsRedCards,
				Minutes:     row.StatsMinutes,
			},
		},
		IsHero:    row.IsHero,
		Biography: row.Biography,
		Slug:      row.Slug,
	}

	if len(row.SocialLinks) > 0 {
		if err := sonic.Unmarshal(row.SocialLinks, &out.SocialLinks); err != nil {
			return player.Player{}, fmt.Errorf("decode player social links player_id=%d: %w", row.ExternalID, err)
		}
	}
	if len(row.ActionPhotos) > 0 {
		if err := sonic.Unmarshal(row.ActionPhotos, &out.ActionPhotos); err != nil {
			return player.Player{}, fmt.Errorf("decode player action photos player_id=%d: %w", row.ExternalID, err)
		}
	}
	return out, nil
}

func marshalJSONColumn(value any, label string) ([]byte, error) {
	if value == nil {
		return nil, nil
	}
	raw, err := sonic.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", label, err)
	}
	return raw, nil
}
