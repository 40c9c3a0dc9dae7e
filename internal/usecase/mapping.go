package usecase

import (
	"strconv"
	"strings"
	"time"

	"github.com/kaisarfc/club-backend/internal/domain/match"
	"github.com/kaisarfc/club-backend/internal/domain/media"
	"github.com/kaisarfc/club-backend/internal/domain/player"
	"github.com/kaisarfc/club-backend/internal/domain/standing"
	"github.com/kaisarfc/club-backend/internal/domain/teamstats"
)

// Mapping functions are pure and total: provider field absence maps to a
// documented default (zero for numeric stats, empty string for text, nil for
// optional relations) instead of failing the record. The only fatal defect is
// a missing merge key, which the engine counts as a failed record.

const (
	providerDateLayout     = "2006-01-02"
	providerDateTimeLayout = "2006-01-02 15:04"
)

func mapExternalStandingToRow(seasonID, homeClubID int64, position int, item ExternalStanding, syncedAt time.Time) standing.Row {
	goalsFor, goalsAgainst := parseGoalsPair(item.Goals)

	row := standing.Row{
		SeasonID:     seasonID,
		TeamID:       item.TeamID,
		Position:     position,
		TeamName:     strings.TrimSpace(item.TeamName),
		Played:       maxInt(item.Played, 0),
		Won:          maxInt(item.Won, 0),
		Drawn:        maxInt(item.Drawn, 0),
		Lost:         maxInt(item.Lost, 0),
		GoalsFor:     goalsFor,
		GoalsAgainst: goalsAgainst,
		Points:       maxInt(item.Points, 0),
		IsKaisar:     item.TeamID == homeClubID,
		TeamLogoURL:  strings.TrimSpace(item.LogoURL),
		LastSyncAt:   syncedAt.UTC(),
	}
	// Goal difference is always derived locally, never trusted from the feed.
	row.RecomputeGoalDifference()
	return row
}

// parseGoalsPair splits the provider's "for:against" string. Malformed input
// degrades to zeros rather than failing the row.
func parseGoalsPair(value string) (int, int) {
	parts := strings.SplitN(strings.TrimSpace(value), ":", 2)
	if len(parts) != 2 {
		return 0, 0
	}
	scored, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || scored < 0 {
		scored = 0
	}
	conceded, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || conceded < 0 {
		conceded = 0
	}
	return scored, conceded
}

func mapExternalMatchToDomain(seasonID int64, item ExternalMatch, syncedAt time.Time) match.Match {
	out := match.Match{
		ExternalID:   item.ID,
		SeasonID:     seasonID,
		Tour:         maxInt(item.Tour, 0),
		KickoffAt:    parseProviderKickoff(item.Date, item.Time),
		HomeTeamID:   item.HomeTeamID,
		AwayTeamID:   item.AwayTeamID,
		HomeTeamName: strings.TrimSpace(item.HomeTeamName),
		AwayTeamName: strings.TrimSpace(item.AwayTeamName),
		HomeScore:    cloneIntPtr(item.HomeScore),
		AwayScore:    cloneIntPtr(item.AwayScore),
		Venue:        strings.TrimSpace(item.Venue),
		Status:       match.NormalizeStatus(item.Status),
		HasDetails:   item.HasDetails,
		LastSyncAt:   syncedAt.UTC(),
	}
	if item.SeasonID > 0 {
		out.SeasonID = item.SeasonID
	}
	if item.HasDetails {
		out.Details = mapExternalMatchDetails(item)
	}
	return out
}

func mapExternalMatchDetails(item ExternalMatch) *match.Details {
	details := &match.Details{
		Lineups: make([]match.LineupEntry, 0, len(item.Lineups)),
		Events:  make([]match.Event, 0, len(item.Events)),
	}
	for _, entry := range item.Lineups {
		if entry.PlayerID <= 0 {
			continue
		}
		details.Lineups = append(details.Lineups, match.LineupEntry{
			PlayerExternalID: entry.PlayerID,
			PlayerName:       strings.TrimSpace(entry.PlayerName),
			TeamID:           entry.TeamID,
			JerseyNumber:     maxInt(entry.Number, 0),
			Position:         strings.TrimSpace(entry.Position),
			Starting:         entry.Starting,
		})
	}
	for _, event := range item.Events {
		if strings.TrimSpace(event.Type) == "" {
			continue
		}
		details.Events = append(details.Events, match.Event{
			Minute:           maxInt(event.Minute, 0),
			Type:             strings.TrimSpace(event.Type),
			TeamID:           event.TeamID,
			PlayerExternalID: event.PlayerID,
			Detail:           strings.TrimSpace(event.Detail),
		})
	}
	return details
}

func parseProviderKickoff(date, timeOfDay string) time.Time {
	date = strings.TrimSpace(date)
	if date == "" {
		return time.Time{}
	}
	timeOfDay = strings.TrimSpace(timeOfDay)
	if timeOfDay != "" {
		if parsed, err := time.Parse(providerDateTimeLayout, date+" "+timeOfDay); err == nil {
			return parsed.UTC()
		}
	}
	if parsed, err := time.Parse(providerDateLayout, date); err == nil {
		return parsed.UTC()
	}
	return time.Time{}
}

// mapExternalPlayerFields produces only the provider-owned zone; admin-owned
// fields never pass through here.
func mapExternalPlayerFields(seasonID int64, item ExternalPlayer) player.UpstreamFields {
	firstName := strings.TrimSpace(item.FirstName)
	lastName := strings.TrimSpace(item.LastName)
	name := strings.TrimSpace(firstName + " " + lastName)

	fields := player.UpstreamFields{
		Name:         name,
		FirstName:    firstName,
		LastName:     lastName,
		JerseyNumber: maxInt(item.Number, 0),
		Position:     strings.TrimSpace(item.Position),
		Nationality:  strings.TrimSpace(item.Nationality),
		BirthDate:    parseProviderDate(item.BirthDate),
		HeightCM:     maxInt(item.HeightCM, 0),
		WeightKG:     maxInt(item.WeightKG, 0),
		PhotoURL:     resolvePlayerPhotoURL(item),
		Stats: player.SeasonStats{
			SeasonID:    seasonID,
			Matches:     maxInt(item.Stats.Matches, 0),
			Goals:       maxInt(item.Stats.Goals, 0),
			Assists:     maxInt(item.Stats.Assists, 0),
			YellowCards: maxInt(item.Stats.YellowCards, 0),
			RedCards:    maxInt(item.Stats.RedCards, 0),
			Minutes:     maxInt(item.Stats.Minutes, 0),
		},
	}
	if item.Stats.SeasonID > 0 {
		fields.Stats.SeasonID = item.Stats.SeasonID
	}
	return fields
}

// resolvePlayerPhotoURL prefers a locally served asset built from the
// provider filename, falling back to the provider's external URL.
func resolvePlayerPhotoURL(item ExternalPlayer) string {
	if local := media.URL("players", item.PhotoFilename); local != "" {
		return local
	}
	return strings.TrimSpace(item.PhotoURL)
}

func parseProviderDate(value string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	parsed, err := time.Parse(providerDateLayout, value)
	if err != nil {
		return nil
	}
	parsed = parsed.UTC()
	return &parsed
}

func mapExternalTeamStatsToDomain(teamID, seasonID int64, item ExternalTeamStats, syncedAt time.Time) teamstats.Stats {
	goalsFor, goalsAgainst := parseGoalsPair(item.Goals)
	out := teamstats.Stats{
		TeamID:        teamID,
		SeasonID:      seasonID,
		Matches:       maxInt(item.Matches, 0),
		Wins:          maxInt(item.Wins, 0),
		Draws:         maxInt(item.Draws, 0),
		Losses:        maxInt(item.Losses, 0),
		GoalsFor:      goalsFor,
		GoalsAgainst:  goalsAgainst,
		CleanSheets:   maxInt(item.CleanSheets, 0),
		YellowCards:   maxInt(item.YellowCards, 0),
		RedCards:      maxInt(item.RedCards, 0),
		Shots:         maxInt(item.Shots, 0),
		ShotsOnTarget: maxInt(item.ShotsOnTarget, 0),
		PossessionPct: item.PossessionPct,
		LastSyncAt:    syncedAt.UTC(),
	}
	if item.TeamID > 0 {
		out.TeamID = item.TeamID
	}
	if item.SeasonID > 0 {
		out.SeasonID = item.SeasonID
	}
	if out.PossessionPct < 0 {
		out.PossessionPct = 0
	}
	return out
}

func cloneIntPtr(value *int) *int {
	if value == nil {
		return nil
	}
	v := *value
	return &v
}

func maxInt(left, right int) int {
	if left > right {
		return left
	}
	return right
}

// newPlayerFromUpstream builds a brand-new player record from provider data.
// The admin-owned fields start empty except the slug, which is seeded from the
// player name so the page is addressable before an editor touches it.
func newPlayerFromUpstream(externalID, teamID int64, fields player.UpstreamFields) player.Player {
	return player.Player{
		ExternalID:     externalID,
		TeamID:         teamID,
		UpstreamFields: fields,
		Slug:           slugifyPlayerName(fields.Name),
	}
}

func slugifyPlayerName(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
