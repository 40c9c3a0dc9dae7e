package player

import "time"

// Player is one squad member. The struct mixes two ownership zones:
// UpstreamFields is everything the provider is allowed to overwrite, the rest
// is entered by club admins and must survive every sync untouched.
type Player struct {
	ExternalID int64
	TeamID     int64

	UpstreamFields

	// Admin-owned fields. Sync must never write these, force mode included.
	IsHero       bool
	Biography    string
	Slug         string
	SocialLinks  map[string]string
	ActionPhotos []string
}

// UpstreamFields is the explicit allow-list of provider-owned player
// attributes. Keeping them in one struct makes the merge step mechanical:
// diff this struct, write this struct, touch nothing else.
type UpstreamFields struct {
	Name         string
	FirstName    string
	LastName     string
	JerseyNumber int
	Position     string
	Nationality  string
	BirthDate    *time.Time
	HeightCM     int
	WeightKG     int
	PhotoURL     string
	Stats        SeasonStats
}

// SeasonStats is the current-season aggregate for one player.
type SeasonStats struct {
	SeasonID    int64
	Matches     int
	Goals       int
	Assists     int
	YellowCards int
	RedCards    int
	Minutes     int
}

// ApplyUpstream overwrites only the provider-owned zone.
func (p *Player) ApplyUpstream(fields UpstreamFields) {
	p.UpstreamFields = fields
}

// UpstreamEqual reports whether the provider-owned zone matches.
func (f UpstreamFields) UpstreamEqual(other UpstreamFields) bool {
	if f.Name != other.Name ||
		f.FirstName != other.FirstName ||
		f.LastName != other.LastName ||
		f.JerseyNumber != other.JerseyNumber ||
		f.Position != other.Position ||
		f.Nationality != other.Nationality ||
		f.HeightCM != other.HeightCM ||
		f.WeightKG != other.WeightKG ||
		f.PhotoURL != other.PhotoURL ||
		f.Stats != other.Stats {
		return false
	}
	if f.BirthDate == nil || other.BirthDate == nil {
		return f.BirthDate == other.BirthDate
	}
	return f.BirthDate.Equal(*other.BirthDate)
}
