package media

import "strings"

// BasePath is the fixed public prefix under which locally uploaded assets are
// served by the site.
const BasePath = "/media"

// TeamAsset is a locally uploaded logo for a team, keyed by the provider team
// id. When present it overrides the provider's external logo URL on reads.
type TeamAsset struct {
	TeamID   int64
	Filename string
}

// URL builds the public URL of a local asset: /media/{subpath}/{filename}.
// Returns empty when filename is empty so callers can fall back to the
// provider URL.
func URL(subpath, filename string) string {
	filename = strings.TrimSpace(filename)
	if filename == "" {
		return ""
	}
	subpath = strings.Trim(strings.TrimSpace(subpath), "/")
	if subpath == "" {
		return BasePath + "/" + filename
	}
	return BasePath + "/" + subpath + "/" + filename
}
