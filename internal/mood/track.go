package mood

import "strings"

// Artist is a single credited artist on a track.
type Artist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Track is one recommended song as delivered by the backend. Tracks are
// immutable once received; identity is by ID.
type Track struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Artists    []Artist `json:"artists"`
	Mood       string   `json:"mood"`
	URI        string   `json:"uri"`
	ImageURL   string   `json:"image_url,omitempty"`
	PreviewURL string   `json:"preview_url,omitempty"`
}

// ArtistNames returns the credited artists joined with ", ".
func (t Track) ArtistNames() string {
	names := make([]string, len(t.Artists))
	for i, a := range t.Artists {
		names[i] = a.Name
	}
	return strings.Join(names, ", ")
}

// ExternalURL builds the open.spotify.com deep link for the track. The URI
// is colon-delimited ("spotify:track:<id>") with the provider track ID in
// the third segment; the track ID is used when the URI is malformed.
func (t Track) ExternalURL() string {
	const base = "https://open.spotify.com/track/"
	parts := strings.Split(t.URI, ":")
	if len(parts) >= 3 && parts[2] != "" {
		return base + parts[2]
	}
	return base + t.ID
}

// RecommendedPlaylist is an optional named sub-playlist attached to an
// image-derived result.
type RecommendedPlaylist struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	ImageURL    string  `json:"image_url,omitempty"`
	ExternalURL string  `json:"external_url"`
	Tracks      []Track `json:"tracks"`
}
