// Package playlist builds the display model for a resolved mood result:
// the summary header, per-label score rows, track cards with deep links,
// and the transient focused-track selection used for preview playback.
package playlist

import (
	"fmt"
	"sort"

	"github.com/euphonicai/go-mood-playlist/internal/mood"
)

// ScoreRow is one per-label confidence entry, ready for rendering.
type ScoreRow struct {
	Label   string  `json:"label"`
	Emoji   string  `json:"emoji"`
	Percent float64 `json:"percent"`
}

// TrackCard is one track prepared for the grid: artists joined, the deep
// link resolved.
type TrackCard struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Artists     string `json:"artists"`
	Mood        string `json:"mood"`
	ExternalURL string `json:"external_url"`
	ImageURL    string `json:"image_url,omitempty"`
	PreviewURL  string `json:"preview_url,omitempty"`
}

// SubPlaylist is a named recommended playlist attached to the result.
type SubPlaylist struct {
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	ImageURL    string      `json:"image_url,omitempty"`
	ExternalURL string      `json:"external_url"`
	Tracks      []TrackCard `json:"tracks"`
}

// View is everything the results panel needs to render one mood result.
// Focus is transient per-request state, never part of the session.
type View struct {
	Mood       string        `json:"mood"`
	Title      string        `json:"title"`
	Emoji      string        `json:"emoji"`
	Confidence string        `json:"confidence,omitempty"`
	Scores     []ScoreRow    `json:"scores,omitempty"`
	Tracks     []TrackCard   `json:"tracks"`
	TrackCount int           `json:"track_count"`
	Playlists  []SubPlaylist `json:"playlists,omitempty"`
	Focused    *TrackCard    `json:"focused,omitempty"`
}

// Build projects a result into its display model. focusedID selects the
// track driving preview playback; an unknown ID leaves nothing focused.
// A nil result yields a nil view.
func Build(result *mood.Result, focusedID string) *View {
	if result == nil {
		return nil
	}

	label := result.PrimaryMood()
	tracks := trackCards(result.Tracks())

	view := &View{
		Mood:       string(label),
		Title:      fmt.Sprintf("%s Mood Playlist", label.Title()),
		Emoji:      label.Emoji(),
		Tracks:     tracks,
		TrackCount: len(tracks),
	}

	if confidence, ok := result.Confidence(); ok {
		view.Confidence = fmt.Sprintf("%.1f%%", confidence*100)
	}
	view.Scores = scoreRows(result.ConfidenceScores())

	for _, rec := range result.Recommended() {
		view.Playlists = append(view.Playlists, SubPlaylist{
			Name:        rec.Name,
			Description: rec.Description,
			ImageURL:    rec.ImageURL,
			ExternalURL: rec.ExternalURL,
			Tracks:      trackCards(rec.Tracks),
		})
	}

	if focusedID != "" {
		for i := range tracks {
			if tracks[i].ID == focusedID {
				view.Focused = &tracks[i]
				break
			}
		}
	}

	return view
}

// scoreRows flattens the per-label score mapping into rows sorted by score
// descending, label ascending for ties. The scores are shown as reported;
// they are not rescaled to sum to 100.
func scoreRows(scores map[string]float64) []ScoreRow {
	if len(scores) == 0 {
		return nil
	}

	rows := make([]ScoreRow, 0, len(scores))
	for label, score := range scores {
		rows = append(rows, ScoreRow{
			Label:   mood.Parse(label).Title(),
			Emoji:   mood.Parse(label).Emoji(),
			Percent: score * 100,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Percent != rows[j].Percent {
			return rows[i].Percent > rows[j].Percent
		}
		return rows[i].Label < rows[j].Label
	})
	return rows
}

func trackCards(tracks []mood.Track) []TrackCard {
	cards := make([]TrackCard, len(tracks))
	for i, t := range tracks {
		cards[i] = TrackCard{
			ID:          t.ID,
			Name:        t.Name,
			Artists:     t.ArtistNames(),
			Mood:        t.Mood,
			ExternalURL: t.ExternalURL(),
			ImageURL:    t.ImageURL,
			PreviewURL:  t.PreviewURL,
		}
	}
	return cards
}
