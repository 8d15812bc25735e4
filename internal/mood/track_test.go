package mood

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrackExternalURL(t *testing.T) {
	tests := []struct {
		name  string
		track Track
		want  string
	}{
		{
			name:  "well-formed uri",
			track: Track{ID: "abc", URI: "spotify:track:6rqhFgbbKwnb9MLmUQDhG6"},
			want:  "https://open.spotify.com/track/6rqhFgbbKwnb9MLmUQDhG6",
		},
		{
			name:  "malformed uri falls back to id",
			track: Track{ID: "abc", URI: "not-a-uri"},
			want:  "https://open.spotify.com/track/abc",
		},
		{
			name:  "empty third segment falls back to id",
			track: Track{ID: "abc", URI: "spotify:track:"},
			want:  "https://open.spotify.com/track/abc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.track.ExternalURL())
		})
	}
}

func TestTrackArtistNames(t *testing.T) {
	track := Track{Artists: []Artist{{Name: "Nina Simone"}, {Name: "Al Schackman"}}}
	assert.Equal(t, "Nina Simone, Al Schackman", track.ArtistNames())
	assert.Equal(t, "", Track{}.ArtistNames())
}

func TestMoodHelpers(t *testing.T) {
	assert.Equal(t, Happy, Parse("  Happy "))
	assert.True(t, Parse("surprised").IsKnown())
	assert.False(t, Parse("ecstatic").IsKnown())
	assert.Equal(t, "Fearful", Fearful.Title())
	assert.Equal(t, "😊", Happy.Emoji())
	assert.Equal(t, "🎵", Parse("ecstatic").Emoji())
	assert.Len(t, All(), 7)
}
