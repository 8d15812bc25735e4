// Package cache provides a best-effort track cache used to soften repeated
// playlist lookups against the backend. Failures are never surfaced; a
// broken cache behaves like an empty one.
package cache

import (
	"context"
	"time"

	"github.com/euphonicai/go-mood-playlist/internal/mood"
)

// DefaultTTL is how long cached playlists stay fresh.
const DefaultTTL = 5 * time.Minute

// Cache stores track collections under string keys.
type Cache interface {
	Get(ctx context.Context, key string) ([]mood.Track, bool)
	Set(ctx context.Context, key string, tracks []mood.Track)
}

// PlaylistKey builds the cache key for a mood playlist.
func PlaylistKey(m mood.Mood) string {
	return "playlist:" + string(m)
}
