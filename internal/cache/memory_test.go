package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/euphonicai/go-mood-playlist/internal/mood"
)

func TestMemoryGetSet(t *testing.T) {
	c := NewMemory(time.Minute)
	ctx := context.Background()

	_, ok := c.Get(ctx, PlaylistKey(mood.Happy))
	assert.False(t, ok)

	tracks := []mood.Track{{ID: "t1", Name: "One"}}
	c.Set(ctx, PlaylistKey(mood.Happy), tracks)

	got, ok := c.Get(ctx, PlaylistKey(mood.Happy))
	assert.True(t, ok)
	assert.Equal(t, tracks, got)

	// Different mood key misses.
	_, ok = c.Get(ctx, PlaylistKey(mood.Sad))
	assert.False(t, ok)
}

func TestMemoryExpiry(t *testing.T) {
	c := NewMemory(time.Minute)
	ctx := context.Background()

	current := time.Now()
	c.now = func() time.Time { return current }

	c.Set(ctx, "k", []mood.Track{{ID: "t1"}})

	_, ok := c.Get(ctx, "k")
	assert.True(t, ok)

	current = current.Add(2 * time.Minute)
	_, ok = c.Get(ctx, "k")
	assert.False(t, ok)

	// The expired entry is dropped, not resurrected.
	_, ok = c.Get(ctx, "k")
	assert.False(t, ok)
}

func TestNewMemoryDefaultTTL(t *testing.T) {
	c := NewMemory(0)
	assert.Equal(t, DefaultTTL, c.ttl)
}
