package cache

import (
	"context"
	"sync"
	"time"

	"github.com/euphonicai/go-mood-playlist/internal/mood"
)

// Memory is an in-process Cache with lazy expiry.
type Memory struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	tracks  []mood.Track
	expires time.Time
}

// NewMemory creates an in-memory cache. A non-positive ttl falls back to
// DefaultTTL.
func NewMemory(ttl time.Duration) *Memory {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Memory{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]memoryEntry),
	}
}

// Get returns the cached tracks for key, if present and fresh.
func (c *Memory) Get(_ context.Context, key string) ([]mood.Track, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if c.now().After(entry.expires) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false
	}
	return entry.tracks, true
}

// Set stores tracks under key for the configured TTL.
func (c *Memory) Set(_ context.Context, key string, tracks []mood.Track) {
	c.mu.Lock()
	c.entries[key] = memoryEntry{tracks: tracks, expires: c.now().Add(c.ttl)}
	c.mu.Unlock()
}

var _ Cache = (*Memory)(nil)
