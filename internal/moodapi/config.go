// Package moodapi is the HTTP client for the EuphonicAI analysis backend:
// emotion detection from images, text sentiment analysis, the language
// catalog, and mood playlists.
package moodapi

import (
	"errors"
	"os"
	"time"
)

// DefaultTimeout bounds every round trip so the UI fails fast instead of
// hanging on a stuck backend.
const DefaultTimeout = 15 * time.Second

// ErrMissingBaseURL is returned when MOOD_API_URL is not set.
var ErrMissingBaseURL = errors.New("missing MOOD_API_URL environment variable")

// Config holds analysis backend configuration.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// LoadConfig reads backend configuration from environment variables.
// Returns ErrMissingBaseURL if MOOD_API_URL is not set.
func LoadConfig() (*Config, error) {
	baseURL := os.Getenv("MOOD_API_URL")
	if baseURL == "" {
		return nil, ErrMissingBaseURL
	}
	return &Config{BaseURL: baseURL, Timeout: DefaultTimeout}, nil
}
