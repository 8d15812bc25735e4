package moodapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/euphonicai/go-mood-playlist/internal/cache"
	"github.com/euphonicai/go-mood-playlist/internal/mood"
)

const (
	defaultTextLimit = 10
	dataURIPrefix    = "data:image/jpeg;base64,"
)

// FallbackLanguages is returned by SupportedLanguages when the catalog call
// fails, so session bootstrap never blocks on the backend.
var FallbackLanguages = []string{"english", "hindi", "spanish", "french", "bangla"}

// Client talks to the analysis backend. It performs no retries; retrying is
// a user-initiated action upstream.
type Client struct {
	baseURL    string
	httpClient *http.Client
	playlists  cache.Cache
	logger     zerolog.Logger
}

// Option configures optional client collaborators.
type Option func(*Client)

// WithPlaylistCache attaches a best-effort cache consulted by MoodPlaylist.
func WithPlaylistCache(c cache.Cache) Option {
	return func(cl *Client) { cl.playlists = c }
}

// WithLogger attaches a structured logger.
func WithLogger(l zerolog.Logger) Option {
	return func(cl *Client) { cl.logger = l }
}

// NewClient creates an analysis backend client from the provided
// configuration.
func NewClient(cfg *Config, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type detectRequest struct {
	Image            string `json:"image"`
	Language         string `json:"language"`
	IncludePlaylists bool   `json:"include_playlists"`
}

type analyzeRequest struct {
	Text     string `json:"text"`
	Language string `json:"language"`
	Limit    int    `json:"limit"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

type playlistResponse struct {
	Tracks []mood.Track `json:"tracks"`
}

// DetectEmotion sends a captured image for emotion detection. The payload
// may be bare base64 or a full data URI; both are normalized to one wire
// form. Playlist enrichment is always requested.
func (c *Client) DetectEmotion(ctx context.Context, imageData, language string) (*mood.ImageResult, error) {
	body := detectRequest{
		Image:            normalizeImagePayload(imageData),
		Language:         wireLanguage(language),
		IncludePlaylists: true,
	}

	var result mood.ImageResult
	if err := c.post(ctx, "/api/emotion/detect", body, &result, "Failed to detect emotion"); err != nil {
		return nil, err
	}
	return &result, nil
}

// AnalyzeText sends free-form text for sentiment analysis. limit caps how
// many tracks are requested; non-positive values fall back to 10.
func (c *Client) AnalyzeText(ctx context.Context, text, language string, limit int) (*mood.TextResult, error) {
	if limit <= 0 {
		limit = defaultTextLimit
	}
	body := analyzeRequest{
		Text:     text,
		Language: wireLanguage(language),
		Limit:    limit,
	}

	var result mood.TextResult
	if err := c.post(ctx, "/api/mood/text/analyze", body, &result, "Failed to analyze text"); err != nil {
		return nil, err
	}
	return &result, nil
}

// SupportedLanguages fetches the language catalog. It never fails: any
// transport or server error yields the fixed fallback list.
func (c *Client) SupportedLanguages(ctx context.Context) []string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/emotion/languages", nil)
	if err != nil {
		return fallbackLanguages()
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Msg("language catalog unavailable, using fallback")
		return fallbackLanguages()
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn().Int("status", resp.StatusCode).Msg("language catalog unavailable, using fallback")
		return fallbackLanguages()
	}

	var languages []string
	if err := json.NewDecoder(resp.Body).Decode(&languages); err != nil || len(languages) == 0 {
		return fallbackLanguages()
	}
	return languages
}

// MoodPlaylist fetches the playlist for a mood, best effort: failures yield
// an empty slice. Responses are cached briefly to soften repeated refreshes.
func (c *Client) MoodPlaylist(ctx context.Context, m mood.Mood) []mood.Track {
	key := cache.PlaylistKey(m)
	if c.playlists != nil {
		if tracks, ok := c.playlists.Get(ctx, key); ok {
			return tracks
		}
	}

	reqURL := c.baseURL + "/api/spotify/playlists?" + url.Values{"mood": {string(m)}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return []mood.Track{}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Str("mood", string(m)).Msg("playlist fetch failed")
		return []mood.Track{}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn().Int("status", resp.StatusCode).Str("mood", string(m)).Msg("playlist fetch failed")
		return []mood.Track{}
	}

	var body playlistResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return []mood.Track{}
	}
	tracks := body.Tracks
	if tracks == nil {
		tracks = []mood.Track{}
	}

	if c.playlists != nil && len(tracks) > 0 {
		c.playlists.Set(ctx, key, tracks)
	}
	return tracks
}

// post performs one JSON round trip and normalizes failures into *Error.
func (c *Client) post(ctx context.Context, path string, body, out any, fallbackMsg string) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Str("path", path).Msg("backend unreachable")
		return unreachable()
	}
	defer resp.Body.Close()

	c.logger.Debug().
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("analysis request")

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		var detail errorResponse
		_ = json.Unmarshal(raw, &detail)
		return normalizeStatus(resp.StatusCode, detail.Detail, fallbackMsg)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Kind: KindServer, Message: fallbackMsg}
	}
	return nil
}

// normalizeImagePayload canonicalizes a captured image to a data URI.
// Payloads already carrying a media-type prefix pass through unchanged.
func normalizeImagePayload(imageData string) string {
	if strings.Contains(imageData, "base64,") {
		return imageData
	}
	return dataURIPrefix + imageData
}

// wireLanguage maps the display language to its wire code. The catalog
// lists "english" while the backend expects "en"; other entries are sent
// as-is.
func wireLanguage(language string) string {
	if language == "english" {
		return "en"
	}
	return language
}

func fallbackLanguages() []string {
	out := make([]string, len(FallbackLanguages))
	copy(out, FallbackLanguages)
	return out
}
