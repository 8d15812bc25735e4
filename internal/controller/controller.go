// Package controller owns the mood-capture session state machine: input
// mode, captured artifact, analysis status, language selection, and refresh
// triggers. It mediates between the capture adapters and the analysis
// backend and guards against stale responses from superseded requests.
package controller

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/euphonicai/go-mood-playlist/internal/capture"
	"github.com/euphonicai/go-mood-playlist/internal/mood"
)

// DefaultTickPeriod is how often the session's "time passing" marker is
// refreshed. The tick only updates the displayed age of the last result; it
// never issues analysis calls.
const DefaultTickPeriod = 5 * time.Minute

// ErrNoLanguage is returned when an empty language is selected.
var ErrNoLanguage = errors.New("language must not be empty")

// ErrUnknownMode is returned for an input mode outside {image, text}.
var ErrUnknownMode = errors.New("unknown input mode")

// AnalysisService is the slice of the backend client the controller needs.
type AnalysisService interface {
	DetectEmotion(ctx context.Context, imageData, language string) (*mood.ImageResult, error)
	AnalyzeText(ctx context.Context, text, language string, limit int) (*mood.TextResult, error)
	SupportedLanguages(ctx context.Context) []string
}

// The controller is the sink for both capture adapters.
var (
	_ capture.ImageEvents = (*Controller)(nil)
	_ capture.TextEvents  = (*Controller)(nil)
)

// Controller drives one mood-capture session. All methods are safe for
// concurrent use; analysis round trips run outside the lock and commit
// through a trigger-token check so a superseded call can never overwrite
// newer state.
type Controller struct {
	svc    AnalysisService
	logger zerolog.Logger
	tick   time.Duration
	now    func() time.Time

	mu   sync.Mutex
	sess Session
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger attaches a structured logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithTickPeriod overrides the refresh-age tick period.
func WithTickPeriod(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.tick = d
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// New creates a Controller starting in image mode with an idle session.
func New(svc AnalysisService, opts ...Option) *Controller {
	c := &Controller{
		svc:    svc,
		logger: zerolog.Nop(),
		tick:   DefaultTickPeriod,
		now:    time.Now,
		sess:   Session{InputMode: ModeImage, Status: StatusIdle},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Bootstrap fetches the language catalog once and selects the first entry
// as the default language. The catalog never fails, so bootstrap never
// blocks the session.
func (c *Controller) Bootstrap(ctx context.Context) {
	languages := c.svc.SupportedLanguages(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.sess.SupportedLanguages = languages
	if c.sess.SelectedLanguage == "" && len(languages) > 0 {
		c.sess.SelectedLanguage = languages[0]
	}
}

// Snapshot returns a copy of the current session.
func (c *Controller) Snapshot() Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sess
}

// SetMode switches the input mode. Allowed from any state; the captured
// artifact is cleared but a previously computed result stays visible until
// a new submission succeeds.
func (c *Controller) SetMode(mode InputMode) error {
	if mode != ModeImage && mode != ModeText {
		return ErrUnknownMode
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sess.InputMode = mode
	c.sess.CapturedArtifact = ""
	return nil
}

// CaptureReady records that the camera stream is available.
func (c *Controller) CaptureReady() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sess.CameraReady = true
}

// CaptureFailed surfaces a stream or capture failure verbatim. No network
// call is issued and the session keeps awaiting a capture.
func (c *Controller) CaptureFailed(message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sess.ErrorMessage = message
	c.sess.CapturedArtifact = ""
	c.logger.Warn().Str("message", message).Msg("capture failed")
}

// SubmitImage stores the captured artifact and sends it for emotion
// detection. On failure the artifact is discarded so the user must
// recapture.
func (c *Controller) SubmitImage(ctx context.Context, payload string) error {
	if err := capture.ValidateImage(payload); err != nil {
		return err
	}

	c.mu.Lock()
	c.sess.InputMode = ModeImage
	c.sess.CapturedArtifact = payload
	language := c.sess.SelectedLanguage
	token := c.beginLocked()
	c.mu.Unlock()

	result, err := c.svc.DetectEmotion(ctx, payload, language)
	return c.commit(token, mood.FromImage(result), err, true)
}

// SubmitText sends trimmed non-empty text for sentiment analysis.
func (c *Controller) SubmitText(ctx context.Context, text string) error {
	trimmed, err := capture.ValidateText(text)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.sess.InputMode = ModeText
	language := c.sess.SelectedLanguage
	token := c.beginLocked()
	c.mu.Unlock()

	result, err := c.svc.AnalyzeText(ctx, trimmed, language, 0)
	return c.commit(token, mood.FromText(result), err, false)
}

// Refresh re-issues the last analysis under the current language. It is a
// no-op until a result exists. Image mode re-detects from the stored
// artifact; otherwise the current mood label is re-analyzed as text.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	if c.sess.Result == nil {
		c.mu.Unlock()
		return nil
	}
	fromImage := c.sess.InputMode == ModeImage && c.sess.CapturedArtifact != ""
	artifact := c.sess.CapturedArtifact
	label := c.sess.Result.PrimaryMood()
	language := c.sess.SelectedLanguage
	token := c.beginLocked()
	c.mu.Unlock()

	if fromImage {
		result, err := c.svc.DetectEmotion(ctx, artifact, language)
		return c.commit(token, mood.FromImage(result), err, true)
	}
	result, err := c.svc.AnalyzeText(ctx, string(label), language, 0)
	return c.commit(token, mood.FromText(result), err, false)
}

// SetLanguage selects a language. When a result already exists the last
// analysis is re-issued under the new language; this is a side-effecting
// transition, not a plain setter.
func (c *Controller) SetLanguage(ctx context.Context, language string) error {
	language = strings.TrimSpace(language)
	if language == "" {
		return ErrNoLanguage
	}

	c.mu.Lock()
	c.sess.SelectedLanguage = language
	hasResult := c.sess.Result != nil
	c.mu.Unlock()

	if !hasResult {
		return nil
	}
	return c.Refresh(ctx)
}

// Reset clears the captured artifact, the result, and any error together,
// returning the session to its initial state for the current mode.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sess.CapturedArtifact = ""
	c.sess.Result = nil
	c.sess.ErrorMessage = ""
	c.sess.Status = StatusIdle
}

// StartTicker starts the background loop that marks time passing so the
// "last refreshed" age stays honest. It stops when ctx is canceled.
func (c *Controller) StartTicker(ctx context.Context) {
	ticker := time.NewTicker(c.tick)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.mu.Lock()
				c.sess.TickedAt = c.now()
				c.mu.Unlock()
			}
		}
	}()
}

// beginLocked registers a new analysis trigger: the session enters Loading
// and the trigger token advances, superseding any in-flight call. The
// caller must hold c.mu.
func (c *Controller) beginLocked() int64 {
	token := c.now().UnixMilli()
	if token <= c.sess.RefreshToken {
		token = c.sess.RefreshToken + 1
	}
	c.sess.RefreshToken = token
	c.sess.Status = StatusLoading
	c.sess.ErrorMessage = ""
	return token
}

// commit applies the outcome of an analysis call issued under token. A
// response whose token no longer matches the latest trigger is discarded.
func (c *Controller) commit(token int64, result *mood.Result, err error, discardArtifact bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if token != c.sess.RefreshToken {
		c.logger.Debug().Int64("token", token).Msg("discarding superseded analysis response")
		return nil
	}

	if err != nil {
		c.sess.Status = StatusError
		c.sess.ErrorMessage = err.Error()
		if discardArtifact {
			c.sess.CapturedArtifact = ""
		}
		c.logger.Warn().Err(err).Msg("analysis failed")
		return err
	}

	c.sess.Status = StatusIdle
	c.sess.ErrorMessage = ""
	c.sess.Result = result
	c.sess.LastRefreshed = c.now()
	c.logger.Info().Str("mood", string(result.PrimaryMood())).Msg("analysis complete")
	return nil
}
