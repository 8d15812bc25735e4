package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/euphonicai/go-mood-playlist/internal/capture"
	"github.com/euphonicai/go-mood-playlist/internal/controller"
	"github.com/euphonicai/go-mood-playlist/internal/mood"
	"github.com/euphonicai/go-mood-playlist/internal/playlist"
)

// PlaylistFetcher is the slice of the backend client the playlist endpoint
// needs.
type PlaylistFetcher interface {
	MoodPlaylist(ctx context.Context, m mood.Mood) []mood.Track
}

// Handlers contains the HTTP handlers for the application.
type Handlers struct {
	sessions  *SessionStore
	playlists PlaylistFetcher
	templates *Templates
	logger    zerolog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(sessions *SessionStore, playlists PlaylistFetcher, templates *Templates, logger zerolog.Logger) *Handlers {
	return &Handlers{
		sessions:  sessions,
		playlists: playlists,
		templates: templates,
		logger:    logger,
	}
}

// stateResponse is the session projection the page script renders from.
// The captured artifact itself is never echoed back, only its presence.
type stateResponse struct {
	Mode               controller.InputMode `json:"mode"`
	State              controller.State     `json:"state"`
	Error              string               `json:"error,omitempty"`
	SelectedLanguage   string               `json:"selected_language"`
	SupportedLanguages []string             `json:"supported_languages"`
	HasCapture         bool                 `json:"has_capture"`
	CameraReady        bool                 `json:"camera_ready"`
	RefreshedAgo       string               `json:"refreshed_ago,omitempty"`
	View               *playlist.View       `json:"view,omitempty"`
}

func stateFor(sess controller.Session, focusedID string) stateResponse {
	resp := stateResponse{
		Mode:               sess.InputMode,
		State:              sess.State(),
		Error:              sess.ErrorMessage,
		SelectedLanguage:   sess.SelectedLanguage,
		SupportedLanguages: sess.SupportedLanguages,
		HasCapture:         sess.CapturedArtifact != "",
		CameraReady:        sess.CameraReady,
		View:               playlist.Build(sess.Result, focusedID),
	}
	if !sess.LastRefreshed.IsZero() {
		resp.RefreshedAgo = time.Since(sess.LastRefreshed).Round(time.Second).String()
	}
	return resp
}

// Home renders the capture/results page (GET /).
func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	ctrl := h.sessions.GetOrCreate(w, r)
	sess := ctrl.Snapshot()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.Render(w, "home", stateFor(sess, "")); err != nil {
		h.logger.Error().Err(err).Msg("rendering home page")
		http.Error(w, "Failed to render template", http.StatusInternalServerError)
	}
}

// State returns the current session projection (GET /api/state). The
// optional focus parameter selects the track driving preview playback; it
// is per-request display state, not session state.
func (h *Handlers) State(w http.ResponseWriter, r *http.Request) {
	ctrl := h.sessions.GetOrCreate(w, r)
	writeJSON(w, http.StatusOK, stateFor(ctrl.Snapshot(), r.URL.Query().Get("focus")))
}

// SetMode switches the input mode (POST /api/mode).
func (h *Handlers) SetMode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Mode controller.InputMode `json:"mode"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctrl := h.sessions.GetOrCreate(w, r)
	if err := ctrl.SetMode(req.Mode); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, stateFor(ctrl.Snapshot(), ""))
}

// SubmitCapture accepts a captured frame and runs emotion detection
// (POST /api/capture).
func (h *Handlers) SubmitCapture(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Image string `json:"image"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctrl := h.sessions.GetOrCreate(w, r)
	if err := ctrl.SubmitImage(r.Context(), req.Image); err != nil {
		if errors.Is(err, capture.ErrEmptyInput) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		// Analysis failures live in the session; the page renders the banner.
	}
	writeJSON(w, http.StatusOK, stateFor(ctrl.Snapshot(), ""))
}

// CaptureReady records camera availability (POST /api/capture/ready).
func (h *Handlers) CaptureReady(w http.ResponseWriter, r *http.Request) {
	ctrl := h.sessions.GetOrCreate(w, r)
	ctrl.CaptureReady()
	writeJSON(w, http.StatusOK, stateFor(ctrl.Snapshot(), ""))
}

// CaptureError surfaces a camera failure reported by the browser adapter
// (POST /api/capture/error).
func (h *Handlers) CaptureError(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message string `json:"message"`
	}
	if err := decodeJSON(r, &req); err != nil || req.Message == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	ctrl := h.sessions.GetOrCreate(w, r)
	ctrl.CaptureFailed(req.Message)
	writeJSON(w, http.StatusOK, stateFor(ctrl.Snapshot(), ""))
}

// SubmitText runs sentiment analysis over free-form text (POST /api/text).
func (h *Handlers) SubmitText(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctrl := h.sessions.GetOrCreate(w, r)
	if err := ctrl.SubmitText(r.Context(), req.Text); err != nil {
		if errors.Is(err, capture.ErrEmptyInput) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	writeJSON(w, http.StatusOK, stateFor(ctrl.Snapshot(), ""))
}

// Refresh re-issues the last analysis (POST /api/refresh). Without a prior
// result it is a no-op.
func (h *Handlers) Refresh(w http.ResponseWriter, r *http.Request) {
	ctrl := h.sessions.GetOrCreate(w, r)
	_ = ctrl.Refresh(r.Context())
	writeJSON(w, http.StatusOK, stateFor(ctrl.Snapshot(), ""))
}

// SetLanguage selects the analysis language (POST /api/language),
// re-running the last analysis when a result exists.
func (h *Handlers) SetLanguage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Language string `json:"language"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctrl := h.sessions.GetOrCreate(w, r)
	if err := ctrl.SetLanguage(r.Context(), req.Language); err != nil {
		if errors.Is(err, controller.ErrNoLanguage) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	writeJSON(w, http.StatusOK, stateFor(ctrl.Snapshot(), ""))
}

// Reset clears the session back to its capture state (POST /api/reset).
func (h *Handlers) Reset(w http.ResponseWriter, r *http.Request) {
	ctrl := h.sessions.GetOrCreate(w, r)
	ctrl.Reset()
	writeJSON(w, http.StatusOK, stateFor(ctrl.Snapshot(), ""))
}

// Playlist fetches the playlist for a mood label, best effort
// (GET /api/playlist?mood=).
func (h *Handlers) Playlist(w http.ResponseWriter, r *http.Request) {
	label := mood.Parse(r.URL.Query().Get("mood"))
	if label == "" {
		writeError(w, http.StatusBadRequest, "mood is required")
		return
	}

	tracks := h.playlists.MoodPlaylist(r.Context(), label)
	writeJSON(w, http.StatusOK, map[string]any{"tracks": tracks})
}
