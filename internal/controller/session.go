package controller

import (
	"time"

	"github.com/euphonicai/go-mood-playlist/internal/mood"
)

// InputMode selects which capture mechanism feeds the session.
type InputMode string

const (
	ModeImage InputMode = "image"
	ModeText  InputMode = "text"
)

// Status is the request/response phase the session is in. An error status
// always carries ErrorMessage.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusError   Status = "error"
)

// State is the user-visible condition of the session, derived from the
// underlying fields.
type State string

const (
	StateIdle            State = "idle"
	StateAwaitingCapture State = "awaiting_capture"
	StateLoading         State = "loading"
	StateReady           State = "ready"
	StateFailed          State = "failed"
)

// Session is the mood-capture session owned by a Controller. It is replaced
// wholesale on each transition, never mutated by adapters or presentation.
type Session struct {
	InputMode          InputMode    `json:"input_mode"`
	CapturedArtifact   string       `json:"captured_artifact,omitempty"`
	Result             *mood.Result `json:"-"`
	Status             Status       `json:"status"`
	ErrorMessage       string       `json:"error_message,omitempty"`
	SelectedLanguage   string       `json:"selected_language"`
	SupportedLanguages []string     `json:"supported_languages"`
	CameraReady        bool         `json:"camera_ready"`
	RefreshToken       int64        `json:"refresh_token"`
	LastRefreshed      time.Time    `json:"last_refreshed,omitzero"`
	TickedAt           time.Time    `json:"ticked_at,omitzero"`
}

// State derives the user-visible session state. A capture failure surfaces
// its message while the session stays in AwaitingCapture; only analysis
// failures reach Failed.
func (s Session) State() State {
	switch {
	case s.Status == StatusLoading:
		return StateLoading
	case s.Status == StatusError:
		return StateFailed
	case s.Result != nil:
		return StateReady
	case s.InputMode == ModeImage && s.CapturedArtifact == "":
		return StateAwaitingCapture
	default:
		return StateIdle
	}
}
