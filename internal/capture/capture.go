// Package capture defines the boundary contract between raw-input adapters
// (the webcam and text widgets in the browser) and the session controller.
// Adapters only emit events; they never touch session state directly.
package capture

import (
	"context"
	"errors"
	"strings"
)

// ErrEmptyInput is returned when a submitted candidate input is empty after
// trimming.
var ErrEmptyInput = errors.New("input must not be empty")

// ImageEvents receives the events an image-capture adapter can emit:
// camera stream availability, a user-triggered single-frame grab, and
// stream or capture failure.
type ImageEvents interface {
	CaptureReady()
	CaptureFailed(message string)
	SubmitImage(ctx context.Context, payload string) error
}

// TextEvents receives submissions from a text-capture adapter. Adapters
// gate on non-empty trimmed content before emitting.
type TextEvents interface {
	SubmitText(ctx context.Context, text string) error
}

// ValidateText trims text and rejects empty submissions. The trimmed text
// is returned for forwarding.
func ValidateText(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", ErrEmptyInput
	}
	return trimmed, nil
}

// ValidateImage rejects empty image payloads.
func ValidateImage(payload string) error {
	if strings.TrimSpace(payload) == "" {
		return ErrEmptyInput
	}
	return nil
}
