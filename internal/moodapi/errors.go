package moodapi

import "fmt"

// Kind classifies an analysis failure for the UI. It is the only error
// taxonomy exposed to callers; everything a round trip can go wrong with is
// folded into one of these.
type Kind string

const (
	// KindUnreachable covers transport-level connectivity failures and
	// 502-class responses from a dead upstream.
	KindUnreachable Kind = "unreachable"

	// KindBadRequest covers 4xx rejections other than 404.
	KindBadRequest Kind = "bad_request"

	// KindNotFound covers 404 responses, usually a misconfigured base URL.
	KindNotFound Kind = "not_found"

	// KindServer covers every other failure; the message carries the
	// server-supplied detail when present.
	KindServer Kind = "server"
)

// User-facing messages for the fixed failure kinds.
const (
	msgUnreachable = "Cannot connect to the backend server. Please make sure it is running."
	msgNotFound    = "API endpoint not found. Please check your backend configuration."
)

// Error is a normalized analysis failure.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// normalizeStatus maps a non-2xx response to an Error. detail is the
// server-supplied message, fallback the generic per-operation message used
// when the server sent none.
func normalizeStatus(status int, detail, fallback string) *Error {
	if detail == "" {
		detail = fallback
	}
	switch {
	case status == 502:
		return &Error{Kind: KindUnreachable, Message: msgUnreachable}
	case status == 404:
		return &Error{Kind: KindNotFound, Message: msgNotFound}
	case status >= 400 && status < 500:
		return &Error{Kind: KindBadRequest, Message: fmt.Sprintf("Bad request: %s", detail)}
	default:
		return &Error{Kind: KindServer, Message: detail}
	}
}

// unreachable wraps a transport-level failure.
func unreachable() *Error {
	return &Error{Kind: KindUnreachable, Message: msgUnreachable}
}
