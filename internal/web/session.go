// Package web provides the HTTP server and UI for the mood playlist
// client: the capture/results page and the JSON API the in-browser capture
// adapters talk to.
package web

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/euphonicai/go-mood-playlist/internal/controller"
)

const (
	sessionCookieName = "session_id"
	sessionTTL        = 24 * time.Hour
)

// ControllerFactory builds the controller backing one browser session.
type ControllerFactory func() *controller.Controller

// session pairs a controller with its lifetime bookkeeping. The cancel
// function stops the controller's refresh-age ticker.
type session struct {
	controller *controller.Controller
	cancel     context.CancelFunc
	createdAt  time.Time
}

// SessionStore hands each browser cookie its own controller. Sessions live
// in memory only; nothing survives a restart.
type SessionStore struct {
	factory ControllerFactory
	ttl     time.Duration
	now     func() time.Time

	mu       sync.Mutex
	sessions map[string]*session
}

// NewSessionStore creates a new in-memory session store.
func NewSessionStore(factory ControllerFactory) *SessionStore {
	return &SessionStore{
		factory:  factory,
		ttl:      sessionTTL,
		now:      time.Now,
		sessions: make(map[string]*session),
	}
}

// GetOrCreate returns the controller for the request's session, creating
// and bootstrapping a fresh one (and setting the cookie) when none exists
// or the existing session has expired.
func (s *SessionStore) GetOrCreate(w http.ResponseWriter, r *http.Request) *controller.Controller {
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		if ctrl := s.lookup(cookie.Value); ctrl != nil {
			return ctrl
		}
	}

	ctrl := s.factory()
	ctrl.Bootstrap(r.Context())

	ctx, cancel := context.WithCancel(context.Background())
	ctrl.StartTicker(ctx)

	id := uuid.NewString()
	s.mu.Lock()
	s.sessions[id] = &session{controller: ctrl, cancel: cancel, createdAt: s.now()}
	s.mu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.ttl.Seconds()),
	})
	return ctrl
}

// lookup returns the live controller for id, expiring stale sessions
// lazily.
func (s *SessionStore) lookup(id string) *controller.Controller {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil
	}
	if s.now().Sub(sess.createdAt) > s.ttl {
		sess.cancel()
		delete(s.sessions, id)
		return nil
	}
	return sess.controller
}

// Close stops every session's background ticker.
func (s *SessionStore) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, sess := range s.sessions {
		sess.cancel()
		delete(s.sessions, id)
	}
}
