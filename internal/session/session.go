// Package session manages cookie-backed login sessions for the HTTP API.
package session

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

// CookieName is the cookie carrying the session token.
const CookieName = "itemhub_session"

// DefaultTTL is how long a session stays valid without being recreated.
const DefaultTTL = 24 * time.Hour

type entry struct {
	username string
	expires  time.Time
}

// Manager issues opaque session tokens and maps them back to usernames.
// Expired sessions are dropped lazily on lookup.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]entry
	ttl      time.Duration
	now      func() time.Time
}

// NewManager creates a Manager with the given session lifetime. A
// non-positive ttl falls back to DefaultTTL.
func NewManager(ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{
		sessions: make(map[string]entry),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create starts a session for username and returns the new token.
func (m *Manager) Create(username string) string {
	token := uuid.New().String()

	m.mu.Lock()
	m.sessions[token] = entry{username: username, expires: m.now().Add(m.ttl)}
	m.mu.Unlock()

	return token
}

// Username resolves a token to its username. The second return is false
// when the token is unknown or expired.
func (m *Manager) Username(token string) (string, bool) {
	m.mu.RLock()
	e, exists := m.sessions[token]
	m.mu.RUnlock()

	if !exists {
		return "", false
	}

	if m.now().After(e.expires) {
		m.mu.Lock()
		delete(m.sessions, token)
		m.mu.Unlock()
		return "", false
	}

	return e.username, true
}

// Destroy invalidates a token. Unknown tokens are ignored.
func (m *Manager) Destroy(token string) {
	m.mu.Lock()
	delete(m.sessions, token)
	m.mu.Unlock()
}

// Cookie builds the Set-Cookie value for a token. An empty token produces
// an expired cookie, clearing it on the client.
func (m *Manager) Cookie(token string) *http.Cookie {
	c := &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if token == "" {
		c.MaxAge = -1
	} else {
		c.MaxAge = int(m.ttl / time.Second)
	}
	return c
}

// FromRequest extracts the session token from the request cookie. Returns
// an empty string when no session cookie is present.
func FromRequest(r *http.Request) string {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return c.Value
}
