package session

import (
	"net/http"
	"testing"
	"time"
)

func TestManager_CreateAndLookup(t *testing.T) {
	// Arrange
	m := NewManager(time.Hour)

	// Act
	token := m.Create("alice")

	// Assert
	if token == "" {
		t.Fatal("Create() returned an empty token")
	}
	username, ok := m.Username(token)
	if !ok || username != "alice" {
		t.Errorf("Username() = %q, %v; want alice, true", username, ok)
	}
	if _, ok := m.Username("unknown-token"); ok {
		t.Error("unknown token must not resolve")
	}
}

func TestManager_Expiry(t *testing.T) {
	// Arrange
	m := NewManager(time.Minute)
	token := m.Create("alice")

	// Act: move the clock past the TTL.
	m.now = func() time.Time { return time.Now().Add(2 * time.Minute) }

	// Assert
	if _, ok := m.Username(token); ok {
		t.Error("expired token must not resolve")
	}
	// Expired entries are dropped, not just hidden.
	m.mu.RLock()
	_, exists := m.sessions[token]
	m.mu.RUnlock()
	if exists {
		t.Error("expired session should be removed on lookup")
	}
}

func TestManager_Destroy(t *testing.T) {
	// Arrange
	m := NewManager(time.Hour)
	token := m.Create("alice")

	// Act
	m.Destroy(token)

	// Assert
	if _, ok := m.Username(token); ok {
		t.Error("destroyed token must not resolve")
	}
	m.Destroy("never-existed")
}

func TestManager_Cookie(t *testing.T) {
	m := NewManager(time.Hour)

	t.Run("set", func(t *testing.T) {
		c := m.Cookie("tok")
		if c.Name != CookieName || c.Value != "tok" {
			t.Errorf("Cookie() = %+v, want session cookie with token", c)
		}
		if !c.HttpOnly {
			t.Error("session cookie must be HttpOnly")
		}
		if c.MaxAge != int(time.Hour/time.Second) {
			t.Errorf("MaxAge = %d, want TTL in seconds", c.MaxAge)
		}
	})

	t.Run("clear", func(t *testing.T) {
		c := m.Cookie("")
		if c.MaxAge != -1 {
			t.Errorf("clearing cookie MaxAge = %d, want -1", c.MaxAge)
		}
	})
}

func TestFromRequest(t *testing.T) {
	// Arrange
	withCookie, _ := http.NewRequest(http.MethodGet, "/", nil)
	withCookie.AddCookie(&http.Cookie{Name: CookieName, Value: "tok"})

	without, _ := http.NewRequest(http.MethodGet, "/", nil)

	// Assert
	if got := FromRequest(withCookie); got != "tok" {
		t.Errorf("FromRequest() = %q, want tok", got)
	}
	if got := FromRequest(without); got != "" {
		t.Errorf("FromRequest() without cookie = %q, want empty", got)
	}
}
