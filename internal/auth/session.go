// Package auth holds the client's view of authentication: the session
// object and the gated-action dispatcher.
package auth

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/Amreshcodee/itemhub/internal/model"
)

// Service is the slice of the API client the session needs.
type Service interface {
	Login(ctx context.Context, username, password string) (*model.User, error)
	Register(ctx context.Context, username, password string) (*model.User, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*model.User, error)
}

// Result reports the outcome of a login or register attempt. Message is
// user-facing copy for the corresponding form; it is only set on failure.
type Result struct {
	Success bool
	Message string
}

// Fallback messages when the server response carries none.
const (
	loginFailedMsg    = "Login failed"
	registerFailedMsg = "Registration failed"
)

// Session is the process-wide authentication state: a boolean flag plus the
// current user identity. It is created once at startup and mutated only by
// Login, Register and Logout; everything else reads it.
type Session struct {
	svc    Service
	logger *zap.Logger

	mu   sync.RWMutex
	user *model.User
}

// NewSession creates an unauthenticated session backed by svc.
func NewSession(svc Service, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{svc: svc, logger: logger}
}

// IsAuthenticated reports whether a user is logged in.
func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// CurrentUser returns the logged-in user, if any.
func (s *Session) CurrentUser() (model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return model.User{}, false
	}
	return *s.user, true
}

// Restore checks whether the backend already recognizes this client (the
// cookie jar may hold a live session from earlier in the process) and
// adopts that identity. Not being recognized is a normal outcome.
func (s *Session) Restore(ctx context.Context) {
	user, err := s.svc.CurrentUser(ctx)
	if err != nil {
		if !errors.Is(err, model.ErrUnauthenticated) {
			s.logger.Debug("session restore failed", zap.Error(err))
		}
		return
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	s.logger.Info("session restored", zap.String("username", user.Username))
}

// Login authenticates with the backend. Credential rejections come back as
// a Result message for the login form; they do not affect item state.
func (s *Session) Login(ctx context.Context, username, password string) Result {
	user, err := s.svc.Login(ctx, username, password)
	if err != nil {
		return failure(err, loginFailedMsg)
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	s.logger.Info("logged in", zap.String("username", user.Username))
	return Result{Success: true}
}

// Register creates an account and, on success, is immediately logged in
// (the backend starts the session as part of registration).
func (s *Session) Register(ctx context.Context, username, password string) Result {
	user, err := s.svc.Register(ctx, username, password)
	if err != nil {
		return failure(err, registerFailedMsg)
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	s.logger.Info("registered", zap.String("username", user.Username))
	return Result{Success: true}
}

// Logout ends the session locally regardless of whether the backend call
// succeeds; a dead server should not trap the user in a logged-in UI.
func (s *Session) Logout(ctx context.Context) error {
	err := s.svc.Logout(ctx)

	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()

	if err != nil {
		s.logger.Warn("logout request failed", zap.Error(err))
		return err
	}
	s.logger.Info("logged out")
	return nil
}

// failure builds a Result from an auth error, preferring the server's own
// message when the response carried one.
func failure(err error, fallback string) Result {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return Result{Message: apiErr.Message}
	}
	return Result{Message: fallback}
}
