package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/Amreshcodee/itemhub/internal/middleware"
	"github.com/Amreshcodee/itemhub/internal/model"
	"github.com/Amreshcodee/itemhub/internal/serverstore"
	"github.com/Amreshcodee/itemhub/internal/session"
)

// AuthHandler handles registration, login and session endpoints.
type AuthHandler struct {
	users    serverstore.UserStore
	sessions *session.Manager
	logger   *zap.Logger
}

// NewAuthHandler creates a new AuthHandler instance.
func NewAuthHandler(users serverstore.UserStore, sessions *session.Manager, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		users:    users,
		sessions: sessions,
		logger:   logger,
	}
}

// RegisterRoutes registers the auth routes with the router.
func (h *AuthHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/register/", h.Register).Methods(http.MethodPost)
	router.HandleFunc("/api/login/", h.Login).Methods(http.MethodPost)
	router.HandleFunc("/api/logout/", h.Logout).Methods(http.MethodPost)
	router.HandleFunc("/api/user/", h.CurrentUser).Methods(http.MethodGet)
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Register handles POST /api/register/ requests. A successful registration
// also starts a session so the new user is logged in immediately.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var input credentials
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.logger.Warn("invalid request body", zap.Error(err))
		writeError(w, h.logger, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.users.CreateUser(ctx, input.Username, input.Password)
	if err != nil {
		h.handleUserError(w, err)
		return
	}

	token := h.sessions.Create(user.Username)
	http.SetCookie(w, h.sessions.Cookie(token))

	h.logger.Info("user registered", zap.String("username", user.Username))
	writeJSON(w, h.logger, http.StatusCreated, user)
}

// Login handles POST /api/login/ requests.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var input credentials
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.logger.Warn("invalid request body", zap.Error(err))
		writeError(w, h.logger, http.StatusBadRequest, "invalid request body")
		return
	}

	if input.Username == "" || input.Password == "" {
		writeError(w, h.logger, http.StatusBadRequest, "Username and password are required")
		return
	}

	user, err := h.users.Authenticate(ctx, input.Username, input.Password)
	if err != nil {
		if errors.Is(err, serverstore.ErrUserNotFound) || errors.Is(err, serverstore.ErrBadPassword) {
			writeError(w, h.logger, http.StatusUnauthorized, "Invalid username or password")
			return
		}
		h.logger.Error("authentication failed", zap.Error(err))
		writeError(w, h.logger, http.StatusInternalServerError, "internal server error")
		return
	}

	token := h.sessions.Create(user.Username)
	http.SetCookie(w, h.sessions.Cookie(token))

	h.logger.Info("user logged in", zap.String("username", user.Username))
	writeJSON(w, h.logger, http.StatusOK, user)
}

// Logout handles POST /api/logout/ requests. Logging out without a session
// still succeeds.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if token := session.FromRequest(r); token != "" {
		h.sessions.Destroy(token)
	}

	http.SetCookie(w, h.sessions.Cookie(""))
	writeJSON(w, h.logger, http.StatusOK, messageResponse{Message: "Logged out successfully"})
}

// CurrentUser handles GET /api/user/ requests.
func (h *AuthHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	username, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, h.logger, http.StatusUnauthorized, "Not authenticated")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, model.User{Username: username})
}

// handleUserError maps user store errors to HTTP responses.
func (h *AuthHandler) handleUserError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, serverstore.ErrUserExists):
		writeError(w, h.logger, http.StatusBadRequest, "Username already exists")
	case errors.Is(err, serverstore.ErrEmptyUsername), errors.Is(err, serverstore.ErrEmptyPassword):
		writeError(w, h.logger, http.StatusBadRequest, "Username and password are required")
	default:
		h.logger.Error("user store operation failed", zap.Error(err))
		writeError(w, h.logger, http.StatusInternalServerError, "internal server error")
	}
}
