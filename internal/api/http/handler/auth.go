package handler

import (
	"context"
	"net/http"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/authd/internal/logger"
	"github.com/dtroode/authd/internal/model"
)

// AuthService defines the session lifecycle operations driven over HTTP.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (model.User, error)
	Login(ctx context.Context, email, password string) (model.Session, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	Logout(ctx context.Context, userID uuid.UUID) error
	ResolveUser(ctx context.Context, accessToken string) (model.User, error)
}

// CookieConfig controls the session cookies set on login and refresh.
type CookieConfig struct {
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	Secure     bool
}

// Auth handles the HTTP endpoints for authentication.
type Auth struct {
	authService    AuthService
	contextManager model.ContextManager
	cookies        CookieConfig
	logger         *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, contextManager model.ContextManager, cookies CookieConfig, logger *logger.Logger) *Auth {
	return &Auth{
		authService:    authService,
		contextManager: contextManager,
		cookies:        cookies,
		logger:         logger,
	}
}

type registrationRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func (req *registrationRequest) validate() string {
	switch {
	case len(req.Username) < 5 || len(req.Username) > 50:
		return "username must be between 5 and 50 characters"
	case len(req.Email) < 5 || len(req.Email) > 50 || !emailPattern.MatchString(req.Email):
		return "email must be a valid address"
	case len(req.Password) < 8 || len(req.Password) > 128:
		return "password must be between 8 and 128 characters"
	}
	return ""
}

// Registration creates a new user account. No tokens are issued here.
func (h *Auth) Registration(w http.ResponseWriter, r *http.Request) {
	var req registrationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	_, err := h.authService.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		h.logger.Error("Auth handler: registration failed",
			"email", req.Email,
			"error", err.Error())
		h.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "user registered"})
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type"`
	UserID       string `json:"user_id,omitempty"`
	Email        string `json:"email,omitempty"`
}

// Login authenticates the password form and sets the session cookie pair.
// The form carries the email in the username field, OAuth2 password style.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	email := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if email == "" || password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	session, err := h.authService.Login(r.Context(), email, password)
	if err != nil {
		h.logger.Error("Auth handler: login failed",
			"email", email,
			"error", err.Error())
		h.handleError(w, err)
		return
	}

	h.setAccessCookie(w, session.AccessToken)
	h.setRefreshCookie(w, session.RefreshToken)

	writeJSON(w, http.StatusOK, tokenResponse{
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
		TokenType:    session.TokenType,
		UserID:       session.UserID.String(),
		Email:        session.Email,
	})
}

// Refresh exchanges the refresh cookie for a new access token. The refresh
// token is left as is.
func (h *Auth) Refresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(RefreshCookieName)
	if err != nil || cookie.Value == "" {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	access, err := h.authService.Refresh(r.Context(), cookie.Value)
	if err != nil {
		h.logger.Error("Auth handler: token refresh failed",
			"error", err.Error())
		h.handleError(w, err)
		return
	}

	h.setAccessCookie(w, access)

	writeJSON(w, http.StatusOK, tokenResponse{
		AccessToken: access,
		TokenType:   "bearer",
	})
}

// Logout revokes the authenticated user's tokens and clears both cookies.
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	user, ok := h.contextManager.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	if err := h.authService.Logout(r.Context(), user.ID); err != nil {
		h.logger.Error("Auth handler: logout failed",
			"user_id", user.ID,
			"error", err.Error())
		h.handleError(w, err)
		return
	}

	h.clearAuthCookies(w)

	writeJSON(w, http.StatusOK, messageResponse{Message: "logged out"})
}

type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Me returns the identity of the authenticated user.
func (h *Auth) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := h.contextManager.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	writeJSON(w, http.StatusOK, userResponse{
		ID:       user.ID.String(),
		Username: user.Username,
		Email:    user.Email,
	})
}
