package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/dtroode/authd/internal/api/http/handler"
	"github.com/dtroode/authd/internal/logger"
	"github.com/dtroode/authd/internal/model"
)

// AuthService resolves the current user from an access token.
type AuthService interface {
	ResolveUser(ctx context.Context, accessToken string) (model.User, error)
}

// Authenticate validates access tokens and injects the resolved user into
// the request context.
type Authenticate struct {
	authService    AuthService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(authService AuthService, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{
		authService:    authService,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Wrap extracts the access token, resolves the user through the dual
// codec-plus-index check, and passes the request on with the user in
// context. The cookie takes precedence over an Authorization bearer header.
func (m *Authenticate) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := tokenFromRequest(r)
		if tokenString == "" {
			writeStatusJSON(w, http.StatusUnauthorized, "not authenticated")
			return
		}

		user, err := m.authService.ResolveUser(r.Context(), tokenString)
		if err != nil {
			// Infra failure is not an authentication verdict.
			if errors.Is(err, model.ErrStoreUnavailable) {
				m.logger.Error("Authenticate middleware: revocation index unavailable",
					"error", err.Error())
				writeStatusJSON(w, http.StatusInternalServerError, "internal server error")
				return
			}
			m.logger.Debug("Authenticate middleware: token rejected",
				"error", err.Error())
			writeStatusJSON(w, http.StatusUnauthorized, "not authenticated")
			return
		}

		ctx := m.contextManager.SetUserToContext(r.Context(), user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func tokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(handler.AccessCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

func writeStatusJSON(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"detail": detail})
}
