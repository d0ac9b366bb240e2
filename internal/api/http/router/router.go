package router

import (
	"net/http"

	"github.com/dtroode/authd/internal/api/http/handler"
	"github.com/dtroode/authd/internal/api/http/middleware"
)

// New wires the auth endpoints. Logout and me require a live access token;
// the remaining routes drive the session state machine from the outside.
func New(h *handler.Auth, auth *middleware.Authenticate, logging *middleware.Logging) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/registration", h.Registration)
	mux.HandleFunc("POST /auth/login", h.Login)
	mux.HandleFunc("POST /auth/refresh", h.Refresh)
	mux.Handle("POST /auth/logout", auth.Wrap(http.HandlerFunc(h.Logout)))
	mux.Handle("GET /auth/me", auth.Wrap(http.HandlerFunc(h.Me)))

	return logging.Wrap(mux)
}
