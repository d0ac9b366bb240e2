package handler

import (
	"errors"
	"net/http"

	"github.com/dtroode/authd/internal/model"
)

// handleError maps service errors to status codes. Token and user lookup
// failures during authentication collapse to one generic message so the
// response does not leak which check failed.
func (h *Auth) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrDuplicateUser):
		writeError(w, http.StatusBadRequest, "user already exists")
	case errors.Is(err, model.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "incorrect email or password")
	case errors.Is(err, model.ErrInvalidToken),
		errors.Is(err, model.ErrTokenRevoked),
		errors.Is(err, model.ErrNotFound):
		writeError(w, http.StatusUnauthorized, "not authenticated")
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
