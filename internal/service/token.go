package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/authd/internal/logger"
	"github.com/dtroode/authd/internal/model"
)

// Token provides high-level operations over the token lifecycle: issuing
// session pairs, refreshing access tokens, and revoking sessions. It
// composes the TokenManager with the revocation index, so a token is only
// accepted when it verifies cryptographically AND has a live index entry.
type Token struct {
	manager model.TokenManager
	store   model.TokenStore
	logger  *logger.Logger

	// NOTE: keep these in sync with the token manager's signing TTLs. They
	// drive index entry expiry, so the entry and the token expire together.
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewToken(manager model.TokenManager, store model.TokenStore, accessTTL, refreshTTL time.Duration, logger *logger.Logger) *Token {
	return &Token{
		manager:    manager,
		store:      store,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		logger:     logger,
	}
}

// Issue creates a fresh access/refresh pair for the user and records both in
// the revocation index. Previous entries for the user are overwritten, which
// invalidates any earlier session. Both index writes must complete before
// the pair is returned, otherwise the client could present a token the index
// has not recorded yet.
func (s *Token) Issue(ctx context.Context, user model.User) (accessToken string, refreshToken string, err error) {
	access, err := s.manager.GenerateAccessToken(user)
	if err != nil {
		return "", "", fmt.Errorf("issue access: %w", err)
	}

	refresh, err := s.manager.GenerateRefreshToken(user)
	if err != nil {
		return "", "", fmt.Errorf("issue refresh: %w", err)
	}

	if err := s.store.Save(ctx, model.TokenClassAccess, user.ID, access, s.accessTTL); err != nil {
		return "", "", fmt.Errorf("persist access: %w", err)
	}

	if err := s.store.Save(ctx, model.TokenClassRefresh, user.ID, refresh, s.refreshTTL); err != nil {
		return "", "", fmt.Errorf("persist refresh: %w", err)
	}

	return access, refresh, nil
}

// Refresh validates the presented refresh token and mints a new access
// token. The refresh token itself is not rotated; it stays usable until its
// own expiry or explicit revocation.
func (s *Token) Refresh(ctx context.Context, presentedRefresh string) (string, error) {
	claims, err := s.manager.ParseRefreshToken(presentedRefresh)
	if err != nil {
		return "", err
	}

	live, err := s.store.Exists(ctx, model.TokenClassRefresh, claims.UserID)
	if err != nil {
		return "", fmt.Errorf("check refresh liveness: %w", err)
	}
	if !live {
		return "", model.ErrTokenRevoked
	}

	user := model.User{ID: claims.UserID, Email: claims.Email}
	access, err := s.manager.GenerateAccessToken(user)
	if err != nil {
		return "", fmt.Errorf("issue new access: %w", err)
	}

	if err := s.store.Save(ctx, model.TokenClassAccess, claims.UserID, access, s.accessTTL); err != nil {
		return "", fmt.Errorf("persist new access: %w", err)
	}

	return access, nil
}

// Authenticate validates an access token against both the codec and the
// revocation index and returns its claims.
func (s *Token) Authenticate(ctx context.Context, accessToken string) (model.TokenClaims, error) {
	claims, err := s.manager.ParseAccessToken(accessToken)
	if err != nil {
		return model.TokenClaims{}, err
	}

	live, err := s.store.Exists(ctx, model.TokenClassAccess, claims.UserID)
	if err != nil {
		return model.TokenClaims{}, fmt.Errorf("check access liveness: %w", err)
	}
	if !live {
		return model.TokenClaims{}, model.ErrTokenRevoked
	}

	return claims, nil
}

// Revoke deletes both index entries for the user. Cleanup is best-effort:
// a failed delete is logged, never escalated, and a repeat call is a no-op.
func (s *Token) Revoke(ctx context.Context, userID uuid.UUID) error {
	for _, class := range []model.TokenClass{model.TokenClassAccess, model.TokenClassRefresh} {
		if err := s.store.Delete(ctx, class, userID); err != nil {
			s.logger.Error("Token service: failed to delete index entry",
				"class", class,
				"user_id", userID,
				"error", err.Error())
		}
	}

	return nil
}
