package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TokenClass distinguishes the two token variants of a session pair.
type TokenClass string

const (
	TokenClassAccess  TokenClass = "access"
	TokenClassRefresh TokenClass = "refresh"
)

// TokenClaims are the verified contents of a parsed token.
type TokenClaims struct {
	UserID    uuid.UUID
	Email     string
	Class     TokenClass
	ExpiresAt time.Time
}

// TokenManager signs and verifies access/refresh tokens. Verification proves
// issuance and freshness only; liveness is the TokenStore's concern.
type TokenManager interface {
	GenerateAccessToken(user User) (string, error)
	GenerateRefreshToken(user User) (string, error)
	ParseAccessToken(token string) (TokenClaims, error)
	ParseRefreshToken(token string) (TokenClaims, error)
}

// TokenStore is the revocation index: it tracks the single live token of
// each class per user. A token absent from the store is revoked regardless
// of its signature.
type TokenStore interface {
	Save(ctx context.Context, class TokenClass, userID uuid.UUID, token string, ttl time.Duration) error
	Exists(ctx context.Context, class TokenClass, userID uuid.UUID) (bool, error)
	Delete(ctx context.Context, class TokenClass, userID uuid.UUID) error
}

// Session is the result of a successful login.
type Session struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
	UserID       uuid.UUID
	Email        string
}
