package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dtroode/authd/internal/model"
)

// Claims represents JWT claims with token class and user ID. The subject
// carries the user's email, matching the wire format consumed by clients.
type Claims struct {
	jwt.RegisteredClaims
	UserID    uuid.UUID `json:"user_id"`
	TokenType string    `json:"type"`
}

// JWT implements model.TokenManager backed by a symmetric HMAC secret.
type JWT struct {
	secretKey  string
	method     jwt.SigningMethod
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewJWT creates a JWT token manager. The algorithm must name an HMAC
// signing method (HS256, HS384 or HS512).
func NewJWT(secretKey, algorithm string, accessTTL, refreshTTL time.Duration) (*JWT, error) {
	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return nil, fmt.Errorf("unknown signing algorithm %q", algorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("signing algorithm %q is not symmetric", algorithm)
	}

	return &JWT{
		secretKey:  secretKey,
		method:     method,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}, nil
}

// GenerateAccessToken creates a short-lived access token for the user.
func (j *JWT) GenerateAccessToken(user model.User) (string, error) {
	return j.generate(user, model.TokenClassAccess, j.accessTTL)
}

// GenerateRefreshToken creates a long-lived refresh token for the user.
func (j *JWT) GenerateRefreshToken(user model.User) (string, error) {
	return j.generate(user, model.TokenClassRefresh, j.refreshTTL)
}

func (j *JWT) generate(user model.User, class model.TokenClass, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(j.method, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:    user.ID,
		TokenType: string(class),
	})

	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", class, err)
	}

	return tokenString, nil
}

// ParseAccessToken validates an access token and extracts its claims.
func (j *JWT) ParseAccessToken(tokenString string) (model.TokenClaims, error) {
	return j.parse(tokenString, model.TokenClassAccess)
}

// ParseRefreshToken validates a refresh token and extracts its claims.
func (j *JWT) ParseRefreshToken(tokenString string) (model.TokenClaims, error) {
	return j.parse(tokenString, model.TokenClassRefresh)
}

func (j *JWT) parse(tokenString string, class model.TokenClass) (model.TokenClaims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(j.secretKey), nil
	})
	if err != nil {
		return model.TokenClaims{}, fmt.Errorf("%w: %w", model.ErrInvalidToken, err)
	}
	if !token.Valid {
		return model.TokenClaims{}, fmt.Errorf("%w: token is not valid", model.ErrInvalidToken)
	}
	if claims.TokenType != string(class) {
		return model.TokenClaims{}, fmt.Errorf("%w: token type mismatch: %s", model.ErrInvalidToken, claims.TokenType)
	}
	if claims.ExpiresAt == nil {
		return model.TokenClaims{}, fmt.Errorf("%w: missing expiry", model.ErrInvalidToken)
	}

	return model.TokenClaims{
		UserID:    claims.UserID,
		Email:     claims.Subject,
		Class:     class,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
