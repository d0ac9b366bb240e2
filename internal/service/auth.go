package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/authd/internal/logger"
	"github.com/dtroode/authd/internal/model"
)

// Auth is the session manager. It orchestrates registration, login, token
// refresh, logout and current-user resolution over the credential store, the
// password hasher and the token service.
type Auth struct {
	userStore    model.UserStore
	hasher       model.Hasher
	tokenService *Token
	logger       *logger.Logger
}

func NewAuth(
	userStore model.UserStore,
	hasher model.Hasher,
	tokenService *Token,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		userStore:    userStore,
		hasher:       hasher,
		tokenService: tokenService,
		logger:       logger,
	}
}

// Register creates a new user with a hashed password. No tokens are issued;
// the client is expected to log in afterwards.
func (a *Auth) Register(ctx context.Context, username, email, password string) (model.User, error) {
	a.logger.Debug("Auth service: registering user",
		"email", email)

	existing, err := a.userStore.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		a.logger.Error("Auth service: failed to get user by email",
			"email", email,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if existing.ID != uuid.Nil {
		a.logger.Info("Auth service: user already exists",
			"email", email)
		return model.User{}, model.ErrDuplicateUser
	}

	hashed, err := a.hasher.Hash(password)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := model.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: hashed,
		CreatedAt:    time.Now(),
	}

	created, err := a.userStore.Create(ctx, user)
	if err != nil {
		// A concurrent registration may win the uniqueness race.
		if errors.Is(err, model.ErrDuplicateUser) {
			return model.User{}, err
		}
		a.logger.Error("Auth service: failed to create user",
			"email", email,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	a.logger.Info("Auth service: user registered",
		"email", email,
		"user_id", created.ID)

	return created, nil
}

// Login verifies credentials and issues an access/refresh pair. Unknown
// email and wrong password produce the identical error so callers cannot
// enumerate accounts.
func (a *Auth) Login(ctx context.Context, email, password string) (model.Session, error) {
	a.logger.Debug("Auth service: logging in user",
		"email", email)

	user, err := a.userStore.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		return model.Session{}, model.ErrInvalidCredentials
	}
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if !a.hasher.Verify(password, user.PasswordHash) {
		return model.Session{}, model.ErrInvalidCredentials
	}

	access, refresh, err := a.tokenService.Issue(ctx, user)
	if err != nil {
		a.logger.Error("Auth service: failed to issue tokens",
			"email", email,
			"error", err.Error())
		return model.Session{}, fmt.Errorf("failed to issue tokens: %w", err)
	}

	a.logger.Info("Auth service: user logged in",
		"email", email,
		"user_id", user.ID)

	return model.Session{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
		UserID:       user.ID,
		Email:        user.Email,
	}, nil
}

// Refresh exchanges a live refresh token for a new access token.
func (a *Auth) Refresh(ctx context.Context, refreshToken string) (string, error) {
	return a.tokenService.Refresh(ctx, refreshToken)
}

// Logout revokes both tokens of the user. Idempotent; never fails the
// caller-visible flow.
func (a *Auth) Logout(ctx context.Context, userID uuid.UUID) error {
	a.logger.Debug("Auth service: logging out user",
		"user_id", userID)

	return a.tokenService.Revoke(ctx, userID)
}

// ResolveUser authenticates an access token and loads the user it belongs
// to. A user record deleted after issuance surfaces as ErrNotFound.
func (a *Auth) ResolveUser(ctx context.Context, accessToken string) (model.User, error) {
	claims, err := a.tokenService.Authenticate(ctx, accessToken)
	if err != nil {
		return model.User{}, err
	}

	user, err := a.userStore.GetByEmail(ctx, claims.Email)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, err
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}
