package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/authd/internal/mocks"
	"github.com/dtroode/authd/internal/model"
	"github.com/dtroode/authd/internal/testutil"
)

type authFixture struct {
	userStore *mocks.UserStore
	hasher    *mocks.Hasher
	manager   *mocks.TokenManager
	store     *mocks.TokenStore
	svc       *Auth
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		userStore: &mocks.UserStore{},
		hasher:    &mocks.Hasher{},
		manager:   &mocks.TokenManager{},
		store:     &mocks.TokenStore{},
	}
	log := testutil.MakeNoopLogger()
	tokens := NewToken(f.manager, f.store, 15*time.Minute, 24*time.Hour, log)
	f.svc = NewAuth(f.userStore, f.hasher, tokens, log)
	return f
}

func TestAuth_Register_NewUser(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture()

	f.userStore.On("GetByEmail", ctx, "a@x.com").Return(model.User{}, model.ErrNotFound).Once()
	f.hasher.On("Hash", "longpassword1").Return("hashed", nil).Once()
	f.userStore.On("Create", ctx, mock.MatchedBy(func(u model.User) bool {
		return u.Username == "alice12345" && u.Email == "a@x.com" && u.PasswordHash == "hashed" && u.ID != uuid.Nil
	})).Return(model.User{ID: uuid.New(), Username: "alice12345", Email: "a@x.com"}, nil).Once()

	user, err := f.svc.Register(ctx, "alice12345", "a@x.com", "longpassword1")
	require.NoError(t, err)
	assert.Equal(t, "alice12345", user.Username)
	f.userStore.AssertExpectations(t)
}

func TestAuth_Register_Duplicate(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture()

	f.userStore.On("GetByEmail", ctx, "a@x.com").Return(model.User{ID: uuid.New()}, nil).Once()

	_, err := f.svc.Register(ctx, "alice12345", "a@x.com", "longpassword1")
	require.ErrorIs(t, err, model.ErrDuplicateUser)
	f.userStore.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuth_Register_DuplicateRace(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture()

	f.userStore.On("GetByEmail", ctx, "a@x.com").Return(model.User{}, model.ErrNotFound).Once()
	f.hasher.On("Hash", "longpassword1").Return("hashed", nil).Once()
	f.userStore.On("Create", ctx, mock.Anything).Return(model.User{}, model.ErrDuplicateUser).Once()

	_, err := f.svc.Register(ctx, "alice12345", "a@x.com", "longpassword1")
	require.ErrorIs(t, err, model.ErrDuplicateUser)
}

func TestAuth_Login_Success(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture()
	user := model.User{ID: uuid.New(), Username: "alice12345", Email: "a@x.com", PasswordHash: "hashed"}

	f.userStore.On("GetByEmail", ctx, "a@x.com").Return(user, nil).Once()
	f.hasher.On("Verify", "longpassword1", "hashed").Return(true).Once()
	f.manager.On("GenerateAccessToken", user).Return("access", nil).Once()
	f.manager.On("GenerateRefreshToken", user).Return("refresh", nil).Once()
	f.store.On("Save", ctx, model.TokenClassAccess, user.ID, "access", 15*time.Minute).Return(nil).Once()
	f.store.On("Save", ctx, model.TokenClassRefresh, user.ID, "refresh", 24*time.Hour).Return(nil).Once()

	session, err := f.svc.Login(ctx, "a@x.com", "longpassword1")
	require.NoError(t, err)
	assert.Equal(t, "access", session.AccessToken)
	assert.Equal(t, "refresh", session.RefreshToken)
	assert.Equal(t, "bearer", session.TokenType)
	assert.Equal(t, user.ID, session.UserID)
	assert.Equal(t, "a@x.com", session.Email)
	f.store.AssertExpectations(t)
}

func TestAuth_Login_EnumerationResistance(t *testing.T) {
	ctx := context.Background()

	// unknown email
	f := newAuthFixture()
	f.userStore.On("GetByEmail", ctx, "ghost@x.com").Return(model.User{}, model.ErrNotFound).Once()
	_, unknownErr := f.svc.Login(ctx, "ghost@x.com", "longpassword1")
	require.ErrorIs(t, unknownErr, model.ErrInvalidCredentials)

	// wrong password
	f = newAuthFixture()
	user := model.User{ID: uuid.New(), Email: "a@x.com", PasswordHash: "hashed"}
	f.userStore.On("GetByEmail", ctx, "a@x.com").Return(user, nil).Once()
	f.hasher.On("Verify", "wrongpassword", "hashed").Return(false).Once()
	_, wrongErr := f.svc.Login(ctx, "a@x.com", "wrongpassword")
	require.ErrorIs(t, wrongErr, model.ErrInvalidCredentials)

	// identical outcome in both cases
	assert.Equal(t, unknownErr, wrongErr)
}

func TestAuth_Login_IssueFailure(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture()
	user := model.User{ID: uuid.New(), Email: "a@x.com", PasswordHash: "hashed"}

	f.userStore.On("GetByEmail", ctx, "a@x.com").Return(user, nil).Once()
	f.hasher.On("Verify", "longpassword1", "hashed").Return(true).Once()
	f.manager.On("GenerateAccessToken", user).Return("access", nil).Once()
	f.manager.On("GenerateRefreshToken", user).Return("refresh", nil).Once()
	f.store.On("Save", ctx, model.TokenClassAccess, user.ID, "access", 15*time.Minute).Return(model.ErrStoreUnavailable).Once()

	_, err := f.svc.Login(ctx, "a@x.com", "longpassword1")
	require.ErrorIs(t, err, model.ErrStoreUnavailable)
}

func TestAuth_Logout(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture()
	userID := uuid.New()

	f.store.On("Delete", ctx, model.TokenClassAccess, userID).Return(nil).Twice()
	f.store.On("Delete", ctx, model.TokenClassRefresh, userID).Return(nil).Twice()

	require.NoError(t, f.svc.Logout(ctx, userID))
	// idempotent: a second logout is a no-op, not an error
	require.NoError(t, f.svc.Logout(ctx, userID))
	f.store.AssertExpectations(t)
}

func TestAuth_ResolveUser_Success(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture()
	user := model.User{ID: uuid.New(), Username: "alice12345", Email: "a@x.com"}

	claims := model.TokenClaims{UserID: user.ID, Email: user.Email, Class: model.TokenClassAccess}
	f.manager.On("ParseAccessToken", "access").Return(claims, nil).Once()
	f.store.On("Exists", ctx, model.TokenClassAccess, user.ID).Return(true, nil).Once()
	f.userStore.On("GetByEmail", ctx, "a@x.com").Return(user, nil).Once()

	got, err := f.svc.ResolveUser(ctx, "access")
	require.NoError(t, err)
	assert.Equal(t, user, got)
}

func TestAuth_ResolveUser_Revoked(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture()
	userID := uuid.New()

	claims := model.TokenClaims{UserID: userID, Email: "a@x.com", Class: model.TokenClassAccess}
	f.manager.On("ParseAccessToken", "access").Return(claims, nil).Once()
	f.store.On("Exists", ctx, model.TokenClassAccess, userID).Return(false, nil).Once()

	_, err := f.svc.ResolveUser(ctx, "access")
	require.ErrorIs(t, err, model.ErrTokenRevoked)
	f.userStore.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
}

func TestAuth_ResolveUser_UserDeleted(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture()
	userID := uuid.New()

	claims := model.TokenClaims{UserID: userID, Email: "a@x.com", Class: model.TokenClassAccess}
	f.manager.On("ParseAccessToken", "access").Return(claims, nil).Once()
	f.store.On("Exists", ctx, model.TokenClassAccess, userID).Return(true, nil).Once()
	f.userStore.On("GetByEmail", ctx, "a@x.com").Return(model.User{}, model.ErrNotFound).Once()

	_, err := f.svc.ResolveUser(ctx, "access")
	require.ErrorIs(t, err, model.ErrNotFound)
}
