package context

import (
	"context"

	"github.com/dtroode/authd/internal/model"
)

type ctxKey int

const userKey ctxKey = iota

// Manager stores and retrieves the authenticated user on request contexts.
type Manager struct{}

func NewManager() *Manager {
	return &Manager{}
}

func (m *Manager) SetUserToContext(ctx context.Context, user model.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

func (m *Manager) GetUserFromContext(ctx context.Context) (model.User, bool) {
	user, ok := ctx.Value(userKey).(model.User)
	return user, ok
}
