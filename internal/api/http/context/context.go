// Package context moves the resolved user identity through a request
// context.
package context

import (
	"context"

	"github.com/dtroode/console-server/internal/model"
)

type contextKey int

const userKey contextKey = iota

// Manager implements model.ContextManager over plain context values.
type Manager struct{}

// NewManager creates a new context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetUserToContext returns a child context carrying the user.
func (m *Manager) SetUserToContext(ctx context.Context, user model.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// GetUserFromContext retrieves the user stored by SetUserToContext.
// The boolean reports whether a user was present.
func (m *Manager) GetUserFromContext(ctx context.Context) (model.User, bool) {
	user, ok := ctx.Value(userKey).(model.User)
	return user, ok
}
