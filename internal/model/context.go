package model

import "context"

// ContextManager moves the resolved user identity in and out of a
// request context.
type ContextManager interface {
	SetUserToContext(ctx context.Context, user User) context.Context
	GetUserFromContext(ctx context.Context) (User, bool)
}
