package service

import (
	"context"

	"github.com/dtroode/console-server/internal/model"
)

// Strategy decides whether a resolved user may perform an action on an
// object. Implementations must treat an empty decision as deny.
type Strategy interface {
	Allowed(ctx context.Context, user model.User, object, action string) (bool, error)
}

// Access gates operations behind authentication and a pluggable
// authorization strategy.
type Access struct {
	identity *Identity
	strategy Strategy
}

func NewAccess(identity *Identity, strategy Strategy) *Access {
	return &Access{
		identity: identity,
		strategy: strategy,
	}
}

// Require resolves the token and checks the strategy. It returns the
// user so handlers do not resolve twice. Authentication failures map to
// model.ErrUnauthenticated, authorization failures to model.ErrForbidden.
func (s *Access) Require(ctx context.Context, token, object, action string) (model.User, error) {
	user, err := s.identity.Resolve(ctx, token)
	if err != nil {
		return model.User{}, err
	}

	allowed, err := s.strategy.Allowed(ctx, user, object, action)
	if err != nil {
		return model.User{}, err
	}
	if !allowed {
		return model.User{}, model.ErrForbidden
	}

	return user, nil
}

// Resolve authenticates without an authorization check, for endpoints
// any logged-in user may call.
func (s *Access) Resolve(ctx context.Context, token string) (model.User, error) {
	return s.identity.Resolve(ctx, token)
}
