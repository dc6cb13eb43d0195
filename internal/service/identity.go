package service

import (
	"context"

	"github.com/dtroode/console-server/internal/logger"
	"github.com/dtroode/console-server/internal/model"
)

// Identity turns a bearer access token into a fully loaded user. Every
// failure mode collapses into model.ErrUnauthenticated so a caller
// cannot probe which check rejected the token.
type Identity struct {
	users      model.UserStore
	tokens     model.TokenManager
	revocation *Revocation
	logger     *logger.Logger
}

func NewIdentity(users model.UserStore, tokens model.TokenManager, revocation *Revocation, logger *logger.Logger) *Identity {
	return &Identity{
		users:      users,
		tokens:     tokens,
		revocation: revocation,
		logger:     logger,
	}
}

// Resolve validates the token against the blacklist and the codec, then
// loads the subject with roles and permissions eagerly attached.
func (s *Identity) Resolve(ctx context.Context, token string) (model.User, error) {
	revoked, err := s.revocation.IsRevoked(ctx, token)
	if err != nil {
		s.logger.Error("Identity service: revocation check failed",
			"error", err.Error())
		return model.User{}, model.ErrUnauthenticated
	}
	if revoked {
		return model.User{}, model.ErrUnauthenticated
	}

	claims, err := s.tokens.ParseAccessToken(token)
	if err != nil {
		return model.User{}, model.ErrUnauthenticated
	}

	if !claims.IsActive {
		return model.User{}, model.ErrUnauthenticated
	}

	user, err := s.users.GetByEmailWithRoles(ctx, claims.Subject)
	if err != nil {
		return model.User{}, model.ErrUnauthenticated
	}

	return user, nil
}
