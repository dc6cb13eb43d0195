package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dtroode/console-server/internal/logger"
	"github.com/dtroode/console-server/internal/model"
	"github.com/dtroode/console-server/internal/password"
)

// Session implements the credential lifecycle: registration, login,
// refresh rotation and logout.
type Session struct {
	users      model.UserStore
	roles      model.RoleStore
	hasher     *password.Hasher
	tokens     model.TokenManager
	revocation *Revocation
	logger     *logger.Logger
}

func NewSession(
	users model.UserStore,
	roles model.RoleStore,
	hasher *password.Hasher,
	tokens model.TokenManager,
	revocation *Revocation,
	logger *logger.Logger,
) *Session {
	return &Session{
		users:      users,
		roles:      roles,
		hasher:     hasher,
		tokens:     tokens,
		revocation: revocation,
		logger:     logger,
	}
}

// Register creates an account and attaches the default role. The
// default role missing is a deployment fault, reported as
// model.ErrConfiguration rather than blamed on the caller.
func (s *Session) Register(ctx context.Context, name, email, plainPassword string) (model.User, error) {
	_, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return model.User{}, model.ErrEmailTaken
	}
	if !errors.Is(err, model.ErrNotFound) {
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	defaultRole, err := s.roles.GetByName(ctx, model.DefaultRoleName)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			s.logger.Error("Session service: default role is missing",
				"role", model.DefaultRoleName)
			return model.User{}, model.ErrConfiguration
		}
		return model.User{}, fmt.Errorf("failed to get default role: %w", err)
	}

	hash, err := s.hasher.Hash(plainPassword)
	if err != nil {
		return model.User{}, err
	}

	now := time.Now()
	user, err := s.users.Create(ctx, model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		IsActive:     true,
		IsDeletable:  true,
		IsEditable:   true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		// Lost the race with a concurrent registration of the same email.
		if errors.Is(err, model.ErrDuplicate) {
			return model.User{}, model.ErrEmailTaken
		}
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	if err := s.users.AssignRole(ctx, user.ID, defaultRole.ID); err != nil {
		return model.User{}, fmt.Errorf("failed to assign default role: %w", err)
	}
	user.Roles = []model.Role{defaultRole}

	s.logger.Info("Session service: user registered",
		"user_id", user.ID,
		"email", user.Email)

	return user, nil
}

// Login verifies credentials and issues a token pair. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *Session) Login(ctx context.Context, email, plainPassword string) (model.TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.TokenPair{}, model.ErrInvalidCredentials
		}
		return model.TokenPair{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if !s.hasher.Verify(plainPassword, user.PasswordHash) {
		return model.TokenPair{}, model.ErrInvalidCredentials
	}

	pair, err := s.issuePair(user)
	if err != nil {
		return model.TokenPair{}, err
	}

	s.logger.Info("Session service: user logged in",
		"user_id", user.ID)

	return pair, nil
}

// Refresh rotates a refresh token: the presented token is validated,
// a new pair is issued, and only then the old token is revoked so a
// storage failure cannot strand the user with no valid token. Any
// validation failure demands a fresh login.
func (s *Session) Refresh(ctx context.Context, refreshToken string) (model.TokenPair, error) {
	revoked, err := s.revocation.IsRevoked(ctx, refreshToken)
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("failed to check refresh token: %w", err)
	}
	if revoked {
		return model.TokenPair{}, model.ErrRequiresLogin
	}

	claims, err := s.tokens.ParseRefreshToken(refreshToken)
	if err != nil {
		return model.TokenPair{}, model.ErrRequiresLogin
	}

	user, err := s.users.GetByEmail(ctx, claims.Subject)
	if err != nil {
		return model.TokenPair{}, model.ErrRequiresLogin
	}

	pair, err := s.issuePair(user)
	if err != nil {
		return model.TokenPair{}, err
	}

	expiresAt := claims.ExpiresAt
	if err := s.revocation.Revoke(ctx, refreshToken, &expiresAt); err != nil {
		return model.TokenPair{}, fmt.Errorf("failed to revoke old refresh token: %w", err)
	}

	return pair, nil
}

// Logout blacklists both tokens of a session. The refresh token may be
// absent when the client never stored one.
func (s *Session) Logout(ctx context.Context, accessToken, refreshToken string) error {
	if err := s.revocation.Revoke(ctx, accessToken, nil); err != nil {
		return fmt.Errorf("failed to revoke access token: %w", err)
	}

	if refreshToken != "" {
		if err := s.revocation.Revoke(ctx, refreshToken, nil); err != nil {
			return fmt.Errorf("failed to revoke refresh token: %w", err)
		}
	}

	return nil
}

func (s *Session) issuePair(user model.User) (model.TokenPair, error) {
	access, err := s.tokens.GenerateAccessToken(user.Email, user.IsActive)
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	refresh, err := s.tokens.GenerateRefreshToken(user.Email)
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return model.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}
