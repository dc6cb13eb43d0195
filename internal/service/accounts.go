package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/console-server/internal/logger"
	"github.com/dtroode/console-server/internal/model"
)

// Accounts covers user administration: listing, profile updates and
// role assignment.
type Accounts struct {
	users  model.UserStore
	roles  model.RoleStore
	logger *logger.Logger
}

func NewAccounts(users model.UserStore, roles model.RoleStore, logger *logger.Logger) *Accounts {
	return &Accounts{
		users:  users,
		roles:  roles,
		logger: logger,
	}
}

// ListUsers returns one page of users plus the total count.
func (s *Accounts) ListUsers(ctx context.Context, offset, limit int) ([]model.User, int64, error) {
	users, total, err := s.users.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

// UpdateProfile changes a user's own display fields. Nil fields are
// left untouched. Accounts flagged immutable reject the update.
func (s *Accounts) UpdateProfile(ctx context.Context, userID uuid.UUID, name, description *string) (model.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user: %w", err)
	}
	if !user.IsEditable {
		return model.User{}, model.ErrForbidden
	}

	if err := s.users.UpdateProfile(ctx, userID, name, description); err != nil {
		return model.User{}, fmt.Errorf("failed to update profile: %w", err)
	}

	updated, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	return updated, nil
}

// AssignRole attaches a role, by name, to a user. Assigning a role the
// user already holds is a no-op.
func (s *Accounts) AssignRole(ctx context.Context, userID uuid.UUID, roleName string) error {
	role, err := s.roles.GetByName(ctx, roleName)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrNotFound
		}
		return fmt.Errorf("failed to get role: %w", err)
	}

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	if err := s.users.AssignRole(ctx, userID, role.ID); err != nil {
		return fmt.Errorf("failed to assign role: %w", err)
	}

	s.logger.Info("Accounts service: role assigned",
		"user_id", userID,
		"role", roleName)

	return nil
}

// RemoveRole detaches a role from a user. The default role cannot be
// removed; every account keeps its baseline capabilities.
func (s *Accounts) RemoveRole(ctx context.Context, userID uuid.UUID, roleName string) error {
	if roleName == model.DefaultRoleName {
		return model.ErrForbidden
	}

	role, err := s.roles.GetByName(ctx, roleName)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrNotFound
		}
		return fmt.Errorf("failed to get role: %w", err)
	}

	if err := s.users.RemoveRole(ctx, userID, role.ID); err != nil {
		return fmt.Errorf("failed to remove role: %w", err)
	}

	s.logger.Info("Accounts service: role removed",
		"user_id", userID,
		"role", roleName)

	return nil
}
