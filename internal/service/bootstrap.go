package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/console-server/internal/logger"
	"github.com/dtroode/console-server/internal/model"
	"github.com/dtroode/console-server/internal/password"
)

// Bootstrap seeds the baseline state a fresh deployment needs: the
// built-in roles, their permissions, and the initial admin account.
// Every step is idempotent, so running it on every startup is safe.
type Bootstrap struct {
	users       model.UserStore
	roles       model.RoleStore
	permissions model.PermissionStore
	hasher      *password.Hasher
	logger      *logger.Logger
}

func NewBootstrap(
	users model.UserStore,
	roles model.RoleStore,
	permissions model.PermissionStore,
	hasher *password.Hasher,
	logger *logger.Logger,
) *Bootstrap {
	return &Bootstrap{
		users:       users,
		roles:       roles,
		permissions: permissions,
		hasher:      hasher,
		logger:      logger,
	}
}

type seedRole struct {
	name        string
	displayName string
	permissions []seedPermission
}

type seedPermission struct {
	name        string
	displayName string
}

var seedRoles = []seedRole{
	{
		name:        model.DefaultRoleName,
		displayName: "User",
		permissions: []seedPermission{
			{name: "self:read", displayName: "Read own profile"},
			{name: "self:update", displayName: "Update own profile"},
		},
	},
	{
		name:        model.AdminRoleName,
		displayName: "Administrator",
		permissions: []seedPermission{
			{name: "users:read", displayName: "List users"},
			{name: "roles:manage", displayName: "Assign and remove roles"},
			{name: "tokens:cleanup", displayName: "Purge expired revoked tokens"},
		},
	},
}

// EnsureDefaults creates missing roles, permissions and the admin
// account. Existing rows are left as they are, so operator edits to
// the built-ins survive restarts.
func (s *Bootstrap) EnsureDefaults(ctx context.Context, adminEmail, adminPassword string) error {
	for _, sr := range seedRoles {
		role, err := s.ensureRole(ctx, sr)
		if err != nil {
			return err
		}

		for _, sp := range sr.permissions {
			perm, err := s.ensurePermission(ctx, sp)
			if err != nil {
				return err
			}
			if err := s.roles.AddPermission(ctx, role.ID, perm.ID); err != nil {
				return fmt.Errorf("failed to attach permission %q: %w", sp.name, err)
			}
		}
	}

	return s.ensureAdmin(ctx, adminEmail, adminPassword)
}

func (s *Bootstrap) ensureRole(ctx context.Context, sr seedRole) (model.Role, error) {
	role, err := s.roles.GetByName(ctx, sr.name)
	if err == nil {
		return role, nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		return model.Role{}, fmt.Errorf("failed to get role %q: %w", sr.name, err)
	}

	now := time.Now()
	role, err = s.roles.Create(ctx, model.Role{
		Name:        sr.name,
		DisplayName: sr.displayName,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		// Another instance seeded it first.
		if errors.Is(err, model.ErrDuplicate) {
			return s.roles.GetByName(ctx, sr.name)
		}
		return model.Role{}, fmt.Errorf("failed to create role %q: %w", sr.name, err)
	}

	s.logger.Info("Bootstrap: created role", "role", sr.name)
	return role, nil
}

func (s *Bootstrap) ensurePermission(ctx context.Context, sp seedPermission) (model.Permission, error) {
	perm, err := s.permissions.GetByName(ctx, sp.name)
	if err == nil {
		return perm, nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		return model.Permission{}, fmt.Errorf("failed to get permission %q: %w", sp.name, err)
	}

	now := time.Now()
	perm, err = s.permissions.Create(ctx, model.Permission{
		Name:        sp.name,
		DisplayName: sp.displayName,
		IsDeletable: false,
		IsEditable:  false,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		if errors.Is(err, model.ErrDuplicate) {
			return s.permissions.GetByName(ctx, sp.name)
		}
		return model.Permission{}, fmt.Errorf("failed to create permission %q: %w", sp.name, err)
	}

	return perm, nil
}

func (s *Bootstrap) ensureAdmin(ctx context.Context, email, plainPassword string) error {
	_, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		return fmt.Errorf("failed to get admin user: %w", err)
	}

	adminRole, err := s.roles.GetByName(ctx, model.AdminRoleName)
	if err != nil {
		return fmt.Errorf("failed to get admin role: %w", err)
	}

	hash, err := s.hasher.Hash(plainPassword)
	if err != nil {
		return err
	}

	now := time.Now()
	admin, err := s.users.Create(ctx, model.User{
		ID:           uuid.New(),
		Name:         "Administrator",
		Email:        email,
		PasswordHash: hash,
		IsActive:     true,
		IsDeletable:  false,
		IsEditable:   false,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, model.ErrDuplicate) {
			return nil
		}
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	if err := s.users.AssignRole(ctx, admin.ID, adminRole.ID); err != nil {
		return fmt.Errorf("failed to assign admin role: %w", err)
	}

	s.logger.Info("Bootstrap: created admin account", "email", email)
	return nil
}
