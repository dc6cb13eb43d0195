package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Reserved role names. DefaultRoleName must exist before registration
// can succeed and can never be removed from an account.
const (
	DefaultRoleName = "user"
	AdminRoleName   = "admin"
)

// RoleStore defines persistence operations for roles.
type RoleStore interface {
	GetByName(ctx context.Context, name string) (Role, error)
	Create(ctx context.Context, role Role) (Role, error)
	AddPermission(ctx context.Context, roleID, permissionID uuid.UUID) error
}

// Role is a named capability grouping, attached to users and holding
// permissions. Permissions is populated by eager lookups only.
type Role struct {
	ID          uuid.UUID
	Name        string
	DisplayName string
	Description *string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Permissions []Permission
}
