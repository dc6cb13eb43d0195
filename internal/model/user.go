package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for user accounts.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	// GetByEmailWithRoles loads a user together with its roles and each
	// role's permissions in a single joined query. Identity resolution
	// relies on this so that authorization checks never trigger
	// additional fetches on a resolved user.
	GetByEmailWithRoles(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	Create(ctx context.Context, user User) (User, error)
	// UpdateProfile updates only the fields whose pointers are non-nil.
	UpdateProfile(ctx context.Context, id uuid.UUID, name *string, description *string) error
	List(ctx context.Context, offset, limit int) ([]User, int64, error)
	AssignRole(ctx context.Context, userID, roleID uuid.UUID) error
	RemoveRole(ctx context.Context, userID, roleID uuid.UUID) error
}

// User represents a stored account. Roles is populated only by
// GetByEmailWithRoles; other lookups leave it nil.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Description  *string
	IsActive     bool
	IsDeletable  bool
	IsEditable   bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Roles        []Role
}

// RoleNames returns the names of the user's loaded roles.
func (u User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}

// HasRole reports whether one of the loaded roles has the given name.
func (u User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r.Name == name {
			return true
		}
	}
	return false
}

// PermissionNames returns the deduplicated permission names reachable
// through the user's loaded roles.
func (u User) PermissionNames() []string {
	seen := make(map[string]struct{})
	names := make([]string, 0)
	for _, r := range u.Roles {
		for _, p := range r.Permissions {
			if _, ok := seen[p.Name]; ok {
				continue
			}
			seen[p.Name] = struct{}{}
			names = append(names, p.Name)
		}
	}
	return names
}
