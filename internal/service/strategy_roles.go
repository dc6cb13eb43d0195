package service

import (
	"context"

	"github.com/dtroode/console-server/internal/model"
)

var _ Strategy = (*RoleStrategy)(nil)

// RoleStrategy grants an operation when the user's capability set
// contains the required "object:action" capability. The capability set
// is the union of the user's role names and permission names, so a
// requirement can be satisfied either by holding a permission named
// after it or by holding a role named after it.
type RoleStrategy struct{}

func NewRoleStrategy() *RoleStrategy {
	return &RoleStrategy{}
}

func (s *RoleStrategy) Allowed(_ context.Context, user model.User, object, action string) (bool, error) {
	// Admins bypass per-capability checks.
	if user.HasRole(model.AdminRoleName) {
		return true, nil
	}

	required := object + ":" + action
	for _, name := range user.RoleNames() {
		if name == required {
			return true, nil
		}
	}
	for _, name := range user.PermissionNames() {
		if name == required {
			return true, nil
		}
	}

	return false, nil
}
