package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/console-server/internal/mocks"
	"github.com/dtroode/console-server/internal/model"
	"github.com/dtroode/console-server/internal/password"
	"github.com/dtroode/console-server/internal/testutil"
)

func TestBootstrap_EnsureDefaults_FreshDatabase(t *testing.T) {
	users := &mocks.UserStore{}
	roles := &mocks.RoleStore{}
	perms := &mocks.PermissionStore{}

	userRole := model.Role{ID: uuid.New(), Name: model.DefaultRoleName}
	adminRole := model.Role{ID: uuid.New(), Name: model.AdminRoleName}

	roles.On("GetByName", mock.Anything, model.DefaultRoleName).Return(model.Role{}, model.ErrNotFound).Once()
	roles.On("Create", mock.Anything, mock.MatchedBy(func(r model.Role) bool {
		return r.Name == model.DefaultRoleName && r.IsActive
	})).Return(userRole, nil)
	roles.On("GetByName", mock.Anything, model.AdminRoleName).Return(model.Role{}, model.ErrNotFound).Once()
	roles.On("Create", mock.Anything, mock.MatchedBy(func(r model.Role) bool {
		return r.Name == model.AdminRoleName
	})).Return(adminRole, nil)

	perms.On("GetByName", mock.Anything, mock.Anything).Return(model.Permission{}, model.ErrNotFound)
	perms.On("Create", mock.Anything, mock.Anything).Return(func(_ context.Context, p model.Permission) model.Permission {
		p.ID = uuid.New()
		return p
	}, nil)
	roles.On("AddPermission", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	users.On("GetByEmail", mock.Anything, "admin@example.com").Return(model.User{}, model.ErrNotFound)
	roles.On("GetByName", mock.Anything, model.AdminRoleName).Return(adminRole, nil)
	users.On("Create", mock.Anything, mock.MatchedBy(func(u model.User) bool {
		return u.Email == "admin@example.com" && !u.IsDeletable && !u.IsEditable && u.IsActive
	})).Return(model.User{ID: uuid.New(), Email: "admin@example.com"}, nil)
	users.On("AssignRole", mock.Anything, mock.Anything, adminRole.ID).Return(nil)

	b := NewBootstrap(users, roles, perms, password.NewHasher(), testutil.MakeNoopLogger())
	require.NoError(t, b.EnsureDefaults(context.Background(), "admin@example.com", "admin123"))

	users.AssertExpectations(t)
	roles.AssertExpectations(t)
}

func TestBootstrap_EnsureDefaults_Idempotent(t *testing.T) {
	users := &mocks.UserStore{}
	roles := &mocks.RoleStore{}
	perms := &mocks.PermissionStore{}

	roles.On("GetByName", mock.Anything, mock.Anything).Return(model.Role{ID: uuid.New()}, nil)
	perms.On("GetByName", mock.Anything, mock.Anything).Return(model.Permission{ID: uuid.New()}, nil)
	roles.On("AddPermission", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	users.On("GetByEmail", mock.Anything, "admin@example.com").Return(model.User{ID: uuid.New()}, nil)

	b := NewBootstrap(users, roles, perms, password.NewHasher(), testutil.MakeNoopLogger())
	require.NoError(t, b.EnsureDefaults(context.Background(), "admin@example.com", "admin123"))

	roles.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	perms.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
