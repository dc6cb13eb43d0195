//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/dtroode/console-server/internal/model"
	repo "github.com/dtroode/console-server/internal/repository/postgres"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "console_test",
			},
			WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/console_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func TestRepositories_CRUD(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	ur := repo.NewUserRepository(conn)
	rr := repo.NewRoleRepository(conn)
	pr := repo.NewPermissionRepository(conn)

	now := time.Now()

	role, err := rr.Create(ctx, model.Role{
		Name:        "operator",
		DisplayName: "Operator",
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, role.ID)

	perm, err := pr.Create(ctx, model.Permission{
		Name:        "console:read",
		DisplayName: "Read consoles",
		IsDeletable: true,
		IsEditable:  true,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	require.NoError(t, err)
	require.NoError(t, rr.AddPermission(ctx, role.ID, perm.ID))

	t.Run("user_repository", func(t *testing.T) {
		u := model.User{
			Name:         "Alice",
			Email:        "alice@example.com",
			PasswordHash: "$2a$10$notarealhashnotarealhashnotarealhashnotarealha",
			IsActive:     true,
			IsDeletable:  true,
			IsEditable:   true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		saved, err := ur.Create(ctx, u)
		require.NoError(t, err)
		require.NotEqual(t, uuid.Nil, saved.ID)

		_, err = ur.Create(ctx, u)
		require.ErrorIs(t, err, model.ErrDuplicate)

		byEmail, err := ur.GetByEmail(ctx, u.Email)
		require.NoError(t, err)
		require.Equal(t, saved.ID, byEmail.ID)

		byID, err := ur.GetByID(ctx, saved.ID)
		require.NoError(t, err)
		require.Equal(t, u.Email, byID.Email)

		_, err = ur.GetByEmail(ctx, "nobody@example.com")
		require.ErrorIs(t, err, model.ErrNotFound)

		require.NoError(t, ur.AssignRole(ctx, saved.ID, role.ID))
		// Assigning twice is a no-op.
		require.NoError(t, ur.AssignRole(ctx, saved.ID, role.ID))

		eager, err := ur.GetByEmailWithRoles(ctx, u.Email)
		require.NoError(t, err)
		require.Len(t, eager.Roles, 1)
		require.Equal(t, "operator", eager.Roles[0].Name)
		require.Len(t, eager.Roles[0].Permissions, 1)
		require.Equal(t, "console:read", eager.Roles[0].Permissions[0].Name)

		name := "Alice Updated"
		desc := "ops"
		require.NoError(t, ur.UpdateProfile(ctx, saved.ID, &name, &desc))
		updated, err := ur.GetByID(ctx, saved.ID)
		require.NoError(t, err)
		require.Equal(t, name, updated.Name)
		require.NotNil(t, updated.Description)
		require.Equal(t, desc, *updated.Description)

		nameOnly := "Alice Renamed"
		require.NoError(t, ur.UpdateProfile(ctx, saved.ID, &nameOnly, nil))
		updated, err = ur.GetByID(ctx, saved.ID)
		require.NoError(t, err)
		require.Equal(t, nameOnly, updated.Name)
		require.NotNil(t, updated.Description)
		require.Equal(t, desc, *updated.Description)

		users, total, err := ur.List(ctx, 0, 10)
		require.NoError(t, err)
		require.EqualValues(t, 1, total)
		require.Len(t, users, 1)

		require.NoError(t, ur.RemoveRole(ctx, saved.ID, role.ID))
		eager, err = ur.GetByEmailWithRoles(ctx, u.Email)
		require.NoError(t, err)
		require.Empty(t, eager.Roles)
	})

	t.Run("role_repository", func(t *testing.T) {
		byName, err := rr.GetByName(ctx, "operator")
		require.NoError(t, err)
		require.Equal(t, role.ID, byName.ID)

		_, err = rr.GetByName(ctx, "missing")
		require.ErrorIs(t, err, model.ErrNotFound)

		_, err = rr.Create(ctx, model.Role{Name: "operator", CreatedAt: now, UpdatedAt: now})
		require.ErrorIs(t, err, model.ErrDuplicate)
	})

	t.Run("permission_repository", func(t *testing.T) {
		byName, err := pr.GetByName(ctx, "console:read")
		require.NoError(t, err)
		require.Equal(t, perm.ID, byName.ID)

		_, err = pr.GetByName(ctx, "missing")
		require.ErrorIs(t, err, model.ErrNotFound)
	})
}

func TestRevokedTokenRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	tr := repo.NewRevokedTokenRepository(conn)

	live := model.RevokedToken{
		TokenHash: "live-hash",
		ExpiresAt: time.Now().Add(time.Hour),
		CreatedAt: time.Now(),
	}
	expired := model.RevokedToken{
		TokenHash: "expired-hash",
		ExpiresAt: time.Now().Add(-time.Hour),
		CreatedAt: time.Now(),
	}
	require.NoError(t, tr.Create(ctx, live))
	require.NoError(t, tr.Create(ctx, expired))
	require.ErrorIs(t, tr.Create(ctx, live), model.ErrDuplicate)

	exists, err := tr.Exists(ctx, "expired-hash")
	require.NoError(t, err)
	require.True(t, exists)

	unexpired, err := tr.ExistsUnexpired(ctx, "expired-hash")
	require.NoError(t, err)
	require.False(t, unexpired)

	unexpired, err = tr.ExistsUnexpired(ctx, "live-hash")
	require.NoError(t, err)
	require.True(t, unexpired)

	deleted, err := tr.DeleteExpired(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, deleted)

	exists, err = tr.Exists(ctx, "expired-hash")
	require.NoError(t, err)
	require.False(t, exists)

	exists, err = tr.Exists(ctx, "live-hash")
	require.NoError(t, err)
	require.True(t, exists)
}

func TestPolicyRepository_SaveAndList(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	pr := repo.NewPolicyRepository(conn)

	count, err := pr.Count(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 0, count)

	rules := []model.PolicyRule{
		{PType: model.PolicyTypeGrant, V0: "admin", V1: "*", V2: "*"},
		{PType: model.PolicyTypeGrant, V0: "user", V1: "self", V2: "read"},
		{PType: model.PolicyTypeGroup, V0: "root@example.com", V1: "admin"},
	}
	require.NoError(t, pr.SaveAll(ctx, rules))

	count, err = pr.Count(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 3, count)

	listed, err := pr.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	require.Equal(t, model.PolicyTypeGrant, listed[0].PType)
	require.Equal(t, "admin", listed[0].V0)
	require.Equal(t, model.PolicyTypeGroup, listed[2].PType)
}
