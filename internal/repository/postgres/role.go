package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dtroode/console-server/internal/model"
)

// Postgres error code for unique constraint violations.
const uniqueViolationCode = "23505"

var _ model.RoleStore = (*RoleRepository)(nil)

type RoleRepository struct {
	db *Connection
}

func NewRoleRepository(db *Connection) *RoleRepository {
	return &RoleRepository{db: db}
}

func (r *RoleRepository) GetByName(ctx context.Context, name string) (model.Role, error) {
	query := `SELECT id, name, display_name, description, is_active, created_at, updated_at
			  FROM roles WHERE name = $1`

	var role model.Role
	err := r.db.QueryRow(ctx, query, name).Scan(
		&role.ID, &role.Name, &role.DisplayName, &role.Description,
		&role.IsActive, &role.CreatedAt, &role.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Role{}, model.ErrNotFound
		}
		return model.Role{}, fmt.Errorf("failed to get role by name: %w", err)
	}

	return role, nil
}

func (r *RoleRepository) Create(ctx context.Context, role model.Role) (model.Role, error) {
	query := `INSERT INTO roles (id, name, display_name, description, is_active, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id, name, display_name, description, is_active, created_at, updated_at`

	if role.ID == uuid.Nil {
		role.ID = uuid.New()
	}

	var savedRole model.Role
	err := r.db.QueryRow(ctx, query,
		role.ID, role.Name, role.DisplayName, role.Description, role.IsActive,
		role.CreatedAt, role.UpdatedAt,
	).Scan(
		&savedRole.ID, &savedRole.Name, &savedRole.DisplayName, &savedRole.Description,
		&savedRole.IsActive, &savedRole.CreatedAt, &savedRole.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return model.Role{}, model.ErrDuplicate
		}
		return model.Role{}, fmt.Errorf("failed to create role: %w", err)
	}

	return savedRole, nil
}

func (r *RoleRepository) AddPermission(ctx context.Context, roleID, permissionID uuid.UUID) error {
	query := `INSERT INTO role_permissions (role_id, permission_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`

	if _, err := r.db.Exec(ctx, query, roleID, permissionID); err != nil {
		return fmt.Errorf("failed to add permission to role: %w", err)
	}
	return nil
}
