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

var _ model.PermissionStore = (*PermissionRepository)(nil)

type PermissionRepository struct {
	db *Connection
}

func NewPermissionRepository(db *Connection) *PermissionRepository {
	return &PermissionRepository{db: db}
}

func (r *PermissionRepository) GetByName(ctx context.Context, name string) (model.Permission, error) {
	query := `SELECT id, name, display_name, description, is_deletable, is_editable, created_at, updated_at
			  FROM permissions WHERE name = $1`

	var perm model.Permission
	err := r.db.QueryRow(ctx, query, name).Scan(
		&perm.ID, &perm.Name, &perm.DisplayName, &perm.Description,
		&perm.IsDeletable, &perm.IsEditable, &perm.CreatedAt, &perm.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Permission{}, model.ErrNotFound
		}
		return model.Permission{}, fmt.Errorf("failed to get permission by name: %w", err)
	}

	return perm, nil
}

func (r *PermissionRepository) Create(ctx context.Context, perm model.Permission) (model.Permission, error) {
	query := `INSERT INTO permissions (id, name, display_name, description, is_deletable, is_editable, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING id, name, display_name, description, is_deletable, is_editable, created_at, updated_at`

	if perm.ID == uuid.Nil {
		perm.ID = uuid.New()
	}

	var savedPerm model.Permission
	err := r.db.QueryRow(ctx, query,
		perm.ID, perm.Name, perm.DisplayName, perm.Description,
		perm.IsDeletable, perm.IsEditable, perm.CreatedAt, perm.UpdatedAt,
	).Scan(
		&savedPerm.ID, &savedPerm.Name, &savedPerm.DisplayName, &savedPerm.Description,
		&savedPerm.IsDeletable, &savedPerm.IsEditable, &savedPerm.CreatedAt, &savedPerm.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return model.Permission{}, model.ErrDuplicate
		}
		return model.Permission{}, fmt.Errorf("failed to create permission: %w", err)
	}

	return savedPerm, nil
}
