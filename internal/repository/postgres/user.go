package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dtroode/console-server/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

type UserRepository struct {
	db *Connection
}

func NewUserRepository(db *Connection) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

const userColumns = `id, name, email, password_hash, description, is_active, is_deletable, is_editable, created_at, updated_at`

func scanUser(row pgx.Row) (model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Description,
		&user.IsActive, &user.IsDeletable, &user.IsEditable, &user.CreatedAt, &user.UpdatedAt,
	)
	return user, err
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

// GetByEmailWithRoles loads a user with roles and role permissions in
// one joined query, folding the denormalized rows back into the model.
// Downstream authorization checks read only the returned value and
// never reach back into the store.
func (r *UserRepository) GetByEmailWithRoles(ctx context.Context, email string) (model.User, error) {
	query := `
        SELECT u.id, u.name, u.email, u.password_hash, u.description, u.is_active, u.is_deletable, u.is_editable, u.created_at, u.updated_at,
               r.id, r.name, r.display_name, r.description, r.is_active, r.created_at, r.updated_at,
               p.id, p.name, p.display_name, p.description, p.is_deletable, p.is_editable, p.created_at, p.updated_at
        FROM users u
        LEFT JOIN user_roles ur ON ur.user_id = u.id
        LEFT JOIN roles r ON r.id = ur.role_id
        LEFT JOIN role_permissions rp ON rp.role_id = r.id
        LEFT JOIN permissions p ON p.id = rp.permission_id
        WHERE u.email = $1
        ORDER BY r.name, p.name
    `

	rows, err := r.db.Query(ctx, query, email)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user with roles: %w", err)
	}
	defer rows.Close()

	var (
		user      model.User
		found     bool
		roleIndex = make(map[uuid.UUID]int)
	)

	for rows.Next() {
		var (
			role struct {
				ID          *uuid.UUID
				Name        *string
				DisplayName *string
				Description *string
				IsActive    *bool
				CreatedAt   *time.Time
				UpdatedAt   *time.Time
			}
			perm struct {
				ID          *uuid.UUID
				Name        *string
				DisplayName *string
				Description *string
				IsDeletable *bool
				IsEditable  *bool
				CreatedAt   *time.Time
				UpdatedAt   *time.Time
			}
		)

		err := rows.Scan(
			&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Description,
			&user.IsActive, &user.IsDeletable, &user.IsEditable, &user.CreatedAt, &user.UpdatedAt,
			&role.ID, &role.Name, &role.DisplayName, &role.Description, &role.IsActive, &role.CreatedAt, &role.UpdatedAt,
			&perm.ID, &perm.Name, &perm.DisplayName, &perm.Description, &perm.IsDeletable, &perm.IsEditable, &perm.CreatedAt, &perm.UpdatedAt,
		)
		if err != nil {
			return model.User{}, fmt.Errorf("failed to scan user row: %w", err)
		}
		found = true

		if role.ID == nil {
			continue
		}

		idx, ok := roleIndex[*role.ID]
		if !ok {
			user.Roles = append(user.Roles, model.Role{
				ID:          *role.ID,
				Name:        *role.Name,
				DisplayName: *role.DisplayName,
				Description: role.Description,
				IsActive:    *role.IsActive,
				CreatedAt:   *role.CreatedAt,
				UpdatedAt:   *role.UpdatedAt,
			})
			idx = len(user.Roles) - 1
			roleIndex[*role.ID] = idx
		}

		if perm.ID != nil {
			user.Roles[idx].Permissions = append(user.Roles[idx].Permissions, model.Permission{
				ID:          *perm.ID,
				Name:        *perm.Name,
				DisplayName: *perm.DisplayName,
				Description: perm.Description,
				IsDeletable: *perm.IsDeletable,
				IsEditable:  *perm.IsEditable,
				CreatedAt:   *perm.CreatedAt,
				UpdatedAt:   *perm.UpdatedAt,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return model.User{}, fmt.Errorf("failed to read user rows: %w", err)
	}
	if !found {
		return model.User{}, model.ErrNotFound
	}

	return user, nil
}

func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	query := `INSERT INTO users (id, name, email, password_hash, description, is_active, is_deletable, is_editable, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			  RETURNING ` + userColumns

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}

	savedUser, err := scanUser(r.db.QueryRow(ctx, query,
		user.ID, user.Name, user.Email, user.PasswordHash, user.Description,
		user.IsActive, user.IsDeletable, user.IsEditable, user.CreatedAt, user.UpdatedAt,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return model.User{}, model.ErrDuplicate
		}
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return savedUser, nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id uuid.UUID, name *string, description *string) error {
	// Nil fields are left untouched.
	query := `UPDATE users SET name = COALESCE($2, name), description = COALESCE($3, description), updated_at = NOW() WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id, name, description)
	if err != nil {
		return fmt.Errorf("failed to update user profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *UserRepository) List(ctx context.Context, offset, limit int) ([]model.User, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at OFFSET $1 LIMIT $2`
	rows, err := r.db.Query(ctx, query, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := make([]model.User, 0, limit)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read user rows: %w", err)
	}

	return users, total, nil
}

func (r *UserRepository) AssignRole(ctx context.Context, userID, roleID uuid.UUID) error {
	query := `INSERT INTO user_roles (user_id, role_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`

	if _, err := r.db.Exec(ctx, query, userID, roleID); err != nil {
		return fmt.Errorf("failed to assign role: %w", err)
	}
	return nil
}

func (r *UserRepository) RemoveRole(ctx context.Context, userID, roleID uuid.UUID) error {
	query := `DELETE FROM user_roles WHERE user_id = $1 AND role_id = $2`

	if _, err := r.db.Exec(ctx, query, userID, roleID); err != nil {
		return fmt.Errorf("failed to remove role: %w", err)
	}
	return nil
}
