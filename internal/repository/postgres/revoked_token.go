package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dtroode/console-server/internal/model"
)

var _ model.RevokedTokenStore = (*RevokedTokenRepository)(nil)

type RevokedTokenRepository struct {
	db *Connection
}

func NewRevokedTokenRepository(db *Connection) *RevokedTokenRepository {
	return &RevokedTokenRepository{db: db}
}

func (r *RevokedTokenRepository) Create(ctx context.Context, token model.RevokedToken) error {
	query := `INSERT INTO revoked_tokens (id, token_hash, expires_at, created_at)
			  VALUES ($1, $2, $3, $4)`

	if token.ID == uuid.Nil {
		token.ID = uuid.New()
	}

	if _, err := r.db.Exec(ctx, query, token.ID, token.TokenHash, token.ExpiresAt, token.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return model.ErrDuplicate
		}
		return fmt.Errorf("failed to create revoked token: %w", err)
	}

	return nil
}

func (r *RevokedTokenRepository) Exists(ctx context.Context, tokenHash string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM revoked_tokens WHERE token_hash = $1)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, tokenHash).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check revoked token: %w", err)
	}

	return exists, nil
}

func (r *RevokedTokenRepository) ExistsUnexpired(ctx context.Context, tokenHash string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM revoked_tokens WHERE token_hash = $1 AND expires_at > NOW())`

	var exists bool
	if err := r.db.QueryRow(ctx, query, tokenHash).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check revoked token: %w", err)
	}

	return exists, nil
}

func (r *RevokedTokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	query := `DELETE FROM revoked_tokens WHERE expires_at < NOW()`

	tag, err := r.db.Exec(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired tokens: %w", err)
	}

	return tag.RowsAffected(), nil
}
