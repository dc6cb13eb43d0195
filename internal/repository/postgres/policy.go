package postgres

import (
	"context"
	"fmt"

	"github.com/dtroode/console-server/internal/model"
)

var _ model.PolicyStore = (*PolicyRepository)(nil)

type PolicyRepository struct {
	db *Connection
}

func NewPolicyRepository(db *Connection) *PolicyRepository {
	return &PolicyRepository{db: db}
}

func (r *PolicyRepository) List(ctx context.Context) ([]model.PolicyRule, error) {
	query := `SELECT id, ptype, v0, v1, v2, created_at FROM policy_rules ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list policy rules: %w", err)
	}
	defer rows.Close()

	var rules []model.PolicyRule
	for rows.Next() {
		var rule model.PolicyRule
		if err := rows.Scan(&rule.ID, &rule.PType, &rule.V0, &rule.V1, &rule.V2, &rule.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan policy rule: %w", err)
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read policy rules: %w", err)
	}

	return rules, nil
}

func (r *PolicyRepository) SaveAll(ctx context.Context, rules []model.PolicyRule) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `INSERT INTO policy_rules (ptype, v0, v1, v2) VALUES ($1, $2, $3, $4)`

	for _, rule := range rules {
		if _, err := tx.Exec(ctx, query, rule.PType, rule.V0, rule.V1, rule.V2); err != nil {
			return fmt.Errorf("failed to insert policy rule: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit policy rules: %w", err)
	}

	return nil
}

func (r *PolicyRepository) Count(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM policy_rules`

	var count int64
	if err := r.db.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count policy rules: %w", err)
	}

	return count, nil
}
