package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RevokedTokenStore defines persistence operations for the token
// blacklist. Rows are append-only facts keyed by token fingerprint and
// garbage collected once their expiry passes.
type RevokedTokenStore interface {
	Create(ctx context.Context, token RevokedToken) error
	// Exists reports whether a fingerprint row is present at all,
	// regardless of expiry.
	Exists(ctx context.Context, tokenHash string) (bool, error)
	// ExistsUnexpired reports whether a fingerprint row is present with
	// an expiry still in the future. Expired rows count as not revoked;
	// the token would be rejected on expiry anyway.
	ExistsUnexpired(ctx context.Context, tokenHash string) (bool, error)
	// DeleteExpired removes rows whose expiry is strictly in the past
	// and returns the number removed.
	DeleteExpired(ctx context.Context) (int64, error)
}

// RevokedToken records one revoked token by its SHA-256 fingerprint.
// The raw token string is never stored.
type RevokedToken struct {
	ID        uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
}
