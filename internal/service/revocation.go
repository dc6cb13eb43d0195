package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/dtroode/console-server/internal/logger"
	"github.com/dtroode/console-server/internal/model"
)

// Fingerprint returns the SHA-256 hex digest a token is blacklisted
// under. The raw token string never reaches storage.
func Fingerprint(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// Revocation maintains the token blacklist. Blacklist rows live until
// the token they fingerprint would have expired anyway, then become
// garbage for Cleanup.
type Revocation struct {
	store      model.RevokedTokenStore
	tokens     model.TokenManager
	defaultTTL time.Duration
	logger     *logger.Logger
}

func NewRevocation(store model.RevokedTokenStore, tokens model.TokenManager, defaultTTL time.Duration, logger *logger.Logger) *Revocation {
	return &Revocation{
		store:      store,
		tokens:     tokens,
		defaultTTL: defaultTTL,
		logger:     logger,
	}
}

// Revoke blacklists a token. When expiresAt is nil the expiry is read
// from the token itself; if the token cannot be verified anymore the
// default TTL from now is used, so a revocation request never fails on
// an unreadable token.
func (s *Revocation) Revoke(ctx context.Context, token string, expiresAt *time.Time) error {
	hash := Fingerprint(token)

	var expiry time.Time
	switch {
	case expiresAt != nil:
		expiry = *expiresAt
	default:
		claimed, err := s.tokens.Expiry(token)
		if err != nil {
			s.logger.Debug("Revocation service: expiry unreadable, using default TTL",
				"error", err.Error())
			claimed = time.Now().Add(s.defaultTTL)
		}
		expiry = claimed
	}

	exists, err := s.store.Exists(ctx, hash)
	if err != nil {
		return fmt.Errorf("failed to check revoked token: %w", err)
	}
	if exists {
		return nil
	}

	now := time.Now()
	err = s.store.Create(ctx, model.RevokedToken{
		TokenHash: hash,
		ExpiresAt: expiry,
		CreatedAt: now,
	})
	if err != nil {
		// Lost the race with a concurrent revocation of the same token.
		if errors.Is(err, model.ErrDuplicate) {
			return nil
		}
		return fmt.Errorf("failed to create revoked token: %w", err)
	}

	return nil
}

// IsRevoked reports whether a token is currently blacklisted. Expired
// blacklist rows do not count; expiry rejects the token on its own.
func (s *Revocation) IsRevoked(ctx context.Context, token string) (bool, error) {
	revoked, err := s.store.ExistsUnexpired(ctx, Fingerprint(token))
	if err != nil {
		return false, fmt.Errorf("failed to check revoked token: %w", err)
	}
	return revoked, nil
}

// Cleanup removes blacklist rows whose expiry has passed and returns
// how many were removed.
func (s *Revocation) Cleanup(ctx context.Context) (int64, error) {
	deleted, err := s.store.DeleteExpired(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired tokens: %w", err)
	}

	if deleted > 0 {
		s.logger.Info("Revocation service: cleaned up expired tokens",
			"deleted", deleted)
	}

	return deleted, nil
}
