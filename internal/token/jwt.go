package token

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dtroode/console-server/internal/model"
)

// Claims represents JWT claims with a token type discriminator and an
// optional active-flag snapshot taken at issue time.
type Claims struct {
	jwt.RegisteredClaims
	IsActive  *bool  `json:"is_active,omitempty"`
	TokenType string `json:"typ"`
}

// JWT implements model.TokenManager backed by symmetric HMAC. The
// secret and algorithm are fixed process-wide; expiry is compared
// exactly against the current time, with no leeway for clock skew.
type JWT struct {
	secretKey  string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

var _ model.TokenManager = (*JWT)(nil)

// NewJWT creates a new JWT token manager with the provided secret key
// and token lifetimes.
func NewJWT(secretKey string, accessTTL, refreshTTL time.Duration) *JWT {
	return &JWT{secretKey: secretKey, accessTTL: accessTTL, refreshTTL: refreshTTL}
}

const (
	typeAccess  = "access"
	typeRefresh = "refresh"
)

// GenerateAccessToken creates a short-lived access token carrying the
// subject email and a snapshot of the account's active flag.
func (j *JWT) GenerateAccessToken(email string, isActive bool) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.accessTTL)),
		},
		IsActive:  &isActive,
		TokenType: typeAccess,
	})

	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return tokenString, nil
}

// GenerateRefreshToken creates a long-lived refresh token carrying only
// the subject email.
func (j *JWT) GenerateRefreshToken(email string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.refreshTTL)),
		},
		TokenType: typeRefresh,
	})

	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return tokenString, nil
}

// ParseAccessToken validates an access token and returns its claims.
func (j *JWT) ParseAccessToken(tokenString string) (model.TokenClaims, error) {
	return j.parse(tokenString, typeAccess)
}

// ParseRefreshToken validates a refresh token and returns its claims.
func (j *JWT) ParseRefreshToken(tokenString string) (model.TokenClaims, error) {
	return j.parse(tokenString, typeRefresh)
}

// parse verifies structure, signature, expiry, token type and subject.
// Every failure collapses into model.ErrInvalidToken so callers cannot
// tell why a credential was rejected.
func (j *JWT) parse(tokenString, tokenType string) (model.TokenClaims, error) {
	if len(strings.Split(tokenString, ".")) != 3 {
		return model.TokenClaims{}, model.ErrInvalidToken
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(j.secretKey), nil
	})
	if err != nil || !token.Valid {
		return model.TokenClaims{}, model.ErrInvalidToken
	}
	if claims.TokenType != tokenType {
		return model.TokenClaims{}, model.ErrInvalidToken
	}
	if claims.Subject == "" {
		return model.TokenClaims{}, model.ErrInvalidToken
	}

	out := model.TokenClaims{
		Subject: claims.Subject,
		// A token without a snapshot counts as active; only an explicit
		// false marks the account inactive.
		IsActive: claims.IsActive == nil || *claims.IsActive,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}

// Expiry returns the expiry claim of a signed token of either type. It
// fails for tokens that cannot be verified, including already expired
// ones; revocation bookkeeping falls back to a bounded default then.
func (j *JWT) Expiry(tokenString string) (time.Time, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(j.secretKey), nil
	})
	if err != nil || !token.Valid || claims.ExpiresAt == nil {
		return time.Time{}, model.ErrInvalidToken
	}
	return claims.ExpiresAt.Time, nil
}
