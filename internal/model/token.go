package model

import "time"

// TokenManager issues and validates access/refresh tokens.
type TokenManager interface {
	GenerateAccessToken(email string, isActive bool) (string, error)
	GenerateRefreshToken(email string) (string, error)
	ParseAccessToken(token string) (TokenClaims, error)
	ParseRefreshToken(token string) (TokenClaims, error)
	// Expiry extracts the expiry claim of a verifiable token. It fails
	// for tokens that cannot be verified, including already expired
	// ones; revocation bookkeeping falls back to a bounded default then.
	Expiry(token string) (time.Time, error)
}

// TokenClaims carries the verified claims of a parsed token.
type TokenClaims struct {
	Subject   string
	IsActive  bool
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenPair is an access/refresh token pair issued on login or refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}
