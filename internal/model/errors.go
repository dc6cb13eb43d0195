package model

import "errors"

// Persistence-level errors returned by stores.
var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("already exists")
)

// Authentication and authorization error kinds. These are the only
// failure variants the HTTP boundary maps to status codes; everything
// else surfaces as an internal error with a generic message.
var (
	// ErrInvalidCredentials is returned on login with an unknown email
	// or a wrong password. The two cases are never distinguished.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidToken is returned by the token codec for any malformed,
	// tampered or expired token.
	ErrInvalidToken = errors.New("invalid token")

	// ErrUnauthenticated is the single opaque signal for a bearer token
	// that is missing, malformed, expired, revoked, or whose subject no
	// longer exists.
	ErrUnauthenticated = errors.New("cannot verify credentials")

	// ErrForbidden is returned when an authenticated identity lacks the
	// role or permission an operation requires.
	ErrForbidden = errors.New("insufficient permissions")

	// ErrRequiresLogin is returned when a refresh token is invalid,
	// expired or revoked and the session must be restarted.
	ErrRequiresLogin = errors.New("session expired, login required")

	// ErrEmailTaken is returned on registration with an already
	// registered email.
	ErrEmailTaken = errors.New("email already registered")

	// ErrConfiguration marks a request that cannot be served because of
	// missing server state, e.g. the default role is absent. Fatal to
	// the request, not to the process.
	ErrConfiguration = errors.New("server configuration error")
)
