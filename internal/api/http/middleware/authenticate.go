package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/dtroode/console-server/internal/logger"
	"github.com/dtroode/console-server/internal/model"
)

// AccessService authenticates bearer tokens and checks authorization.
type AccessService interface {
	Resolve(ctx context.Context, token string) (model.User, error)
	Require(ctx context.Context, token, object, action string) (model.User, error)
}

// Authenticate validates bearer tokens and injects the resolved user
// into the request context.
type Authenticate struct {
	access         AccessService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(access AccessService, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{
		access:         access,
		contextManager: contextManager,
		logger:         logger,
	}
}

// BearerToken extracts the bearer token from the Authorization header.
// Returns an empty string when the header is absent or not a bearer
// scheme.
func BearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return ""
	}
	token := strings.TrimPrefix(header, "Bearer ")
	if token == header {
		return ""
	}
	return token
}

// RequireAuth demands a valid access token. The resolved user is placed
// into the request context for handlers downstream.
func (m *Authenticate) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := BearerToken(c)
		if token == "" {
			return model.ErrUnauthenticated
		}

		user, err := m.access.Resolve(c.Request().Context(), token)
		if err != nil {
			return err
		}

		c.SetRequest(c.Request().WithContext(
			m.contextManager.SetUserToContext(c.Request().Context(), user)))
		return next(c)
	}
}

// RequirePermission demands a valid access token whose user may perform
// the given action on the given object.
func (m *Authenticate) RequirePermission(object, action string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := BearerToken(c)
			if token == "" {
				return model.ErrUnauthenticated
			}

			user, err := m.access.Require(c.Request().Context(), token, object, action)
			if err != nil {
				return err
			}

			c.SetRequest(c.Request().WithContext(
				m.contextManager.SetUserToContext(c.Request().Context(), user)))
			return next(c)
		}
	}
}
