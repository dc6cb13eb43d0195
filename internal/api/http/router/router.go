// Package router assembles the echo instance: middleware, error
// mapping and route registration.
package router

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dtroode/console-server/internal/api/http/handler"
	"github.com/dtroode/console-server/internal/api/http/middleware"
	"github.com/dtroode/console-server/internal/logger"
	"github.com/dtroode/console-server/internal/model"
)

// Pinger reports storage availability for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Router wires handlers and middleware into an echo instance.
type Router struct {
	auth           *handler.Auth
	self           *handler.Self
	admin          *handler.Admin
	access         middleware.AccessService
	contextManager model.ContextManager
	pinger         Pinger
	logger         *logger.Logger
}

func New(
	auth *handler.Auth,
	self *handler.Self,
	admin *handler.Admin,
	access middleware.AccessService,
	contextManager model.ContextManager,
	pinger Pinger,
	logger *logger.Logger,
) *Router {
	return &Router{
		auth:           auth,
		self:           self,
		admin:          admin,
		access:         access,
		contextManager: contextManager,
		pinger:         pinger,
		logger:         logger,
	}
}

// Register builds the echo instance with all routes attached.
func (r *Router) Register() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = handler.NewErrorHandler(r.logger)

	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.access, r.contextManager, r.logger)

	e.Use(logging.Handle)

	api := e.Group("/api")
	api.GET("/health", r.health)

	auth := api.Group("/auth")
	auth.POST("/register", r.auth.Register)
	auth.POST("/login", r.auth.Login)
	auth.POST("/refresh", r.auth.Refresh)
	auth.POST("/logout", r.auth.Logout, authenticate.RequireAuth)

	self := api.Group("/self")
	self.GET("/current", r.self.Current, authenticate.RequireAuth)
	self.PUT("/update-current", r.self.UpdateCurrent, authenticate.RequireAuth)
	self.GET("/users", r.self.Users, authenticate.RequirePermission("users", "read"))

	admin := api.Group("/admin")
	admin.POST("/users/:user_id/roles", r.admin.AssignRole, authenticate.RequirePermission("roles", "manage"))
	admin.DELETE("/users/:user_id/roles/:role", r.admin.RemoveRole, authenticate.RequirePermission("roles", "manage"))
	admin.POST("/tokens/cleanup", r.admin.CleanupTokens, authenticate.RequirePermission("tokens", "cleanup"))

	return e
}

func (r *Router) health(c echo.Context) error {
	if err := r.pinger.Ping(c.Request().Context()); err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "database unavailable")
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
