package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/dtroode/console-server/internal/logger"
)

// RoleAdminService manages role membership.
type RoleAdminService interface {
	AssignRole(ctx context.Context, userID uuid.UUID, roleName string) error
	RemoveRole(ctx context.Context, userID uuid.UUID, roleName string) error
}

// CleanupService purges expired blacklist rows on demand.
type CleanupService interface {
	Cleanup(ctx context.Context) (int64, error)
}

// Admin handles role management and maintenance endpoints.
type Admin struct {
	roles   RoleAdminService
	cleanup CleanupService
	logger  *logger.Logger
}

func NewAdmin(roles RoleAdminService, cleanup CleanupService, logger *logger.Logger) *Admin {
	return &Admin{
		roles:   roles,
		cleanup: cleanup,
		logger:  logger,
	}
}

type roleRequest struct {
	Role string `json:"role"`
}

type cleanupResponse struct {
	Deleted int64 `json:"deleted"`
}

// AssignRole attaches a role to a user.
func (h *Admin) AssignRole(c echo.Context) error {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	var req roleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Role == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "role is required")
	}

	if err := h.roles.AssignRole(c.Request().Context(), userID, req.Role); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// RemoveRole detaches a role from a user.
func (h *Admin) RemoveRole(c echo.Context) error {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	role := c.Param("role")
	if role == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "role is required")
	}

	if err := h.roles.RemoveRole(c.Request().Context(), userID, role); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// CleanupTokens sweeps expired blacklist rows immediately instead of
// waiting for the scheduled run.
func (h *Admin) CleanupTokens(c echo.Context) error {
	deleted, err := h.cleanup.Cleanup(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, cleanupResponse{Deleted: deleted})
}
