package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/dtroode/console-server/internal/logger"
	"github.com/dtroode/console-server/internal/model"
)

// AccountsService covers user listing and profile updates.
type AccountsService interface {
	ListUsers(ctx context.Context, offset, limit int) ([]model.User, int64, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, name, description *string) (model.User, error)
}

// Self handles endpoints operating on or visible to the calling user.
type Self struct {
	accounts        AccountsService
	contextManager  model.ContextManager
	defaultPageSize int
	maxPageSize     int
	logger          *logger.Logger
}

func NewSelf(accounts AccountsService, contextManager model.ContextManager, defaultPageSize, maxPageSize int, logger *logger.Logger) *Self {
	return &Self{
		accounts:        accounts,
		contextManager:  contextManager,
		defaultPageSize: defaultPageSize,
		maxPageSize:     maxPageSize,
		logger:          logger,
	}
}

type userListResponse struct {
	Users []userResponse `json:"users"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Size  int            `json:"size"`
}

type updateProfileRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// Current returns the calling user's profile.
func (h *Self) Current(c echo.Context) error {
	user, ok := h.contextManager.GetUserFromContext(c.Request().Context())
	if !ok {
		return model.ErrUnauthenticated
	}

	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Users returns one page of registered users.
func (h *Self) Users(c echo.Context) error {
	page := h.intQueryParam(c, "page", 1)
	if page < 1 {
		page = 1
	}
	size := h.intQueryParam(c, "size", h.defaultPageSize)
	if size < 1 {
		size = h.defaultPageSize
	}
	if size > h.maxPageSize {
		size = h.maxPageSize
	}

	users, total, err := h.accounts.ListUsers(c.Request().Context(), (page-1)*size, size)
	if err != nil {
		return err
	}

	resp := userListResponse{
		Users: make([]userResponse, 0, len(users)),
		Total: total,
		Page:  page,
		Size:  size,
	}
	for _, user := range users {
		resp.Users = append(resp.Users, toUserResponse(user))
	}

	return c.JSON(http.StatusOK, resp)
}

// UpdateCurrent changes the calling user's name or description.
func (h *Self) UpdateCurrent(c echo.Context) error {
	user, ok := h.contextManager.GetUserFromContext(c.Request().Context())
	if !ok {
		return model.ErrUnauthenticated
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Name == nil && req.Description == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "nothing to update")
	}

	updated, err := h.accounts.UpdateProfile(c.Request().Context(), user.ID, req.Name, req.Description)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toUserResponse(updated))
}

func (h *Self) intQueryParam(c echo.Context, name string, fallback int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
