package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dtroode/console-server/internal/api/http/middleware"
	"github.com/dtroode/console-server/internal/logger"
	"github.com/dtroode/console-server/internal/model"
)

// SessionService implements the credential lifecycle.
type SessionService interface {
	Register(ctx context.Context, name, email, password string) (model.User, error)
	Login(ctx context.Context, email, password string) (model.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (model.TokenPair, error)
	Logout(ctx context.Context, accessToken, refreshToken string) error
}

// Auth handles registration, login, refresh and logout. The refresh
// token travels in an HttpOnly cookie, the access token in the response
// body.
type Auth struct {
	session      SessionService
	refreshTTL   time.Duration
	cookieSecure bool
	logger       *logger.Logger
}

func NewAuth(session SessionService, refreshTTL time.Duration, cookieSecure bool, logger *logger.Logger) *Auth {
	return &Auth{
		session:      session,
		refreshTTL:   refreshTTL,
		cookieSecure: cookieSecure,
		logger:       logger,
	}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func (h *Auth) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email and password are required")
	}

	user, err := h.session.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toUserResponse(user))
}

func (h *Auth) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	pair, err := h.session.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	c.SetCookie(newRefreshCookie(pair.RefreshToken, h.refreshTTL, h.cookieSecure))
	return c.JSON(http.StatusOK, tokenResponse{
		AccessToken: pair.AccessToken,
		TokenType:   "bearer",
	})
}

func (h *Auth) Refresh(c echo.Context) error {
	refresh := h.refreshToken(c)
	if refresh == "" {
		return model.ErrRequiresLogin
	}

	pair, err := h.session.Refresh(c.Request().Context(), refresh)
	if err != nil {
		return err
	}

	c.SetCookie(newRefreshCookie(pair.RefreshToken, h.refreshTTL, h.cookieSecure))
	return c.JSON(http.StatusOK, tokenResponse{
		AccessToken: pair.AccessToken,
		TokenType:   "bearer",
	})
}

func (h *Auth) Logout(c echo.Context) error {
	access := middleware.BearerToken(c)
	if access == "" {
		return model.ErrUnauthenticated
	}

	if err := h.session.Logout(c.Request().Context(), access, h.refreshToken(c)); err != nil {
		return err
	}

	c.SetCookie(clearRefreshCookie(h.cookieSecure))
	return c.NoContent(http.StatusNoContent)
}

// refreshToken reads the refresh token cookie. A missing cookie is an
// empty string, not an error; logout tolerates its absence.
func (h *Auth) refreshToken(c echo.Context) string {
	cookie, err := c.Cookie(refreshCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
