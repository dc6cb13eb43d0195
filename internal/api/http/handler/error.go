package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dtroode/console-server/internal/logger"
	"github.com/dtroode/console-server/internal/model"
)

type errorResponse struct {
	Error string `json:"error"`
	// Relogin tells the client its refresh token is dead and a fresh
	// login is the only way forward.
	Relogin bool `json:"relogin,omitempty"`
}

// NewErrorHandler maps domain errors onto HTTP statuses. Anything not
// recognized becomes an opaque 500 so internals never leak to clients.
func NewErrorHandler(logger *logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := mapError(err)
		if status == http.StatusInternalServerError {
			logger.Error("HTTP handler: internal error",
				"path", c.Request().URL.Path,
				"error", err.Error())
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, body)
	}
}

func mapError(err error) (int, errorResponse) {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		msg := http.StatusText(httpErr.Code)
		if s, ok := httpErr.Message.(string); ok {
			msg = s
		}
		return httpErr.Code, errorResponse{Error: msg}
	}

	switch {
	case errors.Is(err, model.ErrEmailTaken):
		return http.StatusBadRequest, errorResponse{Error: model.ErrEmailTaken.Error()}
	case errors.Is(err, model.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorResponse{Error: model.ErrInvalidCredentials.Error()}
	case errors.Is(err, model.ErrRequiresLogin):
		return http.StatusUnauthorized, errorResponse{Error: model.ErrRequiresLogin.Error(), Relogin: true}
	case errors.Is(err, model.ErrUnauthenticated), errors.Is(err, model.ErrInvalidToken):
		return http.StatusUnauthorized, errorResponse{Error: model.ErrUnauthenticated.Error()}
	case errors.Is(err, model.ErrForbidden):
		return http.StatusForbidden, errorResponse{Error: model.ErrForbidden.Error()}
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound, errorResponse{Error: model.ErrNotFound.Error()}
	default:
		return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
	}
}
