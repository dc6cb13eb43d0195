package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dtroode/console-server/internal/logger"
)

// Logging logs HTTP requests and their results.
type Logging struct {
	logger *logger.Logger
}

// NewLogging creates a new Logging middleware.
func NewLogging(logger *logger.Logger) *Logging {
	return &Logging{logger: logger}
}

// Handle logs method, path, duration and status for each request.
func (l *Logging) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		req := c.Request()

		err := next(c)
		if err != nil {
			c.Error(err)
		}

		l.logger.Info("HTTP request completed",
			"method", req.Method,
			"path", req.URL.Path,
			"duration_ms", time.Since(start).Milliseconds(),
			"status", c.Response().Status)

		if err != nil {
			l.logger.Error("HTTP request failed",
				"method", req.Method,
				"path", req.URL.Path,
				"error", err.Error())
		}

		return err
	}
}
