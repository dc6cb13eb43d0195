package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dtroode/console-server/internal/model"
)

// HTTPServer wraps an echo instance with address and lifecycle methods.
type HTTPServer struct {
	echo *echo.Echo
	addr string
}

// NewHTTPServer creates an HTTPServer with given echo instance and address.
func NewHTTPServer(e *echo.Echo, addr string) *HTTPServer {
	return &HTTPServer{echo: e, addr: addr}
}

// Start starts serving on the configured address using the provided
// security layer. It blocks until the server stops.
func (s *HTTPServer) Start(securityLayer model.SecurityLayer) error {
	listener, err := securityLayer.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	s.echo.Listener = listener
	if err := s.echo.Start(""); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to serve: %w", err)
	}
	return nil
}

// Stop gracefully shuts the server down.
func (s *HTTPServer) Stop(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Address returns the configured listen address.
func (s *HTTPServer) Address() string {
	return s.addr
}
