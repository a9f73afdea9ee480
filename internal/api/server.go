package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"countries/internal/config"
	"countries/internal/rpc"
)

// Server is the HTTP front of the service
type Server struct {
	echo   *echo.Echo
	addr   string
	logger *log.Logger
}

func NewServer(cfg config.ServerConfig, router *rpc.Router, store Sizer, logger *log.Logger) (*Server, error) {
	h, err := NewHandler(router, store, cfg.BasePath, logger)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger = logger
	e.JSONSerializer = jsonSerializer{}
	e.HTTPErrorHandler = h.SOAPErrorHandler(e.DefaultHTTPErrorHandler)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{Output: logger.Output()}))
	e.Use(middleware.CORS())
	e.Use(middleware.BodyLimit(cfg.BodyLimit))

	h.RegisterRoutes(e)

	return &Server{echo: e, addr: cfg.Address, logger: logger}, nil
}

// Start blocks serving requests until Shutdown is called
func (s *Server) Start() error {
	s.logger.Infoj(log.JSON{"event": "listening", "addr": s.addr})

	if err := s.echo.Start(s.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	s.logger.Info("Server shut down")
	return nil
}

// ServeHTTP implements http.Handler for testing
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}
