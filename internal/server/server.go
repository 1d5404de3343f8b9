// Package server provides the web form and JSON API for bullet generation.
package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"github.com/jonathan/resumate/internal/config"
	"github.com/jonathan/resumate/internal/generation"
)

//go:embed templates/*.html static/*
var assets embed.FS

// Info describes the upstream model for the health endpoint
type Info struct {
	Provider string
	Model    string
}

// Server represents the HTTP server
type Server struct {
	echo      *echo.Echo
	generator generation.Generator
	logger    logrus.FieldLogger
	info      Info
	cfg       config.ServerConfig
}

// New creates a new server instance
func New(cfg config.ServerConfig, generator generation.Generator, info Info, logger logrus.FieldLogger) (*Server, error) {
	if generator == nil {
		return nil, errors.New("generator is required")
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	renderer, err := newRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer
	e.Server.ReadTimeout = cfg.ReadTimeout
	e.Server.WriteTimeout = cfg.WriteTimeout

	s := &Server{
		echo:      e,
		generator: generator,
		logger:    logger,
		info:      info,
		cfg:       cfg,
	}
	s.routes()

	return s, nil
}

func (s *Server) routes() {
	e := s.echo

	// Global middleware
	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			entry := s.logger.WithFields(logrus.Fields{
				"request_id": v.RequestID,
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency":    v.Latency,
			})
			if v.Error != nil {
				entry.WithError(v.Error).Error("Request failed")
				return nil
			}
			entry.Info("Request handled")
			return nil
		},
	}))
	e.Use(middleware.BodyLimit(s.cfg.BodyLimit))

	// Page
	e.GET("/", s.handleIndex)
	e.POST("/generate", s.handleGenerate)
	e.POST("/reset", s.handleReset)
	e.StaticFS("/static", echo.MustSubFS(assets, "static"))

	// API
	e.GET("/health", s.handleHealth)
	v1 := e.Group("/api/v1")
	v1.POST("/bullets", s.handleBullets)
}

// Handler returns the HTTP handler, for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start listens on addr until Shutdown is called.
func (s *Server) Start(addr string) error {
	s.logger.WithField("addr", addr).Info("Server starting")
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown stops the server, waiting for in-flight requests up to the configured timeout.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")

	if s.cfg.ShutdownTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.ShutdownTimeout)
		defer cancel()
	}

	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}

// requestID returns the ID assigned by the RequestID middleware
func requestID(c echo.Context) string {
	return c.Response().Header().Get(echo.HeaderXRequestID)
}
