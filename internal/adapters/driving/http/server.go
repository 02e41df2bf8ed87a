// Package http provides the HTTP API for docmatch.
package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/custodia-labs/docmatch/internal/core/ports/driving"
)

// defaultPageSize is used when a list request has no limit.
const defaultPageSize = 50

// Ports aggregates the driving ports served over HTTP.
type Ports struct {
	Ingest   driving.IngestService
	Match    driving.MatchService
	Report   driving.ReportService
	Document driving.DocumentService
	Audit    driving.AuditService
}

func (p *Ports) validate() error {
	if p == nil || p.Ingest == nil || p.Match == nil || p.Report == nil || p.Document == nil || p.Audit == nil {
		return errors.New("all service ports are required")
	}
	return nil
}

// Config holds HTTP server configuration.
type Config struct {
	Host string
	Port int

	// Metrics serves GET /metrics when set.
	Metrics http.Handler
}

// Server provides HTTP endpoints for docmatch.
type Server struct {
	echo   *echo.Echo
	ports  *Ports
	logger *zap.Logger
	config *Config
}

// NewServer creates a new HTTP server.
func NewServer(ports *Ports, logger *zap.Logger, cfg *Config) (*Server, error) {
	if err := ports.validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required for request tracking and debugging")
	}
	if cfg == nil {
		cfg = &Config{
			Host: "127.0.0.1",
			Port: 8080,
		}
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Middleware
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			fields := []zap.Field{
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Int("status", c.Response().Status),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			}
			var he *echo.HTTPError
			if errors.As(err, &he) && he.Internal != nil && he.Code >= http.StatusInternalServerError {
				logger.Error("http request failed", append(fields, zap.Error(he.Internal))...)
				return nil
			}
			logger.Info("http request", fields...)
			return nil
		}
	})

	s := &Server{
		echo:   e,
		ports:  ports,
		logger: logger,
		config: cfg,
	}

	s.registerRoutes()

	return s, nil
}

// registerRoutes sets up the HTTP endpoints.
func (s *Server) registerRoutes() {
	s.echo.GET("/health", s.handleHealth)
	if s.config.Metrics != nil {
		s.echo.GET("/metrics", echo.WrapHandler(s.config.Metrics))
	}

	s.echo.POST("/ingest", s.handleIngest)

	s.echo.GET("/documents", s.handleListDocuments)
	s.echo.GET("/documents/:id", s.handleGetDocument)

	s.echo.POST("/match", s.handleMatch)
	s.echo.GET("/matches", s.handleListMatches)
	s.echo.GET("/matches/:id", s.handleGetMatch)
	s.echo.PUT("/matches/:id", s.handleConfirm)
	s.echo.GET("/matches/:id/report", s.handleReport)

	s.echo.GET("/audit", s.handleAudit)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start starts the HTTP server. It returns nil after Shutdown.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.logger.Info("starting http server", zap.String("addr", addr))
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.echo.Shutdown(ctx)
}

// pathID parses the :id path parameter.
func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "id must be a positive integer")
	}
	return id, nil
}

// queryInt parses an optional integer query parameter.
func queryInt(c echo.Context, name string, def int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" must be an integer")
	}
	return v, nil
}

// queryID parses an optional positive id query parameter.
func queryID(c echo.Context, name string) (*int64, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		return nil, echo.NewHTTPError(http.StatusBadRequest, name+" must be a positive integer")
	}
	return &v, nil
}

func page(c echo.Context) (limit, offset int, err error) {
	if limit, err = queryInt(c, "limit", defaultPageSize); err != nil {
		return 0, 0, err
	}
	if offset, err = queryInt(c, "offset", 0); err != nil {
		return 0, 0, err
	}
	return limit, offset, nil
}
