// Package http provides the gateway HTTP server, routing and middleware.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/metric"

	agentDomain "github.com/impactrealty/backoffice/internal/agent/domain"
	agentHTTP "github.com/impactrealty/backoffice/internal/agent/http"
	"github.com/impactrealty/backoffice/internal/config"
	"github.com/impactrealty/backoffice/internal/metrics"
	recordsHTTP "github.com/impactrealty/backoffice/internal/records/http"
)

// Handlers groups the route handlers mounted on the API server.
type Handlers struct {
	Agent    *agentHTTP.AgentHandler
	Workflow *agentHTTP.WorkflowHandler
	System   *agentHTTP.SystemHandler
	Record   *recordsHTTP.RecordHandler
}

// Server represents the API HTTP server.
type Server struct {
	server *http.Server
	router *gin.Engine
	logger *slog.Logger
}

// NewServer creates the API server with all routes and middleware wired.
// The meterProvider may be nil when metrics are disabled.
func NewServer(
	cfg *config.Config,
	logger *slog.Logger,
	handlers Handlers,
	meterProvider metric.MeterProvider,
) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	// Request ids share the correlation id format so a request id can be
	// handed to the gateway as a correlation id unchanged.
	router.Use(requestid.New(requestid.WithGenerator(agentDomain.NewCorrelationID)))
	router.Use(CustomLoggerMiddleware(logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if cfg.MetricsEnabled && meterProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(meterProvider, cfg.MetricsNamespace))
	}

	registerRoutes(router, cfg, logger, handlers)

	return &Server{
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		router: router,
		logger: logger,
	}
}

// registerRoutes mounts the API surface on the router.
func registerRoutes(router *gin.Engine, cfg *config.Config, logger *slog.Logger, handlers Handlers) {
	router.GET("/health", HealthHandler)

	v1 := router.Group("/api/v1")

	// Invocation endpoints carry per-IP rate limiting: a single noisy client
	// must not exhaust the upstream agents.
	invoke := v1.Group("")
	if cfg.RateLimitInvokeEnabled {
		invoke.Use(InvokeRateLimitMiddleware(
			cfg.RateLimitInvokeRequestsPerSec,
			cfg.RateLimitInvokeBurst,
			logger,
		))
	}

	if handlers.Agent != nil {
		invoke.POST("/agents/:name/invoke", handlers.Agent.InvokeHandler)
		invoke.POST("/agents/:name/stream", handlers.Agent.StreamHandler)
		invoke.POST("/agents/invoke-batch", handlers.Agent.BatchInvokeHandler)

		v1.GET("/agents", handlers.Agent.ListHandler)
		v1.GET("/agents/health", handlers.Agent.HealthHandler)
		v1.PUT("/agents/:name/config", handlers.Agent.ReconfigureHandler)
	}

	if handlers.Workflow != nil {
		invoke.POST("/workflows/execute", handlers.Workflow.ExecuteHandler)

		v1.GET("/workflows/executions/:id", handlers.Workflow.StatusHandler)
		v1.POST("/workflows/executions/:id/cancel", handlers.Workflow.CancelHandler)
	}

	if handlers.System != nil {
		v1.GET("/status", handlers.System.StatusHandler)
		v1.GET("/system/disconnected-mode", handlers.System.GetDisconnectedModeHandler)
		v1.PUT("/system/disconnected-mode", handlers.System.SetDisconnectedModeHandler)
	}

	if handlers.Record != nil {
		v1.GET("/records", handlers.Record.EntitiesHandler)
		v1.GET("/records/:entity", handlers.Record.ListHandler)
		v1.POST("/records/:entity", handlers.Record.CreateHandler)
		v1.GET("/records/:entity/:id", handlers.Record.GetHandler)
		v1.PATCH("/records/:entity/:id", handlers.Record.UpdateHandler)
		v1.DELETE("/records/:entity/:id", handlers.Record.DeleteHandler)
	}
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.server.Handler
}

// Start starts the HTTP server. The context drives the readiness endpoint:
// once it is cancelled /ready reports 503 so load balancers drain traffic.
func (s *Server) Start(ctx context.Context) error {
	s.router.GET("/ready", ReadinessHandler(ctx))

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
