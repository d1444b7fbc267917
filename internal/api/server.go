// Package api serves feedprint computations over HTTP with gin.
//
// The dataset is loaded once and shared read-only by every request.
// All routes are instrumented with Prometheus metrics and logged with
// zerolog under a per-request ULID.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/rshade/feedprint/internal/dataset"
	"github.com/rshade/feedprint/internal/observability"
)

// Server timeouts.
const (
	readTimeout            = 10 * time.Second
	writeTimeout           = 10 * time.Second
	idleTimeout            = 60 * time.Second
	defaultShutdownTimeout = 10 * time.Second
)

// Options configure a Server.
type Options struct {
	Addr            string
	ShutdownTimeout time.Duration
	Dataset         *dataset.Dataset

	// Registry receives the server metrics. Nil creates a fresh registry
	// with Go runtime and process collectors.
	Registry *prometheus.Registry

	// Clock stamps report metadata and times requests. Nil uses real time.
	Clock clockwork.Clock

	Logger zerolog.Logger
}

// Server bundles the gin engine and its dependencies.
type Server struct {
	addr            string
	shutdownTimeout time.Duration
	data            *dataset.Dataset
	metrics         *observability.Metrics
	registry        *prometheus.Registry
	clock           clockwork.Clock
	logger          zerolog.Logger
	engine          *gin.Engine
	ready           atomic.Bool
}

// New constructs a server with routes and middleware.
func New(opts Options) (*Server, error) {
	if opts.Dataset == nil {
		return nil, errors.New("api: dataset is required")
	}

	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	shutdown := opts.ShutdownTimeout
	if shutdown <= 0 {
		shutdown = defaultShutdownTimeout
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	s := &Server{
		addr:            opts.Addr,
		shutdownTimeout: shutdown,
		data:            opts.Dataset,
		metrics:         observability.NewMetrics(reg),
		registry:        reg,
		clock:           clock,
		logger:          opts.Logger.With().Str("component", "api").Logger(),
		engine:          engine,
	}

	engine.Use(gin.Recovery())
	engine.Use(s.requestIDMiddleware())
	engine.Use(s.loggerMiddleware())
	engine.Use(s.metricsMiddleware())

	s.registerRoutes()
	s.ready.Store(true)
	return s, nil
}

// Engine exposes the underlying gin engine (for tests).
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Metrics returns the server metrics.
func (s *Server) Metrics() *observability.Metrics {
	return s.metrics
}

func (s *Server) registerRoutes() {
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	s.engine.GET("/readyz", s.handleReady)
	s.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))

	v1 := s.engine.Group("/v1")
	{
		v1.GET("/ingredients", s.handleIngredients)
		v1.GET("/ingredients/:name", s.handleIngredient)
		v1.GET("/scenarios", s.handleScenarios)
		v1.GET("/footprint", s.handleFootprint)
		v1.POST("/footprint", s.handleFootprintPost)
		v1.GET("/national", s.handleNational)
		v1.GET("/compare", s.handleCompare)
		v1.GET("/origins", s.handleOrigins)
		v1.GET("/pollution", s.handlePollution)
	}
}

// Run starts the HTTP server and blocks until ctx is cancelled or the
// listener fails. On cancellation connections are drained within the
// shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.addr,
		Handler:      s.engine,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.addr).Msg("http server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		s.ready.Store(false)
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
		s.ready.Store(false)
		s.logger.Info().Dur("timeout", s.shutdownTimeout).Msg("http server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down http server: %w", err)
		}
		return nil
	}
}

func (s *Server) handleReady(c *gin.Context) {
	if !s.ready.Load() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "shutting down"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready", "dataset": s.data.Name})
}
