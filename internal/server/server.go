package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"quickfind/internal/search"
)

// RequestIDHeader carries the request id on requests and responses
const RequestIDHeader = "X-Request-ID"

// statusClientClosedRequest is used when the caller went away during the delay
const statusClientClosedRequest = 499

// SearchPath is the route of the search endpoint
const SearchPath = "/api/search"

// Server exposes the search service over HTTP
type Server struct {
	search  *search.Service
	metrics *Metrics
	logger  *slog.Logger
	engine  *gin.Engine
}

// New creates a server for svc. A nil logger uses slog.Default().
func New(svc *search.Service, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		search:  svc,
		metrics: NewMetrics(),
		logger:  logger,
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), requestID(), s.requestLogger())
	engine.GET(SearchPath, s.handleSearch)
	engine.GET("/healthz", s.handleHealth)
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{})))
	s.engine = engine

	return s
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Metrics returns the server's collectors
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("search endpoint listening", "addr", addr, "mode", s.search.Store().Mode())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to serve on %s: %w", addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.logger.Info("shutting down search endpoint")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return nil
}

func (s *Server) handleSearch(c *gin.Context) {
	q := c.Query("q")

	resp, err := s.search.Search(c.Request.Context(), q)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			s.metrics.RequestsTotal.WithLabelValues(outcomeAbandoned).Inc()
			s.logger.Debug("search abandoned by caller", "q", q, "request_id", c.GetString(RequestIDHeader))
			c.AbortWithStatus(statusClientClosedRequest)
			return
		}
		s.metrics.RequestsTotal.WithLabelValues(outcomeError).Inc()
		s.logger.Error("search failed", "q", q, "error", err, "request_id", c.GetString(RequestIDHeader))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	s.metrics.RequestsTotal.WithLabelValues(outcomeOK).Inc()
	s.metrics.InjectedDelaySeconds.Observe(float64(resp.Delay) / 1000)
	s.metrics.ResultsReturned.Observe(float64(len(resp.Results)))
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleHealth(c *gin.Context) {
	store := s.search.Store()
	items, err := store.Items(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "mode": store.Mode(), "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "mode": store.Mode(), "items": len(items)})
}

// requestID propagates an incoming X-Request-ID or assigns a new one
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(RequestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(RequestIDHeader, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"request_id", c.GetString(RequestIDHeader),
		)
	}
}
