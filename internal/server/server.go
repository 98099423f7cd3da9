// Package server exposes link reads and survey samples over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/HerbHall/wifisurvey/internal/survey"
	"github.com/HerbHall/wifisurvey/internal/wifi"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// LinkReader reads the current link state.
type LinkReader interface {
	Scan(ctx context.Context) (wifi.Record, error)
}

// SampleRecorder takes and stores a survey sample.
type SampleRecorder interface {
	Record(ctx context.Context, floorplan string, x, y float64) (survey.Sample, error)
}

// SampleSource reads stored samples.
type SampleSource interface {
	List(ctx context.Context, floorplan string) ([]survey.Sample, error)
	Get(ctx context.Context, id string) (survey.Sample, error)
}

// Config holds the listen address and the radio rate limit.
type Config struct {
	Addr      string
	RateLimit float64
	RateBurst int
}

// Server is the wifisurvey HTTP API.
type Server struct {
	httpServer *http.Server
	mux        *http.ServeMux
	link       LinkReader
	recorder   SampleRecorder
	samples    SampleSource
	logger     *zap.Logger
	radio      Middleware
}

// operationalPaths are counted in metrics but not logged.
var operationalPaths = []string{"/healthz", "/metrics"}

// New builds the server and its middleware chain.
func New(cfg Config, link LinkReader, recorder SampleRecorder, samples SampleSource, logger *zap.Logger) *Server {
	s := &Server{
		mux:      http.NewServeMux(),
		link:     link,
		recorder: recorder,
		samples:  samples,
		logger:   logger,
		radio:    RadioMiddleware(cfg.RateLimit, cfg.RateBurst),
	}
	s.registerRoutes()

	handler := Chain(s.mux,
		RecoveryMiddleware(logger),
		RequestIDMiddleware,
		LoggingMiddleware(logger, operationalPaths),
		HeadersMiddleware,
	)

	s.httpServer = &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		// A link read may run several external commands.
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /healthz", s.handleHealthz)
	s.mux.Handle("GET /metrics", promhttp.Handler())

	s.mux.HandleFunc("GET /api/v1/version", s.handleVersion)
	s.mux.Handle("GET /api/v1/link", s.radio(http.HandlerFunc(s.handleLink)))
	s.mux.HandleFunc("GET /api/v1/samples", s.handleListSamples)
	s.mux.Handle("POST /api/v1/samples", s.radio(http.HandlerFunc(s.handleCreateSample)))
	s.mux.HandleFunc("GET /api/v1/samples/{id}", s.handleGetSample)
}

// Handler returns the full middleware-wrapped handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start serves until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("HTTP server error: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}
