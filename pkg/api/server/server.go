// Package server wires the API handlers into an http.Server and runs it
// until the context is cancelled.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	apiConfig "investment_projection/pkg/api/config"
	"investment_projection/pkg/api/health"
	"investment_projection/pkg/api/middleware"
	"investment_projection/pkg/api/projection"
	"investment_projection/pkg/api/web"
	"investment_projection/pkg/core/logger"

	"golang.org/x/sync/errgroup"
)

// ProjectionPath is the single projection endpoint.
const ProjectionPath = "/api/investment-projection"

type RouterConfig struct {
	ProjectionHandler *projection.Handler
	ConfigHandler     *apiConfig.Handler
	WebHandler        *web.Handler
	Log               *logger.Logger
}

// NewRouter registers every route behind the request middleware.
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", health.HandleHealth)
	if cfg.ProjectionHandler != nil {
		mux.HandleFunc(ProjectionPath, cfg.ProjectionHandler.HandleProjection)
	}
	if cfg.ConfigHandler != nil {
		mux.HandleFunc("/api/config", cfg.ConfigHandler.HandleConfig)
	}
	if cfg.WebHandler != nil {
		mux.HandleFunc("/", cfg.WebHandler.HandleIndex)
	}

	return middleware.Chain(cfg.Log, mux)
}

type Server struct {
	httpServer      *http.Server
	shutdownTimeout time.Duration
	log             *logger.Logger
}

// New builds a server. No write timeout is set: the projection endpoint is
// bounded by the upstream timeout instead.
func New(addr string, handler http.Handler, shutdownTimeout time.Duration, log *logger.Logger) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		shutdownTimeout: shutdownTimeout,
		log:             log,
	}
}

// Run serves until ctx is done, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.log.Info("API server listening", "addr", ln.Addr().String())
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.log.Info("API server shutting down", "timeout", s.shutdownTimeout.String())
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
