// Package service is the compute service: it generates step traces for the
// visualized algorithms and serves them over HTTP.
package service

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	SortPath   = "/api/sort/bubble"
	PrimePath  = "/api/prime/check"
	HealthPath = "/healthz"

	shutdownTimeout = 5 * time.Second
	sweepInterval   = time.Minute
	visitorIdle     = 3 * time.Minute
)

// Options configures the compute service.
type Options struct {
	Addr           string
	MaxArrayLen    int
	MaxPrime       int64
	RateLimitRPS   int
	RateLimitBurst int
	AllowOrigin    string
}

// Server serves step traces.
type Server struct {
	opts    Options
	logger  *zap.Logger
	limiter *RateLimiter
	handler http.Handler
}

// New builds a Server. A nil logger disables logging.
func New(opts Options, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.AllowOrigin == "" {
		opts.AllowOrigin = "*"
	}

	s := &Server{
		opts:    opts,
		logger:  logger,
		limiter: NewRateLimiter(opts.RateLimitRPS, opts.RateLimitBurst),
	}

	mux := http.NewServeMux()
	mux.HandleFunc(SortPath, s.handleBubbleSort)
	mux.HandleFunc(PrimePath, s.handlePrimeCheck)
	mux.HandleFunc(HealthPath, s.handleHealth)

	var h http.Handler = mux
	h = s.limiter.Middleware(h)
	h = withCORS(opts.AllowOrigin, h)
	h = withLogging(logger, h)
	h = withRequestID(h)
	h = withRecover(logger, h)
	s.handler = h
	return s
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler { return s.handler }

// Run listens on the configured address and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.opts.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.limiter.RunSweeper(gctx, sweepInterval, visitorIdle)
		return nil
	})

	g.Go(func() error {
		s.logger.Info("compute service listening", zap.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		s.logger.Info("compute service stopped")
		return nil
	})

	return g.Wait()
}
