package runner

//go:generate mockgen -source=runner.go -destination=mock_runner.go -package=runner

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultShutdownTimeout bounds the graceful shutdown of every HTTP server.
const DefaultShutdownTimeout = 5 * time.Second

// Worker runs until ctx is done or it fails.
type Worker interface {
	Run(ctx context.Context) error
}

// HTTPServer defines HTTP server interface.
type HTTPServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

// Opt configures a Runner.
type Opt func(*Runner)

// WithLogger sets the logger used for lifecycle events.
func WithLogger(logger *zap.Logger) Opt {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithShutdownTimeout sets the graceful shutdown timeout to the first positive value.
func WithShutdownTimeout(timeouts ...time.Duration) Opt {
	return func(r *Runner) {
		for _, d := range timeouts {
			if d > 0 {
				r.shutdownTimeout = d
				return
			}
		}
	}
}

// Runner runs workers and HTTP servers as one group: the first failure, or
// the end of the parent context, stops all of them.
type Runner struct {
	mu              sync.Mutex
	workers         []Worker
	servers         []HTTPServer
	logger          *zap.Logger
	shutdownTimeout time.Duration
}

// NewRunner creates a new Runner.
func NewRunner(opts ...Opt) *Runner {
	r := &Runner{
		logger:          zap.NewNop(),
		shutdownTimeout: DefaultShutdownTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// AddWorker adds a Worker to be run later.
func (r *Runner) AddWorker(worker Worker) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.workers = append(r.workers, worker)
}

// AddHTTPServer adds an HTTPServer to be run later.
func (r *Runner) AddHTTPServer(srv HTTPServer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.servers = append(r.servers, srv)
}

// Run starts everything added so far and blocks until all of it has
// stopped. It returns the first error encountered, if any.
func (r *Runner) Run(ctx context.Context) error {
	r.mu.Lock()
	workers := append([]Worker(nil), r.workers...)
	servers := append([]HTTPServer(nil), r.servers...)
	r.mu.Unlock()

	g, gctx := errgroup.WithContext(ctx)

	for _, w := range workers {
		g.Go(func() error {
			return w.Run(gctx)
		})
	}

	for _, srv := range servers {
		g.Go(func() error {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				r.logger.Error("http server failed", zap.Error(err))
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			r.logger.Info("shutting down http server", zap.Duration("timeout", r.shutdownTimeout))

			shutdownCtx, cancel := context.WithTimeout(context.Background(), r.shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	return g.Wait()
}
