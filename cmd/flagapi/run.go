package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pressly/goose"
	"go.uber.org/zap"

	"github.com/sbilibin2017/flagwatch/internal/configs"
	"github.com/sbilibin2017/flagwatch/internal/configs/db"
	"github.com/sbilibin2017/flagwatch/internal/configs/logger"
	"github.com/sbilibin2017/flagwatch/internal/repositories/memory"
	"github.com/sbilibin2017/flagwatch/internal/runner"
	"github.com/sbilibin2017/flagwatch/internal/services"

	httpHandlers "github.com/sbilibin2017/flagwatch/internal/handlers/http"
	httpMiddlewares "github.com/sbilibin2017/flagwatch/internal/middlewares/http"
	dbRepo "github.com/sbilibin2017/flagwatch/internal/repositories/db"
)

// flagReader counts flags and reports storage health.
type flagReader interface {
	services.Reader
	httpHandlers.Pinger
}

// storage is the flag store selected by the configuration.
type storage struct {
	writer services.Writer
	reader flagReader
	close  func() error
}

// run opens the store, serves the flag API and blocks until ctx is done.
func run(ctx context.Context, cfg *configs.FlagAPIConfig) error {
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer log.Sync()

	store, err := newStorage(cfg, log)
	if err != nil {
		return err
	}
	defer store.close()

	svc := services.NewFlagService(store.writer, store.reader)
	srv := &http.Server{
		Addr:    cfg.Address,
		Handler: newRouter(svc, store.reader, log),
	}

	r := runner.NewRunner(runner.WithLogger(log))
	r.AddHTTPServer(srv)

	log.Info("flag api started", zap.String("address", cfg.Address))
	return r.Run(ctx)
}

// newStorage connects to the configured database and migrates it, or falls
// back to memory when no DSN is set.
func newStorage(cfg *configs.FlagAPIConfig, log *zap.Logger) (*storage, error) {
	if cfg.DatabaseDSN == "" {
		log.Info("no database DSN configured, flags are kept in memory")
		mem := memory.NewFlagStore()
		return &storage{
			writer: memory.NewFlagWriteRepository(mem),
			reader: memory.NewFlagReadRepository(mem),
			close:  func() error { return nil },
		}, nil
	}

	driver := db.DriverFor(cfg.DatabaseDSN)
	conn, err := db.New(cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", driver, err)
	}

	if err := goose.SetDialect(db.Dialect(driver)); err != nil {
		conn.Close()
		return nil, err
	}
	if err := goose.Up(conn.DB, cfg.MigrationsDir); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	log.Info("database ready", zap.String("driver", driver), zap.String("migrations", cfg.MigrationsDir))

	return &storage{
		writer: dbRepo.NewFlagWriteRepository(conn),
		reader: dbRepo.NewFlagReadRepository(conn),
		close:  conn.Close,
	}, nil
}

func newRouter(svc *services.FlagService, pinger httpHandlers.Pinger, log *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(httpMiddlewares.NewLoggingMiddleware(log))
	r.Use(httpMiddlewares.GzipRequestMiddleware)
	r.Use(httpMiddlewares.GzipResponseMiddleware)

	r.Get("/metrics/total-flags", httpHandlers.NewTotalFlagsHandler(svc))
	r.Post("/flags", httpHandlers.NewFlagCreateHandler(svc))
	r.Get("/ping", httpHandlers.NewPingHandler(pinger))
	return r
}
