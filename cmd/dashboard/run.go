package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/sbilibin2017/flagwatch/internal/configs"
	"github.com/sbilibin2017/flagwatch/internal/configs/logger"
	"github.com/sbilibin2017/flagwatch/internal/poller"
	"github.com/sbilibin2017/flagwatch/internal/runner"

	httpClient "github.com/sbilibin2017/flagwatch/internal/configs/transport/http"
	httpFacades "github.com/sbilibin2017/flagwatch/internal/facades/http"
	httpHandlers "github.com/sbilibin2017/flagwatch/internal/handlers/http"
	httpMiddlewares "github.com/sbilibin2017/flagwatch/internal/middlewares/http"
)

// snapshotSource is what the dashboard routes need from the poller.
type snapshotSource interface {
	httpHandlers.SnapshotGetter
	httpHandlers.Refresher
}

// run wires the poller to the HTTP surface and blocks until ctx is done.
func run(ctx context.Context, cfg *configs.DashboardConfig) error {
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer log.Sync()

	if cfg.APIBase == "" {
		log.Warn("API_BASE is not set, every read will fail until it is configured")
	}

	p := newPoller(cfg, log)

	srv := &http.Server{
		Addr:    cfg.Address,
		Handler: newRouter(p, cfg.TableName, log),
	}

	r := runner.NewRunner(runner.WithLogger(log))
	r.AddWorker(p)
	r.AddHTTPServer(srv)

	log.Info("dashboard started",
		zap.String("address", cfg.Address),
		zap.String("api_base", cfg.APIBase),
		zap.String("db_name", cfg.DBName),
		zap.Duration("poll_interval", p.Interval()),
	)
	return r.Run(ctx)
}

func newPoller(cfg *configs.DashboardConfig, log *zap.Logger) *poller.Poller {
	client := httpClient.New(cfg.APIBase,
		httpClient.WithTimeout(time.Duration(cfg.RequestTimeout)*time.Second),
		httpClient.WithUserAgent("flagwatch-dashboard/"+buildVersion),
		httpClient.WithLogger(log),
	)
	facade := httpFacades.NewTotalFlagsHTTPFacade(client, cfg.DBName, cfg.TableName)

	return poller.New(facade,
		poller.WithInterval(time.Duration(cfg.PollInterval)*time.Second),
		poller.WithLogger(log.Named("poller")),
	)
}

func newRouter(src snapshotSource, table string, log *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(httpMiddlewares.NewLoggingMiddleware(log))
	r.Use(httpMiddlewares.GzipResponseMiddleware)

	r.Get("/", httpHandlers.NewDashboardHTMLHandler(src, table))
	r.Get("/api/snapshot", httpHandlers.NewSnapshotJSONHandler(src))
	r.Post("/refresh", httpHandlers.NewRefreshHandler(src))
	return r
}
