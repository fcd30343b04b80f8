package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	server "airbnb_hub/internal/adapters/http_server"
	"airbnb_hub/internal/adapters/observability"
	"airbnb_hub/internal/app"
	"airbnb_hub/internal/shared"
	"airbnb_hub/internal/storage/sqlstore"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel, "sqlapi")
	zerolog.DefaultContextLogger = &log.Logger

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// db
	db, err := sql.Open(cfg.SQLDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.SQLDriver).Msg("sql.Open failed")
	}
	defer db.Close()
	cfg.Pool.Apply(db)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	err = db.PingContext(pingCtx)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Str("driver", cfg.SQLDriver).Bool("views", cfg.SQLUseViews).Msg("database connection ok")

	// deps
	repo := sqlstore.New(db, sqlstore.WithDriver(cfg.SQLDriver), sqlstore.WithViews(cfg.SQLUseViews))
	q := app.NewQueryService(repo, repo, cfg.PriceRollup)

	// http
	reg := observability.InitRegistry()
	metrics := observability.MetricsHandler(reg)

	srv := server.New(cfg.RequestTimeout, cfg.RateLimitRPS)
	srv.Mount("/metrics", metrics)
	srv.MountHandlers(&server.Handlers{Q: q, StaticDir: cfg.StaticDir})

	servers := []*http.Server{{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Mux(),
		ReadHeaderTimeout: 5 * time.Second,
	}}
	if ms := observability.Serve(cfg.MetricsAddr, metrics); ms != nil {
		servers = append(servers, ms)
	}

	if err := run(ctx, servers, cfg.ShutdownTimeout); err != nil {
		log.Fatal().Err(err).Msg("http server failed")
	}
	log.Info().Msg("shutdown complete")
}

// run serves every server until ctx is cancelled or one of them fails, then
// shuts them all down within timeout.
func run(ctx context.Context, servers []*http.Server, timeout time.Duration) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, s := range servers {
		s := s
		g.Go(func() error {
			log.Info().Str("addr", s.Addr).Msg("listening")
			if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		var errs []error
		for _, s := range servers {
			errs = append(errs, s.Shutdown(sctx))
		}
		return errors.Join(errs...)
	})
	return g.Wait()
}
