package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm/logger"

	echoserver "airbnb_hub/internal/adapters/echo_server"
	"airbnb_hub/internal/adapters/observability"
	"airbnb_hub/internal/app"
	"airbnb_hub/internal/shared"
	"airbnb_hub/internal/storage/ormstore"
)

func main() {
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel, "ormapi")
	zerolog.DefaultContextLogger = &log.Logger

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	level := logger.Warn
	if cfg.AppEnv == "dev" || cfg.AppEnv == "development" {
		level = logger.Info
	}
	gdb, err := ormstore.Open(cfg.ORMDialect, cfg.ORMDSN, ormstore.NewLogger(level, 200*time.Millisecond))
	if err != nil {
		log.Fatal().Err(err).Str("dialect", cfg.ORMDialect).Msg("gorm open failed")
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("gorm pool unavailable")
	}
	defer sqlDB.Close()
	cfg.Pool.Apply(sqlDB)

	if cfg.ORMAutoMigrate {
		if err := ormstore.Migrate(gdb); err != nil {
			log.Fatal().Err(err).Msg("migration failed")
		}
	}

	repo := ormstore.New(gdb)
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	err = repo.Ping(pingCtx)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("db ping failed")
	}
	log.Info().Str("dialect", cfg.ORMDialect).Msg("database connection ok")

	// the ORM backend has no metadata source; /api/scrape_date is not served
	q := app.NewQueryService(repo, nil, cfg.PriceRollup)

	reg := observability.InitRegistry()
	metrics := observability.MetricsHandler(reg)

	srv := echoserver.New(cfg.RequestTimeout, cfg.RateLimitRPS)
	srv.Mount("/metrics", metrics)
	srv.Register(q, cfg.StaticDir)

	g, gctx := errgroup.WithContext(ctx)
	e := srv.Echo()
	g.Go(func() error {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
		if err := e.Start(cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	ms := observability.Serve(cfg.MetricsAddr, metrics)
	if ms != nil {
		g.Go(func() error {
			log.Info().Str("addr", ms.Addr).Msg("metrics listening")
			if err := ms.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		err := e.Shutdown(sctx)
		if ms != nil {
			err = errors.Join(err, ms.Shutdown(sctx))
		}
		return err
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
	log.Info().Msg("shutdown complete")
}
