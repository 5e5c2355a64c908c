package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/angelmondragon/storefront/api/routes"
	"github.com/angelmondragon/storefront/internal/cart"
	"github.com/angelmondragon/storefront/internal/catalog"
	"github.com/angelmondragon/storefront/pkg/config"
	"github.com/angelmondragon/storefront/pkg/db"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/metrics"
	"github.com/angelmondragon/storefront/pkg/migrate"
	"github.com/angelmondragon/storefront/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
		Format:      cfg.App.LogFormat,
	})

	if err := run(cfg, logg); err != nil {
		logg.Error(context.Background(), "api stopped with error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logg *logger.Logger) (err error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps := routes.Deps{}

	var dbClient *db.Client
	if cfg.NeedsDB() {
		dbClient, err = db.New(ctx, cfg.DB, logg)
		if err != nil {
			return fmt.Errorf("bootstrap database: %w", err)
		}
		defer func() {
			err = multierr.Append(err, dbClient.Close())
		}()
		if err := migrate.MaybeRun(ctx, cfg, logg, dbClient); err != nil {
			return err
		}
		deps.DB = dbClient
	}

	var redisClient *redis.Client
	if cfg.NeedsRedis() {
		redisClient, err = redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return fmt.Errorf("bootstrap redis: %w", err)
		}
		defer func() {
			err = multierr.Append(err, redisClient.Close())
		}()
		deps.Redis = redisClient
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	deps.Gatherer = reg

	slots, err := slotFactory(cfg, dbClient, redisClient)
	if err != nil {
		return err
	}
	deps.Cart, err = cart.NewService(slots, logg,
		cart.WithMetrics(metrics.NewCartMetrics(reg)),
		cart.WithServiceCurrency(cfg.Cart.CurrencySymbol),
	)
	if err != nil {
		return fmt.Errorf("create cart service: %w", err)
	}

	if cfg.Catalog.Enabled {
		catalogSvc, err := catalog.NewService(catalog.NewRepository(dbClient.DB()), dbClient, logg)
		if err != nil {
			return fmt.Errorf("create catalog service: %w", err)
		}
		if cfg.Catalog.SeedOnStart {
			if _, err := catalogSvc.Seed(ctx); err != nil {
				return err
			}
		}
		deps.Catalog = catalogSvc
	}

	addr := ":" + cfg.App.Port
	srvCtx := logg.WithFields(ctx, map[string]any{
		"env":         cfg.App.Env,
		"addr":        addr,
		"slot_driver": cfg.Cart.SlotDriver,
	})

	server := &http.Server{
		Addr:         addr,
		Handler:      routes.NewRouter(cfg, logg, deps),
		ReadTimeout:  cfg.App.ReadTimeout,
		WriteTimeout: cfg.App.WriteTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logg.Info(srvCtx, "starting api server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("api server stopped unexpectedly: %w", err)
	case <-ctx.Done():
	}

	logg.Info(srvCtx, "shutting down api server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownWait)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func slotFactory(cfg *config.Config, dbClient *db.Client, redisClient *redis.Client) (cart.SlotFactory, error) {
	switch cfg.Cart.SlotDriver {
	case config.SlotDriverRedis:
		return cart.NewRedisSlots(redisClient, cfg.Cart.SlotTTL), nil
	case config.SlotDriverSQL:
		return cart.NewSQLSlots(dbClient.DB(), cfg.Cart.SlotTTL), nil
	case config.SlotDriverMemory:
		return cart.NewMemorySlots(), nil
	}
	return nil, fmt.Errorf("unknown cart slot driver %q", cfg.Cart.SlotDriver)
}
