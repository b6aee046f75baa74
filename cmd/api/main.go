package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/angelmondragon/storefront-backend/api/controllers"
	"github.com/angelmondragon/storefront-backend/api/routes"
	"github.com/angelmondragon/storefront-backend/internal/blobstore"
	"github.com/angelmondragon/storefront-backend/internal/catalog"
	"github.com/angelmondragon/storefront-backend/internal/pricing"
	"github.com/angelmondragon/storefront-backend/internal/session"
	"github.com/angelmondragon/storefront-backend/pkg/config"
	"github.com/angelmondragon/storefront-backend/pkg/db"
	"github.com/angelmondragon/storefront-backend/pkg/instance"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/metrics"
	"github.com/angelmondragon/storefront-backend/pkg/migrate"
	"github.com/angelmondragon/storefront-backend/pkg/redis"
)

const shutdownTimeout = 10 * time.Second

// stateBackend is a blob backend plus the connection behind it, if any.
type stateBackend struct {
	blobstore.Backend
	pinger controllers.Pinger
	close  func() error
}

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
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logg); err != nil {
		logg.Error(context.Background(), "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logg *logger.Logger) (err error) {
	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return err
	}

	taxRate, err := decimal.NewFromString(cfg.Pricing.TaxRate)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", config.EnvTaxRate, err)
	}
	if taxRate.IsNegative() {
		return fmt.Errorf("%s must not be negative", config.EnvTaxRate)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	storeMetrics := metrics.NewStoreMetrics(reg)

	backend, err := openBackend(ctx, cfg, logg)
	if err != nil {
		return err
	}

	manager, err := session.NewManager(session.Deps{
		Catalog:     cat,
		Backend:     backend,
		Logger:      logg,
		Metrics:     storeMetrics,
		LookupDelay: cfg.Delivery.LookupDelay,
	})
	if err != nil {
		return multierr.Append(err, backend.close())
	}
	defer func() {
		err = multierr.Combine(err, manager.Close(), backend.close())
	}()

	opts := controllers.PricingOptions{
		TaxRate:    taxRate,
		EMITenures: cfg.Pricing.EMITenures,
		BankOffers: pricing.DefaultBankOffers,
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	logCtx := logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": instance.GetID(),
		"storage":  cfg.Storage.Backend,
		"products": cat.Len(),
	})
	logg.Info(logCtx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		Handler:           routes.NewRouter(cfg, logg, backend.pinger, reg, cat, manager, opts),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logg.Info(logCtx, "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		return manager.RunSweeper(gctx, cfg.Session.SweepInterval, cfg.Session.IdleTimeout, logg)
	})
	return g.Wait()
}

func openBackend(ctx context.Context, cfg *config.Config, logg *logger.Logger) (stateBackend, error) {
	noop := func() error { return nil }

	switch cfg.Storage.Backend {
	case config.StorageBackendRedis:
		client, err := redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return stateBackend{}, err
		}
		store, err := blobstore.NewRedis(client, cfg.Storage.StateTTL)
		if err != nil {
			return stateBackend{}, multierr.Append(err, client.Close())
		}
		return stateBackend{
			Backend: store,
			pinger:  client,
			close:   client.Close,
		}, nil

	case config.StorageBackendSQL:
		client, err := db.New(ctx, cfg.DB, cfg.FeatureFlags.UseSQLite, logg)
		if err != nil {
			return stateBackend{}, err
		}
		if err := migrate.MaybeRun(ctx, cfg, logg, client); err != nil {
			return stateBackend{}, multierr.Append(err, client.Close())
		}
		store, err := blobstore.NewSQL(client.DB())
		if err != nil {
			return stateBackend{}, multierr.Append(err, client.Close())
		}
		return stateBackend{
			Backend: store,
			pinger:  client,
			close:   client.Close,
		}, nil
	}

	return stateBackend{Backend: blobstore.NewMemory(), close: noop}, nil
}
