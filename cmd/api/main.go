package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/angelmondragon/ridegear-backend/api/controllers"
	"github.com/angelmondragon/ridegear-backend/api/routes"
	"github.com/angelmondragon/ridegear-backend/internal/cart"
	"github.com/angelmondragon/ridegear-backend/internal/catalog"
	"github.com/angelmondragon/ridegear-backend/internal/checkout"
	"github.com/angelmondragon/ridegear-backend/internal/notifications"
	"github.com/angelmondragon/ridegear-backend/internal/session"
	"github.com/angelmondragon/ridegear-backend/pkg/config"
	"github.com/angelmondragon/ridegear-backend/pkg/db"
	"github.com/angelmondragon/ridegear-backend/pkg/logger"
	"github.com/angelmondragon/ridegear-backend/pkg/metrics"
	"github.com/angelmondragon/ridegear-backend/pkg/migrate"
	"github.com/angelmondragon/ridegear-backend/pkg/redis"
	"github.com/angelmondragon/ridegear-backend/pkg/storage"
	"github.com/angelmondragon/ridegear-backend/pkg/types"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

// run returns instead of exiting so deferred resource release always happens.
// Failures are logged where they occur.
func run() (err error) {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		return err
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var closers []func() error
	defer func() {
		var closeErr error
		for i := len(closers) - 1; i >= 0; i-- {
			closeErr = multierr.Append(closeErr, closers[i]())
		}
		if closeErr != nil {
			logg.Error(context.Background(), "error releasing resources", closeErr)
			err = multierr.Append(err, closeErr)
		}
	}()

	readiness := map[string]controllers.Pinger{}

	var redisClient *redis.Client
	if cfg.Redis.Configured() {
		redisClient, err = redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap redis", err)
			return err
		}
		closers = append(closers, redisClient.Close)
		readiness["redis"] = redisClient
	}

	var cartStorage storage.Storage
	switch {
	case cfg.Storage.UsesRedis():
		cartStorage = storage.NewRedis(redisClient, cfg.Redis.CartTTL)
	case cfg.Storage.UsesSQL():
		dbClient, err := db.New(ctx, cfg.DB, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap database", err)
			return err
		}
		closers = append(closers, dbClient.Close)
		if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
			logg.Error(ctx, "failed to run dev migrations", err)
			return err
		}
		cartStorage = storage.NewSQL(dbClient.DB())
		readiness["database"] = dbClient
	default:
		cartStorage = storage.NewMemory()
	}
	readiness["storage"] = cartStorage

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	hub := notifications.NewHub(logg)
	carts := cart.NewRegistry(cart.Options{
		Storage:  cartStorage,
		Notifier: hub,
		Logger:   logg,
		Metrics:  metrics.NewCartMetrics(registry),
		IdleTTL:  cfg.Storage.CartIdleTTL,
	})

	money := types.MoneyFormatter{
		Code:        cfg.Currency.Code,
		Symbol:      cfg.Currency.Symbol,
		MinorDigits: cfg.Currency.MinorDigits,
	}
	cat := catalog.Default()

	cartService, err := cart.NewService(carts, cat, hub, money)
	if err != nil {
		logg.Error(ctx, "failed to create cart service", err)
		return err
	}

	checkoutService, err := checkout.NewService(checkout.ServiceParams{
		Registry:  carts,
		Logger:    logg,
		Metrics:   metrics.NewCheckoutMetrics(registry),
		Delay:     cfg.Checkout.Delay,
		Retention: cfg.Checkout.Retention,
	})
	if err != nil {
		logg.Error(ctx, "failed to create checkout service", err)
		return err
	}

	sessionClient := session.NewClient(
		cfg.Session.BaseURL(),
		session.WithTimeout(cfg.Session.Timeout),
		session.WithLogger(logg),
	)

	var idempotencyStore redis.IdempotencyStore
	if redisClient != nil {
		idempotencyStore = redisClient
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx = logg.WithFields(ctx, map[string]any{
		"env":     cfg.App.Env,
		"addr":    addr,
		"storage": cfg.Storage.Backend,
	})

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			metrics.NewHTTPMetrics(registry),
			registry,
			idempotencyStore,
			readiness,
			cat,
			money,
			cartService,
			checkoutService,
			sessionClient,
		),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logg.Info(ctx, "starting api server")
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(logg.Detach(ctx), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.Error(shutdownCtx, "api server shutdown failed", err)
		return err
	}
	// accepted checkouts already answered 202; finish them before storage closes
	if err := checkoutService.Shutdown(shutdownCtx); err != nil {
		logg.Error(shutdownCtx, "checkout drain incomplete", err)
		return err
	}
	logg.Info(shutdownCtx, "api server shut down gracefully")
	return nil
}
