package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/adiwijaya/tokokita-backend/api/controllers"
	"github.com/adiwijaya/tokokita-backend/api/routes"
	"github.com/adiwijaya/tokokita-backend/internal/cart"
	"github.com/adiwijaya/tokokita-backend/internal/catalog"
	checkoutsvc "github.com/adiwijaya/tokokita-backend/internal/checkout"
	"github.com/adiwijaya/tokokita-backend/internal/session"
	"github.com/adiwijaya/tokokita-backend/internal/transactions"
	"github.com/adiwijaya/tokokita-backend/pkg/config"
	"github.com/adiwijaya/tokokita-backend/pkg/db"
	"github.com/adiwijaya/tokokita-backend/pkg/kv"
	"github.com/adiwijaya/tokokita-backend/pkg/logger"
	"github.com/adiwijaya/tokokita-backend/pkg/metrics"
	"github.com/adiwijaya/tokokita-backend/pkg/redis"
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
		Format:      cfg.App.LogFormat,
		WarnStack:   cfg.App.LogWarnStack,
	})

	var (
		store       kv.Store
		cache       kv.TTLStore
		logKey      string
		storePinger controllers.Pinger
		closeStore  func() error
	)

	switch cfg.Storage.Backend {
	case config.StorageBackendRedis:
		redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		store = redisClient
		cache = redisClient
		logKey = redisClient.StorageKey(cfg.Storage.LogKey)
		storePinger = redisClient
		closeStore = redisClient.Close
	default:
		dbClient, err := db.New(context.Background(), cfg.Storage.Backend, cfg.DB, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap database", err)
			os.Exit(1)
		}
		store = db.NewBlobStore(dbClient)
		logKey = cfg.Storage.LogKey
		storePinger = dbClient
		closeStore = dbClient.Close
	}
	defer func() {
		if err := closeStore(); err != nil {
			logg.Error(context.Background(), "error closing storage", err)
		}
	}()

	txnLog, err := transactions.NewLog(store, logKey, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create transaction log", err)
		os.Exit(1)
	}
	if err := txnLog.Load(context.Background()); err != nil {
		logg.Error(context.Background(), "failed to load transaction log", err)
		os.Exit(1)
	}

	sess, err := session.New(cart.NewStore(), txnLog)
	if err != nil {
		logg.Error(context.Background(), "failed to create session", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()

	checkoutService, err := checkoutsvc.NewService(sess, logg, metrics.NewCheckoutMetrics(registry))
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	var cacheKey string
	if c, ok := store.(*redis.Client); ok {
		cacheKey = c.CacheKey("catalog", "products")
	}
	catalogService, err := catalog.NewService(catalog.Options{
		BaseURL:  cfg.Catalog.BaseURL,
		Timeout:  cfg.Catalog.Timeout,
		Cache:    cache,
		CacheKey: cacheKey,
		CacheTTL: cfg.Catalog.CacheTTL,
		Logger:   logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":     cfg.App.Env,
		"addr":    addr,
		"backend": cfg.Storage.Backend,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:      cfg,
			Logger:      logg,
			Session:     sess,
			Checkout:    checkoutService,
			Catalog:     catalogService,
			HTTPMetrics: metrics.NewHTTPMetrics(registry),
			Gatherer:    registry,
			StorePinger: storePinger,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
