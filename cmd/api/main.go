// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/carterperez-dev/templates/storefront/internal/admin"
	"github.com/carterperez-dev/templates/storefront/internal/auth"
	"github.com/carterperez-dev/templates/storefront/internal/authz"
	"github.com/carterperez-dev/templates/storefront/internal/category"
	"github.com/carterperez-dev/templates/storefront/internal/config"
	"github.com/carterperez-dev/templates/storefront/internal/core"
	"github.com/carterperez-dev/templates/storefront/internal/health"
	"github.com/carterperez-dev/templates/storefront/internal/middleware"
	"github.com/carterperez-dev/templates/storefront/internal/order"
	"github.com/carterperez-dev/templates/storefront/internal/payment"
	"github.com/carterperez-dev/templates/storefront/internal/product"
	"github.com/carterperez-dev/templates/storefront/internal/server"
	"github.com/carterperez-dev/templates/storefront/internal/user"
)

const (
	drainDelay = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	core.SetExposeErrorDetails(cfg.API.ExposeErrorDetails)

	telemetry, err := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
	if err != nil {
		logger.Warn("tracing disabled", "error", err)
		telemetry = &core.Telemetry{}
	}
	if telemetry.Enabled() {
		logger.Info("otlp tracing enabled",
			"endpoint", cfg.Otel.Endpoint,
			"sample_rate", cfg.Otel.SampleRate,
		)
	}

	mongo, err := core.NewMongo(ctx, cfg.Mongo)
	if err != nil {
		return err
	}
	logger.Info("mongo connected",
		"database", cfg.Mongo.Database,
		"max_pool_size", cfg.Mongo.MaxPoolSize,
	)

	var ledgerDB *core.Database
	var ledger payment.Ledger = payment.NopLedger{}
	if cfg.LedgerEnabled() {
		ledgerDB, err = core.NewDatabase(ctx, cfg.Ledger)
		if err != nil {
			return err
		}
		pg := payment.NewPostgresLedger(ledgerDB.DB)
		if err := pg.EnsureSchema(ctx); err != nil {
			return err
		}
		ledger = pg
		logger.Info("payment ledger connected",
			"max_open_conns", cfg.Ledger.MaxOpenConns,
		)
	} else {
		logger.Info("payment ledger disabled")
	}

	redis, err := core.OpenRedis(cfg.Redis)
	if err != nil {
		return err
	}
	if pingErr := redis.Ping(ctx); pingErr != nil {
		logger.Warn("redis unreachable, rate limiting falls back to in-process buckets",
			"error", pingErr,
		)
	} else {
		logger.Info("redis connected",
			"pool_size", cfg.Redis.PoolSize,
		)
	}

	jwtManager, err := auth.NewJWTManager(cfg.JWT)
	if err != nil {
		return err
	}
	logger.Info("JWT manager initialized",
		"algorithm", "ES256",
		"key_id", jwtManager.GetKeyID(),
	)

	userRepo := user.NewRepository(mongo.DB)
	categoryRepo := category.NewRepository(mongo.DB)
	productRepo := product.NewRepository(mongo.DB)
	orderRepo := order.NewRepository(mongo.DB)

	for name, ensure := range map[string]func(context.Context) error{
		"users":      userRepo.EnsureIndexes,
		"categories": categoryRepo.EnsureIndexes,
		"products":   productRepo.EnsureIndexes,
		"orders":     orderRepo.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			return err
		}
		logger.Debug("indexes ensured", "collection", name)
	}

	userSvc := user.NewService(userRepo)
	userHandler := user.NewHandler(userSvc)

	authSvc := auth.NewService(jwtManager, userSvc)
	authHandler := auth.NewHandler(authSvc)

	categorySvc := category.NewService(categoryRepo)
	categoryHandler := category.NewHandler(categorySvc)

	productSvc := product.NewService(productRepo, categorySvc)
	productHandler := product.NewHandler(productSvc)

	orderSvc := order.NewService(orderRepo, productSvc, userSvc)
	orderHandler := order.NewHandler(orderSvc)

	braintreeGateway, err := payment.NewBraintreeGateway(cfg.Payment)
	if err != nil {
		return err
	}
	gateway := payment.NewBreakerGateway(braintreeGateway, payment.BreakerSettings{
		Name:     "braintree",
		Failures: cfg.Payment.BreakerFailures,
		Timeout:  cfg.Payment.BreakerTimeout,
	}, logger)

	paymentSvc := payment.NewService(
		gateway,
		ledger,
		orderSvc,
		productSvc,
		payment.Options{RepriceFromCatalog: cfg.Payment.RepriceFromCatalog},
		logger,
	)
	paymentHandler := payment.NewHandler(paymentSvc)
	logger.Info("payment gateway initialized",
		"environment", cfg.Payment.Environment,
		"reprice_from_catalog", cfg.Payment.RepriceFromCatalog,
	)

	enforcer, err := authz.NewEnforcer()
	if err != nil {
		return err
	}
	guard := authz.NewGuard(enforcer, userSvc)

	deps := []health.Dependency{
		{Name: "mongo", Checker: mongo},
		{Name: "redis", Checker: redis, Optional: true},
	}
	adminCfg := admin.HandlerConfig{
		CollectionCounts: mongo.EstimatedCounts,
		OrderCounts:      orderSvc.CountByStatus,
		RedisStats:       redis.PoolStats,
		RedisPing:        redis.Ping,
	}
	if ledgerDB != nil {
		deps = append(deps, health.Dependency{Name: "ledger", Checker: ledgerDB})
		adminCfg.LedgerStats = ledgerDB.Stats
		adminCfg.LedgerPing = ledgerDB.Ping
	}

	healthHandler := health.NewHandler(deps...)
	adminHandler := admin.NewHandler(adminCfg)

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Tracing)
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Metrics)
	limits := middleware.LimitsFromConfig(cfg.RateLimit)
	limits.Logger = logger
	router.Use(middleware.NewRateLimiter(redis.Client, limits).Handler)
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	router.Use(middleware.CORS(cfg.CORS))
	router.Use(middleware.MaxBody(cfg.Server.MaxBodyBytes))

	healthHandler.RegisterRoutes(router)

	router.Handle("/metrics", promhttp.Handler())
	router.Get("/.well-known/jwks.json", jwtManager.GetJWKSHandler())

	authenticator := middleware.Authenticator(jwtManager)
	adminOnly := guard.RequireAdmin

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			authHandler.RegisterRoutes(r, authenticator, adminOnly)
			userHandler.RegisterRoutes(r, authenticator)
			orderHandler.RegisterRoutes(r, authenticator, adminOnly)
		})

		categoryHandler.RegisterRoutes(r, authenticator, adminOnly)

		r.Route("/product", func(r chi.Router) {
			productHandler.RegisterRoutes(r, authenticator, adminOnly)
			paymentHandler.RegisterRoutes(r, authenticator)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(authenticator, adminOnly)
			adminHandler.RegisterRoutes(r)
			paymentHandler.RegisterAdminRoutes(r)
		})
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry.Enabled() {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if ledgerDB != nil {
		if err := ledgerDB.Close(); err != nil {
			logger.Error("ledger close error", "error", err)
		}
	}

	if err := mongo.Close(shutdownCtx); err != nil {
		logger.Error("mongo close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
