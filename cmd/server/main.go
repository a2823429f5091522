package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	httpAdapter "github.com/farebox/farebox/internal/adapter/http"
	"github.com/farebox/farebox/internal/adapter/http/handler"
	"github.com/farebox/farebox/internal/adapter/http/middleware"
	postgresRepo "github.com/farebox/farebox/internal/adapter/repository/postgres"
	redisRepo "github.com/farebox/farebox/internal/adapter/repository/redis"
	"github.com/farebox/farebox/internal/domain"
	"github.com/farebox/farebox/internal/infrastructure/config"
	"github.com/farebox/farebox/internal/infrastructure/logger"
	"github.com/farebox/farebox/internal/infrastructure/metrics"
	"github.com/farebox/farebox/internal/infrastructure/postgres"
	"github.com/farebox/farebox/internal/infrastructure/redis"
	"github.com/farebox/farebox/internal/usecase"
)

// seedOfferings is the fixed route catalog loaded at startup. Seeding is
// idempotent, so restarts never duplicate entries.
var seedOfferings = []usecase.AddOfferingInput{
	{Origin: "MARGAO", Destination: "PANAJI", Price: 1000, Kind: domain.OfferingPass},
	{Origin: "PANAJI", Destination: "MARGAO", Price: 1000, Kind: domain.OfferingPass},
	{Origin: "MARGAO", Destination: "VASCO", Price: 800, Kind: domain.OfferingPass},
	{Origin: "PANAJI", Destination: "MAPUSA", Price: 600, Kind: domain.OfferingPass},
	{Origin: "MAPUSA", Destination: "PONDA", Price: 900, Kind: domain.OfferingPass},
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	log.Logger = appLogger

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Initialize metrics
	appMetrics := metrics.New()

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	catalogRepo := postgresRepo.NewCatalogRepository(pool)
	entitlementRepo := postgresRepo.NewEntitlementRepository(pool)
	tripRepo := postgresRepo.NewTripRepository(pool)
	ticketRepo := postgresRepo.NewTicketRepository(pool)
	cache := redisRepo.NewCache(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	idGen := postgresRepo.NewULIDGenerator()

	// Initialize use cases
	accountUC := usecase.NewAccountUseCase(accountRepo, idGen)
	catalogUC := usecase.NewCatalogUseCase(catalogRepo, idGen, cache)
	ledgerUC := usecase.NewLedgerUseCase(txManager, accountRepo, catalogRepo, entitlementRepo, tripRepo, ticketRepo, idGen, appMetrics)

	// Seed the route catalog
	retrier := postgresRepo.NewRetrier(appLogger)
	if err := retrier.Retry(ctx, func() error {
		return catalogUC.Seed(ctx, seedOfferings)
	}); err != nil {
		log.Fatal().Err(err).Msg("failed to seed catalog")
	}
	log.Info().Int("offerings", len(seedOfferings)).Msg("catalog seeded")

	// Initialize handlers
	accountHandler := handler.NewAccountHandler(accountUC)
	catalogHandler := handler.NewCatalogHandler(catalogUC)
	ledgerHandler := handler.NewLedgerHandler(ledgerUC, cfg.QRBaseURL)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:   accountHandler,
		CatalogHandler:   catalogHandler,
		LedgerHandler:    ledgerHandler,
		HealthHandler:    healthHandler,
		IdempotencyStore: idempotencyStore,
		RateLimiter:      middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
		Metrics:          appMetrics,
		Logger:           appLogger,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
