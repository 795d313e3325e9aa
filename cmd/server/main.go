package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/metzakaria/vendicore/internal/adapter/http"
	"github.com/metzakaria/vendicore/internal/adapter/http/handler"
	"github.com/metzakaria/vendicore/internal/adapter/http/middleware"
	postgresRepo "github.com/metzakaria/vendicore/internal/adapter/repository/postgres"
	redisRepo "github.com/metzakaria/vendicore/internal/adapter/repository/redis"
	"github.com/metzakaria/vendicore/internal/infrastructure/auth"
	"github.com/metzakaria/vendicore/internal/infrastructure/config"
	"github.com/metzakaria/vendicore/internal/infrastructure/eventpublisher"
	"github.com/metzakaria/vendicore/internal/infrastructure/logger"
	"github.com/metzakaria/vendicore/internal/infrastructure/metrics"
	"github.com/metzakaria/vendicore/internal/infrastructure/postgres"
	"github.com/metzakaria/vendicore/internal/infrastructure/redis"
	"github.com/metzakaria/vendicore/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	log.Logger = logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	ctx := context.Background()

	pool, err := postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{
		DatabaseURL: cfg.DatabaseURL,
		MaxConns:    cfg.DatabaseMaxConns,
		MinConns:    cfg.DatabaseMinConns,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Repositories
	txManager := postgresRepo.NewTxManager(pool)
	merchantRepo := postgresRepo.NewMerchantRepository(pool)
	fundingRepo := postgresRepo.NewFundingRepository(pool)
	productRepo := postgresRepo.NewProductRepository(pool)
	providerRepo := postgresRepo.NewProviderRepository(pool)
	discountRepo := postgresRepo.NewDiscountRepository(pool)
	userRepo := postgresRepo.NewUserRepository(pool)
	auditRepo := postgresRepo.NewAuditRepository(pool)
	outboxRepo := postgresRepo.NewOutboxRepository(pool)
	cache := redisRepo.NewCache(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	idGen := postgresRepo.NewULIDGenerator()

	businessMetrics := metrics.New()

	// Use cases
	fundingUC := usecase.NewFundingUseCase(txManager, merchantRepo, fundingRepo, outboxRepo, auditRepo, cache, idGen).
		WithMetrics(businessMetrics)
	merchantUC := usecase.NewMerchantUseCase(merchantRepo, cache, idGen).
		WithMetrics(businessMetrics)
	productUC := usecase.NewProductUseCase(productRepo, providerRepo, merchantRepo, discountRepo, idGen)
	providerUC := usecase.NewProviderUseCase(providerRepo, idGen)
	userUC := usecase.NewUserUseCase(userRepo, idGen).
		WithMetrics(businessMetrics)
	consistencyUC := usecase.NewConsistencyUseCase(merchantRepo, fundingRepo).
		WithMetrics(businessMetrics)

	// Authentication
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
	gate := middleware.NewGate(jwtManager, middleware.DefaultRules())

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	// Handlers
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AuthHandler:     handler.NewAuthHandler(userUC, jwtManager, cfg.JWTExpiration),
		FundingHandler:  handler.NewFundingHandler(fundingUC),
		MerchantHandler: handler.NewMerchantHandler(merchantUC),
		ProductHandler:  handler.NewProductHandler(productUC),
		ProviderHandler: handler.NewProviderHandler(providerUC),
		UserHandler:     handler.NewUserHandler(userUC),
		LedgerHandler:   handler.NewLedgerHandler(consistencyUC),
		HealthHandler:   handler.NewHealthHandler(pool, redisClient),

		Gate:             gate,
		Logging:          middleware.NewLoggingMiddleware(log.Logger),
		RateLimiter:      rateLimiter,
		IdempotencyStore: idempotencyStore,
		MetricsHandler:   promhttp.Handler(),

		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	// Outbox publisher
	var sink eventpublisher.Publisher = eventpublisher.NewLogPublisher(&log.Logger)
	if cfg.OutboxStream != "" {
		sink = eventpublisher.NewStreamPublisher(redisClient, cfg.OutboxStream)
	}

	publisher := eventpublisher.NewEventPublisher(eventpublisher.Config{
		OutboxRepo: outboxRepo,
		Publisher:  sink,
		Retrier:    postgresRepo.NewRetrier(),
		Metrics:    businessMetrics,
		Logger:     &log.Logger,
		BatchSize:  cfg.OutboxBatchSize,
		Interval:   cfg.OutboxInterval,
	})

	publisherCtx, stopPublisher := context.WithCancel(ctx)
	defer stopPublisher()
	go func() {
		if err := publisher.Start(publisherCtx); err != nil && publisherCtx.Err() == nil {
			log.Error().Err(err).Msg("event publisher stopped")
		}
	}()

	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-publisherCtx.Done():
				return
			case <-ticker.C:
				rateLimiter.CleanupClients(time.Hour)
			}
		}
	}()

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	stopPublisher()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
