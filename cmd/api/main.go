package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/marcos-nsantos/user-management-backend/internal/adapter/handler"
	"github.com/marcos-nsantos/user-management-backend/internal/infrastructure/auth"
	"github.com/marcos-nsantos/user-management-backend/internal/infrastructure/cache"
	"github.com/marcos-nsantos/user-management-backend/internal/infrastructure/config"
	"github.com/marcos-nsantos/user-management-backend/internal/infrastructure/middleware"
	"github.com/marcos-nsantos/user-management-backend/internal/infrastructure/observability"
	"github.com/marcos-nsantos/user-management-backend/internal/infrastructure/server"
	"github.com/marcos-nsantos/user-management-backend/internal/infrastructure/storage"
	"github.com/marcos-nsantos/user-management-backend/internal/usecase/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := storage.Open(ctx, cfg.Database, logger)
	if err != nil {
		logger.Fatal("failed to open database", zap.Error(err))
	}
	defer store.Close()

	// Use cases
	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	userSvc := user.NewService(store.Users, hasher)

	// Rate limiting
	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		var redisClient *redis.Client
		if cfg.RateLimit.Store == config.RateLimitStoreRedis {
			redisClient, err = cache.NewRedisClient(ctx, cfg.Redis)
			if err != nil {
				logger.Fatal("failed to connect to redis", zap.Error(err))
			}
			defer redisClient.Close()
		}

		limiterStore, err := middleware.NewLimiterStore(cfg.RateLimit, redisClient)
		if err != nil {
			logger.Fatal("failed to create rate limit store", zap.Error(err))
		}
		rateLimiter, err = middleware.NewRateLimiter(limiterStore, cfg.RateLimit, logger)
		if err != nil {
			logger.Fatal("failed to create rate limiter", zap.Error(err))
		}
	}

	// Router
	router, err := server.NewRouter(server.RouterConfig{
		UserHandler:    handler.NewUserHandler(userSvc, logger),
		RateLimiter:    rateLimiter,
		MetricsEnabled: cfg.Metrics.Enabled,
		SwaggerEnabled: cfg.Server.Environment != "production",
		TrustedProxies: cfg.Server.TrustedProxies,
		Logger:         logger,
		Environment:    cfg.Server.Environment,
	})
	if err != nil {
		logger.Fatal("failed to create router", zap.Error(err))
	}

	srv := server.NewServer(cfg.Server, router.Engine(), logger)
	if err := srv.Run(ctx); err != nil {
		logger.Error("server error", zap.Error(err))
	}

	logger.Info("server stopped")
}
