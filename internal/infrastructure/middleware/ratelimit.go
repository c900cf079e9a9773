package middleware

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
	"go.uber.org/zap"

	"github.com/marcos-nsantos/user-management-backend/internal/infrastructure/config"
	"github.com/marcos-nsantos/user-management-backend/internal/pkg/apperror"
	"github.com/marcos-nsantos/user-management-backend/internal/pkg/httputil"
)

const storePrefix = "user_management:ratelimit"

// Route names double as the first segment of each limiter key, so every
// route counts separately per client.
const (
	RouteDefault    = "default"
	RouteListUsers  = "list_users"
	RouteGetUser    = "get_user"
	RouteCreateUser = "create_user"
	RouteUpdateUser = "update_user"
	RouteDeleteUser = "delete_user"
	RouteSearch     = "search"
	RouteLogin      = "login"
)

// NewLimiterStore builds the counter store. client is only used by the redis
// store and may be nil otherwise.
func NewLimiterStore(cfg config.RateLimitConfig, client *redis.Client) (limiter.Store, error) {
	switch cfg.Store {
	case config.RateLimitStoreMemory:
		return memory.NewStoreWithOptions(limiter.StoreOptions{
			Prefix:          storePrefix,
			CleanUpInterval: limiter.DefaultCleanUpInterval,
		}), nil
	case config.RateLimitStoreRedis:
		if client == nil {
			return nil, fmt.Errorf("redis rate limit store requires a redis client")
		}
		store, err := sredis.NewStoreWithOptions(client, limiter.StoreOptions{
			Prefix:   storePrefix,
			MaxRetry: limiter.DefaultMaxRetry,
		})
		if err != nil {
			return nil, fmt.Errorf("creating redis limiter store: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported rate limit store %q", cfg.Store)
	}
}

type RateLimiter struct {
	limiters map[string]*limiter.Limiter
	logger   *zap.Logger
}

func NewRateLimiter(store limiter.Store, cfg config.RateLimitConfig, logger *zap.Logger) (*RateLimiter, error) {
	rates := map[string]string{
		RouteDefault:    cfg.Default,
		RouteListUsers:  cfg.ListUsers,
		RouteGetUser:    cfg.GetUser,
		RouteCreateUser: cfg.CreateUser,
		RouteUpdateUser: cfg.UpdateUser,
		RouteDeleteUser: cfg.DeleteUser,
		RouteSearch:     cfg.Search,
		RouteLogin:      cfg.Login,
	}

	rl := &RateLimiter{
		limiters: make(map[string]*limiter.Limiter, len(rates)),
		logger:   logger,
	}
	for route, formatted := range rates {
		rate, err := limiter.NewRateFromFormatted(formatted)
		if err != nil {
			return nil, fmt.Errorf("parsing %s rate %q: %w", route, formatted, err)
		}
		rl.limiters[route] = limiter.New(store, rate)
	}

	return rl, nil
}

// Limit returns the middleware for one named route. Unknown names fall back
// to the default rate. Store failures let the request through.
func (rl *RateLimiter) Limit(route string) gin.HandlerFunc {
	instance, ok := rl.limiters[route]
	if !ok {
		route = RouteDefault
		instance = rl.limiters[RouteDefault]
	}

	return func(c *gin.Context) {
		key := route + ":" + c.ClientIP()

		lctx, err := instance.Get(c.Request.Context(), key)
		if err != nil {
			rl.logger.Warn("rate limiter unavailable",
				zap.Error(err),
				zap.String("route", route),
				zap.String("request_id", httputil.GetRequestID(c)),
			)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(lctx.Limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(lctx.Remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(lctx.Reset, 10))

		if lctx.Reached {
			rl.logger.Warn("rate limit exceeded",
				zap.String("route", route),
				zap.String("ip", c.ClientIP()),
			)
			httputil.HandleError(c, apperror.TooManyRequests("Rate limit exceeded"))
			c.Abort()
			return
		}

		c.Next()
	}
}
