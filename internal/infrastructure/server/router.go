package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/marcos-nsantos/user-management-backend/internal/adapter/handler"
	"github.com/marcos-nsantos/user-management-backend/internal/infrastructure/middleware"
	"github.com/marcos-nsantos/user-management-backend/internal/pkg/apperror"
	"github.com/marcos-nsantos/user-management-backend/internal/pkg/httputil"
)

type Router struct {
	engine         *gin.Engine
	userHandler    *handler.UserHandler
	rateLimiter    *middleware.RateLimiter
	metricsEnabled bool
	swaggerEnabled bool
	logger         *zap.Logger
}

type RouterConfig struct {
	UserHandler *handler.UserHandler
	// RateLimiter may be nil, which disables rate limiting.
	RateLimiter    *middleware.RateLimiter
	MetricsEnabled bool
	SwaggerEnabled bool
	TrustedProxies []string
	Logger         *zap.Logger
	Environment    string
}

func NewRouter(cfg RouterConfig) (*Router, error) {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := handler.RegisterValidation(); err != nil {
		return nil, fmt.Errorf("registering validation rules: %w", err)
	}

	engine := gin.New()
	// Rate limits key on ClientIP, so forwarded headers count only from
	// configured proxies.
	if err := engine.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("setting trusted proxies: %w", err)
	}

	r := &Router{
		engine:         engine,
		userHandler:    cfg.UserHandler,
		rateLimiter:    cfg.RateLimiter,
		metricsEnabled: cfg.MetricsEnabled,
		swaggerEnabled: cfg.SwaggerEnabled,
		logger:         cfg.Logger,
	}

	r.setupMiddleware()
	r.setupRoutes()

	return r, nil
}

func (r *Router) setupMiddleware() {
	r.engine.Use(middleware.Recovery(r.logger))
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.Logger(r.logger))
	if r.metricsEnabled {
		r.engine.Use(middleware.Metrics())
	}

	r.engine.NoRoute(func(c *gin.Context) {
		httputil.HandleError(c, apperror.NotFound("Resource not found"))
	})
	r.engine.HandleMethodNotAllowed = true
	r.engine.NoMethod(func(c *gin.Context) {
		httputil.HandleError(c, apperror.New("METHOD_NOT_ALLOWED", "Method not allowed", http.StatusMethodNotAllowed))
	})
}

func (r *Router) setupRoutes() {
	h := r.userHandler

	r.engine.GET("/", r.limit(middleware.RouteDefault), h.Home)
	r.engine.GET("/health", r.limit(middleware.RouteDefault), h.Home)

	if r.metricsEnabled {
		r.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	// Swagger documentation
	if r.swaggerEnabled {
		r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	r.engine.GET("/users", r.limit(middleware.RouteListUsers), h.List)
	r.engine.POST("/users", r.limit(middleware.RouteCreateUser), h.Create)

	user := r.engine.Group("/user")
	{
		user.GET("/:id", r.limit(middleware.RouteGetUser), h.Get)
		user.PUT("/:id", r.limit(middleware.RouteUpdateUser), h.Update)
		user.DELETE("/:id", r.limit(middleware.RouteDeleteUser), h.Delete)
	}

	r.engine.GET("/search", r.limit(middleware.RouteSearch), h.Search)
	r.engine.POST("/login", r.limit(middleware.RouteLogin), h.Login)
}

func (r *Router) limit(route string) gin.HandlerFunc {
	if r.rateLimiter == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return r.rateLimiter.Limit(route)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
