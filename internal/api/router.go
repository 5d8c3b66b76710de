package api

import (
	"time"

	"trading-admin-backend/internal/cache"
	"trading-admin-backend/internal/config"
	"trading-admin-backend/internal/database"
	"trading-admin-backend/internal/metrics"
	"trading-admin-backend/internal/middleware"
	"trading-admin-backend/internal/nats"
	"trading-admin-backend/internal/repositories"
	"trading-admin-backend/internal/services"
	"trading-admin-backend/internal/tracking"
	"trading-admin-backend/pkg/auth"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server represents the API server
type Server struct {
	router         *gin.Engine
	config         *config.Config
	db             *database.DB
	redisClient    *redis.Client
	natsClient     *nats.Client
	repos          *repositories.Repositories
	jwtManager     *auth.JWTManager
	metrics        *metrics.Metrics
	scopeResolver  *services.ScopeResolver
	queryService   *services.AdminQueryService
	visitorService *services.VisitorService
}

// NewServer creates a new API server. The NATS client may be nil, in
// which case event publishing is disabled.
func NewServer(cfg *config.Config, db *database.DB, redisClient *redis.Client, natsClient *nats.Client) *Server {
	m := metrics.NewMetrics()

	jwtManager := auth.NewJWTManager(
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.JWTExpiration)*time.Second,
	)

	repos := repositories.NewRepositories(db.DB)

	queryCache := cache.New(cache.NewRedisStore(redisClient), m)
	publisher := nats.NewPublisher(natsClient, m)

	tracker := tracking.NewTracker(cfg.Tracking, m, publisher)

	return &Server{
		config:         cfg,
		db:             db,
		redisClient:    redisClient,
		natsClient:     natsClient,
		repos:          repos,
		jwtManager:     jwtManager,
		metrics:        m,
		scopeResolver:  services.NewScopeResolver(repos.AdminAccess),
		queryService:   services.NewAdminQueryService(repos, queryCache, m, publisher),
		visitorService: services.NewVisitorService(tracker, repos.User),
	}
}

// SetupRoutes sets up all API routes
func (s *Server) SetupRoutes() *gin.Engine {
	router := gin.New()

	var allowedOrigins []string
	if s.config.Environment == "production" {
		allowedOrigins = []string{"https://admin.example.com"}
	} else {
		allowedOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	}

	// Global middleware
	router.Use(middleware.ErrorLoggingMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(allowedOrigins))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(s.metrics.GinMiddleware())

	s.setupHealthRoutes(router)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/v1")
	api.Use(middleware.APIRateLimitMiddleware())

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(s.jwtManager))

	s.setupVisitRoutes(protected)
	s.setupAdminRoutes(protected)

	s.router = router
	return router
}

// setupHealthRoutes sets up health check routes
func (s *Server) setupHealthRoutes(router *gin.Engine) {
	healthHandler := NewHealthHandler(s.db, s.redisClient, s.natsClient)

	router.GET("/health/live", healthHandler.LivenessProbe)
	router.GET("/health/ready", healthHandler.ReadinessProbe)
}

// setupVisitRoutes sets up visitor tracking routes
func (s *Server) setupVisitRoutes(protected *gin.RouterGroup) {
	visitHandler := NewVisitHandler(s.visitorService)

	visits := protected.Group("/visits")
	visits.POST("", visitHandler.RecordVisit)
	visits.GET("/status", visitHandler.GetVisitStatus)
}

// setupAdminRoutes sets up the scoped dashboard query routes
func (s *Server) setupAdminRoutes(protected *gin.RouterGroup) {
	adminHandler := NewAdminHandler(s.queryService)

	admin := protected.Group("/admin")
	admin.Use(middleware.ScopeMiddleware(s.scopeResolver))

	admin.GET("/stats", adminHandler.GetDashboardStats)
	admin.GET("/users", adminHandler.ListUsers)
	admin.GET("/trades", adminHandler.ListTrades)
	admin.GET("/recharge-codes", adminHandler.ListRechargeCodes)
	admin.GET("/balances", adminHandler.ListBalances)
	admin.GET("/withdrawals", adminHandler.ListWithdrawRequests)
	admin.POST("/prefetch", adminHandler.Prefetch)
}
