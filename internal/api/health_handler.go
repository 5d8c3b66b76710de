package api

import (
	"context"
	"net/http"
	"time"

	"trading-admin-backend/internal/database"
	"trading-admin-backend/internal/nats"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	db         *database.DB
	redis      *redis.Client
	natsClient *nats.Client
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db *database.DB, redisClient *redis.Client, natsClient *nats.Client) *HealthHandler {
	return &HealthHandler{
		db:         db,
		redis:      redisClient,
		natsClient: natsClient,
	}
}

// HealthStatus represents the health status of a component
type HealthStatus struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// HealthResponse represents the overall health response
type HealthResponse struct {
	Status       string                  `json:"status"`
	Timestamp    string                  `json:"timestamp"`
	Dependencies map[string]HealthStatus `json:"dependencies"`
}

// LivenessProbe handles Kubernetes liveness probe
func (h *HealthHandler) LivenessProbe(c *gin.Context) {
	c.JSON(http.StatusOK, CreateSuccessResponse(gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"message":   "Service is alive",
	}, getTraceID(c)))
}

// ReadinessProbe handles Kubernetes readiness probe
func (h *HealthHandler) ReadinessProbe(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	dependencies := make(map[string]HealthStatus)
	overallHealthy := true

	dbStatus := h.checkDatabase()
	dependencies["database"] = dbStatus
	if dbStatus.Status != "healthy" {
		overallHealthy = false
	}

	redisStatus := h.checkRedis(ctx)
	dependencies["redis"] = redisStatus
	if redisStatus.Status != "healthy" {
		overallHealthy = false
	}

	// NATS is optional; a disabled publisher never fails readiness
	natsStatus := h.checkNATS()
	dependencies["nats"] = natsStatus
	if natsStatus.Status != "healthy" && natsStatus.Status != "disabled" {
		overallHealthy = false
	}

	status := "healthy"
	httpStatus := http.StatusOK
	if !overallHealthy {
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	}

	healthResponse := HealthResponse{
		Status:       status,
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
		Dependencies: dependencies,
	}

	if overallHealthy {
		c.JSON(httpStatus, CreateSuccessResponse(healthResponse, getTraceID(c)))
		return
	}

	c.JSON(httpStatus, CreateErrorResponse(
		"SERVICE_UNAVAILABLE",
		"One or more dependencies are unhealthy",
		"",
		getTraceID(c),
	))
}

func (h *HealthHandler) checkDatabase() HealthStatus {
	if h.db == nil {
		return HealthStatus{Status: "unhealthy", Message: "Database not initialized"}
	}

	if err := h.db.HealthCheck(); err != nil {
		return HealthStatus{Status: "unhealthy", Message: err.Error()}
	}

	return HealthStatus{Status: "healthy"}
}

func (h *HealthHandler) checkRedis(ctx context.Context) HealthStatus {
	if h.redis == nil {
		return HealthStatus{Status: "unhealthy", Message: "Redis not initialized"}
	}

	if err := h.redis.Ping(ctx).Err(); err != nil {
		return HealthStatus{Status: "unhealthy", Message: err.Error()}
	}

	return HealthStatus{Status: "healthy"}
}

func (h *HealthHandler) checkNATS() HealthStatus {
	if h.natsClient == nil {
		return HealthStatus{Status: "disabled", Message: "NATS messaging is disabled"}
	}

	if err := h.natsClient.HealthCheck(); err != nil {
		return HealthStatus{Status: "unhealthy", Message: err.Error()}
	}

	return HealthStatus{Status: "healthy"}
}
