package middleware

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// LogEntry represents a structured log entry
type LogEntry struct {
	Timestamp  time.Time  `json:"timestamp"`
	RequestID  string     `json:"request_id"`
	Method     string     `json:"method"`
	Path       string     `json:"path"`
	Query      string     `json:"query,omitempty"`
	StatusCode int        `json:"status_code"`
	Duration   float64    `json:"duration_ms"`
	ClientIP   string     `json:"client_ip"`
	UserAgent  string     `json:"user_agent"`
	UserID     *uuid.UUID `json:"user_id,omitempty"`
	Username   *string    `json:"username,omitempty"`
	Error      *string    `json:"error,omitempty"`
	Level      string     `json:"level"`
	Service    string     `json:"service"`
}

// LoggingMiddleware creates a structured logging middleware
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Header("X-Request-ID", requestID)

		c.Next()

		duration := time.Since(start)

		var userID *uuid.UUID
		var username *string
		if id, exists := GetUserID(c); exists {
			userID = &id
		}
		if name, exists := GetUsername(c); exists {
			username = &name
		}

		var errorMsg *string
		if len(c.Errors) > 0 {
			err := c.Errors.Last().Error()
			errorMsg = &err
		}

		level := "info"
		statusCode := c.Writer.Status()
		if statusCode >= 400 && statusCode < 500 {
			level = "warn"
		} else if statusCode >= 500 {
			level = "error"
		}

		logEntry := LogEntry{
			Timestamp:  start,
			RequestID:  requestID,
			Method:     c.Request.Method,
			Path:       c.Request.URL.Path,
			Query:      c.Request.URL.RawQuery,
			StatusCode: statusCode,
			Duration:   float64(duration.Nanoseconds()) / 1000000,
			ClientIP:   c.ClientIP(),
			UserAgent:  c.Request.UserAgent(),
			UserID:     userID,
			Username:   username,
			Error:      errorMsg,
			Level:      level,
			Service:    "trading-admin-backend",
		}

		logJSON, err := json.Marshal(logEntry)
		if err != nil {
			log.Printf("Failed to marshal log entry: %v", err)
			return
		}

		log.Println(string(logJSON))
	}
}

// ErrorLoggingMiddleware logs panics with request detail and returns a 500
func ErrorLoggingMiddleware() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		errorEntry := map[string]interface{}{
			"timestamp":   time.Now(),
			"request_id":  requestID,
			"level":       "error",
			"service":     "trading-admin-backend",
			"type":        "panic_recovery",
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"client_ip":   c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
			"panic_value": recovered,
		}

		errorJSON, err := json.Marshal(errorEntry)
		if err != nil {
			log.Printf("Failed to marshal error entry: %v", err)
		} else {
			log.Println(string(errorJSON))
		}

		c.JSON(500, gin.H{
			"success": false,
			"error": gin.H{
				"code":       "INTERNAL_ERROR",
				"message":    "Internal server error",
				"request_id": requestID,
			},
		})
	})
}
