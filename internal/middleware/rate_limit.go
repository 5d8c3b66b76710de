package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimiter represents a token bucket rate limiter
type RateLimiter struct {
	tokens     int
	maxTokens  int
	refillRate time.Duration
	lastRefill time.Time
	mutex      sync.Mutex
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(maxTokens int, refillRate time.Duration) *RateLimiter {
	return &RateLimiter{
		tokens:     maxTokens,
		maxTokens:  maxTokens,
		refillRate: refillRate,
		lastRefill: time.Now(),
	}
}

// Allow checks if a request is allowed
func (rl *RateLimiter) Allow() bool {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	now := time.Now()
	elapsed := now.Sub(rl.lastRefill)
	tokensToAdd := int(elapsed / rl.refillRate)

	if tokensToAdd > 0 {
		rl.tokens += tokensToAdd
		if rl.tokens > rl.maxTokens {
			rl.tokens = rl.maxTokens
		}
		rl.lastRefill = now
	}

	if rl.tokens > 0 {
		rl.tokens--
		return true
	}

	return false
}

// GetTokens returns the current number of available tokens
func (rl *RateLimiter) GetTokens() int {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()
	return rl.tokens
}

// RateLimitStore manages rate limiters for different keys
type RateLimitStore struct {
	limiters   map[string]*RateLimiter
	mutex      sync.RWMutex
	maxTokens  int
	refillRate time.Duration
}

// NewRateLimitStore creates a new rate limit store
func NewRateLimitStore(maxTokens int, refillRate time.Duration) *RateLimitStore {
	return &RateLimitStore{
		limiters:   make(map[string]*RateLimiter),
		maxTokens:  maxTokens,
		refillRate: refillRate,
	}
}

// GetLimiter gets or creates a rate limiter for a key
func (rls *RateLimitStore) GetLimiter(key string) *RateLimiter {
	rls.mutex.RLock()
	limiter, exists := rls.limiters[key]
	rls.mutex.RUnlock()

	if exists {
		return limiter
	}

	rls.mutex.Lock()
	defer rls.mutex.Unlock()

	// Check again in case another goroutine created it
	if limiter, exists := rls.limiters[key]; exists {
		return limiter
	}

	limiter = NewRateLimiter(rls.maxTokens, rls.refillRate)
	rls.limiters[key] = limiter
	return limiter
}

// RateLimitConfig represents rate limiting configuration
type RateLimitConfig struct {
	RequestsPerHour int
	WindowDuration  time.Duration
	KeyFunc         func(*gin.Context) string
}

// UserKeyFunc generates a rate limit key based on user ID, falling back
// to client IP for unauthenticated requests
func UserKeyFunc(c *gin.Context) string {
	userID, exists := GetUserID(c)
	if exists {
		return fmt.Sprintf("user:%s", userID.String())
	}
	return c.ClientIP()
}

// RateLimitMiddleware creates a rate limiting middleware
func RateLimitMiddleware(config RateLimitConfig) gin.HandlerFunc {
	if config.KeyFunc == nil {
		config.KeyFunc = func(c *gin.Context) string { return c.ClientIP() }
	}

	if config.WindowDuration == 0 {
		config.WindowDuration = time.Hour
	}

	refillRate := config.WindowDuration / time.Duration(config.RequestsPerHour)
	store := NewRateLimitStore(config.RequestsPerHour, refillRate)

	return func(c *gin.Context) {
		key := config.KeyFunc(c)
		limiter := store.GetLimiter(key)

		if !limiter.Allow() {
			resetTime := time.Now().Add(refillRate).Unix()

			c.Header("X-RateLimit-Limit", strconv.Itoa(config.RequestsPerHour))
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("X-RateLimit-Reset", strconv.FormatInt(resetTime, 10))

			c.JSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "RATE_LIMIT_EXCEEDED",
					"message": "Rate limit exceeded. Please try again later.",
				},
			})
			c.Abort()
			return
		}

		remaining := limiter.GetTokens()
		resetTime := time.Now().Add(refillRate).Unix()

		c.Header("X-RateLimit-Limit", strconv.Itoa(config.RequestsPerHour))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetTime, 10))

		c.Next()
	}
}

// APIRateLimitMiddleware applies general rate limiting for API endpoints
func APIRateLimitMiddleware() gin.HandlerFunc {
	return RateLimitMiddleware(RateLimitConfig{
		RequestsPerHour: 1000,
		WindowDuration:  time.Hour,
		KeyFunc:         UserKeyFunc,
	})
}
