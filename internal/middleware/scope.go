package middleware

import (
	"net/http"

	"trading-admin-backend/internal/scope"
	"trading-admin-backend/internal/services"

	"github.com/gin-gonic/gin"
)

const scopeContextKey = "access_scope"

// ScopeMiddleware resolves the authenticated admin's access scope and
// stores it on the request context. Must run after AuthMiddleware. Only
// admin roles pass; everyone else is rejected before any query runs.
func ScopeMiddleware(resolver *services.ScopeResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		adminID, exists := GetUserID(c)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "AUTH_REQUIRED",
					"message": "Authentication required",
				},
			})
			c.Abort()
			return
		}

		role, _ := GetRole(c)
		if role != services.RoleAdmin && role != services.RoleSuperAdmin {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "ACCESS_DENIED",
					"message": "Admin access required",
				},
			})
			c.Abort()
			return
		}

		sc, err := resolver.Resolve(c.Request.Context(), adminID, role)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "SCOPE_RESOLUTION_FAILED",
					"message": "Failed to resolve access scope",
				},
			})
			c.Abort()
			return
		}

		c.Set(scopeContextKey, sc)
		c.Next()
	}
}

// GetScope extracts the resolved access scope from gin context
func GetScope(c *gin.Context) (scope.AccessScope, bool) {
	value, exists := c.Get(scopeContextKey)
	if !exists {
		return scope.AccessScope{}, false
	}

	sc, ok := value.(scope.AccessScope)
	return sc, ok
}
