package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"trading-admin-backend/internal/services"
	"trading-admin-backend/test/fixtures"
	"trading-admin-backend/test/mocks"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupScopeRouter(resolver *services.ScopeResolver, userID uuid.UUID, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("role", role)
		c.Next()
	})
	router.Use(ScopeMiddleware(resolver))
	router.GET("/admin", func(c *gin.Context) {
		sc, ok := GetScope(c)
		c.JSON(http.StatusOK, gin.H{
			"resolved":    ok,
			"full_access": sc.FullAccess,
			"empty":       sc.Empty(),
		})
	})
	return router
}

func TestScopeMiddleware_SuperAdmin(t *testing.T) {
	access := &mocks.MockAdminAccessRepository{}
	resolver := services.NewScopeResolver(access)
	router := setupScopeRouter(resolver, fixtures.SuperAdminID, services.RoleSuperAdmin)

	req := httptest.NewRequest("GET", "/admin", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"full_access":true`)
}

func TestScopeMiddleware_RestrictedAdmin(t *testing.T) {
	access := &mocks.MockAdminAccessRepository{}
	access.On("AccessibleUserIDs", mock.Anything, fixtures.AdminID).Return([]uuid.UUID{fixtures.UserAliceID}, nil)
	resolver := services.NewScopeResolver(access)
	router := setupScopeRouter(resolver, fixtures.AdminID, services.RoleAdmin)

	req := httptest.NewRequest("GET", "/admin", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"full_access":false`)
	assert.Contains(t, w.Body.String(), `"empty":false`)
}

func TestScopeMiddleware_NonAdminRoleRejected(t *testing.T) {
	access := &mocks.MockAdminAccessRepository{}
	resolver := services.NewScopeResolver(access)
	router := setupScopeRouter(resolver, fixtures.AdminID, "user")

	req := httptest.NewRequest("GET", "/admin", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "ACCESS_DENIED")
	access.AssertNotCalled(t, "AccessibleUserIDs", mock.Anything, mock.Anything)
}

func TestScopeMiddleware_MissingAuthRejected(t *testing.T) {
	gin.SetMode(gin.TestMode)
	access := &mocks.MockAdminAccessRepository{}
	resolver := services.NewScopeResolver(access)

	router := gin.New()
	router.Use(ScopeMiddleware(resolver))
	router.GET("/admin", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest("GET", "/admin", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
