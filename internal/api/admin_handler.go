package api

import (
	"errors"
	"net/http"

	"trading-admin-backend/internal/middleware"
	"trading-admin-backend/internal/repositories"
	"trading-admin-backend/internal/scope"

	"github.com/gin-gonic/gin"
)

// AdminHandler handles the scoped dashboard query endpoints
type AdminHandler struct {
	queries AdminQueryServiceInterface
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(queries AdminQueryServiceInterface) *AdminHandler {
	return &AdminHandler{
		queries: queries,
	}
}

// getTraceID extracts the request ID for response metadata
func getTraceID(c *gin.Context) string {
	if requestID, exists := c.Get("request_id"); exists {
		if id, ok := requestID.(string); ok {
			return id
		}
	}
	return ""
}

// requestScope pulls the resolved access scope set by ScopeMiddleware.
func requestScope(c *gin.Context) (scope.AccessScope, bool) {
	sc, exists := middleware.GetScope(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, CreateErrorResponse(
			"AUTH_REQUIRED",
			"Authentication required",
			"",
			getTraceID(c),
		))
	}
	return sc, exists
}

func (h *AdminHandler) respondQueryError(c *gin.Context, err error) {
	if errors.Is(err, repositories.ErrScopeNotResolved) {
		// Not a failure: the scope is still resolving and no cached data
		// exists yet. The dashboard treats this as "no data yet".
		c.JSON(http.StatusTooEarly, CreateErrorResponse(
			"SCOPE_PENDING",
			"Access scope resolution in progress",
			"",
			getTraceID(c),
		))
		return
	}

	c.JSON(http.StatusInternalServerError, CreateErrorResponse(
		"QUERY_FAILED",
		"Failed to query dashboard data",
		err.Error(),
		getTraceID(c),
	))
}

// GetDashboardStats retrieves the scoped dashboard aggregates
func (h *AdminHandler) GetDashboardStats(c *gin.Context) {
	sc, ok := requestScope(c)
	if !ok {
		return
	}

	stats, err := h.queries.DashboardStats(c.Request.Context(), sc)
	if err != nil {
		h.respondQueryError(c, err)
		return
	}

	c.JSON(http.StatusOK, CreateSuccessResponse(stats, getTraceID(c)))
}

// ListUsers retrieves the users visible to the admin
func (h *AdminHandler) ListUsers(c *gin.Context) {
	sc, ok := requestScope(c)
	if !ok {
		return
	}

	users, err := h.queries.ListUsers(c.Request.Context(), sc)
	if err != nil {
		h.respondQueryError(c, err)
		return
	}

	c.JSON(http.StatusOK, CreateSuccessResponse(users, getTraceID(c)))
}

// ListTrades retrieves the most recent trades visible to the admin
func (h *AdminHandler) ListTrades(c *gin.Context) {
	sc, ok := requestScope(c)
	if !ok {
		return
	}

	trades, err := h.queries.ListTrades(c.Request.Context(), sc)
	if err != nil {
		h.respondQueryError(c, err)
		return
	}

	c.JSON(http.StatusOK, CreateSuccessResponse(trades, getTraceID(c)))
}

// ListRechargeCodes retrieves the recharge codes visible to the admin
func (h *AdminHandler) ListRechargeCodes(c *gin.Context) {
	sc, ok := requestScope(c)
	if !ok {
		return
	}

	codes, err := h.queries.ListRechargeCodes(c.Request.Context(), sc)
	if err != nil {
		h.respondQueryError(c, err)
		return
	}

	c.JSON(http.StatusOK, CreateSuccessResponse(codes, getTraceID(c)))
}

// ListBalances retrieves the user balances visible to the admin
func (h *AdminHandler) ListBalances(c *gin.Context) {
	sc, ok := requestScope(c)
	if !ok {
		return
	}

	balances, err := h.queries.ListBalances(c.Request.Context(), sc)
	if err != nil {
		h.respondQueryError(c, err)
		return
	}

	c.JSON(http.StatusOK, CreateSuccessResponse(balances, getTraceID(c)))
}

// ListWithdrawRequests retrieves the withdraw requests visible to the admin
func (h *AdminHandler) ListWithdrawRequests(c *gin.Context) {
	sc, ok := requestScope(c)
	if !ok {
		return
	}

	requests, err := h.queries.ListWithdrawRequests(c.Request.Context(), sc)
	if err != nil {
		h.respondQueryError(c, err)
		return
	}

	c.JSON(http.StatusOK, CreateSuccessResponse(requests, getTraceID(c)))
}

// Prefetch warms all dashboard cache entries ahead of navigation. Always
// succeeds: individual fetch failures are absorbed by the caching layer.
func (h *AdminHandler) Prefetch(c *gin.Context) {
	sc, ok := requestScope(c)
	if !ok {
		return
	}

	h.queries.PrefetchAll(c.Request.Context(), sc)

	c.JSON(http.StatusOK, CreateSuccessResponse(gin.H{
		"prefetched": sc.ActorKnown() && sc.Ready(),
	}, getTraceID(c)))
}
