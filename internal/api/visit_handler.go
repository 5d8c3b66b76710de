package api

import (
	"net/http"

	"trading-admin-backend/internal/middleware"
	"trading-admin-backend/internal/tracking"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// VisitHandler handles visitor tracking endpoints
type VisitHandler struct {
	visitors VisitorServiceInterface
}

// NewVisitHandler creates a new visit handler
func NewVisitHandler(visitors VisitorServiceInterface) *VisitHandler {
	return &VisitHandler{
		visitors: visitors,
	}
}

// RecordVisit reports a signed-in visit. Tracking failures never surface
// to the caller; the response always reflects the current tracking state.
func (h *VisitHandler) RecordVisit(c *gin.Context) {
	token, _ := middleware.GetSessionToken(c)

	visit := tracking.Visit{
		Session:   &tracking.Session{Token: token},
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}

	var actorID *uuid.UUID
	if id, exists := middleware.GetUserID(c); exists {
		actorID = &id
	}

	status := h.visitors.RecordSignIn(c.Request.Context(), actorID, visit)

	c.JSON(http.StatusOK, CreateSuccessResponse(gin.H{
		"status": status.String(),
	}, getTraceID(c)))
}

// GetVisitStatus reports whether the current session has been tracked
func (h *VisitHandler) GetVisitStatus(c *gin.Context) {
	c.JSON(http.StatusOK, CreateSuccessResponse(gin.H{
		"status": h.visitors.Status().String(),
	}, getTraceID(c)))
}
