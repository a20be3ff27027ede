package handlers

import (
	"net/http"

	"github.com/jitterapp/backend/internal/middleware"
	"github.com/jitterapp/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// ActivityHandler serves the notification feed
type ActivityHandler struct {
	activityRepository repositories.ActivityRepository
}

// NewActivityHandler creates a new ActivityHandler
func NewActivityHandler(activityRepo repositories.ActivityRepository) *ActivityHandler {
	return &ActivityHandler{activityRepository: activityRepo}
}

// RegisterActivityRoutes registers activity-related routes
func (h *ActivityHandler) RegisterActivityRoutes(g *echo.Group) {
	g.GET("/activities", h.GetActivities)
}

// GetActivities lists the authenticated user's activity feed, newest first
func (h *ActivityHandler) GetActivities(c echo.Context) error {
	page, size := pagination(c)
	authUserID := middleware.CurrentUserID(c)

	activities, total, err := h.activityRepository.GetByUserID(authUserID, page, size)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, pagedResponse(activities, total))
}
