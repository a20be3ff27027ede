package handlers

import (
	"net/http"

	"github.com/jitterapp/backend/internal/middleware"
	"github.com/jitterapp/backend/internal/models"
	"github.com/jitterapp/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// StoryHandler handles HTTP requests related to stories
type StoryHandler struct {
	storyService *services.StoryService
}

// NewStoryHandler creates a new StoryHandler
func NewStoryHandler(storyService *services.StoryService) *StoryHandler {
	return &StoryHandler{storyService: storyService}
}

// RegisterStoryRoutes registers story-related routes
func (h *StoryHandler) RegisterStoryRoutes(g *echo.Group) {
	g.POST("/stories", h.CreateStory)
	g.GET("/stories/feed", h.FriendFeed)
	g.PUT("/stories/:storyId/seen", h.MarkSeen)
}

// CreateStory posts a story, optionally mentioning friends
func (h *StoryHandler) CreateStory(c echo.Context) error {
	var req models.CreateStoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	authUserID := middleware.CurrentUserID(c)

	story, err := h.storyService.CreateStory(c.Request().Context(), authUserID, &req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, story)
}

// FriendFeed lists the unexpired stories of the viewer's friends
func (h *StoryHandler) FriendFeed(c echo.Context) error {
	authUserID := middleware.CurrentUserID(c)

	stories, seen, err := h.storyService.FriendFeed(c.Request().Context(), authUserID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"stories": stories, "seen": seen})
}

// MarkSeen records that the viewer watched a story
func (h *StoryHandler) MarkSeen(c echo.Context) error {
	storyID := c.Param("storyId")
	authUserID := middleware.CurrentUserID(c)

	if err := h.storyService.MarkSeen(c.Request().Context(), authUserID, storyID); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "story seen"})
}
