package handlers

import (
	"net/http"

	"github.com/jitterapp/backend/internal/middleware"
	"github.com/jitterapp/backend/internal/models"
	"github.com/jitterapp/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// JitHandler handles HTTP requests related to jits
type JitHandler struct {
	jitService *services.JitService
}

// NewJitHandler creates a new JitHandler
func NewJitHandler(jitService *services.JitService) *JitHandler {
	return &JitHandler{jitService: jitService}
}

// RegisterJitRoutes registers jit-related routes
func (h *JitHandler) RegisterJitRoutes(g *echo.Group) {
	g.POST("/jits", h.CreateJit)
	g.GET("/jits", h.ListJits)
	g.GET("/jits/liked", h.ListLiked)
	g.GET("/jits/favorited", h.ListFavorited)
	g.GET("/jits/private", h.ListPrivate)
	g.GET("/jits/all/:userId", h.ListByAuthor)
	g.GET("/jits/public/:userId", h.ListPublicByAuthor)
	g.GET("/jits/:jitId", h.GetJit)
	g.POST("/jits/like/:jitId", h.Like)
	g.DELETE("/jits/like/:jitId", h.Unlike)
	g.POST("/jits/favorite/:jitId", h.Favorite)
	g.DELETE("/jits/favorite/:jitId", h.Unfavorite)
	g.POST("/jits/reply/:jitId", h.Reply)
	g.GET("/jits/reply/:jitId", h.ListReplies)
}

// CreateJit posts a jit; listing friendIds makes it anonymous to them only
func (h *JitHandler) CreateJit(c echo.Context) error {
	var req models.CreateJitRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	authUserID := middleware.CurrentUserID(c)

	jit, err := h.jitService.CreateJit(c.Request().Context(), authUserID, req.Content, req.FriendIDs)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, jit)
}

// GetJit returns one jit as seen by the authenticated user
func (h *JitHandler) GetJit(c echo.Context) error {
	jitID, err := paramUint(c, "jitId")
	if err != nil {
		return err
	}
	authUserID := middleware.CurrentUserID(c)

	view, err := h.jitService.GetJit(authUserID, jitID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, view)
}

// ListJits lists all jits visible to the authenticated user
func (h *JitHandler) ListJits(c echo.Context) error {
	page, size := pagination(c)
	authUserID := middleware.CurrentUserID(c)

	filter := models.JitFilter{Search: c.QueryParam("search")}
	views, total, err := h.jitService.ListJits(authUserID, filter, page, size)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, pagedResponse(views, total))
}

// ListPrivate lists the anonymous jits addressed to the authenticated user
func (h *JitHandler) ListPrivate(c echo.Context) error {
	page, size := pagination(c)
	authUserID := middleware.CurrentUserID(c)

	filter := models.JitFilter{Visibility: models.VisibilityAnonymous}
	views, total, err := h.jitService.ListJits(authUserID, filter, page, size)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, pagedResponse(views, total))
}

// ListByAuthor lists all of one author's jits visible to the viewer
func (h *JitHandler) ListByAuthor(c echo.Context) error {
	userID, err := paramUint(c, "userId")
	if err != nil {
		return err
	}
	page, size := pagination(c)
	authUserID := middleware.CurrentUserID(c)

	filter := models.JitFilter{AuthorID: userID, Search: c.QueryParam("search")}
	views, total, err := h.jitService.ListJits(authUserID, filter, page, size)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, pagedResponse(views, total))
}

// ListPublicByAuthor lists one author's public jits
func (h *JitHandler) ListPublicByAuthor(c echo.Context) error {
	userID, err := paramUint(c, "userId")
	if err != nil {
		return err
	}
	page, size := pagination(c)
	authUserID := middleware.CurrentUserID(c)

	filter := models.JitFilter{
		AuthorID:   userID,
		Visibility: models.VisibilityPublic,
		Search:     c.QueryParam("search"),
	}
	views, total, err := h.jitService.ListJits(authUserID, filter, page, size)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, pagedResponse(views, total))
}

// ListLiked lists the jits the authenticated user liked
func (h *JitHandler) ListLiked(c echo.Context) error {
	page, size := pagination(c)
	authUserID := middleware.CurrentUserID(c)

	views, total, err := h.jitService.ListLiked(authUserID, page, size)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, pagedResponse(views, total))
}

// ListFavorited lists the jits the authenticated user favorited
func (h *JitHandler) ListFavorited(c echo.Context) error {
	page, size := pagination(c)
	authUserID := middleware.CurrentUserID(c)

	views, total, err := h.jitService.ListFavorited(authUserID, page, size)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, pagedResponse(views, total))
}

// Like records a like on a visible jit
func (h *JitHandler) Like(c echo.Context) error {
	jitID, err := paramUint(c, "jitId")
	if err != nil {
		return err
	}
	authUserID := middleware.CurrentUserID(c)

	view, err := h.jitService.Like(authUserID, jitID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, view)
}

// Unlike removes a like
func (h *JitHandler) Unlike(c echo.Context) error {
	jitID, err := paramUint(c, "jitId")
	if err != nil {
		return err
	}
	authUserID := middleware.CurrentUserID(c)

	view, err := h.jitService.Unlike(authUserID, jitID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, view)
}

// Favorite records a favorite on a visible jit
func (h *JitHandler) Favorite(c echo.Context) error {
	jitID, err := paramUint(c, "jitId")
	if err != nil {
		return err
	}
	authUserID := middleware.CurrentUserID(c)

	view, err := h.jitService.Favorite(authUserID, jitID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, view)
}

// Unfavorite removes a favorite
func (h *JitHandler) Unfavorite(c echo.Context) error {
	jitID, err := paramUint(c, "jitId")
	if err != nil {
		return err
	}
	authUserID := middleware.CurrentUserID(c)

	view, err := h.jitService.Unfavorite(authUserID, jitID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, view)
}

// Reply posts a reply to a visible jit
func (h *JitHandler) Reply(c echo.Context) error {
	jitID, err := paramUint(c, "jitId")
	if err != nil {
		return err
	}
	var req models.CreateJitReplyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	authUserID := middleware.CurrentUserID(c)

	reply, err := h.jitService.Reply(authUserID, jitID, req.Content)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, reply)
}

// ListReplies lists replies to a visible jit
func (h *JitHandler) ListReplies(c echo.Context) error {
	jitID, err := paramUint(c, "jitId")
	if err != nil {
		return err
	}
	page, size := pagination(c)
	authUserID := middleware.CurrentUserID(c)

	replies, total, err := h.jitService.ListReplies(authUserID, jitID, page, size)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, pagedResponse(replies, total))
}
