package handlers

import (
	"net/http"

	"github.com/jitterapp/backend/internal/middleware"
	"github.com/jitterapp/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FriendshipHandler handles HTTP requests related to friendships
type FriendshipHandler struct {
	friendService *services.FriendService
}

// NewFriendshipHandler creates a new FriendshipHandler
func NewFriendshipHandler(friendService *services.FriendService) *FriendshipHandler {
	return &FriendshipHandler{friendService: friendService}
}

// RegisterFriendshipRoutes registers friendship-related routes
func (h *FriendshipHandler) RegisterFriendshipRoutes(g *echo.Group) {
	g.POST("/friends/:userId", h.SendFriendRequest)
	g.PUT("/friends/:requesterId", h.AcceptFriendRequest)
	g.DELETE("/friends/:friendId", h.Unfriend)
	g.DELETE("/friends/requests/received/:requesterId", h.RejectFriendRequest)
	g.DELETE("/friends/requests/sent/:requesteeId", h.CancelFriendRequest)
	g.GET("/friends", h.GetFriends)
	g.GET("/friends/requests/sent", h.GetRequestsSent)
	g.GET("/friends/requests/received", h.GetRequestsReceived)
}

// SendFriendRequest sends a friend request to the user in the path
func (h *FriendshipHandler) SendFriendRequest(c echo.Context) error {
	userID, err := paramUint(c, "userId")
	if err != nil {
		return err
	}
	authUserID := middleware.CurrentUserID(c)

	request, err := h.friendService.SendRequest(c.Request().Context(), authUserID, userID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, request)
}

// AcceptFriendRequest accepts the pending request from the user in the path
func (h *FriendshipHandler) AcceptFriendRequest(c echo.Context) error {
	requesterID, err := paramUint(c, "requesterId")
	if err != nil {
		return err
	}
	authUserID := middleware.CurrentUserID(c)

	if err := h.friendService.AcceptRequest(c.Request().Context(), authUserID, requesterID); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "accepted friend request"})
}

// Unfriend dissolves an existing friendship
func (h *FriendshipHandler) Unfriend(c echo.Context) error {
	friendID, err := paramUint(c, "friendId")
	if err != nil {
		return err
	}
	authUserID := middleware.CurrentUserID(c)

	if err := h.friendService.Unfriend(c.Request().Context(), authUserID, friendID); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "canceled friend"})
}

// RejectFriendRequest rejects a received pending request
func (h *FriendshipHandler) RejectFriendRequest(c echo.Context) error {
	requesterID, err := paramUint(c, "requesterId")
	if err != nil {
		return err
	}
	authUserID := middleware.CurrentUserID(c)

	if err := h.friendService.RejectRequest(c.Request().Context(), authUserID, requesterID); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "rejected friend request"})
}

// CancelFriendRequest withdraws a sent pending request
func (h *FriendshipHandler) CancelFriendRequest(c echo.Context) error {
	requesteeID, err := paramUint(c, "requesteeId")
	if err != nil {
		return err
	}
	authUserID := middleware.CurrentUserID(c)

	if err := h.friendService.CancelRequest(c.Request().Context(), authUserID, requesteeID); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "canceled friend request"})
}

// GetFriends lists the authenticated user's friends
func (h *FriendshipHandler) GetFriends(c echo.Context) error {
	page, size := pagination(c)
	authUserID := middleware.CurrentUserID(c)

	friends, total, err := h.friendService.GetFriends(authUserID, page, size, c.QueryParam("search"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, pagedResponse(friends, total))
}

// GetRequestsSent lists the authenticated user's outgoing pending requests
func (h *FriendshipHandler) GetRequestsSent(c echo.Context) error {
	page, size := pagination(c)
	authUserID := middleware.CurrentUserID(c)

	requests, total, err := h.friendService.GetRequestsSent(authUserID, page, size)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, pagedResponse(requests, total))
}

// GetRequestsReceived lists the authenticated user's incoming pending requests
func (h *FriendshipHandler) GetRequestsReceived(c echo.Context) error {
	page, size := pagination(c)
	authUserID := middleware.CurrentUserID(c)

	requests, total, err := h.friendService.GetRequestsReceived(authUserID, page, size)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, pagedResponse(requests, total))
}
