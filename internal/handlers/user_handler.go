package handlers

import (
	"net/http"

	"github.com/jitterapp/backend/internal/middleware"
	"github.com/jitterapp/backend/internal/models"
	"github.com/jitterapp/backend/internal/repositories"
	"github.com/jitterapp/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// UserHandler handles user profile, block and device routes
type UserHandler struct {
	userRepository repositories.UserRepository
	deviceRepo     repositories.DeviceRepository
	friendService  *services.FriendService
	blockService   *services.BlockService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(
	userRepo repositories.UserRepository,
	deviceRepo repositories.DeviceRepository,
	friendService *services.FriendService,
	blockService *services.BlockService,
) *UserHandler {
	return &UserHandler{
		userRepository: userRepo,
		deviceRepo:     deviceRepo,
		friendService:  friendService,
		blockService:   blockService,
	}
}

// RegisterUserRoutes registers user-related routes
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.GET("/users", h.SearchUsers)
	g.GET("/users/:userId", h.GetUser)
	g.PUT("/users/me", h.UpdateProfile)
	g.PUT("/users/me/anonymous", h.UpdateAnonymousPref)
	g.POST("/users/block/:userId", h.BlockUser)
	g.DELETE("/users/block/:userId", h.UnblockUser)
	g.GET("/users/blocked", h.GetBlockedUsers)
	g.POST("/users/devices", h.RegisterDevice)
	g.DELETE("/users/devices", h.UnregisterDevice)
}

// SearchUsers lists users matching the search query, each row carrying the
// relationship flags as seen by the authenticated user
func (h *UserHandler) SearchUsers(c echo.Context) error {
	page, size := pagination(c)
	authUserID := middleware.CurrentUserID(c)

	views, total, err := h.friendService.SearchUsers(authUserID, c.QueryParam("search"), page, size)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, pagedResponse(views, total))
}

// GetUser returns one user with relationship flags computed for the viewer
func (h *UserHandler) GetUser(c echo.Context) error {
	userID, err := paramUint(c, "userId")
	if err != nil {
		return err
	}
	authUserID := middleware.CurrentUserID(c)

	user, err := h.userRepository.GetUserByID(userID)
	if err != nil {
		return httpError(err)
	}

	status, err := h.friendService.RelationshipStatus(authUserID, userID)
	if err != nil {
		return httpError(err)
	}
	blocked, err := h.blockService.IsBlocked(authUserID, userID)
	if err != nil {
		return httpError(err)
	}

	view := models.UserView{
		User:                    *user,
		IsFriend:                status.IsFriend,
		IsFriendRequestSent:     status.RequestSent,
		IsFriendRequestReceived: status.RequestReceived,
		IsBlocked:               blocked,
	}
	return c.JSON(http.StatusOK, view)
}

// UpdateProfile updates the authenticated user's profile fields
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req models.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	authUserID := middleware.CurrentUserID(c)

	user, err := h.userRepository.GetUserByID(authUserID)
	if err != nil {
		return httpError(err)
	}
	if req.Fullname != "" {
		user.Fullname = req.Fullname
	}
	if req.Dob != "" {
		user.Dob = req.Dob
	}
	if req.Image != "" {
		user.Image = req.Image
	}
	if req.Gender != 0 {
		user.Gender = req.Gender
	}
	if err := h.userRepository.UpdateUser(user); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateAnonymousPref toggles the opt-out of receiving anonymous jits
func (h *UserHandler) UpdateAnonymousPref(c echo.Context) error {
	var req models.UpdateAnonymousPrefRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	authUserID := middleware.CurrentUserID(c)

	if err := h.userRepository.SetBlockAnonymous(authUserID, *req.BlockAnonymous); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"block_anonymous": *req.BlockAnonymous})
}

// BlockUser blocks the user in the path
func (h *UserHandler) BlockUser(c echo.Context) error {
	userID, err := paramUint(c, "userId")
	if err != nil {
		return err
	}
	authUserID := middleware.CurrentUserID(c)

	if err := h.blockService.Block(authUserID, userID); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "blocked user"})
}

// UnblockUser removes a block
func (h *UserHandler) UnblockUser(c echo.Context) error {
	userID, err := paramUint(c, "userId")
	if err != nil {
		return err
	}
	authUserID := middleware.CurrentUserID(c)

	if err := h.blockService.Unblock(authUserID, userID); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "unblocked user"})
}

// GetBlockedUsers lists the authenticated user's blocks
func (h *UserHandler) GetBlockedUsers(c echo.Context) error {
	page, size := pagination(c)
	authUserID := middleware.CurrentUserID(c)

	blocks, total, err := h.blockService.GetBlockedUsers(authUserID, page, size, c.QueryParam("search"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, pagedResponse(blocks, total))
}

// RegisterDevice stores a push token for the authenticated user
func (h *UserHandler) RegisterDevice(c echo.Context) error {
	var req models.RegisterDeviceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	authUserID := middleware.CurrentUserID(c)

	if err := h.deviceRepo.Register(authUserID, req.Token); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "device registered"})
}

// UnregisterDevice removes a push token from the authenticated user
func (h *UserHandler) UnregisterDevice(c echo.Context) error {
	var req models.RegisterDeviceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	authUserID := middleware.CurrentUserID(c)

	if err := h.deviceRepo.Unregister(authUserID, req.Token); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "device unregistered"})
}
