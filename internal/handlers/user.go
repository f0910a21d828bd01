package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yukikurage/task-tracker-api/internal/dto"
	apierrors "github.com/yukikurage/task-tracker-api/internal/errors"
	"github.com/yukikurage/task-tracker-api/internal/logger"
	"github.com/yukikurage/task-tracker-api/internal/middleware"
	"github.com/yukikurage/task-tracker-api/internal/models"
	"github.com/yukikurage/task-tracker-api/internal/services"
)

// UserHandler serves the user account endpoints.
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// CreateUser registers a new user.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := dto.BuildUserFromCreateRequest(req)
	if err != nil {
		respondUserError(c, err)
		return
	}

	created, err := h.userService.CreateUser(c.Request.Context(), user)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserResponse(*created))
}

// GetUser returns a user by ID.
func (h *UserHandler) GetUser(c *gin.Context) {
	userID, ok := middleware.GetPathID(c)
	if !ok {
		apierrors.InvalidFormat(c, "Invalid id")
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(*user))
}

// UpdateUser renames the current user and optionally changes the password.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	userID, ok := requireSelf(c)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	current, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondUserError(c, err)
		return
	}

	updated, err := dto.ApplyUpdateToUser(current, req)
	if err != nil {
		respondUserError(c, err)
		return
	}

	saved, err := h.userService.UpdateUser(c.Request.Context(), userID, updated, req.OldPassword, req.NewPassword)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(*saved))
}

// DeleteUser deletes the current user and their tasks, then ends the session.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	userID, ok := requireSelf(c)
	if !ok {
		return
	}

	var req dto.DeleteUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	deleted, err := h.userService.DeleteUser(c.Request.Context(), userID, req.Password)
	if err != nil {
		respondUserError(c, err)
		return
	}

	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		logger.FromContext(c.Request.Context()).Warn().Err(err).Msg("failed to clear session")
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(*deleted))
}

// requireSelf allows a request only when the :id path parameter is the
// current user.
func requireSelf(c *gin.Context) (uuid.UUID, bool) {
	userID, pathID, ok := callerAndPathID(c)
	if !ok {
		return uuid.Nil, false
	}

	if userID != pathID {
		apierrors.Forbidden(c, "You can only modify your own account")
		return uuid.Nil, false
	}

	return userID, true
}

func callerAndPathID(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return uuid.Nil, uuid.Nil, false
	}

	pathID, ok := middleware.GetPathID(c)
	if !ok {
		apierrors.InvalidFormat(c, "Invalid id")
		return uuid.Nil, uuid.Nil, false
	}

	return userID, pathID, true
}

func respondUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, dto.ErrUsernameRequired),
		errors.Is(err, dto.ErrPasswordRequired),
		errors.Is(err, models.ErrPasswordTooLong):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrDuplicateUserID),
		errors.Is(err, services.ErrDuplicateUsername):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.InvalidCredentials(c, "")
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		logger.FromContext(c.Request.Context()).Error().Err(err).Msg("user request failed")
		apierrors.InternalError(c, "")
	}
}
