package dto

import (
	"errors"
	"strings"

	"github.com/yukikurage/task-tracker-api/internal/models"
)

var (
	ErrUsernameRequired = errors.New("username is required")
	ErrPasswordRequired = errors.New("password is required")
)

// CreateUserRequest is the signup payload.
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,max=72"`
}

// UpdateUserRequest carries a new username together with the credentials
// needed to authorize the change. NewPassword may be empty to keep the
// current password.
type UpdateUserRequest struct {
	Username    string `json:"username" binding:"required,min=3,max=50"`
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password" binding:"omitempty,max=72"`
}

// DeleteUserRequest confirms an account deletion.
type DeleteUserRequest struct {
	Password string `json:"password" binding:"required"`
}

// LoginRequest holds the credentials for authentication.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

// BuildUserFromCreateRequest creates a new user with a hashed password.
func BuildUserFromCreateRequest(req CreateUserRequest) (*models.User, error) {
	if strings.TrimSpace(req.Username) == "" {
		return nil, ErrUsernameRequired
	}
	if req.Password == "" {
		return nil, ErrPasswordRequired
	}

	return models.NewUser(req.Username, req.Password)
}

// ApplyUpdateToUser sets the username only. Password fields of the request
// are left for the dedicated credential change in the user service.
func ApplyUpdateToUser(user *models.User, req UpdateUserRequest) (*models.User, error) {
	if strings.TrimSpace(req.Username) == "" {
		return nil, ErrUsernameRequired
	}

	user.Username = req.Username
	return user, nil
}

// ToUserResponse converts a User model to UserResponse
func ToUserResponse(user models.User) UserResponse {
	return UserResponse{
		UserID:   user.ID.String(),
		Username: user.Username,
	}
}
