package services

import (
	"errors"

	"github.com/yukikurage/task-tracker-api/internal/models"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrTaskNotFound      = errors.New("task not found")
	ErrDuplicateUserID   = errors.New("user id already exists")
	ErrDuplicateUsername = errors.New("username already exists")
	ErrDuplicateTaskID   = errors.New("task id already exists")
	ErrNotAuthorized     = errors.New("user is not the owner of the task")

	// ErrInvalidCredentials is the models value so that errors.Is matches
	// failures from both layers.
	ErrInvalidCredentials = models.ErrInvalidCredentials
)
