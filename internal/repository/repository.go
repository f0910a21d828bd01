package repository

//go:generate mockgen -source=repository.go -destination=mock/repository_mock.go -package=mock

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/yukikurage/task-tracker-api/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrRecordNotFound is returned by Find* methods when nothing matches.
	ErrRecordNotFound = gorm.ErrRecordNotFound

	// ErrDuplicateKey is returned by Save when the store rejects a row
	// because of a unique constraint.
	ErrDuplicateKey = errors.New("repository: duplicate key")
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// ExistsByID reports whether a user with the given id exists
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)

	// ExistsByUsername reports whether the username is taken
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(ctx context.Context, username string) (*models.User, error)

	// Save inserts or updates a user
	Save(ctx context.Context, user *models.User) (*models.User, error)

	// Delete removes a user together with the tasks they own
	Delete(ctx context.Context, user *models.User) error
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// ExistsByID reports whether a task with the given id exists
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)

	// FindByID finds a task by ID. The result is a detached copy; changes
	// to it are stored only through Save, which writes every mutable field
	// including the due date.
	FindByID(ctx context.Context, id uuid.UUID) (*models.Task, error)

	// Save inserts or updates a task
	Save(ctx context.Context, task *models.Task) (*models.Task, error)

	// Delete removes a task
	Delete(ctx context.Context, task *models.Task) error

	// FindByOwnerID lists the tasks owned by a user
	FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]models.Task, error)

	// FindAll lists every task
	FindAll(ctx context.Context) ([]models.Task, error)
}
