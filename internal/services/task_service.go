package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/yukikurage/task-tracker-api/internal/logger"
	"github.com/yukikurage/task-tracker-api/internal/models"
	"github.com/yukikurage/task-tracker-api/internal/repository"
)

// TaskService handles task business logic
type TaskService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		userRepo: userRepo,
	}
}

// CreateTask persists a new task. The owner must exist and the task id must
// be unused.
func (s *TaskService) CreateTask(ctx context.Context, task *models.Task) (*models.Task, error) {
	ownerExists, err := s.userRepo.ExistsByID(ctx, task.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to check owner: %w", err)
	}
	if !ownerExists {
		return nil, ErrUserNotFound
	}

	taken, err := s.taskRepo.ExistsByID(ctx, task.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check task id: %w", err)
	}
	if taken {
		return nil, ErrDuplicateTaskID
	}

	saved, err := s.taskRepo.Save(ctx, task)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrDuplicateTaskID
		}
		logger.FromContext(ctx).Error().Err(err).Str("owner_id", task.OwnerID.String()).Msg("failed to save task")
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return saved, nil
}

// UpdateTask copies name, description, status and due date of task onto
// the stored task with the same id. Only the owner may update a task.
// The due date must already be resolved (see dto.ApplyUpdateToTask).
func (s *TaskService) UpdateTask(ctx context.Context, callerID uuid.UUID, task *models.Task) (*models.Task, error) {
	current, err := s.loadOwned(ctx, callerID, task.ID)
	if err != nil {
		return nil, err
	}

	current.Name = task.Name
	current.Description = task.Description
	current.SetStatus(task.Status)
	current.DueDate = task.DueDate

	saved, err := s.taskRepo.Save(ctx, current)
	if err != nil {
		logger.FromContext(ctx).Error().Err(err).Str("task_id", task.ID.String()).Msg("failed to save task")
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return saved, nil
}

// DeleteTask removes the stored task with the id of task and returns it.
// Only the owner may delete a task.
func (s *TaskService) DeleteTask(ctx context.Context, callerID uuid.UUID, task *models.Task) (*models.Task, error) {
	current, err := s.loadOwned(ctx, callerID, task.ID)
	if err != nil {
		return nil, err
	}

	if err := s.taskRepo.Delete(ctx, current); err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		logger.FromContext(ctx).Error().Err(err).Str("task_id", task.ID.String()).Msg("failed to delete task")
		return nil, fmt.Errorf("failed to delete task: %w", err)
	}

	return current, nil
}

// GetTaskByTaskID retrieves a task by ID.
func (s *TaskService) GetTaskByTaskID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	return task, nil
}

// GetAllTasksByOwnerID lists the tasks of a user. The result is never nil
// and belongs to the caller.
func (s *TaskService) GetAllTasksByOwnerID(ctx context.Context, userID uuid.UUID) ([]models.Task, error) {
	tasks, err := s.taskRepo.FindByOwnerID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return append(make([]models.Task, 0, len(tasks)), tasks...), nil
}

func (s *TaskService) loadOwned(ctx context.Context, callerID, taskID uuid.UUID) (*models.Task, error) {
	current, err := s.GetTaskByTaskID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if !current.OwnedBy(callerID) {
		logger.FromContext(ctx).Warn().
			Str("task_id", taskID.String()).
			Str("caller_id", callerID.String()).
			Msg("task access denied")
		return nil, ErrNotAuthorized
	}

	return current, nil
}
