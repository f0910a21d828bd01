package dto

import (
	"errors"
	"strings"
	"time"

	"github.com/yukikurage/task-tracker-api/internal/constants"
	"github.com/yukikurage/task-tracker-api/internal/models"
)

var (
	ErrNameRequired   = errors.New("task name is required")
	ErrInvalidDueDate = errors.New("due date must be formatted as YYYY-MM-DD")
)

// CreateTaskRequest is the payload for creating a task.
// Status is accepted for compatibility but ignored: new tasks are always OPEN.
type CreateTaskRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description"`
	Status      string `json:"status,omitempty"`
	DueDate     string `json:"due_date,omitempty"`
}

// UpdateTaskRequest replaces every mutable field of a task.
// An empty Name or DueDate overwrites the stored value; an empty DueDate
// clears the due date.
type UpdateTaskRequest struct {
	Name        string `json:"name" binding:"max=255"`
	Description string `json:"description"`
	Status      string `json:"status"`
	DueDate     string `json:"due_date,omitempty"`
}

// TaskResponse represents a task in API responses
type TaskResponse struct {
	TaskID      string  `json:"task_id"`
	OwnerID     string  `json:"owner_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	DueDate     *string `json:"due_date,omitempty"`
}

// BuildTaskFromCreateRequest builds a new OPEN task owned by owner.
func BuildTaskFromCreateRequest(req CreateTaskRequest, owner *models.User) (*models.Task, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}

	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		return nil, err
	}

	return models.NewTask(owner.ID, req.Name, req.Description, dueDate), nil
}

// ApplyUpdateToTask overwrites name, description, status and due date of task.
// The task is not modified when the request is invalid.
func ApplyUpdateToTask(task *models.Task, req UpdateTaskRequest) (*models.Task, error) {
	status, err := models.ParseTaskStatus(req.Status)
	if err != nil {
		return nil, err
	}

	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		return nil, err
	}

	task.Name = req.Name
	task.Description = req.Description
	task.SetStatus(status)
	task.DueDate = dueDate

	return task, nil
}

// ToTaskResponse converts a Task model to TaskResponse
func ToTaskResponse(task models.Task) TaskResponse {
	resp := TaskResponse{
		TaskID:      task.ID.String(),
		OwnerID:     task.OwnerID.String(),
		Name:        task.Name,
		Description: task.Description,
		Status:      task.Status.String(),
	}

	if task.HasDueDate() {
		due := task.DueDate.Format(constants.DateLayout)
		resp.DueDate = &due
	}

	return resp
}

// ToTaskResponses converts a slice of tasks. The result is never nil.
func ToTaskResponses(tasks []models.Task) []TaskResponse {
	items := make([]TaskResponse, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskResponse(task)
	}
	return items
}

// parseDueDate returns nil for an empty string.
func parseDueDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	due, err := time.ParseInLocation(constants.DateLayout, raw, time.UTC)
	if err != nil {
		return nil, ErrInvalidDueDate
	}
	return &due, nil
}
