package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-tracker-api/internal/dto"
	apierrors "github.com/yukikurage/task-tracker-api/internal/errors"
	"github.com/yukikurage/task-tracker-api/internal/logger"
	"github.com/yukikurage/task-tracker-api/internal/middleware"
	"github.com/yukikurage/task-tracker-api/internal/models"
	"github.com/yukikurage/task-tracker-api/internal/services"
)

// TaskHandler serves the task endpoints of the current user.
type TaskHandler struct {
	taskService *services.TaskService
	userService *services.UserService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService, userService *services.UserService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		userService: userService,
	}
}

// ListTasks returns the tasks of the current user
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	tasks, err := h.taskService.GetAllTasksByOwnerID(c.Request.Context(), userID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": dto.ToTaskResponses(tasks),
	})
}

// GetTask returns a specific task by ID
// Task is already loaded by RequireTaskAccess middleware
func (h *TaskHandler) GetTask(c *gin.Context) {
	task, exists := middleware.GetTask(c)
	if !exists {
		apierrors.NotFound(c, "Task not found")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskResponse(*task))
}

// CreateTask creates a new OPEN task owned by the current user
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	owner, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	task, err := dto.BuildTaskFromCreateRequest(req, owner)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	created, err := h.taskService.CreateTask(c.Request.Context(), task)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskResponse(*created))
}

// UpdateTask replaces name, description, status and due date of a task
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, taskID, ok := callerAndPathID(c)
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.GetTaskByTaskID(c.Request.Context(), taskID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	task, err = dto.ApplyUpdateToTask(task, req)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	updated, err := h.taskService.UpdateTask(c.Request.Context(), userID, task)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskResponse(*updated))
}

// DeleteTask deletes a task owned by the current user
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, taskID, ok := callerAndPathID(c)
	if !ok {
		return
	}

	deleted, err := h.taskService.DeleteTask(c.Request.Context(), userID, &models.Task{ID: taskID})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskResponse(*deleted))
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotAuthorized):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrDuplicateTaskID):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, dto.ErrNameRequired),
		errors.Is(err, dto.ErrInvalidDueDate),
		errors.Is(err, models.ErrInvalidTaskStatus):
		apierrors.BadRequest(c, err.Error())
	default:
		logger.FromContext(c.Request.Context()).Error().Err(err).Msg("task request failed")
		apierrors.InternalError(c, "")
	}
}
