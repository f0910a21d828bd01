package middleware

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yukikurage/task-tracker-api/internal/constants"
	apierrors "github.com/yukikurage/task-tracker-api/internal/errors"
	"github.com/yukikurage/task-tracker-api/internal/models"
	"github.com/yukikurage/task-tracker-api/internal/services"
)

// TaskLoader is the part of the task service RequireTaskAccess needs.
type TaskLoader interface {
	GetTaskByTaskID(ctx context.Context, id uuid.UUID) (*models.Task, error)
}

// RequireTaskAccess loads the task named by the :id path parameter and
// checks that the current user owns it. Must run after RequireAuth and
// RequireUUIDParam("id").
func RequireTaskAccess(tasks TaskLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		taskID, ok := GetPathID(c)
		if !ok {
			apierrors.BadRequest(c, "Invalid task ID")
			c.Abort()
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		task, err := tasks.GetTaskByTaskID(c.Request.Context(), taskID)
		if err != nil {
			if errors.Is(err, services.ErrTaskNotFound) {
				apierrors.NotFound(c, "Task not found")
			} else {
				apierrors.InternalError(c, "")
			}
			c.Abort()
			return
		}

		// Return 404 instead of 403 to avoid leaking task existence
		if !task.OwnedBy(userID) {
			apierrors.NotFound(c, "Task not found")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyTask, task)
		c.Next()
	}
}

// GetTask retrieves the task loaded by RequireTaskAccess
func GetTask(c *gin.Context) (*models.Task, bool) {
	value, exists := c.Get(constants.ContextKeyTask)
	if !exists {
		return nil, false
	}

	task, ok := value.(*models.Task)
	return task, ok
}
