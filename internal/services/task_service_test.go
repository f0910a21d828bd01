package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/task-tracker-api/internal/models"
	"github.com/yukikurage/task-tracker-api/internal/repository"
	"github.com/yukikurage/task-tracker-api/internal/repository/mock"
	"go.uber.org/mock/gomock"
)

type taskServiceMocks struct {
	tasks *mock.MockTaskRepository
	users *mock.MockUserRepository
}

func newTaskService(t *testing.T) (*TaskService, taskServiceMocks) {
	ctrl := gomock.NewController(t)
	m := taskServiceMocks{
		tasks: mock.NewMockTaskRepository(ctrl),
		users: mock.NewMockUserRepository(ctrl),
	}
	return NewTaskService(m.tasks, m.users), m
}

func TestCreateTask_Success(t *testing.T) {
	svc, m := newTaskService(t)
	ctx := context.Background()
	task := models.NewTask(uuid.New(), "Buy milk", "", nil)

	m.users.EXPECT().ExistsByID(ctx, task.OwnerID).Return(true, nil)
	m.tasks.EXPECT().ExistsByID(ctx, task.ID).Return(false, nil)
	m.tasks.EXPECT().Save(ctx, task).Return(task, nil)

	saved, err := svc.CreateTask(ctx, task)
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusOpen, saved.Status)
}

func TestCreateTask_OwnerMissing(t *testing.T) {
	svc, m := newTaskService(t)
	ctx := context.Background()
	task := models.NewTask(uuid.New(), "Buy milk", "", nil)

	m.users.EXPECT().ExistsByID(ctx, task.OwnerID).Return(false, nil)

	_, err := svc.CreateTask(ctx, task)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestCreateTask_DuplicateID(t *testing.T) {
	svc, m := newTaskService(t)
	ctx := context.Background()
	task := models.NewTask(uuid.New(), "Buy milk", "", nil)

	m.users.EXPECT().ExistsByID(ctx, task.OwnerID).Return(true, nil)
	m.tasks.EXPECT().ExistsByID(ctx, task.ID).Return(true, nil)

	_, err := svc.CreateTask(ctx, task)
	assert.ErrorIs(t, err, ErrDuplicateTaskID)
}

func TestUpdateTask_OwnerOverwritesFields(t *testing.T) {
	svc, m := newTaskService(t)
	ctx := context.Background()
	owner := uuid.New()
	due := time.Date(2030, 1, 15, 0, 0, 0, 0, time.UTC)
	stored := models.NewTask(owner, "Buy milk", "2%", &due)

	incoming := *stored
	incoming.Name = "Buy oat milk"
	incoming.Description = ""
	incoming.Status = models.TaskStatusInProgress
	incoming.DueDate = nil

	m.tasks.EXPECT().FindByID(ctx, stored.ID).Return(stored, nil)
	m.tasks.EXPECT().Save(ctx, stored).Return(stored, nil)

	saved, err := svc.UpdateTask(ctx, owner, &incoming)
	require.NoError(t, err)
	assert.Equal(t, "Buy oat milk", saved.Name)
	assert.Empty(t, saved.Description)
	assert.Equal(t, models.TaskStatusInProgress, saved.Status)
	assert.Nil(t, saved.DueDate)
	assert.Equal(t, owner, saved.OwnerID)
}

func TestUpdateTask_NotOwner(t *testing.T) {
	svc, m := newTaskService(t)
	ctx := context.Background()
	stored := models.NewTask(uuid.New(), "Buy milk", "", nil)

	incoming := *stored
	incoming.Name = "hijacked"

	m.tasks.EXPECT().FindByID(ctx, stored.ID).Return(stored, nil)

	_, err := svc.UpdateTask(ctx, uuid.New(), &incoming)
	assert.ErrorIs(t, err, ErrNotAuthorized)
	assert.Equal(t, "Buy milk", stored.Name)
}

func TestUpdateTask_NotFound(t *testing.T) {
	svc, m := newTaskService(t)
	ctx := context.Background()
	task := models.NewTask(uuid.New(), "Buy milk", "", nil)

	m.tasks.EXPECT().FindByID(ctx, task.ID).Return(nil, repository.ErrRecordNotFound)

	_, err := svc.UpdateTask(ctx, task.OwnerID, task)
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestDeleteTask(t *testing.T) {
	t.Run("owner", func(t *testing.T) {
		svc, m := newTaskService(t)
		ctx := context.Background()
		stored := models.NewTask(uuid.New(), "Buy milk", "", nil)

		m.tasks.EXPECT().FindByID(ctx, stored.ID).Return(stored, nil)
		m.tasks.EXPECT().Delete(ctx, stored).Return(nil)

		deleted, err := svc.DeleteTask(ctx, stored.OwnerID, &models.Task{ID: stored.ID})
		require.NoError(t, err)
		assert.Equal(t, "Buy milk", deleted.Name)
	})

	t.Run("not owner", func(t *testing.T) {
		svc, m := newTaskService(t)
		ctx := context.Background()
		stored := models.NewTask(uuid.New(), "Buy milk", "", nil)

		m.tasks.EXPECT().FindByID(ctx, stored.ID).Return(stored, nil)

		_, err := svc.DeleteTask(ctx, uuid.New(), stored)
		assert.ErrorIs(t, err, ErrNotAuthorized)
	})

	t.Run("not found", func(t *testing.T) {
		svc, m := newTaskService(t)
		ctx := context.Background()
		task := models.NewTask(uuid.New(), "Buy milk", "", nil)

		m.tasks.EXPECT().FindByID(ctx, task.ID).Return(nil, repository.ErrRecordNotFound)

		_, err := svc.DeleteTask(ctx, task.OwnerID, task)
		assert.ErrorIs(t, err, ErrTaskNotFound)
	})
}

func TestGetAllTasksByOwnerID(t *testing.T) {
	t.Run("empty is not nil", func(t *testing.T) {
		svc, m := newTaskService(t)
		ctx := context.Background()
		owner := uuid.New()

		m.tasks.EXPECT().FindByOwnerID(ctx, owner).Return(nil, nil)

		tasks, err := svc.GetAllTasksByOwnerID(ctx, owner)
		require.NoError(t, err)
		assert.NotNil(t, tasks)
		assert.Empty(t, tasks)
	})

	t.Run("returns a copy", func(t *testing.T) {
		svc, m := newTaskService(t)
		ctx := context.Background()
		owner := uuid.New()
		source := []models.Task{*models.NewTask(owner, "one", "", nil)}

		m.tasks.EXPECT().FindByOwnerID(ctx, owner).Return(source, nil)

		tasks, err := svc.GetAllTasksByOwnerID(ctx, owner)
		require.NoError(t, err)
		require.Len(t, tasks, 1)

		tasks[0].Name = "changed"
		assert.Equal(t, "one", source[0].Name)
	})
}
