package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/yukikurage/task-tracker-api/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// ExistsByID reports whether a task with the given id exists
func (r *GormTaskRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	return exists(ctx, r.db, &models.Task{}, "id = ?", id)
}

// FindByID finds a task by ID
func (r *GormTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	var task models.Task
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// Save inserts a new task or overwrites the mutable fields of an existing
// one. The owner is never updated.
func (r *GormTaskRepository) Save(ctx context.Context, task *models.Task) (*models.Task, error) {
	if err := saveRow(ctx, r.db, &models.Task{}, task, task.ID,
		"name", "description", "status", "due_date", "updated_at"); err != nil {
		return nil, err
	}
	return task, nil
}

// Delete hard deletes a task
func (r *GormTaskRepository) Delete(ctx context.Context, task *models.Task) error {
	result := r.db.WithContext(ctx).Where("id = ?", task.ID).Delete(&models.Task{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// FindByOwnerID lists the tasks owned by a user, oldest first
func (r *GormTaskRepository) FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]models.Task, error) {
	tasks := []models.Task{}
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC, id ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// FindAll lists every task, oldest first
func (r *GormTaskRepository) FindAll(ctx context.Context) ([]models.Task, error) {
	tasks := []models.Task{}
	if err := r.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}
