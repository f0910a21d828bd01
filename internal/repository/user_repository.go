package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/yukikurage/task-tracker-api/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// ExistsByID reports whether a user with the given id exists
func (r *GormUserRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	return exists(ctx, r.db, &models.User{}, "id = ?", id)
}

// ExistsByUsername reports whether the username is taken
func (r *GormUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return exists(ctx, r.db, &models.User{}, "username = ?", username)
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername finds a user by username
func (r *GormUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Save inserts a new user or updates the username and password hash of an
// existing one
func (r *GormUserRepository) Save(ctx context.Context, user *models.User) (*models.User, error) {
	if err := saveRow(ctx, r.db, &models.User{}, user, user.ID, "username", "password_hash", "updated_at"); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes a user and all tasks they own in a transaction
func (r *GormUserRepository) Delete(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Delete all tasks owned by the user
		if err := tx.Where("owner_id = ?", user.ID).Delete(&models.Task{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", user.ID).Delete(&models.User{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrRecordNotFound
		}

		return nil
	})
}
