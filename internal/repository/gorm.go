package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// saveRow inserts value when no row of model's table has the given id and
// updates the listed columns otherwise. Unlike gorm's Save it never issues
// an upsert.
func saveRow(ctx context.Context, db *gorm.DB, model, value any, id uuid.UUID, columns ...string) error {
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}

		if count == 0 {
			return tx.Create(value).Error
		}

		return tx.Model(value).Select(columns).Updates(value).Error
	})
	return translateError(err)
}

func exists(ctx context.Context, db *gorm.DB, model any, query string, args ...any) (bool, error) {
	var count int64
	if err := db.WithContext(ctx).Model(model).Where(query, args...).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
