package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hotline-inc/hotline/internal/domain/savedfield"
	"github.com/hotline-inc/hotline/internal/infrastructure/persistence/models"
	db "github.com/hotline-inc/hotline/internal/shared/db"
)

type SavedFieldRepository struct {
	db *gorm.DB
}

func NewSavedFieldRepository(db *gorm.DB) *SavedFieldRepository {
	return &SavedFieldRepository{db: db}
}

func (r *SavedFieldRepository) Insert(ctx context.Context, ft savedfield.FieldType, value string) (bool, error) {
	model := &models.SavedFieldModel{Type: ft.String(), Value: value}
	tx := db.FromContext(ctx, r.db)

	result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(model)
	if result.Error != nil {
		return false, fmt.Errorf("failed to insert saved field: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *SavedFieldRepository) Delete(ctx context.Context, ft savedfield.FieldType, value string) (bool, error) {
	tx := db.FromContext(ctx, r.db)

	result := tx.Where("type = ? AND value = ?", ft.String(), value).Delete(&models.SavedFieldModel{})
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete saved field: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *SavedFieldRepository) List(ctx context.Context) (*savedfield.Grouped, error) {
	var rows []models.SavedFieldModel
	tx := db.FromContext(ctx, r.db)

	if err := tx.Order("type ASC").Order("value ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list saved fields: %w", err)
	}

	grouped := savedfield.NewGrouped()
	for _, row := range rows {
		grouped.Add(savedfield.FieldType(row.Type), row.Value)
	}
	return grouped, nil
}
