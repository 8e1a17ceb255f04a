package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/hotline-inc/hotline/internal/domain/user"
	"github.com/hotline-inc/hotline/internal/infrastructure/persistence/mappers"
	"github.com/hotline-inc/hotline/internal/infrastructure/persistence/models"
	db "github.com/hotline-inc/hotline/internal/shared/db"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	model := mappers.UserToModel(u)
	tx := db.FromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return u.SetID(model.ID)
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	var model models.UserModel
	tx := db.FromContext(ctx, r.db)

	if err := tx.Where("username = ?", username).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return mappers.UserToDomain(&model), nil
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, u *user.User) error {
	tx := db.FromContext(ctx, r.db)

	result := tx.Model(&models.UserModel{}).
		Where("id = ?", u.ID()).
		Update("last_login", u.LastLogin().UnixMilli())
	if result.Error != nil {
		return fmt.Errorf("failed to update last login: %w", result.Error)
	}
	return nil
}
