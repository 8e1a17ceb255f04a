package mappers

import (
	"github.com/hotline-inc/hotline/internal/domain/user"
	"github.com/hotline-inc/hotline/internal/infrastructure/persistence/models"
	"github.com/hotline-inc/hotline/internal/shared/biztime"
)

func UserToModel(u *user.User) *models.UserModel {
	return &models.UserModel{
		ID:        u.ID(),
		Username:  u.Username(),
		LastLogin: u.LastLogin().UnixMilli(),
		CreatedAt: u.CreatedAt().UnixMilli(),
	}
}

func UserToDomain(model *models.UserModel) *user.User {
	return user.ReconstructUser(
		model.ID,
		model.Username,
		biztime.InstantFromUnixMilli(model.LastLogin),
		biztime.InstantFromUnixMilli(model.CreatedAt),
	)
}
