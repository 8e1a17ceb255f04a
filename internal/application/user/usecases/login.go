package usecases

import (
	"context"
	"errors"

	"github.com/hotline-inc/hotline/internal/domain/user"
	"github.com/hotline-inc/hotline/internal/shared/biztime"
	apperrors "github.com/hotline-inc/hotline/internal/shared/errors"
	"github.com/hotline-inc/hotline/internal/shared/logger"
)

type LoginCommand struct {
	Username string
}

type LoginResult struct {
	User    *user.User
	Created bool
}

type LoginExecutor interface {
	Execute(ctx context.Context, cmd LoginCommand) (*LoginResult, error)
}

type LoginUseCase struct {
	userRepo   user.Repository
	normalizer *biztime.Normalizer
	logger     logger.Interface
}

func NewLoginUseCase(userRepo user.Repository, normalizer *biztime.Normalizer, logger logger.Interface) *LoginUseCase {
	return &LoginUseCase{userRepo: userRepo, normalizer: normalizer, logger: logger}
}

// Execute finds or creates the user and stamps the login time.
func (uc *LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (*LoginResult, error) {
	username, err := user.NormalizeUsername(cmd.Username)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	uc.logger.Infow("executing login use case", "username", username)
	now := uc.normalizer.Now()

	u, err := uc.userRepo.GetByUsername(ctx, username)
	switch {
	case err == nil:
		u.RecordLogin(now)
		if err := uc.userRepo.UpdateLastLogin(ctx, u); err != nil {
			uc.logger.Errorw("failed to record login", "username", username, "error", err)
			return nil, apperrors.WrapInternal(err, "failed to record login")
		}
		return &LoginResult{User: u}, nil

	case errors.Is(err, user.ErrNotFound):
		return uc.create(ctx, username, now)

	default:
		uc.logger.Errorw("failed to look up user", "username", username, "error", err)
		return nil, apperrors.WrapInternal(err, "failed to look up user")
	}
}

func (uc *LoginUseCase) create(ctx context.Context, username string, now biztime.Instant) (*LoginResult, error) {
	u, err := user.NewUser(username, now)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := uc.userRepo.Create(ctx, u); err != nil {
		if apperrors.IsDuplicateError(err) {
			// A concurrent first login created the row.
			existing, getErr := uc.userRepo.GetByUsername(ctx, username)
			if getErr == nil {
				return &LoginResult{User: existing}, nil
			}
		}
		uc.logger.Errorw("failed to create user", "username", username, "error", err)
		return nil, apperrors.WrapInternal(err, "failed to create user")
	}

	uc.logger.Infow("user created on first login", "username", username, "user_id", u.ID())
	return &LoginResult{User: u, Created: true}, nil
}
