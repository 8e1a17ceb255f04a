package usecases

import (
	"context"

	"github.com/hotline-inc/hotline/internal/domain/savedfield"
	apperrors "github.com/hotline-inc/hotline/internal/shared/errors"
	"github.com/hotline-inc/hotline/internal/shared/logger"
)

type RememberCommand struct {
	Type  string
	Value string
}

type RememberUseCase struct {
	repo   savedfield.Repository
	cache  Cache
	logger logger.Interface
}

func NewRememberUseCase(repo savedfield.Repository, cache Cache, logger logger.Interface) *RememberUseCase {
	return &RememberUseCase{repo: repo, cache: cache, logger: logger}
}

// Execute stores the value once per type and reports whether it was new.
// Empty values are ignored.
func (uc *RememberUseCase) Execute(ctx context.Context, cmd RememberCommand) (bool, error) {
	ft, err := savedfield.NewFieldType(cmd.Type)
	if err != nil {
		return false, apperrors.NewValidationError(err.Error())
	}
	value := savedfield.Normalize(cmd.Value)
	if value == "" {
		return false, nil
	}

	inserted, err := uc.repo.Insert(ctx, ft, value)
	if err != nil {
		uc.logger.Errorw("failed to remember saved field", "type", ft, "error", err)
		return false, apperrors.WrapInternal(err, "failed to remember saved field")
	}

	if inserted {
		invalidate(ctx, uc.cache, uc.logger)
		uc.logger.Debugw("saved field remembered", "type", ft, "value", value)
	}
	return inserted, nil
}

func invalidate(ctx context.Context, cache Cache, log logger.Interface) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx); err != nil {
		log.Warnw("failed to invalidate saved field cache", "error", err)
	}
}
