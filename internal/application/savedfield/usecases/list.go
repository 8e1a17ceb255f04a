package usecases

import (
	"context"

	"github.com/hotline-inc/hotline/internal/domain/savedfield"
	apperrors "github.com/hotline-inc/hotline/internal/shared/errors"
	"github.com/hotline-inc/hotline/internal/shared/logger"
)

type ListSavedFieldsUseCase struct {
	repo   savedfield.Repository
	cache  Cache
	logger logger.Interface
}

func NewListSavedFieldsUseCase(repo savedfield.Repository, cache Cache, logger logger.Interface) *ListSavedFieldsUseCase {
	return &ListSavedFieldsUseCase{repo: repo, cache: cache, logger: logger}
}

// Execute returns every saved value grouped by type, from cache when warm.
func (uc *ListSavedFieldsUseCase) Execute(ctx context.Context) (*savedfield.Grouped, error) {
	if uc.cache != nil {
		if grouped, ok := uc.cache.Get(ctx); ok {
			return grouped, nil
		}
	}

	grouped, err := uc.repo.List(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list saved fields", "error", err)
		return nil, apperrors.WrapInternal(err, "failed to list saved fields")
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, grouped); err != nil {
			uc.logger.Warnw("failed to cache saved fields", "error", err)
		}
	}
	return grouped, nil
}
