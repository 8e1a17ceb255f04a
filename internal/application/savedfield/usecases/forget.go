package usecases

import (
	"context"

	"github.com/hotline-inc/hotline/internal/domain/savedfield"
	apperrors "github.com/hotline-inc/hotline/internal/shared/errors"
	"github.com/hotline-inc/hotline/internal/shared/logger"
)

type ForgetCommand struct {
	Type  string
	Value string
}

type ForgetUseCase struct {
	repo   savedfield.Repository
	cache  Cache
	logger logger.Interface
}

func NewForgetUseCase(repo savedfield.Repository, cache Cache, logger logger.Interface) *ForgetUseCase {
	return &ForgetUseCase{repo: repo, cache: cache, logger: logger}
}

// Execute deletes the value if present. Forgetting an unknown value is not
// an error.
func (uc *ForgetUseCase) Execute(ctx context.Context, cmd ForgetCommand) (bool, error) {
	uc.logger.Infow("executing forget saved field use case", "type", cmd.Type)

	ft, err := savedfield.NewFieldType(cmd.Type)
	if err != nil {
		return false, apperrors.NewValidationError(err.Error())
	}

	removed, err := uc.repo.Delete(ctx, ft, savedfield.Normalize(cmd.Value))
	if err != nil {
		uc.logger.Errorw("failed to forget saved field", "type", ft, "error", err)
		return false, apperrors.WrapInternal(err, "failed to forget saved field")
	}

	invalidate(ctx, uc.cache, uc.logger)
	return removed, nil
}
