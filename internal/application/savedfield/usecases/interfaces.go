package usecases

import (
	"context"

	"github.com/hotline-inc/hotline/internal/domain/savedfield"
)

// Cache holds the grouped saved-field listing. A miss or backend failure
// reports ok=false.
type Cache interface {
	Get(ctx context.Context) (*savedfield.Grouped, bool)
	Set(ctx context.Context, grouped *savedfield.Grouped) error
	Invalidate(ctx context.Context) error
}

type RememberExecutor interface {
	Execute(ctx context.Context, cmd RememberCommand) (bool, error)
}

type ForgetExecutor interface {
	Execute(ctx context.Context, cmd ForgetCommand) (bool, error)
}

type ListSavedFieldsExecutor interface {
	Execute(ctx context.Context) (*savedfield.Grouped, error)
}
