package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotline-inc/hotline/internal/domain/savedfield"
	apperrors "github.com/hotline-inc/hotline/internal/shared/errors"
	"github.com/hotline-inc/hotline/internal/shared/logger"
)

func TestRememberUseCase_Dedup(t *testing.T) {
	repo := newMemoryRepository()
	cache := &mockCache{}
	uc := NewRememberUseCase(repo, cache, logger.NewNop())
	ctx := context.Background()

	inserted, err := uc.Execute(ctx, RememberCommand{Type: "caller", Value: "Alice"})
	require.NoError(t, err)
	assert.True(t, inserted)

	for i := 0; i < 3; i++ {
		inserted, err = uc.Execute(ctx, RememberCommand{Type: "caller", Value: "  Alice "})
		require.NoError(t, err)
		assert.False(t, inserted)
	}

	assert.Equal(t, 1, repo.count())
	assert.Equal(t, 1, cache.invalidations, "only the inserting call invalidates")
}

func TestRememberUseCase_SkipsEmptyAndRejectsUnknownType(t *testing.T) {
	repo := newMemoryRepository()
	uc := NewRememberUseCase(repo, &mockCache{}, logger.NewNop())
	ctx := context.Background()

	inserted, err := uc.Execute(ctx, RememberCommand{Type: "reason", Value: "   "})
	require.NoError(t, err)
	assert.False(t, inserted)
	assert.Zero(t, repo.inserts)

	_, err = uc.Execute(ctx, RememberCommand{Type: "status", Value: "open"})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidationError(err))
}

func TestRememberUseCase_InvalidateFailureIsLogged(t *testing.T) {
	uc := NewRememberUseCase(newMemoryRepository(), &mockCache{InvalidateErr: errors.New("redis down")}, logger.NewNop())

	inserted, err := uc.Execute(context.Background(), RememberCommand{Type: "tag", Value: "printer"})
	require.NoError(t, err)
	assert.True(t, inserted)
}

func TestForgetUseCase(t *testing.T) {
	repo := newMemoryRepository()
	cache := &mockCache{}
	ctx := context.Background()
	_, err := NewRememberUseCase(repo, nil, logger.NewNop()).Execute(ctx, RememberCommand{Type: "tag", Value: "printer"})
	require.NoError(t, err)

	uc := NewForgetUseCase(repo, cache, logger.NewNop())

	removed, err := uc.Execute(ctx, ForgetCommand{Type: "tag", Value: "printer"})
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = uc.Execute(ctx, ForgetCommand{Type: "tag", Value: "printer"})
	require.NoError(t, err)
	assert.False(t, removed)

	assert.Equal(t, 2, cache.invalidations)
	assert.Zero(t, repo.count())
}

func TestListSavedFieldsUseCase_CacheAside(t *testing.T) {
	repo := newMemoryRepository()
	cache := &mockCache{}
	ctx := context.Background()
	remember := NewRememberUseCase(repo, cache, logger.NewNop())
	list := NewListSavedFieldsUseCase(repo, cache, logger.NewNop())

	for _, cmd := range []RememberCommand{
		{Type: "tag", Value: "printer"},
		{Type: "caller", Value: "Bob"},
		{Type: "caller", Value: "Alice"},
		{Type: "tag", Value: "hardware"},
	} {
		_, err := remember.Execute(ctx, cmd)
		require.NoError(t, err)
	}

	grouped, err := list.Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice", "Bob"}, grouped.Callers)
	assert.Equal(t, []string{}, grouped.Reasons)
	assert.Equal(t, []string{"hardware", "printer"}, grouped.Tags)

	_, err = list.Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.lists, "second call is served from cache")

	_, err = remember.Execute(ctx, RememberCommand{Type: "reason", Value: "printer jam"})
	require.NoError(t, err)

	grouped, err = list.Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.lists)
	assert.Equal(t, []string{"printer jam"}, grouped.Reasons)
}

func TestListSavedFieldsUseCase_RepositoryError(t *testing.T) {
	repo := newMemoryRepository()
	repo.failing = true

	_, err := NewListSavedFieldsUseCase(repo, nil, logger.NewNop()).Execute(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsInternalError(err))
}

func TestFieldTypesAreDistinct(t *testing.T) {
	repo := newMemoryRepository()
	uc := NewRememberUseCase(repo, nil, logger.NewNop())
	ctx := context.Background()

	_, err := uc.Execute(ctx, RememberCommand{Type: "caller", Value: "printer"})
	require.NoError(t, err)
	inserted, err := uc.Execute(ctx, RememberCommand{Type: "tag", Value: "printer"})
	require.NoError(t, err)

	assert.True(t, inserted)
	assert.True(t, repo.has(savedfield.FieldCaller, "printer"))
	assert.True(t, repo.has(savedfield.FieldTag, "printer"))
}
