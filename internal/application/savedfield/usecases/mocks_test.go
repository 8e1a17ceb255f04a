package usecases

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/hotline-inc/hotline/internal/domain/savedfield"
)

type memoryRepository struct {
	mu      sync.Mutex
	rows    map[savedfield.FieldType]map[string]bool
	inserts int
	lists   int
	failing bool
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{rows: map[savedfield.FieldType]map[string]bool{}}
}

func (r *memoryRepository) Insert(ctx context.Context, ft savedfield.FieldType, value string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failing {
		return false, errors.New("db down")
	}
	r.inserts++
	if r.rows[ft] == nil {
		r.rows[ft] = map[string]bool{}
	}
	if r.rows[ft][value] {
		return false, nil
	}
	r.rows[ft][value] = true
	return true, nil
}

func (r *memoryRepository) Delete(ctx context.Context, ft savedfield.FieldType, value string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failing {
		return false, errors.New("db down")
	}
	if !r.rows[ft][value] {
		return false, nil
	}
	delete(r.rows[ft], value)
	return true, nil
}

func (r *memoryRepository) List(ctx context.Context) (*savedfield.Grouped, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failing {
		return nil, errors.New("db down")
	}
	r.lists++
	g := savedfield.NewGrouped()
	for _, ft := range []savedfield.FieldType{savedfield.FieldCaller, savedfield.FieldReason, savedfield.FieldTag} {
		values := make([]string, 0, len(r.rows[ft]))
		for v := range r.rows[ft] {
			values = append(values, v)
		}
		sort.Strings(values)
		for _, v := range values {
			g.Add(ft, v)
		}
	}
	return g, nil
}

func (r *memoryRepository) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, values := range r.rows {
		n += len(values)
	}
	return n
}

func (r *memoryRepository) has(ft savedfield.FieldType, value string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rows[ft][value]
}

type mockCache struct {
	value         *savedfield.Grouped
	invalidations int
	InvalidateErr error
}

func (c *mockCache) Get(ctx context.Context) (*savedfield.Grouped, bool) {
	return c.value, c.value != nil
}

func (c *mockCache) Set(ctx context.Context, grouped *savedfield.Grouped) error {
	c.value = grouped
	return nil
}

func (c *mockCache) Invalidate(ctx context.Context) error {
	c.invalidations++
	c.value = nil
	return c.InvalidateErr
}
