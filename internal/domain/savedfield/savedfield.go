// Package savedfield models the suggestion values remembered from past
// tickets: callers, reasons and tags.
package savedfield

import (
	"context"
	"fmt"
	"strings"
)

// FieldType names the ticket field a saved value belongs to.
type FieldType string

const (
	FieldCaller FieldType = "caller"
	FieldReason FieldType = "reason"
	FieldTag    FieldType = "tag"
)

func (ft FieldType) String() string {
	return string(ft)
}

func (ft FieldType) IsValid() bool {
	switch ft {
	case FieldCaller, FieldReason, FieldTag:
		return true
	}
	return false
}

func NewFieldType(s string) (FieldType, error) {
	ft := FieldType(strings.ToLower(strings.TrimSpace(s)))
	if !ft.IsValid() {
		return "", fmt.Errorf("invalid saved field type: %s", s)
	}
	return ft, nil
}

// Normalize trims value. An empty result means there is nothing to remember.
func Normalize(value string) string {
	return strings.TrimSpace(value)
}

// Grouped holds saved values by type, each list sorted by value.
type Grouped struct {
	Callers []string `json:"callers"`
	Reasons []string `json:"reasons"`
	Tags    []string `json:"tags"`
}

// Add places value under its type's list.
func (g *Grouped) Add(ft FieldType, value string) {
	switch ft {
	case FieldCaller:
		g.Callers = append(g.Callers, value)
	case FieldReason:
		g.Reasons = append(g.Reasons, value)
	case FieldTag:
		g.Tags = append(g.Tags, value)
	}
}

// NewGrouped returns a Grouped with non-nil empty lists.
func NewGrouped() *Grouped {
	return &Grouped{Callers: []string{}, Reasons: []string{}, Tags: []string{}}
}

// Repository stores saved values, unique per (type, value).
type Repository interface {
	// Insert stores the pair unless it already exists and reports whether a row was added.
	Insert(ctx context.Context, ft FieldType, value string) (bool, error)
	// Delete removes the pair and reports whether a row was removed.
	Delete(ctx context.Context, ft FieldType, value string) (bool, error)
	// List returns every pair ordered by type then value.
	List(ctx context.Context) (*Grouped, error)
}
