// Package adapter provides the generic persistence collaborator the booking
// services are written against: create/read/update/delete by model name with
// field-equality filters. Filters in a list are ANDed together; matching a
// field against a set of values goes through the explicit In slice rather
// than any connector hint on individual equality filters.
package adapter

import (
	"context"
	"errors"
)

// Where is a single filter condition. When In is set, the condition matches
// documents whose Field value equals any element of In; otherwise it is a
// plain equality check against Value.
type Where struct {
	Field string
	Value any
	In    []any
}

// Eq builds an equality filter.
func Eq(field string, value any) Where {
	return Where{Field: field, Value: value}
}

// In builds a set-membership filter.
func In(field string, values ...any) Where {
	return Where{Field: field, In: values}
}

// ErrNotFound is returned by Update when no document matched the filters.
var ErrNotFound = errors.New("adapter: no matching document")

// Adapter is the storage contract consumed by the catalog and booking
// services. Implementations must treat a filter list as a conjunction and
// must provide atomic single-document Create/Update. No transactional
// isolation across calls is assumed.
type Adapter interface {
	// Create inserts doc into the named model's collection.
	Create(ctx context.Context, model string, doc any) error
	// FindOne decodes the first matching document into out and reports
	// whether one was found.
	FindOne(ctx context.Context, model string, where []Where, out any) (bool, error)
	// FindMany decodes all matching documents into out (a pointer to slice).
	FindMany(ctx context.Context, model string, where []Where, out any) error
	// Update applies the patch fields to the first matching document.
	// Returns ErrNotFound when nothing matched.
	Update(ctx context.Context, model string, where []Where, patch map[string]any) error
	// Delete removes all matching documents.
	Delete(ctx context.Context, model string, where []Where) error
}
