// Package entity defines the storage capability shared by every back-office
// collection: fetch a record by id and apply a partial update to it.
package entity

import (
	"context"

	"github.com/go-faster/errors"
)

var (
	// ErrNotFound is returned when no record exists for the requested id.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when creating a record whose id is taken.
	ErrAlreadyExists = errors.New("already exists")
)

// Patch is a partial update. Apply writes the fields the patch carries onto
// dst and leaves every other field untouched.
type Patch[T any] interface {
	Apply(dst *T)
}

// PatchFunc adapts a function to the Patch interface.
type PatchFunc[T any] func(dst *T)

// Apply calls f(dst).
func (f PatchFunc[T]) Apply(dst *T) { f(dst) }

// Repository is the read/write capability the detail controller needs.
//
// Get returns ErrNotFound when id is unknown. Update merges patch over the
// stored record and returns the new state, or ErrNotFound without touching
// anything.
type Repository[T any] interface {
	Get(ctx context.Context, id string) (T, error)
	Update(ctx context.Context, id string, patch Patch[T]) (T, error)
}
