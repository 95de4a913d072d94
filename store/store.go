// Package store defines the contract for the authoritative relational store
// behind the read-through cache. Implementations live in subpackages:
// bunstore talks to a database through uptrace/bun, bunrepo adapts an
// existing go-repository-bun repository.
package store

import (
	"context"
	"errors"
)

// ErrNotFound reports that the requested entity is absent from the
// authoritative store. It is an outcome, not an internal failure: callers
// branch on it with errors.Is.
var ErrNotFound = errors.New("store: not found")

// Store is the authoritative source of truth for one entity kind.
//
// Contract:
//   - FetchByID and Remove return ErrNotFound for absent entities.
//   - FetchWhere matches a single scalar field case-insensitively and may
//     return an empty slice, which is a valid result, not ErrNotFound.
//   - Save persists the entity, inserting or updating by identifier, and
//     returns the stored value.
//   - Every other error is a store fault and must be surfaced to callers.
type Store[T any] interface {
	FetchAll(ctx context.Context) ([]T, error)
	FetchWhere(ctx context.Context, field, value string) ([]T, error)
	FetchByID(ctx context.Context, id string) (T, error)
	Save(ctx context.Context, record T) (T, error)
	Remove(ctx context.Context, record T) error
}
