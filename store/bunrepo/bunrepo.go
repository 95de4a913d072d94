// Package bunrepo adapts a go-repository-bun repository to the narrower
// store contract the caching layer consumes. Existing repositories keep their
// full surface; the adapter exposes only what the read-through core needs.
package bunrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-cache-aside/store"
)

// Config tunes the adapter.
type Config struct {
	// IsNotFound recognizes the repository's not-found errors so they can be
	// mapped to store.ErrNotFound. Defaults to matching sql.ErrNoRows.
	IsNotFound func(error) bool
}

// Store adapts repository.Repository[T] to store.Store[T].
type Store[T any] struct {
	repo       repository.Repository[T]
	isNotFound func(error) bool
}

var _ store.Store[struct{}] = (*Store[struct{}])(nil)

// New wraps an existing repository.
func New[T any](repo repository.Repository[T], cfg Config) (*Store[T], error) {
	if repo == nil {
		return nil, errors.New("bunrepo: repository is required")
	}

	isNotFound := cfg.IsNotFound
	if isNotFound == nil {
		isNotFound = func(err error) bool { return errors.Is(err, sql.ErrNoRows) }
	}

	return &Store[T]{repo: repo, isNotFound: isNotFound}, nil
}

func (s *Store[T]) FetchAll(ctx context.Context) ([]T, error) {
	rows, _, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("bunrepo: list: %w", err)
	}
	return rows, nil
}

func (s *Store[T]) FetchWhere(ctx context.Context, field, value string) ([]T, error) {
	matchField := repository.SelectCriteria(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("lower(?) = lower(?)", bun.Ident(field), value)
	})

	rows, _, err := s.repo.List(ctx, matchField)
	if err != nil {
		return nil, fmt.Errorf("bunrepo: list by %s: %w", field, err)
	}
	return rows, nil
}

func (s *Store[T]) FetchByID(ctx context.Context, id string) (T, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if s.isNotFound(err) {
			return rec, store.ErrNotFound
		}
		return rec, fmt.Errorf("bunrepo: get %q: %w", id, err)
	}
	return rec, nil
}

func (s *Store[T]) Save(ctx context.Context, record T) (T, error) {
	saved, err := s.repo.Upsert(ctx, record)
	if err != nil {
		return saved, fmt.Errorf("bunrepo: upsert: %w", err)
	}
	return saved, nil
}

func (s *Store[T]) Remove(ctx context.Context, record T) error {
	if err := s.repo.Delete(ctx, record); err != nil {
		if s.isNotFound(err) {
			return store.ErrNotFound
		}
		return fmt.Errorf("bunrepo: delete: %w", err)
	}
	return nil
}
