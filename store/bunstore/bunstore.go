// Package bunstore implements the store contract directly on uptrace/bun.
package bunstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/goliatone/go-cache-aside/store"
)

// Config tunes a bun-backed store.
type Config struct {
	// IDColumn is the primary key column. Default "id".
	IDColumn string

	// Filterable whitelists the columns FetchWhere may match on. A filter on
	// any other column is rejected before it reaches the database.
	Filterable []string
}

// Store is a store.Store[T] on a bun database. T must be a bun model with a
// primary key tag; Save relies on WherePK for the update-or-insert decision.
type Store[T any] struct {
	db         *bun.DB
	idColumn   string
	filterable map[string]struct{}
}

var _ store.Store[struct{}] = (*Store[struct{}])(nil)

// New builds a bun-backed store for one model type.
func New[T any](db *bun.DB, cfg Config) (*Store[T], error) {
	if db == nil {
		return nil, errors.New("bunstore: db is required")
	}

	idColumn := cfg.IDColumn
	if idColumn == "" {
		idColumn = "id"
	}

	filterable := make(map[string]struct{}, len(cfg.Filterable))
	for _, col := range cfg.Filterable {
		filterable[col] = struct{}{}
	}

	return &Store[T]{db: db, idColumn: idColumn, filterable: filterable}, nil
}

func (s *Store[T]) FetchAll(ctx context.Context) ([]T, error) {
	var rows []T
	if err := s.db.NewSelect().Model(&rows).Scan(ctx); err != nil {
		return nil, fmt.Errorf("bunstore: fetch all: %w", err)
	}
	return rows, nil
}

func (s *Store[T]) FetchWhere(ctx context.Context, field, value string) ([]T, error) {
	if _, ok := s.filterable[field]; !ok {
		return nil, fmt.Errorf("bunstore: column %q is not filterable", field)
	}

	var rows []T
	err := s.db.NewSelect().
		Model(&rows).
		Where("lower(?) = lower(?)", bun.Ident(field), value).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("bunstore: fetch by %s: %w", field, err)
	}
	return rows, nil
}

func (s *Store[T]) FetchByID(ctx context.Context, id string) (T, error) {
	var rec T
	err := s.db.NewSelect().
		Model(&rec).
		Where("? = ?", bun.Ident(s.idColumn), id).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return rec, store.ErrNotFound
	}
	if err != nil {
		return rec, fmt.Errorf("bunstore: fetch %q: %w", id, err)
	}
	return rec, nil
}

// Save updates the row matching the record's primary key, inserting it when
// no row matched.
func (s *Store[T]) Save(ctx context.Context, record T) (T, error) {
	res, err := s.db.NewUpdate().Model(&record).WherePK().Exec(ctx)
	if err != nil {
		return record, fmt.Errorf("bunstore: update: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		if _, err := s.db.NewInsert().Model(&record).Exec(ctx); err != nil {
			return record, fmt.Errorf("bunstore: insert: %w", err)
		}
	}
	return record, nil
}

func (s *Store[T]) Remove(ctx context.Context, record T) error {
	res, err := s.db.NewDelete().Model(&record).WherePK().Exec(ctx)
	if err != nil {
		return fmt.Errorf("bunstore: delete: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return store.ErrNotFound
	}
	return nil
}
