package cacheaside

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goliatone/go-cache-aside/cache"
	"github.com/goliatone/go-cache-aside/store"
)

// Default entry lifetimes per read path.
const (
	DefaultCollectionTTL = 5 * time.Minute
	DefaultFilteredTTL   = 5 * time.Minute
	DefaultEntityTTL     = 5 * time.Minute
)

// ErrValidation marks malformed caller input. It is surfaced to the caller
// and never retried. Branch with errors.Is.
var ErrValidation = errors.New("cacheaside: validation failed")

// Handlers supplies the per-kind knowledge the service cannot infer from a
// type parameter. ID is required; Validate is optional and runs before writes.
type Handlers[T any] struct {
	ID       func(T) string
	Validate func(T) error
}

// Service layers read-through caching and write-time refresh over an
// authoritative store for a single entity kind.
//
// Read paths check the cache first and fall back to the store on miss,
// repopulating the cache best-effort. Write paths hit the store first, then
// refresh or drop the single-entity cache slot, never the reverse order.
// Cache faults degrade to direct store access and are logged, never surfaced;
// store faults always propagate.
type Service[T any] struct {
	kind     string
	store    store.Store[T]
	cache    cache.Cache
	handlers Handlers[T]

	entity cache.Codec[T]
	list   cache.Codec[[]T]

	collectionTTL time.Duration
	filteredTTL   time.Duration
	entityTTL     time.Duration

	log cache.Logger
}

// New builds a Service for one entity kind over the given collaborators.
func New[T any](kind string, st store.Store[T], c cache.Cache, h Handlers[T], opts ...Option[T]) (*Service[T], error) {
	if kind == "" {
		return nil, errors.New("cacheaside: kind is required")
	}
	if st == nil {
		return nil, errors.New("cacheaside: store is required")
	}
	if c == nil {
		return nil, errors.New("cacheaside: cache is required")
	}
	if h.ID == nil {
		return nil, errors.New("cacheaside: Handlers.ID is required")
	}

	s := &Service[T]{
		kind:          kind,
		store:         st,
		cache:         c,
		handlers:      h,
		entity:        cache.JSONCodec[T]{},
		list:          cache.JSONCodec[[]T]{},
		collectionTTL: DefaultCollectionTTL,
		filteredTTL:   DefaultFilteredTTL,
		entityTTL:     DefaultEntityTTL,
		log:           cache.NopLogger{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// GetAll returns every entity of the kind, serving from the cache when
// possible. Cache population uses sliding expiration: a collection that keeps
// being read stays warm.
func (s *Service[T]) GetAll(ctx context.Context) ([]T, error) {
	key := cache.KeyAll(s.kind)
	if rows, ok := s.lookupList(ctx, key); ok {
		return rows, nil
	}

	rows, err := s.store.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("cacheaside: fetch all %s: %w", s.kind, err)
	}

	s.storeList(ctx, key, rows, cache.Sliding(s.collectionTTL))
	return rows, nil
}

// GetByFilter returns the entities whose field matches value, ignoring case.
// Field and value are normalized once and the same form feeds both the cache
// key and the store query, so equivalent spellings hit the same slot and a
// cold read fills it with the rows that slot stands for. Filtered views are
// cheap to recompute, so the cache entry uses absolute expiration for a
// predictable staleness bound.
func (s *Service[T]) GetByFilter(ctx context.Context, field, value string) ([]T, error) {
	field = cache.Normalize(field)
	value = cache.Normalize(value)

	key := cache.KeyFiltered(s.kind, field, value)
	if rows, ok := s.lookupList(ctx, key); ok {
		return rows, nil
	}

	rows, err := s.store.FetchWhere(ctx, field, value)
	if err != nil {
		return nil, fmt.Errorf("cacheaside: fetch %s by %s: %w", s.kind, field, err)
	}

	s.storeList(ctx, key, rows, cache.Absolute(s.filteredTTL))
	return rows, nil
}

// GetByID returns a single entity. Absence in both cache and store yields
// store.ErrNotFound.
func (s *Service[T]) GetByID(ctx context.Context, id string) (T, error) {
	var zero T
	key := cache.KeyByID(s.kind, id)

	if rec, ok := s.lookupEntity(ctx, key); ok {
		return rec, nil
	}

	rec, err := s.store.FetchByID(ctx, id)
	if err != nil {
		return zero, fmt.Errorf("cacheaside: get %s %q: %w", s.kind, id, err)
	}

	s.storeEntity(ctx, key, rec, cache.Sliding(s.entityTTL))
	return rec, nil
}

// Update persists record as the new value for id and refreshes the
// single-entity cache slot with the stored value, so a read in the same
// request observes the write. Collection and filtered slots are deliberately
// left alone; they serve stale data until their TTL lapses.
func (s *Service[T]) Update(ctx context.Context, id string, record T) (T, error) {
	var zero T

	if got := s.handlers.ID(record); got != id {
		return zero, fmt.Errorf("%w: %s id mismatch: selector %q, record %q", ErrValidation, s.kind, id, got)
	}
	if s.handlers.Validate != nil {
		if err := s.handlers.Validate(record); err != nil {
			return zero, fmt.Errorf("%w: %w", ErrValidation, err)
		}
	}

	if _, err := s.store.FetchByID(ctx, id); err != nil {
		return zero, fmt.Errorf("cacheaside: update %s %q: %w", s.kind, id, err)
	}

	saved, err := s.store.Save(ctx, record)
	if err != nil {
		return zero, fmt.Errorf("cacheaside: save %s %q: %w", s.kind, id, err)
	}

	s.storeEntity(ctx, cache.KeyByID(s.kind, id), saved, cache.Sliding(s.entityTTL))
	return saved, nil
}

// Delete removes the entity from the store, then drops its single-entity
// cache slot. The same staleness window as Update applies to collection and
// filtered slots.
func (s *Service[T]) Delete(ctx context.Context, id string) error {
	rec, err := s.store.FetchByID(ctx, id)
	if err != nil {
		return fmt.Errorf("cacheaside: delete %s %q: %w", s.kind, id, err)
	}

	if err := s.store.Remove(ctx, rec); err != nil {
		return fmt.Errorf("cacheaside: remove %s %q: %w", s.kind, id, err)
	}

	key := cache.KeyByID(s.kind, id)
	if err := s.cache.Delete(ctx, key); err != nil {
		s.warn("cache delete failed", key, err)
	}
	return nil
}

// lookupList reads and decodes a cached collection. Any cache or decode fault
// degrades to a miss: the cache is never authoritative.
func (s *Service[T]) lookupList(ctx context.Context, key string) ([]T, bool) {
	raw, hit, err := s.cache.Get(ctx, key)
	if err != nil {
		s.warn("cache read failed", key, err)
		return nil, false
	}
	if !hit {
		return nil, false
	}

	rows, err := s.list.Decode(raw)
	if err != nil {
		s.warn("cache decode failed", key, err)
		s.drop(ctx, key)
		return nil, false
	}
	return rows, true
}

func (s *Service[T]) lookupEntity(ctx context.Context, key string) (T, bool) {
	var zero T

	raw, hit, err := s.cache.Get(ctx, key)
	if err != nil {
		s.warn("cache read failed", key, err)
		return zero, false
	}
	if !hit {
		return zero, false
	}

	rec, err := s.entity.Decode(raw)
	if err != nil {
		s.warn("cache decode failed", key, err)
		s.drop(ctx, key)
		return zero, false
	}
	return rec, true
}

// storeList writes a collection to the cache best-effort. Failures are logged
// and swallowed: a failed cache write must never fail the read that produced
// the rows.
func (s *Service[T]) storeList(ctx context.Context, key string, rows []T, policy cache.Policy) {
	raw, err := s.list.Encode(rows)
	if err != nil {
		s.warn("cache encode failed", key, err)
		return
	}
	if err := s.cache.Set(ctx, key, raw, policy); err != nil {
		s.warn("cache write failed", key, err)
	}
}

func (s *Service[T]) storeEntity(ctx context.Context, key string, rec T, policy cache.Policy) {
	raw, err := s.entity.Encode(rec)
	if err != nil {
		s.warn("cache encode failed", key, err)
		return
	}
	if err := s.cache.Set(ctx, key, raw, policy); err != nil {
		s.warn("cache write failed", key, err)
	}
}

func (s *Service[T]) drop(ctx context.Context, key string) {
	if err := s.cache.Delete(ctx, key); err != nil {
		s.warn("cache delete failed", key, err)
	}
}

func (s *Service[T]) warn(msg, key string, err error) {
	s.log.Warn(msg, cache.Fields{"kind": s.kind, "key": key, "error": err.Error()})
}
