package cacheaside

import (
	"time"

	"github.com/goliatone/go-cache-aside/cache"
)

// Option customizes a Service at construction time.
type Option[T any] func(*Service[T])

// WithCollectionTTL overrides the sliding lifetime of the full-collection slot.
func WithCollectionTTL[T any](ttl time.Duration) Option[T] {
	return func(s *Service[T]) {
		if ttl > 0 {
			s.collectionTTL = ttl
		}
	}
}

// WithFilteredTTL overrides the absolute lifetime of filtered-view slots.
func WithFilteredTTL[T any](ttl time.Duration) Option[T] {
	return func(s *Service[T]) {
		if ttl > 0 {
			s.filteredTTL = ttl
		}
	}
}

// WithEntityTTL overrides the sliding lifetime of single-entity slots.
func WithEntityTTL[T any](ttl time.Duration) Option[T] {
	return func(s *Service[T]) {
		if ttl > 0 {
			s.entityTTL = ttl
		}
	}
}

// WithCodecs replaces the default JSON codecs for entities and collections.
func WithCodecs[T any](entity cache.Codec[T], list cache.Codec[[]T]) Option[T] {
	return func(s *Service[T]) {
		if entity != nil {
			s.entity = entity
		}
		if list != nil {
			s.list = list
		}
	}
}

// WithLogger installs a structured logger for soft cache faults.
func WithLogger[T any](log cache.Logger) Option[T] {
	return func(s *Service[T]) {
		if log != nil {
			s.log = log
		}
	}
}
