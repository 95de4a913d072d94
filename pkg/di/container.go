package di

import (
	"context"
	"time"

	"github.com/goliatone/go-cache-aside/cache"
	"github.com/goliatone/go-cache-aside/cacheaside"
	"github.com/goliatone/go-cache-aside/cart"
	"github.com/goliatone/go-cache-aside/internal/cacheinfra"
	"github.com/goliatone/go-cache-aside/store"
)

// Container wires the cache backend, the session cart store, and the summary
// rates together. It is constructed once at startup and passed by reference
// into each component; there are no ambient singletons.
type Container struct {
	backend    cache.Cache
	logger     cache.Logger
	config     cacheinfra.Config
	cartStore  *cart.Store
	rates      cart.Calculator
	sessionTTL time.Duration
}

// Option customizes a Container.
type Option func(*Container)

// WithLogger installs the structured logger shared by container-built services.
func WithLogger(log cache.Logger) Option {
	return func(c *Container) {
		if log != nil {
			c.logger = log
		}
	}
}

// WithCache replaces the default in-process backend, e.g. with
// cacheinfra.NewRedis for shared deployments.
func WithCache(backend cache.Cache) Option {
	return func(c *Container) {
		if backend != nil {
			c.backend = backend
		}
	}
}

// WithSessionTTL overrides the cart idle timeout.
func WithSessionTTL(ttl time.Duration) Option {
	return func(c *Container) {
		if ttl > 0 {
			c.sessionTTL = ttl
		}
	}
}

// WithRates replaces the default summary business rules.
func WithRates(rates cart.Calculator) Option {
	return func(c *Container) { c.rates = rates }
}

// NewContainer creates a DI container with the provided cache configuration.
// Unless WithCache overrides it, the in-process memory backend is used.
func NewContainer(config cacheinfra.Config, opts ...Option) (*Container, error) {
	c := &Container{
		logger:     cache.NopLogger{},
		config:     config,
		rates:      cart.DefaultRates(),
		sessionTTL: cart.DefaultSessionTTL,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.backend == nil {
		backend, err := cacheinfra.NewMemory(config)
		if err != nil {
			return nil, err
		}
		c.backend = backend
	}

	cartStore, err := cart.NewStore(c.backend,
		cart.WithSessionTTL(c.sessionTTL),
		cart.WithLogger(c.logger),
	)
	if err != nil {
		return nil, err
	}
	c.cartStore = cartStore

	return c, nil
}

// NewContainerWithDefaults creates a container using default configuration.
func NewContainerWithDefaults(opts ...Option) (*Container, error) {
	return NewContainer(cacheinfra.DefaultConfig(), opts...)
}

// Cache returns the shared cache backend.
func (c *Container) Cache() cache.Cache {
	return c.backend
}

// Logger returns the shared logger.
func (c *Container) Logger() cache.Logger {
	return c.logger
}

// Config returns a copy of the cache configuration used by this container.
func (c *Container) Config() cacheinfra.Config {
	return c.config
}

// CartStore returns the session cart store bound to the shared backend.
func (c *Container) CartStore() *cart.Store {
	return c.cartStore
}

// SummaryCalculator returns the configured summary rules.
func (c *Container) SummaryCalculator() cart.Calculator {
	return c.rates
}

// Close releases the cache backend.
func (c *Container) Close(ctx context.Context) error {
	return c.backend.Close(ctx)
}

// NewCatalogService builds a read-through service for one entity kind over
// the container's backend and logger.
//
// Since Go methods cannot have type parameters, this is provided as a
// package-level function. Example: NewCatalogService[catalog.Product](...)
func NewCatalogService[T any](c *Container, kind string, st store.Store[T], h cacheaside.Handlers[T], opts ...cacheaside.Option[T]) (*cacheaside.Service[T], error) {
	opts = append([]cacheaside.Option[T]{cacheaside.WithLogger[T](c.logger)}, opts...)
	return cacheaside.New(kind, st, c.backend, h, opts...)
}
