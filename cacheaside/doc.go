// Package cacheaside implements the read-through caching core over an
// authoritative store.
//
// # Overview
//
// Service[T] sits between request handlers and a store.Store[T], checking the
// cache before every read and falling back to the store on miss. Writes go to
// the store first, then refresh or drop the affected single-entity cache slot,
// never the reverse order. The cache is a performance optimization, not a
// source of truth.
//
// # Read Paths
//
//  1. Derive a deterministic key for the selector
//  2. Cache hit: decode and return
//  3. Cache miss (or any cache fault): fetch from the store
//  4. Encode and write to the cache best-effort
//  5. Return the store rows either way
//
// Each read path carries its own expiration policy:
//   - GetAll: sliding TTL; repeated access keeps the collection warm
//   - GetByFilter: absolute TTL, a hard and predictable staleness bound
//   - GetByID: sliding TTL
//
// # Write Paths
//
// Update persists to the store and then overwrites the single-entity slot
// with the stored value, guaranteeing read-after-write consistency for that
// key within the same request. Delete removes from the store and then drops
// the slot.
//
// Collection and filtered slots are deliberately not invalidated by writes:
// they serve stale data until their TTL lapses. That staleness window is a
// documented tradeoff, not a bug: filtered views are cheap to recompute and
// their entries are short-lived.
//
// # Error Handling
//
// Three outcomes reach callers:
//   - store.ErrNotFound when the entity is absent from the store
//   - ErrValidation for malformed input (id mismatch, failed Validate)
//   - wrapped store faults for everything the store could not answer
//
// Cache faults never reach callers. A failed cache read degrades to a store
// fetch; a failed cache write or encode is logged and skipped, and the next read
// repopulates the slot. The core performs no retries: a cache miss is cheap
// and self-healing.
//
// # Usage
//
//	svc, err := cacheaside.New[catalog.Product](catalog.Kind, store, backend,
//		cacheaside.Handlers[catalog.Product]{
//			ID:       func(p catalog.Product) string { return p.ID },
//			Validate: catalog.Product.Validate,
//		},
//	)
//	products, err := svc.GetByFilter(ctx, "category", "Electronics")
//
// For container-managed wiring, see the pkg/di package.
package cacheaside
