// Package cache defines the abstractions the read-through layer is built on:
// the Cache key-value contract, per-entry expiration policies, value codecs,
// deterministic key construction, and a minimal structured logger.
//
// # Overview
//
// The package exports four cooperating pieces:
//
//   - Cache: an abstract key-value service with get/set/delete and TTL support
//   - Policy: per-entry expiration, either sliding or absolute
//   - Codec: lossless value <-> []byte conversion (JSON and msgpack provided)
//   - Key helpers: deterministic, normalized cache key construction
//
// Backends live in internal/cacheinfra; the in-process backend is the default
// and a redis-backed one is available for shared deployments. The cache is a
// performance optimization, never a source of truth: callers treat cached
// bytes as disposable and recover from any backend fault by going to the
// authoritative store.
//
// # Keys
//
// Keys are composed from segments joined by KeySeparator. Filter values are
// normalized (trimmed, case-folded) before key construction so that logically
// equal selectors always land on the same slot:
//
//	cache.KeyFiltered("products", "category", " Electronics ")
//	// products::filter::category::electronics
//
// Segments that are overlong or carry bytes remote stores reject are replaced
// by an xxhash digest, keeping composed keys valid for any backend.
//
// # Expiration
//
// Two policies coexist and both must be supported by every backend:
//
//	cache.Sliding(5 * time.Minute)  // deadline resets on every read
//	cache.Absolute(5 * time.Minute) // deadline fixed at write time
//
// Collection views that benefit from repeated access use sliding expiration;
// filtered views use absolute expiration for a predictable staleness bound.
package cache
