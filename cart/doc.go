// Package cart implements the session-scoped cart: a cache-only collection
// keyed by session identity with merge-on-add semantics and a sliding idle
// timeout, plus the pure summary computation over its lines.
//
// The cart is the second instance of the caching pattern in this module: the
// cache is the only storage, so entries expire autonomously and an absent
// session simply means an empty cart. Summary computation composes the
// session collection with externally configured tax, delivery, and discount
// rules; see Calculator for the exact arithmetic.
package cart
