package cache

import "time"

// Expiration selects how an entry's TTL is interpreted by the backend.
type Expiration int

const (
	// ExpireAbsolute fixes the deadline at write time; reads do not extend it.
	ExpireAbsolute Expiration = iota

	// ExpireSliding resets the deadline on every successful read.
	ExpireSliding
)

// String returns the policy name as used in logs and the wire envelope.
func (e Expiration) String() string {
	if e == ExpireSliding {
		return "sliding"
	}
	return "absolute"
}

// Policy describes the lifetime of a single cache entry.
// A zero TTL defers to the backend's configured default.
type Policy struct {
	Expiration Expiration
	TTL        time.Duration
}

// Sliding returns a policy whose deadline resets on every access.
func Sliding(ttl time.Duration) Policy {
	return Policy{Expiration: ExpireSliding, TTL: ttl}
}

// Absolute returns a policy whose deadline is fixed at write time.
func Absolute(ttl time.Duration) Policy {
	return Policy{Expiration: ExpireAbsolute, TTL: ttl}
}

// EffectiveTTL resolves the entry TTL against a backend default,
// clamping to max when max is set.
func (p Policy) EffectiveTTL(def, max time.Duration) time.Duration {
	ttl := p.TTL
	if ttl <= 0 {
		ttl = def
	}
	if max > 0 && ttl > max {
		ttl = max
	}
	return ttl
}
