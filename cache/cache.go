package cache

import (
	"context"
	"errors"
	"strings"
)

// MaxKeyLength is the maximum allowed length for a cache key.
const MaxKeyLength = 512

// Sentinel errors for cache key validation.
var (
	ErrInvalidKey = errors.New("cache: key is invalid")
	ErrKeyTooLong = errors.New("cache: key exceeds max length")
)

// Cache is the abstract key-value service the read-through layer is built on.
//
// Contract:
//   - Concurrency: implementations must be safe for concurrent, unsynchronized use.
//   - Get returns (nil, false, nil) on miss; an error only signals a backend fault.
//   - Set stores value under key with the supplied expiration policy, replacing
//     any previous entry.
//   - Delete is idempotent; deleting an absent key is not an error.
//
// There is no cross-key atomicity: each call is an independent operation, never
// a transaction. Implementations own entry reaping per the policy they were
// given at write time.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, policy Policy) error
	Delete(ctx context.Context, key string) error

	// Close releases backend resources. Safe to call more than once.
	Close(ctx context.Context) error
}

// ValidateKey checks whether a key is acceptable for any backend.
// Keys must be non-blank, at most MaxKeyLength bytes, and free of
// control characters that remote stores reject.
func ValidateKey(key string) error {
	if key == "" || strings.TrimSpace(key) == "" {
		return ErrInvalidKey
	}
	if len(key) > MaxKeyLength {
		return ErrKeyTooLong
	}
	if strings.ContainsAny(key, "\n\r\t ") {
		return ErrInvalidKey
	}
	return nil
}
