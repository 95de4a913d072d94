// Package wire frames cache payloads for backends that share their keyspace
// with other processes. The envelope records the expiration policy chosen at
// write time so a read path can honor sliding TTLs without out-of-band state.
package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
	"time"

	"github.com/goliatone/go-cache-aside/cache"
)

const version byte = 1

var (
	// ErrCorrupt marks bytes that were not produced by this package.
	// Callers treat corrupt entries as a miss and drop them.
	ErrCorrupt = errors.New("wire: corrupt entry")

	magic2 = [...]byte{'g', 'c'}
)

const header = 2 + 1 + 1 + 8 // magic | ver | expiration | ttl nanos

// Encode frames payload as: magic(2) | ver(1) | expiration(1) | ttl(u64 be) | payload.
func Encode(policy cache.Policy, payload []byte) []byte {
	buf := make([]byte, header, header+len(payload))
	copy(buf, magic2[:])
	buf[2] = version
	buf[3] = byte(policy.Expiration)
	binary.BigEndian.PutUint64(buf[4:12], uint64(policy.TTL))
	return append(buf, payload...)
}

// Decode recovers the write-time policy and payload.
func Decode(b []byte) (cache.Policy, []byte, error) {
	if len(b) < header || !bytes.Equal(b[:2], magic2[:]) || b[2] != version {
		return cache.Policy{}, nil, ErrCorrupt
	}
	exp := cache.Expiration(b[3])
	if exp != cache.ExpireAbsolute && exp != cache.ExpireSliding {
		return cache.Policy{}, nil, ErrCorrupt
	}
	ttl := time.Duration(binary.BigEndian.Uint64(b[4:12]))
	if ttl < 0 {
		return cache.Policy{}, nil, ErrCorrupt
	}
	return cache.Policy{Expiration: exp, TTL: ttl}, b[header:], nil
}
