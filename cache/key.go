package cache

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// KeySeparator defines the delimiter used between cache key segments.
const KeySeparator = "::"

// maxSegmentLength bounds individual key segments. Longer segments (or segments
// carrying bytes remote stores reject) are replaced by an xxhash digest so the
// composed key stays valid without losing determinism.
const maxSegmentLength = 64

// Normalize canonicalizes a caller-supplied selector value before it is used in
// key construction. Two logically equal selectors must always normalize to the
// same key, so cache population and invalidation target the same slot.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Key composes a cache key from the given segments using KeySeparator.
// Segments are sanitized individually; the composition is deterministic.
func Key(segments ...string) string {
	parts := make([]string, len(segments))
	for i, s := range segments {
		parts[i] = sanitizeSegment(s)
	}
	return strings.Join(parts, KeySeparator)
}

// KeyAll is the key for the full collection of an entity kind.
func KeyAll(kind string) string {
	return Key(kind, "all")
}

// KeyFiltered is the key for a scalar-filtered view of an entity kind.
// The filter value is normalized so equivalent spellings share one slot.
func KeyFiltered(kind, field, value string) string {
	return Key(kind, "filter", Normalize(field), Normalize(value))
}

// KeyByID is the key for a single entity.
func KeyByID(kind, id string) string {
	return Key(kind, "id", id)
}

// KeySession is the key for a session-scoped cart collection.
func KeySession(session string) string {
	return Key("cart", session)
}

func sanitizeSegment(s string) string {
	if s == "" {
		return "~"
	}
	if len(s) <= maxSegmentLength && cleanSegment(s) {
		return s
	}
	return fmt.Sprintf("%016x", xxhash.Sum64String(s))
}

// cleanSegment reports whether a segment can be embedded verbatim: printable
// ASCII, no whitespace, and no separator collision.
func cleanSegment(s string) bool {
	if strings.Contains(s, KeySeparator) {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c <= ' ' || c >= 0x7f {
			return false
		}
	}
	return true
}
