package cart

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/goliatone/go-cache-aside/cache"
)

// AnonymousSession is the placeholder identity used when a caller supplies no
// session id. Anonymous callers share one cart by design.
const AnonymousSession = "guest"

// DefaultSessionTTL is the sliding idle timeout of a session cart.
const DefaultSessionTTL = 30 * time.Minute

// Line is one cart entry. A session holds at most one Line per ProductID;
// adding the same product again increments Quantity instead of duplicating
// the line.
type Line struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
}

// Validate reports malformed lines before they reach the cache.
func (l Line) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.ProductID, validation.Required),
		validation.Field(&l.Quantity, validation.Required, validation.Min(1)),
		validation.Field(&l.UnitPrice, validation.By(func(v any) error {
			d, ok := v.(decimal.Decimal)
			if !ok || d.IsNegative() {
				return validation.NewError("validation_unit_price", "must be a non-negative amount")
			}
			return nil
		})),
	)
}

// NewSessionID mints a fresh session identity for callers that track one.
func NewSessionID() string {
	return uuid.NewString()
}

// Store keeps per-session cart collections in the cache, with no backing
// store. Entries live under a sliding idle timeout: every add, read, or clear
// resets the clock, and an untouched cart expires on its own.
//
// Two concurrent AddItem calls for one session race on the read-modify-write
// of the whole collection; the last writer wins and an interleaved increment
// can be lost. Accepted for session-scoped, single-user data.
type Store struct {
	cache cache.Cache
	codec cache.Codec[[]Line]
	ttl   time.Duration
	log   cache.Logger
}

// StoreOption customizes a cart Store.
type StoreOption func(*Store)

// WithSessionTTL overrides the sliding idle timeout.
func WithSessionTTL(ttl time.Duration) StoreOption {
	return func(s *Store) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithCodec replaces the default JSON codec for the line collection.
func WithCodec(c cache.Codec[[]Line]) StoreOption {
	return func(s *Store) {
		if c != nil {
			s.codec = c
		}
	}
}

// WithLogger installs a structured logger for soft cache faults.
func WithLogger(log cache.Logger) StoreOption {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

// NewStore builds a session cart store over the given cache.
func NewStore(c cache.Cache, opts ...StoreOption) (*Store, error) {
	if c == nil {
		return nil, errors.New("cart: cache is required")
	}
	s := &Store{
		cache: c,
		codec: cache.JSONCodec[[]Line]{},
		ttl:   DefaultSessionTTL,
		log:   cache.NopLogger{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// AddItem merges line into the session's collection and rewrites the whole
// collection under the session key; the cache has no sub-key mutation
// primitive. A line with the same ProductID has its quantity incremented in
// place; a new product is appended. Returns the updated collection.
func (s *Store) AddItem(ctx context.Context, session string, line Line) ([]Line, error) {
	if err := line.Validate(); err != nil {
		return nil, fmt.Errorf("cart: invalid line: %w", err)
	}

	items := s.load(ctx, session)

	merged := false
	for i := range items {
		if items[i].ProductID == line.ProductID {
			items[i].Quantity += line.Quantity
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, line)
	}

	raw, err := s.codec.Encode(items)
	if err != nil {
		return nil, fmt.Errorf("cart: encode session %q: %w", session, err)
	}
	if err := s.cache.Set(ctx, s.key(session), raw, cache.Sliding(s.ttl)); err != nil {
		return nil, fmt.Errorf("cart: save session %q: %w", session, err)
	}
	return items, nil
}

// Items returns the session's current collection. An absent session yields an
// empty collection: an empty cart is a valid state, not an error. Reading a
// live cart resets its idle timeout.
func (s *Store) Items(ctx context.Context, session string) ([]Line, error) {
	return s.load(ctx, session), nil
}

// Clear deletes the session's cart outright.
func (s *Store) Clear(ctx context.Context, session string) error {
	if err := s.cache.Delete(ctx, s.key(session)); err != nil {
		return fmt.Errorf("cart: clear session %q: %w", session, err)
	}
	return nil
}

// load reads and decodes the collection, degrading any cache or decode fault
// to an empty cart.
func (s *Store) load(ctx context.Context, session string) []Line {
	key := s.key(session)

	raw, hit, err := s.cache.Get(ctx, key)
	if err != nil {
		s.log.Warn("cart cache read failed", cache.Fields{"key": key, "error": err.Error()})
		return []Line{}
	}
	if !hit {
		return []Line{}
	}

	items, err := s.codec.Decode(raw)
	if err != nil {
		s.log.Warn("cart cache decode failed", cache.Fields{"key": key, "error": err.Error()})
		if derr := s.cache.Delete(ctx, key); derr != nil {
			s.log.Warn("cart cache delete failed", cache.Fields{"key": key, "error": derr.Error()})
		}
		return []Line{}
	}
	return items
}

func (s *Store) key(session string) string {
	if strings.TrimSpace(session) == "" {
		session = AnonymousSession
	}
	return cache.KeySession(session)
}
