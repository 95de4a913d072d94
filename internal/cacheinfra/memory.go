package cacheinfra

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/goliatone/go-cache-aside/cache"
)

// Memory is the in-process cache backend. Entries carry their own expiration
// policy: sliding entries push their deadline forward on every read, absolute
// entries expire at the deadline fixed when they were written. Expired entries
// are dropped lazily on read and swept by a janitor goroutine.
type Memory struct {
	entries *xsync.MapOf[string, *memoryEntry]
	cfg     Config

	done      chan struct{}
	closeOnce sync.Once
}

type memoryEntry struct {
	value   []byte
	sliding bool
	ttl     time.Duration

	// deadline is unix nanos; atomic so concurrent sliding reads
	// can refresh it without a lock.
	deadline atomic.Int64
}

var _ cache.Cache = (*Memory)(nil)

// NewMemory creates the in-process backend and starts its janitor.
func NewMemory(cfg Config) (*Memory, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	interval := cfg.CleanupInterval
	if interval == 0 {
		interval = time.Minute
	}

	m := &Memory{
		entries: xsync.NewMapOf[string, *memoryEntry](),
		cfg:     cfg,
		done:    make(chan struct{}),
	}

	go m.janitor(interval)
	return m, nil
}

// Get returns the entry bytes on hit. A sliding hit refreshes the deadline.
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	e, ok := m.entries.Load(key)
	if !ok {
		return nil, false, nil
	}

	now := time.Now().UnixNano()
	if now > e.deadline.Load() {
		m.entries.Delete(key)
		return nil, false, nil
	}

	if e.sliding {
		e.deadline.Store(now + int64(e.ttl))
	}
	return e.value, true, nil
}

// Set stores value under key, replacing any previous entry.
func (m *Memory) Set(_ context.Context, key string, value []byte, policy cache.Policy) error {
	if err := cache.ValidateKey(key); err != nil {
		return err
	}

	ttl := policy.EffectiveTTL(m.cfg.DefaultTTL, m.cfg.MaxTTL)
	e := &memoryEntry{
		value:   value,
		sliding: policy.Expiration == cache.ExpireSliding,
		ttl:     ttl,
	}
	e.deadline.Store(time.Now().Add(ttl).UnixNano())

	if m.entries.Size() >= m.cfg.Capacity {
		m.sweep()
	}
	m.entries.Store(key, e)
	return nil
}

// Delete removes a key. Idempotent.
func (m *Memory) Delete(_ context.Context, key string) error {
	m.entries.Delete(key)
	return nil
}

// Close stops the janitor. Safe to call more than once.
func (m *Memory) Close(context.Context) error {
	m.closeOnce.Do(func() { close(m.done) })
	return nil
}

// Len reports the number of live entries, expired ones included until swept.
func (m *Memory) Len() int {
	return m.entries.Size()
}

func (m *Memory) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.sweep()
		case <-m.done:
			return
		}
	}
}

func (m *Memory) sweep() {
	now := time.Now().UnixNano()
	m.entries.Range(func(key string, e *memoryEntry) bool {
		if now > e.deadline.Load() {
			m.entries.Delete(key)
		}
		return true
	})
}
