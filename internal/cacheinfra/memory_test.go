package cacheinfra

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/goliatone/go-cache-aside/cache"
)

func newTestMemory(t *testing.T) *Memory {
	t.Helper()

	m, err := NewMemory(Config{
		DefaultTTL:      time.Minute,
		CleanupInterval: 10 * time.Millisecond,
		Capacity:        128,
	})
	if err != nil {
		t.Fatalf("NewMemory: %v", err)
	}
	t.Cleanup(func() { m.Close(context.Background()) })
	return m
}

func TestMemorySetGetDelete(t *testing.T) {
	m := newTestMemory(t)
	ctx := context.Background()

	if err := m.Set(ctx, "k", []byte("v"), cache.Sliding(time.Minute)); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, hit, err := m.Get(ctx, "k")
	if err != nil || !hit {
		t.Fatalf("Get = (%q, %v, %v), want hit", got, hit, err)
	}
	if !bytes.Equal(got, []byte("v")) {
		t.Errorf("value = %q, want %q", got, "v")
	}

	if err := m.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := m.Get(ctx, "k"); hit {
		t.Error("key still present after delete")
	}

	// Deleting an absent key is idempotent.
	if err := m.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete absent = %v, want nil", err)
	}
}

func TestMemoryMissOnUnknownKey(t *testing.T) {
	m := newTestMemory(t)

	v, hit, err := m.Get(context.Background(), "absent")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if hit || v != nil {
		t.Errorf("Get absent = (%q, %v), want miss", v, hit)
	}
}

func TestMemoryRejectsInvalidKey(t *testing.T) {
	m := newTestMemory(t)

	if err := m.Set(context.Background(), "bad key", []byte("v"), cache.Sliding(0)); err == nil {
		t.Error("expected error for key with whitespace")
	}
}

func TestMemoryAbsoluteExpiry(t *testing.T) {
	m := newTestMemory(t)
	ctx := context.Background()

	if err := m.Set(ctx, "k", []byte("v"), cache.Absolute(30*time.Millisecond)); err != nil {
		t.Fatalf("Set: %v", err)
	}

	// Repeated reads must not extend an absolute entry.
	deadline := time.Now().Add(60 * time.Millisecond)
	for time.Now().Before(deadline) {
		m.Get(ctx, "k")
		time.Sleep(5 * time.Millisecond)
	}

	if _, hit, _ := m.Get(ctx, "k"); hit {
		t.Error("absolute entry survived past its deadline despite reads")
	}
}

func TestMemorySlidingRefreshOnAccess(t *testing.T) {
	m := newTestMemory(t)
	ctx := context.Background()

	if err := m.Set(ctx, "k", []byte("v"), cache.Sliding(60*time.Millisecond)); err != nil {
		t.Fatalf("Set: %v", err)
	}

	// Keep touching the entry well past the original deadline.
	for i := 0; i < 6; i++ {
		time.Sleep(25 * time.Millisecond)
		if _, hit, _ := m.Get(ctx, "k"); !hit {
			t.Fatalf("sliding entry expired despite access on iteration %d", i)
		}
	}

	// Once idle, it expires.
	time.Sleep(90 * time.Millisecond)
	if _, hit, _ := m.Get(ctx, "k"); hit {
		t.Error("sliding entry survived idle period")
	}
}

func TestMemoryJanitorSweepsExpired(t *testing.T) {
	m := newTestMemory(t)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		key := fmt.Sprintf("k%d", i)
		if err := m.Set(ctx, key, []byte("v"), cache.Absolute(10*time.Millisecond)); err != nil {
			t.Fatalf("Set: %v", err)
		}
	}

	time.Sleep(60 * time.Millisecond)
	if n := m.Len(); n != 0 {
		t.Errorf("janitor left %d expired entries", n)
	}
}

func TestMemoryConcurrentAccess(t *testing.T) {
	m := newTestMemory(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				key := fmt.Sprintf("k%d", j%10)
				switch j % 3 {
				case 0:
					m.Set(ctx, key, []byte("v"), cache.Sliding(time.Minute))
				case 1:
					m.Get(ctx, key)
				default:
					m.Delete(ctx, key)
				}
			}
		}(i)
	}
	wg.Wait()
}

func TestMemoryCloseIdempotent(t *testing.T) {
	m, err := NewMemory(DefaultConfig())
	if err != nil {
		t.Fatalf("NewMemory: %v", err)
	}

	ctx := context.Background()
	if err := m.Close(ctx); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := m.Close(ctx); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}

func TestMemoryRejectsInvalidConfig(t *testing.T) {
	if _, err := NewMemory(Config{}); err == nil {
		t.Error("expected error for zero config")
	}
}
