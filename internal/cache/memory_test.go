// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestMemoryCache_BasicOperations(t *testing.T) {
	cache := NewMemoryCache(MemoryOptions{DefaultTTL: time.Hour})
	defer func() { _ = cache.Close() }()
	ctx := context.Background()

	if err := cache.Set(ctx, "key1", []byte("value1"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	val, err := cache.Get(ctx, "key1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(val) != "value1" {
		t.Errorf("expected value1, got %s", string(val))
	}

	if err := cache.Delete(ctx, "key1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := cache.Get(ctx, "key1"); err != ErrCacheMiss {
		t.Errorf("expected ErrCacheMiss, got %v", err)
	}
}

func TestMemoryCache_Expiration(t *testing.T) {
	cache := NewMemoryCache(MemoryOptions{DefaultTTL: 20 * time.Millisecond})
	defer func() { _ = cache.Close() }()
	ctx := context.Background()

	_ = cache.Set(ctx, "k", []byte("v"), 0)
	time.Sleep(40 * time.Millisecond)

	if _, err := cache.Get(ctx, "k"); err != ErrCacheMiss {
		t.Errorf("expected ErrCacheMiss after expiry, got %v", err)
	}
	if n := cache.Stats().Items; n != 0 {
		t.Errorf("expired entry still counted: items = %d", n)
	}
}

func TestMemoryCache_ValueIsCopied(t *testing.T) {
	cache := NewMemoryCache(MemoryOptions{DefaultTTL: time.Hour})
	defer func() { _ = cache.Close() }()
	ctx := context.Background()

	in := []byte("abc")
	_ = cache.Set(ctx, "k", in, 0)
	in[0] = 'x'

	out, _ := cache.Get(ctx, "k")
	out[1] = 'y'

	again, _ := cache.Get(ctx, "k")
	if string(again) != "abc" {
		t.Errorf("stored value mutated: %q", again)
	}
}

func TestMemoryCache_MaxEntries(t *testing.T) {
	cache := NewMemoryCache(MemoryOptions{DefaultTTL: time.Hour, MaxEntries: 2})
	defer func() { _ = cache.Close() }()
	ctx := context.Background()

	_ = cache.Set(ctx, "a", []byte("1"), time.Minute)
	_ = cache.Set(ctx, "b", []byte("2"), time.Hour)
	_ = cache.Set(ctx, "c", []byte("3"), time.Hour)

	if n := cache.Stats().Items; n != 2 {
		t.Errorf("items = %d, want 2", n)
	}
	if _, err := cache.Get(ctx, "a"); err != ErrCacheMiss {
		t.Error("entry closest to expiry should have been evicted")
	}
	if _, err := cache.Get(ctx, "c"); err != nil {
		t.Errorf("new entry should be present: %v", err)
	}
}

func TestMemoryCache_Stats(t *testing.T) {
	cache := NewMemoryCache(MemoryOptions{DefaultTTL: time.Hour})
	defer func() { _ = cache.Close() }()
	ctx := context.Background()

	_ = cache.Set(ctx, "k", []byte("v"), 0)
	_, _ = cache.Get(ctx, "k")
	_, _ = cache.Get(ctx, "missing")

	s := cache.Stats()
	if s.Hits != 1 || s.Misses != 1 || s.Sets != 1 {
		t.Errorf("stats = %+v", s)
	}
	if s.HitRate != 50 {
		t.Errorf("hit rate = %v, want 50", s.HitRate)
	}
}

func TestMemoryCache_Closed(t *testing.T) {
	cache := NewMemoryCache(MemoryOptions{DefaultTTL: time.Hour, CleanupInterval: time.Millisecond})
	_ = cache.Close()
	_ = cache.Close()

	ctx := context.Background()
	if _, err := cache.Get(ctx, "k"); err != ErrCacheClosed {
		t.Errorf("Get on closed cache = %v", err)
	}
	if err := cache.Set(ctx, "k", nil, 0); err != ErrCacheClosed {
		t.Errorf("Set on closed cache = %v", err)
	}
}

func TestMemoryCache_Concurrent(t *testing.T) {
	cache := NewMemoryCache(MemoryOptions{DefaultTTL: time.Hour})
	defer func() { _ = cache.Close() }()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", i%4)
			_ = cache.Set(ctx, key, []byte("v"), 0)
			_, _ = cache.Get(ctx, key)
			_ = cache.Delete(ctx, key)
		}(i)
	}
	wg.Wait()
}

func TestNewDefaultsToMemory(t *testing.T) {
	c, err := New(Config{Type: TypeRedis, DefaultTTL: time.Minute})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer func() { _ = c.Close() }()

	if _, ok := c.(*MemoryCache); !ok {
		t.Errorf("redis without URL should fall back to memory, got %T", c)
	}
}
