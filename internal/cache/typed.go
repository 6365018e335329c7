// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// Typed stores JSON-encoded values of T in a Cache.
type Typed[T any] struct {
	cache Cache
	ttl   time.Duration
}

// NewTyped wraps c. ttl is passed through on every Set.
func NewTyped[T any](c Cache, ttl time.Duration) *Typed[T] {
	return &Typed[T]{cache: c, ttl: ttl}
}

// Get returns the value under key, or ok=false on a miss. Undecodable
// entries are treated as misses and removed.
func (t *Typed[T]) Get(ctx context.Context, key string) (value *T, ok bool, err error) {
	data, err := t.cache.Get(ctx, key)
	if errors.Is(err, ErrCacheMiss) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		_ = t.cache.Delete(ctx, key)
		return nil, false, nil
	}
	return &v, true, nil
}

// Set encodes value and stores it under key.
func (t *Typed[T]) Set(ctx context.Context, key string, value *T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return t.cache.Set(ctx, key, data, t.ttl)
}

// Delete removes key.
func (t *Typed[T]) Delete(ctx context.Context, key string) error {
	return t.cache.Delete(ctx, key)
}
