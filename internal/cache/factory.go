// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"time"
)

// Backend types.
const (
	TypeMemory = "memory"
	TypeRedis  = "redis"
)

// Config selects and configures a cache backend.
type Config struct {
	// Type is TypeMemory or TypeRedis.
	Type       string
	RedisURL   string
	Prefix     string
	DefaultTTL time.Duration
	// MaxEntries applies to the memory backend only.
	MaxEntries int
}

// New creates a cache for cfg. Redis is used when Type is TypeRedis and a URL
// is set; otherwise the memory backend is returned.
func New(cfg Config) (Cache, error) {
	if cfg.Type == TypeRedis && cfg.RedisURL != "" {
		opts := DefaultRedisOptions()
		opts.URL = cfg.RedisURL
		if cfg.Prefix != "" {
			opts.Prefix = cfg.Prefix
		}
		if cfg.DefaultTTL > 0 {
			opts.DefaultTTL = cfg.DefaultTTL
		}
		return NewRedisCache(opts)
	}

	return NewMemoryCache(MemoryOptions{
		DefaultTTL:      cfg.DefaultTTL,
		MaxEntries:      cfg.MaxEntries,
		CleanupInterval: time.Minute,
	}), nil
}
