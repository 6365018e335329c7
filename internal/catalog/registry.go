// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package catalog

import (
	"context"
	"log/slog"
	"time"

	"github.com/vorokhovskii-creator/felix-hub/internal/cache"
	"github.com/vorokhovskii-creator/felix-hub/internal/i18n"
)

const snapshotKeyPrefix = "catalog:snapshot:"

// Registry hands out per-session stores whose lists persist between requests
// in a cache, so filter and search re-renders do not refetch.
type Registry struct {
	api       API
	snapshots *cache.Typed[Snapshot]
	logger    *slog.Logger

	unsubscribe func()
}

// NewRegistry creates a registry keeping snapshots in c for ttl.
func NewRegistry(api API, c cache.Cache, ttl time.Duration, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		api:       api,
		snapshots: cache.NewTyped[Snapshot](c, ttl),
		logger:    logger,
	}
}

// Subscribe drops a session's snapshot whenever its language changes, so the
// next render reloads the visible lists.
func (r *Registry) Subscribe(bus *i18n.Bus) {
	r.unsubscribe = bus.Subscribe(func(ev i18n.LanguageChanged) {
		r.Drop(context.Background(), ev.SessionID)
	})
}

// Close removes the bus subscription.
func (r *Registry) Close() {
	if r.unsubscribe != nil {
		r.unsubscribe()
		r.unsubscribe = nil
	}
}

// Open returns the session's store, restored from its snapshot when one
// exists. A cache failure yields an empty store.
func (r *Registry) Open(ctx context.Context, sessionID string) *Store {
	if sessionID == "" {
		return NewStore(r.api)
	}
	snap, ok, err := r.snapshots.Get(ctx, snapshotKeyPrefix+sessionID)
	if err != nil {
		r.logger.Warn("failed to read catalog snapshot", "error", err)
	}
	if !ok {
		return NewStore(r.api)
	}
	return Restore(r.api, *snap)
}

// Save stores the session's snapshot. Failures are logged; the next request
// simply refetches.
func (r *Registry) Save(ctx context.Context, sessionID string, s *Store) {
	if sessionID == "" {
		return
	}
	snap := s.Snapshot()
	if err := r.snapshots.Set(ctx, snapshotKeyPrefix+sessionID, &snap); err != nil {
		r.logger.Warn("failed to save catalog snapshot", "error", err)
	}
}

// Drop forgets the session's snapshot.
func (r *Registry) Drop(ctx context.Context, sessionID string) {
	if sessionID == "" {
		return
	}
	if err := r.snapshots.Delete(ctx, snapshotKeyPrefix+sessionID); err != nil {
		r.logger.Warn("failed to drop catalog snapshot", "error", err)
	}
}
