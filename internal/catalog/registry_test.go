// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vorokhovskii-creator/felix-hub/internal/cache"
	"github.com/vorokhovskii-creator/felix-hub/internal/catalogapi"
	"github.com/vorokhovskii-creator/felix-hub/internal/i18n"
	"github.com/vorokhovskii-creator/felix-hub/internal/testutil"
)

func newTestRegistry(t *testing.T) (*Registry, *testutil.FakeAPI) {
	t.Helper()
	fake := testutil.NewFakeAPI(t)
	client := catalogapi.New(catalogapi.Options{BaseURL: fake.URL, Logger: testutil.TestLoggerSilent()})
	mc := cache.NewMemoryCache(cache.MemoryOptions{DefaultTTL: time.Hour})
	t.Cleanup(func() { _ = mc.Close() })
	return NewRegistry(client, mc, time.Minute, testutil.TestLoggerSilent()), fake
}

func TestRegistryReusesSnapshot(t *testing.T) {
	reg, fake := newTestRegistry(t)
	fake.AddCategory("Engine", true)
	fake.AddPart("Oil Filter", "Engine", true)
	ctx := context.Background()

	s := reg.Open(ctx, "sess-1")
	catErr, partsErr := s.Refresh(ctx, StatusAll, false)
	require.NoError(t, catErr)
	require.NoError(t, partsErr)
	reg.Save(ctx, "sess-1", s)
	fake.ResetRequests()

	again := reg.Open(ctx, "sess-1")
	_, _ = again.Refresh(ctx, StatusAll, false)
	assert.Empty(t, fake.Requests(), "filter re-render must not refetch")
	assert.Len(t, again.Parts(), 1)

	other := reg.Open(ctx, "sess-2")
	cats, parts := other.Loaded()
	assert.False(t, cats || parts, "sessions must not share snapshots")
}

func TestRegistryMutationRefetches(t *testing.T) {
	reg, fake := newTestRegistry(t)
	cat := fake.AddCategory("Engine", true)
	ctx := context.Background()

	s := reg.Open(ctx, "sess")
	_, _ = s.Refresh(ctx, StatusAll, false)
	require.NoError(t, s.ToggleCategory(ctx, cat.ID))
	reg.Save(ctx, "sess", s)
	fake.ResetRequests()

	s = reg.Open(ctx, "sess")
	catErr, _ := s.Refresh(ctx, StatusAll, false)
	require.NoError(t, catErr)
	assert.Contains(t, fake.Requests(), "GET /api/categories")
	assert.False(t, s.Categories()[0].IsActive)
}

func TestRegistryDropsSnapshotOnLanguageChange(t *testing.T) {
	reg, fake := newTestRegistry(t)
	fake.AddCategory("Engine", true)
	ctx := context.Background()

	bus := i18n.NewBus()
	reg.Subscribe(bus)
	defer reg.Close()

	s := reg.Open(ctx, "sess")
	_, _ = s.Refresh(ctx, StatusAll, false)
	reg.Save(ctx, "sess", s)

	bus.Publish(i18n.LanguageChanged{SessionID: "sess", Language: "he"})

	cats, parts := reg.Open(ctx, "sess").Loaded()
	assert.False(t, cats || parts, "language change must drop the snapshot")
}

func TestRegistryWithoutSession(t *testing.T) {
	reg, _ := newTestRegistry(t)
	ctx := context.Background()

	s := reg.Open(ctx, "")
	reg.Save(ctx, "", s)
	reg.Drop(ctx, "")
	cats, _ := s.Loaded()
	assert.False(t, cats)
}
