// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package catalog holds the admin console's view of the catalog: the
// per-session list store, form handling and the pure view-model builders.
package catalog

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/vorokhovskii-creator/felix-hub/internal/catalogapi"
)

// API is the subset of the catalog REST client the store uses.
type API interface {
	ListCategories(ctx context.Context) ([]catalogapi.Category, error)
	GetCategory(ctx context.Context, id int64) (*catalogapi.Category, error)
	CreateCategory(ctx context.Context, in catalogapi.CategoryInput) error
	UpdateCategory(ctx context.Context, id int64, in catalogapi.CategoryInput) error
	ToggleCategory(ctx context.Context, id int64) error
	DeleteCategory(ctx context.Context, id int64) error

	ListParts(ctx context.Context, activeOnly bool) ([]catalogapi.Part, error)
	GetPart(ctx context.Context, id int64) (*catalogapi.Part, error)
	CreatePart(ctx context.Context, in catalogapi.PartInput) error
	UpdatePart(ctx context.Context, id int64, in catalogapi.PartInput) error
	TogglePart(ctx context.Context, id int64) error
	DeletePart(ctx context.Context, id int64) error

	ImportDefault(ctx context.Context) (*catalogapi.ImportResult, error)
}

// Status is the part list status filter.
type Status string

// Status filter values.
const (
	StatusAll      Status = "all"
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// ParseStatus maps a query value to a Status, defaulting to StatusAll.
func ParseStatus(s string) Status {
	switch Status(s) {
	case StatusActive, StatusInactive:
		return Status(s)
	}
	return StatusAll
}

// Stats are the dashboard counters, computed from the loaded lists.
type Stats struct {
	TotalCategories int
	TotalParts      int
	ActiveParts     int
}

// Snapshot is the serializable state of a Store.
type Snapshot struct {
	Categories       []catalogapi.Category `json:"categories"`
	Parts            []catalogapi.Part     `json:"parts"`
	CategoriesLoaded bool                  `json:"categories_loaded"`
	PartsLoaded      bool                  `json:"parts_loaded"`
	CategoriesStale  bool                  `json:"categories_stale"`
	PartsStale       bool                  `json:"parts_stale"`
	PartsStatus      Status                `json:"parts_status"`
}

// Store owns the in-memory category and part lists of one admin session.
// Lists are replaced only by successful loads; mutations mark the affected
// lists stale so the next Refresh fetches them again.
type Store struct {
	api API

	mu    sync.RWMutex
	state Snapshot
}

// NewStore creates an empty store.
func NewStore(api API) *Store {
	return &Store{api: api, state: Snapshot{PartsStatus: StatusAll}}
}

// Restore creates a store from a snapshot.
func Restore(api API, snap Snapshot) *Store {
	if snap.PartsStatus == "" {
		snap.PartsStatus = StatusAll
	}
	return &Store{api: api, state: snap}
}

// Snapshot returns a copy of the store state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := s.state
	snap.Categories = slices.Clone(s.state.Categories)
	snap.Parts = slices.Clone(s.state.Parts)
	return snap
}

// LoadCategories fetches all categories and replaces the category list.
func (s *Store) LoadCategories(ctx context.Context) error {
	cats, err := s.api.ListCategories(ctx)
	if err != nil {
		return fmt.Errorf("loading categories: %w", err)
	}

	s.mu.Lock()
	s.state.Categories = cats
	s.state.CategoriesLoaded = true
	s.state.CategoriesStale = false
	s.mu.Unlock()
	return nil
}

// LoadParts fetches parts for status and replaces the part list. The API
// only filters by active_only, so StatusInactive issues a second unfiltered
// request and keeps the inactive parts of that response.
func (s *Store) LoadParts(ctx context.Context, status Status) error {
	parts, err := s.api.ListParts(ctx, status == StatusActive)
	if err != nil {
		return fmt.Errorf("loading parts: %w", err)
	}

	if status == StatusInactive {
		all, err := s.api.ListParts(ctx, false)
		if err != nil {
			return fmt.Errorf("loading parts: %w", err)
		}
		parts = make([]catalogapi.Part, 0, len(all))
		for _, p := range all {
			if !p.IsActive {
				parts = append(parts, p)
			}
		}
	}

	s.mu.Lock()
	s.state.Parts = parts
	s.state.PartsLoaded = true
	s.state.PartsStale = false
	s.state.PartsStatus = status
	s.mu.Unlock()
	return nil
}

// Refresh loads whichever lists are missing, stale, or (for parts) loaded
// under a different status. force reloads both.
func (s *Store) Refresh(ctx context.Context, status Status, force bool) (categoriesErr, partsErr error) {
	s.mu.RLock()
	needCategories := force || !s.state.CategoriesLoaded || s.state.CategoriesStale
	needParts := force || !s.state.PartsLoaded || s.state.PartsStale || s.state.PartsStatus != status
	s.mu.RUnlock()

	if needCategories {
		categoriesErr = s.LoadCategories(ctx)
	}
	if needParts {
		partsErr = s.LoadParts(ctx, status)
	}
	return categoriesErr, partsErr
}

// Categories returns a copy of the category list.
func (s *Store) Categories() []catalogapi.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.state.Categories)
}

// Parts returns a copy of the part list.
func (s *Store) Parts() []catalogapi.Part {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.state.Parts)
}

// Loaded reports which lists have been loaded at least once.
func (s *Store) Loaded() (categories, parts bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.CategoriesLoaded, s.state.PartsLoaded
}

// Stats returns the dashboard counters.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Stats{
		TotalCategories: len(s.state.Categories),
		TotalParts:      len(s.state.Parts),
	}
	for _, p := range s.state.Parts {
		if p.IsActive {
			st.ActiveParts++
		}
	}
	return st
}

func (s *Store) markStale(categories, parts bool) {
	s.mu.Lock()
	if categories {
		s.state.CategoriesStale = true
	}
	if parts {
		s.state.PartsStale = true
	}
	s.mu.Unlock()
}

// Category fetches one category for the edit form.
func (s *Store) Category(ctx context.Context, id int64) (*catalogapi.Category, error) {
	return s.api.GetCategory(ctx, id)
}

// Part fetches one part for the edit form.
func (s *Store) Part(ctx context.Context, id int64) (*catalogapi.Part, error) {
	return s.api.GetPart(ctx, id)
}

// SaveCategory creates or updates a category depending on whether the form
// carries an id. It reports whether a record was created.
func (s *Store) SaveCategory(ctx context.Context, f CategoryForm) (created bool, err error) {
	if err := f.Validate(); err != nil {
		return false, err
	}
	if f.IsEdit() {
		id, err := parseID(f.ID)
		if err != nil {
			return false, err
		}
		err = s.api.UpdateCategory(ctx, id, f.Input())
		if err != nil {
			return false, err
		}
	} else {
		if err := s.api.CreateCategory(ctx, f.Input()); err != nil {
			return false, err
		}
		created = true
	}
	// a renamed category changes the part rows too
	s.markStale(true, true)
	return created, nil
}

// SavePart creates or updates a part depending on whether the form carries
// an id. It reports whether a record was created.
func (s *Store) SavePart(ctx context.Context, f PartForm) (created bool, err error) {
	if err := f.Validate(); err != nil {
		return false, err
	}
	if f.IsEdit() {
		id, err := parseID(f.ID)
		if err != nil {
			return false, err
		}
		if err := s.api.UpdatePart(ctx, id, f.Input()); err != nil {
			return false, err
		}
	} else {
		if err := s.api.CreatePart(ctx, f.Input()); err != nil {
			return false, err
		}
		created = true
	}
	// counts on the category rows follow the parts
	s.markStale(true, true)
	return created, nil
}

// ToggleCategory flips a category's active flag.
func (s *Store) ToggleCategory(ctx context.Context, id int64) error {
	if err := s.api.ToggleCategory(ctx, id); err != nil {
		return err
	}
	s.markStale(true, false)
	return nil
}

// TogglePart flips a part's active flag.
func (s *Store) TogglePart(ctx context.Context, id int64) error {
	if err := s.api.TogglePart(ctx, id); err != nil {
		return err
	}
	s.markStale(true, true)
	return nil
}

// DeleteCategory deletes a category. The server refuses while the category
// owns parts; its message is carried by the returned *catalogapi.APIError.
func (s *Store) DeleteCategory(ctx context.Context, id int64) error {
	if err := s.api.DeleteCategory(ctx, id); err != nil {
		return err
	}
	s.markStale(true, false)
	return nil
}

// DeletePart deletes a part.
func (s *Store) DeletePart(ctx context.Context, id int64) error {
	if err := s.api.DeletePart(ctx, id); err != nil {
		return err
	}
	s.markStale(true, true)
	return nil
}

// ImportDefault imports the default catalog and returns the server message.
func (s *Store) ImportDefault(ctx context.Context) (string, error) {
	res, err := s.api.ImportDefault(ctx)
	if err != nil {
		return "", err
	}
	s.markStale(true, true)
	return res.Message, nil
}
