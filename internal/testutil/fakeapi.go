// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/vorokhovskii-creator/felix-hub/internal/catalogapi"
)

// ErrCategoryHasParts is the message the fake API returns when deleting a
// category that still owns parts.
const ErrCategoryHasParts = "Cannot delete a category that has parts"

// DefaultCatalog is what the fake API adds on import-default.
var DefaultCatalog = map[string][]string{
	"Engine": {"Oil Filter", "Spark Plug"},
	"Brakes": {"Brake Pad", "Brake Disc"},
}

// FakeAPI is an in-memory catalog REST server for tests.
type FakeAPI struct {
	*httptest.Server

	mu         sync.Mutex
	categories []catalogapi.Category
	parts      []catalogapi.Part
	nextID     int64
	requests   []string
	languages  []string
	failStatus int
	failMsg    string
}

// NewFakeAPI starts a fake API server that is closed when the test ends.
func NewFakeAPI(t testing.TB) *FakeAPI {
	t.Helper()

	f := &FakeAPI{nextID: 1}

	r := chi.NewRouter()
	r.Use(f.record)
	r.Get("/api/categories", f.listCategories)
	r.Route("/api/admin/categories", func(r chi.Router) {
		r.Post("/", f.createCategory)
		r.Get("/{id}", f.getCategory)
		r.Put("/{id}", f.updateCategory)
		r.Put("/{id}/toggle-active", f.toggleCategory)
		r.Delete("/{id}", f.deleteCategory)
	})
	r.Get("/api/parts", f.listParts)
	r.Post("/api/admin/parts/import-default", f.importDefault)
	r.Route("/api/admin/parts", func(r chi.Router) {
		r.Post("/", f.createPart)
		r.Get("/{id}", f.getPart)
		r.Put("/{id}", f.updatePart)
		r.Put("/{id}/toggle-active", f.togglePart)
		r.Delete("/{id}", f.deletePart)
	})
	r.Post("/set_language/{code}", f.setLanguage)

	f.Server = httptest.NewServer(r)
	t.Cleanup(f.Close)
	return f
}

// AddCategory seeds a category.
func (f *FakeAPI) AddCategory(name string, active bool) catalogapi.Category {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := catalogapi.Category{ID: f.nextID, Name: name, IsActive: active}
	f.nextID++
	f.categories = append(f.categories, c)
	return c
}

// AddPart seeds a part.
func (f *FakeAPI) AddPart(name, category string, active bool) catalogapi.Part {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := catalogapi.Part{ID: f.nextID, Name: name, NameRU: name, Category: category, IsActive: active}
	f.nextID++
	f.parts = append(f.parts, p)
	return p
}

// Requests returns the "METHOD /path?query" lines received so far.
func (f *FakeAPI) Requests() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requests...)
}

// ResetRequests clears the request log.
func (f *FakeAPI) ResetRequests() {
	f.mu.Lock()
	f.requests = nil
	f.mu.Unlock()
}

// Languages returns the codes received on /set_language.
func (f *FakeAPI) Languages() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.languages...)
}

// FailWith makes every following request answer status with msg.
// A zero status restores normal behaviour.
func (f *FakeAPI) FailWith(status int, msg string) {
	f.mu.Lock()
	f.failStatus, f.failMsg = status, msg
	f.mu.Unlock()
}

func (f *FakeAPI) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		line := r.Method + " " + r.URL.Path
		if r.URL.RawQuery != "" {
			line += "?" + r.URL.RawQuery
		}

		f.mu.Lock()
		f.requests = append(f.requests, line)
		status, msg := f.failStatus, f.failMsg
		f.mu.Unlock()

		if status != 0 {
			writeJSON(w, status, map[string]string{"error": msg})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func notFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "Not found"})
}

func pathID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id
}

func (f *FakeAPI) categoryIndex(id int64) int {
	for i, c := range f.categories {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func (f *FakeAPI) partIndex(id int64) int {
	for i, p := range f.parts {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (f *FakeAPI) withCounts(c catalogapi.Category) catalogapi.Category {
	c.PartsCount, c.ActivePartsCount = 0, 0
	for _, p := range f.parts {
		if p.Category == c.Name {
			c.PartsCount++
			if p.IsActive {
				c.ActivePartsCount++
			}
		}
	}
	return c
}

func (f *FakeAPI) listCategories(w http.ResponseWriter, _ *http.Request) {
	f.mu.Lock()
	out := make([]catalogapi.Category, 0, len(f.categories))
	for _, c := range f.categories {
		out = append(out, f.withCounts(c))
	}
	f.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (f *FakeAPI) getCategory(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.categoryIndex(pathID(r))
	if i < 0 {
		notFound(w)
		return
	}
	writeJSON(w, http.StatusOK, f.withCounts(f.categories[i]))
}

func (f *FakeAPI) createCategory(w http.ResponseWriter, r *http.Request) {
	var in catalogapi.CategoryInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Name is required"})
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	c := catalogapi.Category{ID: f.nextID, Name: in.Name, SortOrder: in.SortOrder, IsActive: in.IsActive}
	f.nextID++
	f.categories = append(f.categories, c)
	writeJSON(w, http.StatusCreated, c)
}

func (f *FakeAPI) updateCategory(w http.ResponseWriter, r *http.Request) {
	var in catalogapi.CategoryInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid payload"})
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.categoryIndex(pathID(r))
	if i < 0 {
		notFound(w)
		return
	}
	c := &f.categories[i]
	c.Name, c.SortOrder, c.IsActive = in.Name, in.SortOrder, in.IsActive
	writeJSON(w, http.StatusOK, *c)
}

func (f *FakeAPI) toggleCategory(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.categoryIndex(pathID(r))
	if i < 0 {
		notFound(w)
		return
	}
	f.categories[i].IsActive = !f.categories[i].IsActive
	writeJSON(w, http.StatusOK, f.categories[i])
}

func (f *FakeAPI) deleteCategory(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.categoryIndex(pathID(r))
	if i < 0 {
		notFound(w)
		return
	}
	if f.withCounts(f.categories[i]).PartsCount > 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": ErrCategoryHasParts})
		return
	}
	f.categories = append(f.categories[:i], f.categories[i+1:]...)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (f *FakeAPI) listParts(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active_only") == "true"
	f.mu.Lock()
	out := make([]catalogapi.Part, 0, len(f.parts))
	for _, p := range f.parts {
		if activeOnly && !p.IsActive {
			continue
		}
		out = append(out, p)
	}
	f.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (f *FakeAPI) getPart(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.partIndex(pathID(r))
	if i < 0 {
		notFound(w)
		return
	}
	writeJSON(w, http.StatusOK, f.parts[i])
}

func partFromInput(id int64, in catalogapi.PartInput) catalogapi.Part {
	return catalogapi.Part{
		ID:            id,
		Name:          in.Name,
		NameRU:        in.NameRU,
		NameEN:        in.NameEN,
		NameHE:        in.NameHE,
		DescriptionRU: in.DescriptionRU,
		DescriptionEN: in.DescriptionEN,
		DescriptionHE: in.DescriptionHE,
		Category:      in.Category,
		SortOrder:     in.SortOrder,
		IsActive:      in.IsActive,
	}
}

func (f *FakeAPI) createPart(w http.ResponseWriter, r *http.Request) {
	var in catalogapi.PartInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Name == "" || in.Category == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Name and category are required"})
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p := partFromInput(f.nextID, in)
	f.nextID++
	f.parts = append(f.parts, p)
	writeJSON(w, http.StatusCreated, p)
}

func (f *FakeAPI) updatePart(w http.ResponseWriter, r *http.Request) {
	var in catalogapi.PartInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid payload"})
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.partIndex(pathID(r))
	if i < 0 {
		notFound(w)
		return
	}
	f.parts[i] = partFromInput(f.parts[i].ID, in)
	writeJSON(w, http.StatusOK, f.parts[i])
}

func (f *FakeAPI) togglePart(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.partIndex(pathID(r))
	if i < 0 {
		notFound(w)
		return
	}
	f.parts[i].IsActive = !f.parts[i].IsActive
	writeJSON(w, http.StatusOK, f.parts[i])
}

func (f *FakeAPI) deletePart(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.partIndex(pathID(r))
	if i < 0 {
		notFound(w)
		return
	}
	f.parts = append(f.parts[:i], f.parts[i+1:]...)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// importDefault adds missing DefaultCatalog entries and never removes or
// overwrites existing ones.
func (f *FakeAPI) importDefault(w http.ResponseWriter, _ *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	added := 0
	for _, catName := range []string{"Engine", "Brakes"} {
		found := false
		for _, c := range f.categories {
			if c.Name == catName {
				found = true
				break
			}
		}
		if !found {
			f.categories = append(f.categories, catalogapi.Category{ID: f.nextID, Name: catName, IsActive: true})
			f.nextID++
		}

		for _, partName := range DefaultCatalog[catName] {
			exists := false
			for _, p := range f.parts {
				if p.Name == partName && p.Category == catName {
					exists = true
					break
				}
			}
			if exists {
				continue
			}
			f.parts = append(f.parts, catalogapi.Part{ID: f.nextID, Name: partName, Category: catName, IsActive: true})
			f.nextID++
			added++
		}
	}

	writeJSON(w, http.StatusOK, catalogapi.ImportResult{Message: fmt.Sprintf("Imported %d parts", added)})
}

func (f *FakeAPI) setLanguage(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.languages = append(f.languages, chi.URLParam(r, "code"))
	f.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
