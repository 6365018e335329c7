// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/vorokhovskii-creator/felix-hub/internal/catalog"
	"github.com/vorokhovskii-creator/felix-hub/internal/middleware"
	"github.com/vorokhovskii-creator/felix-hub/internal/render"
	"github.com/vorokhovskii-creator/felix-hub/internal/session"
)

// AdminHandler handles the catalog admin pages.
type AdminHandler struct {
	registry       *catalog.Registry
	renderer       *render.Renderer
	sessionManager *scs.SessionManager
	logger         *slog.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(registry *catalog.Registry, renderer *render.Renderer, sm *scs.SessionManager, logger *slog.Logger) *AdminHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AdminHandler{
		registry:       registry,
		renderer:       renderer,
		sessionManager: sm,
		logger:         logger,
	}
}

// sessionStore is the request's catalog store together with the key its
// snapshot is saved under.
type sessionStore struct {
	*catalog.Store
	id string
}

func (h *AdminHandler) openStore(r *http.Request) sessionStore {
	id := session.ID(r.Context(), h.sessionManager)
	return sessionStore{Store: h.registry.Open(r.Context(), id), id: id}
}

func (h *AdminHandler) saveStore(r *http.Request, s sessionStore) {
	h.registry.Save(r.Context(), s.id, s.Store)
}

// dashboardData is the view-model of the dashboard page.
type dashboardData struct {
	Tab             string
	Stats           catalog.Stats
	Parts           catalog.PartsView
	Categories      catalog.CategoriesView
	CategoryOptions []catalog.Option
	StatusOptions   []catalog.Option
	StatusValue     string
	CategoryValue   string
	Query           string
	// ReturnURL is this view, handed to modals and mutations as "next".
	ReturnURL string
}

// Dashboard renders the stats, tabs and the list of the selected tab.
// Query parameters: tab, status, category, q; reload forces a refetch.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLanguage(r)
	q := r.URL.Query()

	tab := TabParts
	if q.Get("tab") == TabCategories {
		tab = TabCategories
	}
	status := catalog.ParseStatus(q.Get("status"))
	filter := catalog.Filter{
		Category: q.Get("category"),
		Query:    q.Get("q"),
		Lang:     lang,
	}

	store := h.openStore(r)
	categoriesErr, partsErr := store.Refresh(r.Context(), status, q.Get("reload") != "")
	h.saveStore(r, store)

	var alert *render.Flash
	switch {
	case categoriesErr != nil:
		h.logger.ErrorContext(r.Context(), "failed to load categories", "error", categoriesErr)
		alert = &render.Flash{Message: loadAlert(lang, "error_loading_categories", categoriesErr), Type: render.FlashError}
	case partsErr != nil:
		h.logger.ErrorContext(r.Context(), "failed to load parts", "error", partsErr)
		alert = &render.Flash{Message: loadAlert(lang, "error_loading_parts", partsErr), Type: render.FlashError}
	}

	categoriesLoaded, partsLoaded := store.Loaded()
	categories := store.Categories()

	data := dashboardData{
		Tab:             tab,
		Stats:           store.Stats(),
		Parts:           catalog.BuildPartsView(store.Parts(), partsLoaded, filter, status),
		Categories:      catalog.BuildCategoriesView(categories, categoriesLoaded),
		CategoryOptions: catalog.CategoryOptions(categories, filter.Category),
		StatusOptions:   catalog.StatusOptions(status),
		StatusValue:     string(status),
		CategoryValue:   filter.Category,
		Query:           filter.Query,
		ReturnURL:       dashboardURL(tab, string(status), filter.Category, filter.Query),
	}

	renderPage(w, r, h.renderer, http.StatusOK, pageDashboard, render.TemplateData{
		Title: "parts_management",
		Data:  data,
		Alert: alert,
	})
}

// confirmData is the view-model of the confirm screen.
type confirmData struct {
	MessageKey string
	Subject    string
	ActionURL  string
	CancelURL  string
	// Next is posted back with the confirmation.
	Next string
}

func (h *AdminHandler) renderConfirm(w http.ResponseWriter, r *http.Request, data confirmData) {
	renderPage(w, r, h.renderer, http.StatusOK, pageConfirm, render.TemplateData{
		Title: "confirm_title",
		Data:  data,
	})
}
