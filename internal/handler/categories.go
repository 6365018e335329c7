// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"fmt"
	"net/http"

	"github.com/vorokhovskii-creator/felix-hub/internal/catalog"
	"github.com/vorokhovskii-creator/felix-hub/internal/i18n"
	"github.com/vorokhovskii-creator/felix-hub/internal/middleware"
	"github.com/vorokhovskii-creator/felix-hub/internal/render"
)

// categoryFormData is the view-model of the category modal.
type categoryFormData struct {
	Form catalog.CategoryForm
	Next string
}

func categoryFormTitle(f catalog.CategoryForm) string {
	if f.IsEdit() {
		return "edit_category_title"
	}
	return "add_category_title"
}

func (h *AdminHandler) renderCategoryForm(w http.ResponseWriter, r *http.Request, status int, f catalog.CategoryForm, next string, alert *render.Flash) {
	renderPage(w, r, h.renderer, status, pageCategoryForm, render.TemplateData{
		Title:       categoryFormTitle(f),
		Data:        categoryFormData{Form: f, Next: next},
		Alert:       alert,
		CurrentPath: switcherPath(r, next),
	})
}

// NewCategory opens the category modal with reset fields.
func (h *AdminHandler) NewCategory(w http.ResponseWriter, r *http.Request) {
	h.renderCategoryForm(w, r, http.StatusOK, catalog.NewCategoryForm(), returnPath(r, redirectAdminCategories), nil)
}

// EditCategory opens the category modal filled from the API.
func (h *AdminHandler) EditCategory(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLanguage(r)
	next := returnPath(r, redirectAdminCategories)

	id, err := parseIDParam(r)
	if err != nil {
		flashError(w, r, h.renderer, next, loadAlert(lang, "error_loading_category", err))
		return
	}

	store := h.openStore(r)
	c, err := store.Category(r.Context(), id)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to load category", "category_id", id, "error", err)
		flashError(w, r, h.renderer, next, loadAlert(lang, "error_loading_category", err))
		return
	}

	h.renderCategoryForm(w, r, http.StatusOK, catalog.CategoryFormFrom(*c), next, nil)
}

// SaveCategory creates or updates a category. On failure the modal is shown
// again with the submitted values and an alert.
func (h *AdminHandler) SaveCategory(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLanguage(r)

	if err := r.ParseForm(); err != nil {
		flashError(w, r, h.renderer, redirectAdminCategories, i18n.T(lang, "error_saving"))
		return
	}
	form := catalog.ParseCategoryForm(r.PostForm)
	next := returnPath(r, redirectAdminCategories)

	store := h.openStore(r)
	created, err := store.SaveCategory(r.Context(), form)
	h.saveStore(r, store)
	if err != nil {
		h.logger.WarnContext(r.Context(), "failed to save category", "category_id", form.ID, "error", err)
		h.renderCategoryForm(w, r, http.StatusUnprocessableEntity, form, next, &render.Flash{
			Message: errorAlert(lang, err),
			Type:    render.FlashError,
		})
		return
	}

	msg := "category_updated"
	if created {
		msg = "category_added"
	}
	h.logger.InfoContext(r.Context(), "category saved", "name", form.Name, "created", created)
	flashSuccess(w, r, h.renderer, next, i18n.T(lang, msg))
}

// ToggleCategory flips a category's active flag.
func (h *AdminHandler) ToggleCategory(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLanguage(r)
	next := returnPath(r, redirectAdminCategories)

	id, err := parseIDParam(r)
	if err != nil {
		flashError(w, r, h.renderer, next, errorAlert(lang, err))
		return
	}

	store := h.openStore(r)
	err = store.ToggleCategory(r.Context(), id)
	h.saveStore(r, store)
	if err != nil {
		h.logger.WarnContext(r.Context(), "failed to toggle category", "category_id", id, "error", err)
		flashError(w, r, h.renderer, next, errorAlert(lang, err))
		return
	}

	flashSuccess(w, r, h.renderer, next, i18n.T(lang, "category_status_changed"))
}

// ConfirmDeleteCategory shows the delete prompt.
func (h *AdminHandler) ConfirmDeleteCategory(w http.ResponseWriter, r *http.Request) {
	next := returnPath(r, redirectAdminCategories)
	id, err := parseIDParam(r)
	if err != nil {
		flashError(w, r, h.renderer, next, errorAlert(middleware.GetLanguage(r), err))
		return
	}

	var subject string
	for _, c := range h.openStore(r).Categories() {
		if c.ID == id {
			subject = c.Name
			break
		}
	}

	h.renderConfirm(w, r, confirmData{
		MessageKey: "confirm_delete_category",
		Subject:    subject,
		ActionURL:  fmt.Sprintf("%s%s/%d/delete", RouteAdmin, RouteCategories, id),
		CancelURL:  next,
		Next:       next,
	})
}

// DeleteCategory deletes a category. A refusal from the API, such as a
// category that still owns parts, is shown with the server's message.
func (h *AdminHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLanguage(r)
	next := returnPath(r, redirectAdminCategories)

	id, err := parseIDParam(r)
	if err != nil {
		flashError(w, r, h.renderer, next, errorAlert(lang, err))
		return
	}

	store := h.openStore(r)
	err = store.DeleteCategory(r.Context(), id)
	h.saveStore(r, store)
	if err != nil {
		h.logger.WarnContext(r.Context(), "failed to delete category", "category_id", id, "error", err)
		flashError(w, r, h.renderer, next, errorAlert(lang, err))
		return
	}

	h.logger.InfoContext(r.Context(), "category deleted", "category_id", id)
	flashSuccess(w, r, h.renderer, next, i18n.T(lang, "category_deleted"))
}
