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

// partFormData is the view-model of the part modal.
type partFormData struct {
	Form            catalog.PartForm
	CategoryOptions []catalog.Option
	Next            string
}

func partFormTitle(f catalog.PartForm) string {
	if f.IsEdit() {
		return "edit_part_title"
	}
	return "add_part_title"
}

// renderPartForm shows the part modal. The category select needs the
// category list, which is loaded when the session has none yet. next is the
// dashboard view the modal closes to.
func (h *AdminHandler) renderPartForm(w http.ResponseWriter, r *http.Request, store sessionStore, status int, f catalog.PartForm, next string, alert *render.Flash) {
	if loaded, _ := store.Loaded(); !loaded {
		if err := store.LoadCategories(r.Context()); err != nil {
			h.logger.WarnContext(r.Context(), "failed to load categories for part form", "error", err)
			if alert == nil {
				lang := middleware.GetLanguage(r)
				alert = &render.Flash{Message: loadAlert(lang, "error_loading_categories", err), Type: render.FlashError}
			}
		} else {
			h.saveStore(r, store)
		}
	}

	renderPage(w, r, h.renderer, status, pagePartForm, render.TemplateData{
		Title: partFormTitle(f),
		Data: partFormData{
			Form:            f,
			CategoryOptions: catalog.CategoryOptions(store.Categories(), f.Category),
			Next:            next,
		},
		Alert:       alert,
		CurrentPath: switcherPath(r, next),
	})
}

// NewPart opens the part modal with reset fields.
func (h *AdminHandler) NewPart(w http.ResponseWriter, r *http.Request) {
	h.renderPartForm(w, r, h.openStore(r), http.StatusOK, catalog.NewPartForm(), returnPath(r, redirectAdminParts), nil)
}

// EditPart opens the part modal filled from the API.
func (h *AdminHandler) EditPart(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLanguage(r)
	next := returnPath(r, redirectAdminParts)

	id, err := parseIDParam(r)
	if err != nil {
		flashError(w, r, h.renderer, next, loadAlert(lang, "error_loading_part", err))
		return
	}

	store := h.openStore(r)
	p, err := store.Part(r.Context(), id)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to load part", "part_id", id, "error", err)
		flashError(w, r, h.renderer, next, loadAlert(lang, "error_loading_part", err))
		return
	}

	h.renderPartForm(w, r, store, http.StatusOK, catalog.PartFormFrom(*p), next, nil)
}

// SavePart creates or updates a part. On failure the modal is shown again
// with the submitted values and an alert.
func (h *AdminHandler) SavePart(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLanguage(r)

	if err := r.ParseForm(); err != nil {
		flashError(w, r, h.renderer, redirectAdminParts, i18n.T(lang, "error_saving"))
		return
	}
	form := catalog.ParsePartForm(r.PostForm)
	next := returnPath(r, redirectAdminParts)

	store := h.openStore(r)
	created, err := store.SavePart(r.Context(), form)
	h.saveStore(r, store)
	if err != nil {
		h.logger.WarnContext(r.Context(), "failed to save part", "part_id", form.ID, "error", err)
		h.renderPartForm(w, r, store, http.StatusUnprocessableEntity, form, next, &render.Flash{
			Message: errorAlert(lang, err),
			Type:    render.FlashError,
		})
		return
	}

	msg := "part_updated"
	if created {
		msg = "part_added"
	}
	h.logger.InfoContext(r.Context(), "part saved", "name", form.Name, "created", created)
	flashSuccess(w, r, h.renderer, next, i18n.T(lang, msg))
}

// TogglePart flips a part's active flag.
func (h *AdminHandler) TogglePart(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLanguage(r)
	next := returnPath(r, redirectAdminParts)

	id, err := parseIDParam(r)
	if err != nil {
		flashError(w, r, h.renderer, next, errorAlert(lang, err))
		return
	}

	store := h.openStore(r)
	err = store.TogglePart(r.Context(), id)
	h.saveStore(r, store)
	if err != nil {
		h.logger.WarnContext(r.Context(), "failed to toggle part", "part_id", id, "error", err)
		flashError(w, r, h.renderer, next, errorAlert(lang, err))
		return
	}

	flashSuccess(w, r, h.renderer, next, i18n.T(lang, "part_status_changed"))
}

// ConfirmDeletePart shows the delete prompt.
func (h *AdminHandler) ConfirmDeletePart(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLanguage(r)
	next := returnPath(r, redirectAdminParts)

	id, err := parseIDParam(r)
	if err != nil {
		flashError(w, r, h.renderer, next, errorAlert(lang, err))
		return
	}

	var subject string
	for _, p := range h.openStore(r).Parts() {
		if p.ID == id {
			subject = p.LocalizedName(lang)
			break
		}
	}

	h.renderConfirm(w, r, confirmData{
		MessageKey: "confirm_delete_part",
		Subject:    subject,
		ActionURL:  fmt.Sprintf("%s%s/%d/delete", RouteAdmin, RouteParts, id),
		CancelURL:  next,
		Next:       next,
	})
}

// DeletePart deletes a part.
func (h *AdminHandler) DeletePart(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLanguage(r)
	next := returnPath(r, redirectAdminParts)

	id, err := parseIDParam(r)
	if err != nil {
		flashError(w, r, h.renderer, next, errorAlert(lang, err))
		return
	}

	store := h.openStore(r)
	err = store.DeletePart(r.Context(), id)
	h.saveStore(r, store)
	if err != nil {
		h.logger.WarnContext(r.Context(), "failed to delete part", "part_id", id, "error", err)
		flashError(w, r, h.renderer, next, errorAlert(lang, err))
		return
	}

	h.logger.InfoContext(r.Context(), "part deleted", "part_id", id)
	flashSuccess(w, r, h.renderer, next, i18n.T(lang, "part_deleted"))
}
