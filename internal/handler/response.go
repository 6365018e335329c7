// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/vorokhovskii-creator/felix-hub/internal/catalog"
	"github.com/vorokhovskii-creator/felix-hub/internal/catalogapi"
	"github.com/vorokhovskii-creator/felix-hub/internal/i18n"
	"github.com/vorokhovskii-creator/felix-hub/internal/render"
)

// flashAndRedirect sets a flash message and redirects to the given URL.
// Uses http.StatusSeeOther (303) for POST redirects.
func flashAndRedirect(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, url, message, messageType string) {
	renderer.SetFlash(r, message, messageType)
	http.Redirect(w, r, url, http.StatusSeeOther)
}

// flashError sets an error flash message and redirects to the given URL.
func flashError(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, url, message string) {
	flashAndRedirect(w, r, renderer, url, message, render.FlashError)
}

// flashSuccess sets a success flash message and redirects to the given URL.
func flashSuccess(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, url, message string) {
	flashAndRedirect(w, r, renderer, url, message, render.FlashSuccess)
}

// logAndHTTPError logs an error and writes an HTTP error response.
func logAndHTTPError(w http.ResponseWriter, message string, statusCode int, logMsg string, args ...any) {
	slog.Error(logMsg, args...)
	http.Error(w, message, statusCode)
}

// logAndInternalError logs an error and writes a 500 Internal Server Error response.
func logAndInternalError(w http.ResponseWriter, logMsg string, args ...any) {
	logAndHTTPError(w, "Internal Server Error", http.StatusInternalServerError, logMsg, args...)
}

// renderPage renders a page and turns a template failure into a 500.
// Pages re-rendered by a POST send the language switcher to the dashboard
// unless the handler chose a path.
func renderPage(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, status int, name string, data render.TemplateData) {
	if data.CurrentPath == "" && r.Method != http.MethodGet && r.Method != http.MethodHead {
		data.CurrentPath = redirectAdmin
	}
	if err := renderer.RenderStatus(w, r, status, name, data); err != nil {
		logAndInternalError(w, "failed to render page", "page", name, "error", err)
	}
}

// apiMessage is the text shown for a failed catalog call: the server's own
// message when it sent one, otherwise a translated fallback.
func apiMessage(lang string, err error) string {
	if errors.Is(err, catalogapi.ErrUnavailable) {
		return i18n.T(lang, "error_unavailable")
	}
	if errors.Is(err, catalog.ErrSortOrderRange) {
		return i18n.T(lang, "invalid_sort_order")
	}
	if errors.Is(err, catalog.ErrInvalidID) {
		return err.Error()
	}
	return catalogapi.MessageOf(err, i18n.T(lang, "error"))
}

// errorAlert formats a failed mutation as "Error: <message>".
func errorAlert(lang string, err error) string {
	return i18n.T(lang, "error_with_message", apiMessage(lang, err))
}

// loadAlert formats a failed load as "<heading>: <message>".
func loadAlert(lang, headingKey string, err error) string {
	return i18n.T(lang, headingKey) + ": " + apiMessage(lang, err)
}

// parseIDParam reads the {id} route parameter.
func parseIDParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, catalog.ErrInvalidID
	}
	return id, nil
}

// returnPath is the request's "next" value when it is a local path,
// otherwise fallback.
func returnPath(r *http.Request, fallback string) string {
	return localRedirect(r.FormValue(paramNext), fallback)
}

// switcherPath is where the language switcher returns to from a modal: the
// modal itself on GET, the dashboard view it came from after a POST.
func switcherPath(r *http.Request, next string) string {
	if r.Method == http.MethodGet {
		return ""
	}
	return next
}

// dashboardURL is the dashboard path for a tab and its filters. Empty
// values are left out.
func dashboardURL(tab, status, category, query string) string {
	v := url.Values{}
	for k, val := range map[string]string{"tab": tab, "status": status, "category": category, "q": query} {
		if val != "" {
			v.Set(k, val)
		}
	}
	if len(v) == 0 {
		return RouteAdmin
	}
	return RouteAdmin + "?" + v.Encode()
}

// localRedirect returns target when it is a path on this site, else fallback.
func localRedirect(target, fallback string) string {
	if target == "" || !strings.HasPrefix(target, "/") ||
		strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return fallback
	}
	u, err := url.Parse(target)
	if err != nil || u.IsAbs() || u.Host != "" {
		return fallback
	}
	return target
}
