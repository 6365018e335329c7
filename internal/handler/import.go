package handler

import (
	"net/http"

	"github.com/vorokhovskii-creator/felix-hub/internal/i18n"
	"github.com/vorokhovskii-creator/felix-hub/internal/middleware"
)

// ConfirmImport shows the import prompt.
func (h *AdminHandler) ConfirmImport(w http.ResponseWriter, r *http.Request) {
	next := returnPath(r, redirectAdmin)
	h.renderConfirm(w, r, confirmData{
		MessageKey: "confirm_import_catalog",
		ActionURL:  RouteAdmin + RouteImport,
		CancelURL:  next,
		Next:       next,
	})
}

// Import loads the default catalog on the API and shows its message.
func (h *AdminHandler) Import(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLanguage(r)
	next := returnPath(r, redirectAdmin)

	store := h.openStore(r)
	msg, err := store.ImportDefault(r.Context())
	h.saveStore(r, store)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to import default catalog", "error", err)
		flashError(w, r, h.renderer, next, errorAlert(lang, err))
		return
	}

	if msg == "" {
		msg = i18n.T(lang, "catalog_imported")
	}
	h.logger.InfoContext(r.Context(), "default catalog imported", "message", msg)
	flashSuccess(w, r, h.renderer, next, msg)
}
