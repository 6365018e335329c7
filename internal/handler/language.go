package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"github.com/vorokhovskii-creator/felix-hub/internal/i18n"
	"github.com/vorokhovskii-creator/felix-hub/internal/middleware"
	"github.com/vorokhovskii-creator/felix-hub/internal/render"
	"github.com/vorokhovskii-creator/felix-hub/internal/session"
)

// LanguageHandler handles the language switcher.
type LanguageHandler struct {
	switcher       *i18n.Switcher
	renderer       *render.Renderer
	sessionManager *scs.SessionManager
	secureCookie   bool
	logger         *slog.Logger
}

// NewLanguageHandler creates a new LanguageHandler.
func NewLanguageHandler(switcher *i18n.Switcher, renderer *render.Renderer, sm *scs.SessionManager, secureCookie bool, logger *slog.Logger) *LanguageHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &LanguageHandler{
		switcher:       switcher,
		renderer:       renderer,
		sessionManager: sm,
		secureCookie:   secureCookie,
		logger:         logger,
	}
}

// SetLanguage handles POST /set_language/{code}. The choice is stored in the
// cookie and the session, mirrored to the API, and the browser is sent back
// to the page in the "next" form field.
func (h *LanguageHandler) SetLanguage(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	next := localRedirect(r.FormValue("next"), redirectAdmin)

	ctx := r.Context()
	lang, err := h.switcher.Switch(ctx, session.ID(ctx, h.sessionManager), code, func(lang string) {
		middleware.SetLanguageCookie(w, lang, h.secureCookie)
		session.SetLanguage(ctx, h.sessionManager, lang)
	})
	if err != nil {
		current := middleware.GetLanguage(r)
		if errors.Is(err, i18n.ErrInvalidLanguage) {
			h.logger.WarnContext(ctx, "rejected language change", "code", code)
			flashError(w, r, h.renderer, next, i18n.T(current, "invalid_language", code))
			return
		}
		h.logger.ErrorContext(ctx, "language change failed", "code", code, "error", err)
		flashError(w, r, h.renderer, next, i18n.T(current, "error"))
		return
	}

	h.logger.InfoContext(ctx, "language changed", "language", lang)
	flashSuccess(w, r, h.renderer, next, i18n.T(lang, "language_changed"))
}
