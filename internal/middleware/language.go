package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"slices"

	"github.com/alexedwards/scs/v2"

	"github.com/vorokhovskii-creator/felix-hub/internal/i18n"
	"github.com/vorokhovskii-creator/felix-hub/internal/logging"
	"github.com/vorokhovskii-creator/felix-hub/internal/session"
)

// LanguageCookieName is the cookie name for language preference.
const LanguageCookieName = "felix_lang"

// LanguageConfig controls how the request language is resolved.
type LanguageConfig struct {
	// Sessions is consulted when the cookie is missing. May be nil.
	Sessions *scs.SessionManager
	// NegotiatePaths are paths where Accept-Language is consulted before
	// falling back to the default, so a first visit to the login page
	// speaks the browser's language.
	NegotiatePaths []string
}

// Language creates middleware that resolves the interface language.
// Priority order:
// 1. felix_lang cookie, when it names a supported language
// 2. Language stored in the console session
// 3. Accept-Language header, on NegotiatePaths only
// 4. Default language (ru)
func Language(cfg LanguageConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := resolveLanguage(r, cfg)
			ctx := context.WithValue(r.Context(), ContextKeyLanguage, lang)
			ctx = logging.WithAttrs(ctx, slog.String("lang", lang))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func resolveLanguage(r *http.Request, cfg LanguageConfig) string {
	if cookie, err := r.Cookie(LanguageCookieName); err == nil {
		if lang, err := i18n.Normalize(cookie.Value); err == nil {
			return lang
		}
	}

	if cfg.Sessions != nil {
		if lang, err := i18n.Normalize(session.Language(r.Context(), cfg.Sessions)); err == nil {
			return lang
		}
	}

	if slices.Contains(cfg.NegotiatePaths, r.URL.Path) {
		if accept := r.Header.Get("Accept-Language"); accept != "" {
			return i18n.MatchLanguage(accept)
		}
	}

	return i18n.DefaultLanguage
}

// GetLanguage returns the resolved language for the request, or the default
// language when the middleware did not run.
func GetLanguage(r *http.Request) string {
	return LanguageFromContext(r.Context())
}

// LanguageFromContext is GetLanguage for code that only holds a context.
func LanguageFromContext(ctx context.Context) string {
	if lang, ok := ctx.Value(ContextKeyLanguage).(string); ok && lang != "" {
		return lang
	}
	return i18n.DefaultLanguage
}

// SetLanguageCookie sets the language preference cookie.
func SetLanguageCookie(w http.ResponseWriter, lang string, secure bool) {
	cookie := &http.Cookie{
		Name:     LanguageCookieName,
		Value:    lang,
		Path:     "/",
		MaxAge:   365 * 24 * 60 * 60, // 1 year
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	http.SetCookie(w, cookie)
}
