package handler

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vorokhovskii-creator/felix-hub/internal/i18n"
	"github.com/vorokhovskii-creator/felix-hub/internal/middleware"
)

func languageCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == middleware.LanguageCookieName {
			return c
		}
	}
	return nil
}

func TestSetLanguage(t *testing.T) {
	env := newTestEnv(t)

	resp, _ := env.post(t, "/set_language/EN", url.Values{"next": {"/admin?tab=categories"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/admin?tab=categories", resp.Header.Get("Location"))

	cookie := languageCookie(resp)
	require.NotNil(t, cookie)
	assert.Equal(t, i18n.LangEN, cookie.Value)
	assert.Equal(t, []string{i18n.LangEN}, env.fake.Languages())

	_, body := env.follow(t, resp)
	assert.Contains(t, body, `<html lang="en" dir="ltr">`)
	assert.Contains(t, body, i18n.T(i18n.LangEN, "language_changed"))
	assert.Contains(t, body, i18n.T(i18n.LangEN, "categories"))
}

func TestSetLanguageHebrewIsRTL(t *testing.T) {
	env := newTestEnv(t)

	resp, _ := env.post(t, "/set_language/he", nil)
	assert.Equal(t, "/admin", resp.Header.Get("Location"))

	_, body := env.follow(t, resp)
	assert.Contains(t, body, `<html lang="he" dir="rtl">`)
}

func TestSetLanguageRejectsUnknownCode(t *testing.T) {
	env := newTestEnv(t)

	resp, _ := env.post(t, "/set_language/de", url.Values{"next": {"/admin"}})
	assert.Nil(t, languageCookie(resp))
	assert.Empty(t, env.fake.Languages(), "an invalid code must not reach the API")

	_, body := env.follow(t, resp)
	assert.Contains(t, body, tr("invalid_language", "de"))
	assert.Contains(t, body, `<html lang="ru"`)
}

func TestSetLanguageIgnoresForeignRedirect(t *testing.T) {
	env := newTestEnv(t)

	for _, next := range []string{"//evil.example/", "https://evil.example/", "/\\evil.example", "admin"} {
		resp, _ := env.post(t, "/set_language/en", url.Values{"next": {next}})
		assert.Equal(t, "/admin", resp.Header.Get("Location"), "next=%q", next)
	}
}

func TestSetLanguageSurvivesAPIFailure(t *testing.T) {
	env := newTestEnv(t)
	env.fake.FailWith(http.StatusInternalServerError, "session store down")

	resp, _ := env.post(t, "/set_language/en", nil)
	cookie := languageCookie(resp)
	require.NotNil(t, cookie, "a failed notification must not undo the local switch")
	assert.Equal(t, i18n.LangEN, cookie.Value)
}

func TestSetLanguageDropsLoadedLists(t *testing.T) {
	env := newTestEnv(t)
	env.fake.AddCategory("Engine", true)
	env.get(t, "/admin")

	env.post(t, "/set_language/en", nil)
	env.fake.ResetRequests()

	env.get(t, "/admin")
	assert.Contains(t, env.fake.Requests(), "GET /api/categories", "lists must reload in the new language")
}
