// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"bytes"
	"html/template"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/alexedwards/scs/v2"

	"github.com/vorokhovskii-creator/felix-hub/internal/i18n"
	"github.com/vorokhovskii-creator/felix-hub/internal/middleware"
	"github.com/vorokhovskii-creator/felix-hub/internal/mobile"
)

func TestMain(m *testing.M) {
	if err := i18n.Init(slog.New(slog.DiscardHandler)); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

var testTemplates = fstest.MapFS{
	"layouts/base.html": {Data: []byte(`{{define "base"}}<!DOCTYPE html><html lang="{{.Lang}}" dir="{{.Dir}}"><head><title data-i18n="{{.Title}}">{{.Title}}</title></head>` +
		`<body>{{template "nav" .}}{{with .Flash}}<div class="alert alert-{{.Type}}" data-dismiss-after="{{$.AlertMillis}}">{{.Message}}</div>{{end}}{{template "content" .}}</body></html>{{end}}`)},
	"partials/nav.html": {Data: []byte(`{{define "nav"}}<nav class="nav"><a href="/1">1</a><a href="/2">2</a><a href="/3">3</a><a href="/4">4</a><a href="/5">5</a></nav>{{end}}`)},
	"admin/page.html": {Data: []byte(`{{define "content"}}<h1 data-i18n="parts">parts</h1>` +
		`<a href="/admin{{query "tab" "parts" "lang" .Lang}}">link</a>` +
		`<table><thead><tr><th data-i18n="table_name">table_name</th></tr></thead><tbody><tr><td>Oil Filter</td></tr></tbody></table>{{end}}`)},
}

func newTestRenderer(t *testing.T, sm *scs.SessionManager) *Renderer {
	t.Helper()
	r, err := New(Config{TemplatesFS: testTemplates, SessionManager: sm, Version: "v1"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return r
}

// languageRequest returns a request carrying the language cookie for lang.
func languageRequest(lang string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(&http.Cookie{Name: middleware.LanguageCookieName, Value: lang})
	return req
}

func TestNewRequiresPages(t *testing.T) {
	_, err := New(Config{TemplatesFS: fstest.MapFS{
		"layouts/base.html": {Data: []byte(`{{define "base"}}{{end}}`)},
	}})
	if err == nil {
		t.Fatal("expected an error without page templates")
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	r := newTestRenderer(t, nil)
	err := r.Render(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil), "admin/missing", TemplateData{})
	if err == nil {
		t.Fatal("expected an error for an unknown page")
	}
}

func TestRenderRepaintsInRequestLanguage(t *testing.T) {
	r := newTestRenderer(t, nil)

	handler := middleware.Language(middleware.LanguageConfig{})(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if err := r.Render(w, req, "admin/page", TemplateData{Title: "parts_management"}); err != nil {
			t.Errorf("Render: %v", err)
		}
	}))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, languageRequest(i18n.LangHE))

	body := w.Body.String()
	if !strings.Contains(body, `<html lang="he" dir="rtl">`) {
		t.Errorf("html element not set for Hebrew:\n%s", body)
	}
	if want := i18n.T(i18n.LangHE, "parts"); !strings.Contains(body, `<h1 data-i18n="parts">`+want+`</h1>`) {
		t.Errorf("heading not translated to %q:\n%s", want, body)
	}
	if !strings.Contains(body, `href="/admin?lang=he&amp;tab=parts"`) {
		t.Errorf("query link not built:\n%s", body)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestRenderAdaptsToDevice(t *testing.T) {
	r := newTestRenderer(t, nil)

	handler := http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		req = req.WithContext(mobile.NewContext(req.Context(), mobile.Device{Mobile: true, Width: 375}))
		if err := r.Render(w, req, "admin/page", TemplateData{Title: "parts_management"}); err != nil {
			t.Errorf("Render: %v", err)
		}
	})
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))

	body := w.Body.String()
	for _, want := range []string{
		`class="is-mobile"`,
		`class="nav-toggle"`,
		`class="table-wrapper"`,
		`class="table-cards"`,
		`data-label="` + i18n.T(i18n.DefaultLanguage, "table_name") + `"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %s:\n%s", want, body)
		}
	}
}

func TestRenderDesktopKeepsNav(t *testing.T) {
	r := newTestRenderer(t, nil)

	w := httptest.NewRecorder()
	if err := r.Render(w, httptest.NewRequest(http.MethodGet, "/admin", nil), "admin/page", TemplateData{}); err != nil {
		t.Fatalf("Render: %v", err)
	}
	body := w.Body.String()
	if !strings.Contains(body, `<nav class="nav">`) {
		t.Error("desktop nav should stay")
	}
	if strings.Contains(body, "table-cards") {
		t.Error("desktop tables should not use cards")
	}
}

func TestRenderStatus(t *testing.T) {
	r := newTestRenderer(t, nil)

	w := httptest.NewRecorder()
	if err := r.RenderStatus(w, httptest.NewRequest(http.MethodPost, "/admin", nil), http.StatusUnprocessableEntity, "admin/page", TemplateData{}); err != nil {
		t.Fatalf("RenderStatus: %v", err)
	}
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d", w.Code)
	}
}

func TestFlashShownOnce(t *testing.T) {
	sm := scs.New()
	r := newTestRenderer(t, sm)

	var bodies []string
	handler := sm.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Path == "/set" {
			r.SetFlash(req, "Saved", FlashSuccess)
			return
		}
		buf := httptest.NewRecorder()
		if err := r.Render(buf, req, "admin/page", TemplateData{}); err != nil {
			t.Errorf("Render: %v", err)
		}
		bodies = append(bodies, buf.Body.String())
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/set", nil))
	cookies := w.Result().Cookies()

	for range 2 {
		req := httptest.NewRequest(http.MethodGet, "/show", nil)
		for _, c := range cookies {
			req.AddCookie(c)
		}
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}

	if len(bodies) != 2 {
		t.Fatalf("rendered %d pages", len(bodies))
	}
	if !strings.Contains(bodies[0], `<div class="alert alert-success" data-dismiss-after="5000">Saved</div>`) {
		t.Errorf("first page should show the flash:\n%s", bodies[0])
	}
	if strings.Contains(bodies[1], "Saved") {
		t.Error("flash should be shown only once")
	}
}

func TestDocumentIsIdempotent(t *testing.T) {
	src := `<!DOCTYPE html><html><head></head><body><nav class="nav"><a>1</a><a>2</a><a>3</a><a>4</a><a>5</a></nav>` +
		`<span data-i18n="menu">menu</span><table><thead><tr><th>ID</th></tr></thead><tbody><tr><td>1</td></tr></tbody></table></body></html>`
	d := mobile.Device{Mobile: true, Width: 390}

	first, err := Document(bytes.NewBufferString(src), i18n.LangEN, d)
	if err != nil {
		t.Fatalf("Document: %v", err)
	}
	once := first.String()

	second, err := Document(bytes.NewBufferString(once), i18n.LangEN, d)
	if err != nil {
		t.Fatalf("Document: %v", err)
	}
	if second.String() != once {
		t.Errorf("second pass changed the page:\n%s\n---\n%s", once, second.String())
	}
	if n := strings.Count(once, "table-wrapper"); n != 1 {
		t.Errorf("table-wrapper count = %d", n)
	}
}

func TestQueryFunc(t *testing.T) {
	query := templateFuncs()["query"].(func(...string) template.URL)

	tests := []struct {
		pairs []string
		want  template.URL
	}{
		{nil, ""},
		{[]string{"q", ""}, ""},
		{[]string{"tab", "parts", "q", ""}, "?tab=parts"},
		{[]string{"tab", "parts", "q", "oil filter"}, "?q=oil+filter&tab=parts"},
	}
	for _, tt := range tests {
		if got := query(tt.pairs...); got != tt.want {
			t.Errorf("query(%v) = %q, want %q", tt.pairs, got, tt.want)
		}
	}
}

func TestCurrentPath(t *testing.T) {
	fsys := fstest.MapFS{
		"layouts/base.html": {Data: []byte(`{{define "base"}}<html><body>{{template "content" .}}</body></html>{{end}}`)},
		"admin/page.html":   {Data: []byte(`{{define "content"}}<input type="hidden" name="next" value="{{.CurrentPath}}">{{end}}`)},
	}
	r, err := New(Config{TemplatesFS: fsys})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	tests := []struct {
		name string
		req  *http.Request
		data TemplateData
		want string
	}{
		{"request uri", httptest.NewRequest(http.MethodGet, "/admin/parts/new?x=1", nil), TemplateData{}, `value="/admin/parts/new?x=1"`},
		{"preset kept", httptest.NewRequest(http.MethodPost, "/admin/parts/save", nil), TemplateData{CurrentPath: "/admin"}, `value="/admin"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			if err := r.Render(w, tt.req, "admin/page", tt.data); err != nil {
				t.Fatalf("Render: %v", err)
			}
			if !strings.Contains(w.Body.String(), tt.want) {
				t.Errorf("body = %s, want %s", w.Body.String(), tt.want)
			}
		})
	}
}
