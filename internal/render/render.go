// Package render executes page templates and runs the document passes:
// localization repaint, then mobile adaptation.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/vorokhovskii-creator/felix-hub/internal/dom"
	"github.com/vorokhovskii-creator/felix-hub/internal/i18n"
	"github.com/vorokhovskii-creator/felix-hub/internal/middleware"
	"github.com/vorokhovskii-creator/felix-hub/internal/mobile"
)

// Flash types.
const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashInfo    = "info"
)

const (
	sessionKeyFlash     = "flash"
	sessionKeyFlashType = "flash_type"
)

// DefaultAlertDuration is how long an alert stays before the asset removes it.
const DefaultAlertDuration = 5 * time.Second

// Renderer handles template rendering with caching.
type Renderer struct {
	templates      map[string]*template.Template
	sessionManager *scs.SessionManager
	alertDuration  time.Duration
	loginRequired  bool
	version        string
}

// Config holds renderer configuration.
type Config struct {
	TemplatesFS    fs.FS
	SessionManager *scs.SessionManager
	AlertDuration  time.Duration
	LoginRequired  bool
	Version        string
}

// New creates a new Renderer with parsed templates.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		templates:      make(map[string]*template.Template),
		sessionManager: cfg.SessionManager,
		alertDuration:  cfg.AlertDuration,
		loginRequired:  cfg.LoginRequired,
		version:        cfg.Version,
	}
	if r.alertDuration <= 0 {
		r.alertDuration = DefaultAlertDuration
	}

	if err := r.parseTemplates(cfg.TemplatesFS); err != nil {
		return nil, err
	}

	return r, nil
}

const baseLayout = "layouts/base.html"

// parseTemplates builds one template set per page: base layout, partials,
// then the page. Pages live in admin/ and auth/ and are named dir/file.
func (r *Renderer) parseTemplates(templatesFS fs.FS) error {
	partials, err := templateFiles(templatesFS, "partials")
	if err != nil {
		return fmt.Errorf("getting partials: %w", err)
	}

	for _, dir := range []string{"admin", "auth"} {
		pages, err := templateFiles(templatesFS, dir)
		if err != nil {
			return fmt.Errorf("getting %s templates: %w", dir, err)
		}

		for _, page := range pages {
			name := dir + "/" + strings.TrimSuffix(path.Base(page), ".html")

			files := append([]string{baseLayout}, partials...)
			files = append(files, page)

			tmpl, err := template.New("").Funcs(templateFuncs()).ParseFS(templatesFS, files...)
			if err != nil {
				return fmt.Errorf("parsing template %s: %w", name, err)
			}
			r.templates[name] = tmpl
		}
	}

	if len(r.templates) == 0 {
		return fmt.Errorf("no page templates found")
	}
	return nil
}

// templateFiles returns all .html files in a directory; a missing
// directory yields none.
func templateFiles(templatesFS fs.FS, dir string) ([]string, error) {
	entries, err := fs.ReadDir(templatesFS, dir)
	if err != nil {
		return nil, nil
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".html") {
			files = append(files, path.Join(dir, entry.Name()))
		}
	}
	return files, nil
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		// t translates in the page language for attribute values that the
		// repaint pass does not touch.
		"t": func(lang, key string, args ...any) string {
			return i18n.T(lang, key, args...)
		},
		"query": func(pairs ...string) template.URL {
			v := url.Values{}
			for i := 0; i+1 < len(pairs); i += 2 {
				if pairs[i+1] != "" {
					v.Set(pairs[i], pairs[i+1])
				}
			}
			if len(v) == 0 {
				return ""
			}
			return template.URL("?" + v.Encode())
		},
	}
}

// Flash is a one-shot alert carried in the session across a redirect.
type Flash struct {
	Message string
	Type    string
}

// LanguageOption is one entry of the language switcher.
type LanguageOption struct {
	Code   string
	Label  string
	Active bool
}

// nativeNames label the switcher in each language's own script.
var nativeNames = map[string]string{
	i18n.LangRU: "Русский",
	i18n.LangEN: "English",
	i18n.LangHE: "עברית",
}

// TemplateData holds data passed to templates.
type TemplateData struct {
	// Title is a translation key.
	Title string
	Data  any
	// Alert is shown inside the page, for example in a form that failed to save.
	Alert *Flash
	// HideNav drops the admin navigation, for pages shown before login.
	HideNav bool

	// CurrentPath is the page the language switcher returns to. Render
	// uses the request URI when it is empty.
	CurrentPath string

	// Filled in by Render.
	Flash         *Flash
	Lang          string
	Dir           string
	Languages     []LanguageOption
	User          string
	LoginRequired bool
	AlertMillis   int64
	CurrentYear   int
	Version       string
}

// Render renders a page with status 200.
func (r *Renderer) Render(w http.ResponseWriter, req *http.Request, name string, data TemplateData) error {
	return r.RenderStatus(w, req, http.StatusOK, name, data)
}

// RenderStatus executes the page template, repaints it in the request
// language, adapts it to the requesting device and writes it.
func (r *Renderer) RenderStatus(w http.ResponseWriter, req *http.Request, status int, name string, data TemplateData) error {
	tmpl, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("template %s not found", name)
	}

	lang := middleware.GetLanguage(req)
	r.fill(req, lang, &data)

	buf := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(buf, "base", data); err != nil {
		return fmt.Errorf("executing template %s: %w", name, err)
	}

	out, err := Document(buf, lang, mobile.FromContext(req.Context()))
	if err != nil {
		return fmt.Errorf("post-processing template %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = out.WriteTo(w)
	return nil
}

func (r *Renderer) fill(req *http.Request, lang string, data *TemplateData) {
	data.Lang = lang
	data.Dir = i18n.Direction(lang)
	if data.CurrentPath == "" {
		data.CurrentPath = req.URL.RequestURI()
	}
	data.User = middleware.GetUser(req)
	data.LoginRequired = r.loginRequired
	data.AlertMillis = r.alertDuration.Milliseconds()
	data.CurrentYear = time.Now().Year()
	data.Version = r.version

	for _, code := range i18n.SupportedLanguages {
		data.Languages = append(data.Languages, LanguageOption{
			Code:   code,
			Label:  nativeNames[code],
			Active: code == lang,
		})
	}

	if r.sessionManager != nil {
		ctx := req.Context()
		if msg := r.sessionManager.PopString(ctx, sessionKeyFlash); msg != "" {
			data.Flash = &Flash{Message: msg, Type: r.sessionManager.PopString(ctx, sessionKeyFlashType)}
			if data.Flash.Type == "" {
				data.Flash.Type = FlashInfo
			}
		}
	}
}

// Document runs the document passes over rendered HTML: the localization
// repaint first, then the mobile passes, whose nav toggle label is taken
// from the repainted language.
func Document(src *bytes.Buffer, lang string, d mobile.Device) (*bytes.Buffer, error) {
	doc, err := dom.Parse(src)
	if err != nil {
		return nil, err
	}

	i18n.Apply(doc, lang)
	mobile.Adapt(doc, d, i18n.T(lang, "menu"))

	out := new(bytes.Buffer)
	if err := dom.Render(out, doc); err != nil {
		return nil, err
	}
	return out, nil
}

// SetFlash sets a flash message in the session.
func (r *Renderer) SetFlash(req *http.Request, message, flashType string) {
	if r.sessionManager != nil {
		r.sessionManager.Put(req.Context(), sessionKeyFlash, message)
		r.sessionManager.Put(req.Context(), sessionKeyFlashType, flashType)
	}
}
