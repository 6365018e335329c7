// Package i18n provides internationalization support for the admin UI.
package i18n

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/text/language"
)

//go:embed locales
var localesFS embed.FS

// Message represents a single translatable message.
type Message struct {
	ID          string `json:"id"`
	Message     string `json:"message"`
	Translation string `json:"translation"`
}

// MessageFile represents the structure of a messages JSON file.
type MessageFile struct {
	Language string    `json:"language"`
	Messages []Message `json:"messages"`
}

// Supported language codes.
const (
	LangRU = "ru"
	LangEN = "en"
	LangHE = "he"
)

// DefaultLanguage is used when no preference is stored and as the
// translation fallback dictionary.
const DefaultLanguage = LangRU

// SupportedLanguages is the closed set of UI languages.
var SupportedLanguages = []string{LangRU, LangEN, LangHE}

// ErrInvalidLanguage is returned for codes outside SupportedLanguages.
var ErrInvalidLanguage = errors.New("invalid language")

// Catalog holds all translations for all supported languages.
// Translations are loaded once and never mutated afterwards.
type Catalog struct {
	mu           sync.RWMutex
	translations map[string]map[string]string // lang -> key -> translation
	matcher      language.Matcher
	supported    []language.Tag
	logger       *slog.Logger
}

// catalog is the global catalog instance.
var catalog *Catalog

// Init initializes the i18n system with the given logger.
func Init(logger *slog.Logger) error {
	c := newCatalog(logger)
	for _, lang := range SupportedLanguages {
		if err := c.loadLanguage(lang); err != nil {
			return fmt.Errorf("failed to load language %s: %w", lang, err)
		}
	}
	catalog = c

	if logger != nil {
		logger.Info("i18n initialized", "languages", SupportedLanguages)
	}
	return nil
}

func newCatalog(logger *slog.Logger) *Catalog {
	tags := make([]language.Tag, 0, len(SupportedLanguages))
	for _, lang := range SupportedLanguages {
		tags = append(tags, language.MustParse(lang))
	}
	return &Catalog{
		translations: make(map[string]map[string]string),
		matcher:      language.NewMatcher(tags),
		supported:    tags,
		logger:       logger,
	}
}

// loadLanguage loads translations for a specific language.
func (c *Catalog) loadLanguage(lang string) error {
	path := fmt.Sprintf("locales/%s/messages.json", lang)
	data, err := localesFS.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	var msgFile MessageFile
	if err := json.Unmarshal(data, &msgFile); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.translations[lang] = make(map[string]string, len(msgFile.Messages))
	for _, msg := range msgFile.Messages {
		c.translations[lang][msg.ID] = msg.Translation
	}

	if c.logger != nil {
		c.logger.Debug("loaded translations", "language", lang, "count", len(msgFile.Messages))
	}
	return nil
}

// T looks up key in lang's dictionary, then in the ru dictionary, and finally
// returns the key itself (logging a warning).
func (c *Catalog) T(lang, key string, args ...any) string {
	c.mu.RLock()
	translation, ok := c.translations[lang][key]
	if (!ok || translation == "") && lang != DefaultLanguage {
		translation, ok = c.translations[DefaultLanguage][key]
	}
	c.mu.RUnlock()

	if !ok || translation == "" {
		if c.logger != nil {
			c.logger.Warn("translation not found", "key", key, "lang", lang)
		}
		return key
	}

	if len(args) > 0 {
		return fmt.Sprintf(translation, args...)
	}
	return translation
}

// T translates a message key to the specified language using the global catalog.
// If the key is not found, it returns the key itself.
func T(lang, key string, args ...any) string {
	if catalog == nil {
		return key
	}
	return catalog.T(lang, key, args...)
}

// Normalize validates a language code against the closed set and returns its
// canonical form.
func Normalize(code string) (string, error) {
	lang := strings.ToLower(strings.TrimSpace(code))
	for _, supported := range SupportedLanguages {
		if supported == lang {
			return lang, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidLanguage, code)
}

// IsSupported checks if a language code is supported.
func IsSupported(lang string) bool {
	_, err := Normalize(lang)
	return err == nil
}

// Direction returns the text direction for a language: rtl for Hebrew only.
func Direction(lang string) string {
	if lang == LangHE {
		return "rtl"
	}
	return "ltr"
}

// MatchLanguage finds the best matching supported language for an
// Accept-Language header value, falling back to DefaultLanguage.
func MatchLanguage(acceptLang string) string {
	if catalog == nil || acceptLang == "" {
		return DefaultLanguage
	}

	tags, _, err := language.ParseAcceptLanguage(acceptLang)
	if err != nil || len(tags) == 0 {
		return DefaultLanguage
	}

	_, idx, conf := catalog.matcher.Match(tags...)
	if conf == language.No || idx < 0 || idx >= len(catalog.supported) {
		return DefaultLanguage
	}
	base, _ := catalog.supported[idx].Base()
	return base.String()
}

// TranslationCount returns the number of translations loaded for a language.
func TranslationCount(lang string) int {
	if catalog == nil {
		return 0
	}

	catalog.mu.RLock()
	defer catalog.mu.RUnlock()
	return len(catalog.translations[lang])
}
