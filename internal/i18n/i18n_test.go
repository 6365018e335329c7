package i18n

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
)

func TestInit(t *testing.T) {
	if err := Init(nil); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	for _, lang := range SupportedLanguages {
		if TranslationCount(lang) == 0 {
			t.Errorf("Expected %s translations to be loaded", lang)
		}
	}
}

func TestT(t *testing.T) {
	if err := Init(nil); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	tests := []struct {
		lang     string
		key      string
		args     []any
		expected string
	}{
		{"ru", "save", nil, "Сохранить"},
		{"en", "save", nil, "Save"},
		{"he", "save", nil, "שמור"},
		{"en", "no_parts", nil, "No Parts Found"},
		{"en", "error_with_message", []any{"boom"}, "Error: boom"},
		{"ru", "error_with_message", []any{"boom"}, "Ошибка: boom"},
		// Key present only in the ru dictionary falls back to ru
		{"en", "language_name_he", nil, "עברית"},
		{"he", "language_name_en", nil, "English"},
		// Unknown language uses the ru dictionary
		{"de", "cancel", nil, "Отмена"},
		// Unknown key is returned unchanged
		{"ru", "nonexistent.key", nil, "nonexistent.key"},
		{"en", "nonexistent.key", nil, "nonexistent.key"},
		{"he", "nonexistent.key", nil, "nonexistent.key"},
	}

	for _, tt := range tests {
		t.Run(tt.lang+"_"+tt.key, func(t *testing.T) {
			result := T(tt.lang, tt.key, tt.args...)
			if result != tt.expected {
				t.Errorf("T(%q, %q, %v) = %q, want %q", tt.lang, tt.key, tt.args, result, tt.expected)
			}
		})
	}
}

func TestCatalogFallbackOnEmptyTranslation(t *testing.T) {
	c := newCatalog(nil)
	c.translations["ru"] = map[string]string{"only_ru": "только", "blank": "пусто"}
	c.translations["en"] = map[string]string{"blank": ""}

	if got := c.T("en", "only_ru"); got != "только" {
		t.Errorf("T(en, only_ru) = %q, want ru value", got)
	}
	if got := c.T("en", "blank"); got != "пусто" {
		t.Errorf("T(en, blank) = %q, want ru value for empty translation", got)
	}
	if got := c.T("en", "missing"); got != "missing" {
		t.Errorf("T(en, missing) = %q, want key", got)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		code    string
		want    string
		wantErr bool
	}{
		{"ru", "ru", false},
		{"en", "en", false},
		{"he", "he", false},
		{" HE ", "he", false},
		{"de", "", true},
		{"", "", true},
		{"ru-RU", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			got, err := Normalize(tt.code)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidLanguage) {
					t.Errorf("Normalize(%q) error = %v, want ErrInvalidLanguage", tt.code, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("Normalize(%q) = %q, %v; want %q", tt.code, got, err, tt.want)
			}
			if !IsSupported(tt.code) {
				t.Errorf("IsSupported(%q) = false", tt.code)
			}
		})
	}
}

func TestDirection(t *testing.T) {
	for _, lang := range SupportedLanguages {
		want := "ltr"
		if lang == LangHE {
			want = "rtl"
		}
		if got := Direction(lang); got != want {
			t.Errorf("Direction(%q) = %q, want %q", lang, got, want)
		}
	}
}

func TestMatchLanguage(t *testing.T) {
	if err := Init(nil); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	tests := []struct {
		input    string
		expected string
	}{
		{"en", "en"},
		{"he", "he"},
		{"en-US", "en"},
		{"he-IL,he;q=0.9", "he"},
		{"de", "ru"},
		{"", "ru"},
		{"ru-RU, en;q=0.9", "ru"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if result := MatchLanguage(tt.input); result != tt.expected {
				t.Errorf("MatchLanguage(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func loadMessageFile(t *testing.T, lang string) MessageFile {
	t.Helper()
	path := fmt.Sprintf("locales/%s/messages.json", lang)
	data, err := localesFS.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	var msgFile MessageFile
	if err := json.Unmarshal(data, &msgFile); err != nil {
		t.Fatalf("Failed to parse %s: %v", path, err)
	}
	return msgFile
}

func TestTranslationFilesNoDuplicates(t *testing.T) {
	for _, lang := range SupportedLanguages {
		t.Run(lang, func(t *testing.T) {
			seen := make(map[string]bool)
			for _, msg := range loadMessageFile(t, lang).Messages {
				if seen[msg.ID] {
					t.Errorf("duplicate translation ID %q in %s", msg.ID, lang)
				}
				seen[msg.ID] = true
			}
		})
	}
}

func TestDefaultDictionaryIsSuperset(t *testing.T) {
	ref := make(map[string]bool)
	for _, msg := range loadMessageFile(t, DefaultLanguage).Messages {
		ref[msg.ID] = true
	}

	for _, lang := range SupportedLanguages {
		for _, msg := range loadMessageFile(t, lang).Messages {
			if !ref[msg.ID] {
				t.Errorf("key %q in %s is missing from %s", msg.ID, lang, DefaultLanguage)
			}
		}
	}
}
