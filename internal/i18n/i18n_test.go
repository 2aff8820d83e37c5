package i18n

import "testing"

// Every key present in any language must be present in all of them,
// otherwise some users silently get English (or the raw key) mid-dialogue.
func TestTranslationsComplete(t *testing.T) {
	keys := make(map[string]bool)
	for _, msgs := range translations {
		for k := range msgs {
			keys[k] = true
		}
	}

	for _, lang := range Supported {
		msgs, ok := translations[lang]
		if !ok {
			t.Fatalf("language %q has no translation table", lang)
		}
		for k := range keys {
			if v, ok := msgs[k]; !ok || v == "" {
				t.Errorf("language %q missing key %q", lang, k)
			}
		}
	}
}

func TestTFallsBackToEnglish(t *testing.T) {
	if got := T(Lang("xx"), "welcome"); got != translations[LangEnglish]["welcome"] {
		t.Errorf("T(xx, welcome) = %q, want English fallback", got)
	}
	if got := T(LangRussian, "no_such_key"); got != "no_such_key" {
		t.Errorf("T with unknown key = %q, want the key itself", got)
	}
}

func TestLanguageButtonsCoverSupported(t *testing.T) {
	seen := make(map[Lang]bool)
	for _, lang := range LanguageButtons {
		if !Valid(lang) {
			t.Errorf("language button maps to invalid language %q", lang)
		}
		seen[lang] = true
	}
	for _, lang := range Supported {
		if !seen[lang] {
			t.Errorf("no selection button for language %q", lang)
		}
	}
}

func TestValid(t *testing.T) {
	for _, lang := range Supported {
		if !Valid(lang) {
			t.Errorf("Valid(%q) = false", lang)
		}
	}
	if Valid(Lang("de")) {
		t.Error("Valid(de) = true")
	}
}
