package render

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-activity/pkg/activity"
)

const translationsDoc = `
en:
  files.shared: "%s shared %s with you"
es:
  files.shared: "%s compartió %s contigo"
`

func TestParseTranslations(t *testing.T) {
	translations, err := ParseTranslations([]byte(translationsDoc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(translations) != 2 {
		t.Fatalf("expected 2 locales, got %d", len(translations))
	}
	if _, err := ParseTranslations([]byte("en: [unclosed")); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestLoadTranslatorRenders(t *testing.T) {
	path := filepath.Join(t.TempDir(), "translations.yaml")
	if err := os.WriteFile(path, []byte(translationsDoc), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	translator, err := LoadTranslator(path, "en")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	out, err := New(translator, "en").Render("es", activity.Event{
		Subject:       "files.shared",
		SubjectParams: []any{"bob", "report.pdf"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out.Subject != "bob compartió report.pdf contigo" {
		t.Fatalf("unexpected subject %q", out.Subject)
	}
}
