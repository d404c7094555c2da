package render

import (
	"errors"
	"fmt"
	"os"
	"strings"

	i18n "github.com/goliatone/go-i18n"
	"gopkg.in/yaml.v3"
)

// ParseTranslations reads a YAML document of the form
//
//	en:
//	  files.shared: "%s shared %s with you"
//	es:
//	  files.shared: "%s compartió %s contigo"
//
// into go-i18n catalogs.
func ParseTranslations(raw []byte) (i18n.Translations, error) {
	doc := map[string]map[string]string{}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("render: parse translations: %w", err)
	}
	out := make(i18n.Translations, len(doc))
	for locale, entries := range doc {
		locale = strings.TrimSpace(locale)
		if locale == "" {
			return nil, errors.New("render: translation locale is empty")
		}
		catalog := &i18n.TranslationCatalog{
			Locale:   i18n.Locale{Code: locale},
			Messages: make(map[string]i18n.Message, len(entries)),
		}
		for key, template := range entries {
			msg := i18n.Message{}
			msg.SetContent(template)
			catalog.Messages[key] = msg
		}
		out[locale] = catalog
	}
	return out, nil
}

// LoadTranslator builds a translator from a YAML translations file.
func LoadTranslator(path, defaultLocale string) (i18n.Translator, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("render: read translations: %w", err)
	}
	translations, err := ParseTranslations(raw)
	if err != nil {
		return nil, err
	}
	if defaultLocale == "" {
		defaultLocale = "en"
	}
	return i18n.NewSimpleTranslator(i18n.NewStaticStore(translations), i18n.WithTranslatorDefaultLocale(defaultLocale))
}
