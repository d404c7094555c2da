// Package render turns activity subjects and messages into display strings.
//
// Subjects and messages are treated as translation keys first. When the
// translator has no entry the raw template is expanded with the event params,
// either printf style ("%s shared %s") or positional ("{0} shared {1}").
package render

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-activity/pkg/activity"
	i18n "github.com/goliatone/go-i18n"
	"github.com/jaytaylor/html2text"
)

// Rendered holds the display strings for one event.
type Rendered struct {
	Subject      string
	Message      string
	PlainMessage string
	Locale       string
}

// Renderer resolves templates through an optional translator.
type Renderer struct {
	translator    i18n.Translator
	defaultLocale string
}

// New builds a renderer. translator may be nil, in which case templates are
// only expanded with their params.
func New(translator i18n.Translator, defaultLocale string) *Renderer {
	return &Renderer{
		translator:    translator,
		defaultLocale: strings.TrimSpace(defaultLocale),
	}
}

// Render produces the subject/message pair for the given locale.
func (r *Renderer) Render(locale string, evt activity.Event) (Rendered, error) {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		locale = r.defaultLocale
	}
	subject, err := r.translate(locale, evt.Subject, evt.SubjectParams)
	if err != nil {
		return Rendered{}, fmt.Errorf("render: subject %q: %w", evt.Subject, err)
	}
	message, err := r.translate(locale, evt.Message, evt.MessageParams)
	if err != nil {
		return Rendered{}, fmt.Errorf("render: message %q: %w", evt.Message, err)
	}
	plain, err := PlainText(message)
	if err != nil {
		return Rendered{}, fmt.Errorf("render: plain text: %w", err)
	}
	return Rendered{
		Subject:      subject,
		Message:      message,
		PlainMessage: plain,
		Locale:       locale,
	}, nil
}

func (r *Renderer) translate(locale, key string, params []any) (string, error) {
	if key == "" {
		return "", nil
	}
	if r.translator != nil {
		out, err := r.translator.Translate(locale, key, params...)
		if err == nil {
			return out, nil
		}
		if !errors.Is(err, i18n.ErrMissingTranslation) {
			return "", err
		}
	}
	return Expand(key, params), nil
}

// Expand substitutes params into a raw template. Templates with "{n}"
// placeholders are expanded positionally and "%%" is unescaped; other
// templates go through fmt.Sprintf only when every verb has a param.
// Anything else is returned as written.
func Expand(template string, params []any) string {
	if len(params) == 0 {
		return template
	}
	if !hasPositional(template) {
		n := countVerbs(template)
		switch {
		case n == 0:
			return strings.ReplaceAll(template, "%%", "%")
		case n <= len(params):
			return fmt.Sprintf(template, params[:n]...)
		default:
			return template
		}
	}
	pairs := make([]string, 0, len(params)*2+2)
	pairs = append(pairs, "%%", "%")
	for i, p := range params {
		pairs = append(pairs, "{"+strconv.Itoa(i)+"}", fmt.Sprint(p))
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// PlainText strips markup from rich messages.
func PlainText(message string) (string, error) {
	if !strings.Contains(message, "<") {
		return message, nil
	}
	return html2text.FromString(message, html2text.Options{OmitLinks: true})
}

func hasPositional(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] != '{' {
			continue
		}
		j := i + 1
		for j < len(s) && s[j] >= '0' && s[j] <= '9' {
			j++
		}
		if j > i+1 && j < len(s) && s[j] == '}' {
			return true
		}
	}
	return false
}

func countVerbs(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] != '%' {
			continue
		}
		if i+1 < len(s) && s[i+1] == '%' {
			i++
			continue
		}
		n++
	}
	return n
}
