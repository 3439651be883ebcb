// Package i18n translates the in-game UI strings.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var localeFS embed.FS

// Localizer resolves message ids for one language, falling back to English.
type Localizer struct {
	loc  *goi18n.Localizer
	lang language.Tag
}

var bundle = mustBundle()

func mustBundle() *goi18n.Bundle {
	b := goi18n.NewBundle(language.English)
	b.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	entries, err := fs.Glob(localeFS, "locales/*.toml")
	if err != nil {
		panic(err)
	}
	for _, name := range entries {
		if _, err := b.LoadMessageFileFS(localeFS, name); err != nil {
			panic(fmt.Sprintf("i18n: load %s: %v", name, err))
		}
	}
	return b
}

// New returns a Localizer for lang, e.g. "en" or "fr-CA". Languages without
// a catalog fall back to English.
func New(lang string) (*Localizer, error) {
	lang = strings.TrimSpace(lang)
	if lang == "" {
		lang = "en"
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return nil, fmt.Errorf("parse language %q: %w", lang, err)
	}
	matcher := language.NewMatcher(bundle.LanguageTags())
	_, idx, _ := matcher.Match(tag)
	matched := bundle.LanguageTags()[idx]
	return &Localizer{
		loc:  goi18n.NewLocalizer(bundle, matched.String(), language.English.String()),
		lang: matched,
	}, nil
}

// English is the fallback Localizer.
func English() *Localizer {
	l, _ := New("en")
	return l
}

// Language is the matched catalog language.
func (l *Localizer) Language() string {
	return l.lang.String()
}

// T translates id. Unknown ids are returned as-is.
func (l *Localizer) T(id string) string {
	return l.Tf(id, nil)
}

// Tf translates id with template data.
func (l *Localizer) Tf(id string, data map[string]any) string {
	if l == nil || id == "" {
		return id
	}
	msg, err := l.loc.Localize(&goi18n.LocalizeConfig{MessageID: id, TemplateData: data})
	if err != nil || msg == "" {
		return id
	}
	return msg
}

// Languages lists the bundled catalogs.
func Languages() []string {
	entries, _ := fs.Glob(localeFS, "locales/*.toml")
	out := make([]string, 0, len(entries))
	for _, name := range entries {
		out = append(out, strings.TrimSuffix(path.Base(name), ".toml"))
	}
	sort.Strings(out)
	return out
}
