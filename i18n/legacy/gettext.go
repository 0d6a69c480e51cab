// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package legacy

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"
	"text/template"

	"github.com/leonelquinteros/gotext"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"

	"codeberg.org/pixivfe/tolgeefe/i18n"
)

// Domain is the gettext domain loaded for every locale.
const Domain = "messages"

// Gettext serves gettext catalogues laid out as <dir>/<locale>.po.
type Gettext struct {
	defaultLocale string
	// messages holds the singular msgstr of every translated msgid, per locale.
	messages map[string]map[string]string
	logger   zerolog.Logger

	templates sync.Map // key: text, value: *template.Template
}

// LoadGettext parses every .po file in dir. File names may use hyphens or
// underscores ("pt-BR.po", "pt_BR.po"); they are canonicalised to BCP 47.
func LoadGettext(fsys fs.FS, dir, defaultLocale string) (*Gettext, error) {
	g := &Gettext{
		defaultLocale: defaultLocale,
		messages:      make(map[string]map[string]string),
		logger:        log.With().Str("sys", "legacy").Logger(),
	}

	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read po directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".po") {
			continue
		}

		name := strings.TrimSuffix(entry.Name(), ".po")

		tag, err := language.Parse(strings.ReplaceAll(name, "_", "-"))
		if err != nil {
			g.logger.Warn().Err(err).Str("file", entry.Name()).Msg("Skipping invalid locale file")

			continue
		}

		data, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", entry.Name(), err)
		}

		po := gotext.NewPo()
		po.Parse(data)

		messages := singularMessages(po.GetDomain())
		g.messages[tag.String()] = messages

		g.logger.Info().
			Str("locale", tag.String()).
			Str("domain", Domain).
			Int("messages", len(messages)).
			Msg("Loaded locale")
	}

	return g, nil
}

// Locales returns the loaded locale identifiers, sorted.
func (g *Gettext) Locales() []string {
	out := make([]string, 0, len(g.messages))
	for l := range g.messages {
		out = append(out, l)
	}

	sort.Strings(out)

	return out
}

// Lookup returns the msgstr for key in the render context's locale, or key
// itself. Translations may use text/template placeholders ({{.name}}).
func (g *Gettext) Lookup(ctx context.Context, key string, vars i18n.Vars) string {
	locale := i18n.OptionsFrom(ctx).Locale
	if locale == "" {
		locale = g.defaultLocale
	}

	text, ok := g.messages[locale][key]
	if !ok {
		text = key
	}

	return g.render(text, vars)
}

// singularMessages collects msgstr (or msgstr[0] for plural entries) of every
// translated entry. Plural-Forms is not consulted: index 0 is always the
// singular form whatever the language's plural rule.
func singularMessages(domain *gotext.Domain) map[string]string {
	translations := domain.GetTranslations()
	out := make(map[string]string, len(translations))

	for id, tr := range translations {
		if id == "" || !tr.IsTranslated() {
			continue
		}

		out[id] = tr.Trs[0]
	}

	return out
}

func (g *Gettext) render(s string, vars i18n.Vars) string {
	if !strings.Contains(s, "{{") {
		return s
	}

	var tmpl *template.Template

	if cached, ok := g.templates.Load(s); ok {
		tmpl = cached.(*template.Template)
	} else {
		parsed, err := template.New("msg").Option("missingkey=error").Parse(s)
		if err != nil {
			g.logger.Warn().Err(err).Str("text", s).Msg("Failed to parse translation template")

			return s
		}

		actual, _ := g.templates.LoadOrStore(s, parsed)
		tmpl = actual.(*template.Template)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, map[string]any(vars)); err != nil {
		g.logger.Warn().Err(err).Str("text", s).Msg("Failed to execute translation template")

		return s
	}

	return buf.String()
}
