// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package legacy

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/goccy/go-yaml"
	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"

	"codeberg.org/pixivfe/tolgeefe/i18n"
)

// MissingPrefix starts the text returned for keys a Bundle cannot resolve.
const MissingPrefix = "Translation missing: "

// Bundle serves go-i18n message files (TOML, YAML or JSON).
type Bundle struct {
	bundle        *goi18n.Bundle
	defaultLocale language.Tag
	logger        zerolog.Logger
}

// NewBundle returns an empty Bundle whose default language is
// defaultLocale, or English if it does not parse.
func NewBundle(defaultLocale string) *Bundle {
	tag, err := language.Parse(defaultLocale)
	if err != nil {
		tag = language.English
	}

	bundle := goi18n.NewBundle(tag)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	bundle.RegisterUnmarshalFunc("yaml", unmarshalYAML)
	bundle.RegisterUnmarshalFunc("yml", unmarshalYAML)

	return &Bundle{
		bundle:        bundle,
		defaultLocale: tag,
		logger:        log.With().Str("sys", "legacy").Logger(),
	}
}

func unmarshalYAML(data []byte, v any) error {
	return yaml.Unmarshal(data, v)
}

// Load reads message files from fsys. The language is taken from the file
// name, such as "en.toml" or "active.pt-BR.yaml". Every file is attempted;
// the returned error joins the failures.
func (b *Bundle) Load(fsys fs.FS, files ...string) error {
	var errs []error

	for _, file := range files {
		mf, err := b.bundle.LoadMessageFileFS(fsys, file)
		if err != nil {
			errs = append(errs, fmt.Errorf("load %s: %w", file, err))

			continue
		}

		b.logger.Info().
			Str("file", file).
			Stringer("locale", mf.Tag).
			Int("messages", len(mf.Messages)).
			Msg("Loaded message file")
	}

	return errors.Join(errs...)
}

// Locales returns the languages that have at least one message file.
func (b *Bundle) Locales() []language.Tag {
	return b.bundle.LanguageTags()
}

// Lookup renders key for the locale in the render context. Variables are
// exposed to the message template as {{.name}}; one that is not passed
// renders as "%{name}".
func (b *Bundle) Lookup(ctx context.Context, key string, vars i18n.Vars) string {
	locale := i18n.OptionsFrom(ctx).Locale
	if locale == "" {
		locale = b.defaultLocale.String()
	}

	localizer := goi18n.NewLocalizer(b.bundle, locale)

	msg, err := localizer.Localize(&goi18n.LocalizeConfig{
		MessageID:      key,
		TemplateData:   map[string]any(vars),
		TemplateParser: placeholderParser{},
	})
	if err != nil {
		var notFound *goi18n.MessageNotFoundErr
		if !errors.As(err, &notFound) {
			b.logger.Warn().Err(err).Str("key", key).Str("locale", locale).Msg("Localize failed")
		}

		return MissingPrefix + locale + "." + key
	}

	return msg
}
