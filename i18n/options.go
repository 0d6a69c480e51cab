// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"context"
	"fmt"

	"codeberg.org/pixivfe/tolgeefe/core/dict"
	"codeberg.org/pixivfe/tolgeefe/core/source"
)

// Mode selects where translations come from and whether markers are added.
type Mode = source.Mode

const (
	Production  = source.Production
	Development = source.Development
)

// ParseMode parses a mode name; anything unrecognised is Production.
func ParseMode(s string) Mode { return source.ParseMode(s) }

// Register names recognised by Registers.
const (
	RegisterLocale     = "locale"
	RegisterMode       = "mode"
	RegisterStaticData = "static_data"
)

// Options is the per-render configuration.
type Options struct {
	// Locale is an opaque locale identifier such as "en" or "pt-BR".
	// Empty means the orchestrator's default locale.
	Locale string
	Mode   Mode
	// StaticData holds the production dictionaries keyed by locale.
	StaticData dict.StaticData
}

// Registers extracts Options from a generic register map, the way template
// engines expose per-render state. Unknown or mistyped entries are ignored.
func Registers(registers map[string]any) Options {
	var opts Options

	switch v := registers[RegisterLocale].(type) {
	case string:
		opts.Locale = v
	case fmt.Stringer:
		opts.Locale = v.String()
	}

	switch v := registers[RegisterMode].(type) {
	case Mode:
		opts.Mode = v
	case string:
		opts.Mode = ParseMode(v)
	}

	switch v := registers[RegisterStaticData].(type) {
	case dict.StaticData:
		opts.StaticData = v
	case map[string]dict.Namespace:
		opts.StaticData = v
	case map[string]any:
		opts.StaticData = make(dict.StaticData, len(v))

		for locale, tree := range v {
			if m, ok := tree.(map[string]any); ok {
				opts.StaticData[locale] = dict.FromMap(m)
			}
		}
	}

	return opts
}

type optionsKey struct{}

// WithOptions returns a copy of ctx carrying opts.
func WithOptions(ctx context.Context, opts Options) context.Context {
	return context.WithValue(ctx, optionsKey{}, opts)
}

// OptionsFrom returns the Options stored in ctx, or the zero Options.
func OptionsFrom(ctx context.Context) Options {
	if ctx == nil {
		return Options{}
	}

	opts, _ := ctx.Value(optionsKey{}).(Options)

	return opts
}
