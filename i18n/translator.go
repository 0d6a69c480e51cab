// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import "context"

// LookupFunc is the shape of an existing translation method: it maps a key
// and variables to display text using whatever the caller already has.
type LookupFunc func(ctx context.Context, key string, vars Vars) string

// Translator produces display text for a key.
type Translator interface {
	Translate(ctx context.Context, key string, vars Vars) string
}

// ProductionTranslator delegates to an existing lookup without changing its
// output.
type ProductionTranslator struct {
	Lookup LookupFunc
}

// Translate implements Translator. With no Lookup the key is returned.
func (t ProductionTranslator) Translate(ctx context.Context, key string, vars Vars) string {
	if t.Lookup == nil {
		return key
	}

	return t.Lookup(ctx, key, vars)
}

// DevelopmentTranslator routes lookups through the Orchestrator so the
// output carries a marker.
type DevelopmentTranslator struct {
	Orchestrator *Orchestrator
	Options      Options
}

// Translate implements Translator.
func (t DevelopmentTranslator) Translate(ctx context.Context, key string, vars Vars) string {
	if t.Orchestrator == nil {
		return key
	}

	return t.Orchestrator.Translate(ctx, key, vars, t.Options)
}

// Select picks the strategy for a render context once.
//
// Development mode always uses o. In production, legacy is used when set;
// otherwise o serves the static data in opts.
func Select(opts Options, legacy LookupFunc, o *Orchestrator) Translator {
	if opts.Mode.IsDevelopment() {
		return DevelopmentTranslator{Orchestrator: o, Options: opts}
	}

	if legacy != nil {
		return ProductionTranslator{Lookup: legacy}
	}

	if o == nil {
		return ProductionTranslator{}
	}

	return ProductionTranslator{Lookup: func(ctx context.Context, key string, vars Vars) string {
		return o.Translate(ctx, key, vars, opts)
	}}
}

// WithTolgee wraps legacy so that, when the render context is in
// development mode, calls go to o instead and gain a marker. In production
// legacy is called unchanged.
func WithTolgee(legacy LookupFunc, o *Orchestrator) LookupFunc {
	return func(ctx context.Context, key string, vars Vars) string {
		return Select(OptionsFrom(ctx), legacy, o).Translate(ctx, key, vars)
	}
}
