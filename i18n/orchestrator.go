// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"codeberg.org/pixivfe/tolgeefe/core/dict"
	"codeberg.org/pixivfe/tolgeefe/core/lrucache"
	"codeberg.org/pixivfe/tolgeefe/core/zwc"
)

// DefaultLocale is used when neither Options nor the orchestrator name one.
const DefaultLocale = "en"

// Resolver supplies the dictionary for a locale. *source.Source implements it.
type Resolver interface {
	Resolve(ctx context.Context, locale string, mode Mode, static dict.StaticData) dict.Namespace
}

// Orchestrator turns a key and variables into display text.
type Orchestrator struct {
	source        Resolver
	renderer      Renderer
	markers       *lrucache.LRUCache
	defaultLocale string
	strict        bool
	logger        zerolog.Logger

	missing sync.Map // key: locale + "\x00" + key
}

// OrchestratorOption configures an Orchestrator.
type OrchestratorOption func(*Orchestrator)

// WithRenderer replaces the default MessageRenderer.
func WithRenderer(r Renderer) OrchestratorOption {
	return func(o *Orchestrator) {
		if r != nil {
			o.renderer = r
		}
	}
}

// WithMarkerCache memoises encoded markers per key in c.
func WithMarkerCache(c *lrucache.LRUCache) OrchestratorOption {
	return func(o *Orchestrator) { o.markers = c }
}

// WithDefaultLocale sets the locale used when Options.Locale is empty.
func WithDefaultLocale(locale string) OrchestratorOption {
	return func(o *Orchestrator) {
		if locale != "" {
			o.defaultLocale = locale
		}
	}
}

// WithStrictMissingKeys logs every key that fails to resolve, once per locale.
func WithStrictMissingKeys(strict bool) OrchestratorOption {
	return func(o *Orchestrator) { o.strict = strict }
}

// WithLogger replaces the package logger.
func WithLogger(l zerolog.Logger) OrchestratorOption {
	return func(o *Orchestrator) { o.logger = l }
}

// NewOrchestrator returns an Orchestrator reading dictionaries from src.
func NewOrchestrator(src Resolver, opts ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		source:        src,
		renderer:      &MessageRenderer{},
		defaultLocale: DefaultLocale,
		logger:        log.With().Str("sys", "i18n").Logger(),
	}

	for _, opt := range opts {
		opt(o)
	}

	return o
}

// DefaultLocale returns the locale used when Options.Locale is empty.
func (o *Orchestrator) DefaultLocale() string { return o.defaultLocale }

// Translate resolves key for the locale and mode in opts and renders vars
// into it. In development mode the result is followed by the key's marker.
//
// A key that does not resolve to a string is returned unchanged with no
// marker. Translate never fails.
func (o *Orchestrator) Translate(ctx context.Context, key string, vars Vars, opts Options) string {
	locale := opts.Locale
	if locale == "" {
		locale = o.defaultLocale
	}

	var ns dict.Namespace
	if o.source != nil {
		ns = o.source.Resolve(ctx, locale, opts.Mode, opts.StaticData)
	}

	value, ok := dict.Lookup(ns, key)
	if !ok {
		o.logMissing(locale, key, opts.Mode)

		return key
	}

	text := o.renderer.Render(value, vars)

	if !opts.Mode.IsDevelopment() {
		return text
	}

	return text + o.Marker(key)
}

// Marker returns the zero-width encoding of {"k":key}.
func (o *Orchestrator) Marker(key string) string {
	if o.markers == nil {
		return encodeMarker(key)
	}

	return o.markers.GetOrAdd(key, func() string { return encodeMarker(key) })
}

// MarkerPayload returns the JSON document carried by a key's marker.
func MarkerPayload(key string) []byte {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	// Encoding a struct holding one string cannot fail.
	_ = enc.Encode(struct {
		K string `json:"k"`
	}{K: key})

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
}

func encodeMarker(key string) string {
	return zwc.Encode(MarkerPayload(key))
}

func (o *Orchestrator) logMissing(locale, key string, mode Mode) {
	if !o.strict {
		return
	}

	if _, loaded := o.missing.LoadOrStore(locale+"\x00"+key, struct{}{}); loaded {
		return
	}

	o.logger.Warn().
		Str("locale", locale).
		Str("key", key).
		Stringer("mode", mode).
		Msg("Translation key not found")
}
