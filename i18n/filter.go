// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"context"
	"html/template"
	"io"

	"github.com/a-h/templ"
)

// Filter is the template-facing entry point.
type Filter struct {
	Orchestrator *Orchestrator
	// Legacy, when set, serves production lookups instead of static data.
	Legacy LookupFunc
}

// NewFilter returns a Filter backed by o.
func NewFilter(o *Orchestrator) *Filter {
	return &Filter{Orchestrator: o}
}

// T translates key using the Options stored in ctx. Variables are passed as
// a single Vars or as alternating key-value pairs, see V.
func (f *Filter) T(ctx context.Context, key string, kv ...any) string {
	return Select(OptionsFrom(ctx), f.Legacy, f.Orchestrator).Translate(ctx, key, V(kv...))
}

// FuncMap returns html/template functions bound to ctx:
//
//	{{ t "hello_with_params" "name" .Name }}
func (f *Filter) FuncMap(ctx context.Context) template.FuncMap {
	return template.FuncMap{
		"t": func(key string, kv ...any) string {
			return f.T(ctx, key, kv...)
		},
	}
}

// Key returns a templ component rendering the escaped translation of key.
// Options are read from the render context.
func (f *Filter) Key(key string, kv ...any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, templ.EscapeString(f.T(ctx, key, kv...)))

		return err
	})
}
