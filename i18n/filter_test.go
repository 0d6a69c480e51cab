// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n_test

import (
	"context"
	"html/template"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/pixivfe/tolgeefe/core/dict"
	"codeberg.org/pixivfe/tolgeefe/core/source"
	"codeberg.org/pixivfe/tolgeefe/core/zwc"
	"codeberg.org/pixivfe/tolgeefe/i18n"
)

func newFilter() *i18n.Filter {
	return i18n.NewFilter(i18n.NewOrchestrator(source.New(staticFetcher(staticData()))))
}

func TestFilter_T(t *testing.T) {
	t.Parallel()

	f := newFilter()
	ctx := i18n.WithOptions(context.Background(), i18n.Options{Locale: "en", StaticData: staticData()})

	assert.Equal(t, "Hello", f.T(ctx, "hello"))
	assert.Equal(t, "Hello, Bella", f.T(ctx, "hello_with_params", "name", "Bella"))
	assert.Equal(t, "Hello, Bella", f.T(ctx, "hello_with_params", i18n.Vars{"name": "Bella"}))
	assert.Equal(t, "Hello, ", f.T(ctx, "hello_with_params"))
	assert.Equal(t, "Good morning.", f.T(ctx, "namespace.morning"))
	assert.Equal(t, "namespace.not_there", f.T(ctx, "namespace.not_there"))
}

func TestFilter_TWithoutOptions(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "hello", newFilter().T(context.Background(), "hello"))
}

func TestFilter_FuncMap(t *testing.T) {
	t.Parallel()

	f := newFilter()
	data := staticData()
	data["en"]["html"] = dict.Leaf("<b>{name}</b>")

	ctx := i18n.WithOptions(context.Background(), i18n.Options{Locale: "en", StaticData: data})

	tmpl := template.Must(template.New("page").
		Funcs(f.FuncMap(ctx)).
		Parse(`<p>{{ t "hello_with_params" "name" .Name }}</p><p>{{ t "html" "name" .Name }}</p>`))

	var b strings.Builder
	require.NoError(t, tmpl.Execute(&b, map[string]string{"Name": "Bella"}))

	assert.Equal(t, "<p>Hello, Bella</p><p>&lt;b&gt;Bella&lt;/b&gt;</p>", b.String())
}

func TestFilter_FuncMapDevelopment(t *testing.T) {
	t.Parallel()

	f := newFilter()
	ctx := i18n.WithOptions(context.Background(), i18n.Options{Locale: "en", Mode: i18n.Development})

	tmpl := template.Must(template.New("page").Funcs(f.FuncMap(ctx)).Parse(`{{ t "hello" }}`))

	var b strings.Builder
	require.NoError(t, tmpl.Execute(&b, nil))

	assert.Equal(t, "Hello"+fromBits(helloMarkerBits), b.String())
}

func TestFilter_Key(t *testing.T) {
	t.Parallel()

	f := newFilter()

	prod := i18n.WithOptions(context.Background(), i18n.Options{Locale: "en", StaticData: staticData()})

	var b strings.Builder
	require.NoError(t, f.Key("hello_with_params", "name", "<Bella>").Render(prod, &b))
	assert.Equal(t, "Hello, &lt;Bella&gt;", b.String())

	dev := i18n.WithOptions(context.Background(), i18n.Options{Locale: "en", Mode: i18n.Development})

	b.Reset()
	require.NoError(t, f.Key("hello").Render(dev, &b))

	visible, marker := zwc.Split(b.String())
	assert.Equal(t, "Hello", visible)
	assert.Equal(t, fromBits(helloMarkerBits), marker)
}

func TestFilter_Legacy(t *testing.T) {
	t.Parallel()

	f := newFilter()
	f.Legacy = legacyLookup

	prod := i18n.WithOptions(context.Background(), i18n.Options{Locale: "en"})
	assert.Equal(t, "legacy:hello", f.T(prod, "hello"))

	dev := i18n.WithOptions(context.Background(), i18n.Options{Locale: "en", Mode: i18n.Development})
	assert.Equal(t, "Hello"+fromBits(helloMarkerBits), f.T(dev, "hello"))
}
