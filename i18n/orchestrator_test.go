// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/pixivfe/tolgeefe/core/dict"
	"codeberg.org/pixivfe/tolgeefe/core/lrucache"
	"codeberg.org/pixivfe/tolgeefe/core/source"
	"codeberg.org/pixivfe/tolgeefe/core/tolgee"
	"codeberg.org/pixivfe/tolgeefe/core/zwc"
	"codeberg.org/pixivfe/tolgeefe/i18n"
)

// helloMarkerBits is the bit sequence of the marker for "hello".
const helloMarkerBits = "011110110001000100011010110001000100001110100001000100011010000011001010011011000011011000011011110001000100011111010"

func fromBits(bits string) string {
	return strings.Map(func(r rune) rune {
		if r == '1' {
			return zwc.One
		}

		return zwc.Zero
	}, bits)
}

func staticData() dict.StaticData {
	return dict.StaticData{
		"en": dict.Namespace{
			"hello":             dict.Leaf("Hello"),
			"hello_with_params": dict.Leaf("Hello, {name}"),
			"namespace": dict.Namespace{
				"morning": dict.Leaf("Good morning."),
			},
		},
	}
}

func staticFetcher(data dict.StaticData) source.FetcherFunc {
	return func(_ context.Context, locale string) (dict.Namespace, error) {
		return data[locale], nil
	}
}

func TestTranslate_Production(t *testing.T) {
	t.Parallel()

	o := i18n.NewOrchestrator(source.New(nil))
	opts := i18n.Options{Locale: "en", StaticData: staticData()}

	tests := []struct {
		name string
		key  string
		vars i18n.Vars
		want string
	}{
		{"plain", "hello", nil, "Hello"},
		{"with params", "hello_with_params", i18n.Vars{"name": "Bella"}, "Hello, Bella"},
		{"missing variable", "hello_with_params", nil, "Hello, "},
		{"nested", "namespace.morning", nil, "Good morning."},
		{"missing key", "namespace.not_there", nil, "namespace.not_there"},
		{"namespace is not a string", "namespace", nil, "namespace"},
		{"through a leaf", "hello.world", nil, "hello.world"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, o.Translate(context.Background(), tt.key, tt.vars, opts))
		})
	}
}

func TestTranslate_ProductionUnknownLocale(t *testing.T) {
	t.Parallel()

	o := i18n.NewOrchestrator(source.New(nil))
	got := o.Translate(context.Background(), "hello", nil, i18n.Options{Locale: "fr", StaticData: staticData()})

	assert.Equal(t, "hello", got)
}

func TestTranslate_DefaultLocale(t *testing.T) {
	t.Parallel()

	data := staticData()
	data["de"] = dict.Namespace{"hello": dict.Leaf("Hallo")}

	o := i18n.NewOrchestrator(source.New(nil), i18n.WithDefaultLocale("de"))

	assert.Equal(t, "de", o.DefaultLocale())
	assert.Equal(t, "Hallo", o.Translate(context.Background(), "hello", nil, i18n.Options{StaticData: data}))
}

func TestTranslate_DevelopmentMarker(t *testing.T) {
	t.Parallel()

	o := i18n.NewOrchestrator(source.New(staticFetcher(staticData())))
	opts := i18n.Options{Locale: "en", Mode: i18n.Development}

	got := o.Translate(context.Background(), "hello", nil, opts)
	assert.Equal(t, "Hello"+fromBits(helloMarkerBits), got)

	visible, marker := zwc.Split(got)
	assert.Equal(t, "Hello", visible)

	payload, err := zwc.Decode(marker)
	require.NoError(t, err)
	assert.JSONEq(t, `{"k":"hello"}`, string(payload))

	withParams := o.Translate(context.Background(), "hello_with_params", i18n.Vars{"name": "Bella"}, opts)
	visible, marker = zwc.Split(withParams)
	assert.Equal(t, "Hello, Bella", visible)
	assert.Equal(t, o.Marker("hello_with_params"), marker)
}

func TestTranslate_DevelopmentMissingKeyHasNoMarker(t *testing.T) {
	t.Parallel()

	o := i18n.NewOrchestrator(source.New(staticFetcher(staticData())))
	got := o.Translate(context.Background(), "not_there", nil, i18n.Options{Locale: "en", Mode: i18n.Development})

	assert.Equal(t, "not_there", got)
}

func TestTranslate_DevelopmentIgnoresStaticData(t *testing.T) {
	t.Parallel()

	failing := source.FetcherFunc(func(context.Context, string) (dict.Namespace, error) {
		return nil, errors.New("unreachable")
	})

	o := i18n.NewOrchestrator(source.New(failing))
	got := o.Translate(context.Background(), "hello", nil, i18n.Options{
		Locale:     "en",
		Mode:       i18n.Development,
		StaticData: staticData(),
	})

	assert.Equal(t, "hello", got)
}

func TestTranslate_DevelopmentAgainstTolgee(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)

		assert.Equal(t, "/v2/projects/42/translations/en", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "secret", r.Header.Get("X-API-Key"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"en":{"hello":"Hello","namespace":{"morning":"Good morning."}}}`))
	}))
	t.Cleanup(srv.Close)

	client := tolgee.NewClient(tolgee.Config{APIURL: srv.URL, APIKey: "secret", ProjectID: "42"})
	o := i18n.NewOrchestrator(source.New(client))
	opts := i18n.Options{Locale: "en", Mode: i18n.Development}

	assert.Equal(t, "Hello"+fromBits(helloMarkerBits), o.Translate(context.Background(), "hello", nil, opts))

	visible, _ := zwc.Split(o.Translate(context.Background(), "namespace.morning", nil, opts))
	assert.Equal(t, "Good morning.", visible)
	assert.Equal(t, int32(1), calls.Load())
}

func TestTranslate_NilSource(t *testing.T) {
	t.Parallel()

	o := i18n.NewOrchestrator(nil)

	assert.Equal(t, "hello", o.Translate(context.Background(), "hello", nil, i18n.Options{}))
}

func TestMarker_Cache(t *testing.T) {
	t.Parallel()

	cache, err := lrucache.NewLRUCache(8, true)
	require.NoError(t, err)

	o := i18n.NewOrchestrator(source.New(staticFetcher(staticData())), i18n.WithMarkerCache(cache))

	first := o.Marker("hello")
	second := o.Marker("hello")

	assert.Equal(t, fromBits(helloMarkerBits), first)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, cache.Len())
	assert.Equal(t, uint64(1), cache.Stats().Hits)
}

func TestMarkerPayload(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `{"k":"hello"}`, string(i18n.MarkerPayload("hello")))
	assert.Equal(t, `{"k":"a<b>&c"}`, string(i18n.MarkerPayload("a<b>&c")))
	assert.Equal(t, `{"k":"say \"hi\""}`, string(i18n.MarkerPayload(`say "hi"`)))
	assert.Equal(t, `{"k":"ключ"}`, string(i18n.MarkerPayload("ключ")))
}

func TestStrictMissingKeys_LogsOnce(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	o := i18n.NewOrchestrator(source.New(nil),
		i18n.WithStrictMissingKeys(true),
		i18n.WithLogger(zerolog.New(&buf)),
	)

	opts := i18n.Options{Locale: "en", StaticData: staticData()}
	for range 3 {
		o.Translate(context.Background(), "not_there", nil, opts)
	}

	o.Translate(context.Background(), "hello", nil, opts)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], `"key":"not_there"`)
	assert.Contains(t, lines[0], `"locale":"en"`)
}
