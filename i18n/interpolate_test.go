// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"codeberg.org/pixivfe/tolgeefe/i18n"
)

func TestMessageRenderer(t *testing.T) {
	t.Parallel()

	vars := i18n.Vars{"name": "Bella", "count": 3, "nothing": nil}

	tests := []struct {
		name     string
		template string
		want     string
	}{
		{"no placeholders", "Hello", "Hello"},
		{"simple", "Hello, {name}", "Hello, Bella"},
		{"spaces inside braces", "Hello, { name }", "Hello, Bella"},
		{"repeated", "{name} and {name}", "Bella and Bella"},
		{"number value", "{count} items", "3 items"},
		{"unknown", "Hello, {who}", "Hello, "},
		{"nil value", "[{nothing}]", "[]"},
		{"format arguments ignored", "{count, number} items", "3 items"},
		{"nested format arguments", "{count, plural, one {# item} other {# items}}!", "3!"},
		{"unbalanced open", "Hello, {name", "Hello, {name"},
		{"empty braces", "a {} b", "a {} b"},
		{"stray close", "a } b", "a } b"},
		{"apostrophe", "it's {name}", "it's Bella"},
		{"doubled apostrophe", "don''t", "don't"},
		{"quoted braces", "'{name}' is {name}", "{name} is Bella"},
		{"quoted with doubled apostrophe", "'{it''s}'", "{it's}"},
		{"dotted name", "{user.name}", ""},
	}

	r := &i18n.MessageRenderer{}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, r.Render(tt.template, vars))
		})
	}
}

func TestMessageRenderer_KeepUnknown(t *testing.T) {
	t.Parallel()

	r := &i18n.MessageRenderer{KeepUnknown: true}

	assert.Equal(t, "Hello, {who}", r.Render("Hello, {who}", nil))
	assert.Equal(t, "Hello, Bella", r.Render("Hello, {who}", i18n.Vars{"who": "Bella"}))
}

func TestMessageRenderer_CachedTemplateReuse(t *testing.T) {
	t.Parallel()

	r := &i18n.MessageRenderer{}

	assert.Equal(t, "Hello, A", r.Render("Hello, {name}", i18n.Vars{"name": "A"}))
	assert.Equal(t, "Hello, B", r.Render("Hello, {name}", i18n.Vars{"name": "B"}))
}

func TestV(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []any
		want i18n.Vars
	}{
		{"none", nil, i18n.Vars{}},
		{"pairs", []any{"name", "Bella", "n", 2}, i18n.Vars{"name": "Bella", "n": 2}},
		{"vars", []any{i18n.Vars{"a": 1}}, i18n.Vars{"a": 1}},
		{"generic map", []any{map[string]any{"a": 1}}, i18n.Vars{"a": 1}},
		{"string map", []any{map[string]string{"a": "b"}}, i18n.Vars{"a": "b"}},
		{"odd trailing key", []any{"a", 1, "b"}, i18n.Vars{"a": 1}},
		{"non-string key", []any{7, "x"}, i18n.Vars{"7": "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, i18n.V(tt.args...))
		})
	}
}
