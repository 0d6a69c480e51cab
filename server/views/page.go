// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package views

import (
	"context"
	"io"
	"net/url"

	"github.com/a-h/templ"

	"codeberg.org/pixivfe/tolgeefe/i18n"
)

// PageData is the input of Page.
type PageData struct {
	Locale  string
	Mode    i18n.Mode
	Locales []string
	Keys    []string
	Filter  *i18n.Filter
}

// Page lists every key rendered through the filter for the request's
// locale and mode, with links to switch between them.
func Page(data PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}

		hw.raw(`<!DOCTYPE html><html lang="`)
		hw.text(data.Locale)
		hw.raw(`"><head><meta charset="utf-8"><title>`)
		hw.component(ctx, data.Filter.Key("preview.title"))
		hw.raw(`</title><style>body{font-family:sans-serif;margin:2rem}td,th{padding:.25rem .75rem;text-align:left}</style></head><body>`)

		hw.raw(`<h1>`)
		hw.component(ctx, data.Filter.Key("preview.title"))
		hw.raw(`</h1><p>`)
		hw.text(data.Locale)
		hw.raw(` &middot; `)
		hw.text(data.Mode.String())
		hw.raw(`</p>`)

		hw.raw(`<nav><ul>`)

		for _, locale := range data.Locales {
			for _, mode := range []i18n.Mode{i18n.Production, i18n.Development} {
				hw.raw(`<li><a href="`)
				hw.text(switchURL(locale, mode))
				hw.raw(`">`)
				hw.text(locale + " / " + mode.String())
				hw.raw(`</a></li>`)
			}
		}

		hw.raw(`</ul></nav><table><thead><tr><th>key</th><th>text</th></tr></thead><tbody>`)

		for _, key := range data.Keys {
			hw.raw(`<tr><th><code>`)
			hw.text(key)
			hw.raw(`</code></th><td>`)
			hw.component(ctx, data.Filter.Key(key, "name", "Bella"))
			hw.raw(`</td></tr>`)
		}

		hw.raw(`</tbody></table></body></html>`)

		return hw.err
	})
}

func switchURL(locale string, mode i18n.Mode) string {
	q := url.Values{}
	q.Set(i18n.LangParam, locale)
	q.Set("mode", mode.String())

	return "/?" + q.Encode()
}
