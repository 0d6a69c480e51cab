// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"net/http"
	"strings"

	"golang.org/x/text/language"
)

// LangParam is the query parameter and cookie name carrying a locale choice.
const LangParam = "lang"

// LocaleFromRequest picks the best match among supported for r.
//
// Preferences are taken from the lang query parameter, then the lang
// cookie, then Accept-Language. The index of the match in supported is
// returned with it. Without a confident match the result is fallback and -1.
func LocaleFromRequest(r *http.Request, supported []language.Tag, fallback language.Tag) (language.Tag, int) {
	if len(supported) == 0 {
		return fallback, -1
	}

	var prefs []language.Tag

	if tag, err := ParseLocale(r.URL.Query().Get(LangParam)); err == nil {
		prefs = append(prefs, tag)
	}

	if c, err := r.Cookie(LangParam); err == nil {
		if tag, err := ParseLocale(c.Value); err == nil {
			prefs = append(prefs, tag)
		}
	}

	if tags, _, err := language.ParseAcceptLanguage(r.Header.Get("Accept-Language")); err == nil {
		prefs = append(prefs, tags...)
	}

	if len(prefs) == 0 {
		return fallback, -1
	}

	_, idx, conf := language.NewMatcher(supported).Match(prefs...)
	if conf == language.No {
		return fallback, -1
	}

	return supported[idx], idx
}

// ParseLocales parses locale identifiers, skipping invalid ones. ids holds
// the accepted identifiers unchanged, in step with tags, so a match found
// among tags can be mapped back to the identifier dictionaries are keyed by.
func ParseLocales(locales ...string) (tags []language.Tag, ids []string) {
	tags = make([]language.Tag, 0, len(locales))
	ids = make([]string, 0, len(locales))

	for _, l := range locales {
		if tag, err := ParseLocale(l); err == nil {
			tags = append(tags, tag)
			ids = append(ids, l)
		}
	}

	return tags, ids
}

// ParseLocale parses a locale identifier, accepting POSIX-style
// underscores ("pt_BR").
func ParseLocale(locale string) (language.Tag, error) {
	return language.Parse(strings.ReplaceAll(strings.TrimSpace(locale), "_", "-"))
}
