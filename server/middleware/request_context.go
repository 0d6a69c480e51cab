// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/text/language"

	"codeberg.org/pixivfe/tolgeefe/core/audit"
	"codeberg.org/pixivfe/tolgeefe/core/dict"
	"codeberg.org/pixivfe/tolgeefe/i18n"
	"codeberg.org/pixivfe/tolgeefe/server/request_context"
)

// HeaderRequestID carries a caller-supplied request id.
const HeaderRequestID = "X-Request-ID"

// ModeParam is the query parameter that overrides the translation mode.
const ModeParam = "mode"

// RenderSettings are the translation defaults applied to every request.
type RenderSettings struct {
	// Locales lists the locale identifiers offered for negotiation, spelled
	// as the dictionaries key them; the first is preferred.
	Locales []string
	// Fallback is used when negotiation finds no confident match.
	Fallback string
	// Mode applies unless the request carries a mode parameter and
	// AllowModeOverride is set.
	Mode              i18n.Mode
	AllowModeOverride bool
	StaticData        dict.StaticData
}

// WithRequestContext attaches a RequestContext, including the render
// Options, to each request.
//
// Negotiation runs on parsed language tags, but Options.Locale carries the
// configured identifier so that "en_US" stays "en_US".
func WithRequestContext(settings RenderSettings) Middleware {
	tags, ids := i18n.ParseLocales(settings.Locales...)

	fallback, err := i18n.ParseLocale(settings.Fallback)
	if err != nil {
		fallback = language.Und
	}

	return func(w http.ResponseWriter, r *http.Request, next http.Handler) {
		tag, idx := i18n.LocaleFromRequest(r, tags, fallback)

		locale := settings.Fallback
		if idx >= 0 {
			locale = ids[idx]
		}

		mode := settings.Mode
		if settings.AllowModeOverride && r.URL.Query().Has(ModeParam) {
			mode = i18n.ParseMode(r.URL.Query().Get(ModeParam))
		}

		rc := &request_context.RequestContext{
			RequestID:  requestID(r),
			StatusCode: http.StatusOK,
			Locale:     tag,
			Options: i18n.Options{
				Locale:     locale,
				Mode:       mode,
				StaticData: settings.StaticData,
			},
		}

		w.Header().Set(HeaderRequestID, rc.RequestID)

		next.ServeHTTP(w, r.WithContext(request_context.WithRequestContext(r.Context(), rc)))
	}
}

// requestID reuses a well-formed UUID supplied by the caller and generates
// a fresh id otherwise.
func requestID(r *http.Request) string {
	if raw := r.Header.Get(HeaderRequestID); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			return id.String()
		}
	}

	return audit.NewRequestID()
}
