// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"maps"
	"net/http"
	"strings"
	"sync/atomic"
)

var (
	// baseHeaders defines the default headers to be set in responses.
	baseHeaders = http.Header{
		"Referrer-Policy":        {"no-referrer"},
		"X-Frame-Options":        {"DENY"},
		"X-Content-Type-Options": {"nosniff"},
		"Permissions-Policy":     {"camera=(), geolocation=(), microphone=(), payment=(), usb=()"},
	}

	// contentSecurityPolicy allows inline styles only; the preview pages load
	// no scripts.
	contentSecurityPolicy = strings.Join([]string{
		"base-uri 'none'",
		"default-src 'none'",
		"style-src 'unsafe-inline'",
		"form-action 'self'",
		"frame-ancestors 'none'",
	}, "; ") + ";"
)

// ResponseHeaderSettings are the values SetResponseHeaders reports.
type ResponseHeaderSettings struct {
	Version       string
	Revision      string
	InDevelopment bool
}

// SetResponseHeaders adds security, caching and version headers to every response.
func SetResponseHeaders(settings ResponseHeaderSettings) Middleware {
	var cleared atomic.Bool

	return func(w http.ResponseWriter, r *http.Request, next http.Handler) {
		headers := w.Header()

		maps.Insert(headers, maps.All(baseHeaders))

		// Clear the browser cache once per process in development.
		if settings.InDevelopment && cleared.CompareAndSwap(false, true) {
			headers.Set("Clear-Site-Data", `"cache"`)
		}

		headers.Set("Cache-Control", cacheControl(r.URL.Path))
		headers.Set("Content-Security-Policy", contentSecurityPolicy)
		headers.Set("Tolgeefe-Version", settings.Version)
		headers.Set("Tolgeefe-Revision", settings.Revision)

		next.ServeHTTP(w, r)
	}
}

// cacheControl never lets shared caches keep translated output: the same
// URL renders differently per locale and mode.
func cacheControl(path string) string {
	if strings.HasPrefix(path, "/api/") {
		return "no-store"
	}

	return "private, no-cache"
}
