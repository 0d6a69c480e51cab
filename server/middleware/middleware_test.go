// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/pixivfe/tolgeefe/i18n"
	"codeberg.org/pixivfe/tolgeefe/server/middleware"
	"codeberg.org/pixivfe/tolgeefe/server/request_context"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestNormalizeURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		target       string
		wantStatus   int
		wantLocation string
	}{
		{"root", "/", http.StatusOK, ""},
		{"no trailing slash", "/api/translate", http.StatusOK, ""},
		{"trailing slash", "/api/translate/", http.StatusPermanentRedirect, "/api/translate"},
		{"keeps query", "/api/translate/?key=a&lang=de", http.StatusPermanentRedirect, "/api/translate?key=a&lang=de"},
		{"repeated slashes", "/api//", http.StatusPermanentRedirect, "/api"},
	}

	handler := middleware.Wrap(middleware.NormalizeURL, okHandler)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.target, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantLocation, rec.Header().Get("Location"))
		})
	}
}

func TestWithRequestContext(t *testing.T) {
	t.Parallel()

	settings := middleware.RenderSettings{
		Locales:           []string{"en_US", "de"},
		Fallback:          "en",
		Mode:              i18n.Production,
		AllowModeOverride: true,
	}

	tests := []struct {
		name       string
		target     string
		settings   func(middleware.RenderSettings) middleware.RenderSettings
		wantLocale string
		wantMode   i18n.Mode
	}{
		{"defaults", "/", nil, "en", i18n.Production},
		{"lang and mode", "/?lang=de&mode=development", nil, "de", i18n.Development},
		{"unknown mode", "/?mode=staging", nil, "en", i18n.Production},
		{"identifier kept verbatim", "/?lang=en-US", nil, "en_US", i18n.Production},
		{
			"override disabled", "/?mode=development",
			func(s middleware.RenderSettings) middleware.RenderSettings {
				s.AllowModeOverride = false

				return s
			},
			"en", i18n.Production,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := settings
			if tt.settings != nil {
				s = tt.settings(s)
			}

			var (
				rc   *request_context.RequestContext
				opts i18n.Options
			)

			handler := middleware.Wrap(middleware.WithRequestContext(s), http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
				rc = request_context.FromRequest(r)
				opts = i18n.OptionsFrom(r.Context())
			}))

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.target, nil))

			require.NotNil(t, rc)
			assert.Equal(t, tt.wantLocale, rc.Options.Locale)
			assert.Equal(t, tt.wantMode, rc.Options.Mode)
			assert.Equal(t, rc.Options, opts)
			assert.Equal(t, http.StatusOK, rc.StatusCode)
			assert.Equal(t, rc.RequestID, rec.Header().Get(middleware.HeaderRequestID))
		})
	}
}

func TestWithRequestContext_UniqueRequestIDs(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)

	handler := middleware.Wrap(middleware.WithRequestContext(middleware.RenderSettings{}), http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen[request_context.FromRequest(r).RequestID] = true
	}))

	for range 20 {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	}

	assert.Len(t, seen, 20)
}

func TestSetResponseHeaders(t *testing.T) {
	t.Parallel()

	handler := middleware.Wrap(middleware.SetResponseHeaders(middleware.ResponseHeaderSettings{
		Version:       "v1",
		Revision:      "abc",
		InDevelopment: true,
	}), okHandler)

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/api/translate", nil))

	assert.Equal(t, "DENY", first.Header().Get("X-Frame-Options"))
	assert.Equal(t, "no-store", first.Header().Get("Cache-Control"))
	assert.Equal(t, "v1", first.Header().Get("Tolgeefe-Version"))
	assert.Equal(t, "abc", first.Header().Get("Tolgeefe-Revision"))
	assert.Contains(t, first.Header().Get("Content-Security-Policy"), "default-src 'none'")
	assert.Equal(t, `"cache"`, first.Header().Get("Clear-Site-Data"))

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "private, no-cache", second.Header().Get("Cache-Control"))
	assert.Empty(t, second.Header().Get("Clear-Site-Data"))
}

type teapotError struct{}

func (teapotError) Error() string   { return "short and stout" }
func (teapotError) StatusCode() int { return http.StatusTeapot }

func TestCatchError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		target      string
		handler     func(w http.ResponseWriter, r *http.Request) error
		wantStatus  int
		wantType    string
		wantContent string
	}{
		{
			name:   "success passes through",
			target: "/",
			handler: func(w http.ResponseWriter, _ *http.Request) error {
				w.Header().Set("Content-Type", "text/plain")
				w.WriteHeader(http.StatusAccepted)
				_, err := w.Write([]byte("fine"))

				return err
			},
			wantStatus:  http.StatusAccepted,
			wantType:    "text/plain",
			wantContent: "fine",
		},
		{
			name:        "plain error",
			target:      "/",
			handler:     func(http.ResponseWriter, *http.Request) error { return errors.New("boom <script>") },
			wantStatus:  http.StatusInternalServerError,
			wantType:    "text/html; charset=utf-8",
			wantContent: "boom &lt;script&gt;",
		},
		{
			name:        "status coder",
			target:      "/api/x",
			handler:     func(http.ResponseWriter, *http.Request) error { return teapotError{} },
			wantStatus:  http.StatusTeapot,
			wantType:    "application/json",
			wantContent: `"error":"short and stout"`,
		},
		{
			name:   "not found",
			target: "/",
			handler: func(w http.ResponseWriter, _ *http.Request) error {
				w.WriteHeader(http.StatusNotFound)

				return nil
			},
			wantStatus:  http.StatusNotFound,
			wantType:    "text/html; charset=utf-8",
			wantContent: "Not Found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			middleware.CatchError(tt.handler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.target, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantType, rec.Header().Get("Content-Type"))
			assert.Contains(t, rec.Body.String(), tt.wantContent)
		})
	}
}
