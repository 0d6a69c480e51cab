// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"net/http"
	"strings"
)

// NormalizeURL redirects paths with a trailing slash (except the root) to
// their canonical form, keeping the query string.
func NormalizeURL(w http.ResponseWriter, r *http.Request, next http.Handler) {
	if r.URL.Path == "/" || !strings.HasSuffix(r.URL.Path, "/") {
		next.ServeHTTP(w, r)

		return
	}

	target := *r.URL
	target.Path = strings.TrimRight(target.Path, "/")

	if target.Path == "" {
		target.Path = "/"
	}

	// Only the path is kept so the redirect cannot leave this host.
	target.Scheme, target.Host, target.User = "", "", nil

	http.Redirect(w, r, target.RequestURI(), http.StatusPermanentRedirect)
}
