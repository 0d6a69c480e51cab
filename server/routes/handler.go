// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"fmt"
	"net/http"

	"codeberg.org/pixivfe/tolgeefe/i18n"
)

// Handler serves the preview pages.
type Handler struct {
	Filter *i18n.Filter
	// Keys are listed on the index page, in order.
	Keys []string
	// Locales are offered as switch links on the index page.
	Locales []string
}

// HTTPError is an error carrying the status code it should be reported with.
type HTTPError struct {
	Status int
	Err    error
}

func (e *HTTPError) Error() string { return e.Err.Error() }

func (e *HTTPError) Unwrap() error { return e.Err }

// StatusCode implements middleware.StatusCoder.
func (e *HTTPError) StatusCode() int { return e.Status }

func badRequest(format string, args ...any) error {
	return &HTTPError{Status: http.StatusBadRequest, Err: fmt.Errorf(format, args...)}
}
