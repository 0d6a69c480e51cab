// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package request_context provides per-request state management for HTTP handlers.

This package is separate because Go disallows a cyclic import graph.
*/
package request_context

import (
	"context"
	"net/http"

	"golang.org/x/text/language"

	"codeberg.org/pixivfe/tolgeefe/i18n"
)

// RequestContext carries request-scoped data through the middleware chain.
type RequestContext struct {
	// RequestID is an identifier for tracing requests.
	RequestID string

	// Holds any error returned by the handler. Populated by middleware.CatchError.
	RequestError error

	// HTTP status code to be sent in the response. Defaults to 200 OK.
	StatusCode int

	// Locale is the negotiated locale for this request.
	Locale language.Tag

	// Options are the translation options for everything rendered by this request.
	// They are also stored in the request's context.Context, see i18n.OptionsFrom.
	Options i18n.Options
}

type requestContextKeyType struct{}

var requestContextKey = requestContextKeyType{}

// WithRequestContext attaches rc and its translation options to ctx.
func WithRequestContext(ctx context.Context, rc *RequestContext) context.Context {
	ctx = i18n.WithOptions(ctx, rc.Options)

	return context.WithValue(ctx, requestContextKey, rc)
}

// FromContext extracts the RequestContext from a context, always returning
// a valid pointer.
func FromContext(ctx context.Context) *RequestContext {
	if rc, ok := ctx.Value(requestContextKey).(*RequestContext); ok {
		return rc
	}

	return &RequestContext{StatusCode: http.StatusOK}
}

// FromRequest is a convenience wrapper for extracting RequestContext
// directly from HTTP requests.
func FromRequest(r *http.Request) *RequestContext {
	return FromContext(r.Context())
}
