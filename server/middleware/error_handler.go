// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"errors"
	"maps"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/rs/zerolog/log"

	"codeberg.org/pixivfe/tolgeefe/core/audit"
	"codeberg.org/pixivfe/tolgeefe/server/request_context"
	"codeberg.org/pixivfe/tolgeefe/server/views"
)

// StatusCoder is implemented by errors that map to an HTTP status.
type StatusCoder interface {
	StatusCode() int
}

// CatchError wraps a handler that returns an error.
//
// The handler's output is buffered. If it returns an error, or writes a
// 404, the buffer is discarded and an error response is written instead:
// JSON for /api/ paths, an HTML page otherwise. The status is taken from
// a StatusCoder in the error chain, defaulting to 500. Every request is
// logged through an audit span.
func CatchError(handler func(w http.ResponseWriter, r *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := request_context.FromRequest(r)

		span := audit.Span{
			Destination: audit.ToUser,
			RequestID:   ctx.RequestID,
			Method:      r.Method,
			URL:         r.URL.String(),
			Locale:      ctx.Options.Locale,
		}

		_ = span.Begin(r.Context())
		defer span.End()

		recorder := httptest.NewRecorder()

		ctx.RequestError = handler(recorder, r)

		switch {
		case ctx.RequestError != nil || recorder.Code == http.StatusNotFound:
			ctx.StatusCode = statusFor(ctx.RequestError, recorder.Code)
			writeError(w, r, ctx)

		default:
			ctx.StatusCode = recorder.Code

			maps.Copy(w.Header(), recorder.Header())
			w.WriteHeader(recorder.Code)

			if _, err := recorder.Body.WriteTo(w); err != nil {
				log.Err(err).Msg("Failed to write response body")
			}
		}

		span.StatusCode = ctx.StatusCode
		span.Size = recorder.Body.Len()
		span.Error = ctx.RequestError
		span.End()
		span.Log()
	}
}

func statusFor(err error, recorded int) int {
	var sc StatusCoder
	if errors.As(err, &sc) && sc.StatusCode() >= http.StatusBadRequest {
		return sc.StatusCode()
	}

	if recorded >= http.StatusBadRequest {
		return recorded
	}

	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, r *http.Request, ctx *request_context.RequestContext) {
	data := views.ErrorData{
		StatusCode: ctx.StatusCode,
		Error:      ctx.RequestError,
		RequestID:  ctx.RequestID,
	}

	w.Header().Set("Cache-Control", "no-store")

	if strings.HasPrefix(r.URL.Path, "/api/") {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(ctx.StatusCode)

		if err := views.WriteErrorJSON(w, data); err != nil {
			log.Err(err).Msg("Failed to write error response")
		}

		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(ctx.StatusCode)

	if err := views.Error(data).Render(r.Context(), w); err != nil {
		log.Err(err).Msg("Failed to render the error page")
	}
}
