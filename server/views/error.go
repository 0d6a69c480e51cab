// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package views

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/a-h/templ"
)

// ErrorData is the input of Error and WriteErrorJSON.
type ErrorData struct {
	StatusCode int
	Error      error
	RequestID  string
}

func (d ErrorData) message() string {
	if d.Error != nil {
		return d.Error.Error()
	}

	return http.StatusText(d.StatusCode)
}

// Error renders a minimal error page.
func Error(data ErrorData) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}

		hw.raw(`<!DOCTYPE html><html><head><meta charset="utf-8"><title>`)
		hw.text(strconv.Itoa(data.StatusCode) + " " + http.StatusText(data.StatusCode))
		hw.raw(`</title></head><body><h1>`)
		hw.text(strconv.Itoa(data.StatusCode))
		hw.raw(`</h1><p>`)
		hw.text(data.message())
		hw.raw(`</p><p><small>request `)
		hw.text(data.RequestID)
		hw.raw(`</small></p></body></html>`)

		return hw.err
	})
}

// WriteErrorJSON writes data as {"error","status","request_id"}.
func WriteErrorJSON(w io.Writer, data ErrorData) error {
	return json.NewEncoder(w).Encode(struct {
		Error     string `json:"error"`
		Status    int    `json:"status"`
		RequestID string `json:"request_id,omitempty"`
	}{data.message(), data.StatusCode, data.RequestID})
}
