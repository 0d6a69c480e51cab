// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"unicode/utf8"

	"codeberg.org/pixivfe/tolgeefe/core/zwc"
	"codeberg.org/pixivfe/tolgeefe/i18n"
	"codeberg.org/pixivfe/tolgeefe/server/request_context"
)

var errMissingKey = errors.New("missing required query parameter: key")

// reservedParams are query parameters that are not template variables.
var reservedParams = map[string]bool{"key": true, i18n.LangParam: true, "mode": true}

// TranslateResponse is the body returned by TranslateAPI.
type TranslateResponse struct {
	Key    string `json:"key"`
	Locale string `json:"locale"`
	Mode   string `json:"mode"`
	// Text is the full filter output, marker included.
	Text string `json:"text"`
	// Visible is Text without the trailing marker.
	Visible     string `json:"visible"`
	MarkerRunes int    `json:"marker_runes"`
}

// TranslateAPI translates the key query parameter. Any other query
// parameter is passed as a template variable.
func (h *Handler) TranslateAPI(w http.ResponseWriter, r *http.Request) error {
	query := r.URL.Query()

	key := strings.TrimSpace(query.Get("key"))
	if key == "" {
		return &HTTPError{Status: http.StatusBadRequest, Err: errMissingKey}
	}

	if !utf8.ValidString(key) {
		return badRequest("key is not valid UTF-8")
	}

	vars := make(i18n.Vars)

	for name, values := range query {
		if !reservedParams[name] && len(values) > 0 {
			vars[name] = values[0]
		}
	}

	rc := request_context.FromRequest(r)
	text := h.Filter.T(r.Context(), key, vars)
	visible, marker := zwc.Split(text)

	w.Header().Set("Content-Type", "application/json")

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	return enc.Encode(TranslateResponse{
		Key:         key,
		Locale:      rc.Options.Locale,
		Mode:        rc.Options.Mode.String(),
		Text:        text,
		Visible:     visible,
		MarkerRunes: utf8.RuneCountInString(marker),
	})
}
