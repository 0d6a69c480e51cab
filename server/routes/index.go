// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"net/http"

	"codeberg.org/pixivfe/tolgeefe/server/request_context"
	"codeberg.org/pixivfe/tolgeefe/server/views"
)

// Index renders every configured key in the request's locale and mode.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) error {
	rc := request_context.FromRequest(r)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	return views.Page(views.PageData{
		Locale:  rc.Options.Locale,
		Mode:    rc.Options.Mode,
		Locales: h.Locales,
		Keys:    h.Keys,
		Filter:  h.Filter,
	}).Render(r.Context(), w)
}
