// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package router

import "codeberg.org/pixivfe/tolgeefe/server/middleware"

// RegisterMiddleware installs the middleware chain. The first middleware is
// the outermost one.
func (router *Router) RegisterMiddleware(render middleware.RenderSettings, headers middleware.ResponseHeaderSettings) {
	router.Use(middleware.WithServerTiming)
	router.Use(middleware.NormalizeURL)
	router.Use(middleware.WithRequestContext(render)) // needed for everything else
	router.Use(middleware.SetResponseHeaders(headers))
}
