// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package router

import (
	"net/http"
	"net/http/pprof"

	"codeberg.org/pixivfe/tolgeefe/server/middleware"
	"codeberg.org/pixivfe/tolgeefe/server/routes"
)

// DefineRoutes registers the preview routes. Profiling endpoints are added
// when debug is set.
func (router *Router) DefineRoutes(h *routes.Handler, debug bool) {
	router.Handle("GET /{$}", middleware.CatchError(h.Index))
	router.Handle("GET /api/translate", middleware.CatchError(h.TranslateAPI))
	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	})

	if debug {
		registerDebugRoutes(router)
	}
}

func registerDebugRoutes(router *Router) {
	router.HandleFunc("GET /debug/pprof/", pprof.Index)
	router.HandleFunc("GET /debug/pprof/cmdline", pprof.Cmdline)
	router.HandleFunc("GET /debug/pprof/profile", pprof.Profile)
	router.HandleFunc("GET /debug/pprof/symbol", pprof.Symbol)
	router.HandleFunc("GET /debug/pprof/trace", pprof.Trace)
}
