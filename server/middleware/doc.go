// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package middleware provides the HTTP middleware of the preview server.

Middleware have the [Middleware] signature and are chained by router.Router
in registration order, the first registered being the outermost.
*/
package middleware
