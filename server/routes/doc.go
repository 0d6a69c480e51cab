// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Package routes implements the preview server's handlers. Handlers return
// an error and are wrapped with middleware.CatchError.
package routes
