// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"codeberg.org/pixivfe/tolgeefe/core/tolgee"
	"codeberg.org/pixivfe/tolgeefe/i18n"
)

const defaultMarkerCacheSize = 512

// SetDefaults populates the configuration with default values.
func (cfg *ServerConfig) SetDefaults() {
	cfg.Basic.Host = "localhost"
	cfg.Basic.Port = "8383"

	cfg.Tolgee.APIURL = "https://app.tolgee.io"
	cfg.Tolgee.Timeout = tolgee.DefaultTimeout

	cfg.Internationalization.DefaultLocale = i18n.DefaultLocale
	cfg.Internationalization.RawMode = string(i18n.Production)
	cfg.Internationalization.LegacyBackend = LegacyNone

	cfg.Cache.Enabled = true
	cfg.Cache.Size = defaultMarkerCacheSize
	cfg.Cache.Compress = false

	cfg.Log.Level = "info"
	cfg.Log.Outputs = []string{"/dev/stderr"}
	cfg.Log.Format = "console"
}
