// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package assets embeds the demo dictionaries served by the preview server
when no static data directory is configured.
*/
package assets

import (
	"embed"

	"codeberg.org/pixivfe/tolgeefe/core/dict"
)

// Dir is the directory of the embedded dictionaries within FS.
const Dir = "i18n"

//go:embed i18n
var FS embed.FS

// StaticData loads the embedded dictionaries.
func StaticData() (dict.StaticData, error) {
	return dict.LoadStaticDir(FS, Dir)
}
