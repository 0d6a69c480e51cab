// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Package legacy provides production lookups backed by existing
// localization frameworks. [Bundle.Lookup] and [Gettext.Lookup] have the
// [i18n.LookupFunc] shape, so either can be wrapped with [i18n.WithTolgee].
package legacy
