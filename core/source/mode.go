// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package source

import "strings"

// Mode selects where dictionaries come from and whether markers are emitted.
type Mode string

const (
	// Production serves caller-supplied static dictionaries.
	Production Mode = "production"

	// Development fetches dictionaries from Tolgee and appends invisible key markers.
	Development Mode = "development"
)

// ParseMode maps s to a Mode, case-insensitively. Anything other than
// "development" (including the empty string) is Production.
func ParseMode(s string) Mode {
	if strings.EqualFold(strings.TrimSpace(s), string(Development)) {
		return Development
	}

	return Production
}

// IsDevelopment reports whether m is Development.
func (m Mode) IsDevelopment() bool {
	return m == Development
}

// String returns the mode name, defaulting to "production" for the zero value.
func (m Mode) String() string {
	if m == "" {
		return string(Production)
	}

	return string(m)
}
