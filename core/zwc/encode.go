// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package zwc

import (
	"strings"
	"unicode/utf8"
)

const (
	// Zero is the symbol written for a 0 bit (ZERO WIDTH NON-JOINER).
	Zero = '\u200C'

	// One is the symbol written for a 1 bit (ZERO WIDTH JOINER).
	One = '\u200D'

	// BitsPerByte is the number of symbols emitted for every payload byte,
	// eight data bits plus the trailing separator.
	BitsPerByte = 9

	// symbolSize is the UTF-8 length of both Zero and One.
	symbolSize = 3
)

// Encode returns payload as a string of [Zero] and [One] runes.
//
// The result always holds exactly BitsPerByte*len(payload) runes, and an
// empty payload yields the empty string.
func Encode(payload []byte) string {
	if len(payload) == 0 {
		return ""
	}

	var b strings.Builder

	b.Grow(len(payload) * BitsPerByte * symbolSize)

	for _, c := range payload {
		for shift := 7; shift >= 0; shift-- {
			if c>>shift&1 == 1 {
				b.WriteRune(One)
			} else {
				b.WriteRune(Zero)
			}
		}

		// separator
		b.WriteRune(Zero)
	}

	return b.String()
}

// EncodeString is shorthand for Encode([]byte(s)).
func EncodeString(s string) string {
	return Encode([]byte(s))
}

// IsSymbol reports whether r is one of the two marker runes.
func IsSymbol(r rune) bool {
	return r == Zero || r == One
}

// Split separates s into its visible text and the trailing run of marker
// runes. When s carries no marker, marker is empty.
func Split(s string) (visible, marker string) {
	i := len(s)

	for i > 0 {
		r, size := utf8.DecodeLastRuneInString(s[:i])
		if !IsSymbol(r) {
			break
		}

		i -= size
	}

	return s[:i], s[i:]
}
