// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package zwc

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRune is returned when the marker contains a rune other than Zero or One.
	ErrInvalidRune = errors.New("marker contains a non zero-width rune")

	// ErrTruncated is returned when the marker length is not a multiple of BitsPerByte.
	ErrTruncated = errors.New("marker length is not a multiple of 9 symbols")

	// ErrSeparator is returned when a separator symbol is not Zero.
	ErrSeparator = errors.New("marker separator bit is set")
)

// Decode reverses [Encode].
//
// It returns an error if marker holds foreign runes, is not made of whole
// nine-symbol groups, or has a set separator bit.
func Decode(marker string) ([]byte, error) {
	out := make([]byte, 0, len(marker)/(BitsPerByte*symbolSize))

	var (
		cur   byte
		count int
		pos   int
	)

	for _, r := range marker {
		var bit byte

		switch r {
		case Zero:
		case One:
			bit = 1
		default:
			return nil, fmt.Errorf("%w: %U at symbol %d", ErrInvalidRune, r, pos)
		}

		if count == BitsPerByte-1 {
			if bit != 0 {
				return nil, fmt.Errorf("%w: symbol %d", ErrSeparator, pos)
			}

			out = append(out, cur)
			cur, count = 0, 0
		} else {
			cur = cur<<1 | bit
			count++
		}

		pos++
	}

	if count != 0 {
		return nil, fmt.Errorf("%w: %d trailing symbols", ErrTruncated, count)
	}

	return out, nil
}

// Bits renders marker as a string of '0' and '1' characters, one per symbol.
// Runes that are not marker symbols are rendered as '?'.
func Bits(marker string) string {
	out := make([]byte, 0, len(marker)/symbolSize)

	for _, r := range marker {
		switch r {
		case Zero:
			out = append(out, '0')
		case One:
			out = append(out, '1')
		default:
			out = append(out, '?')
		}
	}

	return string(out)
}
