// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package zwc hides arbitrary bytes inside a string of zero-width code points.

Every payload byte becomes nine symbols: its eight bits, most significant
first, followed by a single 0 separator bit. A 0 bit is written as
U+200C ZERO WIDTH NON-JOINER and a 1 bit as U+200D ZERO WIDTH JOINER, so the
output of [Encode] renders as nothing while still being recoverable by
tooling such as the Tolgee in-context browser extension.

	marker := zwc.EncodeString(`{"k":"hello"}`)
	utf8.RuneCountInString(marker) == 9 * len(`{"k":"hello"}`)

[Decode] reverses the mapping and is intended for tests and offline tools;
the render path only ever encodes.
*/
package zwc
