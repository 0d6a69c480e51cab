// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import "fmt"

// Vars maps placeholder names to values.
type Vars map[string]any

// V builds Vars from its arguments.
//
// A single Vars or map[string]any argument is used as-is (not copied).
// Otherwise the arguments are read as alternating key, value pairs; keys
// that are not strings are formatted with %v and a trailing key without
// a value is ignored. V never panics, so malformed arguments coming from
// templates degrade to missing placeholders.
func V(kv ...any) Vars {
	if len(kv) == 1 {
		switch m := kv[0].(type) {
		case Vars:
			return m
		case map[string]any:
			return Vars(m)
		case map[string]string:
			out := make(Vars, len(m))
			for k, v := range m {
				out[k] = v
			}

			return out
		case nil:
			return nil
		}
	}

	m := make(Vars, len(kv)/2)

	for i := 0; i+1 < len(kv); i += 2 {
		k, ok := kv[i].(string)
		if !ok {
			k = fmt.Sprint(kv[i])
		}

		m[k] = kv[i+1]
	}

	return m
}
