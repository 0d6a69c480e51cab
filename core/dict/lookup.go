// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package dict

import "strings"

// Separator splits a key path into segments.
const Separator = "."

// Lookup resolves path against ns and returns the leaf it names.
//
// Resolution stops at the first segment that does not exist, or as soon as
// a leaf is reached while segments remain. A path that ends on a namespace
// is reported as absent too, since only leaves are renderable.
func Lookup(ns Namespace, path string) (string, bool) {
	if ns == nil {
		return "", false
	}

	var current Node = ns

	for _, segment := range strings.Split(path, Separator) {
		level, ok := current.(Namespace)
		if !ok {
			return "", false
		}

		current, ok = level[segment]
		if !ok {
			return "", false
		}
	}

	leaf, ok := current.(Leaf)
	if !ok {
		return "", false
	}

	return string(leaf), true
}

// Get resolves path like [Lookup] but returns the raw node, which may be
// a namespace. It returns nil when path does not resolve.
func Get(ns Namespace, path string) Node {
	if ns == nil {
		return nil
	}

	var current Node = ns

	for _, segment := range strings.Split(path, Separator) {
		level, ok := current.(Namespace)
		if !ok {
			return nil
		}

		if current, ok = level[segment]; !ok {
			return nil
		}
	}

	return current
}
