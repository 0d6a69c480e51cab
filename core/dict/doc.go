// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package dict models translation dictionaries and resolves dotted key paths
against them.

A dictionary is a tree: every [Node] is either a [Leaf] holding a translated
string or a [Namespace] grouping further nodes. Trees are built by parsing a
document (JSON, YAML or TOML), so they cannot contain cycles, and they are
never mutated after construction.

	ns, _ := dict.ParseJSON([]byte(`{"namespace":{"morning":"Good morning."}}`))
	value, ok := dict.Lookup(ns, "namespace.morning") // "Good morning.", true
*/
package dict
