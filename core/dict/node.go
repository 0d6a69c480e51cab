// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package dict

import (
	"fmt"
	"sort"
)

// Node is a single entry of a translation dictionary: a [Leaf] or a [Namespace].
type Node interface {
	isNode()
}

// Leaf is a translated string.
type Leaf string

// Namespace maps path segments to child nodes.
type Namespace map[string]Node

// StaticData holds caller-supplied dictionaries keyed by locale.
type StaticData map[string]Namespace

func (Leaf) isNode()      {}
func (Namespace) isNode() {}

// Empty returns a new namespace with no entries.
func Empty() Namespace {
	return Namespace{}
}

// Len returns the number of leaves reachable from ns.
func (ns Namespace) Len() int {
	n := 0

	for _, child := range ns {
		switch c := child.(type) {
		case Leaf:
			n++
		case Namespace:
			n += c.Len()
		}
	}

	return n
}

// Keys returns the dotted paths of every leaf in ns, sorted.
func (ns Namespace) Keys() []string {
	var keys []string

	ns.walk("", func(path string, _ Leaf) {
		keys = append(keys, path)
	})

	sort.Strings(keys)

	return keys
}

func (ns Namespace) walk(prefix string, fn func(path string, leaf Leaf)) {
	for name, child := range ns {
		path := name
		if prefix != "" {
			path = prefix + Separator + name
		}

		switch c := child.(type) {
		case Leaf:
			fn(path, c)
		case Namespace:
			c.walk(path, fn)
		}
	}
}

// FromMap converts a generic decoded document into a Namespace.
//
// Nested map[string]any and map[any]any values become namespaces, strings
// become leaves, nil values are dropped and any other scalar is formatted
// with %v. Slices are formatted the same way; dictionaries are not expected
// to contain them.
func FromMap(m map[string]any) Namespace {
	ns := make(Namespace, len(m))

	for k, v := range m {
		if node := fromValue(v); node != nil {
			ns[k] = node
		}
	}

	return ns
}

func fromValue(v any) Node {
	switch val := v.(type) {
	case nil:
		return nil
	case string:
		return Leaf(val)
	case Node:
		return val
	case map[string]any:
		return FromMap(val)
	case map[any]any:
		converted := make(map[string]any, len(val))
		for k, child := range val {
			converted[fmt.Sprint(k)] = child
		}

		return FromMap(converted)
	default:
		return Leaf(fmt.Sprint(val))
	}
}
