// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package dict

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/gjson"
)

var (
	// ErrInvalidJSON is returned when a JSON document cannot be parsed.
	ErrInvalidJSON = errors.New("document contains invalid JSON")

	// ErrNotObject is returned when a document root is not a mapping.
	ErrNotObject = errors.New("document root is not an object")

	// ErrUnsupportedFormat is returned for files whose extension is not recognised.
	ErrUnsupportedFormat = errors.New("unsupported dictionary format")
)

// ParseJSON parses a JSON object into a Namespace.
func ParseJSON(data []byte) (Namespace, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidJSON
	}

	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, ErrNotObject
	}

	return FromJSON(root), nil
}

// FromJSON converts a parsed gjson object into a Namespace. Non-object
// results produce an empty namespace.
func FromJSON(obj gjson.Result) Namespace {
	ns := Namespace{}

	if !obj.IsObject() {
		return ns
	}

	obj.ForEach(func(key, value gjson.Result) bool {
		switch {
		case value.IsObject():
			ns[key.String()] = FromJSON(value)
		case value.Type == gjson.Null:
			// dropped
		default:
			ns[key.String()] = Leaf(value.String())
		}

		return true
	})

	return ns
}

// ParseYAML parses a YAML mapping into a Namespace.
func ParseYAML(data []byte) (Namespace, error) {
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to decode YAML dictionary: %w", err)
	}

	return FromMap(m), nil
}

// ParseTOML parses a TOML document into a Namespace.
func ParseTOML(data []byte) (Namespace, error) {
	var m map[string]any
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to decode TOML dictionary: %w", err)
	}

	return FromMap(m), nil
}

// Parse decodes data according to ext, one of ".json", ".yaml", ".yml" or ".toml".
func Parse(ext string, data []byte) (Namespace, error) {
	switch strings.ToLower(ext) {
	case ".json":
		return ParseJSON(data)
	case ".yaml", ".yml":
		return ParseYAML(data)
	case ".toml":
		return ParseTOML(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// LoadStaticDir reads every "<locale>.<ext>" dictionary file found in dir.
//
// A file may hold the locale tree directly, or wrap it under a single top
// level key equal to the locale, which is the shape of a Tolgee export.
// Files with unsupported extensions are skipped. An error is returned if dir
// cannot be read or any dictionary fails to parse.
func LoadStaticDir(fsys fs.FS, dir string) (StaticData, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read dictionary directory %q: %w", dir, err)
	}

	// Deterministic order so that duplicate locales resolve predictably.
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	data := StaticData{}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		ext := path.Ext(name)

		switch strings.ToLower(ext) {
		case ".json", ".yaml", ".yml", ".toml":
		default:
			continue
		}

		raw, err := fs.ReadFile(fsys, path.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to read dictionary %q: %w", name, err)
		}

		ns, err := Parse(ext, raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse dictionary %q: %w", name, err)
		}

		locale := strings.TrimSuffix(name, ext)
		data[locale] = unwrapLocale(ns, locale)
	}

	return data, nil
}

// unwrapLocale strips a single top-level locale key wrapping the tree.
func unwrapLocale(ns Namespace, locale string) Namespace {
	if len(ns) != 1 {
		return ns
	}

	if inner, ok := ns[locale].(Namespace); ok {
		return inner
	}

	return ns
}
