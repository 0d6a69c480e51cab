// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"fmt"
	"strings"
	"sync"
)

// Renderer substitutes variables into a translated template.
type Renderer interface {
	Render(template string, vars Vars) string
}

// MessageRenderer renders {name} placeholders.
//
// Placeholder names consist of letters, digits, '_', '-' and '.'. A
// placeholder may carry ICU-style format arguments ("{count, number}"); they
// are skipped and the raw value is rendered. Apostrophes quote literal
// braces as in ICU MessageFormat: "''" renders one apostrophe and "'{x}'"
// renders "{x}". Unbalanced braces are copied through unchanged.
type MessageRenderer struct {
	// KeepUnknown renders placeholders without a matching variable as the
	// literal "{name}" token instead of the empty string.
	KeepUnknown bool

	cache sync.Map // key: template text, value: []segment
}

// segment is either literal text or, when isVar is set, a placeholder name.
type segment struct {
	text  string
	isVar bool
}

// Render implements Renderer.
func (r *MessageRenderer) Render(template string, vars Vars) string {
	if !strings.ContainsAny(template, "{'") {
		return template
	}

	segments := r.parse(template)

	var b strings.Builder

	b.Grow(len(template))

	for _, seg := range segments {
		if !seg.isVar {
			b.WriteString(seg.text)

			continue
		}

		value, ok := vars[seg.text]

		switch {
		case ok && value != nil:
			b.WriteString(stringify(value))
		case ok:
			// nil renders as nothing
		case r.KeepUnknown:
			b.WriteString("{" + seg.text + "}")
		}
	}

	return b.String()
}

func (r *MessageRenderer) parse(template string) []segment {
	if cached, ok := r.cache.Load(template); ok {
		return cached.([]segment)
	}

	segments := parseMessage(template)
	r.cache.Store(template, segments)

	return segments
}

func stringify(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

func parseMessage(s string) []segment {
	var (
		segments []segment
		lit      strings.Builder
	)

	flush := func() {
		if lit.Len() > 0 {
			segments = append(segments, segment{text: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(s); {
		c := s[i]

		switch {
		case c == '\'' && i+1 < len(s) && s[i+1] == '\'':
			lit.WriteByte('\'')

			i += 2

		case c == '\'' && i+1 < len(s) && (s[i+1] == '{' || s[i+1] == '}'):
			// Quoted literal: runs until the next lone apostrophe or the end.
			i++

			for i < len(s) {
				if s[i] == '\'' {
					if i+1 < len(s) && s[i+1] == '\'' {
						lit.WriteByte('\'')

						i += 2

						continue
					}

					i++

					break
				}

				lit.WriteByte(s[i])
				i++
			}

		case c == '{':
			name, end, ok := scanPlaceholder(s, i)
			if !ok {
				lit.WriteByte(c)
				i++

				continue
			}

			flush()

			segments = append(segments, segment{text: name, isVar: true})
			i = end

		default:
			lit.WriteByte(c)
			i++
		}
	}

	flush()

	return segments
}

// scanPlaceholder reads a placeholder starting at the '{' at s[start]. It
// returns the name, the index just past the closing '}' and whether a
// well-formed placeholder was found.
func scanPlaceholder(s string, start int) (string, int, bool) {
	i := start + 1

	for i < len(s) && s[i] == ' ' {
		i++
	}

	nameStart := i
	for i < len(s) && isNameByte(s[i]) {
		i++
	}

	name := s[nameStart:i]
	if name == "" {
		return "", 0, false
	}

	for i < len(s) && s[i] == ' ' {
		i++
	}

	if i >= len(s) {
		return "", 0, false
	}

	switch s[i] {
	case '}':
		return name, i + 1, true
	case ',':
		// Skip the format arguments, honouring nested braces.
		depth := 1

		for i++; i < len(s); i++ {
			switch s[i] {
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					return name, i + 1, true
				}
			}
		}

		return "", 0, false
	default:
		return "", 0, false
	}
}

func isNameByte(c byte) bool {
	return c == '_' || c == '-' || c == '.' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
