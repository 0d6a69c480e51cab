// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package legacy

import (
	"bytes"
	"maps"
	"strings"
	"text/template"
	"text/template/parse"

	gotemplate "github.com/nicksnyder/go-i18n/v2/i18n/template"
)

// placeholderParser parses go-i18n messages with text/template. A variable
// the message uses but the caller did not pass renders as "%{name}" rather
// than text/template's "<no value>".
type placeholderParser struct{}

func (placeholderParser) Cacheable() bool { return true }

func (placeholderParser) Parse(src, leftDelim, rightDelim string) (gotemplate.ParsedTemplate, error) {
	if leftDelim == "" {
		leftDelim = "{{"
	}

	if rightDelim == "" {
		rightDelim = "}}"
	}

	if !strings.Contains(src, leftDelim) {
		return literalTemplate(src), nil
	}

	tmpl, err := template.New("").Delims(leftDelim, rightDelim).Option("missingkey=error").Parse(src)
	if err != nil {
		return nil, err
	}

	names := make(map[string]struct{})
	collectFields(tmpl.Root, names)

	return &placeholderTemplate{tmpl: tmpl, names: names}, nil
}

type literalTemplate string

func (t literalTemplate) Execute(any) (string, error) { return string(t), nil }

type placeholderTemplate struct {
	tmpl  *template.Template
	names map[string]struct{} // top-level fields referenced as {{.name}}
}

func (t *placeholderTemplate) Execute(data any) (string, error) {
	var buf bytes.Buffer
	if err := t.tmpl.Execute(&buf, t.fill(data)); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// fill returns data with a "%{name}" value for every referenced field it
// lacks. Data that is not a string-keyed map is returned unchanged.
func (t *placeholderTemplate) fill(data any) any {
	vars := make(map[string]any, len(t.names))

	switch d := data.(type) {
	case nil:
	case map[string]any:
		maps.Copy(vars, d)
	default:
		return data
	}

	for name := range t.names {
		if _, ok := vars[name]; !ok {
			vars[name] = "%{" + name + "}"
		}
	}

	return vars
}

// collectFields records the first identifier of every field node under node.
func collectFields(node parse.Node, names map[string]struct{}) {
	switch n := node.(type) {
	case *parse.ListNode:
		if n == nil {
			return
		}

		for _, child := range n.Nodes {
			collectFields(child, names)
		}
	case *parse.ActionNode:
		collectFields(n.Pipe, names)
	case *parse.PipeNode:
		if n == nil {
			return
		}

		for _, cmd := range n.Cmds {
			collectFields(cmd, names)
		}
	case *parse.CommandNode:
		for _, arg := range n.Args {
			collectFields(arg, names)
		}
	case *parse.IfNode:
		collectBranch(&n.BranchNode, names)
	case *parse.RangeNode:
		collectBranch(&n.BranchNode, names)
	case *parse.WithNode:
		collectBranch(&n.BranchNode, names)
	case *parse.FieldNode:
		if len(n.Ident) > 0 {
			names[n.Ident[0]] = struct{}{}
		}
	}
}

func collectBranch(n *parse.BranchNode, names map[string]struct{}) {
	collectFields(n.Pipe, names)
	collectFields(n.List, names)
	collectFields(n.ElseList, names)
}
