// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package literal parses constraint cells such as {'minimum': 0, 'maxItems': 5}.
//
// Only literal values are accepted: quoted strings, integers, floats, booleans,
// null, and flow lists and mappings of those. Nothing is ever evaluated; any
// bare word that is not a recognized literal is rejected.
package literal

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/dacolabs/schemagen/internal/ordered"
	"gopkg.in/yaml.v3"
)

var (
	// ErrSyntax indicates the input is not a well-formed literal.
	ErrSyntax = errors.New("invalid literal syntax")

	// ErrNotAllowed indicates a construct outside the literal subset.
	ErrNotAllowed = errors.New("construct not allowed in literal")

	// ErrNotMapping indicates a mapping was required but something else was given.
	ErrNotMapping = errors.New("literal is not a mapping")
)

var (
	intPattern   = regexp.MustCompile(`^[+-]?(0|[1-9][0-9]*)$`)
	floatPattern = regexp.MustCompile(`^[+-]?(([0-9]+\.[0-9]*|\.[0-9]+)([eE][+-]?[0-9]+)?|[0-9]+[eE][+-]?[0-9]+)$`)
)

// Parse parses s into a Go value: *ordered.Map, []any, string, int,
// float64, bool or nil.
func Parse(s string) (any, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("%w: empty input", ErrSyntax)
	}
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(s), &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) != 1 {
		return nil, fmt.Errorf("%w: expected a single value", ErrSyntax)
	}
	root := doc.Content[0]
	if (root.Kind == yaml.MappingNode || root.Kind == yaml.SequenceNode) && root.Style&yaml.FlowStyle == 0 {
		return nil, fmt.Errorf("%w: block collections", ErrNotAllowed)
	}
	return value(root)
}

// ParseMapping parses s and requires the result to be a mapping.
func ParseMapping(s string) (*ordered.Map, error) {
	v, err := Parse(s)
	if err != nil {
		return nil, err
	}
	m, ok := v.(*ordered.Map)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotMapping, s)
	}
	return m, nil
}

func value(n *yaml.Node) (any, error) {
	if n.Anchor != "" {
		return nil, fmt.Errorf("%w: anchor &%s", ErrNotAllowed, n.Anchor)
	}
	if n.Style&yaml.TaggedStyle != 0 {
		return nil, fmt.Errorf("%w: tag %s", ErrNotAllowed, n.Tag)
	}

	switch n.Kind {
	case yaml.MappingNode:
		m := ordered.New()
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i]
			if key.Kind != yaml.ScalarNode || !quoted(key) {
				return nil, fmt.Errorf("%w: mapping keys must be quoted strings (line %d)", ErrNotAllowed, key.Line)
			}
			if key.Anchor != "" || key.Style&yaml.TaggedStyle != 0 {
				return nil, fmt.Errorf("%w: decorated key %q", ErrNotAllowed, key.Value)
			}
			v, err := value(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			m.Set(key.Value, v)
		}
		return m, nil
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := value(c)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case yaml.ScalarNode:
		return scalar(n)
	case yaml.AliasNode:
		return nil, fmt.Errorf("%w: alias *%s", ErrNotAllowed, n.Value)
	default:
		return nil, fmt.Errorf("%w: unexpected node", ErrSyntax)
	}
}

func quoted(n *yaml.Node) bool {
	return n.Style&(yaml.SingleQuotedStyle|yaml.DoubleQuotedStyle) != 0
}

func scalar(n *yaml.Node) (any, error) {
	if quoted(n) {
		return n.Value, nil
	}
	if n.Style&(yaml.LiteralStyle|yaml.FoldedStyle) != 0 {
		return nil, fmt.Errorf("%w: block scalar", ErrNotAllowed)
	}

	v := n.Value
	switch v {
	case "True", "true":
		return true, nil
	case "False", "false":
		return false, nil
	case "None", "null":
		return nil, nil
	}
	if intPattern.MatchString(v) {
		i, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
		}
		return i, nil
	}
	if floatPattern.MatchString(v) {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
		}
		return f, nil
	}
	return nil, fmt.Errorf("%w: unquoted value %q", ErrNotAllowed, v)
}
