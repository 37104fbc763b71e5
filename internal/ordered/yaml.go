// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package ordered

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Style selects how a string scalar is rendered in YAML output.
type Style int

// Scalar rendering styles.
const (
	Plain Style = iota
	SingleQuoted
	Folded
	Literal
)

func (s Style) String() string {
	switch s {
	case SingleQuoted:
		return "single-quoted"
	case Folded:
		return "folded"
	case Literal:
		return "literal"
	default:
		return "plain"
	}
}

func (s Style) node() yaml.Style {
	switch s {
	case SingleQuoted:
		return yaml.SingleQuotedStyle
	case Folded:
		return yaml.FoldedStyle
	case Literal:
		return yaml.LiteralStyle
	default:
		return 0
	}
}

// Scalar is a string value with an explicit rendering style.
type Scalar struct {
	Value string
	Style Style
}

// MarshalYAML renders the scalar with its style.
func (s Scalar) MarshalYAML() (any, error) {
	return strNode(s.Value, s.Style), nil
}

// MarshalJSON encodes the scalar as a plain JSON string.
func (s Scalar) MarshalJSON() ([]byte, error) {
	return marshalJSON(s.Value)
}

// yaml11Words are plain scalars that YAML 1.1 readers resolve to booleans
// or null.
var yaml11Words = map[string]bool{
	"y": true, "Y": true, "yes": true, "Yes": true, "YES": true,
	"n": true, "N": true, "no": true, "No": true, "NO": true,
	"on": true, "On": true, "ON": true, "off": true, "Off": true, "OFF": true,
	"true": true, "True": true, "TRUE": true, "false": true, "False": true, "FALSE": true,
	"null": true, "Null": true, "NULL": true, "~": true,
}

// strNode builds a string scalar. Plain strings that a YAML 1.1 reader
// would not read back as a string are double quoted.
func strNode(value string, style Style) *yaml.Node {
	n := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value, Style: style.node()}
	if style == Plain && yaml11Words[value] {
		n.Style = yaml.DoubleQuotedStyle
	}
	return n
}

// MarshalYAML renders the map as a YAML mapping node in insertion order.
func (m *Map) MarshalYAML() (any, error) {
	return m.Node()
}

// Node converts the map to a yaml.Node tree.
func (m *Map) Node() (*yaml.Node, error) {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for k, v := range m.All() {
		val, err := toNode(v)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		n.Content = append(n.Content,
			strNode(k, Plain),
			val,
		)
	}
	return n, nil
}

func toNode(v any) (*yaml.Node, error) {
	switch t := v.(type) {
	case *Map:
		return t.Node()
	case Scalar:
		return strNode(t.Value, t.Style), nil
	case string:
		return strNode(t, Plain), nil
	case []any:
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, e := range t {
			en, err := toNode(e)
			if err != nil {
				return nil, err
			}
			seq.Content = append(seq.Content, en)
		}
		return seq, nil
	case []string:
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, e := range t {
			seq.Content = append(seq.Content, strNode(e, Plain))
		}
		return seq, nil
	default:
		n := &yaml.Node{}
		if err := n.Encode(v); err != nil {
			return nil, err
		}
		return n, nil
	}
}

// UnmarshalYAML decodes a mapping node, keeping key order. Nested mappings
// become *Map, sequences become []any and styled strings become Scalar.
func (m *Map) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping", node.Line)
	}
	if m.values == nil {
		m.values = make(map[string]any)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		v, err := fromNode(node.Content[i+1])
		if err != nil {
			return err
		}
		m.Set(node.Content[i].Value, v)
	}
	return nil
}

func fromNode(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return fromNode(n.Content[0])
	case yaml.AliasNode:
		return fromNode(n.Alias)
	case yaml.MappingNode:
		m := New()
		if err := m.UnmarshalYAML(n); err != nil {
			return nil, err
		}
		return m, nil
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := fromNode(c)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	default:
		if n.ShortTag() == "!!str" {
			switch {
			case n.Style&yaml.LiteralStyle != 0:
				return Scalar{Value: n.Value, Style: Literal}, nil
			case n.Style&yaml.FoldedStyle != 0:
				return Scalar{Value: n.Value, Style: Folded}, nil
			case n.Style&yaml.SingleQuotedStyle != 0:
				return Scalar{Value: n.Value, Style: SingleQuoted}, nil
			}
			return n.Value, nil
		}
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	}
}
