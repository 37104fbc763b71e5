// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package jschema

import (
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"slices"

	"gopkg.in/yaml.v3"
)

// Document is a generated OpenAPI document read back for inspection.
type Document struct {
	Title   string
	Version string

	// Names lists components.schemas in document order.
	Names   []string
	Schemas map[string]*Schema

	// propertyOrder maps a schema name to its property names in document order.
	propertyOrder map[string][]string
}

// Schema returns the named component schema.
func (d *Document) Schema(name string) (*Schema, bool) {
	s, ok := d.Schemas[name]
	return s, ok
}

// Properties returns the property names of a schema in document order.
func (d *Document) Properties(name string) []string {
	if order, ok := d.propertyOrder[name]; ok {
		return order
	}
	s, ok := d.Schemas[name]
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(s.Properties))
	for k := range s.Properties {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Loader loads generated documents from a filesystem.
type Loader struct {
	fsys fs.FS
}

// NewLoader creates a Loader that reads from the given filesystem.
func NewLoader(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys}
}

// LoadFile loads and parses a YAML or JSON document.
func (l *Loader) LoadFile(filePath string) (*Document, error) {
	f, err := l.fsys.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filePath, err)
	}
	return doc, nil
}

// Parse decodes a YAML or JSON document. JSON is read as YAML.
func Parse(data []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	names, propertyOrder := ExtractKeyOrder(&root)

	var tree any
	if err := root.Decode(&tree); err != nil {
		return nil, err
	}
	rawJSON, err := json.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("failed to convert document: %w", err)
	}

	var raw struct {
		Info struct {
			Title   string `json:"title"`
			Version string `json:"version"`
		} `json:"info"`
		Components struct {
			Schemas map[string]*Schema `json:"schemas"`
		} `json:"components"`
	}
	if err := json.Unmarshal(rawJSON, &raw); err != nil {
		return nil, err
	}

	schemas := raw.Components.Schemas
	if schemas == nil {
		schemas = make(map[string]*Schema)
	}
	return &Document{
		Title:         raw.Info.Title,
		Version:       raw.Info.Version,
		Names:         names,
		Schemas:       schemas,
		propertyOrder: propertyOrder,
	}, nil
}

// ExtractKeyOrder reads components.schemas from a parsed YAML tree and
// returns the schema names and each schema's property names in order.
func ExtractKeyOrder(root *yaml.Node) (names []string, properties map[string][]string) {
	properties = make(map[string][]string)

	doc := root
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		doc = doc.Content[0]
	}
	schemas := lookup(lookup(doc, "components"), "schemas")
	if schemas == nil || schemas.Kind != yaml.MappingNode {
		return nil, properties
	}

	for i := 0; i+1 < len(schemas.Content); i += 2 {
		name := schemas.Content[i].Value
		names = append(names, name)

		props := lookup(schemas.Content[i+1], "properties")
		if props == nil || props.Kind != yaml.MappingNode {
			continue
		}
		keys := make([]string, 0, len(props.Content)/2)
		for j := 0; j+1 < len(props.Content); j += 2 {
			keys = append(keys, props.Content[j].Value)
		}
		properties[name] = keys
	}
	return names, properties
}

func lookup(n *yaml.Node, key string) *yaml.Node {
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return n.Content[i+1]
		}
	}
	return nil
}
