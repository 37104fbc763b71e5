// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package jschema

// Summary describes one component schema of a document.
type Summary struct {
	Name       string
	Kind       string
	Properties []string
	Required   []string
	Refs       []string
}

// Summaries returns a summary per component schema in document order.
func (d *Document) Summaries() []Summary {
	out := make([]Summary, 0, len(d.Names))
	for _, name := range d.Names {
		s, ok := d.Schemas[name]
		if !ok || s == nil {
			continue
		}
		out = append(out, Summary{
			Name:       name,
			Kind:       Kind(s),
			Properties: d.Properties(name),
			Required:   s.Required,
			Refs:       Refs(s),
		})
	}
	return out
}
