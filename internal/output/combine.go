// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package output

import (
	"errors"
	"fmt"

	"github.com/dacolabs/schemagen/internal/ordered"
)

// ErrNoInputs indicates Combine was called without documents.
var ErrNoInputs = errors.New("no documents to combine")

// Combine merges documents into one. The header comes from the first
// document; components.schemas of every document are merged in order.
// A schema name seen again replaces the earlier schema at its original
// position and is reported in replaced.
func Combine(docs ...*ordered.Map) (combined *ordered.Map, replaced []string, err error) {
	if len(docs) == 0 {
		return nil, nil, ErrNoInputs
	}

	combined = docs[0].Clone()
	schemas, err := schemasOf(combined)
	if err != nil {
		return nil, nil, fmt.Errorf("document 1: %w", err)
	}

	for i, doc := range docs[1:] {
		other, err := schemasOf(doc.Clone())
		if err != nil {
			return nil, nil, fmt.Errorf("document %d: %w", i+2, err)
		}
		for name, s := range other.All() {
			if schemas.Has(name) {
				replaced = append(replaced, name)
			}
			schemas.Set(name, s)
		}
	}
	return combined, replaced, nil
}

// schemasOf returns components.schemas of doc, creating empty mappings
// where they are missing.
func schemasOf(doc *ordered.Map) (*ordered.Map, error) {
	components, err := child(doc, "components")
	if err != nil {
		return nil, err
	}
	return child(components, "schemas")
}

func child(m *ordered.Map, key string) (*ordered.Map, error) {
	v, ok := m.Get(key)
	if !ok || v == nil {
		c := ordered.New()
		m.Set(key, c)
		return c, nil
	}
	c, ok := v.(*ordered.Map)
	if !ok {
		return nil, fmt.Errorf("%s is not a mapping", key)
	}
	return c, nil
}
