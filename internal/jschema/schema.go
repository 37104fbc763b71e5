// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package jschema loads generated documents into JSON Schema models for
// inspection and traversal.
package jschema

import (
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
)

// Schema is a single JSON Schema node.
type Schema = jsonschema.Schema

const componentsPrefix = "#/components/schemas/"

// IsFileRef returns true if ref points into another document.
// File refs do not start with "#/".
func IsFileRef(ref string) bool {
	return ref != "" && !strings.HasPrefix(ref, "#/")
}

// RefDocument returns the document part of ref, empty for local refs.
func RefDocument(ref string) string {
	doc, _, _ := strings.Cut(ref, "#")
	return doc
}

// RefName returns the schema name a components ref points to.
func RefName(ref string) string {
	_, frag, ok := strings.Cut(ref, "#")
	if !ok {
		return ""
	}
	return strings.TrimPrefix("#"+frag, componentsPrefix)
}

// Kind describes the shape of a top level schema.
func Kind(s *Schema) string {
	switch {
	case len(s.Enum) > 0:
		return "enum"
	case s.Type != "":
		return s.Type
	case len(s.OneOf) > 0:
		return "oneOf"
	case s.Ref != "":
		return "ref"
	default:
		return "object"
	}
}
