// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dacolabs/schemagen/internal/ordered"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDoc(title string, schemas ...any) *ordered.Map {
	return ordered.FromPairs(
		"openapi", "3.0.0",
		"info", ordered.FromPairs("title", title),
		"paths", ordered.New(),
		"components", ordered.FromPairs("schemas", ordered.FromPairs(schemas...)),
	)
}

func TestForPath(t *testing.T) {
	assert.Equal(t, ".json", ForPath("out/schema.JSON").Extension())
	assert.Equal(t, ".yaml", ForPath("out/schema.yaml").Extension())
	assert.Equal(t, ".yaml", ForPath("out/schema.yml").Extension())
	assert.Equal(t, ".yaml", ForPath("out/schema").Extension())
}

func TestYAMLWriter_Marshal(t *testing.T) {
	doc := sampleDoc("Invoice",
		"Invoice", ordered.FromPairs(
			"description", ordered.Scalar{Value: "line one\nline two", Style: ordered.Literal},
			"properties", ordered.FromPairs(
				"party", ordered.FromPairs("$ref", ordered.Scalar{Value: "commonSchemas.yaml#/components/schemas/Party", Style: ordered.SingleQuoted}),
			),
		),
	)

	out, err := YAMLWriter.Marshal(doc)
	require.NoError(t, err)
	text := string(out)

	assert.True(t, strings.HasPrefix(text, "openapi: 3.0.0\ninfo:\n  title: Invoice\npaths: {}\ncomponents:\n"), text)
	assert.Contains(t, text, "      description: |-\n        line one\n        line two\n")
	assert.Contains(t, text, "$ref: 'commonSchemas.yaml#/components/schemas/Party'")
	assert.Less(t, strings.Index(text, "description"), strings.Index(text, "properties"))
}

func TestYAMLWriter_FoldedDescriptionStaysOnOneLine(t *testing.T) {
	long := strings.TrimSpace(strings.Repeat("folded words ", 12))
	doc := sampleDoc("Note", "Note", ordered.FromPairs(
		"description", ordered.Scalar{Value: long, Style: ordered.Folded},
	))

	out, err := YAMLWriter.Marshal(doc)
	require.NoError(t, err)
	assert.Contains(t, string(out), "      description: >-\n        "+long+"\n")

	back, err := Parse(out)
	require.NoError(t, err)
	components, _ := back.Get("components")
	schemas, _ := components.(*ordered.Map).Get("schemas")
	note, _ := schemas.(*ordered.Map).Get("Note")
	desc, _ := note.(*ordered.Map).Get("description")
	assert.Equal(t, ordered.Scalar{Value: long, Style: ordered.Folded}, desc)
}

func TestJSONWriter_Marshal(t *testing.T) {
	doc := sampleDoc("A & B", "Z", ordered.FromPairs("type", "string"), "A", ordered.FromPairs("type", "integer"))

	out, err := JSONWriter.Marshal(doc)
	require.NoError(t, err)
	assert.True(t, json.Valid(out))
	assert.Contains(t, string(out), `"title": "A & B"`)
	assert.Less(t, strings.Index(string(out), `"Z"`), strings.Index(string(out), `"A":`))
}

func TestWriteFileAndLoad(t *testing.T) {
	dir := t.TempDir()
	doc := sampleDoc("Round trip",
		"Second", ordered.FromPairs("description", ordered.Scalar{Value: "a\nb", Style: ordered.Literal}, "type", "string"),
		"First", ordered.FromPairs("type", "integer", "minimum", 0),
	)

	for _, name := range []string{"nested/dir/doc.yaml", "doc.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, ForPath(path).WriteFile(path, doc))

			loaded, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, []string{"openapi", "info", "paths", "components"}, loaded.Keys())

			schemas, err := schemasOf(loaded)
			require.NoError(t, err)
			assert.Equal(t, []string{"Second", "First"}, schemas.Keys())

			want, err := json.Marshal(doc)
			require.NoError(t, err)
			got, err := json.Marshal(loaded)
			require.NoError(t, err)
			assert.JSONEq(t, string(want), string(got))
		})
	}
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err))
}

func TestCombine(t *testing.T) {
	first := sampleDoc("Orders", "Order", ordered.FromPairs("type", "string"), "Shared", ordered.FromPairs("type", "integer"))
	second := sampleDoc("Ignored", "Confirmation", ordered.FromPairs("type", "boolean"), "Shared", ordered.FromPairs("type", "number"))
	third := ordered.FromPairs("openapi", "3.0.0")

	combined, replaced, err := Combine(first, second, third)
	require.NoError(t, err)
	assert.Equal(t, []string{"Shared"}, replaced)

	schemas, err := schemasOf(combined)
	require.NoError(t, err)
	assert.Equal(t, []string{"Order", "Shared", "Confirmation"}, schemas.Keys())

	shared, _ := schemas.Get("Shared")
	v, _ := shared.(*ordered.Map).Get("type")
	assert.Equal(t, "number", v)

	info, _ := combined.Get("info")
	title, _ := info.(*ordered.Map).Get("title")
	assert.Equal(t, "Orders", title)

	// inputs are untouched
	firstSchemas, _ := schemasOf(first)
	assert.Equal(t, []string{"Order", "Shared"}, firstSchemas.Keys())
}

func TestCombine_Errors(t *testing.T) {
	_, _, err := Combine()
	assert.ErrorIs(t, err, ErrNoInputs)

	_, _, err = Combine(ordered.FromPairs("components", "oops"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "components is not a mapping")
}
