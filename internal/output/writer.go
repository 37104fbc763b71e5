// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package output writes generated documents and combines them.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dacolabs/schemagen/internal/ordered"
	"gopkg.in/yaml.v3"
)

// Writer encodes a document tree.
type Writer struct {
	encode    func(w io.Writer, v any) error
	extension string
}

var (
	// JSONWriter writes documents as indented JSON.
	JSONWriter = Writer{encodeJSON, ".json"}
	// YAMLWriter writes documents as YAML.
	YAMLWriter = Writer{encodeYAML, ".yaml"}
)

// ForPath picks the writer matching the file extension of path.
// Anything that is not .json is written as YAML.
func ForPath(path string) Writer {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return JSONWriter
	}
	return YAMLWriter
}

// Extension returns the file extension the writer produces.
func (wr Writer) Extension() string {
	return wr.extension
}

// Encode writes doc to w.
func (wr Writer) Encode(w io.Writer, doc *ordered.Map) error {
	return wr.encode(w, doc)
}

// Marshal returns the encoded document.
func (wr Writer) Marshal(doc *ordered.Map) ([]byte, error) {
	var buf bytes.Buffer
	if err := wr.encode(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile writes doc to path, creating parent directories.
func (wr Writer) WriteFile(path string, doc *ordered.Map) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.Create(path) //nolint:gosec // path is from config
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck
	return wr.encode(f, doc)
}

// Load reads a YAML or JSON document, keeping key order.
func Load(path string) (*ordered.Map, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a YAML or JSON document, keeping key order.
func Parse(data []byte) (*ordered.Map, error) {
	doc := ordered.New()
	if err := yaml.Unmarshal(data, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func encodeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
