// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package description normalizes free-text descriptions taken from sheet cells.
package description

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dacolabs/schemagen/internal/ordered"
)

// PageWidth is the longest single line rendered as a plain scalar.
const PageWidth = 99

var (
	openParen  = regexp.MustCompile(`\(\s+`)
	closeParen = regexp.MustCompile(`\s+\)`)
	// lineBreak matches the line boundaries a spreadsheet cell may carry,
	// including old Mac CR and the Unicode separators.
	lineBreak = regexp.MustCompile("\r\n|[\n\r\v\f\x1c\x1d\x1e\u0085\u2028\u2029]")
)

// Text is a normalized description together with its rendering style.
type Text struct {
	Value string
	Style ordered.Style
}

// String returns the normalized value.
func (t Text) String() string {
	return t.Value
}

// IsEmpty reports whether nothing survived normalization.
func (t Text) IsEmpty() bool {
	return t.Value == ""
}

// Scalar returns the text as a styled document scalar.
func (t Text) Scalar() ordered.Scalar {
	return ordered.Scalar{Value: t.Value, Style: t.Style}
}

// Normalize collapses whitespace in raw and picks a rendering style.
// Multi-line results are rendered literally, a single line longer than
// PageWidth is folded. Normalize is idempotent.
func Normalize(raw string) Text {
	style := ordered.Plain
	var lines []string
	for _, line := range lineBreak.Split(raw, -1) {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			continue
		}
		line = openParen.ReplaceAllString(line, "(")
		line = closeParen.ReplaceAllString(line, ")")
		if utf8.RuneCountInString(line) > PageWidth {
			style = ordered.Folded
		}
		lines = append(lines, line)
	}
	if len(lines) > 1 {
		style = ordered.Literal
	}
	return Text{Value: strings.Join(lines, "\n"), Style: style}
}
