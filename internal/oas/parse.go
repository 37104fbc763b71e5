// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package oas

import (
	"fmt"
	"strings"

	"github.com/dacolabs/schemagen/internal/description"
	"github.com/dacolabs/schemagen/internal/literal"
	"github.com/dacolabs/schemagen/internal/ordered"
	"github.com/dacolabs/schemagen/internal/sheet"
)

// TimePattern matches a 24-hour hh:mm:ss time of day.
const TimePattern = "^(([0-1][0-9])|(2[0-3]))(:[0-5][0-9]){2}$"

// RefPolicy decides how references to named schemas are written.
type RefPolicy struct {
	// CommonRange is the range whose own references stay document-local.
	CommonRange string
	// CommonDocument is the document every other range references.
	CommonDocument string
}

// DefaultRefPolicy returns the policy used when the project config sets none.
func DefaultRefPolicy() RefPolicy {
	return RefPolicy{
		CommonRange:    "Common Schemas",
		CommonDocument: "commonSchemas.yaml",
	}
}

// Ref builds the $ref string for target as seen from rangeName.
func (p RefPolicy) Ref(rangeName, target string) string {
	prefix := p.CommonDocument + "#"
	if rangeName == p.CommonRange {
		prefix = "#"
	}
	return prefix + "/components/schemas/" + target
}

// ParseRow compiles one property row into its schema fragment.
//
// Reference rows never carry an inline description: the referenced schema
// documents itself.
func ParseRow(row sheet.Row, refs RefPolicy) (*ordered.Map, error) {
	frag, err := parseRow(row, refs)
	if err != nil {
		return nil, &RowError{Range: row.RangeName(), Row: row.Number, Name: row.Name, Err: err}
	}
	return frag, nil
}

func parseRow(row sheet.Row, refs RefPolicy) (*ordered.Map, error) {
	dataType := strings.ToLower(strings.TrimSpace(row.DataType))
	if dataType == "" {
		return nil, ErrMissingDataType
	}
	if strings.Contains(dataType, sheet.ArrayMarker) {
		return nil, ErrArrayDataType
	}

	var (
		frag   *ordered.Map
		err    error
		isEnum = strings.HasPrefix(dataType, "enum")
	)
	switch {
	case dataType == "string":
		frag = ordered.FromPairs("type", "string")
	case isEnum:
		frag = enumFragment(row)
	case dataType == "integer":
		frag, err = withConstraints(ordered.FromPairs("type", "integer"), row)
	case dataType == "date":
		frag = ordered.FromPairs("type", "string", "format", "date")
	case dataType == "time":
		frag = ordered.FromPairs("type", "string", "pattern", TimePattern)
	case dataType == "date-time":
		frag = ordered.FromPairs("type", "string", "format", "date-time")
	case dataType == "float":
		frag, err = withConstraints(ordered.FromPairs("type", "number", "format", "float"), row)
	case dataType == "double":
		frag = ordered.FromPairs("type", "number", "format", "double")
	case dataType == "boolean":
		frag = ordered.FromPairs("type", "boolean")
	case dataType == "email":
		frag = ordered.FromPairs("type", "string", "format", "email")
	case strings.Contains(dataType, ","):
		frag, err = unionFragment(row, refs)
	default:
		row.Description = description.Text{}
		ref := refs.Ref(row.RangeName(), strings.TrimSpace(row.DataType))
		frag = ordered.FromPairs("$ref", ordered.Scalar{Value: ref, Style: ordered.SingleQuoted})
	}
	if err != nil {
		return nil, err
	}

	if row.IsArray() {
		if frag, err = arrayFragment(frag, row, isEnum); err != nil {
			return nil, err
		}
	}

	if !row.Description.IsEmpty() {
		frag.SetFirst("description", row.Description.Scalar())
	}
	return frag, nil
}

// EnumFragment builds {type: string, enum: [...]} from the row's
// comma-separated values.
func EnumFragment(row sheet.Row) *ordered.Map {
	return enumFragment(row)
}

func enumFragment(row sheet.Row) *ordered.Map {
	values := make([]string, 0)
	for _, v := range strings.Split(row.Constraints, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return ordered.FromPairs("type", "string", "enum", values)
}

func unionFragment(row sheet.Row, refs RefPolicy) (*ordered.Map, error) {
	alternatives := strings.Split(row.DataType, ",")
	oneOf := make([]any, 0, len(alternatives))
	for _, alt := range alternatives {
		branch := row
		branch.DataType = strings.TrimSpace(alt)
		branch.Description = description.Text{}
		f, err := parseRow(branch, refs)
		if err != nil {
			return nil, fmt.Errorf("alternative %q: %w", branch.DataType, err)
		}
		oneOf = append(oneOf, f)
	}
	return ordered.FromPairs("oneOf", oneOf), nil
}

// arrayFragment wraps inner as the items of an array. The constraint cell of
// an enum row holds its values, which stay on the items; for every other row
// the constraints apply to the array itself.
func arrayFragment(inner *ordered.Map, row sheet.Row, isEnum bool) (*ordered.Map, error) {
	items := ordered.New()
	if t, ok := inner.Get("type"); ok {
		items.Set("type", t)
	} else if ref, ok := inner.Get("$ref"); ok {
		items.Set("$ref", ref)
	} else {
		return nil, ErrUnresolvableArrayItem
	}
	wrapper := ordered.FromPairs("type", "array", "items", items)
	if isEnum {
		if values, ok := inner.Get("enum"); ok {
			items.Set("enum", values)
		}
		return wrapper, nil
	}
	return withConstraints(wrapper, row)
}

func withConstraints(frag *ordered.Map, row sheet.Row) (*ordered.Map, error) {
	if row.Constraints == "" {
		return frag, nil
	}
	c, err := literal.ParseMapping(row.Constraints)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConstraints, err)
	}
	frag.Merge(c)
	return frag, nil
}
