// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package sheet models tabular field-definition ranges and their rows.
package sheet

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dacolabs/schemagen/internal/description"
)

// ErrMalformedRow indicates a row whose cell count does not fit the column contract.
var ErrMalformedRow = errors.New("malformed row")

// Column layout of a field-definition row.
const (
	ColName = iota
	ColRequired
	ColType
	ColDataType
	ColConstraints
	ColDescription

	// MinCells is the number of leading cells every row must carry.
	MinCells = ColType + 1
	// MaxCells is the total number of columns.
	MaxCells = ColDescription + 1
)

// Row sentinels.
const (
	RequiredFlag = "Required"
	DeletedFlag  = "DELETED"
	TypeDefType  = "TypeDef"
	ArrayMarker  = "array"
)

// Range identifies one slice of tabular input and the document built from it.
type Range struct {
	Name        string
	Source      string
	StartRow    int // 1-based; earlier rows are header rows
	Title       string
	Description string
	Output      string
}

// MalformedRowError reports a row that could not be turned into a Row.
type MalformedRowError struct {
	Range string
	Row   int // 1-based row number
	Cells []string
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("%s row %d: %d cells, want %d to %d: %q",
		e.Range, e.Row, len(e.Cells), MinCells, MaxCells, e.Cells)
}

// Unwrap returns ErrMalformedRow.
func (e *MalformedRowError) Unwrap() error {
	return ErrMalformedRow
}

// Row is one field definition.
type Row struct {
	Name        string
	Required    string
	Type        string
	DataType    string
	Constraints string
	Description description.Text
	Range       *Range
	Number      int // 1-based row number within the range
}

// NewRow builds a Row from the cells of row number num in rng. Cells are
// trimmed and the description is normalized.
func NewRow(rng *Range, num int, cells []string) (Row, error) {
	if len(cells) < MinCells || len(cells) > MaxCells {
		name := ""
		if rng != nil {
			name = rng.Name
		}
		return Row{}, &MalformedRowError{Range: name, Row: num, Cells: cells}
	}
	var c [MaxCells]string
	for i, cell := range cells {
		c[i] = strings.TrimSpace(cell)
	}
	return Row{
		Name:        c[ColName],
		Required:    c[ColRequired],
		Type:        c[ColType],
		DataType:    c[ColDataType],
		Constraints: c[ColConstraints],
		Description: description.Normalize(c[ColDescription]),
		Range:       rng,
		Number:      num,
	}, nil
}

// IsRequired reports whether the row is flagged as a required field.
func (r Row) IsRequired() bool {
	return r.Required == RequiredFlag
}

// IsDeleted reports whether the row is flagged as deleted.
func (r Row) IsDeleted() bool {
	return strings.EqualFold(r.Required, DeletedFlag)
}

// IsTypeDef reports whether the row opens a new named schema.
func (r Row) IsTypeDef() bool {
	return r.Type == TypeDefType
}

// IsArray reports whether the row's type column marks an array.
func (r Row) IsArray() bool {
	return strings.Contains(strings.ToLower(r.Type), ArrayMarker)
}

// RangeName returns the name of the range the row belongs to.
func (r Row) RangeName() string {
	if r.Range == nil {
		return ""
	}
	return r.Range.Name
}
