// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package sheet

import (
	"errors"
	"strings"
	"testing"

	"github.com/dacolabs/schemagen/internal/ordered"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRow(t *testing.T) {
	rng := &Range{Name: "/seller/invoice", StartRow: 11}
	row, err := NewRow(rng, 12, []string{" region ", "Required", "String", " string ", "", "  The   sales region. "})
	require.NoError(t, err)

	assert.Equal(t, "region", row.Name)
	assert.Equal(t, "string", row.DataType)
	assert.Equal(t, "The sales region.", row.Description.Value)
	assert.Equal(t, ordered.Plain, row.Description.Style)
	assert.Equal(t, "/seller/invoice", row.RangeName())
	assert.Equal(t, 12, row.Number)
	assert.True(t, row.IsRequired())
	assert.False(t, row.IsDeleted())
}

func TestNewRow_ShortRowDefaults(t *testing.T) {
	row, err := NewRow(nil, 1, []string{"Invoice", "", "TypeDef"})
	require.NoError(t, err)
	assert.True(t, row.IsTypeDef())
	assert.Empty(t, row.DataType)
	assert.True(t, row.Description.IsEmpty())
	assert.Empty(t, row.RangeName())
}

func TestNewRow_Malformed(t *testing.T) {
	rng := &Range{Name: "Common Schemas"}
	tests := []struct {
		name  string
		cells []string
	}{
		{"empty", nil},
		{"too few", []string{"a", "b"}},
		{"too many", []string{"a", "b", "c", "d", "e", "f", "g"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRow(rng, 7, tt.cells)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedRow)

			var mre *MalformedRowError
			require.True(t, errors.As(err, &mre))
			assert.Equal(t, "Common Schemas", mre.Range)
			assert.Equal(t, 7, mre.Row)
			assert.Contains(t, err.Error(), "Common Schemas row 7")
		})
	}
}

func TestRow_Flags(t *testing.T) {
	tests := []struct {
		name     string
		row      Row
		required bool
		deleted  bool
		typeDef  bool
		array    bool
	}{
		{"required", Row{Required: "Required", Type: "String"}, true, false, false, false},
		{"required wrong case", Row{Required: "required"}, false, false, false, false},
		{"deleted", Row{Required: "Deleted"}, false, true, false, false},
		{"deleted upper", Row{Required: "DELETED"}, false, true, false, false},
		{"typedef", Row{Type: "TypeDef"}, false, false, true, false},
		{"typedef wrong case", Row{Type: "typedef"}, false, false, false, false},
		{"array", Row{Type: "Array"}, false, false, false, true},
		{"array of refs", Row{Type: "Object ARRAY"}, false, false, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.required, tt.row.IsRequired())
			assert.Equal(t, tt.deleted, tt.row.IsDeleted())
			assert.Equal(t, tt.typeDef, tt.row.IsTypeDef())
			assert.Equal(t, tt.array, tt.row.IsArray())
		})
	}
}

func TestReadCSV(t *testing.T) {
	src := `Sheet title,,,,,
Purpose,"Describes the ""invoice"" flow",,,,
name,Required,Type,Data Type,Values,Description
,,,,,
Invoice,,TypeDef,,,An invoice
total,Required,Number,float,"{'minimum': 0}",
`
	rows, err := ReadCSV(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, rows, 6)

	assert.Equal(t, []string{"Sheet title"}, rows[0])
	assert.Equal(t, []string{"Purpose", `Describes the "invoice" flow`}, rows[1])
	assert.Empty(t, rows[3])
	assert.Equal(t, []string{"Invoice", "", "TypeDef", "", "", "An invoice"}, rows[4])
	assert.Equal(t, []string{"total", "Required", "Number", "float", "{'minimum': 0}"}, rows[5])
}

func TestReadCSVFile_NotFound(t *testing.T) {
	_, err := ReadCSVFile(t.TempDir() + "/missing.csv")
	require.Error(t, err)
}
