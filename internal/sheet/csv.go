// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package sheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// ReadCSV reads all rows from r. Trailing empty cells are dropped from each
// row the way spreadsheet value exports omit them, so a row of empty cells
// becomes a row with no cells. Fully blank lines are skipped by the CSV
// reader and do not count as rows.
func ReadCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	for i, rec := range records {
		records[i] = trimTrailing(rec)
	}
	return records, nil
}

// ReadCSVFile reads all rows from the CSV file at path.
func ReadCSVFile(path string) ([][]string, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from the project config
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck
	return ReadCSV(f)
}

func trimTrailing(cells []string) []string {
	n := len(cells)
	for n > 0 && cells[n-1] == "" {
		n--
	}
	return cells[:n]
}
