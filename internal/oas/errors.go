// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package oas

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingDataType indicates a property row without a data type.
	ErrMissingDataType = errors.New("missing data type")

	// ErrArrayDataType indicates an array marker in the data type column
	// instead of the type column.
	ErrArrayDataType = errors.New("array marker belongs in the type column, not the data type")

	// ErrUnresolvableArrayItem indicates an array row whose item fragment has
	// neither a type nor a $ref.
	ErrUnresolvableArrayItem = errors.New("array item has neither type nor $ref")

	// ErrInvalidConstraints indicates a constraint cell that is not a literal mapping.
	ErrInvalidConstraints = errors.New("invalid constraints")
)

// RowError wraps a failure to compile one row.
type RowError struct {
	Range string
	Row   int
	Name  string
	Err   error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("%s row %d (%s): %v", e.Range, e.Row, e.Name, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}
