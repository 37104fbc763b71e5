// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package prompts

import (
	"errors"

	"github.com/charmbracelet/huh"
)

// RunRangeSelect asks which of the configured ranges to generate.
func RunRangeSelect(selected *[]string, names []string) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Ranges to generate").
				Options(huh.NewOptions(names...)...).
				Validate(func(s []string) error {
					if len(s) == 0 {
						return errors.New("select at least one range")
					}
					return nil
				}).
				Value(selected),
		),
	).WithTheme(Theme()).Run()
}
