// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package prompts

import (
	"github.com/charmbracelet/huh"
)

// RunInitForm runs the interactive form for the init command.
// It fills the provided pointers with user input.
func RunInitForm(commonRange, commonDocument, rowErrors *string) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Common range").
				Description("Range whose schemas other ranges reference").
				Placeholder("Common Schemas").
				Validate(requiredValidator("common range")).
				Value(commonRange),
			huh.NewInput().
				Title("Common document").
				Description("File other ranges point their $refs at").
				Placeholder("commonSchemas.yaml").
				Validate(requiredValidator("common document")).
				Value(commonDocument),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("When a row cannot be compiled").
				Options(
					huh.NewOption("Abort the range", "abort"),
					huh.NewOption("Skip the row and continue", "skip"),
				).
				Value(rowErrors),
		),
	).WithTheme(Theme()).Run()
}
