// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dacolabs/schemagen/internal/config"
	"github.com/dacolabs/schemagen/internal/logging"
	"github.com/dacolabs/schemagen/internal/prompts"
	"github.com/spf13/cobra"
)

type initOptions struct {
	commonRange    string
	commonDocument string
	rowErrors      string
	nonInteractive bool
}

func newInitCmd() *cobra.Command {
	def := config.Default()
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new schemagen project",
		Long: `Initialize a new schemagen project with a schemagen.yaml file.
Ranges are added to the file by hand once it exists.`,
		Example: `  # Interactive mode
  schemagen init

  # Non-interactive
  schemagen init --non-interactive
  schemagen init --common-range "Shared" --common-document shared.yaml --non-interactive`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get current directory: %w", err)
			}
			return runInit(cmd, cwd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.commonRange, "common-range", def.Common.Range, "Range whose schemas are referenced locally")
	cmd.Flags().StringVar(&opts.commonDocument, "common-document", def.Common.Document, "Document other ranges reference common schemas through")
	cmd.Flags().StringVar(&opts.rowErrors, "row-errors", def.RowErrors, "What to do with rows that fail to compile (abort or skip)")
	cmd.Flags().BoolVar(&opts.nonInteractive, "non-interactive", false, "Run without prompts")

	return cmd
}

func runInit(cmd *cobra.Command, dir string, opts *initOptions) error {
	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return fmt.Errorf("%s already exists; project already initialized", config.FileName)
	}

	if !opts.nonInteractive {
		if err := prompts.RunInitForm(&opts.commonRange, &opts.commonDocument, &opts.rowErrors); err != nil {
			return err
		}
	}

	cfg := config.Default()
	cfg.Common.Range = opts.commonRange
	cfg.Common.Document = opts.commonDocument
	cfg.RowErrors = opts.rowErrors

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := cfg.Save(cfgPath); err != nil {
		return fmt.Errorf("config file couldn't be saved: %w", err)
	}

	logger := logging.From(cmd.Context())
	logger.Debug().Str("path", cfgPath).Msg("wrote project file")

	prompts.PrintResult(cmd.OutOrStdout(), []prompts.ResultField{
		{Label: "Config", Value: cfgPath},
		{Label: "Common range", Value: cfg.Common.Range},
		{Label: "Common document", Value: cfg.Common.Document},
		{Label: "Row errors", Value: cfg.RowErrors},
	}, "Initialization completed")
	return nil
}
