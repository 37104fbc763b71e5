// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package commands contains all CLI command definitions.
package commands

import (
	"github.com/dacolabs/schemagen/internal/logging"
	"github.com/dacolabs/schemagen/internal/version"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	logLevel  string
	logFormat string
}

// NewRootCmd creates and returns the root command for the CLI.
// getenv supplies defaults for the logging flags.
func NewRootCmd(getenv func(string) string) *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "schemagen",
		Short: "Compile field-definition sheets into OpenAPI component schemas",
		Long: `schemagen reads field-definition sheets, one row per field, and compiles
each configured range into an OpenAPI 3.0 document of component schemas.`,
		Version:       version.Short(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := logging.Resolve(opts.logLevel, getenv, logging.EnvLogLevel, logging.DefaultLevel)
			format := logging.Resolve(opts.logFormat, getenv, logging.EnvLogFormat, logging.DefaultFormat)
			logger := logging.New(cmd.ErrOrStderr(), level, format)
			cmd.SetContext(logging.WithLogger(cmd.Context(), logger))
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error); env "+logging.EnvLogLevel)
	rootCmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "Log format (console or json); env "+logging.EnvLogFormat)

	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newGenerateCmd())
	registerRangesCmd(rootCmd)
	rootCmd.AddCommand(newInspectCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func registerRangesCmd(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ranges",
		Short: "Inspect the ranges configured in schemagen.yaml",
	}

	cmd.AddCommand(newRangesListCmd())

	parent.AddCommand(cmd)
}
