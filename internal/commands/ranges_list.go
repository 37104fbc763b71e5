// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"fmt"
	"io"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/dacolabs/schemagen/internal/session"
	"github.com/spf13/cobra"
)

func newRangesListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the ranges in schemagen.yaml",
		Long: `List all ranges defined in schemagen.yaml.
Displays range names, first data row, source sheet and output document.`,
		Example: `  # List ranges
  schemagen ranges list`,
		Args:    cobra.NoArgs,
		PreRunE: session.PreRunLoad,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := session.RequireFromCommand(cmd)
			if err != nil {
				return err
			}
			return runRangesList(cmd.OutOrStdout(), ctx)
		},
	}

	return cmd
}

func runRangesList(out io.Writer, ctx *session.Context) error {
	if len(ctx.Config.Ranges) == 0 {
		_, err := fmt.Fprintln(out, "No ranges defined.")
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tSTART ROW\tSOURCE\tOUTPUT\tTITLE")

	for _, r := range ctx.Config.Ranges {
		title := r.Title
		if utf8.RuneCountInString(title) > 40 {
			title = string([]rune(title)[:37]) + "..."
		}
		if title == "" {
			title = "-"
		}
		_, _ = fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\n", r.Name, r.StartRow, r.Source, r.Output, title)
	}

	return w.Flush()
}
