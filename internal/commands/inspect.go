// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/dacolabs/schemagen/internal/jschema"
	"github.com/dacolabs/schemagen/internal/output"
	"github.com/spf13/cobra"
)

type inspectOptions struct {
	reformat bool
}

func newInspectCmd() *cobra.Command {
	opts := &inspectOptions{}

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Summarize a generated schema document",
		Long: `Summarize the component schemas of a generated OpenAPI document.
Lists each schema with its kind, property and required counts, and the
$refs it uses. References are listed, not checked.

With --reformat the document is written back to stdout as YAML, keeping
key order.`,
		Example: `  # Summarize a document
  schemagen inspect build/buyer/order.yaml

  # Re-dump a document as YAML
  schemagen inspect build/buyer/order.json --reformat`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.reformat {
				return runReformat(cmd.OutOrStdout(), args[0])
			}
			return runInspect(cmd.OutOrStdout(), args[0])
		},
	}

	cmd.Flags().BoolVar(&opts.reformat, "reformat", false, "Write the document to stdout as YAML instead of summarizing it")

	return cmd
}

func runInspect(out io.Writer, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	doc, err := jschema.NewLoader(os.DirFS(filepath.Dir(abs))).LoadFile(filepath.Base(abs))
	if err != nil {
		return fmt.Errorf("failed to load document: %w", err)
	}

	_, _ = fmt.Fprintf(out, "%s (version %s)\n\n", orDash(doc.Title), orDash(doc.Version))

	sums := doc.Summaries()
	if len(sums) == 0 {
		_, err := fmt.Fprintln(out, "No schemas defined.")
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "SCHEMA\tKIND\tPROPERTIES\tREQUIRED\tREFS")
	for _, s := range sums {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n",
			s.Name, s.Kind, len(s.Properties), len(s.Required), orDash(strings.Join(s.Refs, ", ")))
	}
	return w.Flush()
}

func runReformat(out io.Writer, path string) error {
	doc, err := output.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load document: %w", err)
	}
	return output.YAMLWriter.Encode(out, doc)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
