// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/dacolabs/schemagen/internal/config"
	"github.com/dacolabs/schemagen/internal/logging"
	"github.com/dacolabs/schemagen/internal/oas"
	"github.com/dacolabs/schemagen/internal/ordered"
	"github.com/dacolabs/schemagen/internal/output"
	"github.com/dacolabs/schemagen/internal/prompts"
	"github.com/dacolabs/schemagen/internal/session"
	"github.com/dacolabs/schemagen/internal/sheet"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

type generateOptions struct {
	ranges         []string
	all            bool
	parallel       int
	nonInteractive bool
}

// rangeJob is one selected range and the outcome of compiling it.
type rangeJob struct {
	cfg    config.Range
	sheet  *sheet.Range
	result *oas.Result
	err    error
}

func (j *rangeJob) failed() bool {
	return j.err != nil || (j.result != nil && j.result.Err != nil)
}

func (j *rangeJob) failure() error {
	if j.err != nil {
		return j.err
	}
	return j.result.Err
}

func newGenerateCmd() *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Compile ranges into OpenAPI schema documents",
		Long: `Compile the selected ranges of schemagen.yaml into OpenAPI documents,
then run the configured combine steps.

Ranges are compiled concurrently. Documents are written in the order the
ranges appear in schemagen.yaml.`,
		Example: `  # Interactive mode
  schemagen generate

  # Generate specific ranges
  schemagen generate --range "Common Schemas,/buyer/order"

  # Generate all ranges, one at a time
  schemagen generate --all --parallel 1`,
		Args:    cobra.NoArgs,
		PreRunE: session.PreRunLoad,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := session.RequireFromCommand(cmd)
			if err != nil {
				return err
			}
			return runGenerate(cmd, ctx, opts)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.ranges, "range", "r", nil, "Range name(s), comma-separated")
	cmd.Flags().BoolVarP(&opts.all, "all", "a", false, "Generate all ranges")
	cmd.Flags().IntVarP(&opts.parallel, "parallel", "p", runtime.NumCPU(), "Number of ranges compiled at once")
	cmd.Flags().BoolVar(&opts.nonInteractive, "non-interactive", false, "Run without prompts (generates all ranges unless --range is set)")

	return cmd
}

func runGenerate(cmd *cobra.Command, sc *session.Context, opts *generateOptions) error {
	cfg := sc.Config
	logger := logging.From(cmd.Context())

	if len(cfg.Ranges) == 0 {
		return errors.New("no ranges defined in " + config.FileName)
	}
	if opts.all && len(opts.ranges) > 0 {
		return errors.New("--all and --range are mutually exclusive")
	}
	if opts.parallel < 1 {
		return errors.New("--parallel must be at least 1")
	}

	selected, err := selectRanges(cfg, opts)
	if err != nil {
		return err
	}
	if len(selected) == 0 {
		return errors.New("no ranges selected")
	}

	jobs := make([]*rangeJob, len(selected))
	for i, r := range selected {
		jobs[i] = &rangeJob{cfg: r, sheet: cfg.Sheet(r)}
	}

	if err := compileRanges(cmd.Context(), cfg, jobs, opts.parallel, logger); err != nil {
		return err
	}

	fields, written := writeDocuments(jobs, logger)
	fields = append(fields, runCombine(cfg, jobs, logger)...)

	var failed int
	for _, f := range fields {
		if f.Failed {
			failed++
		}
	}

	msg := fmt.Sprintf("Generated %d document(s)", written)
	if failed > 0 {
		msg = ""
	}
	prompts.PrintResult(cmd.OutOrStdout(), fields, msg)

	if failed > 0 {
		return fmt.Errorf("%d step(s) failed", failed)
	}
	return nil
}

// selectRanges resolves the ranges to generate, in config order.
func selectRanges(cfg *config.Config, opts *generateOptions) ([]config.Range, error) {
	names := opts.ranges
	switch {
	case opts.all || (len(names) == 0 && opts.nonInteractive):
		return cfg.Ranges, nil
	case len(names) == 0:
		if err := prompts.RunRangeSelect(&names, cfg.RangeNames()); err != nil {
			return nil, err
		}
	}

	want := make(map[string]bool, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, ok := cfg.FindRange(n); !ok {
			return nil, fmt.Errorf("range %q not found in %s", n, config.FileName)
		}
		want[n] = true
	}

	var selected []config.Range
	for _, r := range cfg.Ranges {
		if want[r.Name] {
			selected = append(selected, r)
		}
	}
	return selected, nil
}

// compileRanges reads and assembles every job concurrently. Per-range
// failures are stored on the job; only cancellation is returned.
func compileRanges(ctx context.Context, cfg *config.Config, jobs []*rangeJob, parallel int, logger zerolog.Logger) error {
	asm := oas.NewAssembler(oas.Options{
		Refs:       cfg.RefPolicy(),
		Info:       cfg.Info(),
		Logger:     logger,
		OnRowError: cfg.RowErrorPolicy(),
	})

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)

	for _, job := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			logger.Debug().Str("range", job.sheet.Name).Str("source", job.sheet.Source).Msg("compiling range")

			rows, err := sheet.ReadCSVFile(job.sheet.Source)
			if err != nil {
				job.err = fmt.Errorf("failed to read source: %w", err)
				return nil
			}
			job.result = asm.Assemble(job.sheet, rows)
			return nil
		})
	}
	return g.Wait()
}

// writeDocuments writes the compiled documents sequentially in config
// order. A later range writing the same destination replaces the earlier
// document.
func writeDocuments(jobs []*rangeJob, logger zerolog.Logger) ([]prompts.ResultField, int) {
	fields := make([]prompts.ResultField, 0, len(jobs))
	owners := make(map[string]string)
	written := 0

	for _, job := range jobs {
		name := job.sheet.Name
		if job.failed() {
			logger.Error().Err(job.failure()).Str("range", name).Msg("range failed")
			fields = append(fields, prompts.ResultField{Label: name, Value: job.failure().Error(), Failed: true})
			continue
		}

		res := job.result
		dest := filepath.Clean(job.sheet.Output)
		if prev, ok := owners[dest]; ok {
			logger.Warn().Str("range", name).Str("output", job.cfg.Output).
				Msgf("overwriting the document written for range %q", prev)
		}
		owners[dest] = name

		if err := output.ForPath(dest).WriteFile(dest, res.Document.Map()); err != nil {
			job.err = fmt.Errorf("failed to write document: %w", err)
			logger.Error().Err(err).Str("range", name).Msg("write failed")
			fields = append(fields, prompts.ResultField{Label: name, Value: job.err.Error(), Failed: true})
			continue
		}
		written++
		logger.Info().Str("range", name).Str("output", dest).Int("schemas", res.Document.Schemas.Len()).Msg("document written")

		fields = append(fields, prompts.ResultField{Label: name, Value: describeResult(job.cfg.Output, res)})
	}
	return fields, written
}

func describeResult(dest string, res *oas.Result) string {
	var warnings, errs int
	for _, d := range res.Diagnostics {
		switch {
		case d.Level >= zerolog.ErrorLevel:
			errs++
		case d.Level == zerolog.WarnLevel:
			warnings++
		}
	}

	parts := []string{fmt.Sprintf("%d schema(s)", res.Document.Schemas.Len())}
	if warnings > 0 {
		parts = append(parts, fmt.Sprintf("%d warning(s)", warnings))
	}
	if errs > 0 {
		parts = append(parts, fmt.Sprintf("%d skipped row(s)", errs))
	}
	if res.Stopped != nil {
		parts = append(parts, fmt.Sprintf("stopped at row %d", res.Stopped.Row))
	}
	return fmt.Sprintf("%s (%s)", dest, strings.Join(parts, ", "))
}

// runCombine merges generated documents per the combine steps. A step
// runs only when all of its inputs were written in this run; steps with
// inputs from ranges that were not selected are skipped.
func runCombine(cfg *config.Config, jobs []*rangeJob, logger zerolog.Logger) []prompts.ResultField {
	status := make(map[string]*rangeJob)
	for _, job := range jobs {
		status[filepath.Clean(job.sheet.Output)] = job
	}

	var fields []prompts.ResultField
	for _, step := range cfg.Combine {
		label := "combine " + step.Output
		paths, err := combineInputs(cfg, step, status)
		switch {
		case errors.Is(err, errInputNotGenerated):
			logger.Info().Str("output", step.Output).Msg("combine skipped: " + err.Error())
			fields = append(fields, prompts.ResultField{Label: label, Value: "skipped (inputs not generated)"})
			continue
		case err != nil:
			logger.Error().Err(err).Str("output", step.Output).Msg("combine failed")
			fields = append(fields, prompts.ResultField{Label: label, Value: err.Error(), Failed: true})
			continue
		}

		if err := combineStep(cfg.ResolvePath(step.Output), paths, logger); err != nil {
			logger.Error().Err(err).Str("output", step.Output).Msg("combine failed")
			fields = append(fields, prompts.ResultField{Label: label, Value: err.Error(), Failed: true})
			continue
		}
		fields = append(fields, prompts.ResultField{
			Label: label,
			Value: fmt.Sprintf("%d document(s) merged", len(paths)),
		})
	}
	return fields
}

var errInputNotGenerated = errors.New("input not generated in this run")

// combineInputs resolves the input paths of step. Inputs produced by a
// failed range are an error.
func combineInputs(cfg *config.Config, step config.Combine, status map[string]*rangeJob) ([]string, error) {
	paths := make([]string, 0, len(step.Inputs))
	var missing error
	for _, in := range step.Inputs {
		path := filepath.Clean(cfg.ResolvePath(in))
		job, ok := status[path]
		switch {
		case !ok:
			missing = fmt.Errorf("%w: %s", errInputNotGenerated, in)
		case job.failed():
			return nil, fmt.Errorf("input %s: range %q failed", in, job.sheet.Name)
		}
		paths = append(paths, path)
	}
	if missing != nil {
		return nil, missing
	}
	return paths, nil
}

func combineStep(dest string, paths []string, logger zerolog.Logger) error {
	docs := make([]*ordered.Map, 0, len(paths))
	for _, path := range paths {
		doc, err := output.Load(path)
		if err != nil {
			return fmt.Errorf("input %s: %w", path, err)
		}
		docs = append(docs, doc)
	}

	combined, replaced, err := output.Combine(docs...)
	if err != nil {
		return err
	}
	for _, name := range replaced {
		logger.Warn().Str("output", dest).Str("schema", name).Msg("schema defined by more than one input; keeping the later one")
	}
	return output.ForPath(dest).WriteFile(dest, combined)
}
