// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package oas

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/dacolabs/schemagen/internal/description"
	"github.com/dacolabs/schemagen/internal/ordered"
	"github.com/dacolabs/schemagen/internal/sheet"
	"github.com/rs/zerolog"
)

// RowErrorPolicy selects what happens when a row fails to compile.
type RowErrorPolicy int

const (
	// AbortRange stops the range at the first row error.
	AbortRange RowErrorPolicy = iota
	// SkipRow reports the error and continues with the next row.
	SkipRow
)

// ParseRowErrorPolicy parses "abort" or "skip". An empty string means abort.
func ParseRowErrorPolicy(s string) (RowErrorPolicy, error) {
	switch strings.ToLower(s) {
	case "", "abort":
		return AbortRange, nil
	case "skip":
		return SkipRow, nil
	default:
		return AbortRange, fmt.Errorf("unknown row error policy %q (want abort or skip)", s)
	}
}

func (p RowErrorPolicy) String() string {
	if p == SkipRow {
		return "skip"
	}
	return "abort"
}

// purposeLabel marks the header row whose second cell describes the range.
const purposeLabel = "purpose"

// Options configures an Assembler.
type Options struct {
	Refs       RefPolicy
	Info       Info // title and description are taken from each range
	Logger     zerolog.Logger
	OnRowError RowErrorPolicy
}

// Diagnostic is a message produced while assembling a range.
type Diagnostic struct {
	Level   zerolog.Level
	Range   string
	Row     int
	Name    string
	Message string
}

func (d Diagnostic) String() string {
	if d.Name != "" {
		return fmt.Sprintf("%s: %s -> row %d (%s): %s", d.Level, d.Range, d.Row, d.Name, d.Message)
	}
	return fmt.Sprintf("%s: %s -> row %d: %s", d.Level, d.Range, d.Row, d.Message)
}

// Result is the outcome of assembling one range.
type Result struct {
	Range       *sheet.Range
	Document    *Document
	Diagnostics []Diagnostic

	// Stopped is set when a malformed row ended the pass early. Document
	// still holds every schema built before that row.
	Stopped *sheet.MalformedRowError

	// Err is the row error that aborted the pass under AbortRange.
	Err error
}

// Assembler groups the rows of a range into named schema objects.
// An Assembler holds no per-range state and may be shared between goroutines.
type Assembler struct {
	opts Options
}

// NewAssembler creates an Assembler.
func NewAssembler(opts Options) *Assembler {
	return &Assembler{opts: opts}
}

// Assemble compiles the rows of rng into a Document.
func (a *Assembler) Assemble(rng *sheet.Range, rows [][]string) *Result {
	info := a.opts.Info
	info.Title = rng.Title
	info.Description = rng.Description

	p := &pass{
		opts: a.opts,
		rng:  rng,
		log:  a.opts.Logger.With().Str("range", rng.Name).Logger(),
		res: &Result{
			Range:    rng,
			Document: NewDocument(info),
		},
	}
	p.run(rows)
	return p.res
}

type pass struct {
	opts Options
	rng  *sheet.Range
	log  zerolog.Logger
	res  *Result

	purpose     description.Text
	purposeSeen bool
	groupSeen   bool

	group       *ordered.Map
	groupName   string
	groupIsEnum bool
}

func (p *pass) run(rows [][]string) {
	for i, cells := range rows {
		num := i + 1
		if num < p.rng.StartRow {
			p.header(cells)
			continue
		}

		row, err := sheet.NewRow(p.rng, num, cells)
		if err != nil {
			var mre *sheet.MalformedRowError
			if errors.As(err, &mre) {
				p.res.Stopped = mre
			}
			p.report(zerolog.WarnLevel, num, "", "stopped: "+err.Error())
			return
		}

		if row.IsTypeDef() {
			p.open(row)
			continue
		}
		if p.group == nil {
			continue
		}

		if err := p.add(row); err != nil {
			if p.opts.OnRowError == AbortRange {
				p.res.Err = err
				p.report(zerolog.ErrorLevel, num, row.Name, err.Error())
				return
			}
			p.report(zerolog.ErrorLevel, num, row.Name, "skipped: "+err.Error())
		}
	}
}

// header looks for the purpose label on a row above the range start.
// Any header row is accepted, not only the one just before the start,
// and the first labelled row wins.
func (p *pass) header(cells []string) {
	if p.purposeSeen || len(cells) < 2 {
		return
	}
	if strings.EqualFold(strings.TrimSpace(cells[0]), purposeLabel) {
		p.purpose = description.Normalize(cells[1])
		p.purposeSeen = true
	}
}

func (p *pass) open(row sheet.Row) {
	var group *ordered.Map
	isEnum := strings.EqualFold(row.DataType, "enum")
	if isEnum {
		group = EnumFragment(row)
	} else {
		group = ordered.FromPairs("properties", ordered.New())
	}

	desc := row.Description
	if !p.groupSeen {
		p.groupSeen = true
		if desc.IsEmpty() {
			desc = p.purpose
		}
	}
	if !desc.IsEmpty() {
		group.SetFirst("description", desc.Scalar())
	}

	if p.res.Document.Schemas.Has(row.Name) {
		p.report(zerolog.WarnLevel, row.Number, row.Name, "schema redefined; earlier rows replaced")
	}
	p.res.Document.Schemas.Set(row.Name, group)
	p.group = group
	p.groupName = row.Name
	p.groupIsEnum = isEnum
}

func (p *pass) add(row sheet.Row) error {
	if p.groupIsEnum {
		p.report(zerolog.WarnLevel, row.Number, row.Name,
			fmt.Sprintf("enum schema %s has no properties; row dropped", p.groupName))
		return nil
	}
	if row.IsDeleted() {
		p.report(zerolog.InfoLevel, row.Number, row.Name, "marked DELETED")
		return nil
	}

	frag, err := ParseRow(row, p.opts.Refs)
	if err != nil {
		return err
	}

	props, _ := p.group.Get("properties")
	props.(*ordered.Map).Set(row.Name, frag)

	if row.IsRequired() {
		var required []string
		if v, ok := p.group.Get("required"); ok {
			required = v.([]string)
		}
		if !slices.Contains(required, row.Name) {
			p.group.Set("required", append(required, row.Name))
		}
	}
	return nil
}

func (p *pass) report(level zerolog.Level, num int, name, msg string) {
	p.res.Diagnostics = append(p.res.Diagnostics, Diagnostic{
		Level:   level,
		Range:   p.rng.Name,
		Row:     num,
		Name:    name,
		Message: msg,
	})
	ev := p.log.WithLevel(level).Int("row", num)
	if name != "" {
		ev = ev.Str("name", name)
	}
	ev.Msg(msg)
}
