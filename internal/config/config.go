// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package config handles the schemagen project file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dacolabs/schemagen/internal/oas"
	"github.com/dacolabs/schemagen/internal/sheet"
	"gopkg.in/yaml.v3"
)

// CurrentConfigVersion is the current version of the config file format.
const CurrentConfigVersion = 1

// FileName is the name of the project file.
const FileName = "schemagen.yaml"

// ErrUnsupportedVersion indicates a config file written for another format version.
var ErrUnsupportedVersion = errors.New("unsupported config version")

// Config represents the schemagen.yaml project file.
type Config struct {
	Version   int       `yaml:"version"`
	Common    Common    `yaml:"common"`
	Document  Document  `yaml:"document"`
	RowErrors string    `yaml:"row_errors,omitempty"`
	Ranges    []Range   `yaml:"ranges"`
	Combine   []Combine `yaml:"combine,omitempty"`

	// dir is the directory relative paths resolve against.
	dir string
}

// Common names the range holding shared schemas and the document other
// ranges reference them through.
type Common struct {
	Range    string `yaml:"range"`
	Document string `yaml:"document"`
}

// Document holds the info block defaults of generated documents.
type Document struct {
	Version        string  `yaml:"version"`
	TermsOfService string  `yaml:"terms_of_service"`
	Contact        Contact `yaml:"contact"`
	License        License `yaml:"license"`
}

// Contact is the info.contact block.
type Contact struct {
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
	URL   string `yaml:"url"`
}

// License is the info.license block.
type License struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// Range is one sheet range to compile.
type Range struct {
	Name        string `yaml:"name"`
	Source      string `yaml:"source"`
	StartRow    int    `yaml:"start_row"`
	Title       string `yaml:"title,omitempty"`
	Description string `yaml:"description,omitempty"`
	Output      string `yaml:"output"`
}

// Combine merges several generated documents into one output.
type Combine struct {
	Output string   `yaml:"output"`
	Inputs []string `yaml:"inputs"`
}

// Default returns a config with every default filled in and no ranges.
func Default() *Config {
	refs := oas.DefaultRefPolicy()
	info := oas.DefaultInfo()
	return &Config{
		Version: CurrentConfigVersion,
		Common: Common{
			Range:    refs.CommonRange,
			Document: refs.CommonDocument,
		},
		Document: Document{
			Version:        info.Version,
			TermsOfService: info.TermsOfService,
			Contact: Contact{
				Name:  info.Contact.Name,
				Email: info.Contact.Email,
				URL:   info.Contact.URL,
			},
			License: License{
				Name: info.License.Name,
				URL:  info.License.URL,
			},
		},
		RowErrors: oas.AbortRange.String(),
	}
}

// Load reads a Config from a file path. Omitted fields take their
// defaults and relative paths resolve against the file's directory.
func Load(path string) (*Config, error) {
	f, err := os.Open(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	cfg.dir = filepath.Dir(abs)
	return &cfg, nil
}

// Save writes the Config to a file path.
func (c *Config) Save(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}

func (c *Config) applyDefaults() {
	def := Default()
	if c.Common.Range == "" {
		c.Common.Range = def.Common.Range
	}
	if c.Common.Document == "" {
		c.Common.Document = def.Common.Document
	}

	d := &c.Document
	if d.Version == "" {
		d.Version = def.Document.Version
	}
	if d.TermsOfService == "" {
		d.TermsOfService = def.Document.TermsOfService
	}
	if d.Contact == (Contact{}) {
		d.Contact = def.Document.Contact
	}
	if d.License == (License{}) {
		d.License = def.Document.License
	}
	if c.RowErrors == "" {
		c.RowErrors = def.RowErrors
	}
	for i := range c.Ranges {
		r := &c.Ranges[i]
		if r.StartRow == 0 {
			r.StartRow = 1
		}
		if r.Title == "" {
			r.Title = r.Name
		}
		if r.Description == "" {
			r.Description = r.Title
		}
	}
}

// Validate checks the configuration for required fields and valid values.
func (c *Config) Validate() error {
	if c.Version != CurrentConfigVersion {
		return fmt.Errorf("%w: %d", ErrUnsupportedVersion, c.Version)
	}
	if _, err := oas.ParseRowErrorPolicy(c.RowErrors); err != nil {
		return err
	}

	var errs []error
	outputs := make(map[string]bool)
	seen := make(map[string]bool)
	for i, r := range c.Ranges {
		label := fmt.Sprintf("ranges[%d]", i)
		if r.Name == "" {
			errs = append(errs, fmt.Errorf("%s: name is required", label))
		} else {
			label = fmt.Sprintf("range %q", r.Name)
			if seen[r.Name] {
				errs = append(errs, fmt.Errorf("%s: defined more than once", label))
			}
			seen[r.Name] = true
		}
		if r.Source == "" {
			errs = append(errs, fmt.Errorf("%s: source is required", label))
		}
		if r.Output == "" {
			errs = append(errs, fmt.Errorf("%s: output is required", label))
		}
		if r.StartRow < 1 {
			errs = append(errs, fmt.Errorf("%s: start_row must be at least 1", label))
		}
		outputs[filepath.Clean(r.Output)] = true
	}

	for i, cb := range c.Combine {
		label := fmt.Sprintf("combine[%d]", i)
		if cb.Output == "" {
			errs = append(errs, fmt.Errorf("%s: output is required", label))
		}
		if len(cb.Inputs) == 0 {
			errs = append(errs, fmt.Errorf("%s: inputs are required", label))
		}
		for _, in := range cb.Inputs {
			if !outputs[filepath.Clean(in)] {
				errs = append(errs, fmt.Errorf("%s: input %q is not the output of any range", label, in))
			}
		}
	}
	return errors.Join(errs...)
}

// SetDir sets the directory relative paths resolve against.
func (c *Config) SetDir(dir string) {
	c.dir = dir
}

// Dir returns the directory relative paths resolve against.
func (c *Config) Dir() string {
	return c.dir
}

// ResolvePath returns p joined to the config directory unless it is absolute.
func (c *Config) ResolvePath(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.dir, p)
}

// FindRange returns the range with the given name.
func (c *Config) FindRange(name string) (Range, bool) {
	for _, r := range c.Ranges {
		if r.Name == name {
			return r, true
		}
	}
	return Range{}, false
}

// RangeNames returns the configured range names in file order.
func (c *Config) RangeNames() []string {
	names := make([]string, len(c.Ranges))
	for i, r := range c.Ranges {
		names[i] = r.Name
	}
	return names
}

// RefPolicy returns the reference rules for generated documents.
func (c *Config) RefPolicy() oas.RefPolicy {
	return oas.RefPolicy{CommonRange: c.Common.Range, CommonDocument: c.Common.Document}
}

// RowErrorPolicy returns the configured row error policy.
func (c *Config) RowErrorPolicy() oas.RowErrorPolicy {
	p, err := oas.ParseRowErrorPolicy(c.RowErrors)
	if err != nil {
		return oas.AbortRange
	}
	return p
}

// Info returns the info block defaults of generated documents.
func (c *Config) Info() oas.Info {
	d := c.Document
	return oas.Info{
		Version:        d.Version,
		TermsOfService: d.TermsOfService,
		Contact:        oas.Contact{Name: d.Contact.Name, Email: d.Contact.Email, URL: d.Contact.URL},
		License:        oas.License{Name: d.License.Name, URL: d.License.URL},
	}
}

// Sheet returns the range as a sheet.Range with resolved paths.
func (c *Config) Sheet(r Range) *sheet.Range {
	return &sheet.Range{
		Name:        r.Name,
		Source:      c.ResolvePath(r.Source),
		StartRow:    r.StartRow,
		Title:       r.Title,
		Description: r.Description,
		Output:      c.ResolvePath(r.Output),
	}
}
