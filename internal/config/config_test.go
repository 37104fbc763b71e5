// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dacolabs/schemagen/internal/oas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_LoadAndSave(t *testing.T) {
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, FileName)

	cfg := Default()
	cfg.Ranges = []Range{{
		Name:     "/seller/invoice",
		Source:   "sheets/invoice.csv",
		StartRow: 4,
		Title:    "Invoice Schema",
		Output:   "build/invoice.yaml",
	}}

	require.NoError(t, cfg.Save(cfgPath))

	loaded, err := Load(cfgPath)
	require.NoError(t, err)

	assert.Equal(t, cfg.Version, loaded.Version)
	assert.Equal(t, cfg.Common, loaded.Common)
	assert.Equal(t, cfg.Document, loaded.Document)
	require.Len(t, loaded.Ranges, 1)
	assert.Equal(t, "Invoice Schema", loaded.Ranges[0].Description)
	assert.Equal(t, tmpDir, loaded.Dir())
}

func TestConfig_Load(t *testing.T) {
	cfg, err := Load("testdata/valid.yaml")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 1, cfg.Version)
	assert.Equal(t, []string{"Common Schemas", "/buyer/order"}, cfg.RangeNames())
	assert.Equal(t, oas.SkipRow, cfg.RowErrorPolicy())

	common, ok := cfg.FindRange("Common Schemas")
	require.True(t, ok)
	assert.Equal(t, "Common Schemas", common.Title)
	assert.Equal(t, "Common Schemas", common.Description)

	order, ok := cfg.FindRange("/buyer/order")
	require.True(t, ok)
	assert.Equal(t, "Buyer side order.", order.Description)

	_, ok = cfg.FindRange("missing")
	assert.False(t, ok)
}

func TestConfig_LoadAppliesDefaults(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(cfgPath, []byte("version: 1\nranges:\n  - name: r\n    source: r.csv\n    output: r.yaml\n"), 0o600))

	cfg, err := Load(cfgPath)
	require.NoError(t, err)

	assert.Equal(t, oas.DefaultRefPolicy(), cfg.RefPolicy())
	assert.Equal(t, oas.DefaultInfo(), cfg.Info())
	assert.Equal(t, oas.AbortRange, cfg.RowErrorPolicy())
	assert.Equal(t, 1, cfg.Ranges[0].StartRow)
	assert.Equal(t, "r", cfg.Ranges[0].Title)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		cfg := Default()
		cfg.Ranges = []Range{{Name: "a", Source: "a.csv", StartRow: 1, Output: "out/a.yaml"}}
		cfg.Combine = []Combine{{Output: "all.yaml", Inputs: []string{"out/./a.yaml"}}}
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid config",
			mutate: func(*Config) {},
		},
		{
			name:    "unsupported version",
			mutate:  func(c *Config) { c.Version = 99 },
			wantErr: "unsupported config version",
		},
		{
			name:    "bad row error policy",
			mutate:  func(c *Config) { c.RowErrors = "ignore" },
			wantErr: "ignore",
		},
		{
			name:    "missing name",
			mutate:  func(c *Config) { c.Ranges[0].Name = "" },
			wantErr: "ranges[0]: name is required",
		},
		{
			name:    "missing source",
			mutate:  func(c *Config) { c.Ranges[0].Source = "" },
			wantErr: `range "a": source is required`,
		},
		{
			name:    "missing output",
			mutate:  func(c *Config) { c.Ranges[0].Output = "" },
			wantErr: `range "a": output is required`,
		},
		{
			name:    "start row",
			mutate:  func(c *Config) { c.Ranges[0].StartRow = 0 },
			wantErr: "start_row must be at least 1",
		},
		{
			name:    "duplicate range",
			mutate:  func(c *Config) { c.Ranges = append(c.Ranges, c.Ranges[0]) },
			wantErr: "defined more than once",
		},
		{
			name:    "combine input unknown",
			mutate:  func(c *Config) { c.Combine[0].Inputs = []string{"other.yaml"} },
			wantErr: `input "other.yaml" is not the output of any range`,
		},
		{
			name:    "combine without inputs",
			mutate:  func(c *Config) { c.Combine[0].Inputs = nil },
			wantErr: "inputs are required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestConfig_ValidateVersionError(t *testing.T) {
	cfg := Default()
	cfg.Version = 2
	assert.ErrorIs(t, cfg.Validate(), ErrUnsupportedVersion)
}

func TestConfig_ResolvePath(t *testing.T) {
	cfg := Default()
	cfg.SetDir(filepath.FromSlash("/work/project"))

	assert.Equal(t, filepath.FromSlash("/work/project/sheets/a.csv"), cfg.ResolvePath("sheets/a.csv"))
	abs := filepath.Join(t.TempDir(), "a.csv")
	assert.Equal(t, abs, cfg.ResolvePath(abs))
	assert.Equal(t, "", cfg.ResolvePath(""))

	rng := cfg.Sheet(Range{Name: "a", Source: "a.csv", StartRow: 3, Output: "out/a.yaml"})
	assert.Equal(t, filepath.FromSlash("/work/project/a.csv"), rng.Source)
	assert.Equal(t, filepath.FromSlash("/work/project/out/a.yaml"), rng.Output)
	assert.Equal(t, 3, rng.StartRow)
}

func TestConfig_SaveFormat(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), FileName)

	cfg := Default()
	require.NoError(t, cfg.Save(cfgPath))

	content, err := os.ReadFile(cfgPath) //nolint:gosec // test file path
	require.NoError(t, err)

	output := string(content)
	assert.Contains(t, output, "version: 1")
	assert.Contains(t, output, "range: Common Schemas")
	assert.Contains(t, output, "terms_of_service: http://placeholderdomain.io/terms/")
	assert.Contains(t, output, "row_errors: abort")
}

func TestConfig_Load_NotFound(t *testing.T) {
	_, err := Load("testdata/nonexistent.yaml")
	assert.Error(t, err)
}

func TestConfig_Load_Invalid(t *testing.T) {
	_, err := Load("testdata/invalid.yaml")
	assert.Error(t, err)
}

func TestConfig_Save_InvalidPath(t *testing.T) {
	err := Default().Save("/nonexistent/directory/config.yaml")
	assert.Error(t, err)
}

func TestConfig_Load_Empty(t *testing.T) {
	emptyFile := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(emptyFile, []byte(""), 0o600))

	_, err := Load(emptyFile)
	assert.Error(t, err)
}
