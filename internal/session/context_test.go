// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	origDir, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	require.NoError(t, os.Chdir(dir))
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		dir       string // relative to the package, empty means use t.TempDir()
		wantErr   error
		wantRange string // only checked if wantErr is nil
	}{
		{
			name:    "not initialized",
			dir:     "",
			wantErr: ErrNotInitialized,
		},
		{
			name:    "invalid config",
			dir:     "testdata/invalid-config",
			wantErr: ErrInvalidConfig,
		},
		{
			name:    "invalid ranges",
			dir:     "testdata/invalid-ranges",
			wantErr: ErrInvalidConfig,
		},
		{
			name:      "valid",
			dir:       "testdata/valid",
			wantRange: "/seller/invoice",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var testDir string
			if tt.dir == "" {
				testDir = t.TempDir()
			} else {
				var err error
				testDir, err = filepath.Abs(tt.dir)
				require.NoError(t, err)
			}
			chdir(t, testDir)

			ctx, err := Load(context.Background())

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			sc := From(ctx)
			require.NotNil(t, sc)
			assert.Equal(t, []string{tt.wantRange}, sc.Config.RangeNames())
			assert.Equal(t, filepath.Join(sc.Dir, "invoice.csv"), sc.Config.ResolvePath("invoice.csv"))
		})
	}
}

func TestFrom_NoContextStored(t *testing.T) {
	assert.Nil(t, From(context.Background()))
}

func TestFromCommand(t *testing.T) {
	testDir, err := filepath.Abs("testdata/valid")
	require.NoError(t, err)
	chdir(t, testDir)

	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())

	assert.Nil(t, FromCommand(cmd))

	require.NoError(t, PreRunLoad(cmd, nil))
	sc := FromCommand(cmd)
	require.NotNil(t, sc)
	assert.Equal(t, 4, sc.Config.Ranges[0].StartRow)
}

func TestRequireFromCommand(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())

	_, err := RequireFromCommand(cmd)
	assert.Error(t, err)

	testDir, err := filepath.Abs("testdata/valid")
	require.NoError(t, err)
	ctx, err := LoadDir(context.Background(), testDir)
	require.NoError(t, err)
	cmd.SetContext(ctx)

	sc, err := RequireFromCommand(cmd)
	require.NoError(t, err)
	assert.Equal(t, testDir, sc.Dir)
}

func TestPreRunLoad_NotInitialized(t *testing.T) {
	chdir(t, t.TempDir())

	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	assert.ErrorIs(t, PreRunLoad(cmd, nil), ErrNotInitialized)
}
