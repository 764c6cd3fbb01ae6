package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 2, cfg.EligibleLimit)
}

func TestParseKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
solver:
  max_iterations: 50
preview:
  size_mm: 100
`))
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.Solver.MaxIterations)
	assert.Equal(t, 1e-10, cfg.Solver.Tolerance)
	assert.Equal(t, 100.0, cfg.Preview.SizeMM)
	assert.Equal(t, 10.0, cfg.Preview.MarginMM)
	assert.Equal(t, 2, cfg.EligibleLimit)
}

func TestParseRejectsInvalid(t *testing.T) {
	_, err := Parse([]byte("eligible_limit: 0\nsolver:\n  tolerance: -1\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "eligible_limit")
	assert.Contains(t, err.Error(), "solver.tolerance")

	_, err = Parse([]byte("solver: [1, 2"))
	assert.Error(t, err)
}

func TestLoadFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conformal.yaml")
	require.NoError(t, os.WriteFile(path, []byte("eligible_limit: 3\n"), 0o644))

	t.Setenv(EnvVar, path)
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.EligibleLimit)

	t.Setenv(EnvVar, "")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
