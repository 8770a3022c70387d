package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/dimgrid/internal/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const defsHCL = `
dimension "Length" {}

unit "meters" {
  symbol = "m"
  base   = Length
}

unit "furlong" {
  value = 220 * yards
}
`

func writeDefs(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "main.hcl")
	require.NoError(t, os.WriteFile(path, []byte(defsHCL), 0o600), "failed to set up test file")
	return path
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}

	// --- Act ---
	err := run(out, errOut, []string{"-h"})

	// --- Assert ---
	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	assert.Contains(t, errOut.String(), "Usage:", "Expected help text on the error stream")
	assert.Empty(t, out.String(), "help text must not pollute the report stream")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	// --- Act ---
	err := run(&bytes.Buffer{}, &bytes.Buffer{}, []string{"--this-is-not-a-valid-flag"})

	// --- Assert ---
	var exitErr *cli.ExitError
	require.True(t, errors.As(err, &exitErr), "parse failures must carry an exit code")
	assert.Equal(t, 2, exitErr.Code)
	assert.Contains(t, exitErr.Message, "unknown flag: --this-is-not-a-valid-flag")
}

func TestRun_Success(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := writeDefs(t)
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}

	// --- Act ---
	err := run(out, errOut, []string{"--format", "text", path})

	// --- Assert ---
	require.NoError(t, err, "diagnostics alone should not fail a non-strict run")
	assert.Contains(t, out.String(), "meters")
	assert.Contains(t, out.String(), "2 resolved")
	assert.Contains(t, errOut.String(), `undefined name "yards"`)
}

func TestRun_StrictFailure(t *testing.T) {
	t.Parallel()

	// --- Act ---
	err := run(&bytes.Buffer{}, &bytes.Buffer{}, []string{"--strict", writeDefs(t)})

	// --- Assert ---
	require.Error(t, err)
	var exitErr *cli.ExitError
	assert.False(t, errors.As(err, &exitErr), "strict failures exit with the generic status 1")
	assert.Contains(t, err.Error(), "strict mode")
}

func TestRun_LoadFailure(t *testing.T) {
	t.Parallel()

	// --- Act ---
	err := run(&bytes.Buffer{}, &bytes.Buffer{}, []string{filepath.Join(t.TempDir(), "missing.hcl")})

	// --- Assert ---
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error accessing path")
}
