package testutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/specialistvlad/dimgrid/internal/app"
	"github.com/specialistvlad/dimgrid/internal/diag"
	"github.com/specialistvlad/dimgrid/internal/hclload"
	"github.com/specialistvlad/dimgrid/internal/render"
	"github.com/specialistvlad/dimgrid/internal/resolver"
	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// Options tweaks a harness run. The zero value renders text without strict mode.
type Options struct {
	Format render.Format
	Strict bool
}

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	// Report is what the app wrote to its output stream.
	Report string
	// LogOutput holds logs and rendered diagnostics.
	LogOutput  string
	Err        error
	Resolution *resolver.Resolution
	// Diagnostics are the resolver's diagnostics, re-derived from the
	// resolution so they are available even when strict mode is off.
	Diagnostics diag.Diagnostics
	// Dir is the temporary root the files were written to.
	Dir string
}

// RunIntegrationTest provides a standardized harness for running integration
// tests using a default background context.
func RunIntegrationTest(t *testing.T, files map[string]string, opts Options) *HarnessResult {
	t.Helper()
	return RunIntegrationTestWithContext(context.Background(), t, files, opts)
}

// RunIntegrationTestWithContext writes files (relative paths to HCL source)
// into a temporary directory and runs the app over that directory.
func RunIntegrationTestWithContext(ctx context.Context, t *testing.T, files map[string]string, opts Options) *HarnessResult {
	t.Helper()

	tmpDir := t.TempDir()
	for name, content := range files {
		filePath := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0o755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0o644))
	}

	appConfig, err := app.NewConfig(app.Config{
		Paths:     []string{tmpDir},
		Format:    opts.Format,
		Strict:    opts.Strict,
		LogLevel:  "debug",
		LogFormat: "text",
	})
	require.NoError(t, err)

	report := &SafeBuffer{}
	logBuffer := &SafeBuffer{}
	loader := hclload.NewLoader()
	testApp := app.NewApp(report, logBuffer, appConfig, loader)

	var (
		res    *resolver.Resolution
		runErr error
	)
	func() {
		defer func() {
			if r := recover(); r != nil {
				runErr = fmt.Errorf("application panicked | %v", r)
			}
		}()
		res, runErr = testApp.Run(ctx)
	}()

	if os.Getenv("DIMGRID_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
	}

	result := &HarnessResult{
		Report:     report.String(),
		LogOutput:  logBuffer.String(),
		Err:        runErr,
		Resolution: res,
		Dir:        tmpDir,
	}
	if runErr == nil || res != nil {
		// A second resolve over the same sources exposes the diagnostics
		// without asserting on rendered text.
		entries, err := loader.Load(ctx, tmpDir)
		require.NoError(t, err)
		_, result.Diagnostics = resolver.Resolve(ctx, entries)
	}
	return result
}
