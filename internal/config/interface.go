package config

import (
	"context"

	"github.com/specialistvlad/dimgrid/internal/entry"
)

// Loader is the interface for a format-specific definition loader.
type Loader interface {
	// Load reads every definition file reachable from paths and translates
	// the declarations into entries, in file order. Source problems are
	// returned as an error; for HCL sources it wraps hcl.Diagnostics.
	Load(ctx context.Context, paths ...string) ([]entry.Entry, error)
}
