package hclload

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/dimgrid/internal/config"
	"github.com/specialistvlad/dimgrid/internal/ctxlog"
	"github.com/specialistvlad/dimgrid/internal/entry"
	"github.com/specialistvlad/dimgrid/internal/fsutil"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct {
	parser *hclparse.Parser
}

var _ config.Loader = (*Loader)(nil)

// NewLoader creates a new HCL definition loader.
func NewLoader() *Loader {
	return &Loader{parser: hclparse.NewParser()}
}

// Files returns the source of every file parsed so far, keyed by filename,
// for rendering diagnostics with hcl.NewDiagnosticTextWriter.
func (l *Loader) Files() map[string]*hcl.File {
	return l.parser.Files()
}

// Load parses every .hcl file reachable from paths and translates all blocks
// into entries. Problems in the files are collected across all of them and
// returned together as hcl.Diagnostics wrapped in the error.
func (l *Loader) Load(ctx context.Context, paths ...string) ([]entry.Entry, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	hclFiles, err := fsutil.CollectFiles(paths, ".hcl")
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(hclFiles))

	var (
		entries []entry.Entry
		diags   hcl.Diagnostics
	)
	for _, file := range hclFiles {
		fileEntries, fileDiags := l.loadFile(ctx, file)
		diags = append(diags, fileDiags...)
		entries = append(entries, fileEntries...)
	}
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to load definitions: %w", diags)
	}

	logger.Debug("HCL loading complete.", "files", len(hclFiles), "entries", len(entries))
	return entries, nil
}

func (l *Loader) loadFile(ctx context.Context, file string) ([]entry.Entry, hcl.Diagnostics) {
	logger := ctxlog.FromContext(ctx).With("file", file)
	logger.Debug("Decoding definition file.")

	hclFile, diags := l.parser.ParseHCLFile(file)
	if diags.HasErrors() {
		return nil, diags
	}

	var root fileRoot
	if decodeDiags := gohcl.DecodeBody(hclFile.Body, nil, &root); decodeDiags.HasErrors() {
		return nil, append(diags, decodeDiags...)
	}

	var entries []entry.Entry
	for _, b := range root.Dimensions {
		e, d := translateDimension(ctx, b)
		diags = append(diags, d...)
		if e != nil {
			entries = append(entries, e)
		}
	}
	for _, b := range root.Units {
		e, d := translateUnit(ctx, b)
		diags = append(diags, d...)
		if e != nil {
			entries = append(entries, e)
		}
	}
	for _, b := range root.Constants {
		e, d := translateConstant(ctx, b)
		diags = append(diags, d...)
		if e != nil {
			entries = append(entries, e)
		}
	}

	logger.Debug("Successfully decoded definition file.",
		"dimensions", len(root.Dimensions),
		"units", len(root.Units),
		"constants", len(root.Constants),
	)
	return entries, diags
}
