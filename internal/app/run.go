package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/dimgrid/internal/diag"
	"github.com/specialistvlad/dimgrid/internal/render"
	"github.com/specialistvlad/dimgrid/internal/resolver"
)

// Run loads every definition, resolves it and writes the report. Resolution
// diagnostics are printed to the error writer; they only fail the run in
// strict mode, in which case the returned error wraps diag.Diagnostics.
func (a *App) Run(ctx context.Context) (*resolver.Resolution, error) {
	ctx = a.Context(ctx)
	a.logger.Debug("App.Run method started.", "paths", a.config.Paths)

	entries, err := a.loader.Load(ctx, a.config.Paths...)
	if err != nil {
		var hclDiags hcl.Diagnostics
		if errors.As(err, &hclDiags) {
			a.writeDiagnostics(hclDiags)
		}
		return nil, err
	}
	a.logger.Debug("Definitions loaded.", "entries", len(entries))

	res, diags := resolver.Resolve(ctx, entries)
	if len(diags) > 0 {
		a.logger.Warn("Resolution reported problems.",
			"count", len(diags),
			"undefined", len(diags.OfKind(diag.Undefined)),
			"unresolvable", len(diags.OfKind(diag.Unresolvable)),
		)
		a.writeDiagnostics(diags.HCL())
	}
	a.logger.Info("Definitions resolved.", "resolved", res.Len(), "basis", res.Basis.Names())

	if err := render.Encode(a.outW, a.config.Format, res); err != nil {
		return res, fmt.Errorf("failed to write %s report: %w", a.config.Format, err)
	}

	if a.config.Strict && diags.HasErrors() {
		return res, fmt.Errorf("strict mode: %w", diags)
	}
	a.logger.Debug("App.Run method finished.")
	return res, nil
}

// Diagnostics is a convenience for callers that need the raw diagnostics of a
// strict-mode failure.
func Diagnostics(err error) diag.Diagnostics {
	var diags diag.Diagnostics
	if errors.As(err, &diags) {
		return diags
	}
	return nil
}

func (a *App) writeDiagnostics(diags hcl.Diagnostics) {
	wr := hcl.NewDiagnosticTextWriter(a.errW, a.files(), 0, false)
	if err := wr.WriteDiagnostics(diags); err != nil {
		a.logger.Error("Failed to write diagnostics.", "error", err)
	}
}
