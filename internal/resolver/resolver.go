// Package resolver turns a set of dimension, unit and constant entries into
// concrete dimension vectors and magnitudes.
//
// Resolution runs as a fixed pipeline. Each stage drops only the entries it
// can prove broken and reports them; nothing aborts the pipeline. The result
// is always the maximal resolved subset together with every diagnostic, and it
// does not depend on the order of the input.
package resolver

import (
	"context"
	"log/slog"

	"github.com/specialistvlad/dimgrid/internal/ctxlog"
	"github.com/specialistvlad/dimgrid/internal/diag"
	"github.com/specialistvlad/dimgrid/internal/entry"
	"github.com/specialistvlad/dimgrid/internal/quantity"
)

// resolver is the working state of a single Resolve call.
type resolver struct {
	logger *slog.Logger

	// declared holds every input entry by name, duplicates included.
	declared map[string][]entry.Entry
	// live holds the entries that survived the stages run so far.
	live  []entry.Entry
	diags diag.Diagnostics

	resolved map[string]quantity.Quantity
	items    map[string]Item
}

// Resolve evaluates entries and returns the resolved subset plus diagnostics
// sorted by stage, then by name. The context only carries the logger.
func Resolve(ctx context.Context, entries []entry.Entry) (*Resolution, diag.Diagnostics) {
	r := &resolver{
		logger:   ctxlog.FromContext(ctx),
		declared: make(map[string][]entry.Entry),
		resolved: make(map[string]quantity.Quantity),
		items:    make(map[string]Item),
	}
	for _, e := range entries {
		if e == nil {
			continue
		}
		name := e.Name().Name
		r.declared[name] = append(r.declared[name], e)
		r.live = append(r.live, e)
	}
	r.logger.Debug("Resolution started.", "entries", len(r.live))

	r.run("undefined", r.dropUndefined)
	r.run("duplicates", r.dropDuplicates)
	r.run("kinds", r.dropKindViolations)

	basis := r.seedBases()
	r.evaluate()
	r.checkAnnotations()

	items := make([]Item, 0, len(r.items))
	for _, it := range r.items {
		items = append(items, it)
	}
	res := newResolution(items, basis)

	r.diags.Sort()
	r.logger.Debug("Resolution finished.", "resolved", res.Len(), "diagnostics", len(r.diags))
	return res, r.diags
}

// run executes a filtering stage and logs how many entries it dropped.
func (r *resolver) run(stage string, fn func()) {
	before, diags := len(r.live), len(r.diags)
	fn()
	r.logger.Debug("Stage complete.",
		"stage", stage,
		"dropped", before-len(r.live),
		"diagnostics", len(r.diags)-diags,
	)
}

func (r *resolver) report(d *diag.Diagnostic) {
	r.diags = append(r.diags, d)
}

// keep replaces live with the entries for which pred holds.
func (r *resolver) keep(pred func(entry.Entry) bool) {
	kept := r.live[:0:0]
	for _, e := range r.live {
		if pred(e) {
			kept = append(kept, e)
		}
	}
	r.live = kept
}

// unique returns the single declaration of name, or nil when the name is
// undeclared or declared more than once.
func (r *resolver) unique(name string) entry.Entry {
	if defs := r.declared[name]; len(defs) == 1 {
		return defs[0]
	}
	return nil
}
