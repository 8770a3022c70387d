package resolver

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/specialistvlad/dimgrid/internal/diag"
	"github.com/specialistvlad/dimgrid/internal/entry"
	"github.com/specialistvlad/dimgrid/internal/exponent"
	"github.com/specialistvlad/dimgrid/internal/expr"
)

// site is a reference to name made by the entry from.
type site struct {
	ref  entry.Ident
	from string
}

// dropUndefined removes entries that reference undeclared names. Each missing
// name is reported once, listing every site that mentions it.
func (r *resolver) dropUndefined() {
	missing := make(map[string][]site)
	r.keep(func(e entry.Entry) bool {
		ok := true
		for ref := range e.References() {
			if _, declared := r.declared[ref.Name]; declared {
				continue
			}
			missing[ref.Name] = append(missing[ref.Name], site{ref: ref, from: e.Name().Name})
			ok = false
		}
		return ok
	})

	for _, name := range slices.Sorted(maps.Keys(missing)) {
		sites := missing[name]
		slices.SortStableFunc(sites, func(a, b site) int {
			return cmp.Or(strings.Compare(a.from, b.from), compareRanges(a.ref, b.ref))
		})
		idents := make([]entry.Ident, len(sites))
		var from []string
		for i, s := range sites {
			idents[i] = s.ref
			from = append(from, s.from)
		}
		r.report(&diag.Diagnostic{
			Kind:    diag.Undefined,
			Idents:  idents,
			Summary: fmt.Sprintf("undefined name %q", name),
			Detail:  "referenced by " + strings.Join(slices.Compact(from), ", "),
		})
	}
}

// dropDuplicates removes every definition of a name declared more than once
// and reports the name once, listing all definition sites.
func (r *resolver) dropDuplicates() {
	for _, name := range slices.Sorted(maps.Keys(r.declared)) {
		defs := slices.Clone(r.declared[name])
		if len(defs) < 2 {
			continue
		}
		slices.SortStableFunc(defs, compareDefinitions)
		idents := make([]entry.Ident, len(defs))
		described := make([]string, len(defs))
		for i, e := range defs {
			idents[i] = e.Name()
			described[i] = describe(e)
		}
		r.report(&diag.Diagnostic{
			Kind:    diag.MultiplyDefined,
			Idents:  idents,
			Summary: fmt.Sprintf("%q is defined %d times", name, len(defs)),
			Detail:  "definitions: " + strings.Join(described, "; "),
		})
	}
	r.keep(func(e entry.Entry) bool {
		return len(r.declared[e.Name().Name]) == 1
	})
}

// dropKindViolations removes entries whose definitions mention an entry of a
// kind they may not use, or a numeric literal other than 1 in a dimension.
// One diagnostic is raised per offending entry.
func (r *resolver) dropKindViolations() {
	r.keep(func(e entry.Entry) bool {
		var (
			idents = []entry.Ident{e.Name()}
			bad    []string
		)
		for ref := range e.References() {
			target := r.unique(ref.Name)
			if target == nil {
				// Multiply defined; already reported.
				continue
			}
			if !e.Kind().MayReference(target.Kind()) {
				idents = append(idents, ref)
				bad = append(bad, fmt.Sprintf("%s %q", target.Kind(), ref.Name))
			}
		}
		if e.Kind() == entry.KindDimension && e.Definition() != nil {
			for leaf := range expr.Values[entry.Leaf, exponent.Ratio](e.Definition()) {
				if n, ok := leaf.Number(); ok && n != 1 {
					bad = append(bad, "numeric literal "+leaf.String())
				}
			}
		}
		if len(bad) == 0 {
			return true
		}
		r.report(&diag.Diagnostic{
			Kind:    diag.KindNotAllowed,
			Idents:  idents,
			Summary: fmt.Sprintf("%s %q may not reference %s", e.Kind(), e.Name().Name, strings.Join(bad, ", ")),
			Detail:  allowedDetail(e.Kind()),
		})
		return false
	})
}

func allowedDetail(k entry.Kind) string {
	switch k {
	case entry.KindDimension:
		return "a dimension is built from other dimensions and the literal 1"
	case entry.KindBaseUnit:
		return "a base unit names the dimension it measures"
	default:
		return "a " + k.String() + " is built from units, base units, constants and numbers"
	}
}

// compareRanges orders idents by source position.
func compareRanges(a, b entry.Ident) int {
	return cmp.Or(
		strings.Compare(a.Range.Filename, b.Range.Filename),
		cmp.Compare(a.Range.Start.Byte, b.Range.Start.Byte),
		cmp.Compare(a.Range.End.Byte, b.Range.End.Byte),
	)
}

// compareDefinitions orders entries sharing a name by source position, then by
// kind and definition text, so entries built without ranges still sort the
// same way whatever order they arrive in.
func compareDefinitions(a, b entry.Entry) int {
	return cmp.Or(
		compareRanges(a.Name(), b.Name()),
		cmp.Compare(a.Kind(), b.Kind()),
		strings.Compare(entry.Format(a.Definition()), entry.Format(b.Definition())),
		slices.Compare(refNames(a), refNames(b)),
	)
}

// describe renders an entry as its kind and right-hand side.
func describe(e entry.Entry) string {
	if def := e.Definition(); def != nil {
		return e.Kind().String() + " = " + entry.Format(def)
	}
	if refs := refNames(e); len(refs) > 0 {
		return e.Kind().String() + " of " + strings.Join(refs, ", ")
	}
	return e.Kind().String()
}

func refNames(e entry.Entry) []string {
	var out []string
	for ref := range e.References() {
		out = append(out, ref.Name)
	}
	return out
}
