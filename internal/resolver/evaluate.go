package resolver

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/specialistvlad/dimgrid/internal/dag"
	"github.com/specialistvlad/dimgrid/internal/diag"
	"github.com/specialistvlad/dimgrid/internal/dimension"
	"github.com/specialistvlad/dimgrid/internal/entry"
	"github.com/specialistvlad/dimgrid/internal/exponent"
	"github.com/specialistvlad/dimgrid/internal/expr"
	"github.com/specialistvlad/dimgrid/internal/magnitude"
	"github.com/specialistvlad/dimgrid/internal/quantity"
)

// seedBases resolves every surviving base dimension to its unit vector and
// returns the basis they span.
func (r *resolver) seedBases() dimension.Basis {
	var names []string
	for _, e := range r.live {
		d, ok := e.(*entry.Dimension)
		if !ok || !d.IsBase() {
			continue
		}
		name := d.Ident.Name
		r.resolve(e, quantity.BaseDimension(name))
		names = append(names, name)
	}
	r.logger.Debug("Seeded base dimensions.", "count", len(names))
	return dimension.NewBasis(names...)
}

// evaluate resolves the surviving entries in dependency order. Entries that
// sit on a cycle or wait on a dropped entry are reported together as one
// Unresolvable diagnostic.
func (r *resolver) evaluate() {
	g := dag.New()
	byName := make(map[string]entry.Entry, len(r.live))
	for _, e := range r.live {
		byName[e.Name().Name] = e
		g.AddNode(e.Name().Name)
	}
	for _, e := range r.live {
		for ref := range e.References() {
			if g.Has(ref.Name) {
				// Both nodes exist.
				_ = g.AddEdge(ref.Name, e.Name().Name)
			}
		}
	}

	order, _ := g.Order()
	var (
		leftover []string
		failed   int
		ordered  = make(map[string]bool, len(order))
	)
	for _, name := range order {
		ordered[name] = true
		if _, done := r.resolved[name]; done {
			continue
		}
		e := byName[name]
		if !r.ready(e) {
			leftover = append(leftover, name)
			continue
		}
		q, ok := r.eval(e)
		if !ok {
			failed++
			continue
		}
		r.resolve(e, q)
	}
	r.logger.Debug("Stage complete.", "stage", "evaluate", "resolved", len(r.resolved), "failed", failed)

	// Cycle members never appear in order.
	for _, e := range r.live {
		name := e.Name().Name
		if _, done := r.resolved[name]; !done && !ordered[name] {
			leftover = append(leftover, name)
		}
	}
	if len(leftover) == 0 {
		return
	}
	slices.Sort(leftover)
	r.reportUnresolvable(g, leftover, byName)
}

// ready reports whether every reference of e has been resolved.
func (r *resolver) ready(e entry.Entry) bool {
	for ref := range e.References() {
		if _, ok := r.resolved[ref.Name]; !ok {
			return false
		}
	}
	return true
}

// eval computes the quantity of an entry whose references are all resolved.
// It reports and returns false when the magnitude is not finite.
func (r *resolver) eval(e entry.Entry) (quantity.Quantity, bool) {
	if u, ok := e.(*entry.Unit); ok && u.BaseOf != nil {
		return quantity.Quantity{Dim: r.resolved[u.BaseOf.Name].Dim, Mag: magnitude.One()}, true
	}

	def := e.Definition()
	if def == nil {
		return quantity.One(), true
	}
	var bad []string
	for leaf := range expr.Values[entry.Leaf, exponent.Ratio](def) {
		if n, ok := leaf.Number(); ok {
			if _, err := magnitude.FromFloat64(n); err != nil {
				bad = append(bad, leaf.String())
			}
		}
	}
	if len(bad) > 0 {
		r.reportNonFinite(e, "literal "+strings.Join(bad, ", ")+" is not finite")
		return quantity.Quantity{}, false
	}

	values := expr.Map[entry.Leaf, quantity.Quantity, exponent.Ratio](def, func(l entry.Leaf) quantity.Quantity {
		if ref, ok := l.Ref(); ok {
			return r.resolved[ref.Name]
		}
		if n, ok := l.Number(); ok {
			return quantity.Scalar(magnitude.MustFromFloat64(n))
		}
		return quantity.One()
	})
	q := expr.Eval[quantity.Quantity, exponent.Ratio](values)

	if e.Kind() == entry.KindDimension {
		// Dimensions carry no scale.
		q.Mag = magnitude.One()
	}
	if !q.Dim.Valid() {
		r.reportOverflow(e, def)
		return quantity.Quantity{}, false
	}
	if !q.Mag.IsFinite() {
		r.reportNonFinite(e, entry.Format(def)+" has no finite value")
		return quantity.Quantity{}, false
	}
	return q, true
}

func (r *resolver) resolve(e entry.Entry, q quantity.Quantity) {
	name := e.Name()
	r.resolved[name.Name] = q

	it := Item{
		Name: name,
		Kind: e.Kind(),
		Def:  e.Definition(),
		Dim:  q.Dim,
		Mag:  q.Mag,
	}
	if u, ok := e.(*entry.Unit); ok {
		it.Symbol = u.Symbol
	}
	r.items[name.Name] = it
	r.logger.Debug("Resolved entry.", "name", name.Name, "kind", e.Kind().String(), "value", q.String())
}

func (r *resolver) reportNonFinite(e entry.Entry, detail string) {
	r.report(&diag.Diagnostic{
		Kind:    diag.NonFiniteMagnitude,
		Idents:  []entry.Ident{e.Name()},
		Summary: fmt.Sprintf("%s %q does not have a finite magnitude", e.Kind(), e.Name().Name),
		Detail:  detail,
	})
}

func (r *resolver) reportOverflow(e entry.Entry, def entry.Expr) {
	r.report(&diag.Diagnostic{
		Kind:    diag.ExponentOverflow,
		Idents:  []entry.Ident{e.Name()},
		Summary: fmt.Sprintf("%s %q has a dimension exponent outside the int64 range", e.Kind(), e.Name().Name),
		Detail:  entry.Format(def),
	})
}

// reportUnresolvable raises the single diagnostic for every entry left over
// after evaluation, naming the exact cycles among them.
func (r *resolver) reportUnresolvable(g *dag.Graph, leftover []string, byName map[string]entry.Entry) {
	var cycles [][]string
	var cerr *dag.CycleError
	if errors.As(g.Subgraph(leftover).DetectCycles(), &cerr) {
		cycles = cerr.Cycles
	}

	idents := make([]entry.Ident, len(leftover))
	for i, name := range leftover {
		idents[i] = byName[name].Name()
	}

	onCycle := make(map[string]bool)
	var lines []string
	for _, c := range cycles {
		for _, name := range c {
			onCycle[name] = true
		}
		lines = append(lines, "cycle: "+strings.Join(c, ", "))
	}
	var blocked []string
	for _, name := range leftover {
		if !onCycle[name] {
			blocked = append(blocked, name)
		}
	}
	if len(blocked) > 0 {
		lines = append(lines, "waiting on unresolvable or dropped entries: "+strings.Join(blocked, ", "))
	}

	r.report(&diag.Diagnostic{
		Kind:    diag.Unresolvable,
		Idents:  idents,
		Summary: "could not resolve " + strings.Join(leftover, ", "),
		Detail:  strings.Join(lines, "; "),
		Cycles:  cycles,
	})
	r.logger.Debug("Stage complete.", "stage", "unresolvable", "entries", len(leftover), "cycles", len(cycles))
}
