package resolver

import (
	"slices"
	"strings"

	"github.com/specialistvlad/dimgrid/internal/dimension"
	"github.com/specialistvlad/dimgrid/internal/entry"
	"github.com/specialistvlad/dimgrid/internal/exponent"
	"github.com/specialistvlad/dimgrid/internal/magnitude"
	"github.com/specialistvlad/dimgrid/internal/quantity"
)

// Item is one resolved entry.
type Item struct {
	Name   entry.Ident
	Kind   entry.Kind
	Symbol string
	// Def is the original definition, nil for base forms.
	Def entry.Expr
	Dim quantity.Vector
	Mag magnitude.Magnitude
}

// Quantity returns the item's (dimension, magnitude) pair.
func (it Item) Quantity() quantity.Quantity {
	return quantity.Quantity{Dim: it.Dim, Mag: it.Mag}
}

// Resolution is the maximal resolved subset of an entry set.
type Resolution struct {
	// Items holds every resolved entry, sorted by name.
	Items []Item
	// Basis is the sorted set of resolved base dimensions. It fixes the
	// field order of dense dimension vectors.
	Basis dimension.Basis

	index map[string]int
}

func newResolution(items []Item, basis dimension.Basis) *Resolution {
	slices.SortFunc(items, func(a, b Item) int {
		return strings.Compare(a.Name.Name, b.Name.Name)
	})
	index := make(map[string]int, len(items))
	for i, it := range items {
		index[it.Name.Name] = i
	}
	return &Resolution{Items: items, Basis: basis, index: index}
}

// Lookup returns the item named name.
func (r *Resolution) Lookup(name string) (Item, bool) {
	i, ok := r.index[name]
	if !ok {
		return Item{}, false
	}
	return r.Items[i], true
}

// Len returns the number of resolved items.
func (r *Resolution) Len() int { return len(r.Items) }

// ByKind returns the items of the given kinds, sorted by name.
func (r *Resolution) ByKind(kinds ...entry.Kind) []Item {
	var out []Item
	for _, it := range r.Items {
		if slices.Contains(kinds, it.Kind) {
			out = append(out, it)
		}
	}
	return out
}

// Dimensions returns the resolved dimensions, base and derived.
func (r *Resolution) Dimensions() []Item { return r.ByKind(entry.KindDimension) }

// Units returns the resolved units, base units included.
func (r *Resolution) Units() []Item { return r.ByKind(entry.KindBaseUnit, entry.KindUnit) }

// Constants returns the resolved constants.
func (r *Resolution) Constants() []Item { return r.ByKind(entry.KindConstant) }

// Dense encodes the item's dimension vector in basis order.
func (r *Resolution) Dense(it Item) ([]exponent.Ratio, error) {
	return dimension.Dense(r.Basis, it.Dim)
}
