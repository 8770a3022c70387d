package dimension

import (
	"fmt"
	"slices"

	"github.com/specialistvlad/dimgrid/internal/exponent"
)

// Basis is the closed, ordered set of base-dimension names. Once resolution has
// found every base dimension, vectors can be encoded densely in basis order,
// which fixes the field order of any fixed-size downstream representation.
type Basis struct {
	names []string
	index map[string]int
}

// NewBasis returns a basis over the given names, sorted and de-duplicated.
func NewBasis(names ...string) Basis {
	sorted := slices.Clone(names)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	index := make(map[string]int, len(sorted))
	for i, n := range sorted {
		index[n] = i
	}
	return Basis{names: sorted, index: index}
}

// Names returns the basis names in order. The slice must not be modified.
func (b Basis) Names() []string { return b.names }

// Len returns the number of base dimensions.
func (b Basis) Len() int { return len(b.names) }

// Index returns the position of name in the basis.
func (b Basis) Index(name string) (int, bool) {
	i, ok := b.index[name]
	return i, ok
}

// Dense encodes v as a fixed-size slice in basis order. It fails when v
// mentions a dimension outside the basis.
func Dense[E exponent.Value[E]](b Basis, v Vector[E]) ([]E, error) {
	out := make([]E, len(b.names))
	for i := range out {
		out[i] = exponent.Zero[E]()
	}
	for name, e := range v.exps {
		i, ok := b.index[name]
		if !ok {
			return nil, fmt.Errorf("dimension %q is not part of the basis", name)
		}
		out[i] = e
	}
	return out, nil
}
