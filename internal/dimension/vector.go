// Package dimension implements exponent vectors over named base dimensions.
//
// A Vector maps base-dimension names to exponents; absent names have exponent
// zero and zero exponents are never stored, so structural equality is also
// mathematical equality. Under Mul the vectors form a commutative group with
// None as identity and Neg as inverse.
package dimension

import (
	"maps"
	"slices"
	"strings"

	"github.com/specialistvlad/dimgrid/internal/exponent"
)

// Vector is an immutable sparse exponent vector.
type Vector[E exponent.Value[E]] struct {
	exps map[string]E
}

// None returns the dimensionless vector.
func None[E exponent.Value[E]]() Vector[E] {
	return Vector[E]{}
}

// Base returns the unit vector of the named base dimension.
func Base[E exponent.Value[E]](name string) Vector[E] {
	return Vector[E]{exps: map[string]E{name: exponent.One[E]()}}
}

// Of builds a vector from explicit exponents, dropping zeros.
func Of[E exponent.Value[E]](exps map[string]E) Vector[E] {
	v := Vector[E]{}
	for name, e := range exps {
		v = v.with(name, e)
	}
	return v
}

// Get returns the exponent of name, zero when absent.
func (v Vector[E]) Get(name string) E {
	if e, ok := v.exps[name]; ok {
		return e
	}
	return exponent.Zero[E]()
}

// Len returns the number of non-zero entries.
func (v Vector[E]) Len() int { return len(v.exps) }

// IsNone reports whether v is dimensionless.
func (v Vector[E]) IsNone() bool { return len(v.exps) == 0 }

// Valid is false when any exponent overflowed.
func (v Vector[E]) Valid() bool {
	for _, e := range v.exps {
		if !e.Valid() {
			return false
		}
	}
	return true
}

// Names returns the names with non-zero exponents, sorted.
func (v Vector[E]) Names() []string {
	return slices.Sorted(maps.Keys(v.exps))
}

// Mul adds exponents componentwise.
func (v Vector[E]) Mul(o Vector[E]) Vector[E] {
	out := v.clone(len(o.exps))
	for name, e := range o.exps {
		out.set(name, out.Get(name).Add(e))
	}
	return out
}

// Div is v.Mul(o.Neg()).
func (v Vector[E]) Div(o Vector[E]) Vector[E] {
	return v.Mul(o.Neg())
}

// Neg negates every exponent.
func (v Vector[E]) Neg() Vector[E] {
	out := Vector[E]{exps: make(map[string]E, len(v.exps))}
	for name, e := range v.exps {
		out.exps[name] = e.Neg()
	}
	return out
}

// Scale multiplies every exponent by n, covering both `x^n` and roots.
func (v Vector[E]) Scale(n E) Vector[E] {
	if n.IsZero() {
		return None[E]()
	}
	out := Vector[E]{exps: make(map[string]E, len(v.exps))}
	for name, e := range v.exps {
		out.set(name, e.Mul(n))
	}
	return out
}

// Equal reports whether both vectors have the same exponent for every name.
func (v Vector[E]) Equal(o Vector[E]) bool {
	if len(v.exps) != len(o.exps) {
		return false
	}
	for name, e := range v.exps {
		if oe, ok := o.exps[name]; !ok || oe != e {
			return false
		}
	}
	return true
}

// String renders the vector as `{length:1, time:-1}`; the dimensionless
// vector renders as `{}`.
func (v Vector[E]) String() string {
	var sb strings.Builder
	sb.WriteRune('{')
	for i, name := range v.Names() {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(name)
		sb.WriteRune(':')
		sb.WriteString(v.exps[name].String())
	}
	sb.WriteRune('}')
	return sb.String()
}

func (v Vector[E]) clone(extra int) Vector[E] {
	out := Vector[E]{exps: make(map[string]E, len(v.exps)+extra)}
	maps.Copy(out.exps, v.exps)
	return out
}

// set mutates v in place; only used on freshly cloned vectors.
func (v Vector[E]) set(name string, e E) {
	if e.IsZero() {
		delete(v.exps, name)
		return
	}
	v.exps[name] = e
}

func (v Vector[E]) with(name string, e E) Vector[E] {
	out := v.clone(1)
	out.set(name, e)
	return out
}
