// Package entry defines the declarations handed to the resolver: dimensions,
// units and constants, their definition forms and the rules for which kinds
// may reference which.
//
// Entries are produced by an input adapter (see internal/hclload) and are
// treated as immutable from then on.
package entry

import (
	"iter"
	"strconv"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/dimgrid/internal/exponent"
	"github.com/specialistvlad/dimgrid/internal/expr"
)

// Ident is a declared or referenced name. Range is optional and only used to
// point diagnostics at source.
type Ident struct {
	Name  string
	Range hcl.Range
}

// NewIdent returns an ident without source information.
func NewIdent(name string) Ident {
	return Ident{Name: name}
}

func (i Ident) String() string { return i.Name }

// HasRange reports whether the ident carries a source location.
func (i Ident) HasRange() bool { return i.Range.Filename != "" }

// Kind is the category of a named entry.
type Kind uint8

const (
	KindDimension Kind = iota + 1
	KindBaseUnit
	KindUnit
	KindConstant
)

func (k Kind) String() string {
	switch k {
	case KindDimension:
		return "dimension"
	case KindBaseUnit:
		return "base unit"
	case KindUnit:
		return "unit"
	case KindConstant:
		return "constant"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// MayReference reports whether a definition of kind k may mention an entry of
// kind target. Dimensions only compose other dimensions and a base unit names
// the dimension it measures. Units and constants compose units, base units and
// constants but never bare dimensions.
func (k Kind) MayReference(target Kind) bool {
	switch k {
	case KindDimension, KindBaseUnit:
		return target == KindDimension
	case KindUnit, KindConstant:
		return target == KindUnit || target == KindBaseUnit || target == KindConstant
	default:
		return false
	}
}

// Expr is the definition expression shape shared by every entry kind.
type Expr = expr.Expr[Leaf, exponent.Ratio]

// Entry is one declaration. It is implemented by *Dimension, *Unit and
// *Constant only.
type Entry interface {
	Name() Ident
	Kind() Kind
	// Annotation is the declared expected dimension, nil when absent.
	Annotation() *Ident
	// Definition is the right-hand side, nil for base forms.
	Definition() Expr
	// References yields every name the entry depends on, in source order.
	References() iter.Seq[Ident]

	isEntry()
}

// Dimension declares a base dimension (Def == nil) or a derived one.
type Dimension struct {
	Ident Ident
	Def   Expr
}

// Unit declares a base unit of dimension BaseOf, or a derived unit.
type Unit struct {
	Ident     Ident
	Symbol    string
	Dimension *Ident
	BaseOf    *Ident
	Def       Expr
}

// Constant declares a named constant.
type Constant struct {
	Ident     Ident
	Dimension *Ident
	Def       Expr
}

func (*Dimension) isEntry() {}
func (*Unit) isEntry()      {}
func (*Constant) isEntry()  {}

func (d *Dimension) Name() Ident        { return d.Ident }
func (d *Dimension) Kind() Kind         { return KindDimension }
func (d *Dimension) Annotation() *Ident { return nil }
func (d *Dimension) Definition() Expr   { return d.Def }

// IsBase reports whether d declares a new orthogonal base dimension.
func (d *Dimension) IsBase() bool { return d.Def == nil }

func (d *Dimension) References() iter.Seq[Ident] {
	return refsOf(d.Def)
}

func (u *Unit) Name() Ident        { return u.Ident }
func (u *Unit) Annotation() *Ident { return u.Dimension }
func (u *Unit) Definition() Expr   { return u.Def }

func (u *Unit) Kind() Kind {
	if u.BaseOf != nil {
		return KindBaseUnit
	}
	return KindUnit
}

func (u *Unit) References() iter.Seq[Ident] {
	if u.BaseOf != nil {
		base := *u.BaseOf
		return func(yield func(Ident) bool) {
			yield(base)
		}
	}
	return refsOf(u.Def)
}

func (c *Constant) Name() Ident        { return c.Ident }
func (c *Constant) Kind() Kind         { return KindConstant }
func (c *Constant) Annotation() *Ident { return c.Dimension }
func (c *Constant) Definition() Expr   { return c.Def }

func (c *Constant) References() iter.Seq[Ident] {
	return refsOf(c.Def)
}

func refsOf(x Expr) iter.Seq[Ident] {
	return func(yield func(Ident) bool) {
		if x == nil {
			return
		}
		for leaf := range expr.Values[Leaf, exponent.Ratio](x) {
			if ref, ok := leaf.Ref(); ok {
				if !yield(ref) {
					return
				}
			}
		}
	}
}
