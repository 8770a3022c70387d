// Package quantity pairs a dimension vector with a magnitude. It is the value
// every definition evaluates to, and the leaf algebra the resolver feeds to
// expr.Eval.
package quantity

import (
	"fmt"

	"github.com/specialistvlad/dimgrid/internal/dimension"
	"github.com/specialistvlad/dimgrid/internal/exponent"
	"github.com/specialistvlad/dimgrid/internal/expr"
	"github.com/specialistvlad/dimgrid/internal/magnitude"
)

// Vector is the dimension vector flavour used throughout resolution.
type Vector = dimension.Vector[exponent.Ratio]

// Quantity is a (dimension, magnitude) pair.
type Quantity struct {
	Dim Vector
	Mag magnitude.Magnitude
}

var _ expr.Algebra[Quantity, exponent.Ratio] = Quantity{}

// One is the dimensionless quantity 1.
func One() Quantity {
	return Quantity{Dim: dimension.None[exponent.Ratio](), Mag: magnitude.One()}
}

// Scalar is a dimensionless quantity of magnitude m.
func Scalar(m magnitude.Magnitude) Quantity {
	return Quantity{Dim: dimension.None[exponent.Ratio](), Mag: m}
}

// BaseDimension is the unit vector of a base dimension with magnitude 1.
func BaseDimension(name string) Quantity {
	return Quantity{Dim: dimension.Base[exponent.Ratio](name), Mag: magnitude.One()}
}

// Mul multiplies both components.
func (q Quantity) Mul(o Quantity) Quantity {
	return Quantity{Dim: q.Dim.Mul(o.Dim), Mag: q.Mag.Mul(o.Mag)}
}

// Div divides both components.
func (q Quantity) Div(o Quantity) Quantity {
	return Quantity{Dim: q.Dim.Div(o.Dim), Mag: q.Mag.Div(o.Mag)}
}

// Pow scales the dimension by e and raises the magnitude to e.
func (q Quantity) Pow(e exponent.Ratio) Quantity {
	return Quantity{Dim: q.Dim.Scale(e), Mag: q.Mag.Pow(e)}
}

// Equal compares dimension vectors structurally and magnitudes bit for bit.
func (q Quantity) Equal(o Quantity) bool {
	return q.Dim.Equal(o.Dim) && q.Mag == o.Mag
}

func (q Quantity) String() string {
	return fmt.Sprintf("%s×%s", q.Mag, q.Dim)
}
