package entry

import (
	"math"
	"strconv"

	"github.com/specialistvlad/dimgrid/internal/exponent"
	"github.com/specialistvlad/dimgrid/internal/expr"
)

type leafKind uint8

const (
	leafOne leafKind = iota
	leafNumber
	leafRef
)

// Leaf is an expression operand: a reference, a numeric literal, or the
// dimensionless literal 1. The zero value is the literal 1.
type Leaf struct {
	kind   leafKind
	number float64
	ref    Ident
}

// One is the dimensionless literal `1`, the only literal allowed in dimension
// definitions.
func One() Leaf { return Leaf{kind: leafOne} }

// Number is a numeric literal.
func Number(v float64) Leaf { return Leaf{kind: leafNumber, number: v} }

// Ref references another entry by name.
func Ref(id Ident) Leaf { return Leaf{kind: leafRef, ref: id} }

// RefName is Ref(NewIdent(name)).
func RefName(name string) Leaf { return Ref(NewIdent(name)) }

// Ref returns the referenced ident when the leaf is a reference.
func (l Leaf) Ref() (Ident, bool) {
	return l.ref, l.kind == leafRef
}

// Number returns the literal value when the leaf is a number.
func (l Leaf) Number() (float64, bool) {
	return l.number, l.kind == leafNumber
}

// IsOne reports whether the leaf is the dimensionless literal.
func (l Leaf) IsOne() bool { return l.kind == leafOne }

func (l Leaf) String() string {
	switch l.kind {
	case leafRef:
		return l.ref.Name
	case leafNumber:
		return formatNumber(l.number)
	default:
		return "1"
	}
}

// formatNumber writes integral literals without an exponent so they read back
// the way they were written. Beyond 1e21 the shortest form is used.
func formatNumber(n float64) string {
	if n == math.Trunc(n) && math.Abs(n) < 1e21 {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	return strconv.FormatFloat(n, 'g', -1, 64)
}

// Format renders a definition expression.
func Format(x Expr) string {
	if x == nil {
		return ""
	}
	return expr.Format[Leaf, exponent.Ratio](x, Leaf.String)
}

// Factor is an operand of a definition: a leaf, a power or a group.
type Factor = expr.Factor[Leaf, exponent.Ratio]

// Expression builders, so adapters and tests do not have to spell out the
// generic instantiation.

// Of starts an expression with a single leaf.
func Of(l Leaf) Expr { return expr.Leaf[Leaf, exponent.Ratio](l) }

// OfFactor starts an expression with a single factor.
func OfFactor(f Factor) Expr { return expr.Of[Leaf, exponent.Ratio](f) }

// Times appends `* l`.
func Times(x Expr, l Leaf) Expr { return TimesFactor(x, expr.Val[Leaf, exponent.Ratio](l)) }

// Over appends `/ l`.
func Over(x Expr, l Leaf) Expr { return OverFactor(x, expr.Val[Leaf, exponent.Ratio](l)) }

// TimesFactor appends `* f`.
func TimesFactor(x Expr, f Factor) Expr { return expr.Mul[Leaf, exponent.Ratio](x, f) }

// OverFactor appends `/ f`.
func OverFactor(x Expr, f Factor) Expr { return expr.Div[Leaf, exponent.Ratio](x, f) }

// Raised is the factor `l^e`.
func Raised(l Leaf, e exponent.Ratio) Factor {
	return expr.Pow[Leaf, exponent.Ratio](l, e)
}

// Grouped is the factor `(x)`.
func Grouped(x Expr) Factor {
	return expr.Group[Leaf, exponent.Ratio](x)
}
