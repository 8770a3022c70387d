package expr

import (
	"fmt"
	"iter"
	"strings"
)

// Map returns a copy of x with every leaf replaced by f(leaf). The tree shape,
// operators and exponents are preserved.
func Map[T, U, E any](x Expr[T, E], f func(T) U) Expr[U, E] {
	switch x := x.(type) {
	case Single[T, E]:
		return Single[U, E]{F: mapFactor[T, U, E](x.F, f)}
	case Binary[T, E]:
		return Binary[U, E]{LHS: Map[T, U, E](x.LHS, f), Op: x.Op, RHS: mapFactor[T, U, E](x.RHS, f)}
	default:
		panic(unknownNode(x))
	}
}

func mapFactor[T, U, E any](fc Factor[T, E], f func(T) U) Factor[U, E] {
	switch fc := fc.(type) {
	case Value[T, E]:
		return Value[U, E]{V: f(fc.V)}
	case Power[T, E]:
		return Power[U, E]{V: f(fc.V), Exp: fc.Exp}
	case Paren[T, E]:
		return Paren[U, E]{X: Map[T, U, E](fc.X, f)}
	default:
		panic(unknownNode(fc))
	}
}

// Values yields every leaf of x from left to right. The sequence walks the tree
// on each iteration, so it can be ranged over any number of times.
func Values[T, E any](x Expr[T, E]) iter.Seq[T] {
	return func(yield func(T) bool) {
		walkExpr[T, E](x, yield)
	}
}

func walkExpr[T, E any](x Expr[T, E], yield func(T) bool) bool {
	switch x := x.(type) {
	case Single[T, E]:
		return walkFactor[T, E](x.F, yield)
	case Binary[T, E]:
		return walkExpr[T, E](x.LHS, yield) && walkFactor[T, E](x.RHS, yield)
	default:
		panic(unknownNode(x))
	}
}

func walkFactor[T, E any](f Factor[T, E], yield func(T) bool) bool {
	switch f := f.(type) {
	case Value[T, E]:
		return yield(f.V)
	case Power[T, E]:
		return yield(f.V)
	case Paren[T, E]:
		return walkExpr[T, E](f.X, yield)
	default:
		panic(unknownNode(f))
	}
}

// Algebra is what Eval needs from a leaf type.
type Algebra[T, E any] interface {
	Mul(T) T
	Div(T) T
	Pow(E) T
}

// Eval folds x bottom-up.
func Eval[T Algebra[T, E], E any](x Expr[T, E]) T {
	switch x := x.(type) {
	case Single[T, E]:
		return evalFactor[T, E](x.F)
	case Binary[T, E]:
		lhs := Eval[T, E](x.LHS)
		rhs := evalFactor[T, E](x.RHS)
		if x.Op == OpDiv {
			return lhs.Div(rhs)
		}
		return lhs.Mul(rhs)
	default:
		panic(unknownNode(x))
	}
}

func evalFactor[T Algebra[T, E], E any](f Factor[T, E]) T {
	switch f := f.(type) {
	case Value[T, E]:
		return f.V
	case Power[T, E]:
		return f.V.Pow(f.Exp)
	case Paren[T, E]:
		return Eval[T, E](f.X)
	default:
		panic(unknownNode(f))
	}
}

// Format renders x using leaf to print values, e.g. `meters * seconds^-2 / (a * b)`.
func Format[T, E any](x Expr[T, E], leaf func(T) string) string {
	var sb strings.Builder
	formatExpr[T, E](&sb, x, leaf)
	return sb.String()
}

func formatExpr[T, E any](sb *strings.Builder, x Expr[T, E], leaf func(T) string) {
	switch x := x.(type) {
	case Single[T, E]:
		formatFactor[T, E](sb, x.F, leaf)
	case Binary[T, E]:
		formatExpr[T, E](sb, x.LHS, leaf)
		sb.WriteRune(' ')
		sb.WriteString(x.Op.String())
		sb.WriteRune(' ')
		formatFactor[T, E](sb, x.RHS, leaf)
	default:
		panic(unknownNode(x))
	}
}

func formatFactor[T, E any](sb *strings.Builder, f Factor[T, E], leaf func(T) string) {
	switch f := f.(type) {
	case Value[T, E]:
		sb.WriteString(leaf(f.V))
	case Power[T, E]:
		sb.WriteString(leaf(f.V))
		sb.WriteRune('^')
		exp := fmt.Sprint(f.Exp)
		if strings.ContainsAny(exp, "/") {
			exp = "(" + exp + ")"
		}
		sb.WriteString(exp)
	case Paren[T, E]:
		sb.WriteRune('(')
		formatExpr[T, E](sb, f.X, leaf)
		sb.WriteRune(')')
	default:
		panic(unknownNode(f))
	}
}
