// Package expr is the multiplicative expression model shared by dimension,
// unit and constant definitions.
//
// An expression is a left-associative chain of factors joined by `*` and `/`.
// A factor is a leaf value, a leaf raised to an exponent, or a parenthesised
// sub-expression. The model is generic over the leaf type T and the exponent
// type E, so the same tree first holds references (as parsed), then resolved
// values (after Map), and is finally folded by Eval.
package expr

import "fmt"

// Op is a binary multiplicative operator.
type Op uint8

const (
	OpMul Op = iota
	OpDiv
)

// String returns the operator symbol.
func (o Op) String() string {
	switch o {
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	default:
		return fmt.Sprintf("Op(%d)", uint8(o))
	}
}

// Factor is one operand of a multiplicative chain: Value, Power or Paren.
type Factor[T, E any] interface {
	isFactor()
}

// Value is a bare leaf.
type Value[T, E any] struct {
	V T
}

// Power is a leaf raised to an exponent.
type Power[T, E any] struct {
	V   T
	Exp E
}

// Paren is a parenthesised sub-expression.
type Paren[T, E any] struct {
	X Expr[T, E]
}

func (Value[T, E]) isFactor() {}
func (Power[T, E]) isFactor() {}
func (Paren[T, E]) isFactor() {}

// Expr is either a Single factor or a Binary node whose right operand is a
// factor, which makes every tree left-associative by construction.
type Expr[T, E any] interface {
	isExpr()
}

// Single wraps a lone factor.
type Single[T, E any] struct {
	F Factor[T, E]
}

// Binary is `LHS Op RHS`.
type Binary[T, E any] struct {
	LHS Expr[T, E]
	Op  Op
	RHS Factor[T, E]
}

func (Single[T, E]) isExpr() {}
func (Binary[T, E]) isExpr() {}

// Of wraps a factor as an expression.
func Of[T, E any](f Factor[T, E]) Expr[T, E] {
	return Single[T, E]{F: f}
}

// Leaf is shorthand for Of(Val(v)).
func Leaf[T, E any](v T) Expr[T, E] {
	return Single[T, E]{F: Value[T, E]{V: v}}
}

// Val builds a Value factor.
func Val[T, E any](v T) Factor[T, E] {
	return Value[T, E]{V: v}
}

// Pow builds a Power factor.
func Pow[T, E any](v T, e E) Factor[T, E] {
	return Power[T, E]{V: v, Exp: e}
}

// Group builds a Paren factor.
func Group[T, E any](x Expr[T, E]) Factor[T, E] {
	return Paren[T, E]{X: x}
}

// Mul appends `* rhs`.
func Mul[T, E any](lhs Expr[T, E], rhs Factor[T, E]) Expr[T, E] {
	return Binary[T, E]{LHS: lhs, Op: OpMul, RHS: rhs}
}

// Div appends `/ rhs`.
func Div[T, E any](lhs Expr[T, E], rhs Factor[T, E]) Expr[T, E] {
	return Binary[T, E]{LHS: lhs, Op: OpDiv, RHS: rhs}
}

func unknownNode(n any) string {
	return fmt.Sprintf("expr: unknown node %T", n)
}
