// Package exponent provides the exponent types used by dimension vectors and
// power factors: plain integers and exact, always-reduced rationals.
//
// Both types satisfy the Value contract, so generic code (expression
// evaluation, dimension vectors) can be written once and instantiated with
// whichever exponent domain a definition set needs.
//
// Arithmetic never wraps. A result that does not fit in int64 becomes an
// overflowed value: it is not Valid, it stays overflowed through every further
// operation, and it is never zero.
package exponent

// Value is the algebraic contract every exponent type satisfies. Zero and One
// are called on the zero value of E (e.g. `var e E; e.One()`), which gives
// generic code access to the identities without a separate factory.
type Value[E any] interface {
	comparable
	Zero() E
	One() E
	Add(E) E
	Neg() E
	MulInt(int64) E
	Mul(E) E
	IsZero() bool
	Float64() float64
	// Integer reports the value as an int64 when it has no fractional part.
	Integer() (int64, bool)
	// Valid is false once arithmetic on the value has overflowed.
	Valid() bool
	String() string
}

// conforms only compiles when E satisfies Value.
func conforms[E Value[E]]() {}

var (
	_ = conforms[Int]
	_ = conforms[Ratio]
)

// Zero returns the additive identity of E.
func Zero[E Value[E]]() E {
	var e E
	return e.Zero()
}

// One returns the multiplicative identity of E.
func One[E Value[E]]() E {
	var e E
	return e.One()
}

// Sub returns a - b.
func Sub[E Value[E]](a, b E) E {
	return a.Add(b.Neg())
}
