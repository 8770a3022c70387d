package exponent

import (
	"errors"
	"math"
	"strconv"
)

// ErrZeroDenominator is returned when a rational is built with a zero denominator.
var ErrZeroDenominator = errors.New("exponent: zero denominator")

// ErrOverflow is returned when a rational does not fit in int64 terms.
var ErrOverflow = errors.New("exponent: int64 overflow")

// Ratio is an exact rational exponent. It is always stored reduced with a
// positive denominator, so two equal values compare equal with ==.
// The denominator is stored minus one, which makes the zero value 0/1; a
// denominator of zero marks an overflowed value.
type Ratio struct {
	num  int64
	den1 int64
}

var ratioOverflow = Ratio{den1: -1}

// NewRatio returns num/den in lowest terms. It panics if den is zero, mirroring
// big.NewRat.
func NewRatio(num, den int64) Ratio {
	r, err := MakeRatio(num, den)
	if err != nil {
		panic(err)
	}
	return r
}

// MakeRatio is NewRatio for untrusted input.
func MakeRatio(num, den int64) (Ratio, error) {
	if den == 0 {
		return Ratio{}, ErrZeroDenominator
	}
	r := reduce(num, den)
	if !r.Valid() {
		return Ratio{}, ErrOverflow
	}
	return r, nil
}

// reduce normalises num/den, den != 0, returning the overflowed value when
// either term is math.MinInt64.
func reduce(num, den int64) Ratio {
	if num == math.MinInt64 || den == math.MinInt64 {
		return ratioOverflow
	}
	if den < 0 {
		num, den = -num, -den
	}
	if g := gcd(abs(num), den); g > 1 {
		num, den = num/g, den/g
	}
	return Ratio{num: num, den1: den - 1}
}

// FromInt returns n/1. math.MinInt64 yields the overflowed value.
func FromInt(n int64) Ratio {
	if n == math.MinInt64 {
		return ratioOverflow
	}
	return Ratio{num: n}
}

// Num returns the numerator.
func (r Ratio) Num() int64 { return r.num }

// Den returns the denominator, which is always at least 1.
func (r Ratio) Den() int64 { return r.den1 + 1 }

func (Ratio) Zero() Ratio { return Ratio{} }
func (Ratio) One() Ratio  { return Ratio{num: 1} }

func (r Ratio) Add(o Ratio) Ratio {
	if !r.Valid() || !o.Valid() {
		return ratioOverflow
	}
	rd, od := r.Den(), o.Den()
	g := gcd(rd, od)
	a, ok1 := mulInt64(r.num, od/g)
	b, ok2 := mulInt64(o.num, rd/g)
	num, ok3 := addInt64(a, b)
	den, ok4 := mulInt64(rd/g, od)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return ratioOverflow
	}
	return reduce(num, den)
}

func (r Ratio) Neg() Ratio {
	return Ratio{num: -r.num, den1: r.den1}
}

func (r Ratio) MulInt(n int64) Ratio {
	return r.Mul(FromInt(n))
}

func (r Ratio) Mul(o Ratio) Ratio {
	if !r.Valid() || !o.Valid() {
		return ratioOverflow
	}
	// Cross-reduce first to keep the intermediates small.
	g1 := gcd(abs(r.num), o.Den())
	g2 := gcd(abs(o.num), r.Den())
	num, ok1 := mulInt64(r.num/g1, o.num/g2)
	den, ok2 := mulInt64(r.Den()/g2, o.Den()/g1)
	if !ok1 || !ok2 {
		return ratioOverflow
	}
	return reduce(num, den)
}

// Inv returns 1/r. It panics when r is zero.
func (r Ratio) Inv() Ratio {
	if !r.Valid() {
		return ratioOverflow
	}
	return NewRatio(r.Den(), r.num)
}

func (r Ratio) IsZero() bool { return r.num == 0 && r.Valid() }
func (r Ratio) Valid() bool  { return r.den1 >= 0 }

func (r Ratio) Float64() float64 {
	if !r.Valid() {
		return math.NaN()
	}
	return float64(r.num) / float64(r.Den())
}

func (r Ratio) Integer() (int64, bool) {
	if !r.Valid() || r.Den() != 1 {
		return 0, false
	}
	return r.num, true
}

// String renders "n" for integers and "n/d" otherwise.
func (r Ratio) String() string {
	if !r.Valid() {
		return "overflow"
	}
	if r.Den() == 1 {
		return strconv.FormatInt(r.num, 10)
	}
	return strconv.FormatInt(r.num, 10) + "/" + strconv.FormatInt(r.Den(), 10)
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
