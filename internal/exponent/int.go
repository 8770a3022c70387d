package exponent

import (
	"math"
	"strconv"
)

// Int is an integer exponent. math.MinInt64 is reserved for overflow.
type Int int64

const intOverflow = Int(math.MinInt64)

func (Int) Zero() Int { return 0 }
func (Int) One() Int  { return 1 }

func (i Int) Add(o Int) Int {
	s, ok := addInt64(int64(i), int64(o))
	if !ok || !i.Valid() || !o.Valid() {
		return intOverflow
	}
	return Int(s)
}

func (i Int) Neg() Int { return -i }

func (i Int) MulInt(n int64) Int { return i.Mul(Int(n)) }

func (i Int) Mul(o Int) Int {
	p, ok := mulInt64(int64(i), int64(o))
	if !ok || !i.Valid() || !o.Valid() {
		return intOverflow
	}
	return Int(p)
}

func (i Int) IsZero() bool { return i == 0 }
func (i Int) Valid() bool  { return i != intOverflow }

func (i Int) Float64() float64 {
	if !i.Valid() {
		return math.NaN()
	}
	return float64(i)
}

func (i Int) Integer() (int64, bool) { return int64(i), i.Valid() }

func (i Int) String() string {
	if !i.Valid() {
		return "overflow"
	}
	return strconv.FormatInt(int64(i), 10)
}

// addInt64 and mulInt64 report false when the result does not fit in int64 or
// would be the reserved math.MinInt64.
func addInt64(a, b int64) (int64, bool) {
	s := a + b
	if (a^s)&(b^s) < 0 || s == math.MinInt64 {
		return 0, false
	}
	return s, true
}

func mulInt64(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if a == math.MinInt64 || b == math.MinInt64 {
		return 0, false
	}
	p := a * b
	if p/b != a || p == math.MinInt64 {
		return 0, false
	}
	return p, true
}
