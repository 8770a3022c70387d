// Package magnitude implements the scalar conversion factor of a unit.
//
// A Magnitude is stored the way IEEE-754 decomposes a double:
// sign · mantissa · 2^exponent, with the mantissa normalised into
// [2^52, 2^53). Mul and Div work on the full 53-bit mantissas through 128-bit
// intermediates and round once, half to even. Each step is therefore correctly
// rounded, and it is exact whenever the true result fits in 53 bits (in
// particular whenever the other operand is a power of two). The exponent is an
// int16, so long derivation chains can leave the float64 range and come back
// without overflowing. A nonzero result whose exponent leaves the int16 range
// in either direction is invalid; it never rounds to zero.
package magnitude

import (
	"errors"
	"math"
	"math/bits"
	"strconv"

	"github.com/specialistvlad/dimgrid/internal/exponent"
)

const (
	mantBits = 53
	minMant  = uint64(1) << (mantBits - 1)
	maxMant  = uint64(1) << mantBits
)

// ErrNonFinite is returned for NaN and infinite inputs.
var ErrNonFinite = errors.New("magnitude: non-finite value")

// Magnitude is an exact decomposition of a finite double. The zero value is 0.
type Magnitude struct {
	mantissa uint64
	exponent int16
	neg      bool
	// invalid marks results that have no finite value: division by zero,
	// exponent overflow or underflow, or a fractional power of a negative
	// number.
	invalid bool
}

// One is the magnitude of every base unit.
func One() Magnitude {
	return Magnitude{mantissa: minMant, exponent: -(mantBits - 1)}
}

// FromFloat64 decomposes f. NaN and infinities are rejected.
func FromFloat64(f float64) (Magnitude, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Magnitude{}, ErrNonFinite
	}
	if f == 0 {
		return Magnitude{}, nil
	}
	frac, exp := math.Frexp(math.Abs(f))
	// frac is in [0.5, 1) with at most 53 significant bits, so this is exact.
	m := uint64(math.Ldexp(frac, mantBits))
	return build(m, exp-mantBits, f < 0), nil
}

// MustFromFloat64 is FromFloat64 for constants known to be finite.
func MustFromFloat64(f float64) Magnitude {
	m, err := FromFloat64(f)
	if err != nil {
		panic(err)
	}
	return m
}

func invalid() Magnitude {
	return Magnitude{invalid: true}
}

// build normalises a 53-bit mantissa and range-checks the exponent.
func build(m uint64, exp int, neg bool) Magnitude {
	if m == 0 {
		return Magnitude{}
	}
	for m < minMant {
		m <<= 1
		exp--
	}
	if exp > math.MaxInt16 || exp < math.MinInt16 {
		return invalid()
	}
	return Magnitude{mantissa: m, exponent: int16(exp), neg: neg}
}

// Mantissa returns the normalised significand (0 for zero).
func (m Magnitude) Mantissa() uint64 { return m.mantissa }

// Exponent returns the binary exponent applied to the mantissa.
func (m Magnitude) Exponent() int16 { return m.exponent }

// Sign returns -1 for negative values and +1 otherwise.
func (m Magnitude) Sign() int {
	if m.neg {
		return -1
	}
	return 1
}

// IsZero reports whether m is exactly zero.
func (m Magnitude) IsZero() bool { return !m.invalid && m.mantissa == 0 }

// IsFinite reports whether m denotes a finite number.
func (m Magnitude) IsFinite() bool { return !m.invalid }

// IsPowerOfTwo reports whether |m| is an integral power of two.
func (m Magnitude) IsPowerOfTwo() bool { return !m.invalid && m.mantissa == minMant }

// Float64 reconstructs the value. Magnitudes outside the float64 range come
// back as ±Inf or ±0; invalid magnitudes as NaN.
func (m Magnitude) Float64() float64 {
	if m.invalid {
		return math.NaN()
	}
	f := math.Ldexp(float64(m.mantissa), int(m.exponent))
	if m.neg {
		return -f
	}
	return f
}

// Float32 is Float64 narrowed to float32.
func (m Magnitude) Float32() float32 {
	return float32(m.Float64())
}

// String formats the float64 value with the shortest exact representation.
func (m Magnitude) String() string {
	return strconv.FormatFloat(m.Float64(), 'g', -1, 64)
}

// Mul returns m·o, correctly rounded.
func (m Magnitude) Mul(o Magnitude) Magnitude {
	if m.invalid || o.invalid {
		return invalid()
	}
	if m.mantissa == 0 || o.mantissa == 0 {
		return Magnitude{}
	}
	// The product lies in [2^104, 2^106): drop the low 52 or 53 bits.
	hi, lo := bits.Mul64(m.mantissa, o.mantissa)
	shift := uint(64 + bits.Len64(hi) - mantBits)
	q := lo>>shift | hi<<(64-shift)
	rem := lo & (1<<shift - 1)
	q = roundHalfEven(q, rem, 1<<(shift-1), false)

	exp := int(m.exponent) + int(o.exponent) + int(shift)
	if q == maxMant {
		q >>= 1
		exp++
	}
	return build(q, exp, m.neg != o.neg)
}

// Div returns m/o, correctly rounded. Division by zero yields an invalid
// magnitude.
func (m Magnitude) Div(o Magnitude) Magnitude {
	if m.invalid || o.invalid || o.mantissa == 0 {
		return invalid()
	}
	if m.mantissa == 0 {
		return Magnitude{}
	}
	// Scale the dividend by 2^63. The high word m>>1 is below 2^52 <= o, as
	// Div64 requires, and the quotient lands in (2^62, 2^64).
	q, r := bits.Div64(m.mantissa>>1, m.mantissa<<63, o.mantissa)
	shift := uint(bits.Len64(q) - mantBits)
	rem := q & (1<<shift - 1)
	q = roundHalfEven(q>>shift, rem, 1<<(shift-1), r != 0)

	exp := int(m.exponent) - int(o.exponent) - 63 + int(shift)
	if q == maxMant {
		q >>= 1
		exp++
	}
	return build(q, exp, m.neg != o.neg)
}

// roundHalfEven rounds the truncated quotient q given the dropped bits rem, the
// value of half an ulp, and whether any non-zero bits lie below rem.
func roundHalfEven(q, rem, half uint64, sticky bool) uint64 {
	if rem > half || (rem == half && (sticky || q&1 == 1)) {
		q++
	}
	return q
}

// PowInt raises m to an integer power by square-and-multiply over Mul and Div,
// so powers of powers of two stay exact.
func (m Magnitude) PowInt(n int64) Magnitude {
	if m.invalid {
		return invalid()
	}
	k := n
	if k < 0 {
		k = -k
	}
	result, base := One(), m
	for k > 0 {
		if k&1 == 1 {
			result = result.Mul(base)
		}
		k >>= 1
		if k > 0 {
			base = base.Mul(base)
		}
	}
	if n < 0 {
		return One().Div(result)
	}
	return result
}

// Pow raises m to a rational power. Integral powers use PowInt; genuinely
// fractional powers go through math.Pow and are only as precise as float64.
func (m Magnitude) Pow(e exponent.Ratio) Magnitude {
	if n, ok := e.Integer(); ok {
		return m.PowInt(n)
	}
	if m.invalid {
		return invalid()
	}
	out, err := FromFloat64(math.Pow(m.Float64(), e.Float64()))
	if err != nil {
		return invalid()
	}
	return out
}
