package expr_test

import (
	"math"
	"slices"
	"strconv"
	"testing"

	"github.com/specialistvlad/dimgrid/internal/exponent"
	"github.com/specialistvlad/dimgrid/internal/expr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// num is a minimal Algebra used to check evaluation order.
type num float64

func (n num) Mul(o num) num            { return n * o }
func (n num) Div(o num) num            { return n / o }
func (n num) Pow(e exponent.Ratio) num { return num(math.Pow(float64(n), e.Float64())) }

type R = exponent.Ratio

type X = expr.Expr[string, R]

// sample builds `a * b^2 / (c * d)`.
func sample() X {
	inner := expr.Mul[string, R](expr.Leaf[string, R]("c"), expr.Val[string, R]("d"))
	x := expr.Leaf[string, R]("a")
	x = expr.Mul[string, R](x, expr.Pow[string, R]("b", exponent.FromInt(2)))
	return expr.Div[string, R](x, expr.Group[string, R](inner))
}

func TestValues_LeftToRight(t *testing.T) {
	t.Parallel()
	got := slices.Collect(expr.Values[string, R](sample()))
	assert.Equal(t, []string{"a", "b", "c", "d"}, got)
}

func TestValues_Restartable(t *testing.T) {
	t.Parallel()
	seq := expr.Values[string, R](sample())
	first := slices.Collect(seq)
	second := slices.Collect(seq)
	assert.Equal(t, first, second)
}

func TestValues_EarlyStop(t *testing.T) {
	t.Parallel()
	var seen []string
	for v := range expr.Values[string, R](sample()) {
		seen = append(seen, v)
		if v == "b" {
			break
		}
	}
	assert.Equal(t, []string{"a", "b"}, seen)
}

func TestMap_PreservesShape(t *testing.T) {
	t.Parallel()
	upper := expr.Map[string, string, R](sample(), func(s string) string { return s + s })
	assert.Equal(t, "aa * bb^2 / (cc * dd)", expr.Format[string, R](upper, func(s string) string { return s }))
}

func TestEval(t *testing.T) {
	t.Parallel()
	vals := map[string]num{"a": 3, "b": 2, "c": 4, "d": 0.5}
	evaluated := expr.Map[string, num, R](sample(), func(s string) num { return vals[s] })

	// 3 * 2^2 / (4 * 0.5) = 6
	assert.InDelta(t, 6.0, float64(expr.Eval[num, R](evaluated)), 1e-12)
}

func TestEval_LeftAssociative(t *testing.T) {
	t.Parallel()
	// 8 / 4 / 2 must be (8/4)/2 = 1, never 8/(4/2) = 4.
	x := expr.Leaf[num, R](8)
	x = expr.Div[num, R](x, expr.Val[num, R](4))
	x = expr.Div[num, R](x, expr.Val[num, R](2))
	assert.InDelta(t, 1.0, float64(expr.Eval[num, R](x)), 0)
}

func TestEval_RationalPower(t *testing.T) {
	t.Parallel()
	x := expr.Of[num, R](expr.Pow[num, R](num(16), exponent.NewRatio(1, 2)))
	assert.InDelta(t, 4.0, float64(expr.Eval[num, R](x)), 1e-12)
}

func TestFormat(t *testing.T) {
	t.Parallel()
	x := expr.Of[string, R](expr.Pow[string, R]("m", exponent.NewRatio(-1, 2)))
	assert.Equal(t, `"m"^(-1/2)`, expr.Format[string, R](x, strconv.Quote))
	require.Equal(t, "*", expr.OpMul.String())
	require.Equal(t, "/", expr.OpDiv.String())
}
