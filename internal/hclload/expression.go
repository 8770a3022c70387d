package hclload

import (
	"fmt"
	"math"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/dimgrid/internal/entry"
	"github.com/specialistvlad/dimgrid/internal/exponent"
	"github.com/specialistvlad/dimgrid/internal/expr"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

type factor = entry.Factor

// convertExpr reads a multiplicative definition from the hclsyntax AST.
// `*` and `/` are left-associative in HCL, so the left operand of a binary
// node is itself an expression and the right one is always a factor.
func convertExpr(e hcl.Expression) (entry.Expr, hcl.Diagnostics) {
	if bin, ok := e.(*hclsyntax.BinaryOpExpr); ok {
		op, ok := multiplicative(bin.Op)
		if !ok {
			return nil, unsupported(e, "only * and / may combine terms")
		}
		lhs, diags := convertExpr(bin.LHS)
		rhs, rdiags := convertFactor(bin.RHS)
		diags = append(diags, rdiags...)
		if diags.HasErrors() {
			return nil, diags
		}
		if op == expr.OpDiv {
			return entry.OverFactor(lhs, rhs), diags
		}
		return entry.TimesFactor(lhs, rhs), diags
	}

	f, diags := convertFactor(e)
	if diags.HasErrors() {
		return nil, diags
	}
	return entry.OfFactor(f), diags
}

func convertFactor(e hcl.Expression) (factor, hcl.Diagnostics) {
	switch e := e.(type) {
	case *hclsyntax.ParenthesesExpr:
		inner, diags := convertExpr(e.Expression)
		if diags.HasErrors() {
			return nil, diags
		}
		return entry.Grouped(inner), diags

	case *hclsyntax.BinaryOpExpr:
		// A multiplicative right operand only appears without parentheses
		// when the AST was built by hand; treat it as grouped.
		inner, diags := convertExpr(e)
		if diags.HasErrors() {
			return nil, diags
		}
		return entry.Grouped(inner), diags

	case *hclsyntax.FunctionCallExpr:
		return convertCall(e)
	}

	leaf, diags := convertLeaf(e)
	if diags.HasErrors() {
		return nil, diags
	}
	return expr.Val[entry.Leaf, exponent.Ratio](leaf), diags
}

// convertLeaf reads a name or a numeric literal.
func convertLeaf(e hcl.Expression) (entry.Leaf, hcl.Diagnostics) {
	switch e := e.(type) {
	case *hclsyntax.ScopeTraversalExpr:
		if len(e.Traversal) != 1 {
			return entry.Leaf{}, unsupported(e, "references must be bare names; attribute and index access are not supported")
		}
		return entry.Ref(entry.Ident{Name: e.Traversal.RootName(), Range: e.SrcRange}), nil

	case *hclsyntax.LiteralValueExpr, *hclsyntax.UnaryOpExpr:
		v, diags := numberLiteral(e)
		if diags.HasErrors() {
			return entry.Leaf{}, diags
		}
		if v == 1 {
			return entry.One(), nil
		}
		return entry.Number(v), nil
	}
	return entry.Leaf{}, unsupported(e, "expected a name or a number")
}

// convertCall handles pow(x, n), pow(x, p/q) and root(x, n).
func convertCall(call *hclsyntax.FunctionCallExpr) (factor, hcl.Diagnostics) {
	if call.Name != "pow" && call.Name != "root" {
		return nil, unsupported(call, fmt.Sprintf("unknown function %q; only pow and root are available", call.Name))
	}
	if len(call.Args) != 2 || call.ExpandFinal {
		return nil, unsupported(call, fmt.Sprintf("%s takes exactly two arguments", call.Name))
	}

	base, diags := convertLeaf(call.Args[0])
	if diags.HasErrors() {
		return nil, diags
	}
	exp, ediags := exponentLiteral(call.Args[1])
	diags = append(diags, ediags...)
	if diags.HasErrors() {
		return nil, diags
	}

	if call.Name == "root" {
		if exp.IsZero() {
			return nil, unsupported(call.Args[1], "the zeroth root is undefined")
		}
		exp = exp.Inv()
	}
	return entry.Raised(base, exp), diags
}

// exponentLiteral reads an integer, a negated exponent, or a ratio `p/q` of
// integer literals.
func exponentLiteral(e hcl.Expression) (exponent.Ratio, hcl.Diagnostics) {
	switch e := e.(type) {
	case *hclsyntax.ParenthesesExpr:
		return exponentLiteral(e.Expression)

	case *hclsyntax.BinaryOpExpr:
		if e.Op != hclsyntax.OpDivide {
			return exponent.Ratio{}, unsupported(e, "an exponent is an integer or a ratio p/q")
		}
		num, diags := integerLiteral(e.LHS)
		den, ddiags := integerLiteral(e.RHS)
		diags = append(diags, ddiags...)
		if diags.HasErrors() {
			return exponent.Ratio{}, diags
		}
		r, err := exponent.MakeRatio(num, den)
		if err != nil {
			return exponent.Ratio{}, unsupported(e, err.Error())
		}
		return r, nil
	}

	n, diags := integerLiteral(e)
	if diags.HasErrors() {
		return exponent.Ratio{}, diags
	}
	return exponent.FromInt(n), nil
}

func integerLiteral(e hcl.Expression) (int64, hcl.Diagnostics) {
	v, diags := numberLiteral(e)
	if diags.HasErrors() {
		return 0, diags
	}
	if v != math.Trunc(v) || math.Abs(v) > 1<<53 {
		return 0, unsupported(e, "exponents must be integers or ratios of integers")
	}
	return int64(v), nil
}

// numberLiteral reads a number literal, optionally negated.
func numberLiteral(e hcl.Expression) (float64, hcl.Diagnostics) {
	switch e := e.(type) {
	case *hclsyntax.UnaryOpExpr:
		if e.Op != hclsyntax.OpNegate {
			return 0, unsupported(e, "expected a number")
		}
		v, diags := numberLiteral(e.Val)
		return -v, diags

	case *hclsyntax.LiteralValueExpr:
		if e.Val.Type() != cty.Number || e.Val.IsNull() {
			return 0, unsupported(e, "expected a number")
		}
		var v float64
		if err := gocty.FromCtyValue(e.Val, &v); err != nil {
			return 0, unsupported(e, fmt.Sprintf("invalid number: %s", err))
		}
		return v, nil
	}
	return 0, unsupported(e, "expected a number")
}

func multiplicative(op *hclsyntax.Operation) (expr.Op, bool) {
	switch op {
	case hclsyntax.OpMultiply:
		return expr.OpMul, true
	case hclsyntax.OpDivide:
		return expr.OpDiv, true
	}
	return 0, false
}

func unsupported(e hcl.Expression, detail string) hcl.Diagnostics {
	return hcl.Diagnostics{{
		Severity: hcl.DiagError,
		Summary:  "Unsupported definition expression",
		Detail:   detail + ".",
		Subject:  e.Range().Ptr(),
	}}
}
