package hclload

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/dimgrid/internal/ctxlog"
	"github.com/specialistvlad/dimgrid/internal/entry"
)

// isExprDefined checks if an HCL expression was actually present in the source
// code. gohcl populates omitted optional fields with a zero-width placeholder
// expression, so a nil check is insufficient.
func isExprDefined(ctx context.Context, expr hcl.Expression, attrName string) bool {
	if expr == nil {
		return false
	}
	exprRange := expr.Range()
	isDefined := exprRange.End.Byte > exprRange.Start.Byte

	ctxlog.FromContext(ctx).Debug("Checking if HCL attribute was explicitly defined.",
		"attribute", attrName,
		"hcl_range", exprRange.String(),
		"is_defined", isDefined,
	)
	return isDefined
}

// identForExpr reads an attribute that must name another entry, such as
// `dimension = Length`.
func identForExpr(expr hcl.Expression, attrName string) (*entry.Ident, hcl.Diagnostics) {
	traversal, diags := hcl.AbsTraversalForExpr(expr)
	if diags.HasErrors() || len(traversal) != 1 {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid reference",
			Detail:   fmt.Sprintf("The %q attribute must be a bare name like Length, not a complex expression.", attrName),
			Subject:  expr.Range().Ptr(),
		}}
	}
	return &entry.Ident{Name: traversal.RootName(), Range: traversal.SourceRange()}, nil
}
