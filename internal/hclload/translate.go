// This file translates the decoded HCL block structs into the entry model.

package hclload

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/dimgrid/internal/ctxlog"
	"github.com/specialistvlad/dimgrid/internal/entry"
)

func translateDimension(ctx context.Context, b *dimensionBlock) (entry.Entry, hcl.Diagnostics) {
	d := &entry.Dimension{Ident: entry.Ident{Name: b.Name, Range: b.NameRange}}
	if !isExprDefined(ctx, b.Value, "value") {
		ctxlog.FromContext(ctx).Debug("Translated base dimension.", "name", b.Name)
		return d, nil
	}

	def, diags := convertExpr(b.Value)
	if diags.HasErrors() {
		return nil, diags
	}
	d.Def = def
	return d, diags
}

func translateUnit(ctx context.Context, b *unitBlock) (entry.Entry, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	u := &entry.Unit{Ident: entry.Ident{Name: b.Name, Range: b.NameRange}}
	if b.Symbol != nil {
		u.Symbol = *b.Symbol
	}

	if isExprDefined(ctx, b.Dimension, "dimension") {
		id, d := identForExpr(b.Dimension, "dimension")
		diags = append(diags, d...)
		u.Dimension = id
	}

	hasBase := isExprDefined(ctx, b.Base, "base")
	hasValue := isExprDefined(ctx, b.Value, "value")
	switch {
	case hasBase && hasValue:
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Conflicting unit definition",
			Detail:   fmt.Sprintf("Unit %q sets both \"base\" and \"value\"; a base unit has no value expression.", b.Name),
			Subject:  b.Value.Range().Ptr(),
		})
	case hasBase:
		id, d := identForExpr(b.Base, "base")
		diags = append(diags, d...)
		u.BaseOf = id
	case hasValue:
		def, d := convertExpr(b.Value)
		diags = append(diags, d...)
		u.Def = def
	default:
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Missing unit definition",
			Detail:   fmt.Sprintf("Unit %q must set either \"base\" or \"value\".", b.Name),
			Subject:  b.DefRange.Ptr(),
		})
	}

	if diags.HasErrors() {
		return nil, diags
	}
	return u, diags
}

func translateConstant(ctx context.Context, b *constantBlock) (entry.Entry, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	c := &entry.Constant{Ident: entry.Ident{Name: b.Name, Range: b.NameRange}}

	if isExprDefined(ctx, b.Dimension, "dimension") {
		id, d := identForExpr(b.Dimension, "dimension")
		diags = append(diags, d...)
		c.Dimension = id
	}

	if !isExprDefined(ctx, b.Value, "value") {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Missing constant value",
			Detail:   fmt.Sprintf("Constant %q must set \"value\".", b.Name),
			Subject:  b.DefRange.Ptr(),
		})
		return nil, diags
	}

	def, d := convertExpr(b.Value)
	diags = append(diags, d...)
	c.Def = def

	if diags.HasErrors() {
		return nil, diags
	}
	return c, diags
}
