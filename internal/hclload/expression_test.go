package hclload

import (
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/dimgrid/internal/entry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseDef(t *testing.T, src string) (entry.Expr, hcl.Diagnostics) {
	t.Helper()
	e, diags := hclsyntax.ParseExpression([]byte(src), "test.hcl", hcl.InitialPos)
	require.False(t, diags.HasErrors(), "parse %q: %s", src, diags)
	return convertExpr(e)
}

func TestConvertExpr(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		src  string
		want string
	}{
		{"meters", "meters"},
		{"1000 * meters", "1000 * meters"},
		{"1e3 * meters", "1000 * meters"},
		{"Length / Time", "Length / Time"},
		{"meters / seconds / seconds", "meters / seconds / seconds"},
		{"1 / (a * b)", "1 / (a * b)"},
		{"-2 * meters", "-2 * meters"},
		{"0.0254 * meters", "0.0254 * meters"},
		{"pow(meters, 2)", "meters^2"},
		{"10000 * pow(meters, 2)", "10000 * meters^2"},
		{"pow(meters, -1/2)", "meters^(-1/2)"},
		{"pow(meters, (2/4))", "meters^(1/2)"},
		{"root(meters, 3)", "meters^(1/3)"},
		{"root(meters, -2)", "meters^(-1/2)"},
	}
	for _, tc := range testCases {
		t.Run(tc.src, func(t *testing.T) {
			t.Parallel()
			def, diags := parseDef(t, tc.src)
			require.False(t, diags.HasErrors(), diags.Error())
			assert.Equal(t, tc.want, entry.Format(def))
		})
	}
}

func TestConvertExpr_References(t *testing.T) {
	t.Parallel()
	def, diags := parseDef(t, "1 * meters / seconds")
	require.False(t, diags.HasErrors())

	u := &entry.Unit{Ident: entry.NewIdent("mps"), Def: def}
	var refs []entry.Ident
	for ref := range u.References() {
		refs = append(refs, ref)
	}
	require.Len(t, refs, 2)
	assert.Equal(t, "meters", refs[0].Name)
	assert.Equal(t, "test.hcl", refs[0].Range.Filename)
	assert.Equal(t, 5, refs[0].Range.Start.Column)
	assert.Equal(t, "seconds", refs[1].Name)
}

func TestConvertExpr_Unsupported(t *testing.T) {
	t.Parallel()
	testCases := []string{
		"a + b",
		"foo.bar",
		`"meters"`,
		"max(a, b)",
		"pow(a)",
		"pow(a, 1.5)",
		"pow(a, b)",
		"pow((a * b), 2)",
		"root(a, 0)",
		"pow(a, 1/0)",
		"!a",
		"[a, b]",
	}
	for _, src := range testCases {
		t.Run(src, func(t *testing.T) {
			t.Parallel()
			def, diags := parseDef(t, src)
			assert.True(t, diags.HasErrors())
			assert.Nil(t, def)
			require.NotNil(t, diags[0].Subject)
			assert.Equal(t, "test.hcl", diags[0].Subject.Filename)
		})
	}
}
