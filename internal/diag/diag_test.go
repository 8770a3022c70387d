package diag

import (
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/dimgrid/internal/entry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnostics_Sort(t *testing.T) {
	t.Parallel()
	ds := Diagnostics{
		{Kind: Unresolvable, Idents: []entry.Ident{entry.NewIdent("b"), entry.NewIdent("a")}},
		{Kind: Undefined, Idents: []entry.Ident{entry.NewIdent("zeta")}},
		{Kind: Undefined, Idents: []entry.Ident{entry.NewIdent("alpha")}},
		{Kind: MultiplyDefined, Idents: []entry.Ident{entry.NewIdent("foo")}},
	}
	ds.Sort()

	got := make([]string, len(ds))
	for i, d := range ds {
		got[i] = d.Kind.String() + ":" + d.Subject()
	}
	assert.Equal(t, []string{
		"Undefined:alpha",
		"Undefined:zeta",
		"MultiplyDefined:foo",
		"Unresolvable:b",
	}, got)
}

func TestDiagnostics_OfKind(t *testing.T) {
	t.Parallel()
	ds := Diagnostics{
		{Kind: Undefined, Summary: "a"},
		{Kind: ViolatedAnnotation, Summary: "b"},
		{Kind: Undefined, Summary: "c"},
	}
	assert.Len(t, ds.OfKind(Undefined), 2)
	assert.Empty(t, ds.OfKind(Unresolvable))
	assert.True(t, ds.HasErrors())
	assert.False(t, Diagnostics(nil).HasErrors())
}

func TestDiagnostics_Error(t *testing.T) {
	t.Parallel()
	one := Diagnostics{{Kind: Undefined, Summary: `undefined name "x"`}}
	assert.Equal(t, `Undefined: undefined name "x"`, one.Error())

	two := Diagnostics{
		{Kind: Undefined, Summary: "first"},
		{Kind: ViolatedAnnotation, Summary: "second", Detail: "more"},
	}
	assert.Equal(t, "2 problems:\n- Undefined: first\n- ViolatedAnnotation: second: more", two.Error())
}

func TestDiagnostics_HCL(t *testing.T) {
	t.Parallel()
	rng := hcl.Range{Filename: "units.hcl", Start: hcl.Pos{Line: 3, Column: 1, Byte: 10}, End: hcl.Pos{Line: 3, Column: 5, Byte: 14}}
	other := hcl.Range{Filename: "units.hcl", Start: hcl.Pos{Line: 7, Column: 1, Byte: 40}, End: hcl.Pos{Line: 7, Column: 5, Byte: 44}}
	ds := Diagnostics{
		{
			Kind:    MultiplyDefined,
			Idents:  []entry.Ident{{Name: "foo", Range: rng}, {Name: "foo", Range: other}},
			Summary: `"foo" is defined more than once`,
		},
		{Kind: Undefined, Idents: []entry.Ident{entry.NewIdent("bar")}, Summary: "no range"},
	}

	hds := ds.HCL()
	require.Len(t, hds, 2)
	assert.True(t, hds.HasErrors())
	require.NotNil(t, hds[0].Subject)
	assert.Equal(t, rng, *hds[0].Subject)
	assert.Nil(t, hds[0].Context)
	assert.Contains(t, hds[0].Summary, "MultiplyDefined")
	assert.Nil(t, hds[1].Subject)
}
