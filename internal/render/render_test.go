package render

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/dimgrid/internal/entry"
	"github.com/specialistvlad/dimgrid/internal/resolver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func sampleResolution(t *testing.T) *resolver.Resolution {
	t.Helper()
	length, tm := entry.NewIdent("Length"), entry.NewIdent("Time")
	entries := []entry.Entry{
		&entry.Dimension{Ident: length},
		&entry.Dimension{Ident: tm},
		&entry.Dimension{Ident: entry.NewIdent("Velocity"), Def: entry.Over(entry.Of(entry.Ref(length)), entry.Ref(tm))},
		&entry.Unit{Ident: entry.NewIdent("meters"), Symbol: "m", BaseOf: &length},
		&entry.Unit{Ident: entry.NewIdent("seconds"), Symbol: "s", BaseOf: &tm},
		&entry.Unit{Ident: entry.NewIdent("km"), Symbol: "km", Def: entry.Times(entry.Of(entry.Number(1000)), entry.RefName("meters"))},
		&entry.Unit{Ident: entry.NewIdent("mps"), Def: entry.Over(entry.Of(entry.RefName("meters")), entry.RefName("seconds"))},
	}
	res, diags := resolver.Resolve(context.Background(), entries)
	require.Empty(t, diags)
	return res
}

type jsonReport struct {
	Basis []string `json:"basis"`
	Items []struct {
		Name       string   `json:"name"`
		Kind       string   `json:"kind"`
		Base       bool     `json:"base"`
		Symbol     string   `json:"symbol"`
		Definition string   `json:"definition"`
		Dimension  []string `json:"dimension"`
		Magnitude  struct {
			Value    *float64 `json:"value"`
			Mantissa uint64   `json:"mantissa"`
			Exponent int      `json:"exponent"`
			Sign     int      `json:"sign"`
		} `json:"magnitude"`
	} `json:"items"`
}

func TestEncode_JSON(t *testing.T) {
	t.Parallel()
	res := sampleResolution(t)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, FormatJSON, res))

	var report jsonReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &report))
	assert.Equal(t, []string{"Length", "Time"}, report.Basis)
	require.Len(t, report.Items, 7)

	// Items are sorted by name.
	assert.Equal(t, "Length", report.Items[0].Name)
	km := report.Items[3]
	assert.Equal(t, "km", km.Name)
	assert.Equal(t, "unit", km.Kind)
	assert.False(t, km.Base)
	assert.Equal(t, "km", km.Symbol)
	assert.Equal(t, "1000 * meters", km.Definition)
	assert.Equal(t, []string{"1", "0"}, km.Dimension)
	require.NotNil(t, km.Magnitude.Value)
	assert.Equal(t, 1000.0, *km.Magnitude.Value)
	assert.Equal(t, uint64(8796093022208000), km.Magnitude.Mantissa)
	assert.Equal(t, -43, km.Magnitude.Exponent)
	assert.Equal(t, 1, km.Magnitude.Sign)

	meters := report.Items[4]
	assert.Equal(t, "meters", meters.Name)
	assert.Equal(t, "base unit", meters.Kind)
	assert.True(t, meters.Base)

	mps := report.Items[5]
	assert.Equal(t, []string{"1", "-1"}, mps.Dimension)
}

func TestEncode_Deterministic(t *testing.T) {
	t.Parallel()
	for _, f := range Formats() {
		t.Run(string(f), func(t *testing.T) {
			t.Parallel()
			var a, b bytes.Buffer
			require.NoError(t, Encode(&a, f, sampleResolution(t)))
			require.NoError(t, Encode(&b, f, sampleResolution(t)))
			assert.Equal(t, a.String(), b.String())
			assert.NotEmpty(t, a.String())
		})
	}
}

func TestEncode_HCL(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, FormatHCL, sampleResolution(t)))

	file, diags := hclparse.NewParser().ParseHCL(buf.Bytes(), "report.hcl")
	require.False(t, diags.HasErrors(), diags.Error())
	body := file.Body.(*hclsyntax.Body)

	basis, diags := body.Attributes["basis"].Expr.Value(nil)
	require.False(t, diags.HasErrors())
	assert.Equal(t, 2, basis.LengthInt())

	blocks := make(map[string]*hclsyntax.Block)
	for _, b := range body.Blocks {
		blocks[b.Type+"."+b.Labels[0]] = b
	}
	require.Len(t, blocks, 7)

	km := blocks["unit.km"]
	require.NotNil(t, km)
	mag, diags := km.Body.Attributes["magnitude"].Expr.Value(nil)
	require.False(t, diags.HasErrors())
	require.Equal(t, cty.Number, mag.Type())
	f, _ := mag.AsBigFloat().Float64()
	assert.Equal(t, 1000.0, f)
	def, diags := km.Body.Attributes["definition"].Expr.Value(nil)
	require.False(t, diags.HasErrors())
	assert.Equal(t, "1000 * meters", def.AsString())

	length := blocks["dimension.Length"]
	require.NotNil(t, length)
	assert.Contains(t, length.Body.Attributes, "base")
	assert.NotContains(t, length.Body.Attributes, "magnitude")

	meters := blocks["unit.meters"]
	require.NotNil(t, meters)
	assert.Contains(t, meters.Body.Attributes, "base")
}

func TestEncode_Text(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, FormatText, sampleResolution(t)))

	out := buf.String()
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "{Length:1, Time:-1}")
	assert.Contains(t, out, "1000 * meters")
	assert.Contains(t, out, "7 resolved over basis [Length Time]")
}

func TestEncode_Empty(t *testing.T) {
	t.Parallel()
	res, _ := resolver.Resolve(context.Background(), nil)
	for _, f := range Formats() {
		var buf bytes.Buffer
		assert.NoError(t, Encode(&buf, f, res), string(f))
	}

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, FormatJSON, res))
	assert.JSONEq(t, `{"basis":[],"items":[]}`, buf.String())
}

func TestParseFormat(t *testing.T) {
	t.Parallel()
	f, err := ParseFormat(" JSON ")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	_, err = ParseFormat("yaml")
	assert.ErrorContains(t, err, "unknown output format")

	assert.Error(t, Encode(&bytes.Buffer{}, Format("yaml"), nil))
}
