// Package render encodes a resolution report for downstream consumers. The
// JSON and HCL views carry dense dimension vectors in basis order and the full
// magnitude decomposition; the text view is an aligned table for people.
package render

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/specialistvlad/dimgrid/internal/entry"
	"github.com/specialistvlad/dimgrid/internal/resolver"
	"github.com/zclconf/go-cty/cty"
)

// Format names an output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatHCL  Format = "hcl"
	FormatText Format = "text"
)

// Formats lists every supported format.
func Formats() []Format {
	return []Format{FormatJSON, FormatHCL, FormatText}
}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FormatJSON, FormatHCL, FormatText:
		return f, nil
	}
	return "", fmt.Errorf("unknown output format %q (want one of json, hcl, text)", s)
}

// Encode writes res to w in the given format.
func Encode(w io.Writer, format Format, res *resolver.Resolution) error {
	switch format {
	case FormatJSON:
		return encodeJSON(w, res)
	case FormatHCL:
		return encodeHCL(w, res)
	case FormatText:
		return encodeText(w, res)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// blockType is the report section an item belongs to.
func blockType(k entry.Kind) string {
	switch k {
	case entry.KindDimension:
		return "dimension"
	case entry.KindConstant:
		return "constant"
	default:
		return "unit"
	}
}

// isBase reports whether the item is a base dimension or a base unit.
func isBase(it resolver.Item) bool {
	return it.Kind == entry.KindBaseUnit || (it.Kind == entry.KindDimension && it.Def == nil)
}

// denseStrings encodes the item's vector in basis order, one exponent string
// ("1", "-1/2") per base dimension.
func denseStrings(res *resolver.Resolution, it resolver.Item) ([]string, error) {
	dense, err := res.Dense(it)
	if err != nil {
		return nil, fmt.Errorf("encoding %q: %w", it.Name.Name, err)
	}
	out := make([]string, len(dense))
	for i, e := range dense {
		out[i] = e.String()
	}
	return out, nil
}

// magnitudeValue is the float64 value of the item, or null when the
// magnitude lies outside the float64 range.
func magnitudeValue(it resolver.Item) cty.Value {
	f := it.Mag.Float64()
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return cty.NullVal(cty.Number)
	}
	return cty.NumberFloatVal(f)
}

func stringList(ss []string) cty.Value {
	if len(ss) == 0 {
		return cty.ListValEmpty(cty.String)
	}
	vals := make([]cty.Value, len(ss))
	for i, s := range ss {
		vals[i] = cty.StringVal(s)
	}
	return cty.ListVal(vals)
}
