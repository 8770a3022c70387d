package render

import (
	"io"

	"github.com/specialistvlad/dimgrid/internal/entry"
	"github.com/specialistvlad/dimgrid/internal/resolver"
	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

var magnitudeType = cty.Object(map[string]cty.Type{
	"value":    cty.Number,
	"mantissa": cty.Number,
	"exponent": cty.Number,
	"sign":     cty.Number,
})

var itemType = cty.Object(map[string]cty.Type{
	"name":       cty.String,
	"kind":       cty.String,
	"base":       cty.Bool,
	"symbol":     cty.String,
	"definition": cty.String,
	"dimension":  cty.List(cty.String),
	"magnitude":  magnitudeType,
})

// reportValue builds the cty object model shared by the JSON encoder and its
// tests.
func reportValue(res *resolver.Resolution) (cty.Value, error) {
	items := make([]cty.Value, 0, res.Len())
	for _, it := range res.Items {
		dense, err := denseStrings(res, it)
		if err != nil {
			return cty.NilVal, err
		}
		items = append(items, cty.ObjectVal(map[string]cty.Value{
			"name":       cty.StringVal(it.Name.Name),
			"kind":       cty.StringVal(it.Kind.String()),
			"base":       cty.BoolVal(isBase(it)),
			"symbol":     cty.StringVal(it.Symbol),
			"definition": cty.StringVal(entry.Format(it.Def)),
			"dimension":  stringList(dense),
			"magnitude": cty.ObjectVal(map[string]cty.Value{
				"value":    magnitudeValue(it),
				"mantissa": cty.NumberUIntVal(it.Mag.Mantissa()),
				"exponent": cty.NumberIntVal(int64(it.Mag.Exponent())),
				"sign":     cty.NumberIntVal(int64(it.Mag.Sign())),
			}),
		}))
	}

	list := cty.ListValEmpty(itemType)
	if len(items) > 0 {
		list = cty.ListVal(items)
	}
	return cty.ObjectVal(map[string]cty.Value{
		"basis": stringList(res.Basis.Names()),
		"items": list,
	}), nil
}

func encodeJSON(w io.Writer, res *resolver.Resolution) error {
	val, err := reportValue(res)
	if err != nil {
		return err
	}
	buf, err := ctyjson.Marshal(val, val.Type())
	if err != nil {
		return err
	}
	buf = append(buf, '\n')
	_, err = w.Write(buf)
	return err
}
