package render

import (
	"io"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/specialistvlad/dimgrid/internal/entry"
	"github.com/specialistvlad/dimgrid/internal/resolver"
	"github.com/zclconf/go-cty/cty"
)

// encodeHCL writes one block per item:
//
//	basis = ["Length", "Time"]
//
//	unit "km" {
//	  symbol     = "km"
//	  definition = "1000 * meters"
//	  dimension  = ["1", "0"]
//	  magnitude  = 1000
//	  mantissa   = 8796093022208000
//	  exponent   = -43
//	  sign       = 1
//	}
func encodeHCL(w io.Writer, res *resolver.Resolution) error {
	f := hclwrite.NewEmptyFile()
	root := f.Body()
	root.SetAttributeValue("basis", stringList(res.Basis.Names()))

	for _, it := range res.Items {
		dense, err := denseStrings(res, it)
		if err != nil {
			return err
		}
		root.AppendNewline()
		body := root.AppendNewBlock(blockType(it.Kind), []string{it.Name.Name}).Body()
		if isBase(it) {
			body.SetAttributeValue("base", cty.True)
		}
		if it.Symbol != "" {
			body.SetAttributeValue("symbol", cty.StringVal(it.Symbol))
		}
		if it.Def != nil {
			body.SetAttributeValue("definition", cty.StringVal(entry.Format(it.Def)))
		}
		body.SetAttributeValue("dimension", stringList(dense))
		if it.Kind != entry.KindDimension {
			body.SetAttributeValue("magnitude", magnitudeValue(it))
			body.SetAttributeValue("mantissa", cty.NumberUIntVal(it.Mag.Mantissa()))
			body.SetAttributeValue("exponent", cty.NumberIntVal(int64(it.Mag.Exponent())))
			body.SetAttributeValue("sign", cty.NumberIntVal(int64(it.Mag.Sign())))
		}
	}

	_, err := f.WriteTo(w)
	return err
}
