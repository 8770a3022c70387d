package render

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/specialistvlad/dimgrid/internal/entry"
	"github.com/specialistvlad/dimgrid/internal/resolver"
)

func encodeText(w io.Writer, res *resolver.Resolution) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "NAME\tKIND\tSYMBOL\tDIMENSION\tMAGNITUDE\tDEFINITION\n")
	for _, it := range res.Items {
		def := entry.Format(it.Def)
		if def == "" {
			def = "-"
		}
		symbol := it.Symbol
		if symbol == "" {
			symbol = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", it.Name.Name, it.Kind, symbol, it.Dim, it.Mag, def)
	}
	fmt.Fprintf(tw, "\n%d resolved over basis %v\n", res.Len(), res.Basis.Names())
	return tw.Flush()
}
