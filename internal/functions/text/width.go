package text

import (
	"golang.org/x/text/width"

	"github.com/xlcore/formulacore/internal/args"
	"github.com/xlcore/formulacore/internal/registry"
	"github.com/xlcore/formulacore/internal/value"
)

// registerWidthFolding wires ASC (fullwidth -> halfwidth) and DBCS
// (halfwidth -> fullwidth) using x/text/width's Narrow/Widen
// transforms, which implement the same Latin/numeric/symbol/U+3000
// folding ASC and DBCS perform.
func registerWidthFolding(r *registry.Registry) {
	r.RegisterFunc("ASC", foldWidth("ASC", width.Narrow))
	r.RegisterFunc("DBCS", foldWidth("DBCS", width.Widen))
}

func foldWidth(name string, transform width.Transformer) func(registry.Context, []value.CellValue) value.CellValue {
	return func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if !args.Exact(a, 1) {
			return arityErr()
		}
		s, errv, ok := args.Text(a[0])
		if !ok {
			return errv
		}
		return value.Text(transform.String(s))
	}
}
