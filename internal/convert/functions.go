package convert

import (
	"github.com/xlcore/formulacore/internal/args"
	"github.com/xlcore/formulacore/internal/registry"
	"github.com/xlcore/formulacore/internal/value"
)

// Register wires CONVERT into r.
func Register(r *registry.Registry) {
	r.RegisterFunc("CONVERT", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if !args.Exact(a, 3) {
			return value.Error(value.ErrValue)
		}
		if errv, found := args.FirstError(a); found {
			return errv
		}
		n, errv, ok := args.Number(a[0])
		if !ok {
			return errv
		}
		from, errv, ok := args.Text(a[1])
		if !ok {
			return errv
		}
		to, errv, ok := args.Text(a[2])
		if !ok {
			return errv
		}
		result, ok := Convert(n, from, to)
		if !ok {
			return value.Error(value.ErrNA)
		}
		return value.Number(result)
	})
}
