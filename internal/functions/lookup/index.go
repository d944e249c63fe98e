package lookup

import (
	"github.com/xlcore/formulacore/internal/args"
	"github.com/xlcore/formulacore/internal/registry"
	"github.com/xlcore/formulacore/internal/value"
)

// registerIndex wires INDEX. The 2-D form is recovered when the last
// four arguments are (numRows, numCols, row, col) and numRows*numCols
// exactly accounts for every remaining element (the "trailing
// dimension arguments" convention); otherwise INDEX falls back to the
// 1-D form of a trailing row index.
func registerIndex(r *registry.Registry) {
	r.RegisterFunc("INDEX", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if !args.Range(a, 2, -1) {
			return arityErr()
		}
		if errv, found := args.FirstError(a); found {
			return errv
		}
		if len(a) >= 5 {
			tail := a[len(a)-4:]
			if allNumeric(tail) {
				numRows := int(tail[0].AsNumber())
				numCols := int(tail[1].AsNumber())
				row := int(tail[2].AsNumber())
				col := int(tail[3].AsNumber())
				body := a[:len(a)-4]
				if numRows > 0 && numCols > 0 && numRows*numCols == len(body) {
					return index2D(body, numRows, numCols, row, col)
				}
			}
		}
		array := a[:len(a)-1]
		rowArg := a[len(a)-1]
		rowF, errv, ok := args.Number(rowArg)
		if !ok {
			return errv
		}
		row := int(rowF)
		if row < 1 || row > len(array) {
			return value.Error(value.ErrRef)
		}
		return array[row-1]
	})
}

func allNumeric(vs []value.CellValue) bool {
	for _, v := range vs {
		if !v.IsNumber() {
			return false
		}
	}
	return true
}

func index2D(body []value.CellValue, numRows, numCols, row, col int) value.CellValue {
	if row < 1 || row > numRows || col < 1 || col > numCols {
		return value.Error(value.ErrRef)
	}
	idx := (row-1)*numCols + (col - 1)
	return body[idx]
}
