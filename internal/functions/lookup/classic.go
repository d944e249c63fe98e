package lookup

import (
	"github.com/xlcore/formulacore/internal/args"
	"github.com/xlcore/formulacore/internal/registry"
	"github.com/xlcore/formulacore/internal/value"
)

// registerClassicLookups wires VLOOKUP/HLOOKUP, the classic two-
// dimensional siblings of MATCH/INDEX. Their flattened shape is
// (lookup, table_values..., numRows, numCols, col_or_row_index[,
// range_lookup]), the same trailing-dimension convention INDEX uses.
func registerClassicLookups(r *registry.Registry) {
	r.RegisterFunc("VLOOKUP", classicLookup(false))
	r.RegisterFunc("HLOOKUP", classicLookup(true))
}

func classicLookup(horizontal bool) func(registry.Context, []value.CellValue) value.CellValue {
	return func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if !args.Range(a, 4, -1) {
			return arityErr()
		}
		if errv, found := args.FirstError(a); found {
			return errv
		}
		lookup := a[0]
		rest := a[1:]
		n := len(rest)
		rangeLookup := true
		dimsAt := n - 3
		if n >= 4 {
			last := rest[n-1]
			if last.IsBoolean() {
				rangeLookup = last.AsBool()
				dimsAt = n - 4
			} else if f, ok := last.NumberOrValueError(); ok && f == 0 {
				rangeLookup = false
				dimsAt = n - 4
			}
		}
		if dimsAt < 0 {
			return value.Error(value.ErrValue)
		}
		numRowsF, errv, ok := args.Number(rest[dimsAt])
		if !ok {
			return errv
		}
		numColsF, errv, ok := args.Number(rest[dimsAt+1])
		if !ok {
			return errv
		}
		indexF, errv, ok := args.Number(rest[dimsAt+2])
		if !ok {
			return errv
		}
		numRows, numCols, index := int(numRowsF), int(numColsF), int(indexF)
		body := rest[:dimsAt]
		if numRows <= 0 || numCols <= 0 || numRows*numCols != len(body) {
			return value.Error(value.ErrValue)
		}
		if horizontal {
			if index < 1 || index > numRows {
				return value.Error(value.ErrRef)
			}
		} else {
			if index < 1 || index > numCols {
				return value.Error(value.ErrRef)
			}
		}

		var keyColumn []value.CellValue
		if horizontal {
			keyColumn = make([]value.CellValue, numCols)
			for c := 0; c < numCols; c++ {
				keyColumn[c] = body[c]
			}
		} else {
			keyColumn = make([]value.CellValue, numRows)
			for rr := 0; rr < numRows; rr++ {
				keyColumn[rr] = body[rr*numCols]
			}
		}
		matchType := 1
		if !rangeLookup {
			matchType = 0
		}
		pos, ok := matchIndex(lookup, keyColumn, matchType)
		if !ok {
			return value.Error(value.ErrNA)
		}
		if horizontal {
			return index2D(body, numRows, numCols, index, pos+1)
		}
		return index2D(body, numRows, numCols, pos+1, index)
	}
}
