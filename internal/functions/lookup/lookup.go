// Package lookup implements MATCH/INDEX/XLOOKUP/XMATCH/CHOOSE and
// their classic VLOOKUP/HLOOKUP siblings, plus the workbook-context
// placeholders.
//
// Every function here receives a flat CellValue sequence with no shape
// hint: where the grammar calls for an array plus trailing
// scalar mode flags, the split is recovered by peeling candidate mode
// values off the tail, preferring the largest trailing count whose
// values are structurally valid for their grammar slot. This mirrors
// the conditional-aggregate flattening convention in
// internal/functions/mathtrig/aggregate.go.
package lookup

import (
	"github.com/xlcore/formulacore/internal/args"
	"github.com/xlcore/formulacore/internal/registry"
	"github.com/xlcore/formulacore/internal/value"
)

func arityErr() value.CellValue { return value.Error(value.ErrValue) }

// Register wires every lookup function into r.
func Register(r *registry.Registry) {
	registerMatch(r)
	registerIndex(r)
	registerXLookup(r)
	registerXMatchFn(r)
	registerChoose(r)
	registerClassicLookups(r)
	registerPlaceholders(r)
}

func isValidMatchType(f float64) bool { return f == -1 || f == 0 || f == 1 }

func registerMatch(r *registry.Registry) {
	r.RegisterFunc("MATCH", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if !args.Range(a, 2, -1) {
			return arityErr()
		}
		if errv, found := args.FirstError(a); found {
			return errv
		}
		lookup := a[0]
		rest := a[1:]
		matchType := 1.0
		if len(rest) >= 2 {
			if n, _, ok := args.Number(rest[len(rest)-1]); ok && isValidMatchType(n) {
				matchType = n
				rest = rest[:len(rest)-1]
			}
		}
		idx, ok := matchIndex(lookup, rest, int(matchType))
		if !ok {
			return value.Error(value.ErrNA)
		}
		return value.Number(float64(idx + 1))
	})
}

func matchIndex(lookup value.CellValue, array []value.CellValue, matchType int) (int, bool) {
	switch matchType {
	case 0:
		for i, v := range array {
			if value.Equal(lookup, v) {
				return i, true
			}
		}
		return 0, false
	case 1:
		best := -1
		for i, v := range array {
			if lessOrEqualOrdered(v, lookup) {
				best = i
			} else {
				break
			}
		}
		if best == -1 {
			return 0, false
		}
		return best, true
	case -1:
		best := -1
		for i, v := range array {
			if greaterOrEqualOrdered(v, lookup) {
				best = i
			} else {
				break
			}
		}
		if best == -1 {
			return 0, false
		}
		return best, true
	}
	return 0, false
}

func numericKey(v value.CellValue) (float64, bool) {
	if v.IsNumber() {
		return v.AsNumber(), true
	}
	return 0, false
}

func lessOrEqualOrdered(candidate, lookup value.CellValue) bool {
	if cf, ok := numericKey(candidate); ok {
		if lf, ok2 := numericKey(lookup); ok2 {
			return cf <= lf
		}
	}
	return false
}

func greaterOrEqualOrdered(candidate, lookup value.CellValue) bool {
	if cf, ok := numericKey(candidate); ok {
		if lf, ok2 := numericKey(lookup); ok2 {
			return cf >= lf
		}
	}
	return false
}

func registerChoose(r *registry.Registry) {
	r.RegisterFunc("CHOOSE", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if !args.Range(a, 2, -1) {
			return arityErr()
		}
		if errv, found := args.FirstError(a); found {
			return errv
		}
		idxF, errv, ok := args.Number(a[0])
		if !ok {
			return errv
		}
		idx := int(idxF)
		values := a[1:]
		if idx < 1 || idx > len(values) {
			return value.Error(value.ErrValue)
		}
		return values[idx-1]
	})
}

func registerPlaceholders(r *registry.Registry) {
	r.RegisterFunc("SHEET", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if errv, found := args.FirstError(a); found {
			return errv
		}
		if scope, ok := ctx.(registry.SheetScope); ok {
			return value.Number(float64(scope.CurrentSheetIndex()))
		}
		return value.Number(1)
	})
	r.RegisterFunc("SHEETS", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if errv, found := args.FirstError(a); found {
			return errv
		}
		if scope, ok := ctx.(registry.SheetScope); ok {
			return value.Number(float64(scope.SheetCount()))
		}
		return value.Number(1)
	})
	r.RegisterFunc("ISFORMULA", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if errv, found := args.FirstError(a); found {
			return errv
		}
		return value.Boolean(false)
	})
	r.RegisterFunc("FORMULATEXT", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if errv, found := args.FirstError(a); found {
			return errv
		}
		return value.Error(value.ErrNA)
	})
	r.RegisterFunc("GETPIVOTDATA", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if errv, found := args.FirstError(a); found {
			return errv
		}
		return value.Error(value.ErrRef)
	})
}
