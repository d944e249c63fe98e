// Package info implements the IS*/IFERROR/IFNA/NA predicate family
// every other family can be tested and trapped against:
// "errors are values, not exceptions; they can be tested (ISERROR, ISNA,
// ISERR), trapped (IFERROR), or propagated." Unlike almost every other
// function in this core, these predicates do NOT participate in the
// error-first propagation combinator: their entire purpose
// is to inspect an argument that may itself be an Error without
// propagating it, so each one special-cases the inspection instead of
// calling args.FirstError first.
package info

import (
	"github.com/xlcore/formulacore/internal/args"
	"github.com/xlcore/formulacore/internal/registry"
	"github.com/xlcore/formulacore/internal/value"
)

func arityErr() value.CellValue { return value.Error(value.ErrValue) }

// Register wires every IS*/IFERROR/IFNA/NA/ERROR.TYPE function into r.
func Register(r *registry.Registry) {
	predicate := func(name string, f func(value.CellValue) bool) {
		r.RegisterFunc(name, func(ctx registry.Context, a []value.CellValue) value.CellValue {
			if !args.Exact(a, 1) {
				return arityErr()
			}
			return value.Boolean(f(a[0]))
		})
	}

	// ISERROR is true for any of the seven kinds; ISERR excludes #N/A;
	// ISNA is the converse of ISERR restricted to #N/A.
	predicate("ISERROR", func(v value.CellValue) bool { return v.IsError() })
	predicate("ISERR", func(v value.CellValue) bool {
		kind, ok := v.ErrorKind()
		return ok && kind != value.ErrNA
	})
	predicate("ISNA", func(v value.CellValue) bool {
		kind, ok := v.ErrorKind()
		return ok && kind == value.ErrNA
	})
	predicate("ISBLANK", func(v value.CellValue) bool { return v.IsEmpty() })
	predicate("ISNUMBER", func(v value.CellValue) bool { return v.IsNumber() })
	predicate("ISTEXT", func(v value.CellValue) bool { return v.IsText() })
	predicate("ISNONTEXT", func(v value.CellValue) bool { return !v.IsText() })
	predicate("ISLOGICAL", func(v value.CellValue) bool { return v.IsBoolean() })

	r.RegisterFunc("NA", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if !args.Exact(a, 0) {
			return arityErr()
		}
		return value.Error(value.ErrNA)
	})

	r.RegisterFunc("N", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if !args.Exact(a, 1) {
			return arityErr()
		}
		v := a[0]
		if v.IsError() {
			return v
		}
		switch {
		case v.IsNumber():
			return v
		case v.IsBoolean():
			if v.AsBool() {
				return value.Number(1)
			}
			return value.Number(0)
		default:
			return value.Number(0)
		}
	})

	// ERROR.TYPE maps each of the seven error kinds to its Excel integer
	// code; a non-error argument yields #N/A.
	r.RegisterFunc("ERROR.TYPE", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if !args.Exact(a, 1) {
			return arityErr()
		}
		kind, ok := a[0].ErrorKind()
		if !ok {
			return value.Error(value.ErrNA)
		}
		code, ok := errorTypeCodes[kind]
		if !ok {
			return value.Error(value.ErrNA)
		}
		return value.Number(float64(code))
	})

	// IFERROR substitutes on ANY error kind, including #N/A; use IFNA
	// to trap only #N/A.
	r.RegisterFunc("IFERROR", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if !args.Exact(a, 2) {
			return arityErr()
		}
		if a[0].IsError() {
			return a[1]
		}
		return a[0]
	})

	// IFNA substitutes only on #N/A; any other error propagates.
	r.RegisterFunc("IFNA", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if !args.Exact(a, 2) {
			return arityErr()
		}
		if kind, ok := a[0].ErrorKind(); ok && kind == value.ErrNA {
			return a[1]
		}
		return a[0]
	})
}

var errorTypeCodes = map[value.ErrorKind]int{
	value.ErrNull:  1,
	value.ErrDiv0:  2,
	value.ErrValue: 3,
	value.ErrRef:   4,
	value.ErrName:  5,
	value.ErrNum:   6,
	value.ErrNA:    7,
}
