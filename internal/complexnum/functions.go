package complexnum

import (
	"github.com/xlcore/formulacore/internal/args"
	"github.com/xlcore/formulacore/internal/registry"
	"github.com/xlcore/formulacore/internal/value"
)

func arityErr() value.CellValue { return value.Error(value.ErrValue) }

// Register wires every IM*/COMPLEX function into r.
func Register(r *registry.Registry) {
	r.RegisterFunc("COMPLEX", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if !args.Range(a, 2, 3) {
			return arityErr()
		}
		if errv, found := args.FirstError(a); found {
			return errv
		}
		re, errv, ok := args.Number(a[0])
		if !ok {
			return errv
		}
		im, errv, ok := args.Number(a[1])
		if !ok {
			return errv
		}
		unit := byte('i')
		if len(a) == 3 {
			s, errv, ok := args.Text(a[2])
			if !ok {
				return errv
			}
			if s != "i" && s != "j" {
				return value.Error(value.ErrValue)
			}
			unit = s[0]
		}
		return value.Text(Format(complex(re, im), unit))
	})

	unary := func(name string, f func(z complex128) complex128) {
		r.RegisterFunc(name, func(ctx registry.Context, a []value.CellValue) value.CellValue {
			if !args.Exact(a, 1) {
				return arityErr()
			}
			z, unit, errv, ok := parseArg(a[0])
			if !ok {
				return errv
			}
			return value.Text(Format(f(z), unit))
		})
	}
	unary("IMCONJUGATE", Conjugate)
	unary("IMEXP", Exp)
	unary("IMLN", Log)
	unary("IMLOG10", Log10)
	unary("IMSIN", Sin)
	unary("IMCOS", Cos)
	unary("IMSQRT", Sqrt)

	r.RegisterFunc("IMABS", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if !args.Exact(a, 1) {
			return arityErr()
		}
		z, _, errv, ok := parseArg(a[0])
		if !ok {
			return errv
		}
		return value.Number(Abs(z))
	})
	r.RegisterFunc("IMARGUMENT", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if !args.Exact(a, 1) {
			return arityErr()
		}
		z, _, errv, ok := parseArg(a[0])
		if !ok {
			return errv
		}
		if real(z) == 0 && imag(z) == 0 {
			return value.Error(value.ErrDiv0)
		}
		return value.Number(Argument(z))
	})
	r.RegisterFunc("IMREAL", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if !args.Exact(a, 1) {
			return arityErr()
		}
		z, _, errv, ok := parseArg(a[0])
		if !ok {
			return errv
		}
		return value.Number(real(z))
	})
	r.RegisterFunc("IMAGINARY", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if !args.Exact(a, 1) {
			return arityErr()
		}
		z, _, errv, ok := parseArg(a[0])
		if !ok {
			return errv
		}
		return value.Number(imag(z))
	})

	r.RegisterFunc("IMSUM", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		return foldComplex(a, func(acc, z complex128) complex128 { return acc + z })
	})
	r.RegisterFunc("IMPRODUCT", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		return foldComplex(a, func(acc, z complex128) complex128 { return acc * z })
	})
	r.RegisterFunc("IMSUB", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if !args.Exact(a, 2) {
			return arityErr()
		}
		z1, unit, errv, ok := parseArg(a[0])
		if !ok {
			return errv
		}
		z2, _, errv, ok := parseArg(a[1])
		if !ok {
			return errv
		}
		return value.Text(Format(z1-z2, unit))
	})
	r.RegisterFunc("IMDIV", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if !args.Exact(a, 2) {
			return arityErr()
		}
		z1, unit, errv, ok := parseArg(a[0])
		if !ok {
			return errv
		}
		z2, _, errv, ok := parseArg(a[1])
		if !ok {
			return errv
		}
		res, ok := Div(z1, z2)
		if !ok {
			return value.Error(value.ErrNum)
		}
		return value.Text(Format(res, unit))
	})
	r.RegisterFunc("IMPOWER", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if !args.Exact(a, 2) {
			return arityErr()
		}
		z, unit, errv, ok := parseArg(a[0])
		if !ok {
			return errv
		}
		exp, errv, ok := args.Number(a[1])
		if !ok {
			return errv
		}
		return value.Text(Format(Pow(z, exp), unit))
	})
}

// parseArg reads a COMPLEX-literal CellValue (Text only; Numbers are a
// real-only degenerate complex value). ok is false on a parse failure,
// which is #NUM!.
func parseArg(v value.CellValue) (complex128, byte, value.CellValue, bool) {
	if v.IsError() {
		return 0, 0, v, false
	}
	if v.IsNumber() {
		return complex(v.AsNumber(), 0), 'i', value.CellValue{}, true
	}
	s, errv, ok := args.Text(v)
	if !ok {
		return 0, 0, errv, false
	}
	z, ok := Parse(s)
	if !ok {
		return 0, 0, value.Error(value.ErrNum), false
	}
	return z, Suffix(s), value.CellValue{}, true
}

func foldComplex(a []value.CellValue, f func(acc, z complex128) complex128) value.CellValue {
	if !args.Range(a, 1, -1) {
		return arityErr()
	}
	var acc complex128
	unit := byte('i')
	for i, v := range a {
		z, u, errv, ok := parseArg(v)
		if !ok {
			return errv
		}
		if i == 0 {
			unit = u
			acc = z
			continue
		}
		acc = f(acc, z)
	}
	return value.Text(Format(acc, unit))
}
