package mathtrig

import (
	"math"

	"github.com/xlcore/formulacore/internal/args"
	"github.com/xlcore/formulacore/internal/registry"
	"github.com/xlcore/formulacore/internal/value"
)

func registerTrig(r *registry.Registry) {
	unaryNoDomain(r, "SIN", math.Sin)
	unaryNoDomain(r, "COS", math.Cos)
	unaryNoDomain(r, "TAN", math.Tan)
	unaryNoDomain(r, "SINH", math.Sinh)
	unaryNoDomain(r, "COSH", math.Cosh)
	unaryNoDomain(r, "TANH", math.Tanh)

	unary(r, "ASIN", func(x float64) (float64, bool) {
		if x < -1 || x > 1 {
			return 0, false
		}
		return math.Asin(x), true
	})
	unary(r, "ACOS", func(x float64) (float64, bool) {
		if x < -1 || x > 1 {
			return 0, false
		}
		return math.Acos(x), true
	})
	unaryNoDomain(r, "ATAN", math.Atan)
	unary(r, "ASINH", func(x float64) (float64, bool) { return math.Asinh(x), true })
	unary(r, "ACOSH", func(x float64) (float64, bool) {
		if x < 1 {
			return 0, false
		}
		return math.Acosh(x), true
	})
	unary(r, "ATANH", func(x float64) (float64, bool) {
		if x <= -1 || x >= 1 {
			return 0, false
		}
		return math.Atanh(x), true
	})

	r.RegisterFunc("ATAN2", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if !args.Exact(a, 2) {
			return arityErr()
		}
		if errv, found := args.FirstError(a); found {
			return errv
		}
		x, errv, ok := args.Number(a[0])
		if !ok {
			return errv
		}
		y, errv, ok := args.Number(a[1])
		if !ok {
			return errv
		}
		if x == 0 && y == 0 {
			return value.Error(value.ErrDiv0)
		}
		return value.Number(math.Atan2(y, x))
	})

	// Reciprocal family: #DIV/0! when the underlying trig value is 0.
	recip := func(name string, base func(float64) float64) {
		unaryDiv0(r, name, func(x float64) (float64, bool) {
			b := base(x)
			if b == 0 {
				return 0, false
			}
			return 1 / b, true
		})
	}
	recip("SEC", math.Cos)
	recip("CSC", math.Sin)
	recip("COT", math.Tan)
	recip("SECH", math.Cosh)
	recip("CSCH", math.Sinh)
	recip("COTH", math.Tanh)

	unary(r, "ACOT", func(x float64) (float64, bool) { return math.Pi/2 - math.Atan(x), true })
	unary(r, "ACOTH", func(x float64) (float64, bool) {
		if x > -1 && x < 1 {
			return 0, false
		}
		return math.Atanh(1 / x), true
	})
}
