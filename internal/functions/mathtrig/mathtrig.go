// Package mathtrig implements the elementary math/trig/aggregate
// function family plus the SUM/ROUND/aggregate surface.
package mathtrig

import (
	"math"
	"math/rand"

	"github.com/xlcore/formulacore/internal/args"
	"github.com/xlcore/formulacore/internal/numeric"
	"github.com/xlcore/formulacore/internal/registry"
	"github.com/xlcore/formulacore/internal/value"
)

// Register wires every math and trig function into r.
func Register(r *registry.Registry) {
	registerAggregates(r)
	registerRounding(r)
	registerElementary(r)
	registerTrig(r)
	registerCombinatorics(r)
}

func arityErr() value.CellValue { return value.Error(value.ErrValue) }

// unary registers a single-argument pure-math function of the form
// f(x) -> (result, ok); !ok maps to #NUM!.
func unary(r *registry.Registry, name string, f func(float64) (float64, bool)) {
	r.RegisterFunc(name, func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if !args.Exact(a, 1) {
			return arityErr()
		}
		if errv, found := args.FirstError(a); found {
			return errv
		}
		x, errv, ok := args.Number(a[0])
		if !ok {
			return errv
		}
		res, ok := f(x)
		if !ok {
			return value.Error(value.ErrNum)
		}
		return value.Number(res)
	})
}

// unaryNoDomain registers a single-argument function with no domain
// restriction beyond finiteness (handled by value.Number on exit).
func unaryNoDomain(r *registry.Registry, name string, f func(float64) float64) {
	unary(r, name, func(x float64) (float64, bool) { return f(x), true })
}

// unaryDiv0 registers a single-argument function whose domain failure is
// #DIV/0! rather than #NUM! (the reciprocal trig family's
// "reciprocal functions return #DIV/0! when their underlying trig value
// is 0").
func unaryDiv0(r *registry.Registry, name string, f func(float64) (float64, bool)) {
	r.RegisterFunc(name, func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if !args.Exact(a, 1) {
			return arityErr()
		}
		if errv, found := args.FirstError(a); found {
			return errv
		}
		x, errv, ok := args.Number(a[0])
		if !ok {
			return errv
		}
		res, ok := f(x)
		if !ok {
			return value.Error(value.ErrDiv0)
		}
		return value.Number(res)
	})
}

func registerElementary(r *registry.Registry) {
	unary(r, "ABS", func(x float64) (float64, bool) { return math.Abs(x), true })
	unary(r, "SIGN", func(x float64) (float64, bool) {
		switch {
		case x > 0:
			return 1, true
		case x < 0:
			return -1, true
		default:
			return 0, true
		}
	})
	unary(r, "SQRT", func(x float64) (float64, bool) {
		if x < 0 {
			return 0, false
		}
		return math.Sqrt(x), true
	})
	unary(r, "SQRTPI", func(x float64) (float64, bool) {
		if x < 0 {
			return 0, false
		}
		return math.Sqrt(x * math.Pi), true
	})
	unaryNoDomain(r, "EXP", math.Exp)
	unary(r, "LN", func(x float64) (float64, bool) {
		if x <= 0 {
			return 0, false
		}
		return math.Log(x), true
	})
	unary(r, "LOG10", func(x float64) (float64, bool) {
		if x <= 0 {
			return 0, false
		}
		return math.Log10(x), true
	})
	r.RegisterFunc("LOG", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if !args.Range(a, 1, 2) {
			return arityErr()
		}
		if errv, found := args.FirstError(a); found {
			return errv
		}
		x, errv, ok := args.Number(a[0])
		if !ok {
			return errv
		}
		base := 10.0
		if len(a) == 2 {
			base, errv, ok = args.Number(a[1])
			if !ok {
				return errv
			}
		}
		if x <= 0 || base <= 0 || base == 1 {
			return value.Error(value.ErrNum)
		}
		return value.Number(math.Log(x) / math.Log(base))
	})
	r.RegisterFunc("PI", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if !args.Exact(a, 0) {
			return arityErr()
		}
		return value.Number(math.Pi)
	})
	unaryNoDomain(r, "RADIANS", func(x float64) float64 { return x * math.Pi / 180 })
	unaryNoDomain(r, "DEGREES", func(x float64) float64 { return x * 180 / math.Pi })
	unary(r, "EVEN", func(x float64) (float64, bool) { return roundToEven(x), true })
	unary(r, "ODD", func(x float64) (float64, bool) { return roundToOdd(x), true })
	unary(r, "INT", func(x float64) (float64, bool) { return numeric.IntFloor(x), true })

	r.RegisterFunc("TRUNC", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if !args.Range(a, 1, 2) {
			return arityErr()
		}
		if errv, found := args.FirstError(a); found {
			return errv
		}
		x, errv, ok := args.Number(a[0])
		if !ok {
			return errv
		}
		places := 0.0
		if len(a) == 2 {
			places, errv, ok = args.Number(a[1])
			if !ok {
				return errv
			}
		}
		return value.Number(numeric.Trunc(x, int(places)))
	})

	r.RegisterFunc("MOD", func(ctx registry.Context, a []value.CellValue) value.CellValue {
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
		res, ok := numeric.Mod(x, y)
		if !ok {
			return value.Error(value.ErrDiv0)
		}
		return value.Number(res)
	})

	r.RegisterFunc("QUOTIENT", func(ctx registry.Context, a []value.CellValue) value.CellValue {
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
		if y == 0 {
			return value.Error(value.ErrDiv0)
		}
		return value.Number(math.Trunc(x / y))
	})

	r.RegisterFunc("POWER", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if !args.Exact(a, 2) {
			return arityErr()
		}
		if errv, found := args.FirstError(a); found {
			return errv
		}
		base, errv, ok := args.Number(a[0])
		if !ok {
			return errv
		}
		exp, errv, ok := args.Number(a[1])
		if !ok {
			return errv
		}
		res, ok := numeric.Power(base, exp)
		if !ok {
			return value.Error(value.ErrNum)
		}
		return value.Number(res)
	})

	r.RegisterFunc("CEILING", func(ctx registry.Context, a []value.CellValue) value.CellValue {
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
		s, errv, ok := args.Number(a[1])
		if !ok {
			return errv
		}
		res, ok := numeric.Ceiling(x, s)
		if !ok {
			return value.Error(value.ErrNum)
		}
		return value.Number(res)
	})

	r.RegisterFunc("FLOOR", func(ctx registry.Context, a []value.CellValue) value.CellValue {
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
		s, errv, ok := args.Number(a[1])
		if !ok {
			return errv
		}
		res, ok := numeric.Floor(x, s)
		if !ok {
			return value.Error(value.ErrNum)
		}
		return value.Number(res)
	})

	registerRand(r)
}

func roundToEven(x float64) float64 {
	if x == 0 {
		return 0
	}
	mag := math.Ceil(math.Abs(x))
	if math.Mod(mag, 2) != 0 {
		mag++
	}
	if x < 0 {
		mag = -mag
	}
	return mag
}

func roundToOdd(x float64) float64 {
	if x == 0 {
		return 1
	}
	mag := math.Ceil(math.Abs(x))
	if math.Mod(mag, 2) == 0 {
		mag++
	}
	if x < 0 {
		mag = -mag
	}
	return mag
}

func registerRand(r *registry.Registry) {
	r.RegisterFunc("RAND", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if !args.Exact(a, 0) {
			return arityErr()
		}
		return value.Number(rand.Float64())
	})
	r.RegisterFunc("RANDBETWEEN", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if !args.Exact(a, 2) {
			return arityErr()
		}
		if errv, found := args.FirstError(a); found {
			return errv
		}
		lo, errv, ok := args.Number(a[0])
		if !ok {
			return errv
		}
		hi, errv, ok := args.Number(a[1])
		if !ok {
			return errv
		}
		lo, hi = math.Ceil(lo), math.Floor(hi)
		if lo > hi {
			return value.Error(value.ErrNum)
		}
		return value.Number(lo + math.Floor(rand.Float64()*(hi-lo+1)))
	})
}

func registerRounding(r *registry.Registry) {
	round := func(name string, apply func(x float64, places int) float64) {
		r.RegisterFunc(name, func(ctx registry.Context, a []value.CellValue) value.CellValue {
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
			p, errv, ok := args.Number(a[1])
			if !ok {
				return errv
			}
			return value.Number(apply(x, int(p)))
		})
	}
	round("ROUND", numeric.RoundHalfAwayFromZero)
	round("ROUNDUP", func(x float64, places int) float64 {
		scale := math.Pow(10, float64(places))
		if x >= 0 {
			return math.Ceil(x*scale) / scale
		}
		return math.Floor(x*scale) / scale
	})
	round("ROUNDDOWN", func(x float64, places int) float64 {
		return numeric.Trunc(x, places)
	})
}

func registerCombinatorics(r *registry.Registry) {
	unary(r, "FACT", func(x float64) (float64, bool) { return numeric.Factorial(x) })
	unary(r, "FACTDOUBLE", func(x float64) (float64, bool) { return numeric.FactorialDouble(x) })

	binom := func(name string, f func(n, k float64) (float64, bool)) {
		r.RegisterFunc(name, func(ctx registry.Context, a []value.CellValue) value.CellValue {
			if !args.Exact(a, 2) {
				return arityErr()
			}
			if errv, found := args.FirstError(a); found {
				return errv
			}
			n, errv, ok := args.Number(a[0])
			if !ok {
				return errv
			}
			k, errv, ok := args.Number(a[1])
			if !ok {
				return errv
			}
			res, ok := f(n, k)
			if !ok {
				return value.Error(value.ErrNum)
			}
			return value.Number(res)
		})
	}
	binom("COMBIN", numeric.Combin)
	binom("COMBINA", numeric.CombinA)
	r.RegisterFunc("GCD", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		return foldPairwise(a, 0, numeric.GCD)
	})
	r.RegisterFunc("LCM", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		return foldPairwise(a, 1, numeric.LCM)
	})

	r.RegisterFunc("MULTINOMIAL", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if !args.Range(a, 1, -1) {
			return arityErr()
		}
		if errv, found := args.FirstError(a); found {
			return errv
		}
		ks := make([]float64, len(a))
		for i, v := range a {
			n, errv, ok := args.Number(v)
			if !ok {
				return errv
			}
			ks[i] = n
		}
		res, ok := numeric.Multinomial(ks)
		if !ok {
			return value.Error(value.ErrNum)
		}
		return value.Number(res)
	})

	r.RegisterFunc("SERIESSUM", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if !args.Range(a, 4, -1) {
			return arityErr()
		}
		if errv, found := args.FirstError(a); found {
			return errv
		}
		x, errv, ok := args.Number(a[0])
		if !ok {
			return errv
		}
		n, errv, ok := args.Number(a[1])
		if !ok {
			return errv
		}
		m, errv, ok := args.Number(a[2])
		if !ok {
			return errv
		}
		coeffs := make([]float64, len(a)-3)
		for i, v := range a[3:] {
			c, errv, ok := args.Number(v)
			if !ok {
				return errv
			}
			coeffs[i] = c
		}
		res, ok := numeric.SeriesSum(x, n, m, coeffs)
		if !ok {
			return value.Error(value.ErrNum)
		}
		return value.Number(res)
	})
}

func foldPairwise(a []value.CellValue, identity float64, f func(x, y float64) float64) value.CellValue {
	if !args.Range(a, 1, -1) {
		return arityErr()
	}
	if errv, found := args.FirstError(a); found {
		return errv
	}
	acc := identity
	for i, v := range a {
		n, errv, ok := args.Number(v)
		if !ok {
			return errv
		}
		if i == 0 {
			acc = n
			continue
		}
		acc = f(acc, n)
	}
	return value.Number(acc)
}
