// Package financial implements the cash-flow time-value-of-money
// family, including the Newton/bisection root finders for
// RATE and IRR.
package financial

import (
	"math"

	"github.com/xlcore/formulacore/internal/args"
	"github.com/xlcore/formulacore/internal/registry"
	"github.com/xlcore/formulacore/internal/value"
)

func arityErr() value.CellValue { return value.Error(value.ErrValue) }

// Register wires every financial function into r.
func Register(r *registry.Registry) {
	registerTVM(r)
	registerDepreciation(r)
	registerCashFlowSeries(r)
}

func validType(t float64) bool { return t == 0 || t == 1 }

// pmtOf/fvOf/pvOf solve the annuity identity
//
//	PV + PMT*nper*(1+rate*type) + FV = 0   (rate == 0)
//	PV*(1+rate)^nper + PMT*(1+rate*type)*((1+rate)^nper-1)/rate + FV = 0
//
// for the named unknown.
func pmtOf(rate, nper, pv, fv, typ float64) float64 {
	if rate == 0 {
		return -(pv + fv) / nper
	}
	growth := math.Pow(1+rate, nper)
	return -(pv*growth + fv) * rate / ((growth - 1) * (1 + rate*typ))
}

func fvOf(rate, nper, pmt, pv, typ float64) float64 {
	if rate == 0 {
		return -(pv + pmt*nper)
	}
	growth := math.Pow(1+rate, nper)
	return -(pv*growth + pmt*(1+rate*typ)*(growth-1)/rate)
}

func pvOf(rate, nper, pmt, fv, typ float64) float64 {
	if rate == 0 {
		return -(fv + pmt*nper)
	}
	growth := math.Pow(1+rate, nper)
	return -(fv + pmt*(1+rate*typ)*(growth-1)/rate) / growth
}

func nperOf(rate, pmt, pv, fv, typ float64) (float64, bool) {
	if rate == 0 {
		if pmt == 0 {
			return 0, false
		}
		return -(pv + fv) / pmt, true
	}
	num := pmt*(1+rate*typ) - fv*rate
	den := pmt*(1+rate*typ) + pv*rate
	if num <= 0 || den <= 0 {
		return 0, false
	}
	return math.Log(num/den) / math.Log(1+rate), true
}

func registerTVM(r *registry.Registry) {
	r.RegisterFunc("PMT", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		rate, nper, pv, fv, typ, errv, ok := tvmArgs(a)
		if !ok {
			return errv
		}
		if nper <= 0 {
			return value.Error(value.ErrNum)
		}
		return value.Number(pmtOf(rate, nper, pv, fv, typ))
	})
	r.RegisterFunc("FV", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		rate, nper, pmt, pv, typ, errv, ok := tvmArgs(a)
		if !ok {
			return errv
		}
		if nper <= 0 {
			return value.Error(value.ErrNum)
		}
		return value.Number(fvOf(rate, nper, pmt, pv, typ))
	})
	r.RegisterFunc("PV", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		rate, nper, pmt, fv, typ, errv, ok := tvmArgs(a)
		if !ok {
			return errv
		}
		if nper <= 0 {
			return value.Error(value.ErrNum)
		}
		return value.Number(pvOf(rate, nper, pmt, fv, typ))
	})
	r.RegisterFunc("NPER", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		rate, pmt, pv, fv, typ, errv, ok := tvmArgs(a)
		if !ok {
			return errv
		}
		res, ok := nperOf(rate, pmt, pv, fv, typ)
		if !ok {
			return value.Error(value.ErrNum)
		}
		return value.Number(res)
	})

	r.RegisterFunc("RATE", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if !args.Range(a, 3, 6) {
			return arityErr()
		}
		if errv, found := args.FirstError(a); found {
			return errv
		}
		nper, errv, ok := args.Number(a[0])
		if !ok {
			return errv
		}
		pmt, errv, ok := args.Number(a[1])
		if !ok {
			return errv
		}
		pv, errv, ok := args.Number(a[2])
		if !ok {
			return errv
		}
		fv, typ, guess := 0.0, 0.0, 0.1
		if len(a) >= 4 {
			if fv, errv, ok = args.Number(a[3]); !ok {
				return errv
			}
		}
		if len(a) >= 5 {
			if typ, errv, ok = args.Number(a[4]); !ok {
				return errv
			}
		}
		if len(a) == 6 {
			if guess, errv, ok = args.Number(a[5]); !ok {
				return errv
			}
		}
		if nper <= 0 || !validType(typ) {
			return value.Error(value.ErrNum)
		}
		rate, ok := solveRate(nper, pmt, pv, fv, typ, guess)
		if !ok {
			return value.Error(value.ErrNum)
		}
		return value.Number(rate)
	})
}

// tvmArgs parses the common (p1, p2, p3[, p4[, type]]) shape shared by
// PMT/FV/PV/NPER; only the solved-for name differs, so
// the parse is pooled here while each caller applies its own extra
// domain check (nper<=0) and picks which slot means what.
func tvmArgs(a []value.CellValue) (p1, p2, p3, p4, typ float64, errv value.CellValue, ok bool) {
	if !args.Range(a, 3, 5) {
		return 0, 0, 0, 0, 0, arityErr(), false
	}
	if e, found := args.FirstError(a); found {
		return 0, 0, 0, 0, 0, e, false
	}
	if p1, errv, ok = args.Number(a[0]); !ok {
		return
	}
	if p2, errv, ok = args.Number(a[1]); !ok {
		return
	}
	if p3, errv, ok = args.Number(a[2]); !ok {
		return
	}
	if len(a) >= 4 {
		if p4, errv, ok = args.Number(a[3]); !ok {
			return
		}
	}
	if len(a) == 5 {
		if typ, errv, ok = args.Number(a[4]); !ok {
			return
		}
	}
	if !validType(typ) {
		return 0, 0, 0, 0, 0, value.Error(value.ErrNum), false
	}
	return p1, p2, p3, p4, typ, value.CellValue{}, true
}

// solveRate finds rate via Newton-Raphson on the TVM residual: max 100
// iterations, stopping early once the residual is below 1e-7. If the cap
// is reached, the last iterate is still accepted when its residual is
// below 1e-4.
func solveRate(nper, pmt, pv, fv, typ, guess float64) (float64, bool) {
	rate := guess
	residual := func(r float64) float64 {
		if r == 0 {
			return pv + pmt*nper*(1+r*typ) + fv
		}
		growth := math.Pow(1+r, nper)
		return pv*growth + pmt*(1+r*typ)*(growth-1)/r + fv
	}
	const h = 1e-6
	for i := 0; i < 100; i++ {
		f := residual(rate)
		if math.Abs(f) < 1e-7 {
			return rate, true
		}
		df := (residual(rate+h) - residual(rate-h)) / (2 * h)
		if df == 0 || math.IsNaN(df) {
			break
		}
		next := rate - f/df
		if math.IsNaN(next) || math.IsInf(next, 0) {
			break
		}
		rate = next
	}
	if math.Abs(residual(rate)) < 1e-4 {
		return rate, true
	}
	return 0, false
}
