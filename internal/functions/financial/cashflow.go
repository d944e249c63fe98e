package financial

import (
	"math"

	"github.com/xlcore/formulacore/internal/args"
	"github.com/xlcore/formulacore/internal/registry"
	"github.com/xlcore/formulacore/internal/value"
)

func registerCashFlowSeries(r *registry.Registry) {
	r.RegisterFunc("NPV", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if !args.Range(a, 2, -1) {
			return arityErr()
		}
		if errv, found := args.FirstError(a); found {
			return errv
		}
		rate, errv, ok := args.Number(a[0])
		if !ok {
			return errv
		}
		total := 0.0
		for i, v := range a[1:] {
			cf, errv, ok := args.Number(v)
			if !ok {
				return errv
			}
			total += cf / math.Pow(1+rate, float64(i+1))
		}
		return value.Number(total)
	})

	r.RegisterFunc("IRR", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if !args.Range(a, 2, -1) {
			return arityErr()
		}
		if errv, found := args.FirstError(a); found {
			return errv
		}
		cashflows := make([]float64, len(a))
		hasPos, hasNeg := false, false
		for i, v := range a {
			cf, errv, ok := args.Number(v)
			if !ok {
				return errv
			}
			cashflows[i] = cf
			if cf > 0 {
				hasPos = true
			}
			if cf < 0 {
				hasNeg = true
			}
		}
		if !hasPos || !hasNeg {
			return value.Error(value.ErrNum)
		}
		rate, ok := solveIRR(cashflows)
		if !ok {
			return value.Error(value.ErrNum)
		}
		return value.Number(rate)
	})

	r.RegisterFunc("IPMT", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		return amortizationSplit(a, true)
	})
	r.RegisterFunc("PPMT", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		return amortizationSplit(a, false)
	})
}

func npvAt(cashflows []float64, rate float64) float64 {
	total := cashflows[0]
	for i := 1; i < len(cashflows); i++ {
		total += cashflows[i] / math.Pow(1+rate, float64(i))
	}
	return total
}

// solveIRR brackets a root via bisection on [-0.999, 10.0], then
// refines with Newton-Raphson (max 50 iterations).
func solveIRR(cashflows []float64) (float64, bool) {
	lo, hi := -0.999, 10.0
	fLo, fHi := npvAt(cashflows, lo), npvAt(cashflows, hi)
	if math.IsNaN(fLo) || math.IsNaN(fHi) || fLo*fHi > 0 {
		return 0, false
	}
	var mid float64
	for i := 0; i < 50; i++ {
		mid = (lo + hi) / 2
		fMid := npvAt(cashflows, mid)
		if math.Abs(fMid) < 1e-7 {
			break
		}
		if fLo*fMid < 0 {
			hi, fHi = mid, fMid
		} else {
			lo, fLo = mid, fMid
		}
	}
	// Newton refinement from the bisection result.
	rate := mid
	const h = 1e-6
	for i := 0; i < 50; i++ {
		f := npvAt(cashflows, rate)
		if math.Abs(f) < 1e-9 {
			break
		}
		df := (npvAt(cashflows, rate+h) - npvAt(cashflows, rate-h)) / (2 * h)
		if df == 0 || math.IsNaN(df) {
			break
		}
		next := rate - f/df
		if math.IsNaN(next) || math.IsInf(next, 0) {
			break
		}
		rate = next
	}
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return 0, false
	}
	return rate, true
}

// amortizationSplit computes IPMT or PPMT from PMT via the standard
// amortization recursion: the remaining balance after k
// periods determines period k+1's interest, and PPMT is the remainder
// of PMT after subtracting interest.
func amortizationSplit(a []value.CellValue, wantInterest bool) value.CellValue {
	if !args.Range(a, 4, 6) {
		return arityErr()
	}
	if errv, found := args.FirstError(a); found {
		return errv
	}
	rate, errv, ok := args.Number(a[0])
	if !ok {
		return errv
	}
	per, errv, ok := args.Number(a[1])
	if !ok {
		return errv
	}
	nper, errv, ok := args.Number(a[2])
	if !ok {
		return errv
	}
	pv, errv, ok := args.Number(a[3])
	if !ok {
		return errv
	}
	fv, typ := 0.0, 0.0
	if len(a) >= 5 {
		if fv, errv, ok = args.Number(a[4]); !ok {
			return errv
		}
	}
	if len(a) == 6 {
		if typ, errv, ok = args.Number(a[5]); !ok {
			return errv
		}
	}
	if nper <= 0 || per < 1 || per > nper || !validType(typ) {
		return value.Error(value.ErrNum)
	}
	pmt := pmtOf(rate, nper, pv, fv, typ)

	if wantInterest && per == 1 && typ == 1 {
		return value.Number(0)
	}

	balance := pv
	var interest float64
	for p := 1.0; p <= per; p++ {
		if typ == 1 && p == 1 {
			interest = 0
		} else {
			interest = -balance * rate
		}
		principal := pmt - interest
		balance += principal
	}
	if wantInterest {
		return value.Number(interest)
	}
	return value.Number(pmt - interest)
}
