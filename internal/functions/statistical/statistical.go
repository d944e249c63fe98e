// Package statistical implements percentile/quartile interpolation,
// OLS-based forecast/trend/growth/linest/logest, BINOM.DIST.RANGE, and
// the MEDIAN/STDEV/VAR family, with single-sample degenerate cases.
package statistical

import (
	"math"
	"sort"

	"github.com/xlcore/formulacore/internal/args"
	"github.com/xlcore/formulacore/internal/numeric"
	"github.com/xlcore/formulacore/internal/registry"
	"github.com/xlcore/formulacore/internal/value"
)

func arityErr() value.CellValue { return value.Error(value.ErrValue) }

// Register wires every statistical function into r.
func Register(r *registry.Registry) {
	registerOrderStatistics(r)
	registerDispersion(r)
	registerRegression(r)
	registerBinomRange(r)
}

func sortedNumbers(a []value.CellValue) ([]float64, value.CellValue, bool) {
	nums, errv, ok := args.NumbersIgnoringNonNumeric(a)
	if !ok {
		return nil, errv, false
	}
	out := append([]float64(nil), nums...)
	sort.Float64s(out)
	return out, value.CellValue{}, true
}

// percentileInc interpolates Excel's PERCENTILE.INC/QUARTILE.INC method
// over a pre-sorted sample: rank = k*(n-1), linear interpolation between
// the two bracketing order statistics.
func percentileInc(sorted []float64, k float64) (float64, bool) {
	n := len(sorted)
	if n == 0 {
		return 0, false
	}
	if k < 0 || k > 1 {
		return 0, false
	}
	if n == 1 {
		// A single-value sample returns that value for any valid k.
		return sorted[0], true
	}
	rank := k * float64(n-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo], true
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo]), true
}

// percentileExc implements PERCENTILE.EXC/QUARTILE.EXC: rank = k*(n+1),
// valid only when the resulting rank lands within [1, n].
func percentileExc(sorted []float64, k float64) (float64, bool) {
	n := len(sorted)
	if n == 0 {
		return 0, false
	}
	if n == 1 {
		return sorted[0], true
	}
	if k <= 0 || k >= 1 {
		return 0, false
	}
	rank := k * float64(n+1)
	if rank < 1 || rank > float64(n) {
		return 0, false
	}
	lo := int(math.Floor(rank)) - 1
	hi := int(math.Ceil(rank)) - 1
	if lo == hi {
		return sorted[lo], true
	}
	frac := rank - math.Floor(rank)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo]), true
}

func registerOrderStatistics(r *registry.Registry) {
	r.RegisterFunc("PERCENTILE.INC", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if !args.Range(a, 2, -1) {
			return arityErr()
		}
		k, errv, ok := args.Number(a[len(a)-1])
		if !ok {
			return errv
		}
		sorted, errv, ok := sortedNumbers(a[:len(a)-1])
		if !ok {
			return errv
		}
		result, ok := percentileInc(sorted, k)
		if !ok {
			return value.Error(value.ErrNum)
		}
		return value.Number(result)
	})

	r.RegisterFunc("PERCENTILE.EXC", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if !args.Range(a, 2, -1) {
			return arityErr()
		}
		k, errv, ok := args.Number(a[len(a)-1])
		if !ok {
			return errv
		}
		sorted, errv, ok := sortedNumbers(a[:len(a)-1])
		if !ok {
			return errv
		}
		result, ok := percentileExc(sorted, k)
		if !ok {
			return value.Error(value.ErrNum)
		}
		return value.Number(result)
	})

	r.RegisterFunc("QUARTILE.INC", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if !args.Range(a, 2, -1) {
			return arityErr()
		}
		q, errv, ok := args.Number(a[len(a)-1])
		if !ok {
			return errv
		}
		qi := int(q)
		if float64(qi) != q || qi < 0 || qi > 4 {
			return value.Error(value.ErrNum)
		}
		sorted, errv, ok := sortedNumbers(a[:len(a)-1])
		if !ok {
			return errv
		}
		result, ok := percentileInc(sorted, float64(qi)/4)
		if !ok {
			return value.Error(value.ErrNum)
		}
		return value.Number(result)
	})

	r.RegisterFunc("QUARTILE.EXC", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if !args.Range(a, 2, -1) {
			return arityErr()
		}
		q, errv, ok := args.Number(a[len(a)-1])
		if !ok {
			return errv
		}
		qi := int(q)
		if float64(qi) != q || qi < 1 || qi > 3 {
			return value.Error(value.ErrNum)
		}
		sorted, errv, ok := sortedNumbers(a[:len(a)-1])
		if !ok {
			return errv
		}
		result, ok := percentileExc(sorted, float64(qi)/4)
		if !ok {
			return value.Error(value.ErrNum)
		}
		return value.Number(result)
	})

	r.RegisterFunc("MEDIAN", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		sorted, errv, ok := sortedNumbers(a)
		if !ok {
			return errv
		}
		n := len(sorted)
		if n == 0 {
			return value.Error(value.ErrNum)
		}
		if n%2 == 1 {
			return value.Number(sorted[n/2])
		}
		return value.Number((sorted[n/2-1] + sorted[n/2]) / 2)
	})
}

func meanAndSumSquares(nums []float64) (mean float64, ss float64) {
	for _, n := range nums {
		mean += n
	}
	mean /= float64(len(nums))
	for _, n := range nums {
		d := n - mean
		ss += d * d
	}
	return mean, ss
}

func registerDispersion(r *registry.Registry) {
	r.RegisterFunc("VAR.P", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		nums, errv, ok := args.NumbersIgnoringNonNumeric(a)
		if !ok {
			return errv
		}
		if len(nums) == 0 {
			return value.Error(value.ErrDiv0)
		}
		if len(nums) == 1 {
			// Population variance of a single sample is 0.
			return value.Number(0)
		}
		_, ss := meanAndSumSquares(nums)
		return value.Number(ss / float64(len(nums)))
	})

	r.RegisterFunc("VAR.S", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		nums, errv, ok := args.NumbersIgnoringNonNumeric(a)
		if !ok {
			return errv
		}
		if len(nums) < 2 {
			// Sample variance needs n>=2, else #DIV/0!.
			return value.Error(value.ErrDiv0)
		}
		_, ss := meanAndSumSquares(nums)
		return value.Number(ss / float64(len(nums)-1))
	})

	r.RegisterFunc("STDEV.P", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		nums, errv, ok := args.NumbersIgnoringNonNumeric(a)
		if !ok {
			return errv
		}
		if len(nums) == 0 {
			return value.Error(value.ErrDiv0)
		}
		if len(nums) == 1 {
			return value.Number(0)
		}
		_, ss := meanAndSumSquares(nums)
		return value.Number(math.Sqrt(ss / float64(len(nums))))
	})

	r.RegisterFunc("STDEV.S", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		nums, errv, ok := args.NumbersIgnoringNonNumeric(a)
		if !ok {
			return errv
		}
		if len(nums) < 2 {
			return value.Error(value.ErrDiv0)
		}
		_, ss := meanAndSumSquares(nums)
		return value.Number(math.Sqrt(ss / float64(len(nums)-1)))
	})
}

func registerBinomRange(r *registry.Registry) {
	r.RegisterFunc("BINOM.DIST.RANGE", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if !args.Range(a, 3, 4) {
			return arityErr()
		}
		if errv, found := args.FirstError(a); found {
			return errv
		}
		trialsF, errv, ok := args.Number(a[0])
		if !ok {
			return errv
		}
		p, errv, ok := args.Number(a[1])
		if !ok {
			return errv
		}
		k1F, errv, ok := args.Number(a[2])
		if !ok {
			return errv
		}
		trials, k1 := int(trialsF), int(k1F)
		k2 := k1
		if len(a) == 4 {
			k2F, errv, ok := args.Number(a[3])
			if !ok {
				return errv
			}
			k2 = int(k2F)
		}
		if p < 0 || p > 1 || trials < 0 || k1 < 0 || k1 > trials || k2 < k1 || k2 > trials {
			return value.Error(value.ErrNum)
		}
		total := 0.0
		for k := k1; k <= k2; k++ {
			total += binomPMF(trials, k, p)
		}
		return value.Number(total)
	})
}

func binomPMF(n, k int, p float64) float64 {
	logCoeff := numeric.LogGamma(float64(n+1)) - numeric.LogGamma(float64(k+1)) - numeric.LogGamma(float64(n-k+1))
	logP := 0.0
	if k > 0 {
		logP += float64(k) * math.Log(p)
	}
	if n-k > 0 {
		logP += float64(n-k) * math.Log(1-p)
	}
	return math.Exp(logCoeff + logP)
}
