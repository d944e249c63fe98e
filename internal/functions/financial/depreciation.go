package financial

import (
	"math"

	"github.com/xlcore/formulacore/internal/args"
	"github.com/xlcore/formulacore/internal/numeric"
	"github.com/xlcore/formulacore/internal/registry"
	"github.com/xlcore/formulacore/internal/value"
)

func registerDepreciation(r *registry.Registry) {
	r.RegisterFunc("SLN", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if !args.Exact(a, 3) {
			return arityErr()
		}
		if errv, found := args.FirstError(a); found {
			return errv
		}
		cost, errv, ok := args.Number(a[0])
		if !ok {
			return errv
		}
		salvage, errv, ok := args.Number(a[1])
		if !ok {
			return errv
		}
		life, errv, ok := args.Number(a[2])
		if !ok {
			return errv
		}
		if life <= 0 {
			return value.Error(value.ErrNum)
		}
		return value.Number((cost - salvage) / life)
	})

	r.RegisterFunc("SYD", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if !args.Exact(a, 4) {
			return arityErr()
		}
		if errv, found := args.FirstError(a); found {
			return errv
		}
		cost, errv, ok := args.Number(a[0])
		if !ok {
			return errv
		}
		salvage, errv, ok := args.Number(a[1])
		if !ok {
			return errv
		}
		life, errv, ok := args.Number(a[2])
		if !ok {
			return errv
		}
		per, errv, ok := args.Number(a[3])
		if !ok {
			return errv
		}
		if life <= 0 || per < 1 || per > life {
			return value.Error(value.ErrNum)
		}
		return value.Number((cost - salvage) * (life - per + 1) * 2 / (life * (life + 1)))
	})

	r.RegisterFunc("DB", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if !args.Range(a, 4, 5) {
			return arityErr()
		}
		if errv, found := args.FirstError(a); found {
			return errv
		}
		cost, errv, ok := args.Number(a[0])
		if !ok {
			return errv
		}
		salvage, errv, ok := args.Number(a[1])
		if !ok {
			return errv
		}
		life, errv, ok := args.Number(a[2])
		if !ok {
			return errv
		}
		per, errv, ok := args.Number(a[3])
		if !ok {
			return errv
		}
		month := 12.0
		if len(a) == 5 {
			if month, errv, ok = args.Number(a[4]); !ok {
				return errv
			}
		}
		if cost <= 0 || life <= 0 || salvage < 0 || salvage > cost || per < 1 || per > life+1 || month < 1 || month > 12 {
			return value.Error(value.ErrNum)
		}
		res, ok := decliningBalance(cost, salvage, life, per, month)
		if !ok {
			return value.Error(value.ErrNum)
		}
		return value.Number(res)
	})

	r.RegisterFunc("DDB", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if !args.Range(a, 4, 5) {
			return arityErr()
		}
		if errv, found := args.FirstError(a); found {
			return errv
		}
		cost, errv, ok := args.Number(a[0])
		if !ok {
			return errv
		}
		salvage, errv, ok := args.Number(a[1])
		if !ok {
			return errv
		}
		life, errv, ok := args.Number(a[2])
		if !ok {
			return errv
		}
		per, errv, ok := args.Number(a[3])
		if !ok {
			return errv
		}
		factor := 2.0
		if len(a) == 5 {
			if factor, errv, ok = args.Number(a[4]); !ok {
				return errv
			}
		}
		if cost < 0 || salvage < 0 || life <= 0 || per < 1 || per > life || factor <= 0 {
			return value.Error(value.ErrNum)
		}
		return value.Number(doubleDeclining(cost, salvage, life, per, factor))
	})
}

// decliningBalance implements DB's fixed-rate declining-balance method.
// The rate is rounded to three decimals per Excel's documented
// specification; the optional month parameter prorates the
// first (and correspondingly the last) partial year.
func decliningBalance(cost, salvage, life, per, month float64) (float64, bool) {
	if cost == 0 {
		return 0, true
	}
	rate := numeric.RoundHalfAwayFromZero(1-math.Pow(salvage/cost, 1/life), 3)
	firstYearDep := cost * rate * month / 12
	if per == 1 {
		return firstYearDep, true
	}
	depreciated := cost - firstYearDep
	lastPeriod := life + 1
	dep := firstYearDep
	for p := 2.0; p <= per; p++ {
		if p == lastPeriod {
			dep = depreciated * rate * (12 - month) / 12
		} else {
			dep = depreciated * rate
		}
		depreciated -= dep
	}
	return dep, true
}

// doubleDeclining implements DDB, never depreciating below salvage.
func doubleDeclining(cost, salvage, life, per, factor float64) float64 {
	bookValue := cost
	var dep float64
	for p := 1.0; p <= per; p++ {
		dep = bookValue * (factor / life)
		if bookValue-dep < salvage {
			dep = bookValue - salvage
		}
		if dep < 0 {
			dep = 0
		}
		bookValue -= dep
	}
	return dep
}
