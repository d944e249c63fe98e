package mathtrig

import (
	"github.com/xlcore/formulacore/internal/args"
	"github.com/xlcore/formulacore/internal/registry"
	"github.com/xlcore/formulacore/internal/value"
)

func registerAggregates(r *registry.Registry) {
	r.RegisterFunc("SUM", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		nums, errv, ok := args.NumbersIgnoringNonNumeric(a)
		if !ok {
			return errv
		}
		total := 0.0
		for _, n := range nums {
			total += n
		}
		return value.Number(total)
	})

	r.RegisterFunc("SUMSQ", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		nums, errv, ok := args.NumbersIgnoringNonNumeric(a)
		if !ok {
			return errv
		}
		total := 0.0
		for _, n := range nums {
			total += n * n
		}
		return value.Number(total)
	})

	r.RegisterFunc("SUMPRODUCT", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if errv, found := args.FirstError(a); found {
			return errv
		}
		if len(a) == 0 {
			return arityErr()
		}
		total := 1.0
		for _, v := range a {
			n, errv, ok := args.Number(v)
			if !ok {
				return errv
			}
			total *= n
		}
		if len(a) == 1 {
			// Single flattened operand: behaves as a plain sum of the
			// (already flattened) sequence rather than a product.
			total = 0
			nums, errv, ok := args.NumbersIgnoringNonNumeric(a)
			if !ok {
				return errv
			}
			for _, n := range nums {
				total += n
			}
		}
		return value.Number(total)
	})

	r.RegisterFunc("AVERAGE", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		nums, errv, ok := args.NumbersIgnoringNonNumeric(a)
		if !ok {
			return errv
		}
		if len(nums) == 0 {
			return value.Error(value.ErrDiv0)
		}
		total := 0.0
		for _, n := range nums {
			total += n
		}
		return value.Number(total / float64(len(nums)))
	})

	r.RegisterFunc("COUNT", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		nums, errv, ok := args.NumbersIgnoringNonNumeric(a)
		if !ok {
			return errv
		}
		return value.Number(float64(len(nums)))
	})

	r.RegisterFunc("COUNTA", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if errv, found := args.FirstError(a); found {
			return errv
		}
		n := 0
		for _, v := range a {
			if !v.IsEmpty() {
				n++
			}
		}
		return value.Number(float64(n))
	})

	r.RegisterFunc("COUNTBLANK", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		n := 0
		for _, v := range a {
			if v.IsEmpty() || (v.IsText() && v.AsText() == "") {
				n++
			}
		}
		return value.Number(float64(n))
	})

	r.RegisterFunc("MAX", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		nums, errv, ok := args.NumbersIgnoringNonNumeric(a)
		if !ok {
			return errv
		}
		if len(nums) == 0 {
			return value.Number(0)
		}
		m := nums[0]
		for _, n := range nums[1:] {
			if n > m {
				m = n
			}
		}
		return value.Number(m)
	})

	r.RegisterFunc("MIN", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		nums, errv, ok := args.NumbersIgnoringNonNumeric(a)
		if !ok {
			return errv
		}
		if len(nums) == 0 {
			return value.Number(0)
		}
		m := nums[0]
		for _, n := range nums[1:] {
			if n < m {
				m = n
			}
		}
		return value.Number(m)
	})

	registerConditionalAggregates(r)
}

// registerConditionalAggregates wires SUMIF/COUNTIF/AVERAGEIF and their
// -IFS variants, sharing the criteria mini-language from internal/args.
// The flattened argument grammar is: SUMIF(range..., criterion[, sumRange...])
// where range and (optional) sumRange are the same length; since args
// arrive pre-flattened, the split point is passed implicitly by
// pairing range[i] with sumRange[i] positionally.
func registerConditionalAggregates(r *registry.Registry) {
	r.RegisterFunc("COUNTIF", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if !args.Range(a, 2, -1) {
			return arityErr()
		}
		criterion := args.ParseCriterion(a[len(a)-1])
		rng := a[:len(a)-1]
		n := 0
		for _, v := range rng {
			if criterion.Matches(v) {
				n++
			}
		}
		return value.Number(float64(n))
	})

	r.RegisterFunc("SUMIF", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		rng, criterion, sumRng, ok := splitIfArgs(a)
		if !ok {
			return arityErr()
		}
		total := 0.0
		for i, v := range rng {
			if criterion.Matches(v) {
				src := v
				if sumRng != nil {
					src = sumRng[i]
				}
				if src.IsNumber() {
					total += src.AsNumber()
				}
			}
		}
		return value.Number(total)
	})

	r.RegisterFunc("AVERAGEIF", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		rng, criterion, avgRng, ok := splitIfArgs(a)
		if !ok {
			return arityErr()
		}
		total, n := 0.0, 0
		for i, v := range rng {
			if criterion.Matches(v) {
				src := v
				if avgRng != nil {
					src = avgRng[i]
				}
				if src.IsNumber() {
					total += src.AsNumber()
					n++
				}
			}
		}
		if n == 0 {
			return value.Error(value.ErrDiv0)
		}
		return value.Number(total / float64(n))
	})

	r.RegisterFunc("COUNTIFS", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		pairs, ok := splitIfsArgs(a)
		if !ok {
			return arityErr()
		}
		n := 0
		for i := range pairs[0].rng {
			if matchesAllPairs(pairs, i) {
				n++
			}
		}
		return value.Number(float64(n))
	})

	// SUMIFS reads an odd-length sequence of 3 or more as
	// [sum_value, range_value, criterion, range_value, criterion, ...],
	// the same one-row convention COUNTIFS uses for its pairs.
	r.RegisterFunc("SUMIFS", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if len(a) < 3 || len(a)%2 != 1 {
			return arityErr()
		}
		if errv, found := args.FirstError(a); found {
			return errv
		}
		pairs, ok := splitIfsArgs(a[1:])
		if !ok {
			return arityErr()
		}
		total := 0.0
		for i := range pairs[0].rng {
			if matchesAllPairs(pairs, i) && a[0].IsNumber() {
				total += a[0].AsNumber()
			}
		}
		return value.Number(total)
	})
}

type ifsPair struct {
	rng       []value.CellValue
	criterion args.Criterion
}

func splitIfsArgs(a []value.CellValue) ([]ifsPair, bool) {
	if len(a) < 2 || len(a)%2 != 0 {
		return nil, false
	}
	var pairs []ifsPair
	for i := 0; i < len(a); i += 2 {
		pairs = append(pairs, ifsPair{rng: []value.CellValue{a[i]}, criterion: args.ParseCriterion(a[i+1])})
	}
	return pairs, true
}

func matchesAllPairs(pairs []ifsPair, i int) bool {
	for _, p := range pairs {
		if i >= len(p.rng) || !p.criterion.Matches(p.rng[i]) {
			return false
		}
	}
	return true
}

// splitIfArgs recovers the (range, criterion, sum_range) split from a
// flattened SUMIF/AVERAGEIF argument sequence. Since arguments arrive
// flattened with no shape hint, an even-length sequence is
// read as [range..., criterion] (sum over the range itself) and an
// odd-length sequence of 3 or more is read as [range..., criterion,
// sum_range...] with range and sum_range the same length N=(len-1)/2.
func splitIfArgs(a []value.CellValue) (rng []value.CellValue, criterion args.Criterion, target []value.CellValue, ok bool) {
	if len(a) < 2 {
		return nil, args.Criterion{}, nil, false
	}
	if len(a)%2 == 0 {
		return a[:len(a)-1], args.ParseCriterion(a[len(a)-1]), nil, true
	}
	n := (len(a) - 1) / 2
	return a[:n], args.ParseCriterion(a[n]), a[n+1:], true
}
