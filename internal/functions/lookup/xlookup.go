package lookup

import (
	"github.com/xlcore/formulacore/internal/args"
	"github.com/xlcore/formulacore/internal/registry"
	"github.com/xlcore/formulacore/internal/value"
)

func isValidMatchMode(f float64) bool { return f == -1 || f == 0 || f == 1 || f == 2 }
func isValidSearchMode(f float64) bool {
	return f == 1 || f == -1 || f == 2 || f == -2
}

// splitXLookupTrailing peels the optional (if_not_found, match_mode,
// search_mode) suffix off rest, preferring the longest suffix whose
// values are structurally valid for their grammar slot. The
// remaining prefix is returned for the caller to split 50/50 between
// lookup_array and return_array.
func splitXLookupTrailing(rest []value.CellValue) (body []value.CellValue, ifNotFound value.CellValue, hasIfNotFound bool, matchMode, searchMode float64) {
	matchMode, searchMode = 0, 1
	n := len(rest)
	if n >= 3 {
		sm, smOK := rest[n-1].NumberOrValueError()
		mm, mmOK := rest[n-2].NumberOrValueError()
		if smOK && mmOK && isValidSearchMode(sm) && isValidMatchMode(mm) && (n-3)%2 == 0 {
			return rest[:n-3], rest[n-3], true, mm, sm
		}
	}
	if n >= 2 {
		mm, mmOK := rest[n-1].NumberOrValueError()
		if mmOK && isValidMatchMode(mm) && (n-2)%2 == 0 {
			return rest[:n-2], rest[n-2], true, mm, searchMode
		}
	}
	if n >= 1 && (n-1)%2 == 0 {
		return rest[:n-1], rest[n-1], true, matchMode, searchMode
	}
	return rest, value.CellValue{}, false, matchMode, searchMode
}

func registerXLookup(r *registry.Registry) {
	r.RegisterFunc("XLOOKUP", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if !args.Range(a, 3, -1) {
			return arityErr()
		}
		lookup := a[0]
		body, ifNotFound, hasIfNotFound, matchMode, searchMode := splitXLookupTrailing(a[1:])
		if len(body)%2 != 0 || len(body) == 0 {
			return value.Error(value.ErrValue)
		}
		// if_not_found may legitimately be an error value (the caller's
		// substitute result), so the error scan covers only the lookup
		// value and the two arrays.
		if lookup.IsError() {
			return lookup
		}
		if errv, found := args.FirstError(body); found {
			return errv
		}
		half := len(body) / 2
		lookupArray := body[:half]
		returnArray := body[half:]
		idx, ok := xMatchIndex(lookup, lookupArray, int(matchMode), int(searchMode))
		if !ok {
			if hasIfNotFound {
				return ifNotFound
			}
			return value.Error(value.ErrNA)
		}
		return returnArray[idx]
	})
}

func registerXMatchFn(r *registry.Registry) {
	r.RegisterFunc("XMATCH", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if !args.Range(a, 2, -1) {
			return arityErr()
		}
		if errv, found := args.FirstError(a); found {
			return errv
		}
		lookup := a[0]
		rest := a[1:]
		matchMode, searchMode := 0.0, 1.0
		n := len(rest)
		if n >= 2 {
			if sm, ok := rest[n-1].NumberOrValueError(); ok {
				mm, mmOK := rest[n-2].NumberOrValueError()
				if sm == 0 && mmOK && isValidMatchMode(mm) && n > 2 {
					// An explicit search_mode of 0 is rejected, not
					// treated as data.
					return value.Error(value.ErrValue)
				}
				if isValidSearchMode(sm) && mmOK && isValidMatchMode(mm) {
					matchMode, searchMode = mm, sm
					rest = rest[:n-2]
				}
			}
		}
		if len(rest) == n { // no (match_mode, search_mode) pair peeled above
			if n >= 1 {
				if mm, ok := rest[n-1].NumberOrValueError(); ok && isValidMatchMode(mm) {
					matchMode = mm
					rest = rest[:n-1]
				}
			}
		}
		idx, ok := xMatchIndex(lookup, rest, int(matchMode), int(searchMode))
		if !ok {
			return value.Error(value.ErrNA)
		}
		return value.Number(float64(idx + 1))
	})
}

// xMatchIndex implements the shared XLOOKUP/XMATCH mode matrix:
// match_mode selects exact / exact-or-next-smaller /
// exact-or-next-larger / wildcard; search_mode selects scan direction,
// with binary search for sorted arrays when |search_mode| == 2.
func xMatchIndex(lookup value.CellValue, array []value.CellValue, matchMode, searchMode int) (int, bool) {
	if searchMode == 2 || searchMode == -2 {
		return binarySearchMatch(lookup, array, matchMode, searchMode == -2)
	}
	indices := make([]int, len(array))
	for i := range array {
		indices[i] = i
	}
	if searchMode == -1 {
		for i, j := 0, len(indices)-1; i < j; i, j = i+1, j-1 {
			indices[i], indices[j] = indices[j], indices[i]
		}
	}
	var bestIdx int = -1
	var bestVal value.CellValue
	haveBest := false
	for _, i := range indices {
		v := array[i]
		switch matchMode {
		case 0:
			if value.Equal(lookup, v) {
				return i, true
			}
		case 2:
			if v.IsText() {
				if lookup.IsText() && args.MatchWildcard(v.AsText(), lookup.AsText()) {
					return i, true
				}
			}
		case 1:
			if value.Equal(lookup, v) {
				return i, true
			}
			if greaterOrEqualOrdered(v, lookup) {
				if !haveBest || lessOrEqualOrdered(v, bestVal) {
					bestIdx, bestVal, haveBest = i, v, true
				}
			}
		case -1:
			if value.Equal(lookup, v) {
				return i, true
			}
			if lessOrEqualOrdered(v, lookup) {
				if !haveBest || greaterOrEqualOrdered(v, bestVal) {
					bestIdx, bestVal, haveBest = i, v, true
				}
			}
		}
	}
	if haveBest {
		return bestIdx, true
	}
	return 0, false
}

func binarySearchMatch(lookup value.CellValue, array []value.CellValue, matchMode int, descending bool) (int, bool) {
	lo, hi := 0, len(array)-1
	bestIdx := -1
	for lo <= hi {
		mid := (lo + hi) / 2
		lf, lok := numericKey(lookup)
		vf, vok := numericKey(array[mid])
		if !lok || !vok {
			return 0, false
		}
		if vf == lf {
			return mid, true
		}
		if (vf < lf && matchMode == -1) || (vf > lf && matchMode == 1) {
			bestIdx = mid
		}
		if (vf < lf) != descending {
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	if matchMode == -1 || matchMode == 1 {
		if bestIdx >= 0 {
			return bestIdx, true
		}
	}
	return 0, false
}
