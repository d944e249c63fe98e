package text

import (
	"strings"

	"github.com/xlcore/formulacore/internal/args"
	"github.com/xlcore/formulacore/internal/registry"
	"github.com/xlcore/formulacore/internal/value"
)

func registerSearch(r *registry.Registry) {
	find := func(name string, caseSensitive bool) func(registry.Context, []value.CellValue) value.CellValue {
		return func(ctx registry.Context, a []value.CellValue) value.CellValue {
			if !args.Range(a, 2, 3) {
				return arityErr()
			}
			needle, errv, ok := args.Text(a[0])
			if !ok {
				return errv
			}
			haystack, errv, ok := args.Text(a[1])
			if !ok {
				return errv
			}
			start := 1.0
			if len(a) == 3 {
				if start, errv, ok = args.Number(a[2]); !ok {
					return errv
				}
			}
			if start < 1 {
				return value.Error(value.ErrValue)
			}
			units := []rune(haystack)
			from := int(start) - 1
			if from > len(units) {
				return value.Error(value.ErrValue)
			}
			var idx int
			if caseSensitive {
				idx = indexRunes(units[from:], []rune(needle))
			} else {
				idx = indexRunesFold(units[from:], []rune(needle))
			}
			if idx == -1 {
				return value.Error(value.ErrValue)
			}
			return value.Number(float64(from + idx + 1))
		}
	}
	r.RegisterFunc("FIND", find("FIND", true))
	r.RegisterFunc("SEARCH", find("SEARCH", false))
}

func indexRunes(haystack, needle []rune) int {
	if len(needle) == 0 {
		return 0
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if runesEqual(haystack[i:i+len(needle)], needle) {
			return i
		}
	}
	return -1
}

func indexRunesFold(haystack, needle []rune) int {
	if len(needle) == 0 {
		return 0
	}
	upperNeedle := []rune(strings.ToUpper(string(needle)))
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if runesEqual([]rune(strings.ToUpper(string(haystack[i:i+len(needle)]))), upperNeedle) {
			return i
		}
	}
	return -1
}

func runesEqual(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
