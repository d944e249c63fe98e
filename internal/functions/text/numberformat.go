package text

import (
	"strconv"
	"strings"

	"github.com/xlcore/formulacore/internal/args"
	"github.com/xlcore/formulacore/internal/numeric"
	"github.com/xlcore/formulacore/internal/registry"
	"github.com/xlcore/formulacore/internal/value"
)

func registerNumberFormat(r *registry.Registry) {
	r.RegisterFunc("FIXED", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if !args.Range(a, 1, 3) {
			return arityErr()
		}
		if errv, found := args.FirstError(a); found {
			return errv
		}
		s, ok := fixedImpl(a)
		if !ok {
			return value.Error(value.ErrValue)
		}
		return value.Text(s)
	})
	r.RegisterFunc("DOLLAR", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if !args.Range(a, 1, 2) {
			return arityErr()
		}
		if errv, found := args.FirstError(a); found {
			return errv
		}
		decimals := 2.0
		if len(a) >= 2 {
			n, errv, ok := args.Number(a[1])
			if !ok {
				return errv
			}
			decimals = n
		}
		rebuilt := []value.CellValue{a[0], value.Number(decimals), value.Boolean(false)}
		s, ok := fixedImpl(rebuilt)
		if !ok {
			return value.Error(value.ErrValue)
		}
		if strings.HasPrefix(s, "-") {
			return value.Text("-$" + s[1:])
		}
		return value.Text("$" + s)
	})
	r.RegisterFunc("NUMBERVALUE", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if !args.Range(a, 1, 3) {
			return arityErr()
		}
		s, errv, ok := args.Text(a[0])
		if !ok {
			return errv
		}
		decimalSep := "."
		groupSep := ","
		if len(a) >= 2 {
			if decimalSep, errv, ok = args.Text(a[1]); !ok {
				return errv
			}
		}
		if len(a) == 3 {
			if groupSep, errv, ok = args.Text(a[2]); !ok {
				return errv
			}
		}
		if decimalSep == groupSep {
			return value.Error(value.ErrValue)
		}
		n, ok := parseNumberValue(s, decimalSep, groupSep)
		if !ok {
			return value.Error(value.ErrValue)
		}
		return value.Number(n)
	})
	r.RegisterFunc("BAHTTEXT", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if !args.Exact(a, 1) {
			return arityErr()
		}
		n, errv, ok := args.Number(a[0])
		if !ok {
			return errv
		}
		return value.Text(strconv.FormatFloat(n, 'f', 2, 64) + "บาท")
	})
}

func fixedImpl(a []value.CellValue) (string, bool) {
	if !args.Range(a, 1, 3) {
		return "", false
	}
	n, _, ok := args.Number(a[0])
	if !ok {
		return "", false
	}
	decimals := 2.0
	if len(a) >= 2 {
		if decimals, _, ok = args.Number(a[1]); !ok {
			return "", false
		}
	}
	noCommas := false
	if len(a) == 3 {
		var b bool
		if b, _, ok = args.Bool(a[2]); !ok {
			return "", false
		}
		noCommas = b
	}
	places := int(decimals)
	rounded := numeric.RoundHalfAwayFromZero(n, places)
	var intPart, fracPart string
	if places >= 0 {
		s := strconv.FormatFloat(rounded, 'f', places, 64)
		if places > 0 {
			dot := strings.IndexByte(s, '.')
			intPart, fracPart = s[:dot], s[dot+1:]
		} else {
			intPart = s
		}
	} else {
		intPart = strconv.FormatFloat(rounded, 'f', 0, 64)
	}
	neg := strings.HasPrefix(intPart, "-")
	if neg {
		intPart = intPart[1:]
	}
	if !noCommas {
		intPart = groupThousands(intPart)
	}
	result := intPart
	if fracPart != "" {
		result += "." + fracPart
	}
	if neg {
		result = "-" + result
	}
	return result, true
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var parts []string
	for len(digits) > 3 {
		parts = append([]string{digits[len(digits)-3:]}, parts...)
		digits = digits[:len(digits)-3]
	}
	parts = append([]string{digits}, parts...)
	return strings.Join(parts, ",")
}

func parseNumberValue(s, decimalSep, groupSep string) (float64, bool) {
	s = strings.TrimSpace(s)
	pct := false
	if strings.HasSuffix(s, "%") {
		pct = true
		s = strings.TrimSuffix(s, "%")
	}
	if groupSep != "" {
		s = strings.ReplaceAll(s, groupSep, "")
	}
	if decimalSep != "." {
		s = strings.ReplaceAll(s, decimalSep, ".")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if pct {
		f /= 100
	}
	return f, true
}
