// Package text implements Excel's text-manipulation, number
// formatting, regex, and full/half-width folding function family.
package text

import (
	"strings"
	"unicode/utf8"

	"github.com/xlcore/formulacore/internal/args"
	"github.com/xlcore/formulacore/internal/registry"
	"github.com/xlcore/formulacore/internal/value"
)

func arityErr() value.CellValue { return value.Error(value.ErrValue) }

// Register wires every text function into r.
func Register(r *registry.Registry) {
	registerBasics(r)
	registerSearch(r)
	registerNumberFormat(r)
	registerWidthFolding(r)
	registerRegex(r)
}

func registerBasics(r *registry.Registry) {
	r.RegisterFunc("CHAR", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if !args.Exact(a, 1) {
			return arityErr()
		}
		n, errv, ok := args.Number(a[0])
		if !ok {
			return errv
		}
		code := int(n)
		if code < 1 || code > 255 {
			return value.Error(value.ErrValue)
		}
		return value.Text(string(rune(code)))
	})
	r.RegisterFunc("CODE", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if !args.Exact(a, 1) {
			return arityErr()
		}
		s, errv, ok := args.Text(a[0])
		if !ok {
			return errv
		}
		if s == "" {
			return value.Error(value.ErrValue)
		}
		r0, _ := utf8.DecodeRuneInString(s)
		return value.Number(float64(r0))
	})
	r.RegisterFunc("UNICHAR", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if !args.Exact(a, 1) {
			return arityErr()
		}
		n, errv, ok := args.Number(a[0])
		if !ok {
			return errv
		}
		code := int(n)
		if code < 1 || code > 0x10FFFF || (code >= 0xD800 && code <= 0xDFFF) {
			return value.Error(value.ErrValue)
		}
		return value.Text(string(rune(code)))
	})
	r.RegisterFunc("UNICODE", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if !args.Exact(a, 1) {
			return arityErr()
		}
		s, errv, ok := args.Text(a[0])
		if !ok {
			return errv
		}
		if s == "" {
			return value.Error(value.ErrValue)
		}
		r0, _ := utf8.DecodeRuneInString(s)
		return value.Number(float64(r0))
	})
	r.RegisterFunc("CLEAN", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if !args.Exact(a, 1) {
			return arityErr()
		}
		s, errv, ok := args.Text(a[0])
		if !ok {
			return errv
		}
		var b strings.Builder
		for _, c := range s {
			if c >= 32 {
				b.WriteRune(c)
			}
		}
		return value.Text(b.String())
	})
	r.RegisterFunc("T", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if !args.Exact(a, 1) {
			return arityErr()
		}
		if a[0].IsError() {
			return a[0]
		}
		if a[0].IsText() {
			return a[0]
		}
		return value.Text("")
	})
	r.RegisterFunc("CONCAT", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if errv, found := args.FirstError(a); found {
			return errv
		}
		var b strings.Builder
		for _, v := range a {
			b.WriteString(value.ToText(v))
		}
		return value.Text(b.String())
	})
	r.Register(registryAlias{canonical: "CONCATENATE", delegate: "CONCAT", r: r})
	r.RegisterFunc("TEXTJOIN", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if !args.Range(a, 3, -1) {
			return arityErr()
		}
		if errv, found := args.FirstError(a); found {
			return errv
		}
		delim, errv, ok := args.Text(a[0])
		if !ok {
			return errv
		}
		ignoreEmpty, errv, ok := args.Bool(a[1])
		if !ok {
			return errv
		}
		parts := make([]string, 0, len(a)-2)
		for _, v := range a[2:] {
			s := value.ToText(v)
			if ignoreEmpty && s == "" {
				continue
			}
			parts = append(parts, s)
		}
		return value.Text(strings.Join(parts, delim))
	})
	r.RegisterFunc("EXACT", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if !args.Exact(a, 2) {
			return arityErr()
		}
		if errv, found := args.FirstError(a); found {
			return errv
		}
		s1, errv, ok := args.Text(a[0])
		if !ok {
			return errv
		}
		s2, errv, ok := args.Text(a[1])
		if !ok {
			return errv
		}
		return value.Boolean(s1 == s2)
	})
	r.RegisterFunc("REVERSE", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if !args.Exact(a, 1) {
			return arityErr()
		}
		s, errv, ok := args.Text(a[0])
		if !ok {
			return errv
		}
		units := []rune(s)
		for i, j := 0, len(units)-1; i < j; i, j = i+1, j-1 {
			units[i], units[j] = units[j], units[i]
		}
		return value.Text(string(units))
	})
	r.RegisterFunc("REPT", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if !args.Exact(a, 2) {
			return arityErr()
		}
		s, errv, ok := args.Text(a[0])
		if !ok {
			return errv
		}
		n, errv, ok := args.Number(a[1])
		if !ok {
			return errv
		}
		if n < 0 {
			return value.Error(value.ErrValue)
		}
		return value.Text(strings.Repeat(s, int(n)))
	})
	r.RegisterFunc("UPPER", textTransform(strings.ToUpper))
	r.RegisterFunc("LOWER", textTransform(strings.ToLower))
	r.RegisterFunc("PROPER", textTransform(properCase))
	r.RegisterFunc("TRIM", textTransform(trimExcel))

	r.RegisterFunc("LEN", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if !args.Exact(a, 1) {
			return arityErr()
		}
		s, errv, ok := args.Text(a[0])
		if !ok {
			return errv
		}
		return value.Number(float64(len([]rune(s))))
	})
	r.RegisterFunc("LEFT", sideSlice(true))
	r.RegisterFunc("RIGHT", sideSlice(false))
	r.RegisterFunc("MID", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if !args.Exact(a, 3) {
			return arityErr()
		}
		s, errv, ok := args.Text(a[0])
		if !ok {
			return errv
		}
		start, errv, ok := args.Number(a[1])
		if !ok {
			return errv
		}
		length, errv, ok := args.Number(a[2])
		if !ok {
			return errv
		}
		if start < 1 || length < 0 {
			return value.Error(value.ErrValue)
		}
		units := []rune(s)
		from := int(start) - 1
		if from >= len(units) {
			return value.Text("")
		}
		to := from + int(length)
		if to > len(units) {
			to = len(units)
		}
		return value.Text(string(units[from:to]))
	})
	r.RegisterFunc("SUBSTITUTE", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if !args.Range(a, 3, 4) {
			return arityErr()
		}
		s, errv, ok := args.Text(a[0])
		if !ok {
			return errv
		}
		old, errv, ok := args.Text(a[1])
		if !ok {
			return errv
		}
		newS, errv, ok := args.Text(a[2])
		if !ok {
			return errv
		}
		if len(a) == 3 {
			return value.Text(strings.ReplaceAll(s, old, newS))
		}
		instance, errv, ok := args.Number(a[3])
		if !ok {
			return errv
		}
		if instance < 1 {
			return value.Error(value.ErrValue)
		}
		return value.Text(replaceNth(s, old, newS, int(instance)))
	})
	r.RegisterFunc("REPLACE", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if !args.Exact(a, 4) {
			return arityErr()
		}
		s, errv, ok := args.Text(a[0])
		if !ok {
			return errv
		}
		start, errv, ok := args.Number(a[1])
		if !ok {
			return errv
		}
		length, errv, ok := args.Number(a[2])
		if !ok {
			return errv
		}
		newText, errv, ok := args.Text(a[3])
		if !ok {
			return errv
		}
		if start < 1 || length < 0 {
			return value.Error(value.ErrValue)
		}
		units := []rune(s)
		from := int(start) - 1
		if from > len(units) {
			from = len(units)
		}
		to := from + int(length)
		if to > len(units) {
			to = len(units)
		}
		result := string(units[:from]) + newText
		if to < len(units) {
			result += string(units[to:])
		}
		return value.Text(result)
	})
	r.RegisterFunc("VALUE", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if !args.Exact(a, 1) {
			return arityErr()
		}
		if a[0].IsError() {
			return a[0]
		}
		coerced := value.ToNumber(a[0])
		if coerced.IsError() {
			return value.Error(value.ErrValue)
		}
		return coerced
	})
}

func textTransform(f func(string) string) func(registry.Context, []value.CellValue) value.CellValue {
	return func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if !args.Exact(a, 1) {
			return arityErr()
		}
		s, errv, ok := args.Text(a[0])
		if !ok {
			return errv
		}
		return value.Text(f(s))
	}
}

func properCase(s string) string {
	var b strings.Builder
	prevIsLetter := false
	for _, c := range s {
		isLetter := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
		switch {
		case isLetter && !prevIsLetter:
			b.WriteRune(toUpperASCII(c))
		case isLetter:
			b.WriteRune(toLowerASCII(c))
		default:
			b.WriteRune(c)
		}
		prevIsLetter = isLetter
	}
	return b.String()
}

func toUpperASCII(c rune) rune {
	if c >= 'a' && c <= 'z' {
		return c - 32
	}
	return c
}

func toLowerASCII(c rune) rune {
	if c >= 'A' && c <= 'Z' {
		return c + 32
	}
	return c
}

// trimExcel collapses internal runs of spaces to one and trims the ends,
// matching Excel's TRIM (only the ASCII space, not all whitespace).
func trimExcel(s string) string {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ' ' })
	return strings.Join(fields, " ")
}

func sideSlice(left bool) func(registry.Context, []value.CellValue) value.CellValue {
	return func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if !args.Range(a, 1, 2) {
			return arityErr()
		}
		s, errv, ok := args.Text(a[0])
		if !ok {
			return errv
		}
		n := 1.0
		if len(a) == 2 {
			if n, errv, ok = args.Number(a[1]); !ok {
				return errv
			}
		}
		if n < 0 {
			return value.Error(value.ErrValue)
		}
		units := []rune(s)
		k := int(n)
		if k > len(units) {
			k = len(units)
		}
		if left {
			return value.Text(string(units[:k]))
		}
		return value.Text(string(units[len(units)-k:]))
	}
}

func replaceNth(s, old, newS string, n int) string {
	if old == "" {
		return s
	}
	idx := -1
	rest := s
	offset := 0
	for i := 0; i < n; i++ {
		pos := strings.Index(rest, old)
		if pos == -1 {
			return s
		}
		idx = offset + pos
		offset += pos + len(old)
		rest = rest[pos+len(old):]
	}
	return s[:idx] + newS + s[idx+len(old):]
}

// registryAlias registers one canonical function under a second name,
// used for CONCATENATE (a synonym for CONCAT).
type registryAlias struct {
	canonical string
	delegate  string
	r         *registry.Registry
}

func (a registryAlias) Name() string { return a.canonical }
func (a registryAlias) Execute(ctx registry.Context, args []value.CellValue) value.CellValue {
	fn, ok := a.r.Lookup(a.delegate)
	if !ok {
		return value.Error(value.ErrName)
	}
	return fn.Execute(ctx, args)
}
