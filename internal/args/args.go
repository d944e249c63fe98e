// Package args implements the argument-sequence utilities shared by
// almost every function implementation: arity checks, the error-first
// propagation combinator, numeric/text/bool extraction, and the
// SUMIF/COUNTIF criteria mini-language.
package args

import (
	"strconv"
	"strings"

	"github.com/xlcore/formulacore/internal/value"
)

// Exact reports whether len(a) == n; use in the arity-first position of
// every Execute body: arity failures win over everything else,
// including errors already present in the argument list.
func Exact(a []value.CellValue, n int) bool { return len(a) == n }

// Range reports whether len(a) is within [min, max] inclusive. max < 0
// means unbounded.
func Range(a []value.CellValue, min, max int) bool {
	if len(a) < min {
		return false
	}
	if max >= 0 && len(a) > max {
		return false
	}
	return true
}

// FirstError scans args left-to-right and returns the first Error value
// encountered, or (zero, false) if none. This is the error-propagation
// discipline every function observes; call after the arity check.
func FirstError(a []value.CellValue) (value.CellValue, bool) {
	for _, v := range a {
		if v.IsError() {
			return v, true
		}
	}
	return value.CellValue{}, false
}

// Number coerces v to a float64. When ok is false the returned
// CellValue is directly usable as an Execute return value (the
// propagated Error or #VALUE!).
func Number(v value.CellValue) (float64, value.CellValue, bool) {
	coerced := value.ToNumber(v)
	if coerced.IsError() {
		return 0, coerced, false
	}
	return coerced.AsNumber(), value.CellValue{}, true
}

// Text coerces v to Text per ToText rules but propagates Error as-is
// rather than stringifying it.
func Text(v value.CellValue) (string, value.CellValue, bool) {
	if v.IsError() {
		return "", v, false
	}
	return value.ToText(v), value.CellValue{}, true
}

// Bool coerces v for predicate positions (IF, AND/OR conditions).
func Bool(v value.CellValue) (bool, value.CellValue, bool) {
	if v.IsError() {
		return false, v, false
	}
	b, ok := value.ToBool(v)
	if !ok {
		return false, value.Error(value.ErrValue), false
	}
	return b, value.CellValue{}, true
}

// NumbersIgnoringNonNumeric implements the "skip Text/Boolean/Empty,
// propagate a leading Error" rule used by SUM, SUMSQ, COUNT, MAX, MIN,
// AVERAGE. Booleans and Text that happen to coerce are still
// skipped; only literal Numbers (and Errors) participate.
func NumbersIgnoringNonNumeric(a []value.CellValue) ([]float64, value.CellValue, bool) {
	if errv, found := FirstError(a); found {
		return nil, errv, false
	}
	nums := make([]float64, 0, len(a))
	for _, v := range a {
		if v.IsNumber() {
			nums = append(nums, v.AsNumber())
		}
	}
	return nums, value.CellValue{}, true
}

// Criterion is a parsed SUMIF/COUNTIF-style predicate.
type Criterion struct {
	op      string // "", ">=", "<=", "<>", "=", ">", "<"
	literal value.CellValue
	isText  bool
	pattern string // only set when wildcard matching applies
}

// ParseCriterion parses a criteria argument into a Criterion.
func ParseCriterion(v value.CellValue) Criterion {
	if v.IsNumber() {
		return Criterion{op: "=", literal: v}
	}
	if v.IsBoolean() {
		return Criterion{op: "=", literal: v}
	}
	if !v.IsText() {
		return Criterion{op: "=", literal: v}
	}
	s := v.AsText()
	for _, op := range []string{">=", "<=", "<>", "=", ">", "<"} {
		if strings.HasPrefix(s, op) {
			rest := strings.TrimSpace(s[len(op):])
			return criterionFromExpr(op, rest)
		}
	}
	return criterionFromExpr("=", s)
}

func criterionFromExpr(op, expr string) Criterion {
	if f, err := strconv.ParseFloat(strings.TrimSpace(expr), 64); err == nil {
		return Criterion{op: op, literal: value.Number(f)}
	}
	c := Criterion{op: op, literal: value.Text(expr), isText: true}
	if op == "=" && (strings.ContainsAny(expr, "*?")) {
		c.pattern = expr
	}
	return c
}

// Matches reports whether cell satisfies the criterion.
func (c Criterion) Matches(cell value.CellValue) bool {
	if c.pattern != "" {
		return MatchWildcard(value.ToText(cell), c.pattern)
	}
	switch c.op {
	case "<>":
		return !looseEqual(cell, c.literal)
	case "=", "":
		return looseEqual(cell, c.literal)
	}
	// Ordered comparisons require both sides numeric, mirroring Excel's
	// behavior of treating non-numeric operands as non-matching.
	a, aok := numericOf(cell)
	b, bok := numericOf(c.literal)
	if !aok || !bok {
		return false
	}
	switch c.op {
	case ">=":
		return a >= b
	case "<=":
		return a <= b
	case ">":
		return a > b
	case "<":
		return a < b
	}
	return false
}

func numericOf(v value.CellValue) (float64, bool) {
	if v.IsNumber() {
		return v.AsNumber(), true
	}
	if v.IsBoolean() {
		if v.AsBool() {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

func looseEqual(a, b value.CellValue) bool {
	if a.IsText() && b.IsText() {
		return strings.EqualFold(a.AsText(), b.AsText())
	}
	if a.IsText() {
		if f, ok := numericOf(b); ok {
			if pf, err := strconv.ParseFloat(strings.TrimSpace(a.AsText()), 64); err == nil {
				return pf == f
			}
		}
		return false
	}
	if b.IsText() {
		return looseEqual(b, a)
	}
	af, aok := numericOf(a)
	bf, bok := numericOf(b)
	if aok && bok {
		return af == bf
	}
	return value.Equal(a, b)
}

// MatchWildcard implements Excel's '*' (any run) / '?' (single char)
// wildcard matching, case-insensitive, anchored to the full string.
func MatchWildcard(s, pattern string) bool {
	return matchWildcard([]rune(strings.ToUpper(s)), []rune(strings.ToUpper(pattern)))
}

func matchWildcard(s, p []rune) bool {
	if len(p) == 0 {
		return len(s) == 0
	}
	switch p[0] {
	case '*':
		if matchWildcard(s, p[1:]) {
			return true
		}
		for i := 0; i < len(s); i++ {
			if matchWildcard(s[i+1:], p[1:]) {
				return true
			}
		}
		return false
	case '?':
		if len(s) == 0 {
			return false
		}
		return matchWildcard(s[1:], p[1:])
	default:
		if len(s) == 0 || s[0] != p[0] {
			return false
		}
		return matchWildcard(s[1:], p[1:])
	}
}
