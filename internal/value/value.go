// Package value implements the CellValue tagged union and its coercion
// lattice along with the seven-kind error taxonomy.
package value

import (
	"math"
	"strconv"
	"strings"
)

// Kind tags which variant a CellValue holds.
type Kind int

const (
	KindEmpty Kind = iota
	KindNumber
	KindText
	KindBoolean
	KindError
)

// ErrorKind is one of the seven canonical Excel error spellings. The
// string form is the wire form; never reformat it.
type ErrorKind string

const (
	ErrDiv0  ErrorKind = "#DIV/0!"
	ErrValue ErrorKind = "#VALUE!"
	ErrRef   ErrorKind = "#REF!"
	ErrName  ErrorKind = "#NAME?"
	ErrNum   ErrorKind = "#NUM!"
	ErrNA    ErrorKind = "#N/A"
	ErrNull  ErrorKind = "#NULL!"
)

// CellValue is the value type passed between every function implementation.
// Exactly one of the fields is meaningful, selected by Kind.
type CellValue struct {
	kind Kind
	num  float64
	text string
	b    bool
	err  ErrorKind
}

// Empty is the absent-cell value.
var Empty = CellValue{kind: KindEmpty}

// Number constructs a Number variant. A non-finite input is mapped to
// #NUM!; a Number always carries a finite value.
func Number(f float64) CellValue {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Error(ErrNum)
	}
	return CellValue{kind: KindNumber, num: f}
}

// Text constructs a Text variant. Empty text is distinct from Empty.
func Text(s string) CellValue {
	return CellValue{kind: KindText, text: s}
}

// Boolean constructs a Boolean variant.
func Boolean(b bool) CellValue {
	return CellValue{kind: KindBoolean, b: b}
}

// Error constructs an Error variant carrying the given canonical kind.
func Error(kind ErrorKind) CellValue {
	return CellValue{kind: KindError, err: kind}
}

func (v CellValue) Kind() Kind { return v.kind }

func (v CellValue) IsEmpty() bool   { return v.kind == KindEmpty }
func (v CellValue) IsNumber() bool  { return v.kind == KindNumber }
func (v CellValue) IsText() bool    { return v.kind == KindText }
func (v CellValue) IsBoolean() bool { return v.kind == KindBoolean }
func (v CellValue) IsError() bool   { return v.kind == KindError }

// ErrorKind returns the error kind and true if v is an Error.
func (v CellValue) ErrorKind() (ErrorKind, bool) {
	if v.kind == KindError {
		return v.err, true
	}
	return "", false
}

// AsNumber returns the raw float64 payload; callers must check IsNumber first.
func (v CellValue) AsNumber() float64 { return v.num }

// AsText returns the raw string payload; callers must check IsText first.
func (v CellValue) AsText() string { return v.text }

// AsBool returns the raw bool payload; callers must check IsBoolean first.
func (v CellValue) AsBool() bool { return v.b }

// NumberOrValueError returns (f, true) for a Number, otherwise
// (0, false); the caller constructs #VALUE! itself to keep call sites
// explicit about which error they're producing.
func (v CellValue) NumberOrValueError() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.num, true
}

// Equal implements structural equality. Text comparison is ASCII
// case-insensitive (the MATCH/COUNTIF/XLOOKUP default); use EqualBinary
// for EXACT's case-sensitive semantics.
func Equal(a, b CellValue) bool {
	if a.kind != b.kind {
		// Excel treats Boolean/Number as distinct kinds for equality
		// purposes in all functions this core implements.
		return false
	}
	switch a.kind {
	case KindEmpty:
		return true
	case KindNumber:
		return a.num == b.num
	case KindText:
		return strings.EqualFold(a.text, b.text)
	case KindBoolean:
		return a.b == b.b
	case KindError:
		return a.err == b.err
	}
	return false
}

// EqualBinary is case-sensitive text equality (EXACT).
func EqualBinary(a, b CellValue) bool {
	if a.kind != b.kind {
		return false
	}
	if a.kind == KindText {
		return a.text == b.text
	}
	return Equal(a, b)
}

// ToNumber applies the numeric coercion ladder:
//  1. Error propagates as-is (the returned CellValue is the input error;
//     callers should check IsError before calling this).
//  2. Number returns as-is.
//  3. Boolean -> 1.0/0.0.
//  4. Text -> strict decimal parse, #VALUE! on failure.
//  5. Empty -> 0.0.
func ToNumber(v CellValue) CellValue {
	switch v.kind {
	case KindError:
		return v
	case KindNumber:
		return v
	case KindBoolean:
		if v.b {
			return Number(1)
		}
		return Number(0)
	case KindText:
		f, ok := parseStrictDecimal(v.text)
		if !ok {
			return Error(ErrValue)
		}
		return Number(f)
	case KindEmpty:
		return Number(0)
	}
	return Error(ErrValue)
}

// parseStrictDecimal implements the "optional sign, optional leading
// zeros, optional single '.'" parse, stripping surrounding
// whitespace first. It intentionally rejects exponent notation and
// thousands separators; those are NUMBERVALUE's job, not the generic
// coercion ladder's.
func parseStrictDecimal(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	i := 0
	if s[i] == '+' || s[i] == '-' {
		i++
	}
	sawDigit := false
	sawDot := false
	for ; i < len(s); i++ {
		c := s[i]
		if c >= '0' && c <= '9' {
			sawDigit = true
			continue
		}
		if c == '.' && !sawDot {
			sawDot = true
			continue
		}
		break
	}
	if i != len(s) || !sawDigit {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// ToText renders a CellValue for text contexts: Number with round-trip %g-style
// formatting without exponent for magnitudes in [1e-4, 1e15), Boolean as
// TRUE/FALSE, Empty as "", Error as its canonical spelling.
func ToText(v CellValue) string {
	switch v.kind {
	case KindEmpty:
		return ""
	case KindNumber:
		return FormatNumber(v.num)
	case KindText:
		return v.text
	case KindBoolean:
		if v.b {
			return "TRUE"
		}
		return "FALSE"
	case KindError:
		return string(v.err)
	}
	return ""
}

// FormatNumber renders a float the way CONCAT and TEXTJOIN need it:
// round-trip precision, no exponent for magnitudes in [1e-4, 1e15).
func FormatNumber(f float64) string {
	if f == 0 {
		return "0"
	}
	mag := math.Abs(f)
	if mag >= 1e-4 && mag < 1e15 {
		s := strconv.FormatFloat(f, 'f', -1, 64)
		return s
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// ToBool coerces a CellValue to a boolean for predicate-style functions
// (IF-family condition arguments, TEXTJOIN's ignore_empty, etc.).
// Numbers are truthy iff nonzero; Text must spell TRUE/FALSE
// case-insensitively; Empty is false.
func ToBool(v CellValue) (bool, bool) {
	switch v.kind {
	case KindBoolean:
		return v.b, true
	case KindNumber:
		return v.num != 0, true
	case KindEmpty:
		return false, true
	case KindText:
		switch strings.ToUpper(v.text) {
		case "TRUE":
			return true, true
		case "FALSE":
			return false, true
		}
		return false, false
	}
	return false, false
}
