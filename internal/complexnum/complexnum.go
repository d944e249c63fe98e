// Package complexnum implements Excel's textual complex-number
// convention ("a+bi"/"a+bj") layered over Go's builtin complex128.
package complexnum

import (
	"math"
	"math/cmplx"
	"strconv"
	"strings"
)

// Parse reads a complex literal in one of the forms "a", "bi", "bj",
// "i", "-i", "a+bi", "a-bi" (and the "j" variants). A value's suffix
// must be consistent; the caller never mixes i and j within one
// parsed number. ok is false on any parse failure.
func Parse(s string) (complex128, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	suffix := byte(0)
	if strings.HasSuffix(s, "i") {
		suffix = 'i'
	} else if strings.HasSuffix(s, "j") {
		suffix = 'j'
	}
	if suffix == 0 {
		// Pure real number.
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return complex(f, 0), true
	}
	body := s[:len(s)-1]
	// Find the split between real and imaginary parts: the last '+'
	// or '-' that is not the leading sign and not part of an exponent.
	splitAt := -1
	for i := len(body) - 1; i > 0; i-- {
		if body[i] == '+' || body[i] == '-' {
			prev := body[i-1]
			if prev == 'e' || prev == 'E' {
				continue
			}
			splitAt = i
			break
		}
	}
	if splitAt == -1 {
		// Pure imaginary: body is the imaginary coefficient (may be
		// empty or "-" meaning magnitude 1).
		imag, ok := parseImagCoefficient(body)
		if !ok {
			return 0, false
		}
		return complex(0, imag), true
	}
	realPart := body[:splitAt]
	imagPart := body[splitAt:] // retains sign
	rf, err := strconv.ParseFloat(realPart, 64)
	if err != nil {
		return 0, false
	}
	imag, ok := parseImagCoefficient(imagPart)
	if !ok {
		return 0, false
	}
	return complex(rf, imag), true
}

func parseImagCoefficient(s string) (float64, bool) {
	switch s {
	case "", "+":
		return 1, true
	case "-":
		return -1, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Suffix returns the imaginary-unit letter ('i' by default) used by s,
// for round-tripping Format with the caller's preferred unit.
func Suffix(s string) byte {
	if strings.HasSuffix(s, "j") {
		return 'j'
	}
	return 'i'
}

// Format renders z in Excel's canonical form: zero parts elided, and a
// unit imaginary coefficient (|part|==1) printed without the "1".
func Format(z complex128, unit byte) string {
	if unit == 0 {
		unit = 'i'
	}
	re, im := real(z), imag(z)
	if im == 0 {
		return formatPart(re)
	}
	imagStr := formatImagCoefficient(im) + string(unit)
	if re == 0 {
		return imagStr
	}
	sign := "+"
	if im < 0 {
		sign = ""
	}
	return formatPart(re) + sign + imagStr
}

func formatPart(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func formatImagCoefficient(f float64) string {
	switch f {
	case 1:
		return ""
	case -1:
		return "-"
	}
	return formatPart(f)
}

// Abs, Argument, Conjugate, and the transcendentals are thin wrappers
// over math/cmplx, named to match the IM* function surface directly.
func Abs(z complex128) float64       { return cmplx.Abs(z) }
func Argument(z complex128) float64  { return math.Atan2(imag(z), real(z)) }
func Conjugate(z complex128) complex128 { return cmplx.Conj(z) }
func Exp(z complex128) complex128    { return cmplx.Exp(z) }
func Log(z complex128) complex128    { return cmplx.Log(z) }
func Log10(z complex128) complex128  { return cmplx.Log10(z) }
func Sin(z complex128) complex128    { return cmplx.Sin(z) }
func Cos(z complex128) complex128    { return cmplx.Cos(z) }
func Sqrt(z complex128) complex128   { return cmplx.Sqrt(z) }

// Div implements IMDIV; ok is false for division by 0+0i.
func Div(a, b complex128) (complex128, bool) {
	if real(b) == 0 && imag(b) == 0 {
		return 0, false
	}
	return a / b, true
}

// Pow raises z to a real power via the polar form (IMPOWER).
func Pow(z complex128, exp float64) complex128 {
	return cmplx.Pow(z, complex(exp, 0))
}
