// Package convert implements CONVERT(value, from_unit, to_unit), a
// static directed graph of unit families with one canonical unit per
// family and a multiplicative factor to it, plus SI prefixes and an
// affine temperature family.
package convert

import "strings"

// family groups units that convert. toBase maps each unit abbreviation
// to its multiplicative factor into the family's canonical unit.
type family struct {
	toBase map[string]float64
	// prefixable lists units that accept an SI prefix (e.g. "k" + "g").
	prefixable map[string]bool
}

var siPrefixes = map[string]float64{
	"Y": 1e24, "Z": 1e21, "E": 1e18, "P": 1e15, "T": 1e12, "G": 1e9,
	"M": 1e6, "k": 1e3, "h": 1e2, "e": 1e1, "d": 1e-1, "c": 1e-2,
	"m": 1e-3, "u": 1e-6, "n": 1e-9, "p": 1e-12, "f": 1e-15, "a": 1e-18,
	"z": 1e-21, "y": 1e-24,
}

var binaryPrefixes = map[string]float64{
	"Yi": 1 << 80, "Zi": 1 << 70, "Ei": 1 << 60, "Pi": 1 << 50,
	"Ti": 1 << 40, "Gi": 1 << 30, "Mi": 1 << 20, "ki": 1 << 10,
}

var families = []family{
	{ // length, canonical: meter
		toBase: map[string]float64{
			"m": 1, "mi": 1609.344, "Nmi": 1852, "in": 0.0254, "ft": 0.3048,
			"yd": 0.9144, "ang": 1e-10, "Pica": 0.0254 / 6, "pica": 0.0254 / 72,
			"ly": 9.4607304725808e15, "survey_mi": 1609.347219,
		},
		prefixable: map[string]bool{"m": true, "ang": true},
	},
	{ // mass, canonical: gram
		toBase: map[string]float64{
			"g": 1, "sg": 14593.90294, "lbm": 453.59237, "u": 1.66053906660e-24,
			"ozm": 28.349523125, "stone": 6350.29318, "ton": 907184.74,
			"grain": 0.06479891, "cwt": 45359.237, "uk_cwt": 50802.34544,
		},
		prefixable: map[string]bool{"g": true, "u": true},
	},
	{ // time, canonical: second
		toBase: map[string]float64{
			"sec": 1, "s": 1, "min": 60, "hr": 3600, "day": 86400, "d": 86400,
			"yr": 365.25 * 86400,
		},
		prefixable: map[string]bool{"sec": true, "s": true},
	},
	{ // pressure, canonical: pascal
		toBase: map[string]float64{
			"Pa": 1, "p": 1, "atm": 101325, "at": 101325, "mmHg": 133.322,
			"psi": 6894.757, "Torr": 133.322,
		},
		prefixable: map[string]bool{"Pa": true, "p": true},
	},
	{ // energy, canonical: joule
		toBase: map[string]float64{
			"J": 1, "e": 1e-7, "c": 4.184, "cal": 4.1868, "eV": 1.602176634e-19,
			"HPh": 2684519.538, "Wh": 3600, "flb": 1.3558179, "BTU": 1055.05585262,
			"btu": 1055.05585262,
		},
		prefixable: map[string]bool{"J": true, "e": true, "eV": true, "Wh": true},
	},
	{ // power, canonical: watt
		toBase: map[string]float64{
			"W": 1, "w": 1, "HP": 745.69987158227022, "PS": 735.49875,
		},
		prefixable: map[string]bool{"W": true, "w": true},
	},
	{ // volume, canonical: liter
		toBase: map[string]float64{
			"l": 1, "L": 1, "lt": 1, "tsp": 4.92892159375e-3,
			"tbs": 14.78676478125e-3, "oz": 29.5735295625e-3,
			"cup": 236.5882365e-3, "pt": 473.176473e-3,
			"us_pt": 473.176473e-3, "uk_pt": 568.26125e-3,
			"qt": 946.352946e-3, "gal": 3.785411784,
			"ang3": 1e-27, "m3": 1000, "mi3": 4.1681818254406e12, "in3": 0.0163870640693,
			"ft3": 28.316846592, "yd3": 764.554857984, "barrel": 158.987294928,
		},
		prefixable: map[string]bool{"l": true, "L": true},
	},
	{ // area, canonical: square meter
		toBase: map[string]float64{
			"m2": 1, "uk_acre": 4046.8564224, "us_acre": 4046.87260987,
			"ha": 10000, "in2": 0.00064516, "ft2": 0.09290304, "mi2": 2589988.110336,
			"yd2": 0.83612736, "Morgen": 2500,
		},
		prefixable: map[string]bool{"m2": true},
	},
	{ // information, canonical: bit
		toBase: map[string]float64{
			"bit": 1, "byte": 8,
		},
		prefixable: map[string]bool{"bit": true, "byte": true},
	},
}

// temperature units and their affine mapping to Kelvin: K = scale*u + offset.
var temperatureToKelvin = map[string]struct{ scale, offset float64 }{
	"C":  {1, 273.15},
	"cel": {1, 273.15},
	"F":  {5.0 / 9, 459.67 * 5.0 / 9},
	"fah": {5.0 / 9, 459.67 * 5.0 / 9},
	"K":  {1, 0},
	"kel": {1, 0},
	"Rank": {5.0 / 9, 0},
	"Reau": {1.25, 273.15},
}

// resolveUnit strips a recognized prefix (binary two-letter first, then
// single-letter SI) and returns (factor, ok).
func resolveUnit(unit string, toBase map[string]float64, prefixable map[string]bool) (float64, bool) {
	if f, ok := toBase[unit]; ok {
		return f, true
	}
	for p, mult := range binaryPrefixes {
		if strings.HasPrefix(unit, p) {
			base := unit[len(p):]
			if prefixable[base] {
				if f, ok := toBase[base]; ok {
					return f * mult, true
				}
			}
		}
	}
	for p, mult := range siPrefixes {
		if strings.HasPrefix(unit, p) {
			base := unit[len(p):]
			if prefixable[base] {
				if f, ok := toBase[base]; ok {
					return f * mult, true
				}
			}
		}
	}
	return 0, false
}

// Convert implements CONVERT. ok is false for an unknown unit or a
// cross-family request, both mapped to #N/A by the caller.
func Convert(value float64, from, to string) (float64, bool) {
	if fromT, ok1 := temperatureToKelvin[from]; ok1 {
		if toT, ok2 := temperatureToKelvin[to]; ok2 {
			kelvin := value*fromT.scale + fromT.offset
			return (kelvin - toT.offset) / toT.scale, true
		}
		return 0, false
	}
	for _, fam := range families {
		fromFactor, fromOK := resolveUnit(from, fam.toBase, fam.prefixable)
		if !fromOK {
			continue
		}
		toFactor, toOK := resolveUnit(to, fam.toBase, fam.prefixable)
		if !toOK {
			return 0, false
		}
		return value * fromFactor / toFactor, true
	}
	return 0, false
}
