package statistical

import (
	"math"

	"github.com/xlcore/formulacore/internal/args"
	"github.com/xlcore/formulacore/internal/registry"
	"github.com/xlcore/formulacore/internal/value"
)

// splitXY recovers (known_y, known_x) from a flattened tail, following
// the same "evenly split the remaining run in half" convention XLOOKUP
// uses for its lookup/return arrays: the two series travel together at
// the same length with no other shape hint available.
func splitXY(rest []value.CellValue) (ys, xs []float64, ok bool) {
	if len(rest)%2 != 0 || len(rest) == 0 {
		return nil, nil, false
	}
	half := len(rest) / 2
	ys = make([]float64, half)
	xs = make([]float64, half)
	for i := 0; i < half; i++ {
		yf, _, yok := args.Number(rest[i])
		xf, _, xok := args.Number(rest[half+i])
		if !yok || !xok {
			return nil, nil, false
		}
		ys[i] = yf
		xs[i] = xf
	}
	return ys, xs, true
}

// peelConstFlag removes an optional trailing const flag (Boolean, or
// Number 0/1) used by TREND/GROWTH/LINEST/LOGEST, defaulting to true.
func peelConstFlag(rest []value.CellValue) ([]value.CellValue, bool) {
	if len(rest) == 0 {
		return rest, true
	}
	last := rest[len(rest)-1]
	if last.IsBoolean() {
		return rest[:len(rest)-1], last.AsBool()
	}
	if f, ok := last.NumberOrValueError(); ok && (f == 0 || f == 1) && len(rest) > 1 && (len(rest)-1)%2 == 0 {
		return rest[:len(rest)-1], f != 0
	}
	return rest, true
}

// olsLine fits y = intercept + slope*x via ordinary least squares (const
// true) or forces the line through the origin (const false, slope =
// Sigma xy / Sigma x^2).
func olsLine(ys, xs []float64, constTerm bool) (slope, intercept float64, ok bool) {
	n := len(ys)
	if n == 0 {
		return 0, 0, false
	}
	if !constTerm {
		sumXY, sumXX := 0.0, 0.0
		for i := range ys {
			sumXY += xs[i] * ys[i]
			sumXX += xs[i] * xs[i]
		}
		if sumXX == 0 {
			return 0, 0, false
		}
		return sumXY / sumXX, 0, true
	}
	if n < 2 {
		return 0, 0, false
	}
	var sumX, sumY, sumXY, sumXX float64
	for i := range ys {
		sumX += xs[i]
		sumY += ys[i]
		sumXY += xs[i] * ys[i]
		sumXX += xs[i] * xs[i]
	}
	meanX, meanY := sumX/float64(n), sumY/float64(n)
	denom := sumXX - float64(n)*meanX*meanX
	if denom == 0 {
		return 0, 0, false
	}
	slope = (sumXY - float64(n)*meanX*meanY) / denom
	intercept = meanY - slope*meanX
	return slope, intercept, true
}

// olsExponential fits y = b*m^x (LOGEST/GROWTH) by linearizing to
// ln(y) = ln(b) + x*ln(m); const=false forces b=1 and uses
// m = exp(Sigma x*ln(y) / Sigma x^2).
func olsExponential(ys, xs []float64, constTerm bool) (m, b float64, ok bool) {
	lnY := make([]float64, len(ys))
	for i, y := range ys {
		if y <= 0 {
			return 0, 0, false
		}
		lnY[i] = math.Log(y)
	}
	if !constTerm {
		sumXlnY, sumXX := 0.0, 0.0
		for i := range ys {
			sumXlnY += xs[i] * lnY[i]
			sumXX += xs[i] * xs[i]
		}
		if sumXX == 0 {
			return 0, 0, false
		}
		return math.Exp(sumXlnY / sumXX), 1, true
	}
	slope, intercept, ok := olsLine(lnY, xs, true)
	if !ok {
		return 0, 0, false
	}
	return math.Exp(slope), math.Exp(intercept), true
}

func registerRegression(r *registry.Registry) {
	r.RegisterFunc("FORECAST", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		return forecastLinear(a)
	})
	r.RegisterFunc("FORECAST.LINEAR", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		return forecastLinear(a)
	})

	r.RegisterFunc("TREND", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if !args.Range(a, 3, -1) {
			return arityErr()
		}
		if errv, found := args.FirstError(a); found {
			return errv
		}
		newX, errv, ok := args.Number(a[0])
		if !ok {
			return errv
		}
		rest, constTerm := peelConstFlag(a[1:])
		ys, xs, ok := splitXY(rest)
		if !ok {
			return value.Error(value.ErrValue)
		}
		if len(ys) == 1 {
			// A single-point sample returns that sample regardless
			// of new_x.
			return value.Number(ys[0])
		}
		slope, intercept, ok := olsLine(ys, xs, constTerm)
		if !ok {
			return value.Error(value.ErrDiv0)
		}
		return value.Number(intercept + slope*newX)
	})

	r.RegisterFunc("GROWTH", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if !args.Range(a, 3, -1) {
			return arityErr()
		}
		if errv, found := args.FirstError(a); found {
			return errv
		}
		newX, errv, ok := args.Number(a[0])
		if !ok {
			return errv
		}
		rest, constTerm := peelConstFlag(a[1:])
		ys, xs, ok := splitXY(rest)
		if !ok {
			return value.Error(value.ErrValue)
		}
		if len(ys) == 1 {
			if ys[0] <= 0 {
				return value.Error(value.ErrNum)
			}
			return value.Number(ys[0])
		}
		m, b, ok := olsExponential(ys, xs, constTerm)
		if !ok {
			return value.Error(value.ErrNum)
		}
		return value.Number(b * math.Pow(m, newX))
	})

	r.RegisterFunc("LINEST", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if !args.Range(a, 2, -1) {
			return arityErr()
		}
		if errv, found := args.FirstError(a); found {
			return errv
		}
		rest, constTerm := peelConstFlag(a)
		ys, xs, ok := splitXY(rest)
		if !ok {
			return value.Error(value.ErrValue)
		}
		if len(ys) == 1 {
			return value.Number(0)
		}
		slope, _, ok := olsLine(ys, xs, constTerm)
		if !ok {
			return value.Error(value.ErrDiv0)
		}
		return value.Number(slope)
	})

	r.RegisterFunc("LOGEST", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if !args.Range(a, 2, -1) {
			return arityErr()
		}
		if errv, found := args.FirstError(a); found {
			return errv
		}
		rest, constTerm := peelConstFlag(a)
		ys, xs, ok := splitXY(rest)
		if !ok {
			return value.Error(value.ErrValue)
		}
		if len(ys) == 1 {
			if ys[0] <= 0 {
				return value.Error(value.ErrNum)
			}
			return value.Number(1)
		}
		m, _, ok := olsExponential(ys, xs, constTerm)
		if !ok {
			return value.Error(value.ErrNum)
		}
		return value.Number(m)
	})
}

// forecastLinear implements FORECAST/FORECAST.LINEAR: new_x, known_ys...,
// known_xs..., an OLS fit with the default intercept term.
func forecastLinear(a []value.CellValue) value.CellValue {
	if !args.Range(a, 3, -1) {
		return arityErr()
	}
	if errv, found := args.FirstError(a); found {
		return errv
	}
	newX, errv, ok := args.Number(a[0])
	if !ok {
		return errv
	}
	ys, xs, ok := splitXY(a[1:])
	if !ok {
		return value.Error(value.ErrValue)
	}
	if len(ys) == 1 {
		return value.Number(ys[0])
	}
	slope, intercept, ok := olsLine(ys, xs, true)
	if !ok {
		return value.Error(value.ErrDiv0)
	}
	return value.Number(intercept + slope*newX)
}
