package statistical

import (
	"math"
	"testing"

	"github.com/xlcore/formulacore/internal/registry"
	"github.com/xlcore/formulacore/internal/value"
)

func newRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	r := registry.New()
	Register(r)
	return r
}

func exec(t *testing.T, r *registry.Registry, name string, vals ...value.CellValue) value.CellValue {
	t.Helper()
	return r.Execute(nil, name, vals)
}

func nums(vs ...float64) []value.CellValue {
	out := make([]value.CellValue, len(vs))
	for i, v := range vs {
		out[i] = value.Number(v)
	}
	return out
}

func approxEqual(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func TestPercentileIncMedian(t *testing.T) {
	r := newRegistry(t)
	a := append(nums(1, 2, 3, 4), value.Number(0.5))
	got := exec(t, r, "PERCENTILE.INC", a...)
	if !approxEqual(got.AsNumber(), 2.5) {
		t.Fatalf("PERCENTILE.INC(.5) = %v, want 2.5", got.AsNumber())
	}
}

func TestPercentileExcOutOfRange(t *testing.T) {
	r := newRegistry(t)
	a := append(nums(1, 2, 3), value.Number(0.9))
	got := exec(t, r, "PERCENTILE.EXC", a...)
	if kind, ok := got.ErrorKind(); !ok || kind != value.ErrNum {
		t.Errorf("PERCENTILE.EXC out of range = %+v, want #NUM!", got)
	}
}

func TestQuartileIncZeroIsMin(t *testing.T) {
	r := newRegistry(t)
	a := append(nums(4, 1, 3, 2), value.Number(0))
	got := exec(t, r, "QUARTILE.INC", a...)
	if got.AsNumber() != 1 {
		t.Fatalf("QUARTILE.INC(0) = %v, want 1", got.AsNumber())
	}
}

func TestQuartileExcRejectsZero(t *testing.T) {
	r := newRegistry(t)
	a := append(nums(1, 2, 3, 4), value.Number(0))
	got := exec(t, r, "QUARTILE.EXC", a...)
	if kind, ok := got.ErrorKind(); !ok || kind != value.ErrNum {
		t.Errorf("QUARTILE.EXC(0) = %+v, want #NUM!", got)
	}
}

func TestMedianOddEven(t *testing.T) {
	r := newRegistry(t)
	if got := exec(t, r, "MEDIAN", nums(3, 1, 2)...); got.AsNumber() != 2 {
		t.Errorf("MEDIAN odd = %v, want 2", got.AsNumber())
	}
	if got := exec(t, r, "MEDIAN", nums(1, 2, 3, 4)...); got.AsNumber() != 2.5 {
		t.Errorf("MEDIAN even = %v, want 2.5", got.AsNumber())
	}
}

func TestVarSingleSample(t *testing.T) {
	r := newRegistry(t)
	if got := exec(t, r, "VAR.P", value.Number(5)); got.AsNumber() != 0 {
		t.Errorf("VAR.P single sample = %v, want 0", got.AsNumber())
	}
	got := exec(t, r, "VAR.S", value.Number(5))
	if kind, ok := got.ErrorKind(); !ok || kind != value.ErrDiv0 {
		t.Errorf("VAR.S single sample = %+v, want #DIV/0!", got)
	}
}

func TestStdevPKnownPopulation(t *testing.T) {
	r := newRegistry(t)
	got := exec(t, r, "STDEV.P", nums(2, 4, 4, 4, 5, 5, 7, 9)...)
	if !approxEqual(got.AsNumber(), 2) {
		t.Fatalf("STDEV.P = %v, want 2", got.AsNumber())
	}
}

func TestForecastLinearExactFit(t *testing.T) {
	r := newRegistry(t)
	// y = 2x, known points (1,2) (2,4) (3,6); forecast at x=5 -> 10.
	a := append([]value.CellValue{value.Number(5)}, nums(2, 4, 6, 1, 2, 3)...)
	got := exec(t, r, "FORECAST", a...)
	if !approxEqual(got.AsNumber(), 10) {
		t.Fatalf("FORECAST = %v, want 10", got.AsNumber())
	}
}

func TestForecastSinglePoint(t *testing.T) {
	r := newRegistry(t)
	a := []value.CellValue{value.Number(99), value.Number(7), value.Number(1)}
	got := exec(t, r, "FORECAST", a...)
	if got.AsNumber() != 7 {
		t.Fatalf("FORECAST single-point = %v, want 7", got.AsNumber())
	}
}

func TestTrendThroughOrigin(t *testing.T) {
	r := newRegistry(t)
	// const=FALSE: slope = Sigma xy / Sigma x^2 over (1,2) (2,4) (3,6).
	a := append([]value.CellValue{value.Number(4)}, nums(2, 4, 6, 1, 2, 3)...)
	a = append(a, value.Boolean(false))
	got := exec(t, r, "TREND", a...)
	if !approxEqual(got.AsNumber(), 8) {
		t.Fatalf("TREND through origin at x=4 = %v, want 8", got.AsNumber())
	}
}

func TestGrowthExponentialFit(t *testing.T) {
	r := newRegistry(t)
	// y = 2^x: (1,2) (2,4) (3,8); forecast at x=4 -> 16.
	a := append([]value.CellValue{value.Number(4)}, nums(2, 4, 8, 1, 2, 3)...)
	got := exec(t, r, "GROWTH", a...)
	if !approxEqual(got.AsNumber(), 16) {
		t.Fatalf("GROWTH at x=4 = %v, want 16", got.AsNumber())
	}
}

func TestGrowthRejectsNonPositiveY(t *testing.T) {
	r := newRegistry(t)
	a := append([]value.CellValue{value.Number(4)}, nums(2, -4, 8, 1, 2, 3)...)
	got := exec(t, r, "GROWTH", a...)
	if kind, ok := got.ErrorKind(); !ok || kind != value.ErrNum {
		t.Errorf("GROWTH non-positive y = %+v, want #NUM!", got)
	}
}

func TestLinestSlope(t *testing.T) {
	r := newRegistry(t)
	got := exec(t, r, "LINEST", nums(2, 4, 6, 1, 2, 3)...)
	if !approxEqual(got.AsNumber(), 2) {
		t.Fatalf("LINEST slope = %v, want 2", got.AsNumber())
	}
}

func TestLogestBase(t *testing.T) {
	r := newRegistry(t)
	got := exec(t, r, "LOGEST", nums(2, 4, 8, 1, 2, 3)...)
	if !approxEqual(got.AsNumber(), 2) {
		t.Fatalf("LOGEST base = %v, want 2", got.AsNumber())
	}
}

func TestBinomDistRangeSingle(t *testing.T) {
	r := newRegistry(t)
	// P(X=0) for n=2, p=0.5 -> 0.25.
	got := exec(t, r, "BINOM.DIST.RANGE", value.Number(2), value.Number(0.5), value.Number(0))
	if !approxEqual(got.AsNumber(), 0.25) {
		t.Fatalf("BINOM.DIST.RANGE P(X=0) = %v, want 0.25", got.AsNumber())
	}
}

func TestBinomDistRangeInterval(t *testing.T) {
	r := newRegistry(t)
	// P(0<=X<=2) for n=2, p=0.5 -> 1.0 (whole support).
	got := exec(t, r, "BINOM.DIST.RANGE", value.Number(2), value.Number(0.5), value.Number(0), value.Number(2))
	if !approxEqual(got.AsNumber(), 1.0) {
		t.Fatalf("BINOM.DIST.RANGE full range = %v, want 1.0", got.AsNumber())
	}
}

func TestBinomDistRangeInvalidK(t *testing.T) {
	r := newRegistry(t)
	got := exec(t, r, "BINOM.DIST.RANGE", value.Number(2), value.Number(0.5), value.Number(5))
	if kind, ok := got.ErrorKind(); !ok || kind != value.ErrNum {
		t.Errorf("BINOM.DIST.RANGE k>trials = %+v, want #NUM!", got)
	}
}
