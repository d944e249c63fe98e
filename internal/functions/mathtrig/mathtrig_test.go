package mathtrig

import (
	"math"
	"testing"

	"github.com/xlcore/formulacore/internal/registry"
	"github.com/xlcore/formulacore/internal/value"
)

type stubContext struct{}

func (stubContext) Today() float64 { return 45000 }

func newRegistry() *registry.Registry {
	r := registry.New()
	Register(r)
	return r
}

func exec(t *testing.T, r *registry.Registry, name string, a ...value.CellValue) value.CellValue {
	t.Helper()
	return r.Execute(stubContext{}, name, a)
}

func nums(fs ...float64) []value.CellValue {
	out := make([]value.CellValue, len(fs))
	for i, f := range fs {
		out[i] = value.Number(f)
	}
	return out
}

func wantNumber(t *testing.T, got value.CellValue, want float64) {
	t.Helper()
	if !got.IsNumber() {
		t.Fatalf("got %v, want number %v", got, want)
	}
	if math.Abs(got.AsNumber()-want) > 1e-9 {
		t.Fatalf("got %v, want %v", got.AsNumber(), want)
	}
}

func wantErr(t *testing.T, got value.CellValue, kind value.ErrorKind) {
	t.Helper()
	gotKind, isErr := got.ErrorKind()
	if !isErr || gotKind != kind {
		t.Fatalf("got %v, want %v", got, kind)
	}
}

func TestSumIgnoresNonNumeric(t *testing.T) {
	r := newRegistry()
	got := exec(t, r, "SUM", append(nums(1, 2, 3), value.Text("skip"), value.Boolean(true))...)
	wantNumber(t, got, 6)
}

func TestAverageEmptyIsDivZero(t *testing.T) {
	r := newRegistry()
	got := exec(t, r, "AVERAGE", value.Text("a"), value.Text("b"))
	wantErr(t, got, value.ErrDiv0)
}

func TestSumProductMultiplies(t *testing.T) {
	r := newRegistry()
	got := exec(t, r, "SUMPRODUCT", nums(2, 3, 4)...)
	wantNumber(t, got, 24)
}

func TestMaxMin(t *testing.T) {
	r := newRegistry()
	wantNumber(t, exec(t, r, "MAX", nums(3, -1, 7, 2)...), 7)
	wantNumber(t, exec(t, r, "MIN", nums(3, -1, 7, 2)...), -1)
}

func TestSumIfCriteria(t *testing.T) {
	r := newRegistry()
	// range, criteria, sum_range
	args := append(nums(1, 2, 3), value.Text(">1"))
	args = append(args, nums(10, 20, 30)...)
	wantNumber(t, exec(t, r, "SUMIF", args...), 50)
}

func TestSumIfsAllCriteriaMustMatch(t *testing.T) {
	r := newRegistry()
	// sum_value, then (range_value, criterion) pairs
	hit := exec(t, r, "SUMIFS",
		value.Number(100), value.Number(5), value.Text(">1"), value.Text("east"), value.Text("east"))
	wantNumber(t, hit, 100)
	miss := exec(t, r, "SUMIFS",
		value.Number(100), value.Number(5), value.Text(">1"), value.Text("west"), value.Text("east"))
	wantNumber(t, miss, 0)
}

func TestCountIfWildcard(t *testing.T) {
	r := newRegistry()
	got := exec(t, r, "COUNTIF", value.Text("apple"), value.Text("banana"), value.Text("avocado"), value.Text("a*"))
	wantNumber(t, got, 2)
}

func TestRoundHalfAwayFromZero(t *testing.T) {
	r := newRegistry()
	wantNumber(t, exec(t, r, "ROUND", value.Number(2.5), value.Number(0)), 3)
	wantNumber(t, exec(t, r, "ROUND", value.Number(-2.5), value.Number(0)), -3)
}

func TestTruncAndInt(t *testing.T) {
	r := newRegistry()
	wantNumber(t, exec(t, r, "TRUNC", value.Number(8.9)), 8)
	wantNumber(t, exec(t, r, "INT", value.Number(-8.1)), -9)
}

func TestModDivZero(t *testing.T) {
	r := newRegistry()
	wantErr(t, exec(t, r, "MOD", value.Number(5), value.Number(0)), value.ErrDiv0)
}

func TestPowerDomainError(t *testing.T) {
	r := newRegistry()
	wantErr(t, exec(t, r, "POWER", value.Number(0), value.Number(-1)), value.ErrNum)
}

func TestCeilingFloor(t *testing.T) {
	r := newRegistry()
	wantNumber(t, exec(t, r, "CEILING", value.Number(2.1), value.Number(1)), 3)
	wantNumber(t, exec(t, r, "FLOOR", value.Number(2.9), value.Number(1)), 2)
}

func TestSqrtDomainError(t *testing.T) {
	r := newRegistry()
	wantErr(t, exec(t, r, "SQRT", value.Number(-1)), value.ErrNum)
}

func TestAtan2OriginError(t *testing.T) {
	r := newRegistry()
	wantErr(t, exec(t, r, "ATAN2", value.Number(0), value.Number(0)), value.ErrDiv0)
}

func TestCscReciprocalDivZero(t *testing.T) {
	r := newRegistry()
	wantErr(t, exec(t, r, "CSC", value.Number(0)), value.ErrDiv0)
}

func TestGcdLcm(t *testing.T) {
	r := newRegistry()
	wantNumber(t, exec(t, r, "GCD", nums(12, 18)...), 6)
	wantNumber(t, exec(t, r, "LCM", nums(4, 6)...), 12)
}

func TestLogWithBase(t *testing.T) {
	r := newRegistry()
	wantNumber(t, exec(t, r, "LOG", value.Number(8), value.Number(2)), 3)
}

func TestArityMismatch(t *testing.T) {
	r := newRegistry()
	wantErr(t, exec(t, r, "PI", value.Number(1)), value.ErrValue)
}
