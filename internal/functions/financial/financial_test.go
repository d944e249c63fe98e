package financial

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

func exec(t *testing.T, r *registry.Registry, name string, args ...float64) value.CellValue {
	t.Helper()
	vals := make([]value.CellValue, len(args))
	for i, a := range args {
		vals[i] = value.Number(a)
	}
	return r.Execute(nil, name, vals)
}

func approxEqual(t *testing.T, got value.CellValue, want float64, tol float64) {
	t.Helper()
	if !got.IsNumber() {
		t.Fatalf("want number, got %+v", got)
	}
	if math.Abs(got.AsNumber()-want) > tol {
		t.Errorf("got %v, want %v", got.AsNumber(), want)
	}
}

func TestPMT(t *testing.T) {
	r := newRegistry(t)
	got := exec(t, r, "PMT", 0.005, 60, 10000)
	approxEqual(t, got, -193.3280, 1e-3)
}

func TestFVZeroRate(t *testing.T) {
	r := newRegistry(t)
	got := exec(t, r, "FV", 0, 10, -100, -1000)
	approxEqual(t, got, 2000, 1e-9)
}

func TestNPERDomainError(t *testing.T) {
	r := newRegistry(t)
	got := exec(t, r, "NPER", 0, 0, 1000, -1000)
	if kind, ok := got.ErrorKind(); !ok || kind != value.ErrNum {
		t.Fatalf("want #NUM!, got %+v", got)
	}
}

func TestRATEConverges(t *testing.T) {
	r := newRegistry(t)
	got := exec(t, r, "RATE", 60, -193.3280, 10000)
	approxEqual(t, got, 0.005, 1e-4)
}

func TestSLN(t *testing.T) {
	r := newRegistry(t)
	got := exec(t, r, "SLN", 10000, 1000, 5)
	approxEqual(t, got, 1800, 1e-9)
}

func TestSYD(t *testing.T) {
	r := newRegistry(t)
	got := exec(t, r, "SYD", 10000, 1000, 5, 1)
	approxEqual(t, got, 3000, 1e-9)
}

func TestDBFirstYear(t *testing.T) {
	r := newRegistry(t)
	got := exec(t, r, "DB", 10000, 1000, 5, 1)
	if !got.IsNumber() {
		t.Fatalf("want number, got %+v", got)
	}
}

func TestDDBNeverBelowSalvage(t *testing.T) {
	r := newRegistry(t)
	got := exec(t, r, "DDB", 10000, 1000, 5, 5)
	approxEqual(t, got, 0, 1e-6)
}

func TestNPV(t *testing.T) {
	r := newRegistry(t)
	got := exec(t, r, "NPV", 0.1, -10000, 3000, 4200, 6800)
	approxEqual(t, got, 1188.44, 1e-1)
}

func TestPMTMortgage(t *testing.T) {
	r := newRegistry(t)
	got := exec(t, r, "PMT", 0.05/12, 360, 200000)
	approxEqual(t, got, -1073.64, 1e-2)
}

func TestIRRBracketsKnownRate(t *testing.T) {
	r := newRegistry(t)
	got := exec(t, r, "IRR", -10000, 3000, 4200, 6800)
	if !got.IsNumber() {
		t.Fatalf("want number, got %+v", got)
	}
	rate := got.AsNumber()
	if rate <= 0.10 || rate >= 0.30 {
		t.Errorf("IRR = %v, want in (0.10, 0.30)", rate)
	}
}

func TestNPVAtIRRRecoversInvestment(t *testing.T) {
	r := newRegistry(t)
	flows := []float64{-10000, 3000, 4200, 6800}
	irr := exec(t, r, "IRR", flows...)
	if !irr.IsNumber() {
		t.Fatalf("IRR did not converge: %+v", irr)
	}
	npv := exec(t, r, "NPV", irr.AsNumber(), flows[1], flows[2], flows[3])
	if math.Abs(npv.AsNumber()+flows[0]) > 1.0 {
		t.Errorf("NPV(IRR) = %v, want ~%v", npv.AsNumber(), -flows[0])
	}
}

func TestSLNSumsToDepreciableBase(t *testing.T) {
	r := newRegistry(t)
	got := exec(t, r, "SLN", 10000, 1000, 5)
	if math.Abs(got.AsNumber()*5-9000) > 1e-9 {
		t.Errorf("SLN*life = %v, want 9000", got.AsNumber()*5)
	}
}

func TestSYDSumsToDepreciableBase(t *testing.T) {
	r := newRegistry(t)
	total := 0.0
	for per := 1; per <= 5; per++ {
		got := exec(t, r, "SYD", 10000, 1000, 5, float64(per))
		total += got.AsNumber()
	}
	if math.Abs(total-9000) > 1e-9 {
		t.Errorf("sum of SYD = %v, want 9000", total)
	}
}

func TestIRRRequiresSignChange(t *testing.T) {
	r := newRegistry(t)
	got := exec(t, r, "IRR", 100, 200, 300)
	if kind, ok := got.ErrorKind(); !ok || kind != value.ErrNum {
		t.Fatalf("want #NUM!, got %+v", got)
	}
}

func TestIPMTPPMTIdentity(t *testing.T) {
	r := newRegistry(t)
	pmt := exec(t, r, "PMT", 0.01, 24, 5000)
	ipmt := exec(t, r, "IPMT", 0.01, 3, 24, 5000)
	ppmt := exec(t, r, "PPMT", 0.01, 3, 24, 5000)
	if !pmt.IsNumber() || !ipmt.IsNumber() || !ppmt.IsNumber() {
		t.Fatalf("expected numbers: pmt=%+v ipmt=%+v ppmt=%+v", pmt, ipmt, ppmt)
	}
	sum := ipmt.AsNumber() + ppmt.AsNumber()
	if math.Abs(sum-pmt.AsNumber()) > 1e-9 {
		t.Errorf("IPMT+PPMT = %v, want PMT = %v", sum, pmt.AsNumber())
	}
}

func TestIPMTFirstPeriodTypeOne(t *testing.T) {
	r := newRegistry(t)
	vals := []value.CellValue{
		value.Number(0.01), value.Number(1), value.Number(24),
		value.Number(5000), value.Number(0), value.Number(1),
	}
	got := r.Execute(nil, "IPMT", vals)
	approxEqual(t, got, 0, 1e-9)
}
