package baseconv

import (
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

func TestDec2HexFunctionNegativeOne(t *testing.T) {
	r := newRegistry(t)
	got := r.Execute(nil, "DEC2HEX", []value.CellValue{value.Number(-1)})
	if !got.IsText() || got.AsText() != "FFFFFFFFFF" {
		t.Fatalf("DEC2HEX(-1) = %+v, want Text(FFFFFFFFFF)", got)
	}
}

func TestHex2DecFunction(t *testing.T) {
	r := newRegistry(t)
	got := r.Execute(nil, "HEX2DEC", []value.CellValue{value.Text("FF")})
	if !got.IsNumber() || got.AsNumber() != 255 {
		t.Fatalf("HEX2DEC(FF) = %+v, want 255", got)
	}
}

func TestBitlshift(t *testing.T) {
	r := newRegistry(t)
	got := r.Execute(nil, "BITLSHIFT", []value.CellValue{value.Number(5), value.Number(2)})
	if !got.IsNumber() || got.AsNumber() != 20 {
		t.Fatalf("BITLSHIFT(5,2) = %+v, want 20", got)
	}
	got = r.Execute(nil, "BITLSHIFT", []value.CellValue{value.Number(20), value.Number(-2)})
	if !got.IsNumber() || got.AsNumber() != 5 {
		t.Fatalf("BITLSHIFT(20,-2) = %+v, want 5", got)
	}
}

func TestBitwiseOutOfRange(t *testing.T) {
	r := newRegistry(t)
	got := r.Execute(nil, "BITAND", []value.CellValue{value.Number(-1), value.Number(1)})
	if kind, ok := got.ErrorKind(); !ok || kind != value.ErrNum {
		t.Fatalf("BITAND(-1,1) = %+v, want #NUM!", got)
	}
}

func TestCrossBase(t *testing.T) {
	r := newRegistry(t)
	got := r.Execute(nil, "BIN2HEX", []value.CellValue{value.Text("1111")})
	if !got.IsText() || got.AsText() != "F" {
		t.Fatalf("BIN2HEX(1111) = %+v, want F", got)
	}
}
