package lookup

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

func TestMatchExact(t *testing.T) {
	r := newRegistry(t)
	a := append([]value.CellValue{value.Number(20)}, nums(10, 20, 30)...)
	a = append(a, value.Number(0))
	got := exec(t, r, "MATCH", a...)
	if got.AsNumber() != 2 {
		t.Fatalf("MATCH exact = %v, want 2", got.AsNumber())
	}
}

func TestMatchAscendingDefault(t *testing.T) {
	r := newRegistry(t)
	a := append([]value.CellValue{value.Number(25)}, nums(10, 20, 30)...)
	got := exec(t, r, "MATCH", a...)
	if got.AsNumber() != 2 {
		t.Fatalf("MATCH ascending default = %v, want 2 (next-smaller at 20)", got.AsNumber())
	}
}

func TestMatchNotFound(t *testing.T) {
	r := newRegistry(t)
	a := append([]value.CellValue{value.Number(100)}, nums(10, 20, 30)...)
	a = append(a, value.Number(0))
	got := exec(t, r, "MATCH", a...)
	if kind, ok := got.ErrorKind(); !ok || kind != value.ErrNA {
		t.Errorf("MATCH not found = %+v, want #N/A", got)
	}
}

func TestIndex1D(t *testing.T) {
	r := newRegistry(t)
	a := append(nums(10, 20, 30), value.Number(2))
	got := exec(t, r, "INDEX", a...)
	if got.AsNumber() != 20 {
		t.Fatalf("INDEX 1D = %v, want 20", got.AsNumber())
	}
}

func TestIndex2D(t *testing.T) {
	r := newRegistry(t)
	// 2x3 table: [1 2 3; 4 5 6], numRows=2, numCols=3, row=2, col=3 -> 6
	body := nums(1, 2, 3, 4, 5, 6)
	a := append(body, value.Number(2), value.Number(3), value.Number(2), value.Number(3))
	got := exec(t, r, "INDEX", a...)
	if got.AsNumber() != 6 {
		t.Fatalf("INDEX 2D = %v, want 6", got.AsNumber())
	}
}

func TestXLookupExactFound(t *testing.T) {
	r := newRegistry(t)
	lookupArr := nums(10, 20, 30, 40)
	returnArr := []value.CellValue{value.Text("A"), value.Text("B"), value.Text("C"), value.Text("D")}
	a := append([]value.CellValue{value.Number(30)}, lookupArr...)
	a = append(a, returnArr...)
	got := exec(t, r, "XLOOKUP", a...)
	if got.AsText() != "C" {
		t.Fatalf("XLOOKUP exact = %q, want C", got.AsText())
	}
}

func TestXLookupNotFoundDefault(t *testing.T) {
	r := newRegistry(t)
	lookupArr := nums(10, 20, 30, 40)
	returnArr := []value.CellValue{value.Text("A"), value.Text("B"), value.Text("C"), value.Text("D")}
	a := append([]value.CellValue{value.Number(25)}, lookupArr...)
	a = append(a, returnArr...)
	a = append(a, value.Text("none"))
	got := exec(t, r, "XLOOKUP", a...)
	if got.AsText() != "none" {
		t.Fatalf("XLOOKUP if_not_found = %q, want none", got.AsText())
	}
}

func TestXLookupNextLargerMode(t *testing.T) {
	r := newRegistry(t)
	lookupArr := nums(10, 20, 30, 40)
	returnArr := []value.CellValue{value.Text("A"), value.Text("B"), value.Text("C"), value.Text("D")}
	a := append([]value.CellValue{value.Number(25)}, lookupArr...)
	a = append(a, returnArr...)
	a = append(a, value.Error(value.ErrNA), value.Number(1))
	got := exec(t, r, "XLOOKUP", a...)
	if got.AsText() != "C" {
		t.Fatalf("XLOOKUP next-larger = %q, want C (30)", got.AsText())
	}
}

func TestXMatchWildcard(t *testing.T) {
	r := newRegistry(t)
	a := []value.CellValue{value.Text("b*"), value.Text("apple"), value.Text("banana"), value.Text("cherry"), value.Number(2)}
	got := exec(t, r, "XMATCH", a...)
	if got.AsNumber() != 2 {
		t.Fatalf("XMATCH wildcard = %v, want 2", got.AsNumber())
	}
}

func TestXMatchBinarySearchDescending(t *testing.T) {
	r := newRegistry(t)
	a := append([]value.CellValue{value.Number(20)}, nums(40, 30, 20, 10)...)
	a = append(a, value.Number(0), value.Number(-2))
	got := exec(t, r, "XMATCH", a...)
	if got.AsNumber() != 3 {
		t.Fatalf("XMATCH descending binary = %v, want 3", got.AsNumber())
	}
}

func TestXLookupErrorAsIfNotFound(t *testing.T) {
	r := newRegistry(t)
	a := append([]value.CellValue{value.Number(99)}, nums(10, 20, 30)...)
	a = append(a, value.Text("A"), value.Text("B"), value.Text("C"))
	a = append(a, value.Error(value.ErrNA))
	got := exec(t, r, "XLOOKUP", a...)
	if kind, ok := got.ErrorKind(); !ok || kind != value.ErrNA {
		t.Errorf("XLOOKUP miss with #N/A substitute = %+v, want #N/A", got)
	}
}

func TestXMatchRejectsSearchModeZero(t *testing.T) {
	r := newRegistry(t)
	a := append([]value.CellValue{value.Number(20)}, nums(10, 20, 30)...)
	a = append(a, value.Number(0), value.Number(0))
	got := exec(t, r, "XMATCH", a...)
	if kind, ok := got.ErrorKind(); !ok || kind != value.ErrValue {
		t.Errorf("XMATCH search_mode 0 = %+v, want #VALUE!", got)
	}
}

func TestChoose(t *testing.T) {
	r := newRegistry(t)
	got := exec(t, r, "CHOOSE", value.Number(2), value.Text("x"), value.Text("y"), value.Text("z"))
	if got.AsText() != "y" {
		t.Fatalf("CHOOSE = %q, want y", got.AsText())
	}
}

func TestChooseOutOfRange(t *testing.T) {
	r := newRegistry(t)
	got := exec(t, r, "CHOOSE", value.Number(5), value.Text("x"), value.Text("y"))
	if kind, ok := got.ErrorKind(); !ok || kind != value.ErrValue {
		t.Errorf("CHOOSE out of range = %+v, want #VALUE!", got)
	}
}

func TestVLookupExactMatch(t *testing.T) {
	r := newRegistry(t)
	// 3 rows x 2 cols: [[1,"a"],[2,"b"],[3,"c"]]
	body := []value.CellValue{
		value.Number(1), value.Text("a"),
		value.Number(2), value.Text("b"),
		value.Number(3), value.Text("c"),
	}
	a := append([]value.CellValue{value.Number(2)}, body...)
	a = append(a, value.Number(3), value.Number(2), value.Number(2), value.Boolean(false))
	got := exec(t, r, "VLOOKUP", a...)
	if got.AsText() != "b" {
		t.Fatalf("VLOOKUP exact = %q, want b", got.AsText())
	}
}

func TestVLookupApproximate(t *testing.T) {
	r := newRegistry(t)
	body := []value.CellValue{
		value.Number(1), value.Text("a"),
		value.Number(10), value.Text("b"),
		value.Number(20), value.Text("c"),
	}
	a := append([]value.CellValue{value.Number(15)}, body...)
	a = append(a, value.Number(3), value.Number(2), value.Number(2))
	got := exec(t, r, "VLOOKUP", a...)
	if got.AsText() != "b" {
		t.Fatalf("VLOOKUP approximate = %q, want b", got.AsText())
	}
}

func TestVLookupNotFound(t *testing.T) {
	r := newRegistry(t)
	body := nums(1, 100, 2, 200)
	a := append([]value.CellValue{value.Number(99)}, body...)
	a = append(a, value.Number(2), value.Number(2), value.Number(2), value.Boolean(false))
	got := exec(t, r, "VLOOKUP", a...)
	if kind, ok := got.ErrorKind(); !ok || kind != value.ErrNA {
		t.Errorf("VLOOKUP not found = %+v, want #N/A", got)
	}
}

func TestHLookupExactMatch(t *testing.T) {
	r := newRegistry(t)
	// 2 rows x 3 cols: row1=[1,2,3] (header/keys), row2=["x","y","z"]
	body := []value.CellValue{
		value.Number(1), value.Number(2), value.Number(3),
		value.Text("x"), value.Text("y"), value.Text("z"),
	}
	a := append([]value.CellValue{value.Number(2)}, body...)
	a = append(a, value.Number(2), value.Number(3), value.Number(2), value.Boolean(false))
	got := exec(t, r, "HLOOKUP", a...)
	if got.AsText() != "y" {
		t.Fatalf("HLOOKUP exact = %q, want y", got.AsText())
	}
}

func TestSheetPlaceholderDefaults(t *testing.T) {
	r := newRegistry(t)
	if got := exec(t, r, "SHEET"); got.AsNumber() != 1 {
		t.Errorf("SHEET default = %v, want 1", got.AsNumber())
	}
	if got := exec(t, r, "SHEETS"); got.AsNumber() != 1 {
		t.Errorf("SHEETS default = %v, want 1", got.AsNumber())
	}
	if got := exec(t, r, "ISFORMULA", value.Text("x")); got.AsBool() != false {
		t.Errorf("ISFORMULA default = %+v, want FALSE", got)
	}
}
