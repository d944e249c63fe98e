package info

import (
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

func wantBool(t *testing.T, got value.CellValue, want bool) {
	t.Helper()
	if !got.IsBoolean() || got.AsBool() != want {
		t.Fatalf("got %v, want bool %v", got, want)
	}
}

func wantErr(t *testing.T, got value.CellValue, kind value.ErrorKind) {
	t.Helper()
	gotKind, isErr := got.ErrorKind()
	if !isErr || gotKind != kind {
		t.Fatalf("got %v, want %v", got, kind)
	}
}

func TestIsErrorFamily(t *testing.T) {
	r := newRegistry()

	wantBool(t, exec(t, r, "ISERROR", value.Error(value.ErrDiv0)), true)
	wantBool(t, exec(t, r, "ISERROR", value.Error(value.ErrNA)), true)
	wantBool(t, exec(t, r, "ISERROR", value.Number(1)), false)

	wantBool(t, exec(t, r, "ISERR", value.Error(value.ErrValue)), true)
	wantBool(t, exec(t, r, "ISERR", value.Error(value.ErrNA)), false)

	wantBool(t, exec(t, r, "ISNA", value.Error(value.ErrNA)), true)
	wantBool(t, exec(t, r, "ISNA", value.Error(value.ErrValue)), false)
}

func TestIsPredicatesDoNotPropagate(t *testing.T) {
	r := newRegistry()
	// These predicates inspect an Error without treating it as a
	// propagating failure; an #VALUE! argument to ISERROR must yield
	// Boolean(true), not re-surface as #VALUE!.
	wantBool(t, exec(t, r, "ISERROR", value.Error(value.ErrValue)), true)
	wantBool(t, exec(t, r, "ISBLANK", value.Empty), true)
	wantBool(t, exec(t, r, "ISBLANK", value.Number(0)), false)
	wantBool(t, exec(t, r, "ISNUMBER", value.Number(3)), true)
	wantBool(t, exec(t, r, "ISTEXT", value.Text("x")), true)
	wantBool(t, exec(t, r, "ISNONTEXT", value.Number(3)), true)
	wantBool(t, exec(t, r, "ISLOGICAL", value.Boolean(true)), true)
}

func TestIfErrorSubstitutesOnAnyErrorIncludingNA(t *testing.T) {
	r := newRegistry()
	wantNum := func(got value.CellValue, want float64) {
		t.Helper()
		if !got.IsNumber() || got.AsNumber() != want {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
	wantNum(exec(t, r, "IFERROR", value.Error(value.ErrDiv0), value.Number(7)), 7)
	wantNum(exec(t, r, "IFERROR", value.Error(value.ErrNA), value.Number(9)), 9)
	wantNum(exec(t, r, "IFERROR", value.Number(5), value.Number(9)), 5)
}

func TestIfNaOnlySubstitutesOnNA(t *testing.T) {
	r := newRegistry()
	wantErr(t, exec(t, r, "IFNA", value.Error(value.ErrDiv0), value.Number(9)), value.ErrDiv0)
	got := exec(t, r, "IFNA", value.Error(value.ErrNA), value.Number(9))
	if !got.IsNumber() || got.AsNumber() != 9 {
		t.Fatalf("got %v, want 9", got)
	}
}

func TestErrorType(t *testing.T) {
	r := newRegistry()
	wantNum := func(got value.CellValue, want float64) {
		t.Helper()
		if !got.IsNumber() || got.AsNumber() != want {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
	wantNum(exec(t, r, "ERROR.TYPE", value.Error(value.ErrNull)), 1)
	wantNum(exec(t, r, "ERROR.TYPE", value.Error(value.ErrDiv0)), 2)
	wantNum(exec(t, r, "ERROR.TYPE", value.Error(value.ErrNA)), 7)
	wantErr(t, exec(t, r, "ERROR.TYPE", value.Number(1)), value.ErrNA)
}

func TestNFunction(t *testing.T) {
	r := newRegistry()
	got := exec(t, r, "N", value.Boolean(true))
	if !got.IsNumber() || got.AsNumber() != 1 {
		t.Fatalf("got %v, want 1", got)
	}
	got = exec(t, r, "N", value.Text("hi"))
	if !got.IsNumber() || got.AsNumber() != 0 {
		t.Fatalf("got %v, want 0", got)
	}
	wantErr(t, exec(t, r, "N", value.Error(value.ErrValue)), value.ErrValue)
}

func TestNaArity(t *testing.T) {
	r := newRegistry()
	wantErr(t, exec(t, r, "NA"), value.ErrNA)
	wantErr(t, exec(t, r, "NA", value.Number(1)), value.ErrValue)
}
