// Package registry implements function dispatch: a name-keyed map of
// immutable, stateless function handles, built once at start-up and only
// read after that; no freeze step enforces this. It is the only surface
// the external parser/resolver consumes.
package registry

import (
	"github.com/pkg/errors"

	"github.com/xlcore/formulacore/internal/value"
)

// Context is the opaque capability handle passed as the first argument
// to every Execute call. The core reads only Today from it;
// SheetScope is optional and used only by the SHEET/SHEETS
// placeholders.
type Context interface {
	// Today returns the current day as an Excel-compatible serial date
	// (integer part only; date functions that need "now" truncate it).
	Today() float64
}

// SheetScope is an optional capability a Context may also implement.
// When a Context does not implement it, SHEET and SHEETS fall back to 1.
// ISFORMULA/FORMULATEXT/GETPIVOTDATA do not consult it and always return
// fixed stub values.
type SheetScope interface {
	SheetCount() int
	CurrentSheetIndex() int
}

// Function is the handle every registered implementation satisfies.
// Execute never returns a Go error: every failure mode is represented as
// a value.CellValue carrying one of the seven error kinds.
type Function interface {
	Name() string
	Execute(ctx Context, args []value.CellValue) value.CellValue
}

// FuncAdapter lets a plain function literal satisfy Function without a
// dedicated struct per implementation.
type FuncAdapter struct {
	FnName string
	Fn     func(ctx Context, args []value.CellValue) value.CellValue
}

func (f FuncAdapter) Name() string { return f.FnName }

func (f FuncAdapter) Execute(ctx Context, args []value.CellValue) value.CellValue {
	return f.Fn(ctx, args)
}

// Registry is a name-keyed map of Functions, filled at start-up. It has
// no freeze step and no locking: Register remains callable after the
// build.
type Registry struct {
	fns map[string]Function
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{fns: make(map[string]Function)}
}

// Register adds fn under its canonical (upper-case) name. Registering a
// name twice is a programming error caught at start-up, never at
// evaluation time. It panics with an error wrapped by pkg/errors, which
// records the stack of the Register call (printed with %+v by a caller
// that recovers it; the plain panic message shows only the error text).
func (r *Registry) Register(fn Function) {
	name := fn.Name()
	if _, exists := r.fns[name]; exists {
		panic(errors.Wrapf(errDuplicateRegistration, "function %q", name))
	}
	r.fns[name] = fn
}

// RegisterFunc is sugar for Register(FuncAdapter{...}).
func (r *Registry) RegisterFunc(name string, fn func(ctx Context, args []value.CellValue) value.CellValue) {
	r.Register(FuncAdapter{FnName: name, Fn: fn})
}

// Lookup resolves a canonical upper-case name to its implementation. An
// unknown name is the parser's problem and is reported here
// only as (nil, false), never as a CellValue error.
func (r *Registry) Lookup(name string) (Function, bool) {
	fn, ok := r.fns[name]
	return fn, ok
}

// Execute resolves name and runs it, coercing any non-finite Number the
// implementation returns to #NUM!; a handle leaking NaN or Inf is a
// bug and must not surface past this point.
func (r *Registry) Execute(ctx Context, name string, a []value.CellValue) value.CellValue {
	fn, ok := r.Lookup(name)
	if !ok {
		return value.Error(value.ErrName)
	}
	result := fn.Execute(ctx, a)
	if result.IsNumber() {
		// value.Number already guards NaN/Inf at construction time, but
		// an implementation that builds a CellValue by hand (struct
		// literal) would bypass that guard; re-validate on the way out.
		return value.Number(result.AsNumber())
	}
	return result
}

// Names returns every registered canonical name, useful for tooling and
// tests; iteration order is not guaranteed.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.fns))
	for n := range r.fns {
		out = append(out, n)
	}
	return out
}

var errDuplicateRegistration = errors.New("duplicate function registration")
