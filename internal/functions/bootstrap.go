// Package functions wires every function family into a single registry
// built once at start-up.
package functions

import (
	"github.com/xlcore/formulacore/internal/baseconv"
	"github.com/xlcore/formulacore/internal/complexnum"
	"github.com/xlcore/formulacore/internal/convert"
	"github.com/xlcore/formulacore/internal/datetime"
	"github.com/xlcore/formulacore/internal/functions/financial"
	"github.com/xlcore/formulacore/internal/functions/info"
	"github.com/xlcore/formulacore/internal/functions/lookup"
	"github.com/xlcore/formulacore/internal/functions/mathtrig"
	"github.com/xlcore/formulacore/internal/functions/statistical"
	"github.com/xlcore/formulacore/internal/functions/text"
	"github.com/xlcore/formulacore/internal/registry"
)

// Bootstrap builds a frozen registry carrying every function family. It
// is the single entry point cmd/formulacore (or any other embedder)
// calls once at start-up.
func Bootstrap() *registry.Registry {
	r := registry.New()
	mathtrig.Register(r)
	financial.Register(r)
	statistical.Register(r)
	complexnum.Register(r)
	baseconv.Register(r)
	convert.Register(r)
	datetime.Register(r)
	text.Register(r)
	lookup.Register(r)
	info.Register(r)
	return r
}
