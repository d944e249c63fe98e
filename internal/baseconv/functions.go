package baseconv

import (
	"github.com/xlcore/formulacore/internal/args"
	"github.com/xlcore/formulacore/internal/registry"
	"github.com/xlcore/formulacore/internal/value"
)

func arityErr() value.CellValue { return value.Error(value.ErrValue) }

// Register wires every BIN2*/OCT2*/DEC2*/HEX2* and BIT* function into r.
func Register(r *registry.Registry) {
	registerToDec(r, "BIN2DEC", 2)
	registerToDec(r, "OCT2DEC", 8)
	registerToDec(r, "HEX2DEC", 16)

	registerFromDec(r, "DEC2BIN", 2)
	registerFromDec(r, "DEC2OCT", 8)
	registerFromDec(r, "DEC2HEX", 16)

	registerCross(r, "BIN2OCT", 2, 8)
	registerCross(r, "BIN2HEX", 2, 16)
	registerCross(r, "OCT2BIN", 8, 2)
	registerCross(r, "OCT2HEX", 8, 16)
	registerCross(r, "HEX2BIN", 16, 2)
	registerCross(r, "HEX2OCT", 16, 8)

	registerBitwise(r)
}

func registerToDec(r *registry.Registry, name string, base int) {
	r.RegisterFunc(name, func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if !args.Exact(a, 1) {
			return arityErr()
		}
		s, errv, ok := args.Text(a[0])
		if !ok {
			return errv
		}
		n, ok := Parse(s, base)
		if !ok {
			return value.Error(value.ErrNum)
		}
		return value.Number(float64(n))
	})
}

func registerFromDec(r *registry.Registry, name string, base int) {
	r.RegisterFunc(name, func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if !args.Range(a, 1, 2) {
			return arityErr()
		}
		n, errv, ok := args.Number(a[0])
		if !ok {
			return errv
		}
		places := 0
		if len(a) == 2 {
			p, errv, ok := args.Number(a[1])
			if !ok {
				return errv
			}
			places = int(p)
		}
		s, ok := Format(int64(n), base, places)
		if !ok {
			return value.Error(value.ErrNum)
		}
		return value.Text(s)
	})
}

func registerCross(r *registry.Registry, name string, from, to int) {
	r.RegisterFunc(name, func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if !args.Range(a, 1, 2) {
			return arityErr()
		}
		s, errv, ok := args.Text(a[0])
		if !ok {
			return errv
		}
		n, ok := Parse(s, from)
		if !ok {
			return value.Error(value.ErrNum)
		}
		places := 0
		if len(a) == 2 {
			p, errv, ok := args.Number(a[1])
			if !ok {
				return errv
			}
			places = int(p)
		}
		out, ok := Format(n, to, places)
		if !ok {
			return value.Error(value.ErrNum)
		}
		return value.Text(out)
	})
}

func registerBitwise(r *registry.Registry) {
	binary := func(name string, f func(a, b uint64) uint64) {
		r.RegisterFunc(name, func(ctx registry.Context, a []value.CellValue) value.CellValue {
			if !args.Exact(a, 2) {
				return arityErr()
			}
			n1, errv, ok := args.Number(a[0])
			if !ok {
				return errv
			}
			n2, errv, ok := args.Number(a[1])
			if !ok {
				return errv
			}
			u1, ok := ValidBitOperand(n1)
			if !ok {
				return value.Error(value.ErrNum)
			}
			u2, ok := ValidBitOperand(n2)
			if !ok {
				return value.Error(value.ErrNum)
			}
			return value.Number(float64(f(u1, u2)))
		})
	}
	binary("BITAND", func(a, b uint64) uint64 { return a & b })
	binary("BITOR", func(a, b uint64) uint64 { return a | b })
	binary("BITXOR", func(a, b uint64) uint64 { return a ^ b })

	shift := func(name string, left bool) {
		r.RegisterFunc(name, func(ctx registry.Context, a []value.CellValue) value.CellValue {
			if !args.Exact(a, 2) {
				return arityErr()
			}
			n, errv, ok := args.Number(a[0])
			if !ok {
				return errv
			}
			amount, errv, ok := args.Number(a[1])
			if !ok {
				return errv
			}
			u, ok := ValidBitOperand(n)
			if !ok {
				return value.Error(value.ErrNum)
			}
			shiftLeft := left
			mag := amount
			if mag < 0 {
				shiftLeft = !shiftLeft
				mag = -mag
			}
			if mag > 53 {
				return value.Error(value.ErrNum)
			}
			var result uint64
			if shiftLeft {
				result = u << uint(mag)
				if result > bitWindowMax {
					return value.Error(value.ErrNum)
				}
			} else {
				result = u >> uint(mag)
			}
			return value.Number(float64(result))
		})
	}
	shift("BITLSHIFT", true)
	shift("BITRSHIFT", false)
}
