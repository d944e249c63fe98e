package datetime

import (
	"github.com/xlcore/formulacore/internal/args"
	"github.com/xlcore/formulacore/internal/registry"
	"github.com/xlcore/formulacore/internal/value"
)

func arityErr() value.CellValue { return value.Error(value.ErrValue) }

// Register wires every date and business-day function into r.
func Register(r *registry.Registry) {
	r.RegisterFunc("DATE", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if !args.Exact(a, 3) {
			return arityErr()
		}
		y, errv, ok := args.Number(a[0])
		if !ok {
			return errv
		}
		m, errv, ok := args.Number(a[1])
		if !ok {
			return errv
		}
		d, errv, ok := args.Number(a[2])
		if !ok {
			return errv
		}
		return value.Number(DateSerial(int(y), int(m), int(d)))
	})

	component := func(name string, f func(serial float64) int) {
		r.RegisterFunc(name, func(ctx registry.Context, a []value.CellValue) value.CellValue {
			if !args.Exact(a, 1) {
				return arityErr()
			}
			n, errv, ok := args.Number(a[0])
			if !ok {
				return errv
			}
			return value.Number(float64(f(n)))
		})
	}
	component("YEAR", func(s float64) int { return SerialToTime(s).Year() })
	component("MONTH", func(s float64) int { return int(SerialToTime(s).Month()) })
	component("DAY", func(s float64) int { return SerialToTime(s).Day() })

	r.RegisterFunc("WEEKDAY", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if !args.Range(a, 1, 2) {
			return arityErr()
		}
		serial, errv, ok := args.Number(a[0])
		if !ok {
			return errv
		}
		returnType := 1.0
		if len(a) == 2 {
			if returnType, errv, ok = args.Number(a[1]); !ok {
				return errv
			}
		}
		dow := Weekday(serial) // 0=Sunday..6=Saturday
		switch int(returnType) {
		case 1:
			return value.Number(float64(dow + 1))
		case 2:
			return value.Number(float64((dow+6)%7 + 1))
		case 3:
			return value.Number(float64((dow + 6) % 7))
		}
		return value.Error(value.ErrNum)
	})

	r.RegisterFunc("EDATE", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if !args.Exact(a, 2) {
			return arityErr()
		}
		serial, errv, ok := args.Number(a[0])
		if !ok {
			return errv
		}
		months, errv, ok := args.Number(a[1])
		if !ok {
			return errv
		}
		return value.Number(EDate(serial, int(months)))
	})

	r.RegisterFunc("EOMONTH", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if !args.Exact(a, 2) {
			return arityErr()
		}
		serial, errv, ok := args.Number(a[0])
		if !ok {
			return errv
		}
		months, errv, ok := args.Number(a[1])
		if !ok {
			return errv
		}
		return value.Number(EoMonth(serial, int(months)))
	})

	r.RegisterFunc("DATEDIF", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if !args.Exact(a, 3) {
			return arityErr()
		}
		start, errv, ok := args.Number(a[0])
		if !ok {
			return errv
		}
		end, errv, ok := args.Number(a[1])
		if !ok {
			return errv
		}
		unit, errv, ok := args.Text(a[2])
		if !ok {
			return errv
		}
		result, ok := DateDif(start, end, unit)
		if !ok {
			return value.Error(value.ErrNum)
		}
		return value.Number(float64(result))
	})

	r.RegisterFunc("TODAY", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if !args.Exact(a, 0) {
			return arityErr()
		}
		return value.Number(ctx.Today())
	})
	r.RegisterFunc("NOW", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if !args.Exact(a, 0) {
			return arityErr()
		}
		return value.Number(ctx.Today())
	})

	r.RegisterFunc("WEEKNUM", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if !args.Range(a, 1, 2) {
			return arityErr()
		}
		serial, errv, ok := args.Number(a[0])
		if !ok {
			return errv
		}
		returnType := 1.0
		if len(a) == 2 {
			if returnType, errv, ok = args.Number(a[1]); !ok {
				return errv
			}
		}
		week, ok := WeekNum(serial, int(returnType))
		if !ok {
			return value.Error(value.ErrNum)
		}
		return value.Number(float64(week))
	})

	r.RegisterFunc("NETWORKDAYS", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if !args.Range(a, 2, -1) {
			return arityErr()
		}
		if errv, found := args.FirstError(a); found {
			return errv
		}
		start, errv, ok := args.Number(a[0])
		if !ok {
			return errv
		}
		end, errv, ok := args.Number(a[1])
		if !ok {
			return errv
		}
		holidays, errv, ok := numbersFrom(a[2:])
		if !ok {
			return errv
		}
		return value.Number(float64(NetworkDays(start, end, holidays)))
	})

	r.RegisterFunc("WORKDAY", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if !args.Range(a, 2, -1) {
			return arityErr()
		}
		if errv, found := args.FirstError(a); found {
			return errv
		}
		start, errv, ok := args.Number(a[0])
		if !ok {
			return errv
		}
		days, errv, ok := args.Number(a[1])
		if !ok {
			return errv
		}
		holidays, errv, ok := numbersFrom(a[2:])
		if !ok {
			return errv
		}
		return value.Number(WorkDay(start, int(days), holidays))
	})
}

func numbersFrom(a []value.CellValue) ([]float64, value.CellValue, bool) {
	out := make([]float64, 0, len(a))
	for _, v := range a {
		n, errv, ok := args.Number(v)
		if !ok {
			return nil, errv, false
		}
		out = append(out, n)
	}
	return out, value.CellValue{}, true
}
