package main

import (
	"time"

	"github.com/xlcore/formulacore/internal/datetime"
)

// replContext is the minimal registry.Context this REPL provides: a
// single-sheet workbook stand-in good enough to exercise TODAY/NOW and
// the SHEET/SHEETS placeholders.
type replContext struct{}

func (replContext) Today() float64 {
	return datetime.TimeToSerial(time.Now())
}

func (replContext) SheetCount() int        { return 1 }
func (replContext) CurrentSheetIndex() int { return 1 }
