// Command formulacore is a thin demonstration binary: it wires every
// function family into a registry and evaluates one "NAME(args...)"
// call per line, proving the registry built in internal/functions is
// correctly assembled. Cell references, ranges, and recalculation are
// out of scope; every argument here is a literal.
package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/xlcore/formulacore/internal/functions"
	"github.com/xlcore/formulacore/internal/registry"
)

func main() {
	r := functions.Bootstrap()

	if len(os.Args) > 1 {
		runFile(r, os.Args[1])
		return
	}

	repl := newREPL(r, os.Stdout)
	if isatty.IsTerminal(os.Stdin.Fd()) {
		repl.RunInteractive()
		return
	}
	repl.Run(os.Stdin)
}

// runFile evaluates every non-blank line of filename the way the REPL
// does (a single call or a REPL command) and prints each result, in
// source order. There is no comment syntax: every non-blank line is
// evaluated.
func runFile(r *registry.Registry, filename string) {
	data, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "formulacore: %v\n", err)
		os.Exit(1)
	}
	repl := newREPL(r, os.Stdout)
	repl.Run(bytes.NewReader(data))
}
