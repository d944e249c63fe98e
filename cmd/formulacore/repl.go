package main

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/lmorg/readline/v4"

	"github.com/xlcore/formulacore/internal/registry"
	"github.com/xlcore/formulacore/internal/value"
)

// REPL evaluates one "NAME(args...)" call per line against a registry.
type REPL struct {
	registry *registry.Registry
	ctx      registry.Context
	output   io.Writer
}

func newREPL(r *registry.Registry, out io.Writer) *REPL {
	return &REPL{registry: r, ctx: replContext{}, output: out}
}

// RunInteractive drives the REPL with line-editing and history.
func (r *REPL) RunInteractive() {
	rl := readline.NewInstance()
	rl.SetPrompt("formulacore> ")
	for {
		line, err := rl.Readline()
		if err != nil {
			return
		}
		if !r.handleLine(line) {
			return
		}
	}
}

// Run drives the REPL over a plain reader (piped input, scripts).
func (r *REPL) Run(in io.Reader) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if !r.handleLine(scanner.Text()) {
			return
		}
	}
}

// handleLine evaluates one input line; it returns false when the REPL
// should stop.
func (r *REPL) handleLine(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return true
	}
	switch strings.ToLower(line) {
	case "quit", "exit":
		return false
	case "help":
		r.printHelp()
		return true
	case "functions":
		r.printFunctions()
		return true
	}
	name, args, err := parseCall(line)
	if err != nil {
		fmt.Fprintf(r.output, "parse error: %v\n", err)
		return true
	}
	result := r.registry.Execute(r.ctx, name, args)
	fmt.Fprintln(r.output, renderResult(result))
	return true
}

func renderResult(v value.CellValue) string {
	if v.IsText() {
		return fmt.Sprintf("%q", v.AsText())
	}
	return value.ToText(v)
}

func (r *REPL) printHelp() {
	fmt.Fprintln(r.output, `formulacore - evaluates one spreadsheet function call per line.

  SUM(1, 2, 3)
  VLOOKUP(2, 1, "a", 2, "b", 2, 2, 2, FALSE)
  IMSUM("3+4i", "1-2i")

Commands: help, functions, quit`)
}

func (r *REPL) printFunctions() {
	names := r.registry.Names()
	sort.Strings(names)
	for _, n := range names {
		fmt.Fprintln(r.output, n)
	}
}
