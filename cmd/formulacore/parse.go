package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xlcore/formulacore/internal/value"
)

// parseCall parses a single "NAME(arg, arg, ...)" line into a function
// name and its flattened CellValue arguments (the core always
// receives a flat scalar sequence; cell references and ranges belong to
// the external parser this binary stands in for).
func parseCall(line string) (name string, args []value.CellValue, err error) {
	line = strings.TrimSpace(line)
	open := strings.IndexByte(line, '(')
	if open < 0 || !strings.HasSuffix(line, ")") {
		return "", nil, fmt.Errorf("expected NAME(args...), got %q", line)
	}
	name = strings.ToUpper(strings.TrimSpace(line[:open]))
	if name == "" {
		return "", nil, fmt.Errorf("missing function name")
	}
	body := line[open+1 : len(line)-1]
	tokens, err := splitArgs(body)
	if err != nil {
		return "", nil, err
	}
	args = make([]value.CellValue, 0, len(tokens))
	for _, tok := range tokens {
		v, err := parseLiteral(strings.TrimSpace(tok))
		if err != nil {
			return "", nil, err
		}
		args = append(args, v)
	}
	return name, args, nil
}

// splitArgs splits a comma-separated argument list, respecting quoted
// strings so a literal comma inside "..." doesn't split the argument.
func splitArgs(body string) ([]string, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, nil
	}
	var out []string
	var cur strings.Builder
	inQuotes := false
	for i := 0; i < len(body); i++ {
		c := body[i]
		switch {
		case c == '"':
			inQuotes = !inQuotes
			cur.WriteByte(c)
		case c == ',' && !inQuotes:
			out = append(out, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	if inQuotes {
		return nil, fmt.Errorf("unterminated string literal")
	}
	out = append(out, cur.String())
	return out, nil
}

// parseLiteral parses one argument token into a CellValue: a quoted
// string, TRUE/FALSE, one of the seven canonical error spellings, or a
// decimal number.
func parseLiteral(tok string) (value.CellValue, error) {
	switch {
	case len(tok) >= 2 && tok[0] == '"' && tok[len(tok)-1] == '"':
		return value.Text(tok[1 : len(tok)-1]), nil
	case strings.EqualFold(tok, "TRUE"):
		return value.Boolean(true), nil
	case strings.EqualFold(tok, "FALSE"):
		return value.Boolean(false), nil
	case tok == "":
		return value.Empty, nil
	}
	if kind, ok := errorKindOf(tok); ok {
		return value.Error(kind), nil
	}
	f, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return value.CellValue{}, fmt.Errorf("cannot parse argument %q", tok)
	}
	return value.Number(f), nil
}

func errorKindOf(tok string) (value.ErrorKind, bool) {
	for _, kind := range []value.ErrorKind{
		value.ErrDiv0, value.ErrValue, value.ErrRef, value.ErrName,
		value.ErrNum, value.ErrNA, value.ErrNull,
	} {
		if strings.EqualFold(tok, string(kind)) {
			return kind, true
		}
	}
	return "", false
}
