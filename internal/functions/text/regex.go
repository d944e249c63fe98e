package text

import (
	"regexp"
	"strings"

	"github.com/xlcore/formulacore/internal/args"
	"github.com/xlcore/formulacore/internal/registry"
	"github.com/xlcore/formulacore/internal/value"
)

const (
	modeCaseInsensitive = 1
	modeMultiline       = 2
	modeDotAll          = 4
	modeMask            = modeCaseInsensitive | modeMultiline | modeDotAll
)

// compileWithMode translates the REGEX* mode bitmask into Go regexp
// inline flags; an invalid mode or pattern is reported via ok=false.
func compileWithMode(pattern string, mode int) (*regexp.Regexp, bool) {
	if mode < 0 || mode&^modeMask != 0 {
		return nil, false
	}
	var flags strings.Builder
	if mode&modeCaseInsensitive != 0 {
		flags.WriteByte('i')
	}
	if mode&modeMultiline != 0 {
		flags.WriteByte('m')
	}
	if mode&modeDotAll != 0 {
		flags.WriteByte('s')
	}
	expr := pattern
	if flags.Len() > 0 {
		expr = "(?" + flags.String() + ")" + pattern
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, false
	}
	return re, true
}

func registerRegex(r *registry.Registry) {
	r.RegisterFunc("REGEXTEST", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if !args.Range(a, 2, 3) {
			return arityErr()
		}
		s, errv, ok := args.Text(a[0])
		if !ok {
			return errv
		}
		pattern, errv, ok := args.Text(a[1])
		if !ok {
			return errv
		}
		mode := 0.0
		if len(a) == 3 {
			if mode, errv, ok = args.Number(a[2]); !ok {
				return errv
			}
		}
		re, ok := compileWithMode(pattern, int(mode))
		if !ok {
			return value.Error(value.ErrValue)
		}
		return value.Boolean(re.MatchString(s))
	})

	r.RegisterFunc("REGEXEXTRACT", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if !args.Range(a, 2, 5) {
			return arityErr()
		}
		s, errv, ok := args.Text(a[0])
		if !ok {
			return errv
		}
		pattern, errv, ok := args.Text(a[1])
		if !ok {
			return errv
		}
		mode := 0.0
		if len(a) >= 3 {
			if mode, errv, ok = args.Number(a[2]); !ok {
				return errv
			}
		}
		// The 5-arg form is (text, pattern, mode, return_mode,
		// capture_group) with return_mode reserved at 0; the 4-arg form
		// omits return_mode, so the trailing argument is the capture
		// group.
		captureGroup := 0.0
		if len(a) == 5 {
			returnMode, errv, ok := args.Number(a[3])
			if !ok {
				return errv
			}
			if returnMode != 0 {
				return value.Error(value.ErrValue)
			}
			if captureGroup, errv, ok = args.Number(a[4]); !ok {
				return errv
			}
		} else if len(a) == 4 {
			if captureGroup, errv, ok = args.Number(a[3]); !ok {
				return errv
			}
		}
		re, ok := compileWithMode(pattern, int(mode))
		if !ok {
			return value.Error(value.ErrValue)
		}
		match := re.FindStringSubmatch(s)
		if match == nil {
			return value.Error(value.ErrNA)
		}
		group := int(captureGroup)
		if group < 0 || group >= len(match) {
			return value.Error(value.ErrValue)
		}
		return value.Text(match[group])
	})

	r.RegisterFunc("REGEXREPLACE", func(ctx registry.Context, a []value.CellValue) value.CellValue {
		if !args.Range(a, 3, 5) {
			return arityErr()
		}
		s, errv, ok := args.Text(a[0])
		if !ok {
			return errv
		}
		pattern, errv, ok := args.Text(a[1])
		if !ok {
			return errv
		}
		replacement, errv, ok := args.Text(a[2])
		if !ok {
			return errv
		}
		mode := 0.0
		if len(a) >= 4 {
			if mode, errv, ok = args.Number(a[3]); !ok {
				return errv
			}
		}
		occurrence := 0.0
		if len(a) == 5 {
			if occurrence, errv, ok = args.Number(a[4]); !ok {
				return errv
			}
		}
		if occurrence < 0 {
			return value.Error(value.ErrValue)
		}
		re, ok := compileWithMode(pattern, int(mode))
		if !ok {
			return value.Error(value.ErrValue)
		}
		goReplacement := excelBackrefToGo(replacement)
		return value.Text(regexReplace(re, s, goReplacement, int(occurrence)))
	})
}

// excelBackrefToGo rewrites Excel's "$1".."$9" backreferences into Go
// regexp's "${1}".."${9}" form. Any other "$" is escaped to "$$" so Go's
// expansion syntax cannot misread a literal dollar as a group name.
func excelBackrefToGo(replacement string) string {
	var b strings.Builder
	for i := 0; i < len(replacement); i++ {
		c := replacement[i]
		if c != '$' {
			b.WriteByte(c)
			continue
		}
		if i+1 < len(replacement) && replacement[i+1] >= '1' && replacement[i+1] <= '9' {
			b.WriteString("${")
			b.WriteByte(replacement[i+1])
			b.WriteByte('}')
			i++
			continue
		}
		b.WriteString("$$")
	}
	return b.String()
}

// regexReplace replaces the occurrence-th match (1-based), or every
// match when occurrence is 0. An occurrence beyond the match count
// leaves s unchanged.
func regexReplace(re *regexp.Regexp, s, replacement string, occurrence int) string {
	if occurrence == 0 {
		return re.ReplaceAllString(s, replacement)
	}
	matches := re.FindAllStringSubmatchIndex(s, -1)
	if occurrence > len(matches) {
		return s
	}
	loc := matches[occurrence-1]
	expanded := re.ExpandString(nil, replacement, s, loc)
	return s[:loc[0]] + string(expanded) + s[loc[1]:]
}
