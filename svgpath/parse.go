package svgpath

import (
	"errors"
	"fmt"

	"github.com/tdewolff/parse/v2/strconv"
)

// ErrSyntax is wrapped by the errors returned when parsing invalid path data.
var ErrSyntax = errors.New("svgpath: invalid path data")

// number of operands expected by each command
var arities = map[byte]int{
	'M': 2,
	'L': 2,
	'H': 1,
	'V': 1,
	'C': 6,
	'S': 4,
	'Q': 4,
	'T': 2,
	'A': 7,
	'Z': 0,
}

// Parse parses the SVG path data `d`.
// Whitespace and commas are interchangeable and optional, numbers
// may use a sign, a decimal point and an exponent.
// A command letter followed by several operand tuples is repeated,
// except for moveto, whose extra pairs are lineto commands.
// An empty input returns an empty path and no error.
// On invalid input, the commands parsed so far are returned
// alongside an error wrapping ErrSyntax.
func Parse(d string) (Path, error) {
	p := parser{data: []byte(d)}
	return p.parse()
}

// MustParse is like Parse but panics on invalid input.
// It is intended for static path data.
func MustParse(d string) Path {
	p, err := Parse(d)
	if err != nil {
		panic(err)
	}
	return p
}

type parser struct {
	data []byte
	pos  int
}

func isSeparator(c byte) bool {
	return c == ' ' || c == ',' || c == '\n' || c == '\r' || c == '\t' || c == '\f'
}

func (p *parser) skipSeparators() {
	for p.pos < len(p.data) && isSeparator(p.data[p.pos]) {
		p.pos++
	}
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s at position %d", ErrSyntax, fmt.Sprintf(format, args...), p.pos+1)
}

// startsNumber returns true if a number may start at the current position
func (p *parser) startsNumber() bool {
	if p.pos >= len(p.data) {
		return false
	}
	c := p.data[p.pos]
	return c >= '0' && c <= '9' || c == '.' || c == '-' || c == '+'
}

func (p *parser) number(cmd byte) (float64, error) {
	p.skipSeparators()
	if p.pos >= len(p.data) {
		return 0, p.errorf("missing operand for command '%c'", cmd)
	}
	v, n := strconv.ParseFloat(p.data[p.pos:])
	if n == 0 {
		return 0, p.errorf("expected number for command '%c', got '%c'", cmd, p.data[p.pos])
	}
	p.pos += n
	return v, nil
}

// flag reads an arc flag, which is always a single digit
// and may abut the next number
func (p *parser) flag() (bool, error) {
	p.skipSeparators()
	if p.pos >= len(p.data) {
		return false, p.errorf("missing arc flag")
	}
	switch p.data[p.pos] {
	case '0':
		p.pos++
		return false, nil
	case '1':
		p.pos++
		return true, nil
	}
	return false, p.errorf("arc flag should be 0 or 1, got '%c'", p.data[p.pos])
}

func (p *parser) parse() (Path, error) {
	var path Path
	p.skipSeparators()
	for p.pos < len(p.data) {
		letter := p.data[p.pos]
		upper := letter
		if 'a' <= letter && letter <= 'z' {
			upper -= 'a' - 'A'
		}
		if _, ok := arities[upper]; !ok {
			return path, p.errorf("unknown command '%c'", letter)
		}
		p.pos++
		relative := letter != upper
		if upper == 'Z' {
			path = append(path, Close{Relative: relative})
			p.skipSeparators()
			continue
		}

		for repeat := false; ; repeat = true {
			p.skipSeparators()
			if repeat && !p.startsNumber() {
				break
			}
			cmd, err := p.operands(upper, relative, repeat)
			if err != nil {
				return path, err
			}
			path = append(path, cmd)
		}
	}
	return path, nil
}

// operands reads the arguments of one occurrence of the command `upper`.
func (p *parser) operands(upper byte, relative, repeat bool) (Command, error) {
	var args [7]float64
	for i := 0; i < arities[upper]; i++ {
		var err error
		if upper == 'A' && (i == 3 || i == 4) {
			var b bool
			b, err = p.flag()
			args[i] = flag(b)
		} else {
			args[i], err = p.number(upper)
		}
		if err != nil {
			return nil, err
		}
	}

	switch upper {
	case 'M':
		if repeat { // implicit lineto
			return LineTo{X: args[0], Y: args[1], Relative: relative}, nil
		}
		return MoveTo{X: args[0], Y: args[1], Relative: relative}, nil
	case 'L':
		return LineTo{X: args[0], Y: args[1], Relative: relative}, nil
	case 'H':
		return HorizontalLineTo{X: args[0], Relative: relative}, nil
	case 'V':
		return VerticalLineTo{Y: args[0], Relative: relative}, nil
	case 'C':
		return CurveTo{X1: args[0], Y1: args[1], X2: args[2], Y2: args[3], X: args[4], Y: args[5], Relative: relative}, nil
	case 'S':
		return SmoothCurveTo{X2: args[0], Y2: args[1], X: args[2], Y: args[3], Relative: relative}, nil
	case 'Q':
		return QuadTo{X1: args[0], Y1: args[1], X: args[2], Y: args[3], Relative: relative}, nil
	case 'T':
		return SmoothQuadTo{X: args[0], Y: args[1], Relative: relative}, nil
	default: // 'A'
		return ArcTo{
			RX: args[0], RY: args[1], Rotation: args[2],
			LargeArc: args[3] != 0, Sweep: args[4] != 0,
			X: args[5], Y: args[6], Relative: relative,
		}, nil
	}
}

// ReadNumbers parses a list of numbers separated by
// commas and/or whitespace, as found in the `points`
// attribute of polygons or in a viewBox.
func ReadNumbers(s string) ([]float64, error) {
	p := parser{data: []byte(s)}
	var out []float64
	for {
		p.skipSeparators()
		if p.pos >= len(p.data) {
			return out, nil
		}
		v, n := strconv.ParseFloat(p.data[p.pos:])
		if n == 0 {
			return out, p.errorf("expected number, got '%c'", p.data[p.pos])
		}
		p.pos += n
		out = append(out, v)
	}
}
