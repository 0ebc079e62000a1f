// Implements the SVG path data mini-language:
// parsing into commands, resolution to absolute coordinates,
// serialization, and the conversion of basic shapes into paths.
package svgpath

import (
	"strings"
)

type commandKind uint8

// Human readable command constants
const (
	kindMoveTo commandKind = iota
	kindLineTo
	kindHorizontalLineTo
	kindVerticalLineTo
	kindCurveTo
	kindSmoothCurveTo
	kindQuadTo
	kindSmoothQuadTo
	kindArcTo
	kindClose
)

// Command groups the different SVG path commands.
// Operands are stored as written in the source: relative
// commands are not resolved against the current point.
type Command interface {
	command() commandKind
	// IsRelative returns true for lower case commands.
	IsRelative() bool
}

type MoveTo struct {
	X, Y     float64
	Relative bool
}

type LineTo struct {
	X, Y     float64
	Relative bool
}

type HorizontalLineTo struct {
	X        float64
	Relative bool
}

type VerticalLineTo struct {
	Y        float64
	Relative bool
}

// CurveTo is a cubic bezier curve
type CurveTo struct {
	X1, Y1, X2, Y2, X, Y float64
	Relative             bool
}

// SmoothCurveTo is a cubic bezier curve whose first control
// point is the reflection of the previous one.
type SmoothCurveTo struct {
	X2, Y2, X, Y float64
	Relative     bool
}

// QuadTo is a quadratic bezier curve
type QuadTo struct {
	X1, Y1, X, Y float64
	Relative     bool
}

type SmoothQuadTo struct {
	X, Y     float64
	Relative bool
}

// ArcTo is an elliptical arc; Rotation is in degrees.
type ArcTo struct {
	RX, RY, Rotation float64
	LargeArc, Sweep  bool
	X, Y             float64
	Relative         bool
}

type Close struct {
	Relative bool
}

func (MoveTo) command() commandKind           { return kindMoveTo }
func (LineTo) command() commandKind           { return kindLineTo }
func (HorizontalLineTo) command() commandKind { return kindHorizontalLineTo }
func (VerticalLineTo) command() commandKind   { return kindVerticalLineTo }
func (CurveTo) command() commandKind          { return kindCurveTo }
func (SmoothCurveTo) command() commandKind    { return kindSmoothCurveTo }
func (QuadTo) command() commandKind           { return kindQuadTo }
func (SmoothQuadTo) command() commandKind     { return kindSmoothQuadTo }
func (ArcTo) command() commandKind            { return kindArcTo }
func (Close) command() commandKind            { return kindClose }

func (c MoveTo) IsRelative() bool           { return c.Relative }
func (c LineTo) IsRelative() bool           { return c.Relative }
func (c HorizontalLineTo) IsRelative() bool { return c.Relative }
func (c VerticalLineTo) IsRelative() bool   { return c.Relative }
func (c CurveTo) IsRelative() bool          { return c.Relative }
func (c SmoothCurveTo) IsRelative() bool    { return c.Relative }
func (c QuadTo) IsRelative() bool           { return c.Relative }
func (c SmoothQuadTo) IsRelative() bool     { return c.Relative }
func (c ArcTo) IsRelative() bool            { return c.Relative }
func (c Close) IsRelative() bool            { return c.Relative }

var letters = [...]byte{
	kindMoveTo:           'M',
	kindLineTo:           'L',
	kindHorizontalLineTo: 'H',
	kindVerticalLineTo:   'V',
	kindCurveTo:          'C',
	kindSmoothCurveTo:    'S',
	kindQuadTo:           'Q',
	kindSmoothQuadTo:     'T',
	kindArcTo:            'A',
	kindClose:            'Z',
}

// Letter returns the path data letter of the command,
// in lower case for relative commands.
func Letter(c Command) byte {
	l := letters[c.command()]
	if c.IsRelative() {
		l += 'a' - 'A'
	}
	return l
}

// Operands returns the numeric operands of the command, in source order.
// Arc flags are returned as 0 or 1.
func Operands(c Command) []float64 {
	switch c := c.(type) {
	case MoveTo:
		return []float64{c.X, c.Y}
	case LineTo:
		return []float64{c.X, c.Y}
	case HorizontalLineTo:
		return []float64{c.X}
	case VerticalLineTo:
		return []float64{c.Y}
	case CurveTo:
		return []float64{c.X1, c.Y1, c.X2, c.Y2, c.X, c.Y}
	case SmoothCurveTo:
		return []float64{c.X2, c.Y2, c.X, c.Y}
	case QuadTo:
		return []float64{c.X1, c.Y1, c.X, c.Y}
	case SmoothQuadTo:
		return []float64{c.X, c.Y}
	case ArcTo:
		return []float64{c.RX, c.RY, c.Rotation, flag(c.LargeArc), flag(c.Sweep), c.X, c.Y}
	}
	return nil
}

func flag(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// Path describes a sequence of SVG commands.
// Higher-level shapes may be reduced to a path.
type Path []Command

// String returns the path data representation of the path,
// using the same formatting as the code generators:
// commands are separated by a space, operands by commas.
func (p Path) String() string {
	chunks := make([]string, len(p))
	for i, c := range p {
		var b strings.Builder
		b.WriteByte(Letter(c))
		for j, v := range Operands(c) {
			if j > 0 {
				b.WriteByte(',')
			}
			b.WriteString(FormatNumber(v))
		}
		chunks[i] = b.String()
	}
	return strings.Join(chunks, " ")
}

// Start starts a new subpath at the given point.
func (p *Path) Start(x, y float64) {
	*p = append(*p, MoveTo{X: x, Y: y})
}

// Line adds a linear segment to the current subpath.
func (p *Path) Line(x, y float64) {
	*p = append(*p, LineTo{X: x, Y: y})
}

// CubeBezier adds a cubic segment to the current subpath.
func (p *Path) CubeBezier(x1, y1, x2, y2, x, y float64) {
	*p = append(*p, CurveTo{X1: x1, Y1: y1, X2: x2, Y2: y2, X: x, Y: y})
}

// Stop joins the ends of the subpath
func (p *Path) Stop(closeLoop bool) {
	if closeLoop {
		*p = append(*p, Close{})
	}
}
