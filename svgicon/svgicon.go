// Provides parsing of SVG images into a document model
// suited to vector icon generation.
// SVG files are parsed into an immutable representation (see ParsedSVG),
// which can then be consumed by code generators.
// See for example vectoricons/svgdrawable or vectoricons/svgcompose .
package svgicon

import (
	"github.com/benoitkugler/vectoricons/svgpath"
)

// LineCap is the shape at the end of open strokes.
type LineCap uint8

const (
	ButtCap LineCap = iota
	RoundCap
	SquareCap
)

func (c LineCap) String() string {
	switch c {
	case ButtCap:
		return "butt"
	case RoundCap:
		return "round"
	case SquareCap:
		return "square"
	default:
		return "<unknown LineCap>"
	}
}

// LineJoin is the shape at the corners of strokes.
type LineJoin uint8

const (
	MiterJoin LineJoin = iota
	RoundJoin
	BevelJoin
)

func (j LineJoin) String() string {
	switch j {
	case MiterJoin:
		return "miter"
	case RoundJoin:
		return "round"
	case BevelJoin:
		return "bevel"
	default:
		return "<unknown LineJoin>"
	}
}

// FillRule selects the algorithm deciding the inside of a path.
type FillRule uint8

const (
	NonZero FillRule = iota
	EvenOdd
)

func (f FillRule) String() string {
	if f == EvenOdd {
		return "evenOdd"
	}
	return "nonZero"
}

// Fill is the paint used to fill or stroke a path.
// It is one of SolidFill, LinearGradientRef, RadialGradientRef;
// nil means no painting.
type Fill interface {
	isFill()
}

// SolidFill paints with a plain color.
type SolidFill struct {
	Color Color
}

// LinearGradientRef refers to an entry of ParsedSVG.LinearGradients
type LinearGradientRef struct {
	ID string
}

// RadialGradientRef refers to an entry of ParsedSVG.RadialGradients
type RadialGradientRef struct {
	ID string
}

func (SolidFill) isFill()         {}
func (LinearGradientRef) isFill() {}
func (RadialGradientRef) isFill() {}

// Element is either a Path or a Group
type Element interface {
	isElement()
}

// Path is a resolved shape, with its style.
type Path struct {
	ID       string
	PathData string       // as found in the source, or generated for the basic shapes
	Commands svgpath.Path // parsed PathData

	Fill   Fill // nil for none
	Stroke Fill // nil for none

	StrokeWidth      float64 // default to 1
	StrokeLineCap    LineCap
	StrokeLineJoin   LineJoin
	StrokeMiterLimit float64 // default to 4
	StrokeDashArray  []float64
	StrokeDashOffset float64
	FillRule         FillRule

	Opacity       float64 // default to 1
	FillOpacity   float64 // default to 1
	StrokeOpacity float64 // default to 1
}

// Group is a list of elements sharing a transform
// and a clip path.
type Group struct {
	ID        string
	Transform *Transform // nil for no transform
	// ClipPathData is the absolute path data of the clip region,
	// or an empty string
	ClipPathData string
	Elements     []Element // in drawing order
	// Paths is the flattened list of the paths of the group,
	// at any depth
	Paths []Path
}

func (Path) isElement()  {}
func (Group) isElement() {}

// ParsedSVG is the document model of an SVG file.
type ParsedSVG struct {
	Width, Height                 float64 // in dp
	ViewportWidth, ViewportHeight float64

	Elements []Element // top level elements, in drawing order
	Paths    []Path    // all the paths, flattened in document order
	Groups   []Group   // top level groups

	LinearGradients map[string]LinearGradient
	RadialGradients map[string]RadialGradient

	Title, Description string
}

// FlattenPaths returns the paths of `elements`, in depth-first order.
func FlattenPaths(elements []Element) []Path {
	var out []Path
	for _, el := range elements {
		switch el := el.(type) {
		case Path:
			out = append(out, el)
		case Group:
			out = append(out, FlattenPaths(el.Elements)...)
		}
	}
	return out
}

func newGroup(id string, tr *Transform, clip string, elements []Element) Group {
	return Group{
		ID:           id,
		Transform:    tr,
		ClipPathData: clip,
		Elements:     elements,
		Paths:        FlattenPaths(elements),
	}
}
