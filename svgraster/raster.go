// Implements a raster backend to preview parsed SVG icons,
// by wrapping rasterx.
// It is used to check that the document model draws
// what the code generators emit. Clip paths and skews are not rendered.
package svgraster

import (
	"image"
	"io"
	"math"

	"github.com/benoitkugler/vectoricons/svgicon"
	"github.com/benoitkugler/vectoricons/svgpath"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

type Renderer struct {
	dasher *rasterx.Dasher // to avoid shared state
	filler *rasterx.Filler // we use separated instance
}

// NewRenderer returns a renderer with default values.
// In addition to rasterizing lines like a Scanner,
// it can also rasterize quadratic and cubic bezier curves.
// If scanner is nil, a default scanner rasterx.ScannerGV is used
func NewRenderer(width, height int, scanner rasterx.Scanner) *Renderer {
	return &Renderer{dasher: rasterx.NewDasher(width, height, scanner), filler: rasterx.NewFiller(width, height, scanner)}
}

// RasterSVGIconToImage parses the icon and renders it
// into an image of its natural size, rounded to pixels.
func RasterSVGIconToImage(icon io.Reader) (*image.RGBA, error) {
	parsedIcon, err := svgicon.ReadIconStream(icon, svgicon.IgnoreErrorMode)
	if err != nil {
		return nil, err
	}
	w, h := int(math.Ceil(parsedIcon.Width)), int(math.Ceil(parsedIcon.Height))
	return Rasterize(parsedIcon, w, h), nil
}

// Rasterize draws the icon into a new image of the given size,
// the viewport being stretched to fill the image.
func Rasterize(icon *svgicon.ParsedSVG, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	if icon.ViewportWidth <= 0 || icon.ViewportHeight <= 0 {
		return img
	}
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	renderer := NewRenderer(width, height, scanner)
	m := rasterx.Identity.Scale(float64(width)/icon.ViewportWidth, float64(height)/icon.ViewportHeight)
	renderer.drawElements(icon, icon.Elements, m)
	return img
}

func toMatrix(tr *svgicon.Transform) rasterx.Matrix2D {
	if tr == nil {
		return rasterx.Identity
	}
	c := tr.Matrix()
	return rasterx.Matrix2D{A: c[0], B: c[1], C: c[2], D: c[3], E: c[4], F: c[5]}
}

func (rd *Renderer) drawElements(icon *svgicon.ParsedSVG, elements []svgicon.Element, m rasterx.Matrix2D) {
	for _, el := range elements {
		switch el := el.(type) {
		case svgicon.Path:
			rd.drawPath(icon, el, m)
		case svgicon.Group:
			rd.drawElements(icon, el.Elements, m.Mult(toMatrix(el.Transform)))
		}
	}
}

// scaleFactor approximates the scaling of lengths by `m`
func scaleFactor(m rasterx.Matrix2D) float64 {
	return math.Sqrt(math.Abs(m.A*m.D - m.B*m.C))
}

func (rd *Renderer) drawPath(icon *svgicon.ParsedSVG, p svgicon.Path, m rasterx.Matrix2D) {
	fill, hasFill := toPattern(icon, p.Fill, p.Opacity*p.FillOpacity, m)
	stroke, hasStroke := toPattern(icon, p.Stroke, p.Opacity*p.StrokeOpacity, m)
	hasStroke = hasStroke && p.StrokeWidth > 0

	// the filler and the dasher share the scanner : each one
	// is fed and drawn on its own
	if hasFill {
		rd.filler.Clear()
		rd.filler.SetWinding(p.FillRule == svgicon.NonZero)
		addPath(rd.filler, p.Commands, m)
		rd.filler.SetColor(fill)
		rd.filler.Draw()
	}
	if hasStroke {
		rd.dasher.Clear()
		rd.dasher.SetWinding(true) // stroke outlines overlap
		rd.setStrokeOptions(p, scaleFactor(m))
		addPath(rd.dasher, p.Commands, m)
		rd.dasher.SetColor(stroke)
		rd.dasher.Draw()
	}
}

func toRasterxStops(stops []svgicon.GradientStop) []rasterx.GradStop {
	out := make([]rasterx.GradStop, len(stops))
	for i, s := range stops {
		out[i] = rasterx.GradStop{StopColor: s.Color, Offset: s.Offset, Opacity: s.Opacity}
	}
	return out
}

// toPattern resolves the paint into a color or a color function,
// as expected by rasterx.Scanner.SetColor
// It returns false for no painting.
func toPattern(icon *svgicon.ParsedSVG, paint svgicon.Fill, opacity float64, m rasterx.Matrix2D) (interface{}, bool) {
	switch paint := paint.(type) {
	case svgicon.SolidFill:
		return rasterx.ApplyOpacity(paint.Color, opacity), true
	case svgicon.LinearGradientRef:
		grad, ok := icon.LinearGradients[paint.ID]
		if !ok || len(grad.Stops) == 0 {
			return nil, false
		}
		rasterxGradient := rasterx.Gradient{
			Points: [5]float64{grad.X1, grad.Y1, grad.X2, grad.Y2},
			Stops:  toRasterxStops(grad.Stops),
			Matrix: m.Mult(toMatrix(grad.Transform)),
			Spread: rasterx.SpreadMethod(grad.Spread),
			Units:  rasterx.UserSpaceOnUse, // the geometry is resolved at parse time
		}
		return rasterxGradient.GetColorFunction(opacity), true
	case svgicon.RadialGradientRef:
		grad, ok := icon.RadialGradients[paint.ID]
		if !ok || len(grad.Stops) == 0 {
			return nil, false
		}
		rasterxGradient := rasterx.Gradient{
			Points:   [5]float64{grad.CX, grad.CY, grad.FX, grad.FY, grad.R},
			Stops:    toRasterxStops(grad.Stops),
			Matrix:   m.Mult(toMatrix(grad.Transform)),
			Spread:   rasterx.SpreadMethod(grad.Spread),
			Units:    rasterx.UserSpaceOnUse,
			IsRadial: true,
		}
		return rasterxGradient.GetColorFunction(opacity), true
	default:
		return nil, false
	}
}

var (
	joinToJoin = [...]rasterx.JoinMode{
		svgicon.MiterJoin: rasterx.Miter,
		svgicon.RoundJoin: rasterx.Round,
		svgicon.BevelJoin: rasterx.Bevel,
	}

	capToFunc = [...]rasterx.CapFunc{
		svgicon.ButtCap:   rasterx.ButtCap,
		svgicon.SquareCap: rasterx.SquareCap,
		svgicon.RoundCap:  rasterx.RoundCap,
	}
)

func fToFixed(f float64) fixed.Int26_6 {
	return fixed.Int26_6(f * 64)
}

// setStrokeOptions configures the dasher, scaling the lengths by `scale`
func (rd *Renderer) setStrokeOptions(p svgicon.Path, scale float64) {
	var dashes []float64
	if len(p.StrokeDashArray) != 0 {
		dashes = make([]float64, len(p.StrokeDashArray))
		for i, d := range p.StrokeDashArray {
			dashes[i] = d * scale
		}
	}
	lineCap := capToFunc[p.StrokeLineCap]
	rd.dasher.SetStroke(
		fToFixed(p.StrokeWidth*scale), fToFixed(p.StrokeMiterLimit), lineCap,
		lineCap, rasterx.FlatGap, joinToJoin[p.StrokeLineJoin], dashes, p.StrokeDashOffset*scale,
	)
}

func toFixedPoint(m rasterx.Matrix2D, x, y float64) fixed.Point26_6 {
	x, y = m.Transform(x, y)
	return fixed.Point26_6{X: fToFixed(x), Y: fToFixed(y)}
}

// addPath sends the absolute version of `cmds` to `target`,
// after applying the transform `m`
func addPath(target rasterx.Adder, cmds svgpath.Path, m rasterx.Matrix2D) {
	for _, cmd := range svgpath.Simplify(cmds) {
		switch cmd := cmd.(type) {
		case svgpath.MoveTo:
			target.Stop(false) // implicit close if currently in path.
			target.Start(toFixedPoint(m, cmd.X, cmd.Y))
		case svgpath.LineTo:
			target.Line(toFixedPoint(m, cmd.X, cmd.Y))
		case svgpath.QuadTo:
			target.QuadBezier(toFixedPoint(m, cmd.X1, cmd.Y1), toFixedPoint(m, cmd.X, cmd.Y))
		case svgpath.CurveTo:
			target.CubeBezier(toFixedPoint(m, cmd.X1, cmd.Y1), toFixedPoint(m, cmd.X2, cmd.Y2), toFixedPoint(m, cmd.X, cmd.Y))
		case svgpath.Close:
			target.Stop(true)
		}
	}
	target.Stop(false)
}
