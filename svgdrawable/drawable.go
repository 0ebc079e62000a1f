// Implements an Android VectorDrawable backend for parsed SVG icons.
// The output is the content of an XML resource file, as expected
// in the res/drawable folder of an Android project.
package svgdrawable

import (
	"encoding/xml"
	"strings"

	"github.com/benoitkugler/vectoricons/svgicon"
	"github.com/benoitkugler/vectoricons/svgpath"
)

const (
	androidNamespace = "http://schemas.android.com/apk/res/android"
	aaptNamespace    = "http://schemas.android.com/aapt"

	indentUnit = "    "
)

// Options tunes the generated resource.
type Options struct {
	// AutoMirrored flips the drawable in right-to-left layouts.
	AutoMirrored bool
}

// Generate returns the VectorDrawable XML for `icon`.
// It always succeeds: style data without an equivalent in
// the format is omitted.
func Generate(icon *svgicon.ParsedSVG, opts Options) string {
	w := writer{icon: icon}
	for _, el := range icon.Elements {
		w.element(1, el)
	}

	var out strings.Builder
	out.WriteString(`<?xml version="1.0" encoding="utf-8"?>` + "\n")
	attrs := []attr{{"xmlns:android", androidNamespace}}
	if w.hasGradient {
		attrs = append(attrs, attr{"xmlns:aapt", aaptNamespace})
	}
	attrs = append(attrs,
		attr{"android:width", fmtNumber(icon.Width) + "dp"},
		attr{"android:height", fmtNumber(icon.Height) + "dp"},
		attr{"android:viewportWidth", fmtNumber(icon.ViewportWidth)},
		attr{"android:viewportHeight", fmtNumber(icon.ViewportHeight)},
	)
	if opts.AutoMirrored {
		attrs = append(attrs, attr{"android:autoMirrored", "true"})
	}
	writeOpenTag(&out, 0, "vector", attrs, false)
	out.WriteString(w.buf.String())
	writeCloseTag(&out, 0, "vector")
	return out.String()
}

var fmtNumber = svgpath.FormatNumber

type attr struct {
	name, value string
}

func escape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s)) // strings.Builder never fails
	return b.String()
}

func writeIndent(b *strings.Builder, level int) {
	b.WriteString(strings.Repeat(indentUnit, level))
}

// writeOpenTag writes one attribute per line, indented one level
// deeper than the tag.
func writeOpenTag(b *strings.Builder, level int, name string, attrs []attr, selfClosing bool) {
	writeIndent(b, level)
	b.WriteString("<" + name)
	for _, a := range attrs {
		b.WriteByte('\n')
		writeIndent(b, level+1)
		b.WriteString(a.name + `="` + escape(a.value) + `"`)
	}
	if selfClosing {
		b.WriteString(" />\n")
	} else {
		b.WriteString(">\n")
	}
}

func writeCloseTag(b *strings.Builder, level int, name string) {
	writeIndent(b, level)
	b.WriteString("</" + name + ">\n")
}

// writer accumulates the body of the <vector> element
type writer struct {
	icon        *svgicon.ParsedSVG
	buf         strings.Builder
	hasGradient bool // true if at least one <gradient> was written
}

func (w *writer) element(level int, el svgicon.Element) {
	switch el := el.(type) {
	case svgicon.Path:
		w.path(level, el)
	case svgicon.Group:
		w.group(level, el)
	}
}

func (w *writer) group(level int, g svgicon.Group) {
	var attrs []attr
	if g.ID != "" {
		attrs = append(attrs, attr{"android:name", g.ID})
	}
	attrs = append(attrs, transformAttrs(g.Transform)...)
	writeOpenTag(&w.buf, level, "group", attrs, false)
	if g.ClipPathData != "" {
		writeOpenTag(&w.buf, level+1, "clip-path", []attr{{"android:pathData", g.ClipPathData}}, true)
	}
	for _, child := range g.Elements {
		w.element(level+1, child)
	}
	writeCloseTag(&w.buf, level, "group")
}

// transformAttrs returns the non default attributes of `tr`.
// Skews have no equivalent and are dropped.
func transformAttrs(tr *svgicon.Transform) []attr {
	if tr == nil {
		return nil
	}
	var attrs []attr
	add := func(name string, v, def float64) {
		if v != def {
			attrs = append(attrs, attr{name, fmtNumber(v)})
		}
	}
	add("android:rotation", tr.Rotation, 0)
	add("android:pivotX", tr.PivotX, 0)
	add("android:pivotY", tr.PivotY, 0)
	add("android:scaleX", tr.ScaleX, 1)
	add("android:scaleY", tr.ScaleY, 1)
	add("android:translateX", tr.TranslateX, 0)
	add("android:translateY", tr.TranslateY, 0)
	return attrs
}

// gradient is a resolved gradient paint, ready to be written
type gradient struct {
	attrs []attr
	stops []svgicon.GradientStop
}

// resolvePaint returns either a color, or a gradient, or nothing
// (empty color and nil gradient).
func (w *writer) resolvePaint(f svgicon.Fill) (string, *gradient) {
	switch f := f.(type) {
	case svgicon.SolidFill:
		return f.Color.AndroidHex(), nil
	case svgicon.LinearGradientRef:
		g, ok := w.icon.LinearGradients[f.ID]
		if !ok {
			return "", nil
		}
		if c, ok := solidStops(g.Stops); ok {
			return c, nil
		}
		x1, y1, x2, y2 := g.X1, g.Y1, g.X2, g.Y2
		if g.Transform != nil {
			x1, y1 = g.Transform.Apply(x1, y1)
			x2, y2 = g.Transform.Apply(x2, y2)
		}
		attrs := []attr{
			{"android:type", "linear"},
			{"android:startX", fmtNumber(x1)},
			{"android:startY", fmtNumber(y1)},
			{"android:endX", fmtNumber(x2)},
			{"android:endY", fmtNumber(y2)},
		}
		return "", &gradient{attrs: append(attrs, tileMode(g.Spread)...), stops: g.Stops}
	case svgicon.RadialGradientRef:
		g, ok := w.icon.RadialGradients[f.ID]
		if !ok {
			return "", nil
		}
		if c, ok := solidStops(g.Stops); ok {
			return c, nil
		}
		cx, cy, r := g.CX, g.CY, g.R
		if g.Transform != nil {
			cx, cy = g.Transform.Apply(cx, cy)
			r = g.Transform.ScaleLength(r)
		}
		attrs := []attr{
			{"android:type", "radial"},
			{"android:centerX", fmtNumber(cx)},
			{"android:centerY", fmtNumber(cy)},
			{"android:gradientRadius", fmtNumber(r)},
		}
		return "", &gradient{attrs: append(attrs, tileMode(g.Spread)...), stops: g.Stops}
	default:
		return "", nil
	}
}

// solidStops handles the degenerate gradients : without stops, nothing
// is painted, and one stop paints a plain color.
func solidStops(stops []svgicon.GradientStop) (string, bool) {
	switch len(stops) {
	case 0:
		return "", true
	case 1:
		return stopColor(stops[0]), true
	default:
		return "", false
	}
}

func stopColor(s svgicon.GradientStop) string {
	return s.Color.WithOpacity(s.Opacity).AndroidHexWithAlpha()
}

func tileMode(s svgicon.SpreadMethod) []attr {
	switch s {
	case svgicon.ReflectSpread:
		return []attr{{"android:tileMode", "mirror"}}
	case svgicon.RepeatSpread:
		return []attr{{"android:tileMode", "repeat"}}
	default:
		return nil
	}
}

func (w *writer) path(level int, p svgicon.Path) {
	var attrs []attr
	if p.ID != "" {
		attrs = append(attrs, attr{"android:name", p.ID})
	}
	attrs = append(attrs, attr{"android:pathData", p.PathData})

	fillColor, fillGradient := w.resolvePaint(p.Fill)
	if fillColor != "" {
		attrs = append(attrs, attr{"android:fillColor", fillColor})
	}
	if fillColor != "" || fillGradient != nil {
		if alpha := p.Opacity * p.FillOpacity; alpha != 1 {
			attrs = append(attrs, attr{"android:fillAlpha", fmtNumber(alpha)})
		}
	}
	if p.FillRule == svgicon.EvenOdd {
		attrs = append(attrs, attr{"android:fillType", "evenOdd"})
	}

	strokeColor, strokeGradient := w.resolvePaint(p.Stroke)
	if strokeColor != "" {
		attrs = append(attrs, attr{"android:strokeColor", strokeColor})
	}
	if strokeColor != "" || strokeGradient != nil {
		if alpha := p.Opacity * p.StrokeOpacity; alpha != 1 {
			attrs = append(attrs, attr{"android:strokeAlpha", fmtNumber(alpha)})
		}
		attrs = append(attrs, attr{"android:strokeWidth", fmtNumber(p.StrokeWidth)})
		if p.StrokeLineCap != svgicon.ButtCap {
			attrs = append(attrs, attr{"android:strokeLineCap", p.StrokeLineCap.String()})
		}
		if p.StrokeLineJoin != svgicon.MiterJoin {
			attrs = append(attrs, attr{"android:strokeLineJoin", p.StrokeLineJoin.String()})
		}
		if p.StrokeMiterLimit != 4 {
			attrs = append(attrs, attr{"android:strokeMiterLimit", fmtNumber(p.StrokeMiterLimit)})
		}
	}

	if fillGradient == nil && strokeGradient == nil {
		writeOpenTag(&w.buf, level, "path", attrs, true)
		return
	}
	writeOpenTag(&w.buf, level, "path", attrs, false)
	if fillGradient != nil {
		w.gradient(level+1, "android:fillColor", fillGradient)
	}
	if strokeGradient != nil {
		w.gradient(level+1, "android:strokeColor", strokeGradient)
	}
	writeCloseTag(&w.buf, level, "path")
}

func (w *writer) gradient(level int, property string, g *gradient) {
	w.hasGradient = true
	writeOpenTag(&w.buf, level, "aapt:attr", []attr{{"name", property}}, false)
	writeOpenTag(&w.buf, level+1, "gradient", g.attrs, false)
	for _, stop := range g.stops {
		writeOpenTag(&w.buf, level+2, "item", []attr{
			{"android:offset", fmtNumber(stop.Offset)},
			{"android:color", stopColor(stop)},
		}, true)
	}
	writeCloseTag(&w.buf, level+1, "gradient")
	writeCloseTag(&w.buf, level, "aapt:attr")
}
