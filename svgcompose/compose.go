// Implements a Jetpack Compose backend for parsed SVG icons:
// the icon is emitted as Kotlin source declaring an ImageVector,
// lazily built with the path builder DSL.
package svgcompose

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/benoitkugler/vectoricons/svgicon"
	"github.com/benoitkugler/vectoricons/svgpath"
	"github.com/iancoleman/strcase"
)

// Options tunes the generated Kotlin file.
type Options struct {
	// Package is the Kotlin package of the file. It is omitted if empty.
	Package string
	// Name is the name of the icon, usually the file name,
	// in snake_case or kebab-case. It is converted to PascalCase.
	Name string
	// ExtensionTarget, if not empty, is the fully qualified name
	// of the type receiving the icon as an extension property.
	ExtensionTarget string
	// ColorMappings replaces color literals by Kotlin expressions.
	// Keys are colors in #RGB, #RRGGBB or #AARRGGBB form, or "*" to
	// match every color.
	ColorMappings map[string]string
	// GeneratePreview adds a @Preview composable showing the icon.
	GeneratePreview bool
}

const (
	importImageVector = "androidx.compose.ui.graphics.vector.ImageVector"
	importPath        = "androidx.compose.ui.graphics.vector.path"
	importPathData    = "androidx.compose.ui.graphics.vector.PathData"
	importDp          = "androidx.compose.ui.unit.dp"
	importColor       = "androidx.compose.ui.graphics.Color"
	importSolidColor  = "androidx.compose.ui.graphics.SolidColor"
	importBrush       = "androidx.compose.ui.graphics.Brush"
	importOffset      = "androidx.compose.ui.geometry.Offset"
	importTileMode    = "androidx.compose.ui.graphics.TileMode"
	importStrokeCap   = "androidx.compose.ui.graphics.StrokeCap"
	importStrokeJoin  = "androidx.compose.ui.graphics.StrokeJoin"
	importFillType    = "androidx.compose.ui.graphics.PathFillType"
)

var previewImports = [...]string{
	"androidx.compose.foundation.Image",
	"androidx.compose.foundation.layout.Box",
	"androidx.compose.foundation.layout.padding",
	"androidx.compose.runtime.Composable",
	"androidx.compose.ui.Modifier",
	"androidx.compose.ui.tooling.preview.Preview",
	importDp,
}

const indentUnit = "    "

// PropertyName returns the PascalCase name of the icon property
func PropertyName(name string) string {
	if out := strcase.ToCamel(name); out != "" {
		return out
	}
	return "Icon"
}

func backingName(name string) string {
	return "_" + strcase.ToLowerCamel(PropertyName(name))
}

// Generate returns the Kotlin source declaring `icon`.
// It always succeeds: style data without an equivalent
// in the Compose API is omitted.
func Generate(icon *svgicon.ParsedSVG, opts Options) string {
	w := writer{
		icon:     icon,
		imports:  map[string]bool{importImageVector: true, importDp: true},
		mappings: normalizeMappings(opts.ColorMappings),
	}

	name, backing := PropertyName(opts.Name), backingName(opts.Name)
	declared := name
	if opts.ExtensionTarget != "" {
		w.imports[opts.ExtensionTarget] = true
		declared = receiver(opts.ExtensionTarget) + "." + name
	}

	w.line(0, fmt.Sprintf("public val %s: ImageVector", declared))
	w.line(1, "get() {")
	w.line(2, fmt.Sprintf("if (%s != null) {", backing))
	w.line(3, fmt.Sprintf("return %s!!", backing))
	w.line(2, "}")
	w.line(2, fmt.Sprintf("%s = ImageVector.Builder(", backing))
	w.line(3, "name = "+kotlinString(name)+",")
	w.line(3, fmt.Sprintf("defaultWidth = %s.dp,", kotlinDouble(icon.Width)))
	w.line(3, fmt.Sprintf("defaultHeight = %s.dp,", kotlinDouble(icon.Height)))
	w.line(3, fmt.Sprintf("viewportWidth = %s,", kotlinFloat(icon.ViewportWidth)))
	w.line(3, fmt.Sprintf("viewportHeight = %s", kotlinFloat(icon.ViewportHeight)))
	w.line(2, ").apply {")
	for _, el := range icon.Elements {
		w.element(3, el)
	}
	w.line(2, "}.build()")
	w.line(2, fmt.Sprintf("return %s!!", backing))
	w.line(1, "}")
	w.line(0, "")
	w.line(0, fmt.Sprintf("private var %s: ImageVector? = null", backing))

	if opts.GeneratePreview {
		for _, imp := range previewImports {
			w.imports[imp] = true
		}
		w.line(0, "")
		w.line(0, "@Preview")
		w.line(0, "@Composable")
		w.line(0, fmt.Sprintf("private fun %sPreview() {", name))
		w.line(1, "Box(modifier = Modifier.padding(12.dp)) {")
		w.line(2, fmt.Sprintf(`Image(imageVector = %s, contentDescription = "")`, declared))
		w.line(1, "}")
		w.line(0, "}")
	}

	var out strings.Builder
	if opts.Package != "" {
		fmt.Fprintf(&out, "package %s\n\n", opts.Package)
	}
	imports := make([]string, 0, len(w.imports))
	for imp := range w.imports {
		imports = append(imports, imp)
	}
	sort.Strings(imports)
	for _, imp := range imports {
		fmt.Fprintf(&out, "import %s\n", imp)
	}
	out.WriteString("\n")
	out.WriteString(w.buf.String())
	return out.String()
}

// receiver returns the last segment of a qualified name
func receiver(qualified string) string {
	if i := strings.LastIndexByte(qualified, '.'); i != -1 {
		return qualified[i+1:]
	}
	return qualified
}

// kotlinString returns a Kotlin string literal for `s`
func kotlinString(s string) string {
	return strings.ReplaceAll(strconv.Quote(s), "$", `\$`)
}

// kotlinDouble formats `v` as a Kotlin Double literal
func kotlinDouble(v float64) string {
	s := svgpath.FormatNumber(v)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// kotlinFloat formats `v` as a Kotlin Float literal
func kotlinFloat(v float64) string { return kotlinDouble(v) + "f" }

type writer struct {
	icon     *svgicon.ParsedSVG
	buf      strings.Builder
	imports  map[string]bool
	mappings map[string]string // keyed by AARRGGBB or "*"
}

func (w *writer) line(level int, s string) {
	if s != "" {
		w.buf.WriteString(strings.Repeat(indentUnit, level))
		w.buf.WriteString(s)
	}
	w.buf.WriteByte('\n')
}

// args writes a parenthesized argument list, one per line,
// followed by `suffix`. An empty list is written as `head` + `suffix`.
func (w *writer) args(level int, head string, args []string, suffix string) {
	if len(args) == 0 {
		w.line(level, head+suffix)
		return
	}
	w.line(level, head+"(")
	for i, a := range args {
		if i < len(args)-1 {
			a += ","
		}
		w.line(level+1, a)
	}
	w.line(level, ")"+suffix)
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
	var args []string
	if g.ID != "" {
		args = append(args, "name = "+kotlinString(g.ID))
	}
	if tr := g.Transform; tr != nil {
		add := func(name string, v, def float64) {
			if v != def {
				args = append(args, name+" = "+kotlinFloat(v))
			}
		}
		add("rotate", tr.Rotation, 0)
		add("pivotX", tr.PivotX, 0)
		add("pivotY", tr.PivotY, 0)
		add("scaleX", tr.ScaleX, 1)
		add("scaleY", tr.ScaleY, 1)
		add("translationX", tr.TranslateX, 0)
		add("translationY", tr.TranslateY, 0)
	}

	const head = "androidx.compose.ui.graphics.vector.group"
	if g.ClipPathData == "" {
		w.args(level, head, args, " {")
	} else {
		w.line(level, head+"(")
		for _, a := range args {
			w.line(level+1, a+",")
		}
		// the clip data is generated by the parser, so it is always valid
		clip, _ := svgpath.Parse(g.ClipPathData)
		w.imports[importPathData] = true
		w.line(level+1, "clipPathData = PathData {")
		w.commands(level+2, clip)
		w.line(level+1, "}")
		w.line(level, ") {")
	}
	for _, child := range g.Elements {
		w.element(level+1, child)
	}
	w.line(level, "}")
}

// paint returns the Kotlin expression for `f`, or an empty string
// for no painting.
func (w *writer) paint(f svgicon.Fill) string {
	switch f := f.(type) {
	case svgicon.SolidFill:
		w.imports[importSolidColor] = true
		return fmt.Sprintf("SolidColor(%s)", w.color(f.Color))
	case svgicon.LinearGradientRef:
		g, ok := w.icon.LinearGradients[f.ID]
		if !ok {
			return ""
		}
		if s, ok := w.solidStops(g.Stops); ok {
			return s
		}
		x1, y1, x2, y2 := g.X1, g.Y1, g.X2, g.Y2
		if g.Transform != nil {
			x1, y1 = g.Transform.Apply(x1, y1)
			x2, y2 = g.Transform.Apply(x2, y2)
		}
		w.imports[importBrush] = true
		w.imports[importOffset] = true
		return fmt.Sprintf("Brush.linearGradient(colorStops = %s, start = %s, end = %s%s)",
			w.colorStops(g.Stops), offset(x1, y1), offset(x2, y2), w.tileMode(g.Spread))
	case svgicon.RadialGradientRef:
		g, ok := w.icon.RadialGradients[f.ID]
		if !ok {
			return ""
		}
		if s, ok := w.solidStops(g.Stops); ok {
			return s
		}
		cx, cy, r := g.CX, g.CY, g.R
		if g.Transform != nil {
			cx, cy = g.Transform.Apply(cx, cy)
			r = g.Transform.ScaleLength(r)
		}
		w.imports[importBrush] = true
		w.imports[importOffset] = true
		return fmt.Sprintf("Brush.radialGradient(colorStops = %s, center = %s, radius = %s%s)",
			w.colorStops(g.Stops), offset(cx, cy), kotlinFloat(r), w.tileMode(g.Spread))
	default:
		return ""
	}
}

// solidStops handles the gradients without stops (no painting)
// or with only one stop (plain color)
func (w *writer) solidStops(stops []svgicon.GradientStop) (string, bool) {
	switch len(stops) {
	case 0:
		return "", true
	case 1:
		w.imports[importSolidColor] = true
		return fmt.Sprintf("SolidColor(%s)", w.color(stops[0].Color.WithOpacity(stops[0].Opacity))), true
	default:
		return "", false
	}
}

func (w *writer) colorStops(stops []svgicon.GradientStop) string {
	chunks := make([]string, len(stops))
	for i, s := range stops {
		chunks[i] = kotlinFloat(s.Offset) + " to " + w.color(s.Color.WithOpacity(s.Opacity))
	}
	return "arrayOf(" + strings.Join(chunks, ", ") + ")"
}

func (w *writer) tileMode(s svgicon.SpreadMethod) string {
	switch s {
	case svgicon.ReflectSpread:
		w.imports[importTileMode] = true
		return ", tileMode = TileMode.Mirror"
	case svgicon.RepeatSpread:
		w.imports[importTileMode] = true
		return ", tileMode = TileMode.Repeated"
	default:
		return ""
	}
}

func offset(x, y float64) string {
	return fmt.Sprintf("Offset(%s, %s)", kotlinFloat(x), kotlinFloat(y))
}

// color returns the mapped expression for `c`, or a Color literal
func (w *writer) color(c svgicon.Color) string {
	if expr, ok := w.mappings[c.Hex()]; ok {
		return expr
	}
	if expr, ok := w.mappings["*"]; ok {
		return expr
	}
	w.imports[importColor] = true
	return fmt.Sprintf("Color(%s)", c.KotlinLiteral())
}

// normalizeMappings converts the keys to the AARRGGBB form.
// Invalid keys are ignored.
func normalizeMappings(mappings map[string]string) map[string]string {
	out := make(map[string]string, len(mappings))
	for key, expr := range mappings {
		if key == "*" {
			out[key] = expr
			continue
		}
		hex := strings.ToUpper(strings.TrimPrefix(strings.TrimSpace(key), "#"))
		switch len(hex) {
		case 3:
			hex = "FF" + string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		case 6:
			hex = "FF" + hex
		case 8:
		default:
			svgicon.Logger().Warn("svgcompose: invalid color mapping", "key", key)
			continue
		}
		out[hex] = expr
	}
	return out
}

var (
	capNames = [...]string{
		svgicon.ButtCap:   "StrokeCap.Butt",
		svgicon.RoundCap:  "StrokeCap.Round",
		svgicon.SquareCap: "StrokeCap.Square",
	}
	joinNames = [...]string{
		svgicon.MiterJoin: "StrokeJoin.Miter",
		svgicon.RoundJoin: "StrokeJoin.Round",
		svgicon.BevelJoin: "StrokeJoin.Bevel",
	}
)

func (w *writer) path(level int, p svgicon.Path) {
	w.imports[importPath] = true
	var args []string
	if p.ID != "" {
		args = append(args, "name = "+kotlinString(p.ID))
	}
	if fill := w.paint(p.Fill); fill != "" {
		args = append(args, "fill = "+fill)
		if alpha := p.Opacity * p.FillOpacity; alpha != 1 {
			args = append(args, "fillAlpha = "+kotlinFloat(alpha))
		}
	}
	if stroke := w.paint(p.Stroke); stroke != "" {
		args = append(args, "stroke = "+stroke)
		if alpha := p.Opacity * p.StrokeOpacity; alpha != 1 {
			args = append(args, "strokeAlpha = "+kotlinFloat(alpha))
		}
		args = append(args, "strokeLineWidth = "+kotlinFloat(p.StrokeWidth))
		if p.StrokeLineCap != svgicon.ButtCap {
			w.imports[importStrokeCap] = true
			args = append(args, "strokeLineCap = "+capNames[p.StrokeLineCap])
		}
		if p.StrokeLineJoin != svgicon.MiterJoin {
			w.imports[importStrokeJoin] = true
			args = append(args, "strokeLineJoin = "+joinNames[p.StrokeLineJoin])
		}
		if p.StrokeMiterLimit != 4 {
			args = append(args, "strokeLineMiter = "+kotlinFloat(p.StrokeMiterLimit))
		}
	}
	if p.FillRule == svgicon.EvenOdd {
		w.imports[importFillType] = true
		args = append(args, "pathFillType = PathFillType.EvenOdd")
	}

	w.args(level, "path", args, " {")
	w.commands(level+1, p.Commands)
	w.line(level, "}")
}

func (w *writer) commands(level int, cmds svgpath.Path) {
	for _, cmd := range cmds {
		w.line(level, command(cmd))
	}
}

var commandNames = map[byte]string{
	'M': "moveTo",
	'L': "lineTo",
	'H': "horizontalLineTo",
	'V': "verticalLineTo",
	'C': "curveTo",
	'S': "reflectiveCurveTo",
	'Q': "quadTo",
	'T': "reflectiveQuadTo",
	'A': "arcTo",
}

// command returns the path builder call for `cmd`
func command(cmd svgpath.Command) string {
	if _, isClose := cmd.(svgpath.Close); isClose {
		return "close()"
	}
	letter := svgpath.Letter(cmd)
	if cmd.IsRelative() {
		letter -= 'a' - 'A'
	}
	name := commandNames[letter]
	if cmd.IsRelative() {
		name += "Relative"
	}

	var args []string
	if arc, isArc := cmd.(svgpath.ArcTo); isArc {
		args = []string{
			kotlinFloat(arc.RX), kotlinFloat(arc.RY), kotlinFloat(arc.Rotation),
			fmt.Sprint(arc.LargeArc), fmt.Sprint(arc.Sweep),
			kotlinFloat(arc.X), kotlinFloat(arc.Y),
		}
	} else {
		for _, v := range svgpath.Operands(cmd) {
			args = append(args, kotlinFloat(v))
		}
	}
	return name + "(" + strings.Join(args, ", ") + ")"
}
