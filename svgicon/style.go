package svgicon

import (
	"fmt"
	"strings"

	"github.com/benoitkugler/vectoricons/svgpath"
)

// pathStyle holds the state of the SVG style.
// It is copied from parent to children, so that
// the nearest ancestor wins.
type pathStyle struct {
	fill, stroke Fill

	strokeWidth float64
	lineCap     LineCap
	lineJoin    LineJoin
	miterLimit  float64
	dashArray   []float64
	dashOffset  float64
	fillRule    FillRule

	opacity, fillOpacity, strokeOpacity float64

	// the following fields are not inherited

	hidden   bool
	clipPath string // id of a <clipPath> element
}

// defaultStyle fills with black, without stroke.
var defaultStyle = pathStyle{
	fill:          SolidFill{Color: Black},
	strokeWidth:   1,
	miterLimit:    4,
	opacity:       1,
	fillOpacity:   1,
	strokeOpacity: 1,
}

// path binds the style to the given geometry
func (st pathStyle) path(id, data string, cmds svgpath.Path) Path {
	return Path{
		ID:               id,
		PathData:         data,
		Commands:         cmds,
		Fill:             st.fill,
		Stroke:           st.stroke,
		StrokeWidth:      st.strokeWidth,
		StrokeLineCap:    st.lineCap,
		StrokeLineJoin:   st.lineJoin,
		StrokeMiterLimit: st.miterLimit,
		StrokeDashArray:  st.dashArray,
		StrokeDashOffset: st.dashOffset,
		FillRule:         st.fillRule,
		Opacity:          st.opacity,
		FillOpacity:      st.fillOpacity,
		StrokeOpacity:    st.strokeOpacity,
	}
}

// resolveStyle applies the declarations of `n` on top
// of the style of its parent.
// Invalid declarations are skipped, according to the error mode.
func (c *iconCursor) resolveStyle(n *node, parent pathStyle) (pathStyle, error) {
	st := parent
	st.hidden, st.clipPath = false, ""
	for _, decl := range c.declarations(n) {
		if decl.value == "inherit" {
			continue
		}
		err := c.readStyleAttr(&st, decl.property, decl.value)
		if err == nil {
			continue
		}
		err = c.handleError(fmt.Errorf("invalid %s %q: %w", decl.property, decl.value, err),
			"element", n.tag, "id", n.id, "property", decl.property)
		if err != nil {
			return st, err
		}
	}
	return st, nil
}

func (c *iconCursor) readStyleAttr(curStyle *pathStyle, k, v string) error {
	switch k {
	case "fill":
		fill, err := c.readPaint(v)
		if err != nil {
			return err
		}
		curStyle.fill = fill
	case "stroke":
		stroke, err := c.readPaint(v)
		if err != nil {
			return err
		}
		curStyle.stroke = stroke
	case "stroke-linecap":
		switch v {
		case "butt":
			curStyle.lineCap = ButtCap
		case "round":
			curStyle.lineCap = RoundCap
		case "square":
			curStyle.lineCap = SquareCap
		default:
			return errParamMismatch
		}
	case "stroke-linejoin":
		switch v {
		case "miter", "miter-clip":
			curStyle.lineJoin = MiterJoin
		case "round", "arcs":
			curStyle.lineJoin = RoundJoin
		case "bevel":
			curStyle.lineJoin = BevelJoin
		default:
			return errParamMismatch
		}
	case "stroke-miterlimit":
		mLimit, err := parseBasicFloat(v)
		if err != nil {
			return err
		}
		curStyle.miterLimit = mLimit
	case "stroke-width":
		width, err := c.parseUnit(v, diagPercentage)
		if err != nil {
			return err
		}
		curStyle.strokeWidth = width
	case "stroke-dashoffset":
		dashOffset, err := c.parseUnit(v, diagPercentage)
		if err != nil {
			return err
		}
		curStyle.dashOffset = dashOffset
	case "stroke-dasharray":
		if v == "none" {
			curStyle.dashArray = nil
			break
		}
		dashes := splitOnCommaOrSpace(v)
		dList := make([]float64, len(dashes))
		for i, dstr := range dashes {
			d, err := c.parseUnit(dstr, diagPercentage)
			if err != nil {
				return err
			}
			dList[i] = d
		}
		curStyle.dashArray = dList
	case "opacity", "stroke-opacity", "fill-opacity":
		op, err := readFraction(v)
		if err != nil {
			return err
		}
		op = clamp01(op)
		switch k {
		case "opacity":
			curStyle.opacity = op
		case "fill-opacity":
			curStyle.fillOpacity = op
		default:
			curStyle.strokeOpacity = op
		}
	case "fill-rule":
		switch v {
		case "nonzero":
			curStyle.fillRule = NonZero
		case "evenodd":
			curStyle.fillRule = EvenOdd
		default:
			return errParamMismatch
		}
	case "display":
		curStyle.hidden = v == "none"
	case "clip-path":
		if v == "none" {
			curStyle.clipPath = ""
			break
		}
		id, ok := urlID(v)
		if !ok {
			return errParamMismatch
		}
		curStyle.clipPath = id
	}
	return nil
}

// readPaint parses a fill or stroke value.
// A reference to an unknown gradient degrades to its fallback
// color, or to no painting.
func (c *iconCursor) readPaint(v string) (Fill, error) {
	if strings.HasPrefix(v, "url(") {
		id, ok := urlID(v)
		if !ok {
			return nil, errParamMismatch
		}
		if _, ok := c.icon.LinearGradients[id]; ok {
			return LinearGradientRef{ID: id}, nil
		}
		if _, ok := c.icon.RadialGradients[id]; ok {
			return RadialGradientRef{ID: id}, nil
		}
		if fallback := strings.TrimSpace(v[strings.IndexByte(v, ')')+1:]); fallback != "" {
			return c.readPaint(fallback)
		}
		Logger().Debug("svgicon: unresolved paint reference", "ref", id)
		return nil, nil
	}
	col, err := ParseColor(v)
	if err != nil {
		return nil, err
	}
	if !col.Valid {
		return nil, nil
	}
	return SolidFill{Color: col.Color}, nil
}

// urlID extracts the id from an url(#id) reference
func urlID(v string) (string, bool) {
	v = strings.TrimSpace(v)
	if !strings.HasPrefix(v, "url(") {
		return "", false
	}
	end := strings.IndexByte(v, ')')
	if end == -1 {
		return "", false
	}
	id := refID(v[4:end])
	return id, id != ""
}

// refID removes the quotes and the leading # of a reference
func refID(ref string) string {
	ref = strings.Trim(strings.TrimSpace(ref), `"'`)
	return strings.TrimPrefix(ref, "#")
}

// splitOnCommaOrSpace returns a list of strings after splitting the input on comma and space delimiters
func splitOnCommaOrSpace(s string) []string {
	return strings.FieldsFunc(s,
		func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
		})
}
