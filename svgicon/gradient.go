package svgicon

import (
	"fmt"
	"sort"
)

// GradientUnits is the type for gradient units
type GradientUnits byte

// SVG bounds paremater constants
const (
	ObjectBoundingBox GradientUnits = iota
	UserSpaceOnUse
)

func (u GradientUnits) String() string {
	if u == UserSpaceOnUse {
		return "userSpaceOnUse"
	}
	return "objectBoundingBox"
}

// SpreadMethod is the type for spread parameters
type SpreadMethod byte

// SVG spread parameter constants
const (
	PadSpread SpreadMethod = iota
	ReflectSpread
	RepeatSpread
)

func (s SpreadMethod) String() string {
	switch s {
	case PadSpread:
		return "pad"
	case ReflectSpread:
		return "reflect"
	case RepeatSpread:
		return "repeat"
	default:
		return "<unknown SpreadMethod>"
	}
}

// GradientStop represents a stop of a gradient.
type GradientStop struct {
	Offset  float64 // in [0, 1]
	Color   Color
	Opacity float64 // default to 1
}

// LinearGradient is a resolved <linearGradient> element.
// Its geometry is expressed in viewport units.
type LinearGradient struct {
	ID             string
	X1, Y1, X2, Y2 float64
	Stops          []GradientStop // sorted by offset
	Spread         SpreadMethod
	Units          GradientUnits
	Transform      *Transform // not applied to the geometry, may be nil
}

// RadialGradient is a resolved <radialGradient> element.
// Its geometry is expressed in viewport units.
type RadialGradient struct {
	ID             string
	CX, CY, R      float64
	FX, FY         float64
	Stops          []GradientStop // sorted by offset
	Spread         SpreadMethod
	Units          GradientUnits
	Transform      *Transform // not applied to the geometry, may be nil
}

// gradient is the data collected for one gradient element,
// before href resolution
type gradient struct {
	linear *LinearGradient
	radial *RadialGradient
	href   string
}

func (g gradient) stops() *[]GradientStop {
	if g.linear != nil {
		return &g.linear.Stops
	}
	return &g.radial.Stops
}

func sortStops(stops []GradientStop) {
	sort.SliceStable(stops, func(i, j int) bool { return stops[i].Offset < stops[j].Offset })
}

// readGradientCommon handles the attributes shared by linear and radial gradients
func (c *iconCursor) readGradientCommon(n *node, spread *SpreadMethod, units *GradientUnits, tr **Transform) (href string, err error) {
	for _, attr := range n.attrs {
		switch attr.Name.Local {
		case "spreadMethod":
			switch attr.Value {
			case "pad":
				*spread = PadSpread
			case "reflect":
				*spread = ReflectSpread
			case "repeat":
				*spread = RepeatSpread
			default:
				return "", fmt.Errorf("invalid spreadMethod %q", attr.Value)
			}
		case "gradientUnits":
			switch attr.Value {
			case "userSpaceOnUse":
				*units = UserSpaceOnUse
			case "objectBoundingBox":
				*units = ObjectBoundingBox
			default:
				return "", fmt.Errorf("invalid gradientUnits %q", attr.Value)
			}
		case "gradientTransform":
			*tr = ParseTransform(attr.Value)
		case "href":
			href = attr.Value
		}
	}
	return href, nil
}

func (c *iconCursor) linearGradient(n *node) (*LinearGradient, string, error) {
	grad := &LinearGradient{ID: n.id}
	grad.X2 = c.viewBox.W // default to 100%
	href, err := c.readGradientCommon(n, &grad.Spread, &grad.Units, &grad.Transform)
	if err != nil {
		return nil, "", err
	}
	for _, attr := range n.attrs {
		switch attr.Name.Local {
		case "x1":
			grad.X1, err = c.parseUnit(attr.Value, widthPercentage)
		case "y1":
			grad.Y1, err = c.parseUnit(attr.Value, heightPercentage)
		case "x2":
			grad.X2, err = c.parseUnit(attr.Value, widthPercentage)
		case "y2":
			grad.Y2, err = c.parseUnit(attr.Value, heightPercentage)
		}
		if err != nil {
			return nil, "", err
		}
	}
	grad.Stops, err = c.gradientStops(n)
	return grad, href, err
}

func (c *iconCursor) radialGradient(n *node) (*RadialGradient, string, error) {
	grad := &RadialGradient{
		ID: n.id,
		CX: c.viewBox.W / 2,
		CY: c.viewBox.H / 2,
		R:  c.refLength(diagPercentage) / 2,
	}
	href, err := c.readGradientCommon(n, &grad.Spread, &grad.Units, &grad.Transform)
	if err != nil {
		return nil, "", err
	}
	var setFx, setFy bool
	for _, attr := range n.attrs {
		switch attr.Name.Local {
		case "cx":
			grad.CX, err = c.parseUnit(attr.Value, widthPercentage)
		case "cy":
			grad.CY, err = c.parseUnit(attr.Value, heightPercentage)
		case "r":
			grad.R, err = c.parseUnit(attr.Value, diagPercentage)
		case "fx":
			setFx = true
			grad.FX, err = c.parseUnit(attr.Value, widthPercentage)
		case "fy":
			setFy = true
			grad.FY, err = c.parseUnit(attr.Value, heightPercentage)
		}
		if err != nil {
			return nil, "", err
		}
	}
	if !setFx { // set fx to cx by default
		grad.FX = grad.CX
	}
	if !setFy { // set fy to cy by default
		grad.FY = grad.CY
	}
	grad.Stops, err = c.gradientStops(n)
	return grad, href, err
}

// gradientStops reads the <stop> children of `n`, accepting
// stop-color and stop-opacity as attributes, inline style or
// CSS rules. Invalid stops are reported and skipped.
func (c *iconCursor) gradientStops(n *node) ([]GradientStop, error) {
	var stops []GradientStop
	for _, child := range n.children {
		if child.tag != "stop" {
			continue
		}
		stop, err := c.readStop(child)
		if err != nil {
			if err = c.handleError(err, "element", "stop", "gradient", n.id); err != nil {
				return nil, err
			}
			continue
		}
		stops = append(stops, stop)
	}
	return stops, nil
}

func (c *iconCursor) readStop(n *node) (GradientStop, error) {
	stop := GradientStop{Color: Black, Opacity: 1}
	for _, attr := range n.attrs {
		if attr.Name.Local == "offset" {
			f, err := readFraction(attr.Value)
			if err != nil {
				return stop, err
			}
			stop.Offset = clamp01(f)
		}
	}
	for _, decl := range c.declarations(n) {
		switch decl.property {
		case "stop-color":
			if decl.value == "inherit" {
				continue
			}
			col, err := ParseColor(decl.value)
			if err != nil {
				return stop, err
			}
			stop.Color = col.Color // "none" is transparent black
		case "stop-opacity":
			op, err := readFraction(decl.value)
			if err != nil {
				return stop, err
			}
			stop.Opacity = clamp01(op)
		}
	}
	return stop, nil
}

// resolveGradients builds the gradient tables from the
// collected elements, resolving the href links so that a gradient
// without stops uses the ones of the gradient it references.
func (c *iconCursor) resolveGradients(grads map[string]gradient) {
	for id, grad := range grads {
		stops := grad.stops()
		href := grad.href
		// follow the chain, with a bound to protect against cycles
		for depth := 0; len(*stops) == 0 && href != "" && depth < maxUseDepth; depth++ {
			target, ok := grads[refID(href)]
			if !ok {
				break
			}
			*stops = append([]GradientStop(nil), *target.stops()...)
			href = target.href
		}
		sortStops(*stops)

		if grad.linear != nil {
			c.icon.LinearGradients[id] = *grad.linear
		} else {
			c.icon.RadialGradients[id] = *grad.radial
		}
	}
}
