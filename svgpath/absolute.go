package svgpath

// cursor tracks the state needed to resolve relative
// and smooth commands.
type cursor struct {
	x, y   float64 // current point
	sx, sy float64 // start of the current subpath
	// last control points, used by smooth commands
	cubicX, cubicY float64
	quadX, quadY   float64
	prev           commandKind
	started        bool
}

func (c *cursor) offset(relative bool) (float64, float64) {
	if relative {
		return c.x, c.y
	}
	return 0, 0
}

// reflected returns the control point implied by a smooth command
func (c *cursor) reflected(quadratic bool) (float64, float64) {
	if quadratic {
		if c.prev == kindQuadTo || c.prev == kindSmoothQuadTo {
			return 2*c.x - c.quadX, 2*c.y - c.quadY
		}
		return c.x, c.y
	}
	if c.prev == kindCurveTo || c.prev == kindSmoothCurveTo {
		return 2*c.x - c.cubicX, 2*c.y - c.cubicY
	}
	return c.x, c.y
}

// absolute resolves `cmd` against the cursor and advances it.
func (c *cursor) absolute(cmd Command) Command {
	var out Command
	switch cmd := cmd.(type) {
	case MoveTo:
		dx, dy := c.offset(cmd.Relative && c.started)
		out = MoveTo{X: cmd.X + dx, Y: cmd.Y + dy}
		c.x, c.y = cmd.X+dx, cmd.Y+dy
		c.sx, c.sy = c.x, c.y
	case LineTo:
		dx, dy := c.offset(cmd.Relative)
		out = LineTo{X: cmd.X + dx, Y: cmd.Y + dy}
		c.x, c.y = cmd.X+dx, cmd.Y+dy
	case HorizontalLineTo:
		dx, _ := c.offset(cmd.Relative)
		out = HorizontalLineTo{X: cmd.X + dx}
		c.x = cmd.X + dx
	case VerticalLineTo:
		_, dy := c.offset(cmd.Relative)
		out = VerticalLineTo{Y: cmd.Y + dy}
		c.y = cmd.Y + dy
	case CurveTo:
		dx, dy := c.offset(cmd.Relative)
		abs := CurveTo{X1: cmd.X1 + dx, Y1: cmd.Y1 + dy, X2: cmd.X2 + dx, Y2: cmd.Y2 + dy, X: cmd.X + dx, Y: cmd.Y + dy}
		out = abs
		c.cubicX, c.cubicY = abs.X2, abs.Y2
		c.x, c.y = abs.X, abs.Y
	case SmoothCurveTo:
		dx, dy := c.offset(cmd.Relative)
		abs := SmoothCurveTo{X2: cmd.X2 + dx, Y2: cmd.Y2 + dy, X: cmd.X + dx, Y: cmd.Y + dy}
		out = abs
		c.cubicX, c.cubicY = abs.X2, abs.Y2
		c.x, c.y = abs.X, abs.Y
	case QuadTo:
		dx, dy := c.offset(cmd.Relative)
		abs := QuadTo{X1: cmd.X1 + dx, Y1: cmd.Y1 + dy, X: cmd.X + dx, Y: cmd.Y + dy}
		out = abs
		c.quadX, c.quadY = abs.X1, abs.Y1
		c.x, c.y = abs.X, abs.Y
	case SmoothQuadTo:
		qx, qy := c.reflected(true)
		dx, dy := c.offset(cmd.Relative)
		out = SmoothQuadTo{X: cmd.X + dx, Y: cmd.Y + dy}
		c.quadX, c.quadY = qx, qy
		c.x, c.y = cmd.X+dx, cmd.Y+dy
	case ArcTo:
		dx, dy := c.offset(cmd.Relative)
		abs := cmd
		abs.X, abs.Y, abs.Relative = cmd.X+dx, cmd.Y+dy, false
		out = abs
		c.x, c.y = abs.X, abs.Y
	case Close:
		out = Close{}
		c.x, c.y = c.sx, c.sy
	}
	c.prev = cmd.command()
	c.started = true
	return out
}

// ToAbsolute returns a copy of the path where every command
// uses absolute coordinates. Command types are preserved:
// an 'h' becomes an 'H', an 's' becomes an 'S', and so on.
// A leading relative moveto is treated as absolute, as required by SVG.
func ToAbsolute(p Path) Path {
	var c cursor
	out := make(Path, len(p))
	for i, cmd := range p {
		out[i] = c.absolute(cmd)
	}
	return out
}

// Simplify returns an equivalent path made only of absolute
// MoveTo, LineTo, QuadTo, CurveTo and Close commands:
// horizontal and vertical lines become lines, smooth curves
// get their explicit control point and arcs are approximated
// by cubic bezier curves.
func Simplify(p Path) Path {
	var (
		c   cursor
		out Path
	)
	for _, cmd := range p {
		startX, startY := c.x, c.y
		// smooth control points must be computed before the cursor moves
		var rx, ry float64
		switch cmd.(type) {
		case SmoothCurveTo:
			rx, ry = c.reflected(false)
		case SmoothQuadTo:
			rx, ry = c.reflected(true)
		}
		switch abs := c.absolute(cmd).(type) {
		case HorizontalLineTo:
			out = append(out, LineTo{X: abs.X, Y: startY})
		case VerticalLineTo:
			out = append(out, LineTo{X: startX, Y: abs.Y})
		case SmoothCurveTo:
			out = append(out, CurveTo{X1: rx, Y1: ry, X2: abs.X2, Y2: abs.Y2, X: abs.X, Y: abs.Y})
		case SmoothQuadTo:
			out = append(out, QuadTo{X1: rx, Y1: ry, X: abs.X, Y: abs.Y})
		case ArcTo:
			out = append(out, ArcToCubics(startX, startY, abs)...)
		default:
			out = append(out, abs)
		}
	}
	return out
}
