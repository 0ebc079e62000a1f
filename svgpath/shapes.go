package svgpath

import (
	"math"
)

// This file implements the transformation from
// high level shapes to their path equivalent.
// Only absolute M, L, C and Z commands are emitted.

// kappa is the distance of the control points used to
// approximate a quarter of circle by a cubic bezier curve.
const kappa = 0.5522847498

// maxDx is the maximum radians a cubic splice is allowed to span
// in ellipse parametric when approximating an off-axis ellipse.
const maxDx float64 = math.Pi / 8

// Rect returns the outline of a rectangle, with rounded corners
// of radius rx, ry when both are positive. Radii larger than
// half the size are clamped. An empty rectangle returns nil.
func Rect(x, y, w, h, rx, ry float64) Path {
	if w <= 0 || h <= 0 {
		return nil
	}
	var p Path
	if rx <= 0 || ry <= 0 {
		p.Start(x, y)
		p.Line(x+w, y)
		p.Line(x+w, y+h)
		p.Line(x, y+h)
		p.Stop(true)
		return p
	}
	rx = math.Min(rx, w/2)
	ry = math.Min(ry, h/2)
	kx, ky := rx*kappa, ry*kappa
	maxX, maxY := x+w, y+h

	p.Start(x+rx, y)
	p.Line(maxX-rx, y)
	p.CubeBezier(maxX-rx+kx, y, maxX, y+ry-ky, maxX, y+ry)
	p.Line(maxX, maxY-ry)
	p.CubeBezier(maxX, maxY-ry+ky, maxX-rx+kx, maxY, maxX-rx, maxY)
	p.Line(x+rx, maxY)
	p.CubeBezier(x+rx-kx, maxY, x, maxY-ry+ky, x, maxY-ry)
	p.Line(x, y+ry)
	p.CubeBezier(x, y+ry-ky, x+rx-kx, y, x+rx, y)
	p.Stop(true)
	return p
}

// Ellipse returns the outline of an axis aligned ellipse, made of
// four cubic bezier curves. A zero radius returns nil.
func Ellipse(cx, cy, rx, ry float64) Path {
	if rx <= 0 || ry <= 0 { // not drawn, but not an error
		return nil
	}
	kx, ky := rx*kappa, ry*kappa
	var p Path
	p.Start(cx+rx, cy)
	p.CubeBezier(cx+rx, cy+ky, cx+kx, cy+ry, cx, cy+ry)
	p.CubeBezier(cx-kx, cy+ry, cx-rx, cy+ky, cx-rx, cy)
	p.CubeBezier(cx-rx, cy-ky, cx-kx, cy-ry, cx, cy-ry)
	p.CubeBezier(cx+kx, cy-ry, cx+rx, cy-ky, cx+rx, cy)
	p.Stop(true)
	return p
}

// Line returns a single segment path.
func Line(x1, y1, x2, y2 float64) Path {
	var p Path
	p.Start(x1, y1)
	p.Line(x2, y2)
	return p
}

// Poly returns the path joining the given points, given as a flat
// list of coordinates. A trailing odd coordinate is ignored.
// When closed is true (polygons), the path ends with a Z.
// Less than two points returns nil.
func Poly(points []float64, closed bool) Path {
	if len(points) < 4 {
		return nil
	}
	var p Path
	p.Start(points[0], points[1])
	for i := 2; i+1 < len(points); i += 2 {
		p.Line(points[i], points[i+1])
	}
	p.Stop(closed)
	return p
}

// ArcToCubics approximates the arc `arc`, starting at (x0, y0), with
// absolute cubic bezier curves. `arc` must use absolute coordinates.
// Degenerated arcs (zero radius) are returned as a line, and
// arcs ending at their start point are dropped.
func ArcToCubics(x0, y0 float64, arc ArcTo) Path {
	if x0 == arc.X && y0 == arc.Y {
		return nil
	}
	ra, rb := math.Abs(arc.RX), math.Abs(arc.RY)
	if ra == 0 || rb == 0 {
		return Path{LineTo{X: arc.X, Y: arc.Y}}
	}
	rotX := arc.Rotation * math.Pi / 180 // Convert degress to radians
	cx, cy := findEllipseCenter(&ra, &rb, rotX, x0, y0, arc.X, arc.Y, arc.Sweep, arc.LargeArc)

	startAngle := math.Atan2(y0-cy, x0-cx) - rotX
	endAngle := math.Atan2(arc.Y-cy, arc.X-cx) - rotX
	deltaTheta := endAngle - startAngle
	arcBig := math.Abs(deltaTheta) > math.Pi

	// Approximate ellipse using cubic bezeir splines
	etaStart := math.Atan2(math.Sin(startAngle)/rb, math.Cos(startAngle)/ra)
	etaEnd := math.Atan2(math.Sin(endAngle)/rb, math.Cos(endAngle)/ra)
	deltaEta := etaEnd - etaStart
	if arcBig != arc.LargeArc {
		if deltaEta < 0 {
			deltaEta += math.Pi * 2
		} else {
			deltaEta -= math.Pi * 2
		}
	}
	// This check might be needed if the center point of the elipse is
	// at the midpoint of the start and end lines.
	if deltaEta < 0 && arc.Sweep {
		deltaEta += math.Pi * 2
	} else if deltaEta >= 0 && !arc.Sweep {
		deltaEta -= math.Pi * 2
	}

	// Round up to determine number of cubic splines to approximate bezier curve
	segs := int(math.Abs(deltaEta)/maxDx) + 1
	dEta := deltaEta / float64(segs) // span of each segment
	// Approximate the ellipse using a set of cubic bezier curves by the method of
	// L. Maisonobe, "Drawing an elliptical arc using polylines, quadratic
	// or cubic Bezier curves", 2003
	// https://www.spaceroots.org/documents/elllipse/elliptical-arc.pdf
	tde := math.Tan(dEta / 2)
	alpha := math.Sin(dEta) * (math.Sqrt(4+3*tde*tde) - 1) / 3
	lx, ly := x0, y0
	sinTheta, cosTheta := math.Sin(rotX), math.Cos(rotX)
	ldx, ldy := ellipsePrime(ra, rb, sinTheta, cosTheta, etaStart)
	out := make(Path, 0, segs)
	for i := 1; i <= segs; i++ {
		eta := etaStart + dEta*float64(i)
		var px, py float64
		if i == segs {
			px, py = arc.X, arc.Y // Just makes the end point exact; no roundoff error
		} else {
			px, py = ellipsePointAt(ra, rb, sinTheta, cosTheta, eta, cx, cy)
		}
		dx, dy := ellipsePrime(ra, rb, sinTheta, cosTheta, eta)
		out = append(out, CurveTo{
			X1: lx + alpha*ldx, Y1: ly + alpha*ldy,
			X2: px - alpha*dx, Y2: py - alpha*dy,
			X: px, Y: py,
		})
		lx, ly, ldx, ldy = px, py, dx, dy
	}
	return out
}

// ellipsePrime gives tangent vectors for parameterized elipse; a, b, radii, eta parameter
func ellipsePrime(a, b, sinTheta, cosTheta, eta float64) (px, py float64) {
	bCosEta := b * math.Cos(eta)
	aSinEta := a * math.Sin(eta)
	px = -aSinEta*cosTheta - bCosEta*sinTheta
	py = -aSinEta*sinTheta + bCosEta*cosTheta
	return
}

// ellipsePointAt gives points for parameterized elipse; a, b, radii, eta parameter, center cx, cy
func ellipsePointAt(a, b, sinTheta, cosTheta, eta, cx, cy float64) (px, py float64) {
	aCosEta := a * math.Cos(eta)
	bSinEta := b * math.Sin(eta)
	px = cx + aCosEta*cosTheta - bSinEta*sinTheta
	py = cy + aCosEta*sinTheta + bSinEta*cosTheta
	return
}

// findEllipseCenter locates the center of the Ellipse if it exists. If it does not exist,
// the radius values will be increased minimally for a solution to be possible
// while preserving the ra to rb ratio.  ra and rb arguments are pointers that can be
// checked after the call to see if the values changed. This method uses coordinate transformations
// to reduce the problem to finding the center of a circle that includes the origin
// and an arbitrary point. The center of the circle is then transformed
// back to the original coordinates and returned.
func findEllipseCenter(ra, rb *float64, rotX, startX, startY, endX, endY float64, sweep, smallArc bool) (cx, cy float64) {
	cos, sin := math.Cos(rotX), math.Sin(rotX)

	// Move origin to start point
	nx, ny := endX-startX, endY-startY

	// Rotate ellipse x-axis to coordinate x-axis
	nx, ny = nx*cos+ny*sin, -nx*sin+ny*cos
	// Scale X dimension so that ra = rb
	nx *= *rb / *ra // Now the ellipse is a circle radius rb; therefore foci and center coincide

	midX, midY := nx/2, ny/2
	midlenSq := midX*midX + midY*midY

	var hr float64
	if *rb**rb < midlenSq {
		// Requested ellipse does not exist; scale ra, rb to fit. Length of
		// span is greater than max width of ellipse, must scale *ra, *rb
		nrb := math.Sqrt(midlenSq)
		if *ra == *rb {
			*ra = nrb // prevents roundoff
		} else {
			*ra = *ra * nrb / *rb
		}
		*rb = nrb
	} else {
		hr = math.Sqrt(*rb**rb-midlenSq) / math.Sqrt(midlenSq)
	}
	// Notice that if hr is zero, both answers are the same.
	if (sweep && smallArc) || (!sweep && !smallArc) {
		cx = midX + midY*hr
		cy = midY - midX*hr
	} else {
		cx = midX - midY*hr
		cy = midY + midX*hr
	}

	// reverse scale
	cx *= *ra / *rb
	//Reverse rotate and translate back to original coordinates
	return cx*cos - cy*sin + startX, cx*sin + cy*cos + startY
}
