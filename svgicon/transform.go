package svgicon

import (
	"math"
	"strings"

	"github.com/benoitkugler/vectoricons/svgpath"
)

// Transform is a decomposed affine transform.
// Each field at its identity value (0, or 1 for the scales)
// is considered absent by the generators.
// Rotation and skews are in degrees; the rotation is
// done around (PivotX, PivotY).
type Transform struct {
	TranslateX, TranslateY float64
	ScaleX, ScaleY         float64
	Rotation               float64
	PivotX, PivotY         float64
	SkewX, SkewY           float64
}

// Identity is the transform with no effect.
var Identity = Transform{ScaleX: 1, ScaleY: 1}

// IsIdentity returns true if all the fields are at their identity value.
func (t Transform) IsIdentity() bool { return t == Identity }

// ParseTransform parses the content of a `transform` or `gradientTransform`
// attribute. The supported functions are translate, scale, rotate,
// skewX, skewY and matrix.
//
// Several functions are combined field by field, a later function
// overriding the fields set by a previous one: this is not a true
// matrix composition. Invalid functions (unknown name, wrong number
// of arguments) are skipped; nil is returned if no function is valid.
func ParseTransform(s string) *Transform {
	out := Identity
	valid := false
	for _, token := range strings.Split(s, ")") {
		token = strings.TrimSpace(strings.TrimLeft(token, " \t\n\r,"))
		if token == "" {
			continue
		}
		d := strings.Split(token, "(")
		if len(d) != 2 {
			continue // badly formed transformation
		}
		args, err := svgpath.ReadNumbers(d[1])
		if err != nil {
			continue
		}
		if err := out.readTransformFunc(strings.TrimSpace(d[0]), args); err != nil {
			continue
		}
		valid = true
	}
	if !valid {
		return nil
	}
	return &out
}

func (t *Transform) readTransformFunc(name string, args []float64) error {
	ln := len(args)
	switch name {
	case "translate":
		if ln == 1 {
			t.TranslateX, t.TranslateY = args[0], 0
		} else if ln == 2 {
			t.TranslateX, t.TranslateY = args[0], args[1]
		} else {
			return errParamMismatch
		}
	case "scale":
		if ln == 1 {
			t.ScaleX, t.ScaleY = args[0], args[0]
		} else if ln == 2 {
			t.ScaleX, t.ScaleY = args[0], args[1]
		} else {
			return errParamMismatch
		}
	case "rotate":
		if ln == 1 {
			t.Rotation = args[0]
		} else if ln == 3 {
			t.Rotation, t.PivotX, t.PivotY = args[0], args[1], args[2]
		} else {
			return errParamMismatch
		}
	case "skewX":
		if ln != 1 {
			return errParamMismatch
		}
		t.SkewX = args[0]
	case "skewY":
		if ln != 1 {
			return errParamMismatch
		}
		t.SkewY = args[0]
	case "matrix":
		if ln != 6 {
			return errParamMismatch
		}
		*t = decomposeMatrix(args[0], args[1], args[2], args[3], args[4], args[5])
	default:
		return errParamMismatch
	}
	return nil
}

// decomposeMatrix recovers translation, scale, rotation
// and horizontal skew from the matrix
//
//	| a c e |
//	| b d f |
func decomposeMatrix(a, b, c, d, e, f float64) Transform {
	det := a*d - b*c
	sx := math.Hypot(a, b)
	sy := math.Hypot(c, d)
	if det < 0 {
		sy = -sy
	}
	out := Transform{
		TranslateX: e,
		TranslateY: f,
		ScaleX:     sx,
		ScaleY:     sy,
		Rotation:   snap(math.Atan2(b, a) * 180 / math.Pi),
	}
	if sx != 0 {
		out.SkewX = snap(math.Atan((a*c+b*d)/(sx*sx)) * 180 / math.Pi)
	}
	return out
}

// snap rounds the values very close to 0, which are
// produced by floating point errors.
func snap(v float64) float64 {
	if math.Abs(v) < 1e-9 {
		return 0
	}
	return v
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

// Apply maps the point (x, y) through the transform:
// skews, then scale, then rotation around the pivot, then translation.
func (t Transform) Apply(x, y float64) (float64, float64) {
	if t.SkewX != 0 {
		x += math.Tan(radians(t.SkewX)) * y
	}
	if t.SkewY != 0 {
		y += math.Tan(radians(t.SkewY)) * x
	}
	x, y = (x-t.PivotX)*t.ScaleX, (y-t.PivotY)*t.ScaleY
	if t.Rotation != 0 {
		sin, cos := math.Sincos(radians(t.Rotation))
		x, y = cos*x-sin*y, sin*x+cos*y
	}
	return x + t.PivotX + t.TranslateX, y + t.PivotY + t.TranslateY
}

// ScaleLength scales a length (such as a radius) by the larger
// of the absolute scale factors.
func (t Transform) ScaleLength(r float64) float64 {
	return r * math.Max(math.Abs(t.ScaleX), math.Abs(t.ScaleY))
}

// Matrix returns the coefficients (a, b, c, d, e, f) of
// the affine matrix equivalent to Apply.
func (t Transform) Matrix() [6]float64 {
	e, f := t.Apply(0, 0)
	a, b := t.Apply(1, 0)
	c, d := t.Apply(0, 1)
	return [6]float64{a - e, b - f, c - e, d - f, e, f}
}

// transformPath returns the absolute path with only M, L, Q, C and Z commands
// whose points are mapped by `t`.
func transformPath(p svgpath.Path, t Transform) svgpath.Path {
	p = svgpath.Simplify(p)
	out := make(svgpath.Path, len(p))
	for i, cmd := range p {
		switch cmd := cmd.(type) {
		case svgpath.MoveTo:
			cmd.X, cmd.Y = t.Apply(cmd.X, cmd.Y)
			out[i] = cmd
		case svgpath.LineTo:
			cmd.X, cmd.Y = t.Apply(cmd.X, cmd.Y)
			out[i] = cmd
		case svgpath.QuadTo:
			cmd.X1, cmd.Y1 = t.Apply(cmd.X1, cmd.Y1)
			cmd.X, cmd.Y = t.Apply(cmd.X, cmd.Y)
			out[i] = cmd
		case svgpath.CurveTo:
			cmd.X1, cmd.Y1 = t.Apply(cmd.X1, cmd.Y1)
			cmd.X2, cmd.Y2 = t.Apply(cmd.X2, cmd.Y2)
			cmd.X, cmd.Y = t.Apply(cmd.X, cmd.Y)
			out[i] = cmd
		default:
			out[i] = cmd
		}
	}
	return out
}
