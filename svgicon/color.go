package svgicon

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// Color is a RGB color with an alpha channel in [0, 1].
type Color struct {
	R, G, B uint8
	A       float64
}

// Black is the color used for `currentColor`.
var Black = Color{A: 1}

// OptionalColor is a Color which may be absent,
// as for the "none" keyword.
type OptionalColor struct {
	Color
	Valid bool
}

func (c Color) alphaByte() uint8 {
	a := math.Max(0, math.Min(1, c.A))
	return uint8(math.Round(a * 255))
}

// Hex returns the 8 digit AARRGGBB form of the color, in upper case.
func (c Color) Hex() string {
	return fmt.Sprintf("%02X%02X%02X%02X", c.alphaByte(), c.R, c.G, c.B)
}

// KotlinLiteral returns the color as an hexadecimal literal 0xAARRGGBB.
func (c Color) KotlinLiteral() string { return "0x" + c.Hex() }

// AndroidHex returns #RRGGBB when the color is fully opaque,
// #AARRGGBB otherwise.
func (c Color) AndroidHex() string {
	if c.A == 1 {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return "#" + c.Hex()
}

// AndroidHexWithAlpha always returns the #AARRGGBB form.
func (c Color) AndroidHexWithAlpha() string { return "#" + c.Hex() }

// WithOpacity returns a copy of the color whose alpha
// is multiplied by `opacity`.
func (c Color) WithOpacity(opacity float64) Color {
	c.A *= opacity
	return c
}

// RGBA implements color.Color, so that the rasterizer can use Color directly.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.alphaByte()}.RGBA()
}

// ParseColor parses a color as found in a fill, stroke or stop-color value:
// #RGB, #RGBA, #RRGGBB, #RRGGBBAA, rgb(), rgba(), the SVG named colors,
// `transparent` and `currentColor` (resolved to black).
// `none` and the empty string return an absent color, without error.
func ParseColor(s string) (OptionalColor, error) {
	s = strings.TrimSpace(s)
	v := strings.ToLower(s)
	switch v {
	case "", "none":
		return OptionalColor{}, nil
	case "transparent":
		return OptionalColor{Valid: true}, nil
	case "currentcolor":
		return OptionalColor{Color: Black, Valid: true}, nil
	}
	if strings.HasPrefix(v, "#") {
		c, err := parseHexColor(v[1:])
		if err != nil {
			return OptionalColor{}, err
		}
		return OptionalColor{Color: c, Valid: true}, nil
	}
	if strings.HasPrefix(v, "rgb") {
		c, err := parseRGBFunc(v)
		if err != nil {
			return OptionalColor{}, err
		}
		return OptionalColor{Color: c, Valid: true}, nil
	}
	if cn, ok := colornames.Map[v]; ok {
		return OptionalColor{Color: Color{R: cn.R, G: cn.G, B: cn.B, A: 1}, Valid: true}, nil
	}
	return OptionalColor{}, fmt.Errorf("invalid color %q", s)
}

func parseHexColor(hex string) (Color, error) {
	switch len(hex) {
	case 3, 4: // short form, each digit is doubled
		var long strings.Builder
		for _, r := range hex {
			long.WriteRune(r)
			long.WriteRune(r)
		}
		hex = long.String()
	case 6, 8:
	default:
		return Color{}, fmt.Errorf("invalid hex color #%s", hex)
	}
	t, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color #%s", hex)
	}
	if len(hex) == 6 {
		return Color{R: uint8(t >> 16), G: uint8(t >> 8), B: uint8(t), A: 1}, nil
	}
	return Color{R: uint8(t >> 24), G: uint8(t >> 16), B: uint8(t >> 8), A: float64(uint8(t)) / 255}, nil
}

// parseRGBFunc handles rgb(r, g, b) and rgba(r, g, b, a),
// with channels given as numbers or percentages
func parseRGBFunc(v string) (Color, error) {
	start, end := strings.IndexByte(v, '('), strings.LastIndexByte(v, ')')
	if start == -1 || end < start {
		return Color{}, fmt.Errorf("invalid color function %q", v)
	}
	args := strings.FieldsFunc(v[start+1:end], func(r rune) bool {
		return r == ',' || r == '/' || r == ' ' || r == '\t' || r == '\n'
	})
	if len(args) != 3 && len(args) != 4 {
		return Color{}, fmt.Errorf("invalid color function %q: %w", v, errParamMismatch)
	}
	var channels [3]uint8
	for i := range channels {
		f, err := readFraction(args[i])
		if err != nil {
			return Color{}, fmt.Errorf("invalid color function %q: %w", v, err)
		}
		if !strings.HasSuffix(args[i], "%") {
			f /= 255
		}
		channels[i] = uint8(math.Round(math.Max(0, math.Min(1, f)) * 255))
	}
	c := Color{R: channels[0], G: channels[1], B: channels[2], A: 1}
	if len(args) == 4 {
		a, err := readFraction(args[3])
		if err != nil {
			return Color{}, fmt.Errorf("invalid color function %q: %w", v, err)
		}
		c.A = math.Max(0, math.Min(1, a))
	}
	return c, nil
}
