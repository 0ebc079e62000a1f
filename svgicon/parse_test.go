package svgicon

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/benoitkugler/vectoricons/svgpath"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseIcon(t *testing.T, svg string) *ParsedSVG {
	t.Helper()
	return parseIconWithMode(t, svg, StrictErrorMode)
}

func parseIconWithMode(t *testing.T, svg string, mode ErrorMode) *ParsedSVG {
	t.Helper()
	icon, err := ParseWithOptions([]byte(svg), Options{ErrorMode: mode})
	require.NoError(t, err)
	return icon
}

var (
	red   = SolidFill{Color: Color{R: 255, A: 1}}
	green = SolidFill{Color: Color{G: 255, A: 1}}
	blue  = SolidFill{Color: Color{B: 255, A: 1}}
)

func TestParseSimplePath(t *testing.T) {
	icon := parseIcon(t, `<svg viewBox="0 0 24 24"><path d="M12,4 L12,20" fill="none" stroke="#000000"/></svg>`)
	assert.Equal(t, 24., icon.Width)
	assert.Equal(t, 24., icon.Height)
	assert.Equal(t, 24., icon.ViewportWidth)
	assert.Equal(t, 24., icon.ViewportHeight)
	require.Len(t, icon.Paths, 1)
	require.Len(t, icon.Elements, 1)

	p := icon.Paths[0]
	assert.Nil(t, p.Fill)
	assert.Equal(t, SolidFill{Color: Color{A: 1}}, p.Stroke)
	assert.Equal(t, "M12,4 L12,20", p.PathData)
	assert.Equal(t, svgpath.Path{svgpath.MoveTo{X: 12, Y: 4}, svgpath.LineTo{X: 12, Y: 20}}, p.Commands)
	assert.Equal(t, 1., p.StrokeWidth)
	assert.Equal(t, 4., p.StrokeMiterLimit)
	assert.Equal(t, ButtCap, p.StrokeLineCap)
	assert.Equal(t, MiterJoin, p.StrokeLineJoin)
	assert.Equal(t, 1., p.Opacity)
	assert.Equal(t, 1., p.FillOpacity)
	assert.Empty(t, icon.Groups)
}

func TestParseDimensions(t *testing.T) {
	icon := parseIcon(t, `<svg width="48px" height="32" viewBox="0 0 24 16"/>`)
	assert.Equal(t, 48., icon.Width)
	assert.Equal(t, 32., icon.Height)
	assert.Equal(t, 24., icon.ViewportWidth)
	assert.Equal(t, 16., icon.ViewportHeight)

	icon = parseIcon(t, `<svg width="20" height="10"/>`)
	assert.Equal(t, 20., icon.ViewportWidth)
	assert.Equal(t, 10., icon.ViewportHeight)
}

func TestParseInvalidRoot(t *testing.T) {
	for _, svg := range []string{
		``,
		`<svg></svg>`,
		`<svg width="24"/>`,
		`<html><svg viewBox="0 0 1 1"/></html>`,
		`just text`,
	} {
		_, err := Parse([]byte(svg))
		assert.True(t, errors.Is(err, ErrInvalidRoot), svg)
	}

	_, err := Parse([]byte(`<svg viewBox="0 0 1 1"><path></svg>`))
	var xmlErr *XMLError
	assert.True(t, errors.As(err, &xmlErr))
}

func TestParseRect(t *testing.T) {
	icon := parseIcon(t, `<svg viewBox="0 0 24 24"><rect x="2" y="4" width="20" height="16" fill="#000000"/></svg>`)
	require.Len(t, icon.Paths, 1)
	data := icon.Paths[0].PathData
	assert.True(t, strings.HasPrefix(data, "M2,4"))
	for _, chunk := range []string{"L22,4", "L22,20", "L2,20"} {
		assert.Contains(t, data, chunk)
	}
	for _, forbidden := range []string{"h", "v", "a"} {
		assert.NotContains(t, data, forbidden)
	}
}

func TestParseShapes(t *testing.T) {
	icon := parseIcon(t, `<svg viewBox="0 0 24 24">
		<circle cx="12" cy="12" r="10"/>
		<ellipse cx="12" cy="12" rx="10" ry="5"/>
		<line x1="0" y1="0" x2="24" y2="24"/>
		<polygon points="0,0 10,0 10,10"/>
		<polyline points="0,0 10,0 10,10"/>
		<rect width="10" height="10" rx="2"/>
		<rect width="0" height="10"/>
		<circle r="0"/>
	</svg>`)
	require.Len(t, icon.Paths, 6)
	assert.Equal(t, "M22,12", icon.Paths[0].PathData[:6])
	assert.Equal(t, "M0,0 L24,24", icon.Paths[2].PathData)
	assert.Equal(t, "M0,0 L10,0 L10,10 Z", icon.Paths[3].PathData)
	assert.Equal(t, "M0,0 L10,0 L10,10", icon.Paths[4].PathData)
	// ry defaults to rx
	assert.Equal(t, svgpath.MoveTo{X: 2}, icon.Paths[5].Commands[0])
	for _, p := range icon.Paths {
		for _, cmd := range p.Commands {
			assert.False(t, cmd.IsRelative())
		}
	}
}

func TestParsePercentages(t *testing.T) {
	icon := parseIcon(t, `<svg viewBox="0 0 20 10"><rect x="10%" y="50%" width="50%" height="20%"/></svg>`)
	assert.Equal(t, "M2,5 L12,5 L12,7 L2,7 Z", icon.Paths[0].PathData)
}

func TestDocumentOrder(t *testing.T) {
	icon := parseIcon(t, `<svg viewBox="0 0 24 24">
		<path id="red" d="M0 0 L1 1" fill="#FF0000"/>
		<g id="group"><path d="M0 0 L2 2"/><g><path d="M0 0 L3 3"/></g></g>
		<path id="blue" d="M0 0 L4 4" fill="#0000FF"/>
	</svg>`)
	require.Len(t, icon.Elements, 3)
	assert.Equal(t, "red", icon.Elements[0].(Path).ID)
	g := icon.Elements[1].(Group)
	assert.Equal(t, "group", g.ID)
	assert.Len(t, g.Elements, 2)
	assert.Len(t, g.Paths, 2)
	assert.Equal(t, "blue", icon.Elements[2].(Path).ID)

	require.Len(t, icon.Paths, 4)
	for i, want := range []string{"M0 0 L1 1", "M0 0 L2 2", "M0 0 L3 3", "M0 0 L4 4"} {
		assert.Equal(t, want, icon.Paths[i].PathData)
	}
	require.Len(t, icon.Groups, 1)
}

func TestCSSPrecedence(t *testing.T) {
	icon := parseIcon(t, `<svg viewBox="0 0 24 24">
		<style>.icon{fill:#FF0000} #special{stroke:#0000FF}</style>
		<path class="icon" fill="#00FF00" d="M0 0 L1 1"/>
		<path class="icon" d="M0 0 L1 1"/>
		<path class="other icon" id="special" style="fill:#0000FF" d="M0 0 L1 1"/>
	</svg>`)
	require.Len(t, icon.Paths, 3)
	assert.Equal(t, green, icon.Paths[0].Fill)
	assert.Equal(t, red, icon.Paths[1].Fill)
	assert.Equal(t, blue, icon.Paths[2].Fill)
	assert.Equal(t, blue, icon.Paths[2].Stroke)
}

func TestCSSOrder(t *testing.T) {
	icon := parseIcon(t, `<svg viewBox="0 0 24 24">
		<path class="a" d="M0 0 L1 1"/>
		<style><![CDATA[
			.a { fill: #FF0000 }
			/* the later rule wins */
			.a, .b { fill: #00FF00; stroke-width: 2 }
			path { stroke: #0000FF }
			g path { stroke: #FF0000 }
		]]></style>
	</svg>`)
	require.Len(t, icon.Paths, 1)
	assert.Equal(t, green, icon.Paths[0].Fill)
	assert.Equal(t, blue, icon.Paths[0].Stroke)
	assert.Equal(t, 2., icon.Paths[0].StrokeWidth)
}

func TestCSSMalformedDeclaration(t *testing.T) {
	icon, err := Parse([]byte(`<svg viewBox="0 0 24 24">
		<style>.a { fill: #0000FF; garbage; stroke-width: abc; stroke: #FF0000 }</style>
		<path class="a" d="M0 0 L1 1"/>
	</svg>`))
	require.NoError(t, err)
	require.Len(t, icon.Paths, 1)
	assert.Equal(t, blue, icon.Paths[0].Fill)
	assert.Equal(t, red, icon.Paths[0].Stroke)
	assert.Equal(t, 1., icon.Paths[0].StrokeWidth)
}

func TestStyleInheritance(t *testing.T) {
	icon := parseIcon(t, `<svg viewBox="0 0 24 24">
		<g fill="#FF0000" stroke="#0000FF" stroke-width="3" opacity="0.5" stroke-dasharray="1 2">
			<g opacity="0.8" fill-rule="evenodd">
				<path d="M0 0 L1 1"/>
				<path d="M0 0 L1 1" fill="#00FF00" stroke-linecap="round" stroke-linejoin="bevel"/>
			</g>
			<path d="M0 0 L1 1" fill="inherit"/>
		</g>
		<path d="M0 0 L1 1"/>
	</svg>`)
	require.Len(t, icon.Paths, 4)

	p := icon.Paths[0]
	assert.Equal(t, red, p.Fill)
	assert.Equal(t, blue, p.Stroke)
	assert.Equal(t, 3., p.StrokeWidth)
	assert.Equal(t, 0.8, p.Opacity) // nearest ancestor wins
	assert.Equal(t, []float64{1, 2}, p.StrokeDashArray)
	assert.Equal(t, EvenOdd, p.FillRule)

	p = icon.Paths[1]
	assert.Equal(t, green, p.Fill)
	assert.Equal(t, RoundCap, p.StrokeLineCap)
	assert.Equal(t, BevelJoin, p.StrokeLineJoin)

	p = icon.Paths[2]
	assert.Equal(t, red, p.Fill)
	assert.Equal(t, 0.5, p.Opacity)
	assert.Equal(t, NonZero, p.FillRule)

	// outside of the group : defaults
	p = icon.Paths[3]
	assert.Equal(t, SolidFill{Color: Black}, p.Fill)
	assert.Nil(t, p.Stroke)
	assert.Nil(t, p.StrokeDashArray)
}

func TestGradients(t *testing.T) {
	icon := parseIcon(t, `<svg viewBox="0 0 24 24">
		<defs>
			<linearGradient id="lin" x2="50%" spreadMethod="reflect" gradientTransform="translate(1 2)">
				<stop offset="1" stop-color="#0000FF"/>
				<stop offset="0" stop-color="#FF0000" stop-opacity="0.5"/>
				<stop offset="50%" style="stop-color:#00FF00"/>
			</linearGradient>
			<radialGradient id="rad" fx="2"><stop offset="0.2"/></radialGradient>
		</defs>
		<path d="M0 0 L1 1" fill="url(#lin)" stroke="url('#rad')"/>
		<path d="M0 0 L1 1" fill="url(#missing)"/>
		<path d="M0 0 L1 1" fill="url(#missing) #FF0000"/>
	</svg>`)
	require.Len(t, icon.Paths, 3)
	assert.Equal(t, LinearGradientRef{ID: "lin"}, icon.Paths[0].Fill)
	assert.Equal(t, RadialGradientRef{ID: "rad"}, icon.Paths[0].Stroke)
	assert.Nil(t, icon.Paths[1].Fill)
	assert.Equal(t, red, icon.Paths[2].Fill)

	lin := icon.LinearGradients["lin"]
	want := LinearGradient{
		ID: "lin", X1: 0, Y1: 0, X2: 12, Y2: 0,
		Stops: []GradientStop{
			{Offset: 0, Color: Color{R: 255, A: 1}, Opacity: 0.5},
			{Offset: 0.5, Color: Color{G: 255, A: 1}, Opacity: 1},
			{Offset: 1, Color: Color{B: 255, A: 1}, Opacity: 1},
		},
		Spread:    ReflectSpread,
		Transform: &Transform{TranslateX: 1, TranslateY: 2, ScaleX: 1, ScaleY: 1},
	}
	if diff := cmp.Diff(want, lin); diff != "" {
		t.Errorf("linear gradient mismatch (-want +got):\n%s", diff)
	}

	rad := icon.RadialGradients["rad"]
	assert.Equal(t, 12., rad.CX)
	assert.Equal(t, 12., rad.CY)
	assert.Equal(t, 12., rad.R)
	assert.Equal(t, 2., rad.FX)
	assert.Equal(t, 12., rad.FY)
	assert.Equal(t, []GradientStop{{Offset: 0.2, Color: Black, Opacity: 1}}, rad.Stops)
}

func TestGradientHref(t *testing.T) {
	// forward references are supported
	icon := parseIcon(t, `<svg viewBox="0 0 10 10">
		<radialGradient id="child" xlink:href="#parent" xmlns:xlink="http://www.w3.org/1999/xlink"/>
		<linearGradient id="parent">
			<stop offset="0.8" stop-color="red"/>
			<stop offset="0.1" stop-color="blue"/>
		</linearGradient>
		<linearGradient id="loop" href="#loop"/>
	</svg>`)
	stops := icon.RadialGradients["child"].Stops
	require.Len(t, stops, 2)
	assert.Equal(t, 0.1, stops[0].Offset)
	assert.Equal(t, 0.8, stops[1].Offset)
	assert.Empty(t, icon.LinearGradients["loop"].Stops)
}

func TestUse(t *testing.T) {
	icon := parseIconWithMode(t, `<svg viewBox="0 0 24 24" xmlns:xlink="http://www.w3.org/1999/xlink">
		<defs>
			<path id="p" d="M0 0 L1 1"/>
			<symbol id="s"><rect width="2" height="2"/><circle r="1"/></symbol>
		</defs>
		<use href="#p" fill="#FF0000"/>
		<use xlink:href="#p" x="5" y="6"/>
		<use href="#s" transform="scale(2)"/>
		<use href="#missing"/>
		<use/>
		<use href="#later"/>
		<path id="later" d="M1 1 L2 2"/>
	</svg>`, IgnoreErrorMode)
	require.Len(t, icon.Elements, 5)

	p := icon.Elements[0].(Path)
	assert.Equal(t, red, p.Fill)
	assert.Equal(t, "M0 0 L1 1", p.PathData)

	g := icon.Elements[1].(Group)
	assert.Equal(t, &Transform{TranslateX: 5, TranslateY: 6, ScaleX: 1, ScaleY: 1}, g.Transform)
	assert.Equal(t, SolidFill{Color: Black}, g.Paths[0].Fill)

	g = icon.Elements[2].(Group)
	assert.Equal(t, &Transform{ScaleX: 2, ScaleY: 2}, g.Transform)
	assert.Len(t, g.Elements, 2)

	assert.Equal(t, "M1 1 L2 2", icon.Elements[3].(Path).PathData)
	assert.Equal(t, "M1 1 L2 2", icon.Elements[4].(Path).PathData)
}

// useChain returns a document with a chain of `n` <use> elements,
// ending on a path
func useChain(n int) string {
	var s strings.Builder
	s.WriteString(`<svg viewBox="0 0 24 24"><defs><path id="u0" d="M0 0 L1 1"/>`)
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&s, `<use id="u%d" href="#u%d"/>`, i, i-1)
	}
	fmt.Fprintf(&s, `</defs><use href="#u%d"/></svg>`, n)
	return s.String()
}

func TestUseDepth(t *testing.T) {
	icon := parseIcon(t, useChain(15))
	assert.Len(t, icon.Paths, 1)

	icon = parseIcon(t, useChain(16))
	assert.Empty(t, icon.Paths)

	icon = parseIcon(t, useChain(100))
	assert.Empty(t, icon.Paths)

	// cycles
	icon = parseIcon(t, `<svg viewBox="0 0 24 24">
		<use id="self" href="#self"/>
		<g id="a"><path d="M0 0 L1 1"/><use href="#b"/></g>
		<g id="b"><use href="#a"/></g>
	</svg>`)
	assert.Len(t, icon.Paths, 2)

	// an element is not expanded inside itself, so that
	// self references do not multiply the paths
	icon = parseIcon(t, `<svg viewBox="0 0 24 24">
		<g id="a"><path d="M0 0 L1 1"/><use href="#a"/><use href="#a"/></g>
	</svg>`)
	assert.Len(t, icon.Paths, 1)

	icon = parseIcon(t, `<svg viewBox="0 0 24 24">
		<g id="a"><path d="M0 0 L1 1"/><use href="#b"/><use href="#b"/></g>
		<g id="b"><use href="#a"/><use href="#a"/></g>
	</svg>`)
	assert.Len(t, icon.Paths, 3)
}

func TestUseEmptyReference(t *testing.T) {
	_, err := ParseWithOptions([]byte(`<svg viewBox="0 0 24 24"><use href="#"/></svg>`), Options{ErrorMode: StrictErrorMode})
	assert.ErrorIs(t, err, errZeroLengthID)

	icon := parseIconWithMode(t, `<svg viewBox="0 0 24 24"><use href="#"/><path d="M0 0 L1 1"/></svg>`, IgnoreErrorMode)
	assert.Len(t, icon.Paths, 1)
}

func TestClipPath(t *testing.T) {
	icon := parseIconWithMode(t, `<svg viewBox="0 0 24 24">
		<clipPath id="c"><rect width="10" height="10"/><path d="m20 20 h2 v2 z" transform="translate(1 1)"/></clipPath>
		<g clip-path="url(#c)"><path d="M0 0 L5 5"/></g>
		<path d="M0 0 L5 5" style="clip-path: url(#c)"/>
		<g clip-path="url(#unknown)"><path d="M0 0 L5 5"/></g>
	</svg>`, IgnoreErrorMode)
	require.Len(t, icon.Elements, 3)
	const clip = "M0,0 L10,0 L10,10 L0,10 Z M21,21 L23,21 L23,23 Z"
	assert.Equal(t, clip, icon.Elements[0].(Group).ClipPathData)
	// clipped paths are wrapped in a group
	g := icon.Elements[1].(Group)
	assert.Equal(t, clip, g.ClipPathData)
	assert.Nil(t, g.Transform)
	assert.Equal(t, "", icon.Elements[2].(Group).ClipPathData)
}

func TestTransformAttribute(t *testing.T) {
	icon := parseIcon(t, `<svg viewBox="0 0 24 24">
		<path d="M0 0 L1 1" transform="rotate(45 12 12)"/>
		<g transform="translate(0 0)"><path d="M0 0 L1 1"/></g>
	</svg>`)
	require.Len(t, icon.Elements, 2)
	g := icon.Elements[0].(Group)
	assert.Equal(t, &Transform{Rotation: 45, PivotX: 12, PivotY: 12, ScaleX: 1, ScaleY: 1}, g.Transform)
	assert.Nil(t, icon.Elements[1].(Group).Transform)
}

func TestViewBoxOrigin(t *testing.T) {
	icon := parseIcon(t, `<svg viewBox="-2 4 24 24"><path d="M0 0 L1 1"/></svg>`)
	require.Len(t, icon.Elements, 1)
	g := icon.Elements[0].(Group)
	assert.Equal(t, &Transform{TranslateX: 2, TranslateY: -4, ScaleX: 1, ScaleY: 1}, g.Transform)
	assert.Len(t, icon.Paths, 1)
}

func TestDisplayNone(t *testing.T) {
	icon := parseIcon(t, `<svg viewBox="0 0 24 24">
		<g display="none"><path d="M0 0 L1 1"/></g>
		<path d="M0 0 L1 1" style="display:none"/>
		<path d="M0 0 L2 2"/>
	</svg>`)
	require.Len(t, icon.Paths, 1)
	assert.Equal(t, "M0 0 L2 2", icon.Paths[0].PathData)
}

func TestTitleAndCharset(t *testing.T) {
	data := []byte("<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>" +
		"<svg viewBox=\"0 0 1 1\"><title> caf\xe9 </title><desc>An icon</desc></svg>")
	icon, err := ReadIconStream(bytes.NewReader(data), WarnErrorMode)
	require.NoError(t, err)
	assert.Equal(t, "café", icon.Title)
	assert.Equal(t, "An icon", icon.Description)
}

func TestErrorModes(t *testing.T) {
	const svg = `<svg viewBox="0 0 24 24">
		<text>unsupported</text>
		<path d="M0 0 L1 1" stroke-width="wide"/>
		<path d="M0 0 L1 1 X"/>
	</svg>`

	_, err := ParseWithOptions([]byte(svg), Options{ErrorMode: StrictErrorMode})
	assert.Error(t, err)

	icon, err := ParseWithOptions([]byte(svg), Options{ErrorMode: IgnoreErrorMode})
	require.NoError(t, err)
	require.Len(t, icon.Paths, 2)
	assert.Equal(t, 1., icon.Paths[0].StrokeWidth)
	// the valid part of the path data is kept
	assert.Equal(t, "M0,0 L1,1", icon.Paths[1].PathData)

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	defer SetLogger(nil)
	_, err = ParseWithOptions([]byte(svg), Options{ErrorMode: WarnErrorMode})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "element=text")
	assert.Contains(t, buf.String(), "property=stroke-width")
}

func TestParseErrorMode(t *testing.T) {
	for _, mode := range []ErrorMode{WarnErrorMode, IgnoreErrorMode, StrictErrorMode} {
		got, err := ParseErrorMode(mode.String())
		require.NoError(t, err)
		assert.Equal(t, mode, got)
	}
	_, err := ParseErrorMode("loud")
	assert.Error(t, err)
}
