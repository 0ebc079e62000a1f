package svgdrawable

import (
	"strings"
	"testing"

	"github.com/benoitkugler/vectoricons/svgicon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generate(t *testing.T, src string, opts Options) string {
	t.Helper()
	icon, err := svgicon.ParseWithOptions([]byte(src), svgicon.Options{ErrorMode: svgicon.StrictErrorMode})
	require.NoError(t, err)
	return Generate(icon, opts)
}

func TestStrokedLine(t *testing.T) {
	got := generate(t, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24"><path d="M12,4 L12,20" fill="none" stroke="#000000"/></svg>`, Options{})
	expected := `<?xml version="1.0" encoding="utf-8"?>
<vector
    xmlns:android="http://schemas.android.com/apk/res/android"
    android:width="24dp"
    android:height="24dp"
    android:viewportWidth="24"
    android:viewportHeight="24">
    <path
        android:pathData="M12,4 L12,20"
        android:strokeColor="#000000"
        android:strokeWidth="1" />
</vector>
`
	assert.Equal(t, expected, got)
}

func TestDocumentOrder(t *testing.T) {
	got := generate(t, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24">
		<path d="M0 0 H4 V4 Z" fill="#FF0000"/>
		<g transform="translate(2 2)"><path d="M0 0 H4 V4 Z" fill="#00FF00"/></g>
		<path d="M0 0 H4 V4 Z" fill="#0000FF"/>
	</svg>`, Options{})

	red, group, blue := strings.Index(got, "#FF0000"), strings.Index(got, "<group"), strings.Index(got, "#0000FF")
	require.True(t, red >= 0 && group >= 0 && blue >= 0)
	assert.Less(t, red, group)
	assert.Less(t, group, blue)
	assert.Contains(t, got, `android:translateX="2"`)
	assert.NotContains(t, got, "xmlns:aapt")
}

func TestPathAttributes(t *testing.T) {
	got := generate(t, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24">
		<path id="main" d="M0 0 H4 V4 Z" fill="#FF000080" fill-opacity="0.5" fill-rule="evenodd"
			stroke="blue" stroke-width="2" stroke-linecap="round" stroke-linejoin="bevel" stroke-miterlimit="10" stroke-opacity="0.25"/>
	</svg>`, Options{AutoMirrored: true})

	for _, attr := range []string{
		`android:autoMirrored="true"`,
		`android:name="main"`,
		`android:fillColor="#80FF0000"`,
		`android:fillAlpha="0.5"`,
		`android:fillType="evenOdd"`,
		`android:strokeColor="#0000FF"`,
		`android:strokeAlpha="0.25"`,
		`android:strokeWidth="2"`,
		`android:strokeLineCap="round"`,
		`android:strokeLineJoin="bevel"`,
		`android:strokeMiterLimit="10"`,
	} {
		assert.Contains(t, got, attr)
	}

	// default values are omitted
	got = generate(t, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24"><path d="M0 0 H4 V4 Z"/></svg>`, Options{})
	assert.Contains(t, got, `android:fillColor="#000000"`)
	for _, attr := range []string{"autoMirrored", "fillAlpha", "fillType", "stroke"} {
		assert.NotContains(t, got, attr)
	}
}

func TestMatrixGroup(t *testing.T) {
	got := generate(t, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24">
		<g transform="matrix(1,0,0,-1,3,13)"><path d="M0 0 L1 1" stroke="#000"/></g>
	</svg>`, Options{})
	assert.Contains(t, got, `android:translateX="3"`)
	assert.Contains(t, got, `android:translateY="13"`)
	assert.Contains(t, got, `android:scaleY="-1"`)
	assert.NotContains(t, got, "android:scaleX")
	assert.NotContains(t, got, "android:rotation")
}

func TestLinearGradient(t *testing.T) {
	got := generate(t, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24">
		<linearGradient id="g" x1="0" y1="0" x2="24" y2="0" gradientUnits="userSpaceOnUse" spreadMethod="repeat">
			<stop offset="0.8" stop-color="#0000FF"/>
			<stop offset="0.2" stop-color="#FF0000" stop-opacity="0.5"/>
		</linearGradient>
		<rect width="24" height="24" fill="url(#g)"/>
	</svg>`, Options{})

	assert.Contains(t, got, `xmlns:aapt="http://schemas.android.com/aapt"`)
	assert.Contains(t, got, `<aapt:attr
            name="android:fillColor">`)
	assert.Contains(t, got, `android:type="linear"`)
	assert.Contains(t, got, `android:endX="24"`)
	assert.Contains(t, got, `android:tileMode="repeat"`)
	assert.NotContains(t, got, `android:fillColor="`)

	// stops are sorted
	first, second := strings.Index(got, `android:offset="0.2"`), strings.Index(got, `android:offset="0.8"`)
	require.True(t, first >= 0 && second >= 0)
	assert.Less(t, first, second)
	assert.Contains(t, got, `android:color="#80FF0000"`)
	assert.Contains(t, got, `android:color="#FF0000FF"`)
}

func TestRadialGradient(t *testing.T) {
	got := generate(t, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24">
		<radialGradient id="r" cx="5" cy="5" r="5" gradientUnits="userSpaceOnUse" spreadMethod="reflect"
			gradientTransform="translate(1 2) scale(2)">
			<stop offset="0" stop-color="#FFFFFF"/>
			<stop offset="1" stop-color="#000000"/>
		</radialGradient>
		<circle cx="12" cy="12" r="10" fill="none" stroke="url(#r)"/>
	</svg>`, Options{})

	assert.Contains(t, got, `name="android:strokeColor"`)
	assert.Contains(t, got, `android:type="radial"`)
	assert.Contains(t, got, `android:centerX="11"`)
	assert.Contains(t, got, `android:centerY="12"`)
	assert.Contains(t, got, `android:gradientRadius="10"`)
	assert.Contains(t, got, `android:tileMode="mirror"`)
	assert.Contains(t, got, `android:strokeWidth="1"`)
}

func TestDegenerateGradients(t *testing.T) {
	got := generate(t, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24">
		<linearGradient id="single"><stop offset="0.5" stop-color="#00FF00"/></linearGradient>
		<linearGradient id="empty"/>
		<rect width="4" height="4" fill="url(#single)"/>
		<rect width="4" height="4" fill="url(#empty)"/>
	</svg>`, Options{})

	assert.NotContains(t, got, "xmlns:aapt")
	assert.NotContains(t, got, "<gradient")
	assert.Equal(t, 1, strings.Count(got, "android:fillColor"))
	assert.Contains(t, got, `android:fillColor="#FF00FF00"`)
	assert.Equal(t, 2, strings.Count(got, "<path"))
}

func TestClipPath(t *testing.T) {
	got := generate(t, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24">
		<clipPath id="c"><rect width="10" height="10"/></clipPath>
		<path clip-path="url(#c)" d="M0 0 L20 20" stroke="#000"/>
	</svg>`, Options{})

	group, clip, path := strings.Index(got, "<group>"), strings.Index(got, "<clip-path"), strings.Index(got, "<path")
	require.True(t, group >= 0 && clip >= 0 && path >= 0)
	assert.Less(t, group, clip)
	assert.Less(t, clip, path)
	assert.Contains(t, got, `android:pathData="M0,0 L10,0 L10,10 L0,10 Z"`)
}

func TestEscaping(t *testing.T) {
	icon := &svgicon.ParsedSVG{
		Width: 24, Height: 24, ViewportWidth: 24, ViewportHeight: 24,
		Elements: []svgicon.Element{svgicon.Path{ID: `a<b&"c"`, PathData: "M0 0", Opacity: 1, FillOpacity: 1, StrokeOpacity: 1}},
	}
	got := Generate(icon, Options{})
	assert.Contains(t, got, `android:name="a&lt;b&amp;&#34;c&#34;"`)
	assert.NotContains(t, got, "fillColor")
}
