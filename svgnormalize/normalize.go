// Provides an alternate ingestion path, where SVG documents
// are first rewritten by a normalizer (by default the SVG minifier
// of github.com/tdewolff/minify) before being parsed.
package svgnormalize

import (
	"fmt"

	"github.com/benoitkugler/vectoricons/svgicon"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/svg"
)

const (
	svgMimetype = "image/svg+xml"
	cssMimetype = "text/css"
)

// Normalizer rewrites an SVG document into an equivalent one.
type Normalizer interface {
	Normalize(data []byte) ([]byte, error)
}

// NormalizerFunc adapts a function to the Normalizer interface.
type NormalizerFunc func(data []byte) ([]byte, error)

func (f NormalizerFunc) Normalize(data []byte) ([]byte, error) { return f(data) }

// Minifier normalizes documents with the minify SVG minifier,
// which also minifies embedded style sheets.
type Minifier struct {
	m *minify.M
}

// NewMinifier returns a minifier rounding numbers to `precision`
// significant digits. 0 keeps all the digits.
func NewMinifier(precision int) *Minifier {
	m := minify.New()
	m.Add(svgMimetype, &svg.Minifier{Precision: precision})
	m.AddFunc(cssMimetype, css.Minify)
	return &Minifier{m: m}
}

func (mi *Minifier) Normalize(data []byte) ([]byte, error) {
	return mi.m.Bytes(svgMimetype, data)
}

// NormalizeError is returned when the normalizer fails.
type NormalizeError struct {
	Err error
}

func (e *NormalizeError) Error() string { return fmt.Sprintf("svgnormalize: normalization failed: %s", e.Err) }

func (e *NormalizeError) Unwrap() error { return e.Err }

// Normalize applies `n` to `data`, turning failures and panics
// into a *NormalizeError.
func Normalize(data []byte, n Normalizer) (out []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, &NormalizeError{Err: fmt.Errorf("panic: %v", r)}
		}
	}()
	out, err = n.Normalize(data)
	if err != nil {
		return nil, &NormalizeError{Err: err}
	}
	svgicon.Logger().Debug("svgnormalize: document normalized", "input", len(data), "output", len(out))
	return out, nil
}

// Parse normalizes `data` with `n`, then parses the result with the
// default options. A nil `n` uses NewMinifier(0).
func Parse(data []byte, n Normalizer) (*svgicon.ParsedSVG, error) {
	return ParseWithOptions(data, n, svgicon.Options{})
}

// ParseWithOptions is the same as Parse, with control over the parser.
func ParseWithOptions(data []byte, n Normalizer, opts svgicon.Options) (*svgicon.ParsedSVG, error) {
	if n == nil {
		n = NewMinifier(0)
	}
	normalized, err := Normalize(data, n)
	if err != nil {
		return nil, err
	}
	return svgicon.ParseWithOptions(normalized, opts)
}
