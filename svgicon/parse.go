package svgicon

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/benoitkugler/vectoricons/svgpath"
	"github.com/tdewolff/parse/v2/strconv"
	"golang.org/x/net/html/charset"
)

// maxUseDepth bounds the expansion of nested <use> elements.
const maxUseDepth = 16

type (
	// node is an element of the decoded XML tree.
	// The whole tree is built before the style resolution,
	// so that references may point forward.
	node struct {
		tag      string
		id       string
		classes  []string
		attrs    []xml.Attr
		text     string // character data, for <style>, <title> and <desc>
		children []*node
	}

	// bounds defines a bounding box, such as a viewport
	bounds struct{ X, Y, W, H float64 }

	// iconCursor is used while parsing SVG files
	iconCursor struct {
		errorMode ErrorMode
		icon      *ParsedSVG
		viewBox   bounds
		styles    stylesheet
		byID      map[string]*node
	}
)

func (n *node) attr(name string) (string, bool) {
	for _, attr := range n.attrs {
		if attr.Name.Local == name {
			return attr.Value, true
		}
	}
	return "", false
}

// walk calls `fn` on `n` and its descendants, in document order
func (n *node) walk(fn func(*node)) {
	fn(n)
	for _, child := range n.children {
		child.walk(fn)
	}
}

// Options controls the parsing.
type Options struct {
	ErrorMode ErrorMode
}

// Parse parses an SVG document, using the default options.
func Parse(data []byte) (*ParsedSVG, error) {
	return ParseWithOptions(data, Options{})
}

// ParseWithOptions parses an SVG document.
// It returns ErrInvalidRoot if the root is not a <svg> element
// with a viewBox or a width and height, and an *XMLError if the
// document is not well formed.
// The other problems are handled according to `opts.ErrorMode`.
func ParseWithOptions(data []byte, opts Options) (*ParsedSVG, error) {
	return ReadIconStream(bytes.NewReader(data), opts.ErrorMode)
}

// ReadIconStream reads the icon from the given io.Reader.
// The encoding declared in the XML header is honored.
// This only supports a sub-set of SVG, but
// is enough to convert many icons. errMode determines if the parser ignores, errors out, or logs a warning
// if it does not handle an element found in the icon file.
func ReadIconStream(stream io.Reader, errMode ErrorMode) (*ParsedSVG, error) {
	root, err := decodeTree(stream)
	if err != nil {
		return nil, err
	}
	cursor := &iconCursor{
		errorMode: errMode,
		byID:      make(map[string]*node),
		icon: &ParsedSVG{
			LinearGradients: make(map[string]LinearGradient),
			RadialGradients: make(map[string]RadialGradient),
		},
	}
	if err = cursor.parse(root); err != nil {
		return nil, err
	}
	return cursor.icon, nil
}

func decodeTree(stream io.Reader) (*node, error) {
	decoder := xml.NewDecoder(stream)
	decoder.CharsetReader = charset.NewReaderLabel
	var (
		root  *node
		stack []*node
	)
	for {
		t, err := decoder.Token()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, &XMLError{Err: err}
		}
		// Inspect the type of the XML token
		switch se := t.(type) {
		case xml.StartElement:
			n := &node{tag: se.Name.Local, attrs: se.Copy().Attr}
			for _, attr := range se.Attr {
				switch attr.Name.Local {
				case "id":
					n.id = strings.TrimSpace(attr.Value)
				case "class":
					n.classes = strings.Fields(attr.Value)
				}
			}
			if len(stack) == 0 {
				root = n
			} else {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, n)
			}
			stack = append(stack, n)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) != 0 {
				stack[len(stack)-1].text += string(se)
			}
		}
	}
	if root == nil || root.tag != "svg" {
		return nil, ErrInvalidRoot
	}
	return root, nil
}

// handleError reports a tolerable problem, and returns
// a non nil error only in strict mode.
func (c *iconCursor) handleError(err error, attrs ...any) error {
	switch c.errorMode {
	case StrictErrorMode:
		return err
	case WarnErrorMode:
		Logger().Warn("svgicon: skipping invalid content", append(attrs, "err", err)...)
	}
	return nil
}

func (c *iconCursor) parse(root *node) error {
	if err := c.readRoot(root); err != nil {
		return err
	}

	// first pass : index, style sheets and text
	root.walk(func(n *node) {
		if _, has := c.byID[n.id]; n.id != "" && !has {
			c.byID[n.id] = n
		}
		if n.tag == "style" {
			c.styles = append(c.styles, parseStylesheet(n.text)...)
		}
	})
	for _, child := range root.children {
		if child.tag == "title" && c.icon.Title == "" {
			c.icon.Title = strings.TrimSpace(child.text)
		} else if child.tag == "desc" && c.icon.Description == "" {
			c.icon.Description = strings.TrimSpace(child.text)
		}
	}

	// second pass : gradients, which require the style sheets
	if err := c.collectGradients(root); err != nil {
		return err
	}

	// last pass : the content
	st, err := c.resolveStyle(root, defaultStyle)
	if err != nil {
		return err
	}
	elements, err := c.children(root, st, &scope{n: root})
	if err != nil {
		return err
	}
	if (c.viewBox.X != 0 || c.viewBox.Y != 0) && len(elements) != 0 {
		tr := Identity
		tr.TranslateX, tr.TranslateY = -c.viewBox.X, -c.viewBox.Y
		elements = []Element{newGroup("", &tr, "", elements)}
	}
	c.icon.Elements = elements
	c.icon.Paths = FlattenPaths(elements)
	for _, el := range elements {
		if g, ok := el.(Group); ok {
			c.icon.Groups = append(c.icon.Groups, g)
		}
	}
	return nil
}

// readRoot reads the dimensions of the document.
// The viewBox defaults to the width and height, and the width
// and height to the viewBox size.
func (c *iconCursor) readRoot(n *node) error {
	var (
		width, height float64
		hasViewBox    bool
	)
	for _, attr := range n.attrs {
		switch attr.Name.Local {
		case "viewBox":
			points, err := svgpath.ReadNumbers(attr.Value)
			if err != nil || len(points) != 4 || points[2] <= 0 || points[3] <= 0 {
				Logger().Warn("svgicon: ignoring invalid viewBox", "viewBox", attr.Value)
				continue
			}
			c.viewBox = bounds{X: points[0], Y: points[1], W: points[2], H: points[3]}
			hasViewBox = true
		case "width":
			width, _ = parseLength(attr.Value) // percentages are ignored
		case "height":
			height, _ = parseLength(attr.Value)
		}
	}
	if !hasViewBox {
		if width <= 0 || height <= 0 {
			return ErrInvalidRoot
		}
		c.viewBox = bounds{W: width, H: height}
	}
	if width <= 0 {
		width = c.viewBox.W
	}
	if height <= 0 {
		height = c.viewBox.H
	}
	c.icon.Width, c.icon.Height = width, height
	c.icon.ViewportWidth, c.icon.ViewportHeight = c.viewBox.W, c.viewBox.H
	return nil
}

func (c *iconCursor) collectGradients(root *node) error {
	grads := make(map[string]gradient)
	var err error
	root.walk(func(n *node) {
		if err != nil || n.id == "" {
			return
		}
		var (
			grad  gradient
			errG  error
			known = true
		)
		switch n.tag {
		case "linearGradient":
			grad.linear, grad.href, errG = c.linearGradient(n)
		case "radialGradient":
			grad.radial, grad.href, errG = c.radialGradient(n)
		default:
			known = false
		}
		if !known {
			return
		}
		if errG != nil {
			err = c.handleError(errG, "element", n.tag, "id", n.id)
			return
		}
		if _, has := grads[n.id]; !has {
			grads[n.id] = grad
		}
	})
	if err != nil {
		return err
	}
	c.resolveGradients(grads)
	return nil
}

type percentageReference uint8

const (
	widthPercentage percentageReference = iota
	heightPercentage
	diagPercentage
)

// refLength returns the length against which
// a percentage is resolved
func (c *iconCursor) refLength(ref percentageReference) float64 {
	switch ref {
	case widthPercentage:
		return c.viewBox.W
	case heightPercentage:
		return c.viewBox.H
	default:
		return math.Sqrt((c.viewBox.W*c.viewBox.W + c.viewBox.H*c.viewBox.H) / 2)
	}
}

// parseUnit parses a length, resolving percentages
// against the viewport.
func (c *iconCursor) parseUnit(s string, ref percentageReference) (float64, error) {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "%") {
		f, err := parseBasicFloat(strings.TrimSuffix(s, "%"))
		if err != nil {
			return 0, err
		}
		return f / 100 * c.refLength(ref), nil
	}
	return parseLength(s)
}

// absolute units, in user units (pixels)
var unitFactors = map[string]float64{
	"px": 1,
	"dp": 1,
	"pt": 4. / 3,
	"pc": 16,
	"mm": 96 / 25.4,
	"cm": 96 / 2.54,
	"in": 96,
}

// parseLength parses a number, with an optional absolute unit
func parseLength(s string) (float64, error) {
	s = strings.TrimSpace(s)
	factor := 1.
	if len(s) > 2 {
		if f, ok := unitFactors[s[len(s)-2:]]; ok {
			factor = f
			s = s[:len(s)-2]
		}
	}
	f, err := parseBasicFloat(s)
	return f * factor, err
}

// parseBasicFloat parses a number, which must span the whole input
func parseBasicFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	f, n := strconv.ParseFloat([]byte(s))
	if n == 0 || n != len(s) {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return f, nil
}

// readFraction parses a number or a percentage, which
// is divided by 100
func readFraction(v string) (f float64, err error) {
	v = strings.TrimSpace(v)
	d := 1.0
	if strings.HasSuffix(v, "%") {
		d = 100
		v = strings.TrimSuffix(v, "%")
	}
	f, err = parseBasicFloat(v)
	f /= d
	return
}

func clamp01(f float64) float64 {
	return math.Max(0, math.Min(1, f))
}
