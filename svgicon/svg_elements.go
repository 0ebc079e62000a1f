package svgicon

import (
	"fmt"
	"strings"

	"github.com/benoitkugler/vectoricons/svgpath"
)

func init() {
	// avoids cyclical static declaration
	// called on package initialization
	drawFuncs["g"] = gF
	drawFuncs["a"] = gF // links are drawn as groups
	drawFuncs["switch"] = gF
	drawFuncs["use"] = useF
}

// svgFunc converts the element `n`, whose style is `st`, into
// zero or more elements of the document model.
// `sc` already contains `n`.
type svgFunc func(c *iconCursor, n *node, st pathStyle, sc *scope) ([]Element, error)

// scope is the chain of elements being converted, from the root
// to the current one, with <use> targets inserted where they are expanded.
type scope struct {
	parent *scope
	n      *node
	uses   int // number of <use> being expanded
}

func (sc *scope) enter(n *node) *scope {
	return &scope{parent: sc, n: n, uses: sc.uses}
}

// contains returns true if `n` is being converted
func (sc *scope) contains(n *node) bool {
	for ; sc != nil; sc = sc.parent {
		if sc.n == n {
			return true
		}
	}
	return false
}

var drawFuncs = map[string]svgFunc{
	"path":     shapeF,
	"rect":     shapeF,
	"circle":   shapeF,
	"ellipse":  shapeF,
	"line":     shapeF,
	"polyline": shapeF,
	"polygon":  shapeF,
}

// elements which are not drawn when met in the content,
// but may be referenced
var skippedElements = map[string]bool{
	"defs":           true,
	"symbol":         true,
	"clipPath":       true,
	"mask":           true,
	"pattern":        true,
	"marker":         true,
	"filter":         true,
	"linearGradient": true,
	"radialGradient": true,
	"style":          true,
	"title":          true,
	"desc":           true,
	"metadata":       true,
	"script":         true,
}

// element resolves the style of `n` and converts it
func (c *iconCursor) element(n *node, parent pathStyle, sc *scope) ([]Element, error) {
	df, ok := drawFuncs[n.tag]
	if !ok {
		if skippedElements[n.tag] {
			return nil, nil
		}
		return nil, c.handleError(fmt.Errorf("cannot process svg element %s", n.tag), "element", n.tag, "id", n.id)
	}
	st, err := c.resolveStyle(n, parent)
	if err != nil {
		return nil, err
	}
	if st.hidden {
		return nil, nil
	}
	return df(c, n, st, sc.enter(n))
}

// children converts the children of `n`, in document order
func (c *iconCursor) children(n *node, st pathStyle, sc *scope) ([]Element, error) {
	var out []Element
	for _, child := range n.children {
		elements, err := c.element(child, st, sc)
		if err != nil {
			return nil, err
		}
		out = append(out, elements...)
	}
	return out, nil
}

func gF(c *iconCursor, n *node, st pathStyle, sc *scope) ([]Element, error) {
	elements, err := c.children(n, st, sc)
	if err != nil || len(elements) == 0 {
		return nil, err
	}
	tr, clip, err := c.groupAttrs(n, st)
	if err != nil {
		return nil, err
	}
	return []Element{newGroup(n.id, tr, clip, elements)}, nil
}

func shapeF(c *iconCursor, n *node, st pathStyle, _ *scope) ([]Element, error) {
	cmds, data, err := c.geometry(n)
	if err != nil {
		// the commands parsed before the error are kept
		if err = c.handleError(err, "element", n.tag, "id", n.id); err != nil {
			return nil, err
		}
	}
	if len(cmds) == 0 {
		return nil, nil
	}
	p := st.path(n.id, data, cmds)
	tr, clip, err := c.groupAttrs(n, st)
	if err != nil {
		return nil, err
	}
	if tr == nil && clip == "" {
		return []Element{p}, nil
	}
	// paths have no transform or clip : use a synthetic group
	return []Element{newGroup("", tr, clip, []Element{p})}, nil
}

func useF(c *iconCursor, n *node, st pathStyle, sc *scope) ([]Element, error) {
	if sc.uses >= maxUseDepth {
		Logger().Debug("svgicon: maximum use depth reached", "id", n.id)
		return nil, nil
	}
	href, _ := n.attr("href")
	id := refID(href)
	if id == "" {
		return nil, c.handleError(errZeroLengthID, "element", "use", "id", n.id)
	}
	target, ok := c.byID[id]
	if !ok {
		return nil, c.handleError(fmt.Errorf("use %q: %w", href, errMissingID), "element", "use", "id", n.id)
	}
	if sc.contains(target) {
		Logger().Debug("svgicon: circular use reference", "id", n.id, "href", id)
		return nil, nil
	}
	inner := &scope{parent: sc, uses: sc.uses + 1}

	var (
		elements []Element
		err      error
	)
	if target.tag == "symbol" {
		symbolStyle, err := c.resolveStyle(target, st)
		if err != nil || symbolStyle.hidden {
			return nil, err
		}
		elements, err = c.children(target, symbolStyle, inner.enter(target))
		if err != nil {
			return nil, err
		}
	} else {
		elements, err = c.element(target, st, inner)
		if err != nil {
			return nil, err
		}
	}
	if len(elements) == 0 {
		return nil, nil
	}

	var x, y float64
	if v, ok := n.attr("x"); ok {
		if x, err = c.parseUnit(v, widthPercentage); err != nil {
			return nil, c.handleError(err, "element", "use", "id", n.id)
		}
	}
	if v, ok := n.attr("y"); ok {
		if y, err = c.parseUnit(v, heightPercentage); err != nil {
			return nil, c.handleError(err, "element", "use", "id", n.id)
		}
	}
	if x != 0 || y != 0 {
		// x and y are applied before the transform attribute
		offset := Identity
		offset.TranslateX, offset.TranslateY = x, y
		elements = []Element{newGroup("", &offset, "", elements)}
	}
	tr, clip, err := c.groupAttrs(n, st)
	if err != nil {
		return nil, err
	}
	if tr != nil || clip != "" {
		elements = []Element{newGroup(n.id, tr, clip, elements)}
	}
	return elements, nil
}

// groupAttrs returns the transform and the clip path of `n`, if any
func (c *iconCursor) groupAttrs(n *node, st pathStyle) (*Transform, string, error) {
	tr, err := c.transformAttr(n)
	if err != nil {
		return nil, "", err
	}
	if st.clipPath == "" {
		return tr, "", nil
	}
	clip, err := c.clipPathData(st.clipPath)
	if err != nil {
		return tr, "", c.handleError(err, "element", n.tag, "id", n.id, "property", "clip-path")
	}
	return tr, clip, nil
}

// transformAttr returns nil if `n` has no valid transform,
// or if it is the identity
func (c *iconCursor) transformAttr(n *node) (*Transform, error) {
	v, ok := n.attr("transform")
	if !ok || strings.TrimSpace(v) == "" {
		return nil, nil
	}
	tr := ParseTransform(v)
	if tr == nil {
		return nil, c.handleError(fmt.Errorf("invalid transform %q: %w", v, errParamMismatch), "element", n.tag, "id", n.id)
	}
	if tr.IsIdentity() {
		return nil, nil
	}
	return tr, nil
}

// clipPathData resolves the <clipPath> element with the given id
// into absolute path data
func (c *iconCursor) clipPathData(id string) (string, error) {
	n, ok := c.byID[id]
	if !ok || n.tag != "clipPath" {
		return "", fmt.Errorf("clip-path %q: %w", id, errMissingID)
	}
	clipTr, err := c.transformAttr(n)
	if err != nil {
		return "", err
	}
	var chunks []string
	for _, child := range n.children {
		cmds, _, err := c.geometry(child)
		if err != nil {
			if err = c.handleError(err, "element", child.tag, "id", child.id); err != nil {
				return "", err
			}
		}
		if len(cmds) == 0 {
			continue
		}
		tr, err := c.transformAttr(child)
		if err != nil {
			return "", err
		}
		if tr != nil {
			cmds = transformPath(cmds, *tr)
		}
		if clipTr != nil {
			cmds = transformPath(cmds, *clipTr)
		}
		chunks = append(chunks, svgpath.ToAbsolute(cmds).String())
	}
	return strings.Join(chunks, " "), nil
}

// geometry returns the path commands of a basic shape or a <path>
// element, alongside the path data string. Other elements return an empty path.
func (c *iconCursor) geometry(n *node) (svgpath.Path, string, error) {
	if n.tag == "path" {
		d, _ := n.attr("d")
		d = strings.TrimSpace(d)
		cmds, err := svgpath.Parse(d)
		if err != nil {
			return cmds, cmds.String(), err
		}
		return cmds, d, nil
	}

	var cmds svgpath.Path
	switch n.tag {
	case "rect":
		var x, y, w, h, rx, ry float64
		var hasRx, hasRy bool
		err := c.readUnits(n, map[string]unitAttr{
			"x":      {&x, widthPercentage},
			"y":      {&y, heightPercentage},
			"width":  {&w, widthPercentage},
			"height": {&h, heightPercentage},
			"rx":     {&rx, widthPercentage},
			"ry":     {&ry, heightPercentage},
		})
		if err != nil {
			return nil, "", err
		}
		_, hasRx = n.attr("rx")
		_, hasRy = n.attr("ry")
		if hasRx && !hasRy {
			ry = rx
		} else if hasRy && !hasRx {
			rx = ry
		}
		cmds = svgpath.Rect(x, y, w, h, rx, ry)
	case "circle":
		var cx, cy, r float64
		err := c.readUnits(n, map[string]unitAttr{
			"cx": {&cx, widthPercentage},
			"cy": {&cy, heightPercentage},
			"r":  {&r, diagPercentage},
		})
		if err != nil {
			return nil, "", err
		}
		cmds = svgpath.Ellipse(cx, cy, r, r)
	case "ellipse":
		var cx, cy, rx, ry float64
		err := c.readUnits(n, map[string]unitAttr{
			"cx": {&cx, widthPercentage},
			"cy": {&cy, heightPercentage},
			"rx": {&rx, widthPercentage},
			"ry": {&ry, heightPercentage},
		})
		if err != nil {
			return nil, "", err
		}
		cmds = svgpath.Ellipse(cx, cy, rx, ry)
	case "line":
		var x1, y1, x2, y2 float64
		err := c.readUnits(n, map[string]unitAttr{
			"x1": {&x1, widthPercentage},
			"y1": {&y1, heightPercentage},
			"x2": {&x2, widthPercentage},
			"y2": {&y2, heightPercentage},
		})
		if err != nil {
			return nil, "", err
		}
		cmds = svgpath.Line(x1, y1, x2, y2)
	case "polyline", "polygon":
		v, _ := n.attr("points")
		points, err := svgpath.ReadNumbers(v)
		if err != nil {
			return nil, "", err
		}
		cmds = svgpath.Poly(points, n.tag == "polygon")
	default:
		return nil, "", nil
	}
	return cmds, cmds.String(), nil
}

type unitAttr struct {
	target *float64
	ref    percentageReference
}

// readUnits parses the attributes of `n` listed in `attrs`
func (c *iconCursor) readUnits(n *node, attrs map[string]unitAttr) error {
	for _, attr := range n.attrs {
		u, ok := attrs[attr.Name.Local]
		if !ok {
			continue
		}
		v, err := c.parseUnit(attr.Value, u.ref)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", attr.Name.Local, attr.Value, err)
		}
		*u.target = v
	}
	return nil
}
