package svgicon

import (
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
)

// declaration is one property: value pair,
// coming from a stylesheet, an attribute or an inline style
type declaration struct {
	property, value string
}

// cssRule is a qualified rule restricted to simple selectors
type cssRule struct {
	selectors    []string // .class, #id or tag
	declarations []declaration
}

// stylesheet stores the rules of all the <style> elements, in document order
type stylesheet []cssRule

// parseStylesheet parses the content of a <style> element.
// When the stylesheet is not valid as a whole, the rules are
// split by hand and each declaration is parsed on its own, so that
// one invalid declaration does not discard its neighbours.
func parseStylesheet(text string) stylesheet {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "<![CDATA[")
	text = strings.TrimSuffix(text, "]]>")

	sheet, err := parser.Parse(text)
	if err == nil {
		return fromDouceur(sheet)
	}
	return parseStylesheetLoose(text)
}

func fromDouceur(sheet *css.Stylesheet) stylesheet {
	var out stylesheet
	for _, rule := range sheet.Rules {
		if rule.Kind == css.AtRule {
			continue
		}
		r := cssRule{selectors: simpleSelectors(rule.Selectors)}
		if len(r.selectors) == 0 {
			continue
		}
		for _, decl := range rule.Declarations {
			if decl.Property == "" || decl.Value == "" {
				continue
			}
			r.declarations = append(r.declarations, declaration{
				property: strings.ToLower(decl.Property),
				value:    strings.TrimSpace(decl.Value),
			})
		}
		out = append(out, r)
	}
	return out
}

func parseStylesheetLoose(text string) stylesheet {
	var out stylesheet
	for _, block := range strings.Split(text, "}") {
		prelude, body, ok := strings.Cut(block, "{")
		if !ok {
			continue
		}
		if i := strings.LastIndex(prelude, "*/"); i != -1 { // trailing comment
			prelude = prelude[i+2:]
		}
		r := cssRule{selectors: simpleSelectors(strings.Split(prelude, ","))}
		if len(r.selectors) == 0 {
			continue
		}
		r.declarations = parseDeclarations(body)
		out = append(out, r)
	}
	return out
}

// parseDeclarations parses a list of declarations such as
// the content of a style attribute, skipping the invalid ones.
func parseDeclarations(s string) []declaration {
	var out []declaration
	for _, chunk := range strings.Split(s, ";") {
		if strings.TrimSpace(chunk) == "" {
			continue
		}
		// the parser only keeps values terminated by a semicolon
		decls, err := parser.ParseDeclarations(chunk + ";")
		if err != nil {
			continue
		}
		for _, decl := range decls {
			if decl.Property == "" || strings.TrimSpace(decl.Value) == "" {
				continue
			}
			out = append(out, declaration{
				property: strings.ToLower(decl.Property),
				value:    strings.TrimSpace(decl.Value),
			})
		}
	}
	return out
}

// simpleSelectors trims the selectors and discards the ones
// which are not a single class, id or tag name.
func simpleSelectors(selectors []string) []string {
	var out []string
	for _, sel := range selectors {
		sel = strings.TrimSpace(sel)
		if isSimpleSelector(sel) {
			out = append(out, sel)
		}
	}
	return out
}

func isSimpleSelector(sel string) bool {
	name := strings.TrimPrefix(strings.TrimPrefix(sel, "."), "#")
	if name == "" {
		return false
	}
	for _, r := range name {
		isLetter := r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'
		isDigit := r >= '0' && r <= '9'
		if !(isLetter || isDigit || r == '-' || r == '_') {
			return false
		}
	}
	return true
}

func (r cssRule) matches(n *node) bool {
	for _, sel := range r.selectors {
		switch sel[0] {
		case '.':
			for _, class := range n.classes {
				if class == sel[1:] {
					return true
				}
			}
		case '#':
			if n.id != "" && n.id == sel[1:] {
				return true
			}
		default:
			if n.tag == sel {
				return true
			}
		}
	}
	return false
}

// declarations returns the style declarations applying to `n`,
// by increasing precedence: matching CSS rules in document order,
// then presentation attributes, then the inline style.
func (c *iconCursor) declarations(n *node) []declaration {
	var out []declaration
	for _, rule := range c.styles {
		if rule.matches(n) {
			out = append(out, rule.declarations...)
		}
	}
	var inline string
	for _, attr := range n.attrs {
		switch attr.Name.Local {
		case "style":
			inline = attr.Value
		case "class", "id", "d", "transform":
		default:
			out = append(out, declaration{property: attr.Name.Local, value: strings.TrimSpace(attr.Value)})
		}
	}
	return append(out, parseDeclarations(inline)...)
}
