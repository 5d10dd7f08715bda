package dom

import (
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
)

// Style returns an inline style property, or "" when unset.
func (e *Element) Style(prop string) string {
	for _, d := range e.declarations() {
		if strings.EqualFold(d.Property, prop) {
			return d.Value
		}
	}
	return ""
}

// SetStyle sets an inline style property, keeping declaration order.
// An empty value removes the property.
func (e *Element) SetStyle(prop, value string) {
	decls := e.declarations()
	out := decls[:0]
	replaced := false
	for _, d := range decls {
		if strings.EqualFold(d.Property, prop) {
			if value == "" || replaced {
				continue
			}
			d.Value = value
			d.Important = false
			replaced = true
		}
		out = append(out, d)
	}
	if !replaced && value != "" {
		out = append(out, &css.Declaration{Property: prop, Value: value})
	}
	if len(out) == 0 {
		e.RemoveAttr("style")
		return
	}
	e.SetAttr("style", formatStyle(out))
}

// declarations parses the style attribute. An unparsable attribute reads as
// empty and is replaced on the next SetStyle.
func (e *Element) declarations() []*css.Declaration {
	raw := strings.TrimSpace(e.Attr("style"))
	if raw == "" {
		return nil
	}
	decls, err := parser.ParseDeclarations(raw)
	if err != nil {
		return nil
	}
	return decls
}

func formatStyle(decls []*css.Declaration) string {
	parts := make([]string, 0, len(decls))
	for _, d := range decls {
		parts = append(parts, d.String())
	}
	return strings.Join(parts, " ")
}
