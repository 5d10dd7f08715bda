package dom

import (
	"strings"

	"github.com/beevik/etree"
)

// Element is a node of a Document.
type Element struct {
	el  *etree.Element
	doc *Document
}

// Tag returns the element name.
func (e *Element) Tag() string { return e.el.Tag }

// ID returns the id attribute.
func (e *Element) ID() string { return e.Attr("id") }

// Same reports whether both wrappers point at the same node.
func (e *Element) Same(o *Element) bool {
	if e == nil || o == nil {
		return e == o
	}
	return e.el == o.el
}

// Attr returns an attribute value, or "" when absent.
func (e *Element) Attr(key string) string {
	return e.el.SelectAttrValue(key, "")
}

// HasAttr reports whether the attribute is present.
func (e *Element) HasAttr(key string) bool {
	return e.el.SelectAttr(key) != nil
}

// SetAttr creates or replaces an attribute.
func (e *Element) SetAttr(key, value string) {
	e.el.CreateAttr(key, value)
}

// RemoveAttr deletes an attribute if present.
func (e *Element) RemoveAttr(key string) {
	e.el.RemoveAttr(key)
}

// Data returns the data-* attributes without their prefix.
func (e *Element) Data() map[string]string {
	out := make(map[string]string)
	for _, a := range e.el.Attr {
		if name, ok := strings.CutPrefix(a.Key, "data-"); ok {
			out[name] = a.Value
		}
	}
	return out
}

// Classes returns the class list.
func (e *Element) Classes() []string {
	return strings.Fields(e.Attr("class"))
}

// HasClass reports whether the class list contains class.
func (e *Element) HasClass(class string) bool {
	for _, c := range e.Classes() {
		if c == class {
			return true
		}
	}
	return false
}

// AddClass appends class unless already present.
func (e *Element) AddClass(class string) {
	if e.HasClass(class) {
		return
	}
	e.SetAttr("class", strings.TrimSpace(e.Attr("class")+" "+class))
}

// RemoveClass drops every occurrence of class.
func (e *Element) RemoveClass(class string) {
	if !e.HasClass(class) {
		return
	}
	kept := make([]string, 0, 4)
	for _, c := range e.Classes() {
		if c != class {
			kept = append(kept, c)
		}
	}
	if len(kept) == 0 {
		e.RemoveAttr("class")
		return
	}
	e.SetAttr("class", strings.Join(kept, " "))
}

// Parent returns the parent element, or nil at the root.
func (e *Element) Parent() *Element {
	return e.doc.wrap(e.el.Parent())
}

// Closest returns the element itself or its nearest ancestor carrying class.
func (e *Element) Closest(class string) *Element {
	for cur := e; cur != nil; cur = cur.Parent() {
		if cur.HasClass(class) {
			return cur
		}
	}
	return nil
}

// Children returns the child elements.
func (e *Element) Children() []*Element {
	kids := e.el.ChildElements()
	out := make([]*Element, 0, len(kids))
	for _, k := range kids {
		out = append(out, &Element{el: k, doc: e.doc})
	}
	return out
}

// Find returns the first descendant carrying class, depth first.
func (e *Element) Find(class string) *Element {
	var found *Element
	e.walkDescendants(func(d *Element) bool {
		if d.HasClass(class) {
			found = d
			return false
		}
		return true
	})
	return found
}

// FindAll returns every descendant carrying class, in document order.
func (e *Element) FindAll(class string) []*Element {
	var out []*Element
	e.walkDescendants(func(d *Element) bool {
		if d.HasClass(class) {
			out = append(out, d)
		}
		return true
	})
	return out
}

// FindTag returns the first descendant with the given tag name.
func (e *Element) FindTag(tag string) *Element {
	var found *Element
	e.walkDescendants(func(d *Element) bool {
		if d.Tag() == tag {
			found = d
			return false
		}
		return true
	})
	return found
}

// Clear removes every child node.
func (e *Element) Clear() {
	for _, c := range append([]etree.Token(nil), e.el.Child...) {
		e.el.RemoveChild(c)
	}
}

// Append creates a child element, applies attrs in order (key, value pairs)
// and notifies insertion watchers.
func (e *Element) Append(tag string, attrs ...string) *Element {
	child := &Element{el: e.el.CreateElement(tag), doc: e.doc}
	for i := 0; i+1 < len(attrs); i += 2 {
		child.SetAttr(attrs[i], attrs[i+1])
	}
	e.doc.notify(child)
	return child
}

// walk visits e and its descendants in document order until fn returns false.
func (e *Element) walk(fn func(*Element) bool) bool {
	if !fn(e) {
		return false
	}
	return e.walkDescendants(fn)
}

func (e *Element) walkDescendants(fn func(*Element) bool) bool {
	for _, c := range e.el.ChildElements() {
		if !(&Element{el: c, doc: e.doc}).walk(fn) {
			return false
		}
	}
	return true
}
