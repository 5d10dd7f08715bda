package dom

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/beevik/etree"
)

// Class names of the markup contract.
const (
	ClassInstance       = "scrolly"
	ClassSteps          = "steps"
	ClassStep           = "step"
	ClassSticky         = "sticky"
	ClassImageContainer = "image-container"
	ClassMapContainer   = "map-container"
	ClassVideoContainer = "video-container"
	ClassVideoEmbed     = "video-embed"
	ClassActive         = "is-active"
	ClassHidden         = "is-hidden"
	ClassNoMargin       = "no-margin"
)

// Document is a parsed page.
type Document struct {
	tree *etree.Document

	mu       sync.Mutex
	watchers map[int]*watcher
	nextID   int
}

// Parse reads an XHTML page.
func Parse(r io.Reader) (*Document, error) {
	tree := etree.NewDocument()
	if _, err := tree.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}
	if tree.Root() == nil {
		return nil, fmt.Errorf("failed to parse page: no root element")
	}
	return newDocument(tree), nil
}

// ParseString reads an XHTML page from a string.
func ParseString(s string) (*Document, error) {
	tree := etree.NewDocument()
	if err := tree.ReadFromString(s); err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}
	if tree.Root() == nil {
		return nil, fmt.Errorf("failed to parse page: no root element")
	}
	return newDocument(tree), nil
}

// ReadFile reads an XHTML page from disk.
func ReadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

func newDocument(tree *etree.Document) *Document {
	return &Document{
		tree:     tree,
		watchers: make(map[int]*watcher),
	}
}

// Root returns the top-level element.
func (d *Document) Root() *Element {
	return d.wrap(d.tree.Root())
}

// String serialises the page back to markup.
func (d *Document) String() (string, error) {
	return d.tree.WriteToString()
}

// ByID returns the element with the given id attribute, or nil.
func (d *Document) ByID(id string) *Element {
	var found *Element
	d.Root().walk(func(e *Element) bool {
		if e.ID() == id {
			found = e
			return false
		}
		return true
	})
	return found
}

// Find returns the first element carrying class, in document order.
func (d *Document) Find(class string) *Element {
	var found *Element
	d.Root().walk(func(e *Element) bool {
		if e.HasClass(class) {
			found = e
			return false
		}
		return true
	})
	return found
}

// FindAll returns all elements carrying class, in document order.
func (d *Document) FindAll(class string) []*Element {
	var out []*Element
	d.Root().walk(func(e *Element) bool {
		if e.HasClass(class) {
			out = append(out, e)
		}
		return true
	})
	return out
}

// Steps returns every step element of the page.
func (d *Document) Steps() []*Element {
	return d.FindAll(ClassStep)
}

// Step returns the step with the given instance id and data-step index.
// An empty instance matches the first step with that index on the page.
func (d *Document) Step(instance string, index int) *Element {
	want := fmt.Sprintf("%d", index)
	for _, s := range d.Steps() {
		if s.Attr("data-step") != want {
			continue
		}
		if instance == "" {
			return s
		}
		if inst := s.Closest(ClassInstance); inst != nil && inst.ID() == instance {
			return s
		}
	}
	return nil
}

func (d *Document) wrap(el *etree.Element) *Element {
	if el == nil || el == &d.tree.Element {
		return nil
	}
	return &Element{el: el, doc: d}
}
