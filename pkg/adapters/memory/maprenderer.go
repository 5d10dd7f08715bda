package memory

import (
	"context"
	"sync"

	"github.com/aretw0/scrolly/pkg/dom"
	"github.com/aretw0/scrolly/pkg/ports"
)

// MapRender records one RenderMap call.
type MapRender struct {
	ContainerID string
	Lat         float64
	Lng         float64
	Zoom        float64
	// Visible is whether the container was shown when the map measured it.
	Visible bool
}

// MapRenderer implements ports.MapRenderer by recording calls. When given a
// document it also behaves like a real map library: on the first render into
// a container it injects an attribution element there.
type MapRenderer struct {
	doc *dom.Document

	mu            sync.Mutex
	renders       []MapRender
	invalidations int
	drawn         map[string]bool
	err           error
}

var _ ports.MapRenderer = (*MapRenderer)(nil)

// NewMapRenderer creates a recording map renderer. doc may be nil.
func NewMapRenderer(doc *dom.Document) *MapRenderer {
	return &MapRenderer{
		doc:   doc,
		drawn: make(map[string]bool),
	}
}

// FailWith makes subsequent renders return err.
func (m *MapRenderer) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// RenderMap records the call.
func (m *MapRenderer) RenderMap(ctx context.Context, containerID string, lat, lng, zoom float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	if m.err != nil {
		err := m.err
		m.mu.Unlock()
		return err
	}
	rec := MapRender{ContainerID: containerID, Lat: lat, Lng: lng, Zoom: zoom}
	var container *dom.Element
	if m.doc != nil {
		container = m.doc.ByID(containerID)
	}
	if container != nil {
		rec.Visible = container.Style("display") != "none" &&
			container.Style("display") != "" &&
			container.Style("opacity") == "1"
	}
	m.renders = append(m.renders, rec)
	first := !m.drawn[containerID]
	m.drawn[containerID] = true
	m.mu.Unlock()

	if container != nil && first {
		container.Append("div", "class", "map-attribution")
	}
	return nil
}

// InvalidateSize counts size invalidations.
func (m *MapRenderer) InvalidateSize() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.invalidations++
}

// Renders returns the recorded render calls.
func (m *MapRenderer) Renders() []MapRender {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]MapRender(nil), m.renders...)
}

// Invalidations returns how many times InvalidateSize was called.
func (m *MapRenderer) Invalidations() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.invalidations
}
