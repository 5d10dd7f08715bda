package memory

import (
	"errors"
	"sync"

	"github.com/aretw0/scrolly/pkg/ports"
)

// ScrollDetector implements ports.ScrollDetector for scripted scrolling:
// Enter plays the role of the reader scrolling a step into view.
type ScrollDetector struct {
	mu      sync.Mutex
	offset  float64
	handler ports.StepHandler
	resizes int
}

var _ ports.ScrollDetector = (*ScrollDetector)(nil)

// NewScrollDetector creates an idle detector.
func NewScrollDetector() *ScrollDetector {
	return &ScrollDetector{}
}

// Setup registers the step handler.
func (d *ScrollDetector) Setup(offset float64, handler ports.StepHandler) error {
	if handler == nil {
		return errors.New("scroll detector: nil handler")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.offset = offset
	d.handler = handler
	return nil
}

// Resize counts offset recomputations.
func (d *ScrollDetector) Resize() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.resizes++
}

// Enter reports that the step with the given index entered the trigger region.
// It returns false when no handler is registered.
func (d *ScrollDetector) Enter(instance string, index int) bool {
	d.mu.Lock()
	h := d.handler
	d.mu.Unlock()

	if h == nil {
		return false
	}
	h(instance, index)
	return true
}

// Offset returns the registered entry offset.
func (d *ScrollDetector) Offset() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.offset
}

// Resizes returns how many times Resize was called.
func (d *ScrollDetector) Resizes() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.resizes
}
