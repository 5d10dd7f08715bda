package ports

import "context"

// StepHandler receives one notification per step that enters the detection
// region. The argument identifies the step element within its page.
type StepHandler func(instance string, index int)

// ScrollDetector is the scroll-position mechanism that decides when a step
// has been entered.
type ScrollDetector interface {
	// Setup registers the handler and the entry offset, a fraction of the
	// viewport height.
	Setup(offset float64, handler StepHandler) error

	// Resize recomputes the detector's internal offsets after a viewport change.
	Resize()
}

// MapRenderer is the map library drawing into sticky map containers.
type MapRenderer interface {
	// RenderMap draws or moves the map in the container with the given id.
	// The library measures the container at call time.
	RenderMap(ctx context.Context, containerID string, lat, lng, zoom float64) error

	// InvalidateSize tells the library its container may have changed size.
	InvalidateSize()
}
