package runtime

import (
	"strconv"

	"github.com/aretw0/scrolly/pkg/dom"
	"github.com/aretw0/scrolly/pkg/domain"
)

// render refreshes the content of the container for next's type.
// Caller holds the lock.
func (e *Engine) render(prev *domain.StepDescriptor, next domain.StepDescriptor, swapped bool) {
	c := e.session.Containers
	switch next.ContentType {
	case domain.ContentImage:
		e.renderImage(c.Image, prev, next)
	case domain.ContentVideo:
		renderVideo(c.Video, next)
		e.rendered(next, false)
	case domain.ContentMap:
		e.renderMap(c.Map, next, swapped)
	default:
		e.logger.Debug("Unhandled content type", "step", next.Index, "type", next.ContentType)
	}
}

// renderImage swaps the image source only when the file changes, so steps
// sharing one picture do not flicker. Zoom is applied on every step.
//
// A step sharing the previous file still loads it when the image is not
// showing it yet, which happens when a swap cancelled the pending load.
func (e *Engine) renderImage(c *dom.Element, prev *domain.StepDescriptor, next domain.StepDescriptor) {
	img := c.FindTag("img")
	if img == nil {
		return
	}

	if next.Zoom != nil {
		img.SetStyle("transform", "scale("+strconv.FormatFloat(*next.Zoom, 'f', -1, 64)+")")
	}

	s := e.session
	if e.isPending(s.imageTask) && s.imageEl.Same(img) {
		if s.imagePath == next.FilePath {
			return
		}
		if e.cfg.Transition.CancelStale {
			e.stop(s.imageTask)
		}
	} else if prev != nil && prev.FilePath == next.FilePath && showing(img, next.FilePath) {
		return
	}

	img.SetStyle("opacity", "0")
	s.imagePath = next.FilePath
	s.imageEl = img
	s.imageTask = e.after(e.cfg.Timing.SwapDelay(), "image", func() {
		img.SetAttr("src", next.FilePath)
		img.SetAttr("alt", next.AltText)
		img.SetStyle("object-fit", string(domain.FitFor(next.Orientation)))
		img.SetStyle("opacity", "1")
		e.rendered(next, true)
	})
}

func showing(img *dom.Element, path string) bool {
	return img.Attr("src") == path && img.Style("opacity") != "0"
}

// renderMap draws the map in place, or after the reveal when the container
// is still hidden: the map library measures its container while drawing.
// While a deferred draw is pending, later map steps replace its target
// instead of drawing into the hidden container.
func (e *Engine) renderMap(c *dom.Element, next domain.StepDescriptor, swapped bool) {
	s := e.session
	if !swapped && !e.isPending(s.mapTask) {
		if !next.HasCoordinates() {
			e.logger.Debug("Map step without coordinates", "step", next.Index)
			return
		}
		e.drawMap(c, next, false)
		return
	}

	s.mapStep = next
	if !swapped {
		return
	}
	e.stop(s.mapTask)
	s.mapTask = e.after(e.cfg.Timing.MapDelay(), "map", func() {
		step := s.mapStep
		if !step.HasCoordinates() {
			e.logger.Debug("Map step without coordinates", "step", step.Index)
			return
		}
		e.drawMap(c, step, true)
	})
}

func (e *Engine) drawMap(c *dom.Element, next domain.StepDescriptor, deferred bool) {
	if e.maps != nil {
		zoom := next.ZoomLevel(e.cfg.Transition.DefaultZoom)
		if err := e.maps.RenderMap(e.ctx, c.ID(), *next.Lat, *next.Lng, zoom); err != nil {
			e.logger.Warn("Map render failed", "step", next.Index, "container", c.ID(), "err", err)
		}
	}
	c.SetAttr("aria-label", next.AltText)
	e.rendered(next, deferred)
}

func (e *Engine) rendered(step domain.StepDescriptor, deferred bool) {
	if e.hooks.OnRender == nil {
		return
	}
	e.hooks.OnRender(e.ctx, &domain.RenderEvent{
		EventBase: e.base(domain.EventRender),
		Instance:  e.session.InstanceName(),
		Step:      step.Index,
		Content:   step.ContentType,
		Deferred:  deferred,
	})
}
