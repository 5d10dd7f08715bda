package runtime

import (
	"github.com/aretw0/scrolly/pkg/dom"
	"github.com/aretw0/scrolly/pkg/domain"
)

// swap fades every sticky container out, stops playing video, and schedules
// the reveal of the container for next's content type. Caller holds the lock.
func (e *Engine) swap(prev *domain.StepDescriptor, next domain.StepDescriptor) {
	s := e.session

	cancelled := 0
	if e.cfg.Transition.CancelStale {
		cancelled = e.cancelPending()
	}

	for _, ct := range domain.ContentTypes {
		if c := s.Containers.For(ct); c != nil {
			c.SetStyle("opacity", "0")
		}
	}
	StopActiveVideo(e.doc)

	containers := s.Containers
	target := next.ContentType
	e.after(e.cfg.Timing.SwapDelay(), "reveal", func() {
		e.reveal(containers, target)
	})

	var from domain.ContentType
	if prev != nil {
		from = prev.ContentType
	}
	e.logger.Debug("Swapping sticky content",
		"instance", s.InstanceName(),
		"from", from,
		"to", target,
		"cancelled", cancelled,
	)
	if e.hooks.OnSwap != nil {
		e.hooks.OnSwap(e.ctx, &domain.SwapEvent{
			EventBase: e.base(domain.EventSwap),
			Instance:  s.InstanceName(),
			From:      from,
			To:        target,
			Cancelled: cancelled,
		})
	}
}

// reveal shows exactly the target container and hides the others.
// An unknown target leaves all three hidden.
func (e *Engine) reveal(c Containers, target domain.ContentType) {
	for _, ct := range domain.ContentTypes {
		el := c.For(ct)
		if el == nil {
			continue
		}
		if ct == target {
			el.SetStyle("display", e.displayFor(ct))
			el.SetStyle("opacity", "1")
			continue
		}
		el.SetStyle("display", "none")
	}
}

func (e *Engine) displayFor(ct domain.ContentType) string {
	switch ct {
	case domain.ContentMap:
		return e.cfg.Display.Map
	case domain.ContentVideo:
		return e.cfg.Display.Video
	default:
		return e.cfg.Display.Image
	}
}

// PanelViews reads the visual state of each container.
func PanelViews(c Containers) map[domain.ContentType]domain.PanelView {
	views := make(map[domain.ContentType]domain.PanelView, len(domain.ContentTypes))
	for _, ct := range domain.ContentTypes {
		el := c.For(ct)
		if el == nil {
			continue
		}
		views[ct] = panelView(el)
	}
	return views
}

func panelView(el *dom.Element) domain.PanelView {
	return domain.PanelView{
		Display: el.Style("display"),
		Opacity: el.Style("opacity"),
	}
}
