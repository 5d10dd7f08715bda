package runtime

import (
	"github.com/aretw0/scrolly/pkg/dom"
	"github.com/aretw0/scrolly/pkg/domain"
)

// Snapshot summarises the sticky panel of the current instance.
func (e *Engine) Snapshot() domain.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.session
	snap := domain.Snapshot{
		SessionID:  s.ID,
		Instance:   s.InstanceName(),
		ActiveStep: s.CurrentStep,
		Pending:    len(s.pending),
	}
	if s.Instance == nil {
		return snap
	}

	snap.Panels = PanelViews(s.Containers)
	if text := s.Instance.Find(dom.ClassSteps); text != nil {
		snap.TextWidth = text.Style("width")
		snap.TextHidden = text.HasClass(dom.ClassHidden)
	}
	if sticky := s.Instance.Find(dom.ClassSticky); sticky != nil {
		snap.StickyWidth = sticky.Style("width")
	}
	if img := s.Containers.Image.FindTag("img"); img != nil {
		snap.ImageSrc = img.Attr("src")
		snap.ImageAlt = img.Attr("alt")
		snap.ImageFit = img.Style("object-fit")
		snap.ImageScale = img.Style("transform")
	}
	if embed := s.Containers.Video.Find(dom.ClassVideoEmbed); embed != nil {
		snap.VideoSrc = embed.Attr("src")
	}
	snap.MapLabel = s.Containers.Map.Attr("aria-label")
	return snap
}
