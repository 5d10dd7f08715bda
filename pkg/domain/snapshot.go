package domain

// PanelView is the visual state of one sticky container.
type PanelView struct {
	Display string `json:"display"`
	Opacity string `json:"opacity"`
}

// Visible reports whether the container is shown at full opacity.
func (p PanelView) Visible() bool {
	return p.Display != "none" && p.Opacity == "1"
}

// Snapshot is an observable summary of one scrolly instance's sticky panel.
// It is what adapters stream to clients and what scenario reports print.
type Snapshot struct {
	SessionID   string                    `json:"session_id"`
	Instance    string                    `json:"instance,omitempty"`
	ActiveStep  int                       `json:"active_step"`
	Panels      map[ContentType]PanelView `json:"panels,omitempty"`
	TextWidth   string                    `json:"text_width,omitempty"`
	StickyWidth string                    `json:"sticky_width,omitempty"`
	TextHidden  bool                      `json:"text_hidden,omitempty"`
	ImageSrc    string                    `json:"image_src,omitempty"`
	ImageAlt    string                    `json:"image_alt,omitempty"`
	ImageFit    string                    `json:"image_fit,omitempty"`
	ImageScale  string                    `json:"image_transform,omitempty"`
	VideoSrc    string                    `json:"video_src,omitempty"`
	MapLabel    string                    `json:"map_label,omitempty"`
	Pending     int                       `json:"pending_tasks"`
}

// VisibleContent returns the content types currently shown.
// At steady state the result has at most one element.
func (s Snapshot) VisibleContent() []ContentType {
	var out []ContentType
	for _, ct := range ContentTypes {
		if view, ok := s.Panels[ct]; ok && view.Visible() {
			out = append(out, ct)
		}
	}
	return out
}
