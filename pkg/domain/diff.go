package domain

import (
	"reflect"
)

// SnapshotDiff represents the changes between two snapshots.
// It is designed to be serialized to JSON for partial updates on the client.
type SnapshotDiff struct {
	// SessionID is always present to identify the target.
	SessionID string `json:"session_id"`

	ActiveStep *int    `json:"active_step,omitempty"`
	Instance   *string `json:"instance,omitempty"`

	// Panels contains only containers whose view changed.
	Panels map[ContentType]PanelView `json:"panels,omitempty"`

	// Fields contains changed scalar fields keyed by their JSON name.
	Fields map[string]any `json:"fields,omitempty"`
}

// Diff calculates the difference between oldSnap and newSnap.
// If oldSnap is nil, it returns a diff representing the entire newSnap (initial load).
// It returns nil when nothing changed.
func Diff(oldSnap, newSnap *Snapshot) *SnapshotDiff {
	if newSnap == nil {
		return nil
	}

	diff := &SnapshotDiff{
		SessionID: newSnap.SessionID,
	}

	if oldSnap == nil || oldSnap.ActiveStep != newSnap.ActiveStep {
		diff.ActiveStep = &newSnap.ActiveStep
	}
	if oldSnap == nil || oldSnap.Instance != newSnap.Instance {
		diff.Instance = &newSnap.Instance
	}

	diff.Panels = diffPanels(oldSnap, newSnap)
	diff.Fields = diffFields(oldSnap, newSnap)

	if diff.IsEmpty() {
		return nil
	}
	return diff
}

func diffPanels(old, new *Snapshot) map[ContentType]PanelView {
	delta := make(map[ContentType]PanelView)
	for ct, view := range new.Panels {
		if old == nil {
			delta[ct] = view
			continue
		}
		if prev, ok := old.Panels[ct]; !ok || prev != view {
			delta[ct] = view
		}
	}
	if len(delta) == 0 {
		return nil
	}
	return delta
}

func diffFields(old, new *Snapshot) map[string]any {
	pairs := []struct {
		key      string
		old, new any
	}{
		{"text_width", nil, new.TextWidth},
		{"sticky_width", nil, new.StickyWidth},
		{"text_hidden", nil, new.TextHidden},
		{"image_src", nil, new.ImageSrc},
		{"image_alt", nil, new.ImageAlt},
		{"image_fit", nil, new.ImageFit},
		{"image_transform", nil, new.ImageScale},
		{"video_src", nil, new.VideoSrc},
		{"map_label", nil, new.MapLabel},
		{"pending_tasks", nil, new.Pending},
	}
	if old != nil {
		olds := []any{old.TextWidth, old.StickyWidth, old.TextHidden, old.ImageSrc, old.ImageAlt,
			old.ImageFit, old.ImageScale, old.VideoSrc, old.MapLabel, old.Pending}
		for i := range pairs {
			pairs[i].old = olds[i]
		}
	}

	delta := make(map[string]any)
	for _, p := range pairs {
		if old == nil || !reflect.DeepEqual(p.old, p.new) {
			delta[p.key] = p.new
		}
	}
	if len(delta) == 0 {
		return nil
	}
	return delta
}

// IsEmpty checks if the diff contains any actionable changes.
func (d *SnapshotDiff) IsEmpty() bool {
	return d.ActiveStep == nil &&
		d.Instance == nil &&
		len(d.Panels) == 0 &&
		len(d.Fields) == 0
}
