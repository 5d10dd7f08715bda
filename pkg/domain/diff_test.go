package domain

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestDiff(t *testing.T) {
	shown := PanelView{Display: "flex", Opacity: "1"}
	hidden := PanelView{Display: "none", Opacity: "0"}

	tests := []struct {
		name     string
		old      *Snapshot
		new      *Snapshot
		wantDiff *SnapshotDiff // nil means we expect no diff
	}{
		{
			name: "Initial Load (Old is Nil)",
			old:  nil,
			new: &Snapshot{
				SessionID:  "sess-1",
				ActiveStep: 0,
				Panels:     map[ContentType]PanelView{ContentImage: shown},
				ImageSrc:   "a.jpg",
			},
			wantDiff: &SnapshotDiff{
				SessionID:  "sess-1",
				ActiveStep: &[]int{0}[0],
				Panels:     map[ContentType]PanelView{ContentImage: shown},
			},
		},
		{
			name: "No Changes",
			old: &Snapshot{
				SessionID:  "sess-1",
				ActiveStep: 1,
				Panels:     map[ContentType]PanelView{ContentImage: shown},
				ImageSrc:   "a.jpg",
			},
			new: &Snapshot{
				SessionID:  "sess-1",
				ActiveStep: 1,
				Panels:     map[ContentType]PanelView{ContentImage: shown},
				ImageSrc:   "a.jpg",
			},
			wantDiff: nil,
		},
		{
			name: "Swap To Map",
			old: &Snapshot{
				SessionID:  "sess-1",
				ActiveStep: 1,
				Panels:     map[ContentType]PanelView{ContentImage: shown, ContentMap: hidden},
			},
			new: &Snapshot{
				SessionID:  "sess-1",
				ActiveStep: 5,
				Panels:     map[ContentType]PanelView{ContentImage: hidden, ContentMap: {Display: "block", Opacity: "1"}},
				MapLabel:   "Harbour",
			},
			wantDiff: &SnapshotDiff{
				SessionID:  "sess-1",
				ActiveStep: &[]int{5}[0],
				Panels: map[ContentType]PanelView{
					ContentImage: hidden,
					ContentMap:   {Display: "block", Opacity: "1"},
				},
				Fields: map[string]any{"map_label": "Harbour"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Diff(tt.old, tt.new)
			if tt.wantDiff == nil {
				if got != nil {
					t.Errorf("Diff() = %v, want nil", got)
				}
				return
			}

			if got == nil {
				t.Fatalf("Diff() = nil, want %v", tt.wantDiff)
			}

			if got.SessionID != tt.wantDiff.SessionID {
				t.Errorf("Diff().SessionID = %v, want %v", got.SessionID, tt.wantDiff.SessionID)
			}
			if !reflect.DeepEqual(got.Panels, tt.wantDiff.Panels) {
				t.Errorf("Diff().Panels = %v, want %v", got.Panels, tt.wantDiff.Panels)
			}
			if !equalPtr(got.ActiveStep, tt.wantDiff.ActiveStep) {
				t.Errorf("Diff().ActiveStep = %v, want %v", got.ActiveStep, tt.wantDiff.ActiveStep)
			}
			if tt.old != nil && !reflect.DeepEqual(got.Fields, tt.wantDiff.Fields) {
				t.Errorf("Diff().Fields = %v, want %v", got.Fields, tt.wantDiff.Fields)
			}
		})
	}
}

func TestDiffJSONSerialization(t *testing.T) {
	t.Run("Unchanged Panels Omitted", func(t *testing.T) {
		s1 := &Snapshot{ActiveStep: 1, Panels: map[ContentType]PanelView{ContentVideo: {Display: "flex", Opacity: "1"}}}
		s2 := &Snapshot{ActiveStep: 2, Panels: map[ContentType]PanelView{ContentVideo: {Display: "flex", Opacity: "1"}}}
		diff := Diff(s1, s2)

		if diff == nil {
			t.Fatal("Expected diff, got nil")
		}
		bytes, _ := json.Marshal(diff)
		if strings.Contains(string(bytes), `"panels"`) {
			t.Errorf("JSON should not contain 'panels' when unchanged, got: %s", string(bytes))
		}
	})
}

func equalPtr[T comparable](a, b *T) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}

func TestSnapshot_VisibleContent(t *testing.T) {
	got := Snapshot{Panels: map[ContentType]PanelView{
		ContentImage: {Display: "none", Opacity: "1"},
		ContentMap:   {Display: "block", Opacity: "1"},
		ContentVideo: {Display: "flex", Opacity: "0"},
	}}.VisibleContent()

	if !reflect.DeepEqual(got, []ContentType{ContentMap}) {
		t.Errorf("VisibleContent() = %v, want [map]", got)
	}
	if got := (Snapshot{}).VisibleContent(); got != nil {
		t.Errorf("empty snapshot shows %v", got)
	}
}
