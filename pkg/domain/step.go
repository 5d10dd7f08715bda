package domain

import "strings"

// ContentType is the kind of content a step shows in the sticky panel.
type ContentType string

const (
	ContentImage ContentType = "image"
	ContentMap   ContentType = "map"
	ContentVideo ContentType = "video"
)

// ContentTypes lists the supported types in container order.
var ContentTypes = []ContentType{ContentImage, ContentMap, ContentVideo}

// Known reports whether the engine knows how to show this content type.
func (c ContentType) Known() bool {
	switch c {
	case ContentImage, ContentMap, ContentVideo:
		return true
	}
	return false
}

// ParseContentType normalises a raw attribute value. Unknown values are kept
// as-is so callers can decide to ignore them.
func ParseContentType(raw string) ContentType {
	return ContentType(strings.ToLower(strings.TrimSpace(raw)))
}

// Orientation describes the aspect of an image step.
type Orientation string

const (
	OrientationHorizontal Orientation = "horizontal"
	OrientationVertical   Orientation = "vertical"
)

// FitMode is the CSS object-fit value applied to the sticky image.
type FitMode string

const (
	FitCover   FitMode = "cover"
	FitContain FitMode = "contain"
)

// FitFor maps an orientation to the fit mode that keeps the image readable.
// Only vertical images are contained; everything else fills horizontally.
func FitFor(o Orientation) FitMode {
	if strings.EqualFold(strings.TrimSpace(string(o)), string(OrientationVertical)) {
		return FitContain
	}
	return FitCover
}

// StepDescriptor is the data a step element carries.
// It is read once from the element and never mutated afterwards.
type StepDescriptor struct {
	Index       int         `json:"index" mapstructure:"step"`
	ContentType ContentType `json:"content_type" mapstructure:"content-type"`
	FilePath    string      `json:"file_path,omitempty" mapstructure:"file-path"`
	Lat         *float64    `json:"lat,omitempty" mapstructure:"lat"`
	Lng         *float64    `json:"lng,omitempty" mapstructure:"lng"`
	Zoom        *float64    `json:"zoom,omitempty" mapstructure:"zoom"`
	AltText     string      `json:"alt_text" mapstructure:"alt-text"`
	TextPercent float64     `json:"text_percent" mapstructure:"text-horizontal-percentage"`
	Orientation Orientation `json:"orientation,omitempty" mapstructure:"image-orientation"`
}

// HasCoordinates reports whether the step can be drawn as a map.
func (s StepDescriptor) HasCoordinates() bool {
	return s.Lat != nil && s.Lng != nil
}

// ZoomLevel returns the zoom or the fallback when the step has none.
func (s StepDescriptor) ZoomLevel(fallback float64) float64 {
	if s.Zoom == nil {
		return fallback
	}
	return *s.Zoom
}
