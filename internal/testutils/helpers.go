package testutils

import (
	"fmt"
	"strings"
	"testing"

	"github.com/aretw0/scrolly/pkg/dom"
	"github.com/stretchr/testify/require"
)

// Step describes one step element of a fixture page. Empty fields are omitted
// from the markup.
type Step struct {
	Index       int
	Type        string
	File        string
	Lat         string
	Lng         string
	Zoom        string
	Alt         string
	Percent     string
	Orientation string
}

// Instance describes one scrolly instance of a fixture page.
type Instance struct {
	ID    string
	Steps []Step
}

// PageMarkup renders fixture instances as XHTML following the markup contract.
func PageMarkup(instances ...Instance) string {
	var b strings.Builder
	b.WriteString(`<html><body>`)
	for _, inst := range instances {
		fmt.Fprintf(&b, `<section class="scrolly" id="%s"><div class="steps">`, inst.ID)
		for _, s := range inst.Steps {
			fmt.Fprintf(&b, `<div class="step" data-step="%d"`, s.Index)
			attr(&b, "data-content-type", s.Type)
			attr(&b, "data-file-path", s.File)
			attr(&b, "data-lat", s.Lat)
			attr(&b, "data-lng", s.Lng)
			attr(&b, "data-zoom", s.Zoom)
			attr(&b, "data-alt-text", s.Alt)
			attr(&b, "data-text-horizontal-percentage", s.Percent)
			attr(&b, "data-image-orientation", s.Orientation)
			fmt.Fprintf(&b, `><p>Step %d</p></div>`, s.Index)
		}
		fmt.Fprintf(&b, `</div><div class="sticky">`+
			`<div class="image-container"><img src="" alt=""/></div>`+
			`<div class="map-container" id="%s-map"></div>`+
			`<div class="video-container"></div>`+
			`</div></section>`, inst.ID)
	}
	b.WriteString(`</body></html>`)
	return b.String()
}

func attr(b *strings.Builder, key, value string) {
	if value != "" {
		fmt.Fprintf(b, ` %s="%s"`, key, value)
	}
}

// ParsePage builds and parses a fixture page.
// It fails the test immediately on error.
func ParsePage(t *testing.T, instances ...Instance) *dom.Document {
	t.Helper()

	doc, err := dom.ParseString(PageMarkup(instances...))
	require.NoError(t, err, "Failed to parse fixture page")
	return doc
}

// Story returns the instance used by the end-to-end scenarios: two image
// steps sharing one file, a gap, a map step and a video step.
func Story(id string) Instance {
	return Instance{
		ID: id,
		Steps: []Step{
			{Index: 0, Type: "image", File: "harbour.jpg", Alt: "Harbour at dawn", Percent: "40"},
			{Index: 1, Type: "image", File: "harbour.jpg", Alt: "Harbour at dawn", Percent: "40", Zoom: "1.5"},
			{Index: 2, Type: "image", File: "market.jpg", Alt: "Fish market", Percent: "40", Orientation: "Vertical"},
			{Index: 5, Type: "map", Lat: "38.72", Lng: "-9.14", Zoom: "12", Alt: "Map of Lisbon", Percent: "0"},
			{Index: 6, Type: "map", Lat: "38.70", Lng: "-9.20", Zoom: "14", Alt: "Map of Belém", Percent: "30"},
			{Index: 7, Type: "video", File: "https://player.example/embed/42", Alt: "Interview", Percent: "50"},
		},
	}
}
