/*
Package scrolly drives scrollytelling pages: as a reader scrolls through the
narrative steps of a page, a sticky panel beside the text swaps between image,
map and video containers in sync with the step in view.

# Concept

A page holds one or more scrolly instances. Each instance has a text column of
steps and a sticky panel with three containers. Steps describe what the panel
shows through data attributes (content type, file, coordinates, zoom, text
width). The engine decides when a content-type swap is needed, fades the panel
out and back in, and suppresses redundant or overlapping step events.

The engine owns no I/O. The host wires in a scroll detector that reports which
step entered the viewport and a map library that draws into the map container.
Both are small interfaces in package ports, so the engine runs equally well in
tests, in a headless simulation or behind the HTTP adapter.

# Timing

Swaps fade every container out at once. After fade plus grace (600ms by
default) the target container is shown and the others hidden. Map steps that
swap render after an extra buffer, once their container is visible. A newer
swap cancels the deferred work of the previous one.

# Usage

	doc, err := dom.ReadFile("story.xhtml")
	if err != nil {
		log.Fatal(err)
	}

	eng, err := scrolly.New(doc,
		scrolly.WithMapRenderer(myMaps),
		scrolly.WithScrollDetector(myDetector),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer eng.Close()

	// The detector now calls the engine; steps can also be entered directly.
	if err := eng.EnterStep("harbour", 3); err != nil {
		log.Fatal(err)
	}
*/
package scrolly
