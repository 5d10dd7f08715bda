/*
Package scenario replays scripted scroll sessions against a page on a virtual
clock and reports how the sticky panel evolved.

A scenario is a YAML document naming a page and a timeline of events:

	name: harbour walk
	page: harbour.xhtml
	settle: 1s
	config:
	  timing:
	    fade: 400ms
	events:
	  - at: 0s
	    enter: {instance: harbour, step: 0}
	  - at: 250ms
	    enter: {instance: harbour, step: 5}
	  - at: 2s
	    resize: true

Times are offsets from the start of the run. The page path is relative to the
scenario file; inline markup may be given instead. Because the clock is
virtual, a run is deterministic and finishes instantly.
*/
package scenario
