package runtime

import (
	"strconv"

	"github.com/aretw0/scrolly/pkg/config"
	"github.com/aretw0/scrolly/pkg/dom"
	"github.com/aretw0/scrolly/pkg/domain"
)

// AdjustLayout splits the instance width between the text column and the
// sticky column for the given step. It is idempotent.
//
// A text share at or below the configured minimum is not collapsed to zero:
// the scroll detector needs the text column as its trigger region, so the
// column keeps a small width, is visually hidden, and the sticky column stops
// short of full width.
func AdjustLayout(step *dom.Element, desc domain.StepDescriptor, l config.Layout) {
	text := step.Closest(dom.ClassSteps)
	instance := step.Closest(dom.ClassInstance)
	if text == nil || instance == nil {
		return
	}
	sticky := instance.Find(dom.ClassSticky)
	if sticky == nil {
		return
	}

	if desc.TextPercent <= l.MinTextPercent {
		text.SetStyle("width", percent(l.CollapsedTextWidth))
		text.AddClass(dom.ClassHidden)
		text.AddClass(dom.ClassNoMargin)
		sticky.SetStyle("width", percent(l.CollapsedStickyWidth))
		return
	}

	text.SetStyle("width", percent(desc.TextPercent))
	text.RemoveClass(dom.ClassHidden)
	text.RemoveClass(dom.ClassNoMargin)
	sticky.SetStyle("width", percent(100-desc.TextPercent))
}

func percent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}
