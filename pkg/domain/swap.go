package domain

// NeedsSwap decides whether moving from prev to next requires a full
// container swap instead of an in-place content refresh.
//
// A swap is needed on the first step, when the content type changes, or when
// the reader jumped over intermediate steps (|Δindex| > 1). The last clause
// applies even to same-type jumps so stale intermediate content never shows.
func NeedsSwap(prev *StepDescriptor, next StepDescriptor) bool {
	if prev == nil {
		return true
	}
	if prev.ContentType != next.ContentType {
		return true
	}
	delta := prev.Index - next.Index
	if delta < 0 {
		delta = -delta
	}
	return delta > 1
}
