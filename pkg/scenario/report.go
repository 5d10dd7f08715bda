package scenario

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/aretw0/scrolly/pkg/adapters/memory"
	"github.com/aretw0/scrolly/pkg/domain"
	"github.com/aretw0/scrolly/pkg/scheduler"
)

// Report is the outcome of one scenario run.
type Report struct {
	Name     string          `json:"name"`
	Warnings []string        `json:"warnings,omitempty"`
	Entries  []Entry         `json:"entries"`
	Final    domain.Snapshot `json:"final"`
	Duration time.Duration   `json:"duration"`

	Swaps              []Swap                      `json:"swaps"`
	Ignored            map[domain.IgnoreReason]int `json:"ignored,omitempty"`
	MapRenders         []memory.MapRender          `json:"map_renders,omitempty"`
	Resizes            int                         `json:"resizes"`
	AttributionPatched bool                        `json:"attribution_patched"`
}

// Entry is the panel state right after one scenario event.
type Entry struct {
	At       time.Duration        `json:"at"`
	Action   string               `json:"action"`
	Error    string               `json:"error,omitempty"`
	Snapshot domain.Snapshot      `json:"snapshot"`
	Diff     *domain.SnapshotDiff `json:"diff,omitempty"`
}

// Swap records one container swap.
type Swap struct {
	At        time.Duration      `json:"at"`
	From      domain.ContentType `json:"from,omitempty"`
	To        domain.ContentType `json:"to"`
	Cancelled int                `json:"cancelled,omitempty"`
}

func (r *Report) hooks(clock *scheduler.Manual) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStepIgnored: func(_ context.Context, e *domain.StepEvent) {
			r.Ignored[e.Reason]++
		},
		OnSwap: func(_ context.Context, e *domain.SwapEvent) {
			r.Swaps = append(r.Swaps, Swap{At: clock.Now(), From: e.From, To: e.To, Cancelled: e.Cancelled})
		},
	}
}

// Markdown renders the report as a Markdown document.
func (r *Report) Markdown() string {
	var b strings.Builder

	name := r.Name
	if name == "" {
		name = "scenario"
	}
	fmt.Fprintf(&b, "# %s\n\n", name)

	if len(r.Warnings) > 0 {
		b.WriteString("## Page warnings\n\n")
		for _, w := range r.Warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Timeline\n\n")
	b.WriteString("| t | event | step | visible | text | image | map | video | pending |\n")
	b.WriteString("|---|---|---|---|---|---|---|---|---|\n")
	for _, e := range r.Entries {
		action := e.Action
		if e.Error != "" {
			action += " (" + e.Error + ")"
		}
		writeRow(&b, e.At.String(), action, e.Snapshot)
	}
	writeRow(&b, r.Duration.String(), "**settled**", r.Final)
	b.WriteString("\n")

	if len(r.Swaps) > 0 {
		b.WriteString("## Swaps\n\n")
		for _, s := range r.Swaps {
			from := string(s.From)
			if from == "" {
				from = "(none)"
			}
			fmt.Fprintf(&b, "- %s: %s → %s", s.At, from, s.To)
			if s.Cancelled > 0 {
				fmt.Fprintf(&b, ", %d stale task(s) cancelled", s.Cancelled)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(r.MapRenders) > 0 {
		b.WriteString("## Map renders\n\n")
		for _, m := range r.MapRenders {
			state := "visible"
			if !m.Visible {
				state = "**hidden**"
			}
			fmt.Fprintf(&b, "- `%s` at %g, %g zoom %g (%s)\n", m.ContainerID, m.Lat, m.Lng, m.Zoom, state)
		}
		b.WriteString("\n")
	}

	if len(r.Ignored) > 0 {
		b.WriteString("## Ignored events\n\n")
		reasons := make([]string, 0, len(r.Ignored))
		for reason := range r.Ignored {
			reasons = append(reasons, string(reason))
		}
		sort.Strings(reasons)
		for _, reason := range reasons {
			fmt.Fprintf(&b, "- %s: %d\n", reason, r.Ignored[domain.IgnoreReason(reason)])
		}
		b.WriteString("\n")
	}
	return b.String()
}

func writeRow(b *strings.Builder, at, action string, s domain.Snapshot) {
	visible := make([]string, 0, 1)
	for _, ct := range s.VisibleContent() {
		visible = append(visible, string(ct))
	}
	text := s.TextWidth
	if s.TextHidden {
		text += " (hidden)"
	}
	fmt.Fprintf(b, "| %s | %s | %s | %s | %s | %s | %s | %s | %d |\n",
		at, action, step(s.ActiveStep), cell(strings.Join(visible, ", ")), cell(text),
		cell(imageCell(s)), cell(s.MapLabel), cell(s.VideoSrc), s.Pending)
}

func step(i int) string {
	if i < 0 {
		return "-"
	}
	return fmt.Sprint(i)
}

func imageCell(s domain.Snapshot) string {
	if s.ImageSrc == "" {
		return ""
	}
	out := s.ImageSrc
	if s.ImageFit != "" {
		out += " " + s.ImageFit
	}
	if s.ImageScale != "" {
		out += " " + s.ImageScale
	}
	return out
}

func cell(v string) string {
	if v == "" {
		return "-"
	}
	return strings.ReplaceAll(v, "|", `\|`)
}
