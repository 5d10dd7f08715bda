package scenario

import (
	"context"
	"log/slog"

	"github.com/aretw0/scrolly"
	"github.com/aretw0/scrolly/internal/logging"
	"github.com/aretw0/scrolly/pkg/adapters/memory"
	"github.com/aretw0/scrolly/pkg/dom"
	"github.com/aretw0/scrolly/pkg/domain"
	"github.com/aretw0/scrolly/pkg/observability"
	"github.com/aretw0/scrolly/pkg/scheduler"
	"go.uber.org/multierr"
)

// Runner replays scenarios.
type Runner struct {
	logger *slog.Logger
	hooks  domain.LifecycleHooks
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithLogger sets the logger handed to the engine.
func WithLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithLifecycleHooks adds hooks called alongside the runner's own.
func WithLifecycleHooks(hooks domain.LifecycleHooks) RunnerOption {
	return func(r *Runner) {
		r.hooks = hooks
	}
}

// NewRunner creates a Runner.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run replays sc and returns the report. The page is loaded fresh for every
// run. Errors from individual events are recorded in the report, not returned.
func (r *Runner) Run(ctx context.Context, sc *Scenario) (*Report, error) {
	doc, err := r.load(sc)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Name:    sc.Name,
		Ignored: make(map[domain.IgnoreReason]int),
	}
	for _, problem := range multierr.Errors(dom.Validate(doc)) {
		report.Warnings = append(report.Warnings, problem.Error())
	}

	clock := scheduler.NewManual()
	maps := memory.NewMapRenderer(doc)
	detector := memory.NewScrollDetector()
	eng, err := scrolly.New(doc,
		scrolly.WithSessionID(sc.Name),
		scrolly.WithConfig(*sc.Config),
		scrolly.WithScheduler(clock),
		scrolly.WithMapRenderer(maps),
		scrolly.WithScrollDetector(detector),
		scrolly.WithLogger(r.logger),
		scrolly.WithLifecycleHooks(observability.Chain(report.hooks(clock), r.hooks)),
	)
	if err != nil {
		return nil, err
	}
	defer eng.Close()

	prev := eng.Snapshot()
	for _, ev := range sc.Events {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		clock.Advance(ev.At.Std() - clock.Now())

		entry := Entry{At: clock.Now(), Action: ev.Action()}
		switch {
		case ev.Enter != nil:
			if err := eng.EnterStep(ev.Enter.Instance, ev.Enter.Step); err != nil {
				entry.Error = err.Error()
			}
		case ev.Resize:
			eng.Resize()
		}

		snap := eng.Snapshot()
		entry.Snapshot = snap
		entry.Diff = domain.Diff(&prev, &snap)
		report.Entries = append(report.Entries, entry)
		prev = snap
	}

	settle := sc.Settle.Std()
	if settle == 0 {
		settle = sc.Config.Timing.MapDelay()
	}
	clock.Advance(settle)

	report.Duration = clock.Now()
	report.Final = eng.Snapshot()
	report.MapRenders = maps.Renders()
	report.Resizes = detector.Resizes()
	if class := sc.Config.Watch.AddClass; class != "" {
		report.AttributionPatched = doc.Find(class) != nil
	}
	return report, nil
}

func (r *Runner) load(sc *Scenario) (*dom.Document, error) {
	if sc.Markup != "" {
		return dom.ParseString(sc.Markup)
	}
	return dom.ReadFile(sc.PagePath())
}

// Run replays sc with a default Runner.
func Run(ctx context.Context, sc *Scenario) (*Report, error) {
	return NewRunner().Run(ctx, sc)
}
