package scrolly

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/scrolly/internal/logging"
	"github.com/aretw0/scrolly/internal/runtime"
	"github.com/aretw0/scrolly/pkg/config"
	"github.com/aretw0/scrolly/pkg/dom"
	"github.com/aretw0/scrolly/pkg/domain"
	"github.com/aretw0/scrolly/pkg/ports"
	"github.com/google/uuid"
)

// Engine is the high-level entry point for the scrolly library.
// It binds one page document to the step-transition runtime and exposes it
// as a ports.Session.
type Engine struct {
	runtime *runtime.Engine
	doc     *dom.Document
	id      string
	changes chan struct{}

	cfg      *config.Config
	sched    ports.Scheduler
	maps     ports.MapRenderer
	detector ports.ScrollDetector
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
	strict   bool
}

var _ ports.Session = (*Engine)(nil)

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithConfig replaces the default timing and layout configuration.
func WithConfig(cfg config.Config) Option {
	return func(e *Engine) {
		e.cfg = &cfg
	}
}

// WithScheduler sets the timer source for fades and deferred renders.
func WithScheduler(s ports.Scheduler) Option {
	return func(e *Engine) {
		e.sched = s
	}
}

// WithMapRenderer injects the map library.
func WithMapRenderer(m ports.MapRenderer) Option {
	return func(e *Engine) {
		e.maps = m
	}
}

// WithScrollDetector injects the scroll detector. New registers the engine
// with it.
func WithScrollDetector(d ports.ScrollDetector) Option {
	return func(e *Engine) {
		e.detector = d
	}
}

// WithSessionID sets the session ID (default: a random UUID).
func WithSessionID(id string) Option {
	return func(e *Engine) {
		e.id = id
	}
}

// WithStrict makes New reject pages that fail dom.Validate.
func WithStrict(strict bool) Option {
	return func(e *Engine) {
		e.strict = strict
	}
}

// New initializes an Engine driving doc.
func New(doc *dom.Document, opts ...Option) (*Engine, error) {
	if doc == nil {
		return nil, fmt.Errorf("document is required")
	}
	eng := &Engine{
		doc:     doc,
		changes: make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.strict {
		if err := dom.Validate(doc); err != nil {
			return nil, fmt.Errorf("invalid page: %w", err)
		}
	}
	if eng.cfg != nil {
		if err := eng.cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid config: %w", err)
		}
	}
	if eng.id == "" {
		eng.id = uuid.NewString()
	}
	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	eng.logger = eng.logger.With("session", eng.id)

	runtimeOpts := []runtime.EngineOption{
		runtime.WithSessionID(eng.id),
		runtime.WithLifecycleHooks(eng.hooks),
		runtime.WithLogger(eng.logger),
		runtime.WithScheduler(eng.sched),
		runtime.WithChangeListener(eng.signal),
	}
	if eng.cfg != nil {
		runtimeOpts = append(runtimeOpts, runtime.WithConfig(*eng.cfg))
	}
	if eng.maps != nil {
		runtimeOpts = append(runtimeOpts, runtime.WithMapRenderer(eng.maps))
	}
	if eng.detector != nil {
		runtimeOpts = append(runtimeOpts, runtime.WithScrollDetector(eng.detector))
	}
	eng.runtime = runtime.NewEngine(doc, runtimeOpts...)

	if err := eng.runtime.Start(); err != nil {
		eng.runtime.Close()
		return nil, fmt.Errorf("failed to register with scroll detector: %w", err)
	}
	return eng, nil
}

// Parse reads an XHTML page and initializes an Engine for it.
func Parse(r io.Reader, opts ...Option) (*Engine, error) {
	doc, err := dom.Parse(r)
	if err != nil {
		return nil, err
	}
	return New(doc, opts...)
}

// Open reads the XHTML page at path and initializes an Engine for it.
func Open(path string, opts ...Option) (*Engine, error) {
	doc, err := dom.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return New(doc, opts...)
}

// ID returns the session ID.
func (e *Engine) ID() string {
	return e.id
}

// Document returns the page driven by the engine.
func (e *Engine) Document() *dom.Document {
	return e.doc
}

// Config returns the active configuration.
func (e *Engine) Config() config.Config {
	return e.runtime.Config()
}

// OnStepEnter handles a step-enter notification for a step element.
func (e *Engine) OnStepEnter(step *dom.Element) {
	e.runtime.OnStepEnter(step)
}

// EnterStep looks up the step by instance ID and index and handles it as a
// step-enter notification. An empty instance matches the first step with
// that index on the page.
func (e *Engine) EnterStep(instance string, index int) error {
	if !e.runtime.EnterStep(instance, index) {
		return fmt.Errorf("%w: instance %q, step %d", domain.ErrStepNotFound, instance, index)
	}
	return nil
}

// Resize propagates a viewport change to the collaborators.
func (e *Engine) Resize() {
	e.runtime.Resize()
}

// Snapshot describes the sticky panel of the active instance.
func (e *Engine) Snapshot() domain.Snapshot {
	return e.runtime.Snapshot()
}

// State returns a copy of the runtime session state.
func (e *Engine) State() runtime.SessionState {
	return e.runtime.State()
}

// Markup serialises the page in its current state.
func (e *Engine) Markup() (string, error) {
	return e.runtime.Markup()
}

// Changes returns a channel that receives a value after the page changes.
// Bursts are coalesced: a reader only learns that something changed and
// should take a Snapshot.
func (e *Engine) Changes() <-chan struct{} {
	return e.changes
}

// Close cancels pending fades and renders.
func (e *Engine) Close() {
	e.runtime.Close()
}

func (e *Engine) signal() {
	select {
	case e.changes <- struct{}{}:
	default:
	}
}
