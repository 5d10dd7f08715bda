package runtime

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aretw0/scrolly/internal/logging"
	"github.com/aretw0/scrolly/pkg/config"
	"github.com/aretw0/scrolly/pkg/dom"
	"github.com/aretw0/scrolly/pkg/domain"
	"github.com/aretw0/scrolly/pkg/ports"
	"github.com/aretw0/scrolly/pkg/scheduler"
)

// Engine is the step-enter dispatcher. It owns the page session and drives
// layout, container swaps and content renderers for every step change.
type Engine struct {
	doc       *dom.Document
	cfg       config.Config
	scheduler ports.Scheduler
	maps      ports.MapRenderer
	detector  ports.ScrollDetector
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
	now       func() time.Time
	changed   func()

	// handling guards the synchronous part of one step-enter event.
	handling atomic.Bool

	mu      sync.Mutex
	session *Session
	ctx     context.Context
	cancel  context.CancelFunc
	unwatch func()
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithConfig replaces the default configuration.
func WithConfig(cfg config.Config) EngineOption {
	return func(e *Engine) {
		e.cfg = cfg
	}
}

// WithScheduler sets the timer source for deferred work.
func WithScheduler(s ports.Scheduler) EngineOption {
	return func(e *Engine) {
		if s != nil {
			e.scheduler = s
		}
	}
}

// WithMapRenderer sets the map library collaborator.
func WithMapRenderer(m ports.MapRenderer) EngineOption {
	return func(e *Engine) {
		e.maps = m
	}
}

// WithScrollDetector sets the scroll detector collaborator.
func WithScrollDetector(d ports.ScrollDetector) EngineOption {
	return func(e *Engine) {
		e.detector = d
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithSessionID sets the ID reported in events and snapshots.
func WithSessionID(id string) EngineOption {
	return func(e *Engine) {
		e.session.ID = id
	}
}

// WithChangeListener registers fn to run after every page mutation, both
// synchronous step handling and deferred callbacks. fn runs under the engine
// lock and must not block or call back into the engine.
func WithChangeListener(fn func()) EngineOption {
	return func(e *Engine) {
		e.changed = fn
	}
}

// WithClock overrides the wall clock used for event timestamps.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		e.now = now
	}
}

// NewEngine creates an engine driving doc.
func NewEngine(doc *dom.Document, opts ...EngineOption) *Engine {
	e := &Engine{
		doc:       doc,
		cfg:       config.Default(),
		scheduler: scheduler.Real{},
		logger:    logging.NewNop(),
		now:       time.Now,
		session:   newSession(""),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.ctx, e.cancel = context.WithCancel(context.Background())

	if w := e.cfg.Watch; w.MatchClass != "" && w.AddClass != "" {
		e.unwatch = doc.WatchOnce(dom.HasClassMatcher(w.MatchClass), func(el *dom.Element) {
			el.AddClass(w.AddClass)
			e.logger.Debug("Patched injected element", "class", w.MatchClass, "added", w.AddClass)
		})
	}
	return e
}

// Document returns the page driven by the engine. Deferred callbacks mutate
// it on timer goroutines; use Markup or Snapshot for consistent reads.
func (e *Engine) Document() *dom.Document {
	return e.doc
}

// Config returns the active configuration.
func (e *Engine) Config() config.Config {
	return e.cfg
}

// Start registers the engine with its scroll detector, if any.
func (e *Engine) Start() error {
	if e.detector == nil {
		return nil
	}
	return e.detector.Setup(e.cfg.Timing.EntryOffset, func(instance string, index int) {
		e.EnterStep(instance, index)
	})
}

// EnterStep looks up a step by instance ID and index and handles it. It
// reports false when the page has no such step.
func (e *Engine) EnterStep(instance string, index int) bool {
	e.mu.Lock()
	step := e.doc.Step(instance, index)
	e.mu.Unlock()

	if step == nil {
		return false
	}
	e.OnStepEnter(step)
	return true
}

// Markup serialises the page in its current state.
func (e *Engine) Markup() (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.doc.String()
}

// OnStepEnter handles one step-enter notification.
//
// Events arriving while another event is being handled are dropped, as are
// repeated notifications for the active step. Malformed steps are ignored.
func (e *Engine) OnStepEnter(step *dom.Element) {
	started := e.now()

	if !e.handling.CompareAndSwap(false, true) {
		// the step is not read here: another goroutine may be mutating the page
		e.ignore(-1, domain.ReasonTransitioning, nil)
		return
	}
	defer e.handling.Store(false)

	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.session
	if s.Transitioning {
		e.ignore(-1, domain.ReasonTransitioning, nil)
		return
	}

	desc, err := dom.DecodeStep(step)
	if err != nil {
		e.ignore(-1, domain.ReasonMalformed, err)
		return
	}
	instance, containers, err := ResolveContainers(step)
	if err != nil {
		e.ignore(desc.Index, domain.ReasonMalformed, err)
		return
	}
	if desc.Index == s.CurrentStep && instance.Same(s.Instance) {
		e.ignore(desc.Index, domain.ReasonDuplicate, nil)
		return
	}

	s.Transitioning = true
	defer func() { s.Transitioning = false }()

	e.markActive(step)
	AdjustLayout(step, desc, e.cfg.Layout)

	instanceChanged := !instance.Same(s.Instance)
	prev := s.Previous
	if instanceChanged {
		// the new instance's panel has never shown the previous step
		prev = nil
	}
	s.Instance = instance
	s.Containers = containers

	swapped := domain.NeedsSwap(prev, desc)
	if swapped {
		e.swap(prev, desc)
	}
	e.render(prev, desc, swapped)

	s.Previous = &desc
	s.CurrentStep = desc.Index
	e.notify()

	e.logger.Debug("Step entered",
		"step", desc.Index,
		"instance", instance.ID(),
		"type", desc.ContentType,
		"swap", swapped,
	)
	if e.hooks.OnStepEnter != nil {
		e.hooks.OnStepEnter(e.ctx, &domain.StepEvent{
			EventBase: e.base(domain.EventStepEnter),
			Instance:  instance.ID(),
			Step:      desc.Index,
			Content:   desc.ContentType,
			Elapsed:   e.now().Sub(started),
		})
	}
}

// Resize propagates a viewport change to the scroll detector and the map
// library. It does not touch the step machine.
func (e *Engine) Resize() {
	if e.detector != nil {
		e.detector.Resize()
	}
	if e.maps != nil {
		e.maps.InvalidateSize()
	}
}

// State returns a copy of the session state.
func (e *Engine) State() SessionState {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.session
	return SessionState{
		ID:            s.ID,
		CurrentStep:   s.CurrentStep,
		Instance:      s.InstanceName(),
		Previous:      s.Previous,
		Transitioning: s.Transitioning,
		Pending:       len(s.pending),
	}
}

// Close cancels every pending deferred callback and the engine context.
// The page keeps whatever state it had.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.cancelPending()
	e.cancel()
	if e.unwatch != nil {
		e.unwatch()
	}
}

func (e *Engine) markActive(step *dom.Element) {
	for _, s := range e.doc.Steps() {
		s.RemoveClass(dom.ClassActive)
	}
	step.AddClass(dom.ClassActive)
}

func (e *Engine) ignore(index int, reason domain.IgnoreReason, err error) {
	if err != nil {
		e.logger.Debug("Step ignored", "step", index, "reason", reason, "err", err)
	} else {
		e.logger.Debug("Step ignored", "step", index, "reason", reason)
	}
	if e.hooks.OnStepIgnored != nil {
		e.hooks.OnStepIgnored(e.ctx, &domain.StepEvent{
			EventBase: e.base(domain.EventStepIgnored),
			Step:      index,
			Reason:    reason,
		})
	}
}

func (e *Engine) base(t domain.EventType) domain.EventBase {
	return domain.EventBase{
		Timestamp: e.now(),
		Type:      t,
		SessionID: e.session.ID,
	}
}

// after schedules fn on the engine's scheduler and returns the task id.
// fn runs under the engine lock, unless the task was cancelled in the
// meantime: a timer that already fired may still be waiting for the lock when
// a newer swap cancels it.
func (e *Engine) after(d time.Duration, label string, fn func()) uint64 {
	s := e.session
	id := s.nextTask
	s.nextTask++

	s.pending[id] = e.scheduler.AfterFunc(d, func() {
		e.mu.Lock()
		defer e.mu.Unlock()

		if _, ok := s.pending[id]; !ok {
			e.logger.Debug("Cancelled callback skipped", "task", label)
			return
		}
		delete(s.pending, id)
		fn()
		e.notify()
	})
	return id
}

// isPending reports whether task id is scheduled and not yet run.
func (e *Engine) isPending(id uint64) bool {
	_, ok := e.session.pending[id]
	return ok
}

// stop cancels task id if it is still pending. Caller holds the lock.
func (e *Engine) stop(id uint64) {
	if task, ok := e.session.pending[id]; ok {
		task.Stop()
		delete(e.session.pending, id)
	}
}

func (e *Engine) notify() {
	if e.changed != nil {
		e.changed()
	}
}

// cancelPending stops every pending callback. Caller holds the lock.
func (e *Engine) cancelPending() int {
	n := 0
	for id, task := range e.session.pending {
		task.Stop()
		delete(e.session.pending, id)
		n++
	}
	return n
}
