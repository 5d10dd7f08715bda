package scheduler

import (
	"sort"
	"sync"
	"time"

	"github.com/aretw0/scrolly/pkg/ports"
)

// Manual is a virtual clock. Time starts at zero and only moves on Advance.
// Callbacks run synchronously on the goroutine calling Advance, ordered by due
// time and then by scheduling order.
type Manual struct {
	mu    sync.Mutex
	now   time.Duration
	seq   int
	queue []*manualTask
}

type manualTask struct {
	m    *Manual
	at   time.Duration
	seq  int
	fn   func()
	done bool
}

// NewManual creates a virtual clock at time zero.
func NewManual() *Manual {
	return &Manual{}
}

// AfterFunc implements ports.Scheduler.
func (m *Manual) AfterFunc(d time.Duration, fn func()) ports.Task {
	m.mu.Lock()
	defer m.mu.Unlock()

	if d < 0 {
		d = 0
	}
	t := &manualTask{m: m, at: m.now + d, seq: m.seq, fn: fn}
	m.seq++
	m.queue = append(m.queue, t)
	return t
}

// Stop implements ports.Task.
func (t *manualTask) Stop() bool {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()

	if t.done {
		return false
	}
	t.done = true
	t.m.remove(t)
	return true
}

// Now returns the virtual time elapsed since creation.
func (m *Manual) Now() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Pending returns the number of callbacks waiting to run.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}

// Advance moves time forward by d, running every callback that falls due,
// including callbacks scheduled by callbacks within the window.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now + d
	m.mu.Unlock()

	for {
		t := m.popDue(target)
		if t == nil {
			break
		}
		t.fn()
	}

	m.mu.Lock()
	if m.now < target {
		m.now = target
	}
	m.mu.Unlock()
}

// RunAll advances until no callbacks remain and returns the final time.
func (m *Manual) RunAll() time.Duration {
	for {
		m.mu.Lock()
		if len(m.queue) == 0 {
			now := m.now
			m.mu.Unlock()
			return now
		}
		m.sortLocked()
		next := m.queue[0].at
		m.mu.Unlock()
		m.Advance(next - m.Now())
	}
}

func (m *Manual) popDue(target time.Duration) *manualTask {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.queue) == 0 {
		return nil
	}
	m.sortLocked()
	t := m.queue[0]
	if t.at > target {
		return nil
	}
	m.queue = m.queue[1:]
	t.done = true
	if t.at > m.now {
		m.now = t.at
	}
	return t
}

func (m *Manual) sortLocked() {
	sort.SliceStable(m.queue, func(i, j int) bool {
		if m.queue[i].at != m.queue[j].at {
			return m.queue[i].at < m.queue[j].at
		}
		return m.queue[i].seq < m.queue[j].seq
	})
}

func (m *Manual) remove(t *manualTask) {
	for i, q := range m.queue {
		if q == t {
			m.queue = append(m.queue[:i], m.queue[i+1:]...)
			return
		}
	}
}
