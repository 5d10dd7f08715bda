package scheduler

import (
	"time"

	"github.com/aretw0/scrolly/pkg/ports"
)

// Real schedules callbacks on runtime timers. Callbacks run on their own goroutine.
type Real struct{}

// AfterFunc implements ports.Scheduler.
func (Real) AfterFunc(d time.Duration, fn func()) ports.Task {
	return time.AfterFunc(d, fn)
}
