package ports

import "time"

// Task is a handle on a deferred callback.
type Task interface {
	// Stop prevents the callback from running. It returns false if the
	// callback already ran or was already stopped.
	Stop() bool
}

// Scheduler runs callbacks after a delay.
// Implementations may invoke fn on any goroutine.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Task
}
