/*
Package scheduler provides ports.Scheduler implementations.

Real schedules on wall-clock timers. Manual is a virtual clock: callbacks only
run when Advance moves time forward, which makes transition timing
deterministic for tests and offline simulations.
*/
package scheduler
