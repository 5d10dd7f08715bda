/*
Package runtime implements the step-transition state machine.

The Engine receives step-enter notifications, guards against overlapping and
duplicate events, and then runs the pipeline for the new step: mark the
active step, adjust the column layout, swap the sticky container when the
content type changes or the reader jumped, and refresh the container's
content. Deferred work (reveal, image swap, map draw) is scheduled as
cancellable tasks; a new swap cancels the pending tasks of the previous one
unless configured otherwise.
*/
package runtime
