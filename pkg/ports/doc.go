/*
Package ports defines the driven ports (interfaces) of the scrolly engine.

These interfaces decouple the step machine from the collaborators it does not
own: the scroll detector that reports which step is in view, the map library
that draws into a container, the timer source that runs deferred work, and the
store that keeps live page sessions.

# Key Interfaces

  - ScrollDetector: reports step-enter events and recomputes offsets on resize.
  - MapRenderer: draws a map into a container and reacts to size changes.
  - Scheduler: runs deferred callbacks and hands back cancellable Tasks.
  - SessionStore: keeps live page sessions addressable by ID.
*/
package ports
