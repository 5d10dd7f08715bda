/*
Package domain contains the core domain models of the scrolly engine.

It defines what a step is, which content a sticky panel can show, and the rule
that decides when the panel must swap its active container. The package is
kept pure: it knows nothing about documents, timers or rendering libraries.

# Key Entities

  - StepDescriptor: the static data attached to one narrative step.
  - ContentType: image, map or video, the three kinds of sticky content.
  - NeedsSwap: the transition trigger between two consecutive steps.
  - Snapshot: an observable summary of the sticky panel, diffable for streaming.
  - LifecycleHooks: callbacks for observability.
*/
package domain
