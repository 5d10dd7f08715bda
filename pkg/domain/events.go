package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventStepEnter   EventType = "step_enter"
	EventStepIgnored EventType = "step_ignored"
	EventSwap        EventType = "swap"
	EventRender      EventType = "render"
)

// IgnoreReason explains why a step-enter event did not change anything.
type IgnoreReason string

const (
	ReasonTransitioning IgnoreReason = "transitioning"
	ReasonDuplicate     IgnoreReason = "duplicate"
	ReasonMalformed     IgnoreReason = "malformed"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	SessionID string    `json:"session_id"`
}

// StepEvent describes a handled or ignored step-enter notification.
type StepEvent struct {
	EventBase
	Instance string        `json:"instance,omitempty"`
	Step     int           `json:"step"`
	Content  ContentType   `json:"content_type,omitempty"`
	Reason   IgnoreReason  `json:"reason,omitempty"`
	Elapsed  time.Duration `json:"elapsed,omitempty"`
}

// SwapEvent describes the start of a container swap.
type SwapEvent struct {
	EventBase
	Instance  string      `json:"instance"`
	From      ContentType `json:"from,omitempty"`
	To        ContentType `json:"to"`
	Cancelled int         `json:"cancelled,omitempty"` // stale tasks superseded by this swap
}

// RenderEvent describes a content renderer updating a container.
type RenderEvent struct {
	EventBase
	Instance string      `json:"instance"`
	Step     int         `json:"step"`
	Content  ContentType `json:"content_type"`
	Deferred bool        `json:"deferred,omitempty"`
}

// LifecycleHooks defines callbacks for engine observability.
// Hooks run while the engine holds its lock; a step-enter issued from inside a
// hook is treated as overlapping and ignored.
type LifecycleHooks struct {
	OnStepEnter   func(context.Context, *StepEvent)
	OnStepIgnored func(context.Context, *StepEvent)
	OnSwap        func(context.Context, *SwapEvent)
	OnRender      func(context.Context, *RenderEvent)
}
