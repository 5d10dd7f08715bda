package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/scrolly/pkg/domain"
)

// LogHooks returns hooks that log every lifecycle event.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStepEnter: func(ctx context.Context, e *domain.StepEvent) {
			logger.InfoContext(ctx, "step_enter",
				"session", e.SessionID,
				"instance", e.Instance,
				"step", e.Step,
				"type", e.Content,
				"elapsed", e.Elapsed,
			)
		},
		OnStepIgnored: func(ctx context.Context, e *domain.StepEvent) {
			logger.DebugContext(ctx, "step_ignored",
				"session", e.SessionID,
				"step", e.Step,
				"reason", e.Reason,
			)
		},
		OnSwap: func(ctx context.Context, e *domain.SwapEvent) {
			logger.InfoContext(ctx, "swap",
				"session", e.SessionID,
				"instance", e.Instance,
				"from", e.From,
				"to", e.To,
				"cancelled", e.Cancelled,
			)
		},
		OnRender: func(ctx context.Context, e *domain.RenderEvent) {
			logger.DebugContext(ctx, "render",
				"session", e.SessionID,
				"step", e.Step,
				"type", e.Content,
				"deferred", e.Deferred,
			)
		},
	}
}

// Chain returns hooks calling each of the given hook sets in order.
func Chain(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	var out domain.LifecycleHooks
	for _, h := range sets {
		if f := h.OnStepEnter; f != nil {
			prev := out.OnStepEnter
			out.OnStepEnter = func(ctx context.Context, e *domain.StepEvent) {
				if prev != nil {
					prev(ctx, e)
				}
				f(ctx, e)
			}
		}
		if f := h.OnStepIgnored; f != nil {
			prev := out.OnStepIgnored
			out.OnStepIgnored = func(ctx context.Context, e *domain.StepEvent) {
				if prev != nil {
					prev(ctx, e)
				}
				f(ctx, e)
			}
		}
		if f := h.OnSwap; f != nil {
			prev := out.OnSwap
			out.OnSwap = func(ctx context.Context, e *domain.SwapEvent) {
				if prev != nil {
					prev(ctx, e)
				}
				f(ctx, e)
			}
		}
		if f := h.OnRender; f != nil {
			prev := out.OnRender
			out.OnRender = func(ctx context.Context, e *domain.RenderEvent) {
				if prev != nil {
					prev(ctx, e)
				}
				f(ctx, e)
			}
		}
	}
	return out
}
