package ports

import (
	"context"

	"github.com/aretw0/scrolly/pkg/domain"
)

// Session is a live page session: one document driven by one engine.
type Session interface {
	ID() string

	// EnterStep feeds a step-enter event, as the scroll detector would.
	EnterStep(instance string, index int) error

	// Resize propagates a viewport change.
	Resize()

	// Snapshot describes the currently active scrolly instance.
	Snapshot() domain.Snapshot

	// Markup serialises the page in its current state.
	Markup() (string, error)

	// Close cancels pending deferred work.
	Close()
}

// SessionStore keeps live sessions addressable by ID.
// Sessions are in-memory objects; stores do not persist across restarts.
type SessionStore interface {
	// Save registers the session under its ID, replacing any previous one.
	Save(ctx context.Context, session Session) error

	// Load returns the session or domain.ErrSessionNotFound.
	Load(ctx context.Context, sessionID string) (Session, error)

	// Delete removes the session. Deleting a missing session is not an error.
	Delete(ctx context.Context, sessionID string) error

	// List returns the IDs of every stored session.
	List(ctx context.Context) ([]string, error)
}
