package runtime

import (
	"github.com/aretw0/scrolly/pkg/dom"
	"github.com/aretw0/scrolly/pkg/domain"
	"github.com/aretw0/scrolly/pkg/ports"
)

// Containers are the three sticky containers of one scrolly instance.
type Containers struct {
	Image *dom.Element
	Map   *dom.Element
	Video *dom.Element
}

// Complete reports whether every container was found.
func (c Containers) Complete() bool {
	return c.Image != nil && c.Map != nil && c.Video != nil
}

// For returns the container showing content type ct, or nil.
func (c Containers) For(ct domain.ContentType) *dom.Element {
	switch ct {
	case domain.ContentImage:
		return c.Image
	case domain.ContentMap:
		return c.Map
	case domain.ContentVideo:
		return c.Video
	}
	return nil
}

// Session is the mutable state of one page session.
// It is owned by the Engine and only touched while holding the engine lock.
type Session struct {
	ID            string
	CurrentStep   int
	Previous      *domain.StepDescriptor
	Transitioning bool

	// Instance and Containers are scoped to the instance of the current step.
	Instance   *dom.Element
	Containers Containers

	pending  map[uint64]ports.Task
	nextTask uint64

	// imageTask loads imagePath into imageEl. mapTask draws mapStep once the
	// map container is shown. Zero means none scheduled.
	imageTask uint64
	imagePath string
	imageEl   *dom.Element
	mapTask   uint64
	mapStep   domain.StepDescriptor
}

func newSession(id string) *Session {
	return &Session{
		ID:          id,
		CurrentStep: -1,
		pending:     make(map[uint64]ports.Task),
		nextTask:    1,
	}
}

// InstanceName returns the id of the current instance, or "".
func (s *Session) InstanceName() string {
	if s.Instance == nil {
		return ""
	}
	return s.Instance.ID()
}

// SessionState is a read-only copy of the session for callers and tests.
type SessionState struct {
	ID            string
	CurrentStep   int
	Instance      string
	Previous      *domain.StepDescriptor
	Transitioning bool
	Pending       int
}
