package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/aretw0/scrolly/internal/logging"
	"github.com/aretw0/scrolly/pkg/domain"
	"github.com/aretw0/scrolly/pkg/ports"
	"github.com/google/uuid"
	"go.uber.org/multierr"
)

// Factory builds a session with the given ID from page markup.
type Factory func(id string, page io.Reader) (ports.Session, error)

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager orchestrates session access, ensuring safe concurrent operations.
// It uses Reference Counting to garbage collect unused locks.
type Manager struct {
	store   ports.SessionStore
	factory Factory

	mu    sync.Mutex            // Global lock for the map
	locks map[string]*lockEntry // Map of active locks

	newID  func() string
	logger *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithIDGenerator replaces the UUID generator for new sessions.
func WithIDGenerator(fn func() string) Option {
	return func(m *Manager) {
		m.newID = fn
	}
}

// NewManager creates a Session Manager backed by store.
func NewManager(store ports.SessionStore, factory Factory, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		factory: factory,
		locks:   make(map[string]*lockEntry),
		newID:   uuid.NewString,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(sessionID) after unlocking.
func (m *Manager) acquire(sessionID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		entry = &lockEntry{}
		m.locks[sessionID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, sessionID)
	}
}

// Create builds a session from page markup and stores it under a new ID.
func (m *Manager) Create(ctx context.Context, page io.Reader) (ports.Session, error) {
	id := m.newID()

	var s ports.Session
	err := m.WithLock(ctx, id, func(ctx context.Context) error {
		var err error
		s, err = m.factory(id, page)
		if err != nil {
			return fmt.Errorf("failed to create session: %w", err)
		}
		if err := m.store.Save(ctx, s); err != nil {
			s.Close()
			return fmt.Errorf("failed to store session: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	m.logger.Info("Session created", "session_id", id)
	return s, nil
}

// Load retrieves an existing session from the store.
func (m *Manager) Load(ctx context.Context, sessionID string) (ports.Session, error) {
	var s ports.Session
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		var err error
		s, err = m.store.Load(ctx, sessionID)
		return err
	})
	return s, err
}

// WithSession runs fn with the session loaded, holding its lock.
func (m *Manager) WithSession(ctx context.Context, sessionID string, fn func(context.Context, ports.Session) error) error {
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		s, err := m.store.Load(ctx, sessionID)
		if err != nil {
			return err
		}
		return fn(ctx, s)
	})
}

// Delete closes the session and removes it from the store.
// It returns domain.ErrSessionNotFound for unknown IDs.
func (m *Manager) Delete(ctx context.Context, sessionID string) error {
	err := m.WithSession(ctx, sessionID, func(ctx context.Context, s ports.Session) error {
		s.Close()
		return m.store.Delete(ctx, sessionID)
	})
	if err == nil {
		m.logger.Info("Session deleted", "session_id", sessionID)
	}
	return err
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Store returns the underlying session store.
func (m *Manager) Store() ports.SessionStore {
	return m.store
}

// Close deletes every stored session.
func (m *Manager) Close(ctx context.Context) error {
	ids, err := m.store.List(ctx)
	if err != nil {
		return err
	}
	var errs error
	for _, id := range ids {
		if err := m.Delete(ctx, id); err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}

// WithLock executes a function while holding the lock for the session.
func (m *Manager) WithLock(ctx context.Context, sessionID string, fn func(context.Context) error) error {
	entry := m.acquire(sessionID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(sessionID)
	}()

	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx)
}
