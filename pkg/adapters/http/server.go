package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/aretw0/scrolly"
	"github.com/aretw0/scrolly/internal/logging"
	"github.com/aretw0/scrolly/pkg/domain"
	"github.com/aretw0/scrolly/pkg/ports"
	"github.com/aretw0/scrolly/pkg/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// maxPageBytes bounds the size of an uploaded page.
const maxPageBytes = 4 << 20

// notifier is implemented by sessions that report deferred page changes.
type notifier interface {
	Changes() <-chan struct{}
}

// Server routes HTTP requests to live sessions.
type Server struct {
	Sessions *session.Manager
	Streams  *StreamManager

	gatherer prometheus.Gatherer
	logger   *slog.Logger

	mu       sync.Mutex
	last     map[string]*domain.Snapshot
	watchers map[string]context.CancelFunc
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the request and stream logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetrics exposes g on /metrics.
func WithMetrics(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// NewServer creates a Server over sessions.
func NewServer(sessions *session.Manager, opts ...Option) *Server {
	s := &Server{
		Sessions: sessions,
		logger:   logging.NewNop(),
		last:     make(map[string]*domain.Snapshot),
		watchers: make(map[string]context.CancelFunc),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Streams = NewStreamManager(s.logger)
	return s
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.CreateSession)
		r.Get("/", s.ListSessions)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetSnapshot)
			r.Delete("/", s.DeleteSession)
			r.Get("/page", s.GetPage)
			r.Get("/events", s.SubscribeEvents)
			r.Post("/resize", s.Resize)
			r.Post("/steps/{index}", s.EnterStep)
		})
	})
	return r
}

// Close stops every change watcher, ends open event streams and deletes all
// sessions.
func (s *Server) Close(ctx context.Context) error {
	s.mu.Lock()
	for id, cancel := range s.watchers {
		cancel()
		delete(s.watchers, id)
	}
	s.mu.Unlock()
	s.Streams.CloseAll()
	return s.Sessions.Close(ctx)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"app":     "scrolly-http",
		"version": strings.TrimSpace(scrolly.Version),
	})
}

// CreateSession handles POST /sessions. The body is the page XHTML.
func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, maxPageBytes)
	sess, err := s.Sessions.Create(r.Context(), body)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid page: %v", err), http.StatusBadRequest)
		s.logger.Warn("CreateSession: page rejected", "err", err)
		return
	}

	snap := sess.Snapshot()
	s.mu.Lock()
	s.last[sess.ID()] = &snap
	s.mu.Unlock()
	s.watch(sess)

	w.Header().Set("Location", "/sessions/"+sess.ID())
	writeJSON(w, http.StatusCreated, snap)
}

// ListSessions handles GET /sessions.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Sessions.List(r.Context())
	if err != nil {
		s.fail(w, "ListSessions", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"sessions": ids})
}

// GetSnapshot handles GET /sessions/{id}.
func (s *Server) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	sess, err := s.Sessions.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, "GetSnapshot", err)
		return
	}
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

// GetPage handles GET /sessions/{id}/page.
func (s *Server) GetPage(w http.ResponseWriter, r *http.Request) {
	var markup string
	err := s.Sessions.WithSession(r.Context(), chi.URLParam(r, "id"), func(_ context.Context, sess ports.Session) error {
		var err error
		markup, err = sess.Markup()
		return err
	})
	if err != nil {
		s.fail(w, "GetPage", err)
		return
	}
	w.Header().Set("Content-Type", "application/xhtml+xml; charset=utf-8")
	_, _ = w.Write([]byte(markup))
}

// EnterStep handles POST /sessions/{id}/steps/{index}?instance=<id>.
func (s *Server) EnterStep(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		http.Error(w, "Invalid step index", http.StatusBadRequest)
		return
	}
	instance := r.URL.Query().Get("instance")

	s.command(w, r, "EnterStep", func(sess ports.Session) error {
		return sess.EnterStep(instance, index)
	})
}

// Resize handles POST /sessions/{id}/resize.
func (s *Server) Resize(w http.ResponseWriter, r *http.Request) {
	s.command(w, r, "Resize", func(sess ports.Session) error {
		sess.Resize()
		return nil
	})
}

func (s *Server) command(w http.ResponseWriter, r *http.Request, name string, fn func(ports.Session) error) {
	var snap domain.Snapshot
	err := s.Sessions.WithSession(r.Context(), chi.URLParam(r, "id"), func(_ context.Context, sess ports.Session) error {
		if err := fn(sess); err != nil {
			return err
		}
		snap = s.publish(sess)
		return nil
	})
	if err != nil {
		s.fail(w, name, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// DeleteSession handles DELETE /sessions/{id}.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.Sessions.Delete(r.Context(), id); err != nil {
		s.fail(w, "DeleteSession", err)
		return
	}

	s.mu.Lock()
	if cancel, ok := s.watchers[id]; ok {
		cancel()
		delete(s.watchers, id)
	}
	delete(s.last, id)
	s.mu.Unlock()
	s.Streams.CloseSession(id)

	w.WriteHeader(http.StatusNoContent)
}

// SubscribeEvents handles GET /sessions/{id}/events (SSE).
//
// The stream opens with the full snapshot, then carries one JSON diff per
// change. The optional watch parameter ("active", "panels", "fields") keeps
// only diffs touching the listed parts.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	id := chi.URLParam(r, "id")
	sess, err := s.Sessions.Load(r.Context(), id)
	if err != nil {
		s.fail(w, "SubscribeEvents", err)
		return
	}

	ch, cancel := s.Streams.Subscribe(id)
	defer cancel()

	var watchList []string
	if v := r.URL.Query().Get("watch"); v != "" {
		for _, field := range strings.Split(v, ",") {
			watchList = append(watchList, strings.TrimSpace(field))
		}
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	initial, _ := json.Marshal(sess.Snapshot())
	fmt.Fprintf(w, "event: snapshot\ndata: %s\n\n", initial)
	flusher.Flush()
	s.logger.Debug("SSE: Client subscribed", "session_id", id)

	for {
		select {
		case <-r.Context().Done():
			s.logger.Debug("SSE: Client disconnected", "session_id", id)
			return
		case msg, ok := <-ch:
			if !ok {
				fmt.Fprintf(w, "event: closed\ndata: %s\n\n", id)
				flusher.Flush()
				return
			}
			if len(watchList) > 0 && !matches(msg, watchList) {
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

func matches(msg string, watchList []string) bool {
	var diff domain.SnapshotDiff
	if err := json.Unmarshal([]byte(msg), &diff); err != nil {
		return true
	}
	for _, field := range watchList {
		switch field {
		case "active":
			if diff.ActiveStep != nil || diff.Instance != nil {
				return true
			}
		case "panels":
			if len(diff.Panels) > 0 {
				return true
			}
		case "fields":
			if len(diff.Fields) > 0 {
				return true
			}
		}
	}
	return false
}

// watch follows deferred changes of sess until the session is deleted.
func (s *Server) watch(sess ports.Session) {
	n, ok := sess.(notifier)
	if !ok {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.mu.Lock()
	s.watchers[sess.ID()] = cancel
	s.mu.Unlock()

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-n.Changes():
				if ctx.Err() == nil {
					s.publish(sess)
				}
			}
		}
	}()
}

// publish broadcasts the diff between the current snapshot of sess and the
// last published one, and returns the current snapshot. Snapshots are taken
// under s.mu so diffs are published in order.
func (s *Server) publish(sess ports.Session) domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := sess.Snapshot()
	diff := domain.Diff(s.last[sess.ID()], &snap)
	if diff == nil {
		return snap
	}
	s.last[sess.ID()] = &snap

	payload, err := json.Marshal(diff)
	if err != nil {
		s.logger.Error("Failed to encode snapshot diff", "session_id", sess.ID(), "err", err)
		return snap
	}
	s.Streams.Broadcast(sess.ID(), string(payload))
	return snap
}

func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrStepNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, context.Canceled):
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
		s.logger.Error(op+" failed", "err", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
