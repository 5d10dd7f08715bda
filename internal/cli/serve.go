package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/scrolly"
	"github.com/aretw0/scrolly/internal/logging"
	"github.com/aretw0/scrolly/internal/presentation/tui"
	httpadapter "github.com/aretw0/scrolly/pkg/adapters/http"
	"github.com/aretw0/scrolly/pkg/adapters/memory"
	"github.com/aretw0/scrolly/pkg/config"
	"github.com/aretw0/scrolly/pkg/observability"
	"github.com/aretw0/scrolly/pkg/ports"
	"github.com/aretw0/scrolly/pkg/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const shutdownTimeout = 5 * time.Second

// ServeOptions configures RunServe.
type ServeOptions struct {
	Addr   string
	Config config.Config
	Strict bool
	Logger *slog.Logger
	// Out receives the banner and lifecycle messages.
	Out io.Writer
}

// NewServer wires the session manager, metrics and HTTP adapter.
func NewServer(opts ServeOptions) (*httpadapter.Server, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := observability.NewMetrics()
	if err := metrics.Register(reg); err != nil {
		return nil, err
	}
	hooks := observability.Chain(metrics.Hooks(), observability.LogHooks(logger))

	cfg := opts.Config
	factory := func(id string, page io.Reader) (ports.Session, error) {
		eng, err := scrolly.Parse(page,
			scrolly.WithSessionID(id),
			scrolly.WithConfig(cfg),
			scrolly.WithLogger(logger),
			scrolly.WithLifecycleHooks(hooks),
			scrolly.WithStrict(opts.Strict),
		)
		if err != nil {
			return nil, err
		}
		return eng, nil
	}

	mgr := session.NewManager(memory.NewStore(), factory, session.WithLogger(logger))
	return httpadapter.NewServer(mgr,
		httpadapter.WithLogger(logger),
		httpadapter.WithMetrics(reg),
	), nil
}

// RunServe serves the HTTP API until ctx is cancelled, then shuts down
// gracefully.
func RunServe(ctx context.Context, opts ServeOptions) error {
	out := opts.Out
	if out == nil {
		out = io.Discard
	}

	api, err := NewServer(opts)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              opts.Addr,
		Handler:           api.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	tui.PrintBanner(out, scrolly.Version)

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	printSystemMessage(out, "Listening on %s", srv.Addr)
	go func() {
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		_ = api.Close(context.Background())
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		printSystemMessage(out, "Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		// Sessions first so open event streams end and Shutdown can drain.
		closeErr := api.Close(shutdownCtx)
		if err := srv.Shutdown(shutdownCtx); err != nil {
			_ = srv.Close()
			return fmt.Errorf("graceful shutdown did not complete in %v: %w", shutdownTimeout, err)
		}
		printSystemMessage(out, "Server stopped gracefully")
		return closeErr
	}
}
