package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/scrolly/internal/logging"
	"github.com/aretw0/scrolly/internal/presentation/tui"
	"github.com/aretw0/scrolly/pkg/config"
	"github.com/aretw0/scrolly/pkg/observability"
	"github.com/aretw0/scrolly/pkg/scenario"
)

// Output formats for simulation reports.
const (
	FormatAuto     = "auto"
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
	FormatPlain    = "plain"
)

// SimulateOptions configures RunSimulate.
type SimulateOptions struct {
	Scenario string
	Config   config.Config
	Format   string
	Out      io.Writer
	Logger   *slog.Logger

	// Terminal and Width describe Out; they select the styled renderer in
	// FormatAuto.
	Terminal bool
	Width    int
}

// RunSimulate replays a scenario file and writes its report.
func RunSimulate(ctx context.Context, opts SimulateOptions) error {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	sc, err := scenario.Load(opts.Scenario, opts.Config)
	if err != nil {
		return err
	}
	runner := scenario.NewRunner(
		scenario.WithLogger(logger),
		scenario.WithLifecycleHooks(observability.LogHooks(logger)),
	)
	report, err := runner.Run(ctx, sc)
	if err != nil {
		return handleExecutionError(err)
	}

	format := opts.Format
	if format == "" || format == FormatAuto {
		format = FormatPlain
		if opts.Terminal {
			format = "styled"
		}
	}

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(opts.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case FormatMarkdown:
		_, err := io.WriteString(opts.Out, report.Markdown())
		return err
	case FormatPlain:
		render, err := tui.NewPlainRenderer()
		if err != nil {
			return err
		}
		return writeRendered(opts.Out, render, report.Markdown())
	case "styled":
		render, err := tui.NewRenderer(opts.Width)
		if err != nil {
			return err
		}
		return writeRendered(opts.Out, render, report.Markdown())
	}
	return fmt.Errorf("unknown format %q (want %s, %s, %s or %s)", opts.Format, FormatAuto, FormatMarkdown, FormatJSON, FormatPlain)
}

func writeRendered(w io.Writer, render func(string) (string, error), markdown string) error {
	out, err := render(markdown)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}
