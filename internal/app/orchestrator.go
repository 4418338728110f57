package app

import (
	"context"
	"errors"
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/no111u3/automatic/internal/domain"
	"github.com/no111u3/automatic/internal/script"
	"github.com/no111u3/automatic/internal/ui"
)

type Orchestrator struct {
	validator *domain.ConfigValidator
	scripts   *domain.ScriptValidator
	executor  Executor
	stdout    io.Writer
	stderr    io.Writer

	tuiOptions []tea.ProgramOption
}

func NewOrchestrator(stdout, stderr io.Writer) *Orchestrator {
	return &Orchestrator{
		validator: domain.NewConfigValidator(),
		scripts:   domain.NewScriptValidator(),
		executor:  NewExecutor(),
		stdout:    stdout,
		stderr:    stderr,
	}
}

// Execute loads the script named by cfg and runs it to completion.
func (o *Orchestrator) Execute(ctx context.Context, cfg *domain.RunConfig) error {
	if err := o.validator.Validate(cfg); err != nil {
		return err
	}

	list, err := script.Load(cfg.ScriptPath)
	if err != nil {
		return err
	}
	if err := o.scripts.Validate(list); err != nil {
		return err
	}
	slog.Debug("script loaded", "path", cfg.ScriptPath, "kind", list.Kind, "items", len(list.Items))

	format := cfg.Format
	if list.Kind == domain.ListInteractive && format == domain.FormatTUI {
		slog.Debug("interactive list owns the terminal, using raw output")
		format = domain.FormatRaw
	}

	switch format {
	case domain.FormatJSON:
		return o.executor.Execute(ctx, cfg, list, ui.NewJSONFormatter(o.stdout))
	case domain.FormatTUI:
		return o.executeTUI(ctx, cfg, list, ui.NewTUIFormatter(cfg.ScriptPath, list, o.tuiOptions...))
	default:
		return o.executor.Execute(ctx, cfg, list, ui.NewRawFormatter(o.stdout, o.stderr, cfg.Verbosity))
	}
}

func (o *Orchestrator) executeTUI(ctx context.Context, cfg *domain.RunConfig, list domain.List, tui *ui.TUIFormatter) error {
	ctxRun, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctxRun)

	// Quitting the TUI cancels the list.
	g.Go(func() error {
		defer cancel()
		return tui.Run(gctx)
	})

	if err := tui.WaitReady(gctx); err != nil {
		return err
	}

	var runErr error
	g.Go(func() error {
		runErr = o.executor.Execute(gctx, cfg, list, tui)
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	if errors.Is(runErr, context.Canceled) && ctx.Err() == nil {
		slog.Warn("run stopped from the TUI before the list finished", "script", cfg.ScriptPath)
	}
	return runErr
}
