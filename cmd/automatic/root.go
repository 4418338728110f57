package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/no111u3/automatic/internal/app"
	"github.com/no111u3/automatic/internal/config"
	"github.com/no111u3/automatic/internal/domain"
)

// Version is set via LDFLAGS at build time.
var Version = "0.1.0"

type globalOptions struct {
	verbose    bool
	configFile string
}

type runOptions struct {
	script      string
	format      string
	verbosity   string
	itemTimeout time.Duration
}

func newRootCmd() *cobra.Command {
	global := &globalOptions{}
	opts := &runOptions{}

	root := &cobra.Command{
		Use:   "automatic -r SCRIPT",
		Short: "Run lists of commands described in a YAML script",
		Long: `automatic - run a YAML script of commands in order.

The script's top-level key selects the policy:
  Promiscuous  run items with captured output, stop at the first failure
  Silent       same, and report the failing item as an error
  Interactive  items share this terminal, stop at the first failure`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(global.verbose)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScript(cmd, global, opts)
		},
		Args:          cobra.NoArgs,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().BoolVarP(&global.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVar(&global.configFile, "config", "", "path to config file (default ./.automatic.yaml)")
	addRunFlags(root, opts)

	root.AddCommand(newRunCmd(global))
	root.AddCommand(newWatchCmd(global))
	root.AddCommand(newInitCmd())
	root.AddCommand(newVersionCmd())

	return root
}

func setupLogging(verbose bool) {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          config.AppName,
	})
	slog.SetDefault(slog.New(logger))
}

func addRunFlags(cmd *cobra.Command, opts *runOptions) {
	defaults := config.DefaultSettings()
	cmd.Flags().StringVarP(&opts.script, "run", "r", "", "path to the script to run")
	cmd.Flags().StringVar(&opts.format, "format", string(defaults.Format), "output format (tui|json|raw)")
	cmd.Flags().StringVar(&opts.verbosity, "verbosity", string(defaults.Verbosity), "verbosity level (silent|normal|verbose)")
	cmd.Flags().DurationVar(&opts.itemTimeout, "item-timeout", defaults.ItemTimeout, "stop an item after this long (0 = no limit)")
}

func buildRunConfig(cmd *cobra.Command, global *globalOptions, opts *runOptions) (*domain.RunConfig, error) {
	settings, err := config.Load(config.LoadOptions{ConfigFile: global.configFile, Flags: cmd.Flags()})
	if err != nil {
		return nil, err
	}
	if settings.ConfigFile != "" {
		slog.Debug("config loaded", "path", settings.ConfigFile)
	}
	return &domain.RunConfig{
		ScriptPath:  opts.script,
		Format:      settings.Format,
		Verbosity:   settings.Verbosity,
		ItemTimeout: settings.ItemTimeout,
	}, nil
}

func runScript(cmd *cobra.Command, global *globalOptions, opts *runOptions) error {
	cfg, err := buildRunConfig(cmd, global, opts)
	if err != nil {
		return err
	}
	orchestrator := app.NewOrchestrator(cmd.OutOrStdout(), cmd.ErrOrStderr())
	return orchestrator.Execute(cmd.Context(), cfg)
}
