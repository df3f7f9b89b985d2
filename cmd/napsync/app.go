package main

import (
	"bufio"
	"context"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"napsync/internal/config"
	"napsync/internal/logging"
	"napsync/internal/workflow"
)

// app CLI state shared by all commands
type app struct {
	in  *bufio.Reader
	out io.Writer

	configPath string
	verbose    bool

	cfg    *config.AppConfig
	logger *zap.Logger
	runner *workflow.Runner
}

func newApp(in io.Reader, out io.Writer) *app {
	return &app{in: bufio.NewReader(in), out: out}
}

// Execute runs the CLI with args
func (a *app) Execute(ctx context.Context, args []string) error {
	root := a.rootCommand()
	root.SetArgs(args)
	root.SetOut(a.out)
	return root.ExecuteContext(ctx)
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "napsync",
		Short: "NAP inventory validation and cluster release tool",
		Long: `napsync compares the NAPs of the field workbook against the inventory
database, exports the missing ones, and prepares cluster release requests.

Without a subcommand it starts the interactive menu.`,
		PersistentPreRunE:  a.setup,
		PersistentPostRunE: a.teardown,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.menu(cmd.Context())
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default is config.toml next to the executable)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		&cobra.Command{
			Use:   "naps",
			Short: "Export NAPs of the workbook that are missing from the database",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return a.runNapUpdate(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "release",
			Short: "Generate the existence report or release request of the workbook cluster",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return a.runRelease(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "guide",
			Short: "Show the usage guide",
			Args:  cobra.NoArgs,
			RunE: func(_ *cobra.Command, _ []string) error {
				a.showHelp()
				return nil
			},
		},
	)
	return root
}

func (a *app) setup(_ *cobra.Command, _ []string) error {
	cfg, info, err := config.LoadConfigWithInfo(a.configPath)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log.Level, a.verbose)
	if err != nil {
		return err
	}
	logger.Debug("Configuration loaded", zap.String("path", info.Path), zap.Bool("found", info.Found))

	if err := config.EnsureOutputDirs(cfg); err != nil {
		logger.Warn("Could not create output directories", zap.Error(err))
	}

	a.cfg = cfg
	a.logger = logger
	a.runner = workflow.NewRunner(cfg, logger)
	a.runner.OnEvent = a.printEvent
	return nil
}

func (a *app) teardown(_ *cobra.Command, _ []string) error {
	if a.logger != nil {
		_ = a.logger.Sync()
	}
	return nil
}
