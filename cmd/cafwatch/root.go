package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hamed0406/cafwatch/internal/config"
	"github.com/hamed0406/cafwatch/internal/logging"
	"github.com/hamed0406/cafwatch/internal/marker"
	"github.com/hamed0406/cafwatch/internal/monitor"
	"github.com/hamed0406/cafwatch/internal/notify"
	"github.com/hamed0406/cafwatch/internal/probe"
)

type app struct {
	stdout     io.Writer
	stderr     io.Writer
	newMonitor func(cfg config.Config, logger *zap.Logger) *monitor.Monitor
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{stdout: stdout, stderr: stderr, newMonitor: defaultMonitor}
}

func defaultMonitor(cfg config.Config, logger *zap.Logger) *monitor.Monitor {
	return monitor.NewMonitor(
		logger,
		probe.NewHTTPChecker(probe.DefaultCheckTimeout, logger),
		notify.NewIFTTT(cfg.WebhookURL, logger),
		marker.DefaultPath,
	)
}

// execute runs the root command and returns the process exit code.
func execute(args []string, a *app) int {
	code := 0
	cmd := newRootCommand(a, &code)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(a.stderr, "✖", err)
		return 1
	}
	return code
}

func newRootCommand(a *app, code *int) *cobra.Command {
	var envFile, logDir string

	cmd := &cobra.Command{
		Use:           "cafwatch",
		Short:         "Notify via IFTTT once tickets.cafonline.com leaves maintenance",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(envFile)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("log-dir") {
				cfg.LogDir = logDir
			}

			logger, err := logging.NewLogger(cfg.LogDir, a.stdout)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			defer func() { _ = logger.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			st, err := a.newMonitor(cfg, logger).Run(ctx)
			if err != nil {
				logger.Error("run_failed", zap.String("state", st.String()), zap.Error(err))
				return err
			}
			logger.Info("run_finished", zap.String("state", st.String()), zap.Int("exit_code", st.ExitCode()))
			*code = st.ExitCode()
			return nil
		},
	}
	cmd.SetContext(context.Background())
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)
	cmd.Flags().StringVar(&envFile, "env-file", ".env", "optional dotenv file loaded before reading the environment")
	cmd.Flags().StringVar(&logDir, "log-dir", "", "directory for the rotating JSON log (overrides LOG_DIR)")
	return cmd
}
