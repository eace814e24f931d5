package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/snackbars/internal/config"
	"github.com/jmylchreest/snackbars/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive sample screen",
	Long: `Launch the interactive sample screen.

The screen has two buttons that show an info and an error snackbar.
Snackbars appear one at a time at the bottom of the screen and disappear
after a few seconds. Config changes are picked up while running.

Key bindings:
  tab/↑/↓     Move between buttons
  enter       Press the focused button
  1, 2        Show the info / error snackbar
  m           Type a custom message (ctrl+e toggles its severity)
  x           Dismiss the visible snackbar
  ?           Show help
  q           Quit

With --verbose, logs are written to ~/.local/state/snackbars/snackbars.log.`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	tuiLogger, closeLog, err := newTUILogger()
	if err != nil {
		return err
	}
	defer closeLog()

	return tui.Run(cmd.Context(), tui.RunOptions{
		Config:     cfg,
		ConfigPath: configPath(),
		Logger:     tuiLogger,
	})
}

// newTUILogger returns a logger that keeps the alt screen clean: a log file
// with --verbose, nothing otherwise.
func newTUILogger() (*slog.Logger, func(), error) {
	if !globalOpts.verbose {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}

	if err := config.EnsureStateDir(); err != nil {
		return nil, nil, fmt.Errorf("failed to create state directory: %w", err)
	}
	f, err := os.OpenFile(config.LogPath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	l := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: logLevel()}))
	return l, func() { _ = f.Close() }, nil
}
