package tui

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jmylchreest/snackbars/internal/audio"
	"github.com/jmylchreest/snackbars/internal/config"
	"github.com/jmylchreest/snackbars/internal/snackbar"
)

// RunOptions configures the TUI.
type RunOptions struct {
	Config *config.Config
	// ConfigPath is watched for changes; empty disables hot reload.
	ConfigPath string
	Logger     *slog.Logger
}

// Run starts the snackbar pipeline and the TUI, and blocks until the user quits.
func Run(ctx context.Context, opts RunOptions) error {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	host := snackbar.NewHostState(cfg, logger)
	controller := snackbar.NewController(host, logger)
	controller.Start(ctx)

	sounds := audio.NewManager(cfg, logger)
	sounds.Start()

	m := New(Options{
		Config:  cfg,
		Trigger: controller,
		Host:    host,
		Sounds:  sounds,
		Logger:  logger,
	})
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	// Start config watcher if a path was provided
	var watcher *config.Watcher
	if opts.ConfigPath != "" {
		w, err := config.NewWatcher(opts.ConfigPath, func(c *config.Config) {
			host.SetConfig(c)
			sounds.UpdateConfig(c)
			p.Send(ConfigChangedMsg{Config: c})
		}, logger)
		if err != nil {
			logger.Warn("failed to create config watcher", "error", err)
		} else if err := w.Start(); err != nil {
			logger.Warn("failed to start config watcher", "path", opts.ConfigPath, "error", err)
			_ = w.Stop()
		} else {
			watcher = w
		}
	}

	_, err := p.Run()

	// Surface teardown: undispatched snackbars are dropped and queued ones withdrawn
	if watcher != nil {
		_ = watcher.Stop()
	}
	controller.Stop()
	_ = host.Close()
	sounds.Stop()

	return err
}
