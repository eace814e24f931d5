package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/snackbars/internal/dbus"
	"github.com/jmylchreest/snackbars/internal/model"
	"github.com/jmylchreest/snackbars/internal/snackbar"
)

var showOpts struct {
	severity      string
	duration      string
	action        string
	dismissButton bool
	wait          bool
}

var showCmd = &cobra.Command{
	Use:   "show MESSAGE...",
	Short: "Show a snackbar as a desktop notification",
	Long: `Show a snackbar through the desktop notification server (org.freedesktop.Notifications).

Severity maps to the notification urgency and icon: info is sent with normal
urgency, error with critical urgency. A new notification replaces one this
command left behind.

Examples:
  # Informational snackbar
  snackbars show "Saved"

  # Error snackbar that stays until dismissed
  snackbars show --severity error --duration indefinite "Build failed"

  # Wait for the user and print how the snackbar was closed
  snackbars show --action Retry --wait "Upload failed"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().StringVarP(&showOpts.severity, "severity", "s", model.SeverityInfo.String(),
		"Severity level (info, error)")
	showCmd.Flags().StringVarP(&showOpts.duration, "duration", "d", model.DurationShort.String(),
		"How long to show it (short, long, indefinite)")
	showCmd.Flags().StringVar(&showOpts.action, "action", "",
		"Label of an action button")
	showCmd.Flags().BoolVar(&showOpts.dismissButton, "dismiss-button", false,
		"Add an explicit dismiss button")
	showCmd.Flags().BoolVarP(&showOpts.wait, "wait", "w", false,
		"Wait until the snackbar closes and print the outcome")

	_ = showCmd.RegisterFlagCompletionFunc("severity", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		names := make([]string, 0, len(model.Severities()))
		for _, s := range model.Severities() {
			names = append(names, s.String())
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})
	_ = showCmd.RegisterFlagCompletionFunc("duration", cobra.FixedCompletions(
		[]string{"short", "long", "indefinite"}, cobra.ShellCompDirectiveNoFileComp))
}

// buildShowRequest turns the command line into a host queue request.
func buildShowRequest(args []string) (model.Request, error) {
	severity, err := model.ParseSeverity(showOpts.severity)
	if err != nil {
		return model.Request{}, err
	}
	duration, err := model.ParseDuration(showOpts.duration)
	if err != nil {
		return model.Request{}, err
	}

	req := snackbar.NewRequest(model.NewEvent(strings.Join(args, " "), severity))
	req.Duration = duration
	req.ActionLabel = showOpts.action
	req.WithDismissAction = showOpts.dismissButton
	return req, nil
}

func runShow(cmd *cobra.Command, args []string) error {
	req, err := buildShowRequest(args)
	if err != nil {
		return err
	}

	queue, err := dbus.NewSessionQueue(cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = queue.Close() }()

	if !showOpts.wait {
		id, err := queue.Send(cmd.Context(), req)
		if err != nil {
			return err
		}
		logger.Debug("snackbar sent", "id", id, "event_id", req.EventID.String())
		return nil
	}

	outcome, err := queue.Enqueue(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("snackbar not shown: %w", err)
	}
	fmt.Println(outcome.String())
	return nil
}
