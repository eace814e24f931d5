package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/snackbars/internal/model"
	"github.com/jmylchreest/snackbars/internal/theme"
)

// cardChrome is the horizontal space taken by the card border and margin.
var cardChrome = 2*theme.Spacing.GapS + 2

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Colors.OnPrimary).
			Background(theme.Colors.Primary).
			Padding(0, theme.Spacing.GapM)

	buttonStyle = lipgloss.NewStyle().
			Border(theme.Borders.Small).
			BorderForeground(theme.Colors.Outline).
			Foreground(theme.Colors.OnSurface).
			Width(theme.Spacing.ButtonWidth).
			Align(lipgloss.Center)

	focusedButtonStyle = buttonStyle.
				BorderForeground(theme.Colors.Primary).
				Foreground(theme.Colors.Primary).
				Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(theme.Colors.Outline).
			MarginLeft(theme.Spacing.GapL)

	statusErrStyle = statusStyle.
			Foreground(theme.Colors.Error)

	labelStyle = lipgloss.NewStyle().
			Foreground(theme.Colors.Outline)

	actionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Colors.Primary)
)

// titleBar renders the top app bar.
func titleBar(width int) string {
	style := titleStyle
	if width > 0 {
		style = style.Width(width)
	}
	return style.Render(Title)
}

// renderButtons stacks the sample buttons, highlighting the focused one.
func renderButtons(buttons []button, focus int, active bool) string {
	rendered := make([]string, 0, len(buttons))
	for i, b := range buttons {
		style := buttonStyle
		if active && i == focus {
			style = focusedButtonStyle
		}
		rendered = append(rendered, style.Render(b.label))
	}
	return lipgloss.NewStyle().
		MarginLeft(theme.Spacing.GapL).
		Render(lipgloss.JoinVertical(lipgloss.Left, rendered...))
}

// renderCard draws a snackbar: a rounded border in the severity color around
// the severity icon and the message. width 0 sizes the card to its content.
func renderCard(req model.Request, width int) string {
	visual := theme.VisualFor(req.Severity)

	icon := lipgloss.NewStyle().
		Foreground(visual.Color).
		PaddingRight(theme.Spacing.GapL).
		Render(visual.Icon)
	message := lipgloss.NewStyle().
		Foreground(visual.Color).
		Render(req.Message)

	parts := []string{icon, message}
	if req.HasAction() {
		parts = append(parts, actionStyle.PaddingLeft(theme.Spacing.GapL).Render(req.ActionLabel))
	}
	if req.WithDismissAction {
		parts = append(parts, actionStyle.PaddingLeft(theme.Spacing.GapL).Render("✕"))
	}

	style := lipgloss.NewStyle().
		Border(theme.Borders.Small).
		BorderForeground(visual.Color).
		Padding(0, theme.Spacing.GapL).
		Margin(0, theme.Spacing.GapS)
	if width > 0 {
		style = style.Width(width)
	}
	return style.Render(lipgloss.JoinHorizontal(lipgloss.Top, parts...))
}

// severityBadge shows which severity a custom message will be sent with.
func severityBadge(s model.Severity) string {
	visual := theme.VisualFor(s)
	return lipgloss.NewStyle().
		Foreground(visual.Color).
		Render(visual.Icon + " " + s.String())
}
