package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/snackbars/internal/model"
)

// Icons drawn next to the snackbar message.
const (
	InfoIcon    = "ⓘ"
	WarningIcon = "⚠"
)

// Visual is the color and icon a snackbar is drawn with.
type Visual struct {
	Color lipgloss.AdaptiveColor
	Icon  string
}

// VisualFor maps a severity to its visual treatment.
// The switch is checked by the exhaustive linter; values outside the enum draw as info.
func VisualFor(s model.Severity) Visual {
	switch s {
	case model.SeverityInfo:
		return Visual{Color: Colors.OnSurface, Icon: InfoIcon}
	case model.SeverityError:
		return Visual{Color: Colors.Error, Icon: WarningIcon}
	}
	return Visual{Color: Colors.OnSurface, Icon: InfoIcon}
}
