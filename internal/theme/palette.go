package theme

import "github.com/charmbracelet/lipgloss"

// Palette is the set of colors the UI draws with. Each color adapts to light and
// dark terminal backgrounds.
type Palette struct {
	Primary   lipgloss.AdaptiveColor
	OnPrimary lipgloss.AdaptiveColor
	Surface   lipgloss.AdaptiveColor
	OnSurface lipgloss.AdaptiveColor
	Outline   lipgloss.AdaptiveColor
	Error     lipgloss.AdaptiveColor
	OnError   lipgloss.AdaptiveColor
}

// Colors is the application palette (Material 3 baseline tones).
var Colors = Palette{
	Primary:   lipgloss.AdaptiveColor{Light: "#6750A4", Dark: "#D0BCFF"},
	OnPrimary: lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#381E72"},
	Surface:   lipgloss.AdaptiveColor{Light: "#FFFBFE", Dark: "#1C1B1F"},
	OnSurface: lipgloss.AdaptiveColor{Light: "#1C1B1F", Dark: "#E6E1E5"},
	Outline:   lipgloss.AdaptiveColor{Light: "#79747E", Dark: "#938F99"},
	Error:     lipgloss.AdaptiveColor{Light: "#B3261E", Dark: "#F2B8B5"},
	OnError:   lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#601410"},
}

// Dimensions is the spacing scale, in terminal cells.
type Dimensions struct {
	GapXS int
	GapS  int
	GapM  int
	GapL  int
	GapXL int
	// ButtonWidth is the minimum width of a button label area.
	ButtonWidth int
}

// Spacing is the default spacing scale.
var Spacing = Dimensions{
	GapXS:       0,
	GapS:        1,
	GapM:        1,
	GapL:        2,
	GapXL:       3,
	ButtonWidth: 20,
}

// Shapes are the border shapes used for cards and buttons.
type Shapes struct {
	Small  lipgloss.Border
	Medium lipgloss.Border
}

// Borders is the default set of shapes.
var Borders = Shapes{
	Small:  lipgloss.RoundedBorder(),
	Medium: lipgloss.NormalBorder(),
}
