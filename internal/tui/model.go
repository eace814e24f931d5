// Package tui provides the BubbleTea-based sample screen for triggering snackbars.
package tui

import (
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/snackbars/internal/config"
	"github.com/jmylchreest/snackbars/internal/model"
	"github.com/jmylchreest/snackbars/internal/snackbar"
)

// Title is the top bar text.
const Title = "Snackbars"

// Mode represents the current UI mode.
type Mode int

const (
	// ModeScreen is the button screen.
	ModeScreen Mode = iota
	// ModeCompose is typing a custom message.
	ModeCompose
)

// Trigger records a new snackbar event.
type Trigger interface {
	Trigger(message string, severity model.Severity) model.Event
}

// Host is the display side the screen renders and controls.
type Host interface {
	Current() (model.Request, bool)
	Pending() int
	Dismiss() bool
	Subscribe() <-chan snackbar.Change
}

// SoundPlayer plays the cue for a severity.
type SoundPlayer interface {
	Enabled() bool
	PlayFor(s model.Severity) error
}

// button is one of the sample buttons on the screen.
type button struct {
	label    string
	message  string
	severity model.Severity
}

var sampleButtons = []button{
	{
		label:    "Show Snackbar 1",
		message:  "This is a snackbar with the severity level INFO",
		severity: model.SeverityInfo,
	},
	{
		label:    "Show Snackbar 2",
		message:  "This is a snackbar with the severity level ERROR",
		severity: model.SeverityError,
	},
}

// Options configures a Model.
type Options struct {
	Config  *config.Config
	Trigger Trigger
	Host    Host
	Sounds  SoundPlayer // optional
	Logger  *slog.Logger
}

// Model is the main TUI model.
type Model struct {
	cfg     *config.Config
	trigger Trigger
	host    Host
	sounds  SoundPlayer
	logger  *slog.Logger

	mode Mode

	// Components
	input textinput.Model
	help  help.Model
	keys  KeyMap

	// State
	focus           int
	composeSeverity model.Severity
	current         model.Request
	showing         bool
	waiting         int
	lastShown       time.Time
	width           int
	height          int

	// Status message
	statusMsg string
	statusErr bool

	changes <-chan snackbar.Change
	now     func() time.Time
}

// New creates a new TUI model.
func New(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	input := textinput.New()
	input.Placeholder = "Type a message..."
	input.CharLimit = 200
	input.Prompt = "> "

	h := help.New()
	h.ShowAll = false

	m := Model{
		cfg:     cfg,
		trigger: opts.Trigger,
		host:    opts.Host,
		sounds:  opts.Sounds,
		logger:  logger,
		mode:    ModeScreen,
		input:   input,
		help:    h,
		keys:    DefaultKeyMap(),
		now:     time.Now,
	}

	if m.host != nil {
		m.changes = m.host.Subscribe()
	}

	return m
}

// ConfigChangedMsg carries a reloaded configuration into the program.
type ConfigChangedMsg struct {
	Config *config.Config
}

type hostChangeMsg struct {
	change snackbar.Change
}

type hostClosedMsg struct{}

type tickMsg time.Time

type statusMsg struct {
	text  string
	isErr bool
}

type clearStatusMsg struct{}

// Init initializes the TUI.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.waitForChange,
		tick(),
	)
}

// waitForChange blocks until the host publishes a status change.
func (m Model) waitForChange() tea.Msg {
	if m.changes == nil {
		return nil
	}
	change, ok := <-m.changes
	if !ok {
		return hostClosedMsg{}
	}
	return hostChangeMsg{change: change}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = max(msg.Width-4, 10)
		return m, nil

	case hostChangeMsg:
		m.syncHost()
		var cmds []tea.Cmd
		if msg.change.Status == snackbar.StatusActive {
			m.lastShown = m.now()
			cmds = append(cmds, m.playCue(msg.change.Request.Severity))
		}
		cmds = append(cmds, m.waitForChange)
		return m, tea.Batch(cmds...)

	case hostClosedMsg:
		m.changes = nil
		m.showing = false
		return m, nil

	case ConfigChangedMsg:
		if msg.Config != nil {
			m.cfg = msg.Config
			m.logger.Debug("tui config updated")
		}
		return m, nil

	case tickMsg:
		return m, tick()

	case statusMsg:
		m.statusMsg = msg.text
		m.statusErr = msg.isErr
		return m, tea.Tick(3*time.Second, func(time.Time) tea.Msg {
			return clearStatusMsg{}
		})

	case clearStatusMsg:
		m.statusMsg = ""
		m.statusErr = false
		return m, nil
	}

	if m.mode == ModeCompose {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey handles key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}

	if m.mode == ModeCompose {
		return m.handleComposeKey(msg)
	}
	return m.handleScreenKey(msg)
}

// handleScreenKey handles keys on the button screen.
func (m Model) handleScreenKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Next):
		m.focus = (m.focus + 1) % len(sampleButtons)
		return m, nil

	case key.Matches(msg, m.keys.Prev):
		m.focus = (m.focus + len(sampleButtons) - 1) % len(sampleButtons)
		return m, nil

	case key.Matches(msg, m.keys.Press):
		return m.press(m.focus)

	case key.Matches(msg, m.keys.ShowInfo):
		return m.press(0)

	case key.Matches(msg, m.keys.ShowError):
		return m.press(1)

	case key.Matches(msg, m.keys.Compose):
		m.mode = ModeCompose
		m.input.SetValue("")
		m.input.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Dismiss):
		if m.host == nil || !m.host.Dismiss() {
			return m, func() tea.Msg {
				return statusMsg{text: "Nothing to dismiss", isErr: false}
			}
		}
		return m, nil
	}

	return m, nil
}

// handleComposeKey handles keys while typing a custom message.
func (m Model) handleComposeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.mode = ModeScreen
		m.input.Blur()
		m.input.SetValue("")
		return m, nil

	case key.Matches(msg, m.keys.ToggleSeverity):
		if m.composeSeverity == model.SeverityInfo {
			m.composeSeverity = model.SeverityError
		} else {
			m.composeSeverity = model.SeverityInfo
		}
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		m.fire(m.input.Value(), m.composeSeverity)
		m.mode = ModeScreen
		m.input.Blur()
		m.input.SetValue("")
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// press activates the sample button at index i.
func (m Model) press(i int) (tea.Model, tea.Cmd) {
	m.focus = i
	b := sampleButtons[i]
	m.fire(b.message, b.severity)
	return m, nil
}

// fire triggers a snackbar. It never blocks on the host.
func (m Model) fire(message string, severity model.Severity) {
	if m.trigger == nil {
		return
	}
	event := m.trigger.Trigger(message, severity)
	m.logger.Debug("snackbar triggered", "event_id", event.ID().String(), "severity", severity.String())
}

// syncHost copies the host's visible request into the model.
func (m *Model) syncHost() {
	if m.host == nil {
		return
	}
	m.current, m.showing = m.host.Current()
	m.waiting = m.host.Pending()
}

// playCue plays the severity sound off the update loop.
func (m Model) playCue(s model.Severity) tea.Cmd {
	if m.sounds == nil || !m.sounds.Enabled() {
		return nil
	}
	sounds := m.sounds
	return func() tea.Msg {
		if err := sounds.PlayFor(s); err != nil {
			return statusMsg{text: "Sound failed: " + err.Error(), isErr: true}
		}
		return nil
	}
}

// View renders the TUI.
func (m Model) View() string {
	var top strings.Builder

	top.WriteString(titleBar(m.width))
	top.WriteString("\n\n")
	top.WriteString(renderButtons(sampleButtons, m.focus, m.mode == ModeScreen))
	top.WriteString("\n")
	top.WriteString(m.statusLine())

	if m.mode == ModeCompose {
		top.WriteString("\n\n")
		top.WriteString(m.viewCompose())
	}

	var bottom []string
	if m.showing {
		bottom = append(bottom, renderCard(m.current, m.cardWidth()))
	}
	if m.cfg.TUI.ShowHelp {
		if m.mode == ModeCompose {
			bottom = append(bottom, m.help.ShortHelpView(m.keys.composeHelp()))
		} else {
			bottom = append(bottom, m.help.View(m.keys))
		}
	}

	body := top.String()
	if len(bottom) == 0 {
		return body
	}
	footer := strings.Join(bottom, "\n")

	// Pin the snackbar host area to the bottom of the screen
	gap := m.height - lipgloss.Height(body) - lipgloss.Height(footer)
	if gap < 1 {
		gap = 1
	}
	return body + strings.Repeat("\n", gap) + footer
}

// statusLine shows when the last snackbar appeared and how many are queued.
func (m Model) statusLine() string {
	var parts []string
	if m.lastShown.IsZero() {
		parts = append(parts, "No snackbar shown yet")
	} else {
		parts = append(parts, "Last shown "+humanize.RelTime(m.lastShown, m.now(), "ago", "from now"))
	}
	if m.waiting > 0 {
		parts = append(parts, humanize.Comma(int64(m.waiting))+" waiting")
	}
	if m.statusMsg != "" {
		parts = append(parts, m.statusMsg)
	}

	style := statusStyle
	if m.statusErr {
		style = statusErrStyle
	}
	return style.Render(strings.Join(parts, " · "))
}

func (m Model) viewCompose() string {
	label := labelStyle.Render("Message") + "  " + severityBadge(m.composeSeverity)
	return label + "\n" + m.input.View()
}

// cardWidth is the configured card width, or the terminal width minus margins.
func (m Model) cardWidth() int {
	if m.cfg.TUI.CardWidth > 0 {
		return m.cfg.TUI.CardWidth
	}
	if m.width > cardChrome {
		return m.width - cardChrome
	}
	return 0
}

// Mode returns the current UI mode.
func (m Model) Mode() Mode {
	return m.mode
}

// Focus returns the index of the focused button.
func (m Model) Focus() int {
	return m.focus
}
