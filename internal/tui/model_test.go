package tui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/snackbars/internal/config"
	"github.com/jmylchreest/snackbars/internal/model"
	"github.com/jmylchreest/snackbars/internal/snackbar"
	"github.com/jmylchreest/snackbars/internal/theme"
)

type triggered struct {
	message  string
	severity model.Severity
}

type recordingTrigger struct {
	calls []triggered
}

func (r *recordingTrigger) Trigger(message string, severity model.Severity) model.Event {
	r.calls = append(r.calls, triggered{message: message, severity: severity})
	return model.NewEvent(message, severity)
}

type fakeHost struct {
	current   model.Request
	showing   bool
	pending   int
	dismissed int
	changes   chan snackbar.Change
}

func newFakeHost() *fakeHost {
	return &fakeHost{changes: make(chan snackbar.Change, 4)}
}

func (h *fakeHost) Current() (model.Request, bool) { return h.current, h.showing }
func (h *fakeHost) Pending() int                   { return h.pending }
func (h *fakeHost) Subscribe() <-chan snackbar.Change {
	return h.changes
}

func (h *fakeHost) Dismiss() bool {
	if !h.showing {
		return false
	}
	h.dismissed++
	h.showing = false
	return true
}

type recordingSounds struct {
	played   []model.Severity
	err      error
	disabled bool
}

func (s *recordingSounds) Enabled() bool { return !s.disabled }

func (s *recordingSounds) PlayFor(sev model.Severity) error {
	s.played = append(s.played, sev)
	return s.err
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func newTestModel() (Model, *recordingTrigger, *fakeHost) {
	trigger := &recordingTrigger{}
	host := newFakeHost()
	m := New(Options{Trigger: trigger, Host: host})
	m, _ = update(m, tea.WindowSizeMsg{Width: 80, Height: 24})
	return m, trigger, host
}

func TestShortcutsTriggerSampleSnackbars(t *testing.T) {
	m, trigger, _ := newTestModel()

	m, _ = update(m, runes("1"))
	m, _ = update(m, runes("2"))

	require.Len(t, trigger.calls, 2)
	assert.Equal(t, triggered{"This is a snackbar with the severity level INFO", model.SeverityInfo}, trigger.calls[0])
	assert.Equal(t, triggered{"This is a snackbar with the severity level ERROR", model.SeverityError}, trigger.calls[1])
	assert.Equal(t, 1, m.Focus())
}

func TestPressingTwiceTriggersTwice(t *testing.T) {
	m, trigger, _ := newTestModel()

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyEnter})
	_, _ = update(m, tea.KeyMsg{Type: tea.KeyEnter})

	require.Len(t, trigger.calls, 2)
	assert.Equal(t, trigger.calls[0], trigger.calls[1])
}

func TestFocusMovesBetweenButtons(t *testing.T) {
	m, trigger, _ := newTestModel()
	assert.Equal(t, 0, m.Focus())

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 1, m.Focus())

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Len(t, trigger.calls, 1)
	assert.Equal(t, model.SeverityError, trigger.calls[0].severity)

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 0, m.Focus(), "focus wraps around")

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, 1, m.Focus())

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.Focus())
}

func TestComposeCustomMessage(t *testing.T) {
	m, trigger, _ := newTestModel()

	m, _ = update(m, runes("m"))
	require.Equal(t, ModeCompose, m.Mode())

	// Shortcuts type into the input while composing
	m, _ = update(m, runes("Build"))
	m, _ = update(m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	m, _ = update(m, runes("failed 2"))
	assert.Empty(t, trigger.calls)

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyCtrlE})
	assert.Contains(t, m.View(), "error")

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, ModeScreen, m.Mode())
	require.Len(t, trigger.calls, 1)
	assert.Equal(t, triggered{"Build failed 2", model.SeverityError}, trigger.calls[0])
}

func TestComposeAllowsEmptyMessage(t *testing.T) {
	m, trigger, _ := newTestModel()

	m, _ = update(m, runes("m"))
	_, _ = update(m, tea.KeyMsg{Type: tea.KeyEnter})

	require.Len(t, trigger.calls, 1)
	assert.Equal(t, triggered{"", model.SeverityInfo}, trigger.calls[0])
}

func TestComposeCancel(t *testing.T) {
	m, trigger, _ := newTestModel()

	m, _ = update(m, runes("m"))
	m, _ = update(m, runes("never mind"))
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, ModeScreen, m.Mode())
	assert.Empty(t, trigger.calls)
}

func TestDismiss(t *testing.T) {
	m, _, host := newTestModel()

	_, cmd := update(m, runes("x"))
	require.NotNil(t, cmd)
	assert.Equal(t, statusMsg{text: "Nothing to dismiss"}, cmd())

	host.showing = true
	_, cmd = update(m, runes("x"))
	assert.Nil(t, cmd)
	assert.Equal(t, 1, host.dismissed)
}

func TestQuit(t *testing.T) {
	m, _, _ := newTestModel()

	_, cmd := update(m, runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())

	_, cmd = update(m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())

	// q is just a letter while composing
	m, _ = update(m, runes("m"))
	m, _ = update(m, runes("q"))
	assert.Equal(t, ModeCompose, m.Mode())
}

func TestView_Screen(t *testing.T) {
	m, _, _ := newTestModel()
	view := m.View()

	assert.Contains(t, view, Title)
	assert.Contains(t, view, "Show Snackbar 1")
	assert.Contains(t, view, "Show Snackbar 2")
	assert.Contains(t, view, "No snackbar shown yet")
	assert.Contains(t, view, "quit")
}

func TestView_RendersVisibleSnackbar(t *testing.T) {
	m, _, host := newTestModel()
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	now := start
	m.now = func() time.Time { return now }

	req := model.Request{Message: "Build failed", Severity: model.SeverityError}
	host.current, host.showing, host.pending = req, true, 2

	m, cmd := update(m, hostChangeMsg{change: snackbar.Change{Request: req, Status: snackbar.StatusActive}})
	assert.NotNil(t, cmd)

	view := m.View()
	assert.Contains(t, view, "Build failed")
	assert.Contains(t, view, theme.WarningIcon)
	assert.Contains(t, view, "╭")
	assert.Contains(t, view, "Last shown now")
	assert.Contains(t, view, "2 waiting")

	now = start.Add(3 * time.Second)
	assert.Contains(t, m.View(), "Last shown 3 seconds ago")

	// Expired: card goes away
	host.showing = false
	m, _ = update(m, hostChangeMsg{change: snackbar.Change{Request: req, Status: snackbar.StatusExpired}})
	assert.NotContains(t, m.View(), "Build failed")
}

func TestHostClosed(t *testing.T) {
	m, _, host := newTestModel()
	host.current, host.showing = model.Request{Message: "bye"}, true
	m, _ = update(m, hostChangeMsg{change: snackbar.Change{Status: snackbar.StatusActive}})
	require.Contains(t, m.View(), "bye")

	m, _ = update(m, hostClosedMsg{})
	assert.NotContains(t, m.View(), "bye")
	assert.Nil(t, m.waitForChange())
}

func TestWaitForChange_RealHost(t *testing.T) {
	host := snackbar.NewHostState(nil, nil)
	m := New(Options{Host: host})

	go func() {
		_, _ = host.Enqueue(t.Context(), model.Request{Message: "hello"})
	}()

	msg, ok := m.waitForChange().(hostChangeMsg)
	require.True(t, ok)
	assert.Equal(t, snackbar.StatusPending, msg.change.Status)
	assert.Equal(t, "hello", msg.change.Request.Message)

	require.NoError(t, host.Close())

	// Drain whatever was published before the close
	for {
		next := m.waitForChange()
		if _, closed := next.(hostClosedMsg); closed {
			break
		}
		require.IsType(t, hostChangeMsg{}, next)
	}
}

func TestPlayCue(t *testing.T) {
	sounds := &recordingSounds{}
	m := New(Options{Sounds: sounds})

	cmd := m.playCue(model.SeverityError)
	require.NotNil(t, cmd)
	assert.Nil(t, cmd())
	assert.Equal(t, []model.Severity{model.SeverityError}, sounds.played)

	sounds.err = errors.New("no speaker")
	msg, ok := cmd().(statusMsg)
	require.True(t, ok)
	assert.True(t, msg.isErr)
	assert.Contains(t, msg.text, "no speaker")

	assert.Nil(t, New(Options{}).playCue(model.SeverityInfo))

	sounds.disabled = true
	assert.Nil(t, m.playCue(model.SeverityError), "no cue when sounds are switched off")
}

func TestView_WaitingCountFromPipeline(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Durations.Short = config.Duration(time.Hour)
	host := snackbar.NewHostState(cfg, nil)
	controller := snackbar.NewController(host, nil)
	controller.Start(t.Context())
	t.Cleanup(func() {
		controller.Stop()
		_ = host.Close()
	})

	m := New(Options{Config: cfg, Trigger: controller, Host: host})
	m, _ = update(m, tea.WindowSizeMsg{Width: 120, Height: 30})
	m, _ = update(m, runes("1"))
	m, _ = update(m, runes("2"))
	m, _ = update(m, runes("1"))

	// Pressing never waits for the visible snackbar, so the host holds the backlog
	require.Eventually(t, func() bool { return host.Pending() == 2 }, time.Second, time.Millisecond)

	m, _ = update(m, hostChangeMsg{change: snackbar.Change{Status: snackbar.StatusPending}})
	view := m.View()
	assert.Contains(t, view, "2 waiting")
	assert.Contains(t, view, "This is a snackbar with the severity level INFO")
}

func TestConfigChanged(t *testing.T) {
	m, _, _ := newTestModel()
	require.Contains(t, m.View(), "quit")

	cfg := config.DefaultConfig()
	cfg.TUI.ShowHelp = false
	m, _ = update(m, ConfigChangedMsg{Config: cfg})
	assert.NotContains(t, m.View(), "quit")

	m, _ = update(m, ConfigChangedMsg{})
	assert.False(t, m.cfg.TUI.ShowHelp, "nil config is ignored")
}

func TestRenderCard(t *testing.T) {
	info := renderCard(model.Request{Message: "Saved", Severity: model.SeverityInfo}, 0)
	assert.Contains(t, info, "Saved")
	assert.Contains(t, info, theme.InfoIcon)
	assert.NotContains(t, info, theme.WarningIcon)

	withButtons := renderCard(model.Request{Message: "Deleted", ActionLabel: "Undo", WithDismissAction: true}, 0)
	assert.Contains(t, withButtons, "Undo")
	assert.Contains(t, withButtons, "✕")

	sized := renderCard(model.Request{Message: "Saved"}, 40)
	assert.Equal(t, 40+cardChrome, lipgloss.Width(sized))
}
