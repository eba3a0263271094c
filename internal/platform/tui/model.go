package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/autostack/internal/core"
	"github.com/vovakirdan/autostack/internal/round"
)

const (
	feedSize = 6                      // event lines kept for the panel
	maxFrame = 250 * time.Millisecond // longest wall-clock step fed to the engine
)

// eventFeed collects engine events as short text lines. It is shared by
// pointer because Bubble Tea copies the model on every update.
type eventFeed struct {
	lines []string
}

func (f *eventFeed) OnEvent(ev round.Event) {
	var line string
	switch ev := ev.(type) {
	case round.RoundStartedEvent:
		line = fmt.Sprintf("#%d bet %.2f", ev.Round, ev.Bet)
	case round.LinesClearedEvent:
		line = fmt.Sprintf("#%d +%d lines +%.2f", ev.Round, len(ev.Rows), ev.Payout)
	case round.RoundEndedEvent:
		res := ev.Result
		verdict := "lost"
		if res.Won {
			verdict = "won"
		}
		line = fmt.Sprintf("#%d %s %d lines %.2f", res.Round, verdict, res.Lines, res.Payout)
	default:
		return
	}
	f.lines = append(f.lines, line)
	if len(f.lines) > feedSize {
		f.lines = f.lines[len(f.lines)-feedSize:]
	}
}

// Model is the Bubble Tea model that animates an engine.
type Model struct {
	engine     *round.Engine
	screen     *core.Screen
	config     core.RuntimeConfig
	controls   core.Controls
	inputFrame core.InputFrame
	keys       *KeyMapper
	help       help.Model
	feed       *eventFeed
	status     string
	lastTick   time.Time
	quitting   bool
}

// NewModel creates a viewer for engine. The engine keeps its own balance and
// seed; cfg only sizes the screen and sets the tick rate.
func NewModel(engine *round.Engine, cfg core.RuntimeConfig) Model {
	feed := &eventFeed{}
	engine.Subscribe(feed)

	controls := core.DefaultControls()
	controls.Debug = cfg.Debug
	engine.SetDebug(cfg.Debug)

	h := help.New()
	h.ShowAll = false
	h.Width = cfg.ScreenW

	return Model{
		engine:     engine,
		screen:     core.NewScreen(cfg.ScreenW, screenHeight(cfg.ScreenH)),
		config:     cfg,
		controls:   controls,
		inputFrame: core.NewInputFrame(),
		keys:       NewKeyMapper(),
		help:       h,
		feed:       feed,
		status:     "press space to start a round",
	}
}

// screenHeight leaves two terminal rows for the status and help lines.
func screenHeight(h int) int {
	return max(h-2, core.BoardScreenH)
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickInterval())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+s":
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Keys().Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleResize processes window resize events. The engine is untouched.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, screenHeight(msg.Height))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick applies this frame's actions, then advances the engine by the
// wall-clock time since the previous tick.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if status := m.controls.Apply(m.engine, m.inputFrame); status != "" {
		m.status = status
	}
	m.inputFrame.Clear()

	dt := m.config.TickInterval()
	if !m.lastTick.IsZero() {
		dt = min(now.Sub(m.lastTick), maxFrame)
	}
	m.lastTick = now
	m.engine.Update(dt)

	return m, tickCmd(m.config.TickInterval())
}

// draw renders the engine into the screen buffer.
func (m *Model) draw() {
	m.screen.Clear()
	snap := m.engine.Snapshot()

	core.DrawBoard(m.screen, snap, 1, 0)

	px := 1 + core.BoardScreenW + 2
	core.DrawPanel(m.screen, snap, px, 1, m.controls.Debug)

	y := 1 + len(core.PanelLines(snap, m.controls.Debug)) + 1
	lines := m.feed.lines
	if room := core.Clamp(core.BoardScreenH-1-y, 0, feedSize); len(lines) > room {
		lines = lines[len(lines)-room:]
	}
	for i, line := range lines {
		m.screen.DrawTextColor(px, y+i, line, core.ColorGray)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.draw()

	dir := filepath.Join(os.Getenv("HOME"), ".autostack", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("round%d_%s.txt", m.engine.Snapshot().Round, timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, the viewer continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
	m.status = "screenshot saved to " + path
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.draw()

	statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("229"))
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	var b strings.Builder
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(" " + m.status))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(" " + m.help.View(m.keys.Keys())))
	return b.String()
}

// Run starts the Bubble Tea program for engine.
func Run(engine *round.Engine, cfg core.RuntimeConfig) error {
	model := NewModel(engine, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
