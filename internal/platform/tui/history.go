package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/autostack/internal/storage"
)

const maxBatches = 100 // batches loaded into the history view

// HistoryKeyMap defines the key bindings for the history browser.
type HistoryKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.Back, k.Quit},
	}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "show rounds"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel browses stored batch runs and the rounds of one batch.
type HistoryModel struct {
	store    *storage.Store
	batches  []storage.BatchEntry
	rounds   []storage.RoundEntry
	selected *storage.BatchEntry // nil while listing batches
	totals   storage.Totals
	table    table.Model
	help     help.Model
	keys     HistoryKeyMap
	width    int
	height   int
	err      error
	quitting bool
}

// NewHistoryModel creates a history browser over store.
func NewHistoryModel(store *storage.Store, width, height int) HistoryModel {
	h := help.New()
	h.ShowAll = false

	m := HistoryModel{
		store:  store,
		keys:   DefaultHistoryKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.loadBatches()
	return m
}

func batchColumns() []table.Column {
	return []table.Column{
		{Title: "ID", Width: 8},
		{Title: "Date", Width: 12},
		{Title: "Seed", Width: 10},
		{Title: "P", Width: 5},
		{Title: "Rounds", Width: 7},
		{Title: "Win%", Width: 6},
		{Title: "RTP", Width: 7},
		{Title: "Balance", Width: 10},
	}
}

func roundColumns() []table.Column {
	return []table.Column{
		{Title: "#", Width: 5},
		{Title: "Outcome", Width: 9},
		{Title: "Lean", Width: 5},
		{Title: "Lines", Width: 6},
		{Title: "Blocks", Width: 7},
		{Title: "Bet", Width: 8},
		{Title: "Payout", Width: 9},
		{Title: "Balance", Width: 10},
	}
}

// createTable creates a table with the given columns and rows.
func (m *HistoryModel) createTable(columns []table.Column, rows []table.Row) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(m.height-9, 3)), // Leave room for header, totals, help, and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadBatches lists the most recent batches.
func (m *HistoryModel) loadBatches() {
	m.selected = nil
	m.rounds = nil
	m.err = nil

	if m.store == nil {
		m.batches = nil
	} else if batches, err := m.store.RecentBatches(maxBatches); err != nil {
		m.err = err
		m.batches = nil
	} else {
		m.batches = batches
	}
	if m.store != nil {
		if totals, err := m.store.AllTotals(); err == nil {
			m.totals = totals
		}
	}

	rows := make([]table.Row, len(m.batches))
	for i, b := range m.batches {
		rows[i] = table.Row{
			shortID(b.ID),
			b.CreatedAt.Local().Format("Jan 02 15:04"),
			fmt.Sprintf("%d", b.Seed),
			fmt.Sprintf("%.2f", b.Probability),
			fmt.Sprintf("%d", b.Played),
			fmt.Sprintf("%.1f", b.WinRate()*100),
			b.RTP.StringFixed(3),
			b.FinalBalance.StringFixed(2),
		}
	}
	m.table = m.createTable(batchColumns(), rows)
}

// loadRounds shows the rounds of the batch under the cursor.
func (m *HistoryModel) loadRounds() {
	i := m.table.Cursor()
	if m.store == nil || i < 0 || i >= len(m.batches) {
		return
	}
	b := m.batches[i]
	rounds, err := m.store.BatchRounds(b.ID)
	if err != nil {
		m.err = err
		return
	}
	m.selected = &b
	m.rounds = rounds

	rows := make([]table.Row, len(rounds))
	for i, r := range rounds {
		lean := "lose"
		if r.Winning {
			lean = "win"
		}
		rows[i] = table.Row{
			fmt.Sprintf("%d", r.Round),
			r.Outcome,
			lean,
			fmt.Sprintf("%d", r.Lines),
			fmt.Sprintf("%d", r.Blocks),
			r.Bet.StringFixed(2),
			r.Payout.StringFixed(2),
			r.Balance.StringFixed(2),
		}
	}
	m.table = m.createTable(roundColumns(), rows)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history browser.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			if m.selected == nil {
				m.quitting = true
				return m, tea.Quit
			}
			m.loadBatches()
			return m, nil

		case key.Matches(msg, m.keys.Select):
			if m.selected == nil {
				m.loadRounds()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(max(m.height-9, 3))
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history browser.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))

	title := "BATCH HISTORY"
	if m.selected != nil {
		title = fmt.Sprintf("BATCH %s  seed %d  p %.2f", shortID(m.selected.ID), m.selected.Seed, m.selected.Probability)
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))
	b.WriteString("\n")

	infoStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	b.WriteString(infoStyle.Render(m.summaryLine()))
	b.WriteString("\n")

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// summaryLine describes the selected batch or the lifetime totals.
func (m HistoryModel) summaryLine() string {
	if m.err != nil {
		return "error: " + m.err.Error()
	}
	if s := m.selected; s != nil {
		return fmt.Sprintf("stop %s  bet %s  payout %s  rtp %s  designated %d/%d",
			s.StopReason, s.TotalBet.StringFixed(2), s.TotalPayout.StringFixed(2),
			s.RTP.StringFixed(3), s.Designated, s.Played)
	}
	t := m.totals
	return fmt.Sprintf("%d batches  %d rounds  bet %s  payout %s  rtp %s",
		t.Batches, t.Rounds, t.TotalBet.StringFixed(2), t.TotalPayout.StringFixed(2), t.RTP().StringFixed(3))
}

// renderTableContent renders the table or empty message.
func (m HistoryModel) renderTableContent() string {
	if m.selected == nil && len(m.batches) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No batches recorded yet.\nRun `autostack batch --save` to add one.")
	}
	return m.table.View()
}

// centerText pads text so it sits in the middle of width columns.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// RunHistory runs the history browser.
func RunHistory(store *storage.Store, width, height int) error {
	p := tea.NewProgram(
		NewHistoryModel(store, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
