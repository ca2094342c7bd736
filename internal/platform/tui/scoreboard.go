package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/chaos-economy/internal/storage"
)

// maxResults is the number of results loaded into the board.
const maxResults = 100

// ResultsSource provides recorded games. *storage.Store satisfies it.
type ResultsSource interface {
	TopResults(limit int) ([]storage.ResultEntry, error)
	GetStats() (*storage.Stats, error)
}

// ResultsKeyMap defines the key bindings for the results board.
type ResultsKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ResultsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ResultsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Back, k.Quit},
	}
}

// DefaultResultsKeyMap returns default key bindings.
func DefaultResultsKeyMap() ResultsKeyMap {
	return ResultsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
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

// ResultsModel is the Bubble Tea model for the results board.
type ResultsModel struct {
	source     ResultsSource
	results    []storage.ResultEntry
	stats      *storage.Stats
	loadErr    error
	table      table.Model
	help       help.Model
	keys       ResultsKeyMap
	theme      Theme
	width      int
	height     int
	quitOnBack bool
	quitting   bool
	goingBack  bool
}

// NewResultsModel creates a new results board. A nil source shows an empty board.
func NewResultsModel(source ResultsSource, width, height int) ResultsModel {
	h := help.New()
	h.ShowAll = false

	m := ResultsModel{
		source: source,
		keys:   DefaultResultsKeyMap(),
		help:   h,
		theme:  DefaultTheme(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates a new table sized to the screen.
func (m *ResultsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Period", Width: 8},
		{Title: "Profile", Width: 12},
		{Title: "Survived", Width: 9},
		{Title: "Date", Width: 14},
	}

	height := m.height - 10 // Title, stats, help and borders
	if height < 3 {
		height = 3
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
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

// load reads results and stats from the source.
func (m *ResultsModel) load() {
	m.results, m.stats, m.loadErr = nil, nil, nil
	if m.source != nil {
		if m.results, m.loadErr = m.source.TopResults(maxResults); m.loadErr == nil {
			m.stats, m.loadErr = m.source.GetStats()
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with current results.
func (m *ResultsModel) updateTableRows() {
	rows := make([]table.Row, len(m.results))
	for i, r := range m.results {
		survived := "no"
		if r.Survived {
			survived = "yes"
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", r.FinalPeriod),
			r.Outcome,
			survived,
			r.CreatedAt.Local().Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the results model.
func (m ResultsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the results board.
func (m ResultsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			if m.quitOnBack {
				return m, tea.Quit
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the results board.
func (m ResultsModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.Title.Render("RESULTS"), m.width))
	b.WriteString("\n\n")

	if line := m.statsLine(); line != "" {
		b.WriteString(centerText(m.theme.Label.Render(line), m.width))
		b.WriteString("\n\n")
	}

	b.WriteString(centerText(m.theme.Panel.Render(m.renderTableContent()), m.width))

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.Help.Render(m.help.View(m.keys)), m.width))

	return b.String()
}

// statsLine summarizes every recorded game.
func (m ResultsModel) statsLine() string {
	if m.stats == nil || m.stats.Games == 0 {
		return ""
	}
	return fmt.Sprintf("Games: %d  |  Best: period %d  |  Average: %.1f  |  Survivors: %d",
		m.stats.Games, m.stats.BestPeriod, m.stats.AvgPeriod, m.stats.Survivors)
}

// renderTableContent renders the table or an empty message.
func (m ResultsModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.loadErr != nil:
		return emptyStyle.Render("Results are unavailable:\n" + m.loadErr.Error())
	case len(m.results) == 0:
		return emptyStyle.Render("No games recorded yet.\nPlay one to set the bar!")
	}

	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ResultsModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ResultsModel) IsQuitting() bool {
	return m.quitting
}

// RunResults runs the results board.
// Returns true if user wants to go back to menu, false if quitting.
func RunResults(source ResultsSource, width, height int) (goBack bool, err error) {
	model := NewResultsModel(source, width, height)
	model.quitOnBack = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ResultsModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
