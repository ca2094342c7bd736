package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/chaos-economy/internal/economy"
)

// PeriodTableModel shows the public columns of the period table.
// The minimum spend is never listed, nor the CPI and inflation it compounds from.
type PeriodTableModel struct {
	source     *economy.Table
	table      table.Model
	keyMapper  *KeyMapper
	theme      Theme
	width      int
	height     int
	quitOnBack bool
	quitting   bool
	goingBack  bool
}

// NewPeriodTableModel creates a period table screen.
func NewPeriodTableModel(source *economy.Table, width, height int) PeriodTableModel {
	m := PeriodTableModel{
		source:    source,
		keyMapper: NewKeyMapper(),
		theme:     DefaultTheme(),
		width:     width,
		height:    height,
	}
	m.table = m.createTable()
	return m
}

func (m *PeriodTableModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Period", Width: 7},
		{Title: "Wage", Width: 10},
		{Title: "GDP index", Width: 10},
		{Title: "Growth", Width: 8},
	}

	records := m.source.Records()
	rows := make([]table.Row, len(records))
	for i, r := range records {
		rows[i] = table.Row{
			fmt.Sprintf("%d", r.Period),
			fmt.Sprintf("%.2f", r.Wage),
			fmt.Sprintf("%.2f", r.GDPIndex),
			fmt.Sprintf("%+.2f%%", r.GrowthPct),
		}
	}

	height := m.height - 8
	if height < 3 {
		height = 3
	}
	if height > len(rows) {
		height = len(rows)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
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

// Init initializes the model.
func (m PeriodTableModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the period table.
func (m PeriodTableModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.keyMapper.MapKeyToMenuAction(msg) {
		case MenuActionQuit:
			m.quitting = true
			return m, tea.Quit
		case MenuActionBack:
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
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the period table.
func (m PeriodTableModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(m.theme.Title.Render("PERIOD TABLE"), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(m.theme.Subtitle.Render("version "+m.source.Version()), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.theme.Panel.Render(m.table.View()), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(m.theme.Help.Render("up/down: scroll  |  esc/b: back  |  q: quit"), m.width))
	return b.String()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m PeriodTableModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m PeriodTableModel) IsQuitting() bool {
	return m.quitting
}

// RunPeriodTable shows the period table in its own program.
// Returns true if user wants to go back to menu.
func RunPeriodTable(source *economy.Table, width, height int) (goBack bool, err error) {
	model := NewPeriodTableModel(source, width, height)
	model.quitOnBack = true

	p := tea.NewProgram(model, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(PeriodTableModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
