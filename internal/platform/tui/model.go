package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/chaos-economy/internal/core"
	"github.com/vovakirdan/chaos-economy/internal/economy"
	"github.com/vovakirdan/chaos-economy/internal/session"
)

// Game screen layout constants
const (
	historyMaxRows = 8  // Visible history rows
	inputCharLimit = 9  // Longest consumption that can be typed
	panelMinWidth  = 44 // Width of the indicators panel
)

// GameModel is the Bubble Tea model for playing one session.
type GameModel struct {
	ctrl       *session.Controller
	theme      Theme
	input      textinput.Model
	history    table.Model
	help       help.Model
	keys       GameKeyMap
	keyMapper  *KeyMapper
	width      int
	height     int
	notice     string // Feedback for rejected input
	quitOnBack bool   // Standalone program: esc exits instead of returning to a parent
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a game screen driving the given controller.
func NewGameModel(ctrl *session.Controller, cfg core.RuntimeConfig) GameModel {
	ti := textinput.New()
	ti.Prompt = "Spend this period: $ "
	ti.Placeholder = "0"
	ti.CharLimit = inputCharLimit
	ti.Width = inputCharLimit + 1
	ti.Focus()

	h := help.New()
	h.ShowAll = false

	m := GameModel{
		ctrl:      ctrl,
		theme:     DefaultTheme(),
		input:     ti,
		help:      h,
		keys:      DefaultGameKeyMap(),
		keyMapper: NewKeyMapper(),
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
	}
	m.history = newHistoryTable()
	m.refreshHistory()
	return m
}

// newHistoryTable creates the table of played rounds.
func newHistoryTable() table.Model {
	columns := []table.Column{
		{Title: "Period", Width: 7},
		{Title: "Spent", Width: 12},
		{Title: "Savings", Width: 12},
		{Title: "Bank", Width: 7},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(false),
		table.WithHeight(historyMaxRows),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = lipgloss.NewStyle()
	t.SetStyles(s)

	return t
}

// refreshHistory rebuilds the history rows, newest first.
func (m *GameModel) refreshHistory() {
	snap := m.ctrl.Snapshot()
	rows := make([]table.Row, 0, len(snap.History))
	for i := len(snap.History) - 1; i >= 0; i-- {
		h := snap.History[i]
		rows = append(rows, table.Row{
			strconv.Itoa(h.Period),
			formatMoney(h.Consumption),
			formatMoney(h.ResultingSavings),
			h.BankStatus.String(),
		})
	}
	m.history.SetRows(rows)
	m.history.GotoTop()
}

// Init initializes the game screen.
func (m GameModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	over := m.ctrl.Phase().Terminal()

	switch action {
	case core.ActionBack:
		m.backToMenu = true
		if m.quitOnBack {
			return m, tea.Quit
		}
		return m, nil

	case core.ActionRestart:
		if over || m.input.Value() == "" {
			m.ctrl.Restart()
			m.input.Reset()
			m.notice = ""
			m.refreshHistory()
		}
		return m, nil

	case core.ActionSubmit:
		return m.submit(), nil
	}

	if over {
		return m, nil
	}

	// Only digits and editing keys reach the input.
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyDelete, tea.KeyLeft, tea.KeyRight, tea.KeyHome, tea.KeyEnd:
	default:
		if !isDigits(msg) {
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.notice = ""
	return m, cmd
}

// submit plays the typed consumption.
func (m GameModel) submit() GameModel {
	if m.ctrl.Phase().Terminal() {
		m.notice = "The game is over. Press r to play again."
		return m
	}

	v, err := session.ParseConsumption(m.input.Value())
	if err != nil {
		m.notice = "Type a whole, non-negative amount."
		return m
	}

	if _, err := m.ctrl.Submit(v); err != nil {
		m.notice = err.Error()
		return m
	}

	m.notice = ""
	m.input.Reset()
	m.refreshHistory()
	return m
}

// View renders the game screen.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	snap := m.ctrl.Snapshot()

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(m.theme.Title.Render("E C O N O M Í A   C A Ó T I C A"), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(m.theme.Subtitle.Render("Survive the crisis one period at a time"), m.width))
	b.WriteString("\n\n")

	if snap.Phase.Terminal() {
		b.WriteString(centerText(m.renderCard(snap), m.width))
	} else {
		b.WriteString(m.renderPlaying(snap))
	}

	b.WriteString("\n\n")
	b.WriteString(centerText(m.theme.Help.Render(m.help.View(m.keys)), m.width))

	return b.String()
}

// renderPlaying renders indicators, input, feedback and history.
func (m GameModel) renderPlaying(snap session.Snapshot) string {
	var left strings.Builder

	if ind := snap.Indicators; ind != nil {
		left.WriteString(m.indicatorLine("Period", fmt.Sprintf("%d / %d", ind.Period, m.ctrl.Table().Len())))
		left.WriteString(m.indicatorLine("Wage", formatMoney(ind.Wage)))
		left.WriteString(m.indicatorLine("Savings", formatMoney(ind.Savings)))
		left.WriteString(m.indicatorLine("Expected inflation",
			fmt.Sprintf("%.2f%% to %.2f%%", ind.InflationLow, ind.InflationHigh)))
		left.WriteString(m.indicatorLine("Last growth", m.signed(ind.PriorGrowth, "%+.2f%%")))
		left.WriteString(m.indicatorLine("Banks", m.bankBadge(ind.BankStatus)))
	}

	panel := m.theme.Panel.Width(panelMinWidth).Render(strings.TrimRight(left.String(), "\n"))

	var right strings.Builder
	right.WriteString(m.input.View())
	right.WriteString("\n")
	if m.notice != "" {
		right.WriteString(m.theme.Error.Render(m.notice))
	}
	right.WriteString("\n\n")
	right.WriteString(m.renderBreakdown(snap))

	top := lipgloss.JoinHorizontal(lipgloss.Top, panel, "   ", right.String())

	var b strings.Builder
	b.WriteString(centerText(top, m.width))
	if len(snap.History) > 0 {
		b.WriteString("\n\n")
		b.WriteString(centerText(m.theme.Panel.Render(m.history.View()), m.width))
	}
	return b.String()
}

// renderBreakdown explains what the last round did to savings.
func (m GameModel) renderBreakdown(snap session.Snapshot) string {
	last := snap.LastRound
	if last == nil {
		return m.theme.Muted.Render("Spend too little and you pay the gap\nfrom savings, plus a 10% penalty.")
	}

	var lines []string
	if last.Withdrawal > 0 {
		lines = append(lines,
			m.theme.Loss.Render(fmt.Sprintf("Fell short by %s", formatMoney(last.Shortfall))),
			m.theme.Loss.Render(fmt.Sprintf("Penalty %s, withdrew %s", formatMoney(last.Penalty), formatMoney(last.Withdrawal))),
		)
	} else {
		lines = append(lines, m.signed(last.Surplus, "Left over from wage: %s"))
	}
	if last.Haircut > 0 {
		lines = append(lines, m.theme.Loss.Render(fmt.Sprintf("Bank closure cost %s", formatMoney(last.Haircut))))
	}
	return m.theme.Label.Render("Last period") + "\n" + strings.Join(lines, "\n")
}

// renderCard renders the end-of-game card.
func (m GameModel) renderCard(snap session.Snapshot) string {
	report := snap.Report
	if report == nil {
		return ""
	}

	var lines []string
	style := m.theme.LossCard
	if snap.Phase == session.PhaseWon {
		style = m.theme.WinCard
		lines = append(lines,
			m.theme.Title.Render("You made it!"),
			"",
			fmt.Sprintf("You survived all %d periods", report.FinalPeriod),
			fmt.Sprintf("with %s saved.", formatMoney(snap.Savings)),
		)
	} else {
		lines = append(lines,
			m.theme.Loss.Bold(true).Render("You lost!"),
			"",
			fmt.Sprintf("You survived until period %d.", report.FinalPeriod),
		)
		if last := snap.LastRound; last != nil {
			lines = append(lines, m.theme.Muted.Render(lossReason(last.Reason)))
		}
	}

	lines = append(lines,
		"",
		fmt.Sprintf("Profile: %s [%s]", m.theme.Value.Render(report.Category.String()), report.Category.Asset()),
		m.theme.Muted.Render("Spending: "+formatConsumptions(report.Consumptions)),
		"",
		"Press r to play again or esc for the menu.",
	)

	return style.Render(m.theme.CardText.Render(strings.Join(lines, "\n")))
}

func (m GameModel) indicatorLine(label, value string) string {
	return fmt.Sprintf("%s %s\n", m.theme.Label.Width(20).Render(label), m.theme.Value.Render(value))
}

func (m GameModel) bankBadge(status economy.BankStatus) string {
	if status == economy.BankClosed {
		return m.theme.BankClosed.Render("CLOSED")
	}
	return m.theme.BankOpen.Render("OPEN")
}

// signed renders v with format, colored by its sign. Values are money when
// the format has %s.
func (m GameModel) signed(v float64, format string) string {
	var text string
	if strings.Contains(format, "%s") {
		text = fmt.Sprintf(format, formatMoney(v))
	} else {
		text = fmt.Sprintf(format, v)
	}
	switch {
	case v < 0:
		return m.theme.Loss.Render(text)
	case v > 0:
		return m.theme.Gain.Render(text)
	}
	return text
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

func lossReason(r economy.Reason) string {
	switch r {
	case economy.ReasonInsolvent:
		return "Wage plus savings could not cover the minimum spend."
	case economy.ReasonWithdrawalExceedsSavings:
		return "Savings could not cover the shortfall and its penalty."
	}
	return ""
}

// formatMoney renders an amount with two decimals and a leading sign.
func formatMoney(v float64) string {
	if v < 0 {
		return fmt.Sprintf("-$%.2f", -v)
	}
	return fmt.Sprintf("$%.2f", v)
}

func formatConsumptions(values []float64) string {
	if len(values) == 0 {
		return "nothing"
	}
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strings.Join(parts, ", ")
}

// RunGame plays a single session in its own program.
// Returns true if the user asked to go back to a menu.
func RunGame(ctrl *session.Controller, cfg core.RuntimeConfig) (goBack bool, err error) {
	model := NewGameModel(ctrl, cfg)
	model.quitOnBack = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(GameModel)
	if !ok {
		return false, nil
	}

	return m.BackToMenu(), nil
}
