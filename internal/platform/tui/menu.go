package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/chaos-economy/internal/core"
)

// MenuChoice identifies a main menu entry.
type MenuChoice int

const (
	ChoiceNone MenuChoice = iota
	ChoiceNewGame
	ChoiceResults
	ChoicePeriodTable
	ChoiceQuit
)

// MenuItem represents a selectable entry in the menu.
type MenuItem struct {
	Choice MenuChoice
	Title  string
	Hint   string
}

// DefaultMenuItems returns the main menu entries in display order.
func DefaultMenuItems() []MenuItem {
	return []MenuItem{
		{Choice: ChoiceNewGame, Title: "New game", Hint: "Start with $800 in savings"},
		{Choice: ChoiceResults, Title: "Results", Hint: "Who lasted the longest"},
		{Choice: ChoicePeriodTable, Title: "Period table", Hint: "The public figures for every period"},
		{Choice: ChoiceQuit, Title: "Quit", Hint: ""},
	}
}

// MenuModel is the Bubble Tea model for the main menu.
type MenuModel struct {
	items      []MenuItem
	cursor     int
	width      int
	height     int
	config     core.RuntimeConfig
	theme      Theme
	keyMapper  *KeyMapper
	quitOnPick bool // Standalone program: selecting exits
	quitting   bool
	selected   *MenuItem
}

// NewMenuModel creates a new menu model.
func NewMenuModel(cfg core.RuntimeConfig) MenuModel {
	return MenuModel{
		items:     DefaultMenuItems(),
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		theme:     DefaultTheme(),
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		selected := m.items[m.cursor]
		if selected.Choice == ChoiceQuit {
			m.quitting = true
			return m, tea.Quit
		}
		m.selected = &selected
		if m.quitOnPick {
			return m, tea.Quit
		}
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.Title.Render("E C O N O M Í A   C A Ó T I C A"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.theme.Subtitle.Render("Twenty periods. One salary. Keep spending, keep saving."), m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := m.theme.MenuItemNormal.Render("  " + item.Title + "  ")
		if i == m.cursor {
			line = m.theme.MenuItemActive.Render("> " + item.Title + " ")
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if hint := m.items[m.cursor].Hint; hint != "" {
		b.WriteString(centerText(m.theme.Muted.Render(hint), m.width))
	}
	b.WriteString("\n\n")
	controls := "Up/Down: Navigate  |  Enter: Select  |  Q: Quit"
	b.WriteString(centerText(m.theme.Help.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Choice MenuChoice
	Config core.RuntimeConfig
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(cfg core.RuntimeConfig) (MenuResult, error) {
	model := NewMenuModel(cfg)
	model.quitOnPick = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Choice: ChoiceQuit, Config: cfg}, nil
	}

	result := MenuResult{Config: m.Config(), Choice: ChoiceQuit}
	if !m.IsQuitting() && m.Selected() != nil {
		result.Choice = m.Selected().Choice
	}
	return result, nil
}
