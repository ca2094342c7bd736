package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme contains all visual styles for the game screens.
type Theme struct {
	// Header styles
	Title    lipgloss.Style
	Subtitle lipgloss.Style

	// Indicator panel styles
	Panel lipgloss.Style
	Label lipgloss.Style
	Value lipgloss.Style
	Gain  lipgloss.Style
	Loss  lipgloss.Style

	// Bank badge styles
	BankOpen   lipgloss.Style
	BankClosed lipgloss.Style

	// Feedback styles
	Error lipgloss.Style
	Help  lipgloss.Style
	Muted lipgloss.Style

	// End-of-game card styles
	LossCard lipgloss.Style
	WinCard  lipgloss.Style
	CardText lipgloss.Style

	// Menu styles
	MenuItemNormal lipgloss.Style
	MenuItemActive lipgloss.Style
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")),
		Subtitle: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1),
		Label: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Value: lipgloss.NewStyle().Bold(true),
		Gain:  lipgloss.NewStyle().Foreground(lipgloss.Color("46")),  // Lime green
		Loss:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // Soft red

		BankOpen: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("16")).
			Background(lipgloss.Color("46")).
			Padding(0, 1),
		BankClosed: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("160")).
			Padding(0, 1),

		Error: lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Help:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Muted: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),

		LossCard: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("160")).
			Padding(1, 4),
		WinCard: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("46")).
			Padding(1, 4),
		CardText: lipgloss.NewStyle().Align(lipgloss.Center),

		MenuItemNormal: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		MenuItemActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1),
	}
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, text)
}
