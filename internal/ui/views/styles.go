package views

import (
	"github.com/charmbracelet/lipgloss"

	"cardcarousel/internal/domain"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title          lipgloss.Style
	Counter        lipgloss.Style
	Dim            lipgloss.Style
	Status         lipgloss.Style
	StatusError    lipgloss.Style
	Help           lipgloss.Style
	HelpBox        lipgloss.Style
	Button         lipgloss.Style
	ButtonDisabled lipgloss.Style
	DotActive      lipgloss.Style
	DotInactive    lipgloss.Style
	CardTitle      lipgloss.Style
	CardImage      lipgloss.Style
	CardLink       lipgloss.Style
	Empty          lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Counter:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Dim:         lipgloss.NewStyle().Faint(true),
		Status:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		StatusError: lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		Help:        lipgloss.NewStyle().Faint(true),
		HelpBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(1, 2),
		Button: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")),
		ButtonDisabled: lipgloss.NewStyle().
			Foreground(lipgloss.Color("238")),
		DotActive:   lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		DotInactive: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		CardTitle:   lipgloss.NewStyle().Bold(true),
		CardImage:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true),
		CardLink:    lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Underline(true),
		Empty:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
	}
}

// RoleStyle maps a card role to its frame style. It depends on nothing but
// the role.
func RoleStyle(role domain.Role) lipgloss.Style {
	switch role {
	case domain.RoleActive:
		return lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(0, 1)
	case domain.RoleLeft, domain.RoleRight:
		return lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Foreground(lipgloss.Color("245")).
			Faint(true).
			Padding(0, 1)
	default:
		// Hidden cards are not drawn at all
		return lipgloss.NewStyle()
	}
}

// RoleVisible reports whether cards with this role are drawn
func RoleVisible(role domain.Role) bool {
	return role != domain.RoleHidden
}
