package theme

import (
	"github.com/charmbracelet/lipgloss/v2"

	"github.com/rotaplan/rota/pkg/colorstore"
)

// Theme centralizes Lip Gloss styles for the planner UI.
type Theme struct {
	Grid   GridTheme
	Footer FooterTheme
	Panel  PanelTheme
}

// GridTheme styles the week grid and its cells.
type GridTheme struct {
	Header    lipgloss.Style
	SlotLabel lipgloss.Style
	Cell      lipgloss.Style
	Cursor    lipgloss.Style
	Carrying  lipgloss.Style
	Conflict  lipgloss.Style
	Empty     lipgloss.Style
}

// FooterTheme groups styles used by the bottom status bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Dirty  lipgloss.Style
	Saved  lipgloss.Style
	Error  lipgloss.Style
}

// PanelTheme styles framed panels and headings.
type PanelTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Body  lipgloss.Style
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	return Theme{
		Grid: GridTheme{
			Header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
			SlotLabel: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Cell:      lipgloss.NewStyle().Padding(0, 1),
			Cursor:    lipgloss.NewStyle().Reverse(true),
			Carrying:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("213")),
			Conflict:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
			Empty:     lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		},
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Dirty:  lipgloss.NewStyle().Foreground(lipgloss.Color("178")),
			Saved:  lipgloss.NewStyle().Foreground(lipgloss.Color("28")),
			Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		},
		Panel: PanelTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				Padding(1, 2),
			Title: lipgloss.NewStyle().Bold(true),
			Body:  lipgloss.NewStyle(),
		},
	}
}

// EmployeeStyle builds the cell style for one employee from a palette color.
func EmployeeStyle(c colorstore.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(c.Foreground)).
		Background(lipgloss.Color(c.Background))
}
