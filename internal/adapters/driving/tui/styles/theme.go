// Package styles provides colours and lipgloss styles for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette is the set of colours the styles are built from.
type Palette struct {
	Accent  lipgloss.Color
	Sky     lipgloss.Color
	Text    lipgloss.Color
	Dim     lipgloss.Color
	Good    lipgloss.Color
	Bad     lipgloss.Color
	Border  lipgloss.Color
	BarFill lipgloss.Color
}

// DefaultPalette returns the default colours.
func DefaultPalette() Palette {
	return Palette{
		Accent:  lipgloss.Color("#F97316"), // Orange
		Sky:     lipgloss.Color("#38BDF8"), // Light blue
		Text:    lipgloss.Color("#E2E8F0"),
		Dim:     lipgloss.Color("#64748B"),
		Good:    lipgloss.Color("#4ADE80"),
		Bad:     lipgloss.Color("#F87171"),
		Border:  lipgloss.Color("#334155"),
		BarFill: lipgloss.Color("#0F172A"),
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	palette Palette

	Title      lipgloss.Style
	Subtitle   lipgloss.Style
	Normal     lipgloss.Style
	Muted      lipgloss.Style
	Selected   lipgloss.Style
	Error      lipgloss.Style
	Price      lipgloss.Style
	Tab        lipgloss.Style
	ActiveTab  lipgloss.Style
	InputField lipgloss.Style
	StatusBar  lipgloss.Style
}

// New builds styles from a palette.
func New(p Palette) *Styles {
	return &Styles{
		palette: p,

		Title:    lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		Subtitle: lipgloss.NewStyle().Bold(true).Foreground(p.Sky),
		Normal:   lipgloss.NewStyle().Foreground(p.Text),
		Muted:    lipgloss.NewStyle().Foreground(p.Dim),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(p.BarFill).Background(p.Sky),
		Error:    lipgloss.NewStyle().Foreground(p.Bad),
		Price:    lipgloss.NewStyle().Foreground(p.Good),

		Tab:       lipgloss.NewStyle().Foreground(p.Dim).Padding(0, 1),
		ActiveTab: lipgloss.NewStyle().Bold(true).Foreground(p.BarFill).Background(p.Accent).Padding(0, 1),

		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(0, 1),

		StatusBar: lipgloss.NewStyle().
			Foreground(p.Dim).
			Background(p.BarFill).
			Padding(0, 1),
	}
}

// DefaultStyles returns styles with the default palette.
func DefaultStyles() *Styles {
	return New(DefaultPalette())
}

// Palette returns the colours these styles were built from.
func (s *Styles) Palette() Palette {
	return s.palette
}
