package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the chrome around the lattice; site colors always come from
// the render mapper so cluster structure reads the same in every theme.
type Theme struct {
	Name   string
	Header lipgloss.Color
	Label  lipgloss.Color
	Value  lipgloss.Color
	Muted  lipgloss.Color
	Bond   lipgloss.Color
	Graph  lipgloss.Color
}

// Available themes
var (
	ThemeLattice = Theme{
		Name:   "lattice",
		Header: lipgloss.Color("86"),
		Label:  lipgloss.Color("245"),
		Value:  lipgloss.Color("252"),
		Muted:  lipgloss.Color("240"),
		Bond:   lipgloss.Color("33"), // blue, matching the recorder's bond lines
		Graph:  lipgloss.Color("49"),
	}

	ThemeEmber = Theme{
		Name:   "ember",
		Header: lipgloss.Color("208"),
		Label:  lipgloss.Color("137"),
		Value:  lipgloss.Color("223"),
		Muted:  lipgloss.Color("238"),
		Bond:   lipgloss.Color("202"),
		Graph:  lipgloss.Color("214"),
	}

	ThemeMono = Theme{
		Name:   "mono",
		Header: lipgloss.Color("255"),
		Label:  lipgloss.Color("245"),
		Value:  lipgloss.Color("252"),
		Muted:  lipgloss.Color("240"),
		Bond:   lipgloss.Color("250"),
		Graph:  lipgloss.Color("252"),
	}

	// Default theme
	CurrentTheme = ThemeLattice

	Themes = []Theme{ThemeLattice, ThemeEmber, ThemeMono}
)

// GetTheme returns a theme by name
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeLattice
}

// SetTheme changes the current theme
func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
