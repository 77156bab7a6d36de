// Package styles provides colour themes and styling for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/abacus-cli/internal/core/domain"
)

// Theme defines the colour palette and styling for the TUI.
type Theme struct {
	// Primary is the main accent colour.
	Primary lipgloss.Color

	// Secondary is the secondary accent colour.
	Secondary lipgloss.Color

	// Background is the background colour.
	Background lipgloss.Color

	// Foreground is the default text colour.
	Foreground lipgloss.Color

	// Muted is for less important text.
	Muted lipgloss.Color

	// Success indicates positive outcomes.
	Success lipgloss.Color

	// Warning indicates caution.
	Warning lipgloss.Color

	// Error indicates problems.
	Error lipgloss.Color

	// Border is the border colour.
	Border lipgloss.Color

	// Panel is the background of the display and status bar.
	Panel lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return DarkTheme()
}

// DarkTheme is tuned for dark terminal backgrounds.
func DarkTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#7C3AED"), // Purple
		Secondary:  lipgloss.Color("#06B6D4"), // Cyan
		Background: lipgloss.Color("#1E1E2E"), // Dark gray
		Foreground: lipgloss.Color("#CDD6F4"), // Light gray
		Muted:      lipgloss.Color("#6C7086"), // Medium gray
		Success:    lipgloss.Color("#A6E3A1"), // Green
		Warning:    lipgloss.Color("#F9E2AF"), // Yellow
		Error:      lipgloss.Color("#F38BA8"), // Red
		Border:     lipgloss.Color("#45475A"), // Border gray
		Panel:      lipgloss.Color("#181825"),
	}
}

// LightTheme is tuned for light terminal backgrounds.
func LightTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#8839EF"),
		Secondary:  lipgloss.Color("#04A5E5"),
		Background: lipgloss.Color("#EFF1F5"),
		Foreground: lipgloss.Color("#4C4F69"),
		Muted:      lipgloss.Color("#8C8FA1"),
		Success:    lipgloss.Color("#40A02B"),
		Warning:    lipgloss.Color("#DF8E1D"),
		Error:      lipgloss.Color("#D20F39"),
		Border:     lipgloss.Color("#BCC0CC"),
		Panel:      lipgloss.Color("#E6E9EF"),
	}
}

// MonoTheme uses the terminal's own colours; emphasis comes from
// weight and borders only.
func MonoTheme() *Theme {
	return &Theme{}
}

// ThemeFor returns the palette for a configured theme.
// Unknown themes get the default.
func ThemeFor(theme domain.Theme) *Theme {
	switch theme {
	case domain.ThemeLight:
		return LightTheme()
	case domain.ThemeMono:
		return MonoTheme()
	default:
		return DefaultTheme()
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	// Title style for headers.
	Title lipgloss.Style

	// Subtitle style for secondary headers.
	Subtitle lipgloss.Style

	// Normal style for regular text.
	Normal lipgloss.Style

	// Muted style for less important text.
	Muted lipgloss.Style

	// Selected style for highlighted items.
	Selected lipgloss.Style

	// Error style for error messages.
	Error lipgloss.Style

	// Success style for success messages.
	Success lipgloss.Style

	// Warning style for warning messages.
	Warning lipgloss.Style

	// Display style for the calculator readout.
	Display lipgloss.Style

	// DisplayError style for the readout while the calculator shows an error.
	DisplayError lipgloss.Style

	// Key style for a keypad button.
	Key lipgloss.Style

	// KeyOperator style for the operator column.
	KeyOperator lipgloss.Style

	// KeyActive style for the most recently pressed key.
	KeyActive lipgloss.Style

	// StatusBar style for the status bar.
	StatusBar lipgloss.Style

	// Help style for help text.
	Help lipgloss.Style

	// Border style for bordered containers.
	Border lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	key := lipgloss.NewStyle().
		Width(5).
		Align(lipgloss.Center).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Foreground(theme.Foreground)

	display := lipgloss.NewStyle().
		Width(27).
		Align(lipgloss.Right).
		Bold(true).
		Padding(0, 1).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Foreground(theme.Foreground).
		Background(theme.Panel)

	return &Styles{
		theme: theme,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary),

		Subtitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Secondary),

		Normal: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Foreground).
			Background(theme.Primary),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error),

		Success: lipgloss.NewStyle().
			Foreground(theme.Success),

		Warning: lipgloss.NewStyle().
			Foreground(theme.Warning),

		Display: display,

		DisplayError: display.Foreground(theme.Error),

		Key: key,

		KeyOperator: key.Foreground(theme.Secondary).Bold(true),

		KeyActive: key.BorderForeground(theme.Primary).Bold(true).Reverse(true),

		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(theme.Panel).
			Padding(0, 1),

		Help: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Border: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// SetTheme restyles in place. Views holding this *Styles pick up the
// new palette on their next render.
func (s *Styles) SetTheme(theme *Theme) {
	*s = *NewStyles(theme)
}
