// Package styles provides shared lipgloss styles for CLI output and forms.
package styles

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Style exports.
var (
	InfoStyle    lipgloss.Style
	WarnStyle    lipgloss.Style
	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style

	// Task line token styles.
	PriorityStyle lipgloss.Style
	ProjectStyle  lipgloss.Style
	ContextStyle  lipgloss.Style
	MetadataStyle lipgloss.Style
)

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	InfoStyle = lipgloss.NewStyle().Foreground(p.Primary)
	WarnStyle = lipgloss.NewStyle().Foreground(p.Warning)
	SuccessStyle = lipgloss.NewStyle().Foreground(p.Success)
	ErrorStyle = lipgloss.NewStyle().Foreground(p.Error).Bold(true)

	PriorityStyle = lipgloss.NewStyle().Foreground(p.Warning).Bold(true)
	ProjectStyle = lipgloss.NewStyle().Foreground(p.Secondary)
	ContextStyle = lipgloss.NewStyle().Foreground(p.Success)
	MetadataStyle = lipgloss.NewStyle().Foreground(p.Muted)
}

// FormTheme returns a huh theme derived from the active palette.
func FormTheme() *huh.Theme {
	p := CurrentPalette
	t := huh.ThemeCharm()

	t.Focused.Title = t.Focused.Title.Foreground(p.Primary).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(p.Muted)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(p.Error)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(p.Error)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(p.Secondary)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(p.Success)
	t.Focused.FocusedButton = t.Focused.FocusedButton.Foreground(p.Background).Background(p.Primary)
	t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(p.Secondary)

	t.Blurred.Title = t.Blurred.Title.Foreground(p.Muted)

	return t
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}
