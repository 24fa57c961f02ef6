package ui

import "github.com/charmbracelet/lipgloss"

// Lipgloss styles for the CLI result banner. These complement the raw ANSI
// theme: the banner is the one place where composed styling (bold + color
// in a single style value) reads better than escape-code concatenation.
var (
	// HeaderStyle renders section headers such as the result banner title.
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	// ValueStyle renders the computed value itself.
	ValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("208"))

	// DimStyle renders supplementary details (backend name, duration).
	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))
)

// RenderHeader styles s as a banner header, honoring the no-color theme.
func RenderHeader(s string) string {
	if GetCurrentTheme().Name == "none" {
		return s
	}
	return HeaderStyle.Render(s)
}

// RenderValue styles s as a result value, honoring the no-color theme.
func RenderValue(s string) string {
	if GetCurrentTheme().Name == "none" {
		return s
	}
	return ValueStyle.Render(s)
}

// RenderDim styles s as supplementary detail, honoring the no-color theme.
func RenderDim(s string) string {
	if GetCurrentTheme().Name == "none" {
		return s
	}
	return DimStyle.Render(s)
}
