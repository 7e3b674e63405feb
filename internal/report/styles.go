package report

import "github.com/charmbracelet/lipgloss"

// Styles by role. Colors are ANSI palette indexes, so the terminal theme
// decides the exact shade.
var (
	// StyleHeading marks "file:line:col:" locations and section titles.
	StyleHeading = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	// StyleError marks error-severity messages and failed files.
	StyleError = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	// StyleWarning marks warning counts and the caret under a violation.
	StyleWarning = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))
	// StyleClean marks a run without violations.
	StyleClean = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	// StyleRule marks the "(rule-id)" suffix.
	StyleRule = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Paint renders text in style, or returns it as is when colors are off.
func Paint(style lipgloss.Style, text string, useColors bool) string {
	if !useColors {
		return text
	}
	return style.Render(text)
}
