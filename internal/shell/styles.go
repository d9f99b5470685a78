package shell

import "github.com/charmbracelet/lipgloss"

// Styles groups the lipgloss styles the shell prints with. A non-TTY
// session gets the zero styles, which render plain text.
type Styles struct {
	Banner lipgloss.Style
	Prompt lipgloss.Style
	Error  lipgloss.Style
	Info   lipgloss.Style
	Muted  lipgloss.Style
}

// DefaultStyles returns the colored style set for terminal sessions.
func DefaultStyles() Styles {
	return Styles{
		Banner: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Prompt: lipgloss.NewStyle().Bold(true),
		Error:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		Info:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Muted:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// PlainStyles returns unstyled passthrough styles.
func PlainStyles() Styles {
	return Styles{}
}
