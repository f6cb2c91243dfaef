package console

import "github.com/charmbracelet/lipgloss"

// Styles contains styling for the console
type Styles struct {
	Prompt  lipgloss.Style
	Info    lipgloss.Style
	Digest  lipgloss.Style
	Key     lipgloss.Style
	Error   lipgloss.Style
	Win     lipgloss.Style
	Lose    lipgloss.Style
	Draw    lipgloss.Style
	Heading lipgloss.Style
}

// DefaultStyles returns the console palette
func DefaultStyles() *Styles {
	return &Styles{
		Prompt:  lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true),
		Info:    lipgloss.NewStyle().Foreground(lipgloss.Color("#626262")),
		Digest:  lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")),
		Key:     lipgloss.NewStyle().Foreground(lipgloss.Color("#74B9FF")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
		Win:     lipgloss.NewStyle().Foreground(lipgloss.Color("#96CEB4")).Bold(true),
		Lose:    lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
		Draw:    lipgloss.NewStyle().Foreground(lipgloss.Color("#FFEAA7")).Bold(true),
		Heading: lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA")).Background(lipgloss.Color("#7D56F4")).Padding(0, 1).Bold(true),
	}
}
