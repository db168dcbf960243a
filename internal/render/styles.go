package render

import "github.com/charmbracelet/lipgloss"

type styles struct {
	Header    lipgloss.Style
	Street    lipgloss.Style
	HandInfo  lipgloss.Style
	Action    lipgloss.Style
	RedCard   lipgloss.Style
	BlackCard lipgloss.Style
	Player    lipgloss.Style
	Success   lipgloss.Style
	Error     lipgloss.Style
	Warning   lipgloss.Style
	Info      lipgloss.Style
	Heart     lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		Header: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true),

		Street: r.NewStyle().
			Foreground(lipgloss.Color("#7D56F4")).
			Bold(true),

		HandInfo: r.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),

		Action: r.NewStyle().
			Foreground(lipgloss.Color("#FFD700")),

		RedCard: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),

		BlackCard: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Bold(true),

		Player: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")),

		Success: r.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),

		Error: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),

		Warning: r.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")).
			Bold(true),

		Info: r.NewStyle().
			Foreground(lipgloss.Color("#626262")),

		Heart: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")),
	}
}
