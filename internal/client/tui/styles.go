package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent = lipgloss.Color("#D16021")
	muted  = lipgloss.Color("243")
	danger = lipgloss.Color("203")
	ok     = lipgloss.Color("78")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Foreground(lipgloss.Color("#ffffff")).
			Background(accent)

	sidebarStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(muted).
			Padding(0, 1).
			Width(26)

	sidebarFocusedStyle = sidebarStyle.
				BorderForeground(accent)

	contentStyle = lipgloss.NewStyle().
			Padding(0, 2)

	activeStepStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent)

	cursorStyle = lipgloss.NewStyle().
			Reverse(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(muted)

	focusedLabelStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(accent)

	errorStyle = lipgloss.NewStyle().
			Foreground(danger)

	statusStyle = lipgloss.NewStyle().
			Foreground(ok)

	helpStyle = lipgloss.NewStyle().
			Foreground(muted).
			Italic(true)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(muted).
			Padding(0, 1)
)

func checkbox(checked bool) string {
	if checked {
		return "[x]"
	}
	return "[ ]"
}

func line(selected bool, s string) string {
	if selected {
		return cursorStyle.Render("> " + s)
	}
	return "  " + s
}
