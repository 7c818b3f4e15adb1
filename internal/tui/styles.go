// internal/tui/styles.go

package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	frameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("13"))

	givenStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	entryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15"))

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	conflictStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("9"))

	mistakeStyle = lipgloss.NewStyle().
			Underline(true).
			Foreground(lipgloss.Color("9"))

	cursorStyle = lipgloss.NewStyle().
			Reverse(true)

	hintStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("11"))

	sameStyle = lipgloss.NewStyle().
			Bold(true).
			Underline(true)

	flashStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	winStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("10"))

	menuCursorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))
)
