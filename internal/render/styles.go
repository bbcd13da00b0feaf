// Package render prints machine and ROM listings as ANSI-colored tables for
// the mameset CLI.
package render

import "github.com/charmbracelet/lipgloss"

var (
	tableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				Align(lipgloss.Center)

	tableCellStyle = lipgloss.NewStyle().Padding(0, 1)

	tableOddRowStyle  = tableCellStyle.Foreground(lipgloss.Color("7"))
	tableEvenRowStyle = tableCellStyle.Foreground(lipgloss.Color("15"))

	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Faint(true)
)
