package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"agentstat/internal/tui/theme"
)

// RenderStatusBar renders the bottom status bar.
func RenderStatusBar(width int, period, dataAge string) string {
	t := theme.Active

	style := lipgloss.NewStyle().Foreground(t.TextMuted).Width(width)

	left := " [←/→]period  [r]eload  [q]uit"
	right := ""
	if dataAge != "" {
		right = fmt.Sprintf("%s · loaded %s ", period, dataAge)
	} else if period != "" {
		right = period + " "
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	return style.Render(left + strings.Repeat(" ", padding) + right)
}
