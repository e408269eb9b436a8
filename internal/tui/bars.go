package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/aperture/internal/pointer"
)

// statusInfo is what the top bar reports.
type statusInfo struct {
	windows      int
	visible      int
	activeTitle  string
	gridSnapping bool
	cursor       pointer.Cursor
	message      string
}

// renderStatusBar renders the desktop status bar with the help text right-aligned.
func renderStatusBar(info statusInfo, width int) string {
	dot := lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Render("●")
	parts := []string{dot + " aperture", fmt.Sprintf("%d windows (%d visible)", info.windows, info.visible)}
	if info.activeTitle != "" {
		parts = append(parts, "active:"+info.activeTitle)
	}
	grid := "off"
	if info.gridSnapping {
		grid = "on"
	}
	parts = append(parts, "grid:"+grid)
	if info.cursor != pointer.CursorDefault {
		parts = append(parts, info.cursor.String())
	}
	if info.message != "" {
		msg := lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Render(info.message)
		parts = append(parts, msg)
	}
	left := strings.Join(parts, "  ")

	help := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(helpText)
	gap := width - 2 - lipgloss.Width(left) - lipgloss.Width(help)
	line := left
	if gap > 1 {
		line = left + strings.Repeat(" ", gap) + help
	}

	style := lipgloss.NewStyle().
		Width(width).
		MaxWidth(width).
		Background(lipgloss.Color("235")).
		Foreground(lipgloss.Color("250")).
		Padding(0, 1)
	return style.Render(line)
}

const helpText = "ctrl+k: palette  ctrl+s: settings  tab: cycle  ctrl+w: close  q: quit"
