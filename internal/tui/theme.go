package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/aperture/internal/config"
)

// styleID indexes the style table of a theme.
type styleID int

const (
	styleDesktop styleID = iota
	styleHeader
	styleHeaderActive
	styleControl
	styleControlClose
	styleBody
	styleHandle
	styleDock
	styleDockRunning
	styleDockActive
	styleDockMinimized
	stylePalette
	stylePaletteSelected
	stylePaletteDim
	styleCount
)

type themeColors struct {
	desktop, fg, chrome, chromeFg, body, bodyFg, dim string
}

var themes = map[config.Theme]themeColors{
	config.ThemeDark:   {desktop: "235", fg: "250", chrome: "238", chromeFg: "252", body: "236", bodyFg: "252", dim: "241"},
	config.ThemeLight:  {desktop: "252", fg: "236", chrome: "250", chromeFg: "235", body: "255", bodyFg: "235", dim: "245"},
	config.ThemeMatrix: {desktop: "16", fg: "34", chrome: "22", chromeFg: "46", body: "232", bodyFg: "46", dim: "28"},
}

// buildStyles returns the style table for appearance.
func buildStyles(a config.Appearance) []lipgloss.Style {
	c, ok := themes[a.Theme]
	if !ok {
		c = themes[config.ThemeDark]
	}
	accent := lipgloss.Color(a.AccentColor)
	if a.AccentColor == "" {
		accent = lipgloss.Color("62")
	}

	base := func(bg, fg string) lipgloss.Style {
		return lipgloss.NewStyle().Background(lipgloss.Color(bg)).Foreground(lipgloss.Color(fg))
	}

	s := make([]lipgloss.Style, styleCount)
	s[styleDesktop] = base(c.desktop, c.dim)
	s[styleHeader] = base(c.chrome, c.chromeFg)
	s[styleHeaderActive] = lipgloss.NewStyle().Background(accent).Foreground(lipgloss.Color("15")).Bold(true)
	s[styleControl] = base(c.chrome, c.chromeFg).Bold(true)
	s[styleControlClose] = base(c.chrome, "203").Bold(true)
	s[styleBody] = base(c.body, c.bodyFg)
	s[styleHandle] = base(c.body, c.dim)
	s[styleDock] = base(c.chrome, c.dim)
	s[styleDockRunning] = base(c.chrome, c.chromeFg).Bold(true)
	s[styleDockActive] = lipgloss.NewStyle().Background(c.chrome).Foreground(accent).Bold(true)
	s[styleDockMinimized] = base(c.chrome, c.dim).Italic(true)
	s[stylePalette] = base(c.body, c.bodyFg)
	s[stylePaletteSelected] = lipgloss.NewStyle().Background(accent).Foreground(lipgloss.Color("15"))
	s[stylePaletteDim] = base(c.body, c.dim)
	return s
}
