package config

import (
	"fmt"
	"strings"
)

// Theme selects the desktop color scheme.
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeMatrix Theme = "matrix"
)

// DockPosition places the dock along a screen edge.
type DockPosition string

const (
	DockBottom DockPosition = "bottom"
	DockLeft   DockPosition = "left"
	DockRight  DockPosition = "right"
)

// DockSize scales dock icons.
type DockSize string

const (
	DockSmall  DockSize = "sm"
	DockMedium DockSize = "md"
	DockLarge  DockSize = "lg"
)

// ViewportSource names where the desktop extent comes from.
type ViewportSource string

const (
	ViewportFixed    ViewportSource = "fixed"
	ViewportTerminal ViewportSource = "terminal"
	ViewportX11      ViewportSource = "x11"
)

// Appearance holds visual preferences.
type Appearance struct {
	Theme       Theme  `yaml:"theme"`
	AccentColor string `yaml:"accent_color"`
	Background  string `yaml:"background"`
}

// Dock configures the app dock.
type Dock struct {
	Position DockPosition `yaml:"position"`
	Size     DockSize     `yaml:"size"`
	AutoHide bool         `yaml:"auto_hide"`
}

// Layout groups layout-related settings.
type Layout struct {
	Dock Dock `yaml:"dock"`
}

// System holds behavior toggles read by the window core.
type System struct {
	// GridSnapping rounds drag and resize commits to a 20-unit grid.
	GridSnapping bool `yaml:"grid_snapping"`
}

// Viewport configures the desktop extent. Width and Height are used by the
// fixed source and as the fallback when another source cannot report.
type Viewport struct {
	Source ViewportSource `yaml:"source"`
	Width  int            `yaml:"width"`
	Height int            `yaml:"height"`
}

// Config is the effective settings tree.
type Config struct {
	Appearance Appearance `yaml:"appearance"`
	Layout     Layout     `yaml:"layout"`
	System     System     `yaml:"system"`
	Viewport   Viewport   `yaml:"viewport"`
}

// Clone returns a copy of c.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	out := *c
	return &out
}

// Validate checks enum fields and extents.
func (c *Config) Validate() error {
	switch c.Appearance.Theme {
	case ThemeLight, ThemeDark, ThemeMatrix:
	default:
		return &ValidationError{Path: "appearance.theme", Err: fmt.Errorf("theme must be one of: light, dark, matrix")}
	}
	if !IsHexColor(c.Appearance.AccentColor) {
		return &ValidationError{Path: "appearance.accent_color", Err: fmt.Errorf("accent_color must be a #RRGGBB color, got %q", c.Appearance.AccentColor)}
	}
	switch c.Layout.Dock.Position {
	case DockBottom, DockLeft, DockRight:
	default:
		return &ValidationError{Path: "layout.dock.position", Err: fmt.Errorf("position must be one of: bottom, left, right")}
	}
	switch c.Layout.Dock.Size {
	case DockSmall, DockMedium, DockLarge:
	default:
		return &ValidationError{Path: "layout.dock.size", Err: fmt.Errorf("size must be one of: sm, md, lg")}
	}
	switch c.Viewport.Source {
	case ViewportFixed, ViewportTerminal, ViewportX11:
	default:
		return &ValidationError{Path: "viewport.source", Err: fmt.Errorf("source must be one of: fixed, terminal, x11")}
	}
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return &ValidationError{Path: "viewport", Err: fmt.Errorf("width and height must be > 0")}
	}
	return nil
}

// IsHexColor reports whether s is a #RRGGBB color.
func IsHexColor(s string) bool {
	s = strings.TrimSpace(s)
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for _, r := range s[1:] {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
