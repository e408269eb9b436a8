package config

// DefaultConfig returns the builtin settings.
func DefaultConfig() *Config {
	return &Config{
		Appearance: Appearance{
			Theme:       ThemeDark,
			AccentColor: "#00A9FF",
			Background:  "default",
		},
		Layout: Layout{
			Dock: Dock{
				Position: DockBottom,
				Size:     DockMedium,
				AutoHide: false,
			},
		},
		System: System{
			GridSnapping: true,
		},
		Viewport: Viewport{
			Source: ViewportFixed,
			Width:  1920,
			Height: 1080,
		},
	}
}
