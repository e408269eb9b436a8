package config

// RawConfig mirrors Config with optional fields so that a file only
// overrides what it sets.
type RawConfig struct {
	Appearance *RawAppearance `yaml:"appearance"`
	Layout     *RawLayout     `yaml:"layout"`
	System     *RawSystem     `yaml:"system"`
	Viewport   *RawViewport   `yaml:"viewport"`
}

type RawAppearance struct {
	Theme       *Theme  `yaml:"theme"`
	AccentColor *string `yaml:"accent_color"`
	Background  *string `yaml:"background"`
}

type RawDock struct {
	Position *DockPosition `yaml:"position"`
	Size     *DockSize     `yaml:"size"`
	AutoHide *bool         `yaml:"auto_hide"`
}

type RawLayout struct {
	Dock *RawDock `yaml:"dock"`
}

type RawSystem struct {
	GridSnapping *bool `yaml:"grid_snapping"`
}

type RawViewport struct {
	Source *ViewportSource `yaml:"source"`
	Width  *int            `yaml:"width"`
	Height *int            `yaml:"height"`
}

// EnvOverrides are read from APERTURE_* environment variables.
type EnvOverrides struct {
	Theme          *Theme          `env:"THEME"`
	AccentColor    *string         `env:"ACCENT_COLOR"`
	DockPosition   *DockPosition   `env:"DOCK_POSITION"`
	GridSnapping   *bool           `env:"GRID_SNAPPING"`
	ViewportSource *ViewportSource `env:"VIEWPORT_SOURCE"`
	ViewportWidth  *int            `env:"VIEWPORT_WIDTH"`
	ViewportHeight *int            `env:"VIEWPORT_HEIGHT"`
}

// merge overlays other onto r; fields set in other win.
func (r RawConfig) merge(other RawConfig) RawConfig {
	if other.Appearance != nil {
		if r.Appearance == nil {
			r.Appearance = &RawAppearance{}
		}
		a := *r.Appearance
		setIf(&a.Theme, other.Appearance.Theme)
		setIf(&a.AccentColor, other.Appearance.AccentColor)
		setIf(&a.Background, other.Appearance.Background)
		r.Appearance = &a
	}
	if other.Layout != nil && other.Layout.Dock != nil {
		var d RawDock
		if r.Layout != nil && r.Layout.Dock != nil {
			d = *r.Layout.Dock
		}
		setIf(&d.Position, other.Layout.Dock.Position)
		setIf(&d.Size, other.Layout.Dock.Size)
		setIf(&d.AutoHide, other.Layout.Dock.AutoHide)
		r.Layout = &RawLayout{Dock: &d}
	}
	if other.System != nil {
		var s RawSystem
		if r.System != nil {
			s = *r.System
		}
		setIf(&s.GridSnapping, other.System.GridSnapping)
		r.System = &s
	}
	if other.Viewport != nil {
		var v RawViewport
		if r.Viewport != nil {
			v = *r.Viewport
		}
		setIf(&v.Source, other.Viewport.Source)
		setIf(&v.Width, other.Viewport.Width)
		setIf(&v.Height, other.Viewport.Height)
		r.Viewport = &v
	}
	return r
}

// raw converts env overrides into the file shape.
func (e EnvOverrides) raw() RawConfig {
	var out RawConfig
	if e.Theme != nil || e.AccentColor != nil {
		out.Appearance = &RawAppearance{Theme: e.Theme, AccentColor: e.AccentColor}
	}
	if e.DockPosition != nil {
		out.Layout = &RawLayout{Dock: &RawDock{Position: e.DockPosition}}
	}
	if e.GridSnapping != nil {
		out.System = &RawSystem{GridSnapping: e.GridSnapping}
	}
	if e.ViewportSource != nil || e.ViewportWidth != nil || e.ViewportHeight != nil {
		out.Viewport = &RawViewport{Source: e.ViewportSource, Width: e.ViewportWidth, Height: e.ViewportHeight}
	}
	return out
}

func setIf[T any](dst **T, src *T) {
	if src != nil {
		v := *src
		*dst = &v
	}
}
