package config

import "fmt"

// ValidationError reports an invalid value at a YAML path.
type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" {
		return fmt.Sprintf("%s: %s: %v", e.Source.File, e.Path, e.Err)
	}
	if e.Source.Kind == SourceEnv {
		return fmt.Sprintf("environment: %s: %v", e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// BuildEffectiveConfig applies raw over the builtin defaults.
func BuildEffectiveConfig(raw RawConfig) *Config {
	cfg := DefaultConfig()

	if a := raw.Appearance; a != nil {
		applyIf(&cfg.Appearance.Theme, a.Theme)
		applyIf(&cfg.Appearance.AccentColor, a.AccentColor)
		applyIf(&cfg.Appearance.Background, a.Background)
	}
	if raw.Layout != nil && raw.Layout.Dock != nil {
		d := raw.Layout.Dock
		applyIf(&cfg.Layout.Dock.Position, d.Position)
		applyIf(&cfg.Layout.Dock.Size, d.Size)
		applyIf(&cfg.Layout.Dock.AutoHide, d.AutoHide)
	}
	if s := raw.System; s != nil {
		applyIf(&cfg.System.GridSnapping, s.GridSnapping)
	}
	if v := raw.Viewport; v != nil {
		applyIf(&cfg.Viewport.Source, v.Source)
		applyIf(&cfg.Viewport.Width, v.Width)
		applyIf(&cfg.Viewport.Height, v.Height)
	}
	return cfg
}

func applyIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
