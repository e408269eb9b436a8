package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

type SourceKind string

const (
	SourceDefault SourceKind = "default"
	SourceFile    SourceKind = "file"
	SourceEnv     SourceKind = "env"
)

type Source struct {
	Kind SourceKind
	File string
}

type LoadResult struct {
	Config  *Config
	Sources map[string]Source // YAML path -> last writer
	Files   []string
}

// EnvPrefix namespaces the environment overrides.
const EnvPrefix = "APERTURE_"

func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "aperture", "config.yaml"), nil
}

// Load reads the settings file from the standard location, applies
// environment overrides and returns the validated config.
func Load() (*Config, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	res, err := LoadFromPath(path)
	if err != nil {
		return nil, err
	}
	return res.Config, nil
}

// LoadFromPath loads path (a missing file means defaults), then env overrides.
func LoadFromPath(path string) (*LoadResult, error) {
	raw := RawConfig{}
	sources := map[string]Source{}
	var files []string

	if path != "" {
		exists, err := pathExists(path)
		if err != nil {
			return nil, err
		}
		if exists {
			fileRaw, err := loadRawFile(path)
			if err != nil {
				return nil, err
			}
			raw = raw.merge(fileRaw)
			for _, p := range rawPaths(fileRaw) {
				sources[p] = Source{Kind: SourceFile, File: path}
			}
			files = append(files, path)
		}
	}

	envRaw, err := loadEnv()
	if err != nil {
		return nil, err
	}
	raw = raw.merge(envRaw)
	for _, p := range rawPaths(envRaw) {
		sources[p] = Source{Kind: SourceEnv}
	}

	cfg := BuildEffectiveConfig(raw)
	if err := cfg.Validate(); err != nil {
		return nil, attachSourceContext(err, sources)
	}

	return &LoadResult{
		Config:  cfg,
		Sources: sources,
		Files:   files,
	}, nil
}

func loadRawFile(path string) (RawConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RawConfig{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	var raw RawConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil && err != io.EOF {
		return RawConfig{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return raw, nil
}

func loadEnv() (RawConfig, error) {
	var ov EnvOverrides
	if err := env.ParseWithOptions(&ov, env.Options{Prefix: EnvPrefix}); err != nil {
		return RawConfig{}, fmt.Errorf("failed to parse environment overrides: %w", err)
	}
	return ov.raw(), nil
}

// Save writes cfg to path atomically.
func Save(path string, cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace config: %w", err)
	}
	return nil
}

// SaveFileLayer writes edited to path without baking in APERTURE_*
// overrides. A field that still holds its environment value is saved with
// the value it had in the file layer (file over defaults); fields the user
// changed away from the environment value are saved as edited.
func SaveFileLayer(path string, edited *Config) error {
	fileRaw := RawConfig{}
	exists, err := pathExists(path)
	if err != nil {
		return err
	}
	if exists {
		if fileRaw, err = loadRawFile(path); err != nil {
			return err
		}
	}
	envRaw, err := loadEnv()
	if err != nil {
		return err
	}

	fileCfg := BuildEffectiveConfig(fileRaw)
	envCfg := BuildEffectiveConfig(fileRaw.merge(envRaw))
	out := edited.Clone()
	for _, p := range rawPaths(envRaw) {
		restoreFileValue(out, fileCfg, envCfg, p)
	}
	return Save(path, out)
}

func restoreFileValue(dst, file, env *Config, path string) {
	switch path {
	case "appearance.theme":
		keepFile(&dst.Appearance.Theme, env.Appearance.Theme, file.Appearance.Theme)
	case "appearance.accent_color":
		keepFile(&dst.Appearance.AccentColor, env.Appearance.AccentColor, file.Appearance.AccentColor)
	case "appearance.background":
		keepFile(&dst.Appearance.Background, env.Appearance.Background, file.Appearance.Background)
	case "layout.dock.position":
		keepFile(&dst.Layout.Dock.Position, env.Layout.Dock.Position, file.Layout.Dock.Position)
	case "layout.dock.size":
		keepFile(&dst.Layout.Dock.Size, env.Layout.Dock.Size, file.Layout.Dock.Size)
	case "layout.dock.auto_hide":
		keepFile(&dst.Layout.Dock.AutoHide, env.Layout.Dock.AutoHide, file.Layout.Dock.AutoHide)
	case "system.grid_snapping":
		keepFile(&dst.System.GridSnapping, env.System.GridSnapping, file.System.GridSnapping)
	case "viewport.source":
		keepFile(&dst.Viewport.Source, env.Viewport.Source, file.Viewport.Source)
	case "viewport":
		keepFile(&dst.Viewport.Width, env.Viewport.Width, file.Viewport.Width)
		keepFile(&dst.Viewport.Height, env.Viewport.Height, file.Viewport.Height)
	}
}

func keepFile[T comparable](dst *T, envValue, fileValue T) {
	if *dst == envValue {
		*dst = fileValue
	}
}

func rawPaths(raw RawConfig) []string {
	var out []string
	if a := raw.Appearance; a != nil {
		if a.Theme != nil {
			out = append(out, "appearance.theme")
		}
		if a.AccentColor != nil {
			out = append(out, "appearance.accent_color")
		}
		if a.Background != nil {
			out = append(out, "appearance.background")
		}
	}
	if raw.Layout != nil && raw.Layout.Dock != nil {
		d := raw.Layout.Dock
		if d.Position != nil {
			out = append(out, "layout.dock.position")
		}
		if d.Size != nil {
			out = append(out, "layout.dock.size")
		}
		if d.AutoHide != nil {
			out = append(out, "layout.dock.auto_hide")
		}
	}
	if raw.System != nil && raw.System.GridSnapping != nil {
		out = append(out, "system.grid_snapping")
	}
	if v := raw.Viewport; v != nil {
		if v.Source != nil {
			out = append(out, "viewport.source")
		}
		if v.Width != nil || v.Height != nil {
			out = append(out, "viewport")
		}
	}
	return out
}

func attachSourceContext(err error, sources map[string]Source) error {
	verr, ok := err.(*ValidationError)
	if !ok || verr == nil {
		return err
	}
	if verr.Path == "" {
		return err
	}
	if src, ok := sources[verr.Path]; ok {
		verr.Source = src
	}
	return verr
}

func pathExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("failed to stat %s: %w", path, err)
}
