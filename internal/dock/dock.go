// Package dock models the app launcher strip: one entry per catalog app,
// with running and minimized indicators derived from the window registry.
package dock

import (
	"fmt"

	"github.com/1broseidon/aperture/internal/apps"
	"github.com/1broseidon/aperture/internal/config"
	"github.com/1broseidon/aperture/internal/wm"
)

// ErrUnknownApp is returned by Launch for ids missing from the catalog.
var ErrUnknownApp = apps.ErrUnknownApp

// Indicator is one dock entry.
type Indicator struct {
	AppID     string `json:"app_id"`
	Name      string `json:"name"`
	Icon      string `json:"icon"`
	WindowID  string `json:"window_id,omitempty"`
	Running   bool   `json:"running"`
	Minimized bool   `json:"minimized"`
	Active    bool   `json:"active"`
}

// Indicators pairs each catalog app with its window, if any. active is the
// id of the focused window and may be empty.
func Indicators(catalog *apps.Registry, windows []wm.WindowInstance, active string) []Indicator {
	byApp := make(map[string]wm.WindowInstance, len(windows))
	for _, w := range windows {
		byApp[w.AppID] = w
	}
	defs := catalog.All()
	out := make([]Indicator, 0, len(defs))
	for _, app := range defs {
		ind := Indicator{AppID: app.ID, Name: app.Name, Icon: app.Icon}
		if w, ok := byApp[app.ID]; ok {
			ind.WindowID = w.ID
			ind.Running = true
			ind.Minimized = w.IsMinimized
			ind.Active = w.ID == active && !w.IsMinimized
		}
		out = append(out, ind)
	}
	return out
}

// Registry is the subset of the window registry the dock drives.
type Registry interface {
	OpenWindow(app apps.AppDefinition) string
	FocusWindow(id string)
	Snapshot() []wm.WindowInstance
	Active() (wm.WindowInstance, bool)
}

// Dock launches and focuses apps on behalf of the user.
type Dock struct {
	catalog  *apps.Registry
	registry Registry
	settings *config.Store
}

// New creates a dock. settings may be nil, in which case defaults apply.
func New(catalog *apps.Registry, registry Registry, settings *config.Store) *Dock {
	return &Dock{catalog: catalog, registry: registry, settings: settings}
}

// Items returns the current indicators in catalog order.
func (d *Dock) Items() []Indicator {
	active := ""
	if w, ok := d.registry.Active(); ok {
		active = w.ID
	}
	return Indicators(d.catalog, d.registry.Snapshot(), active)
}

// Launch opens or restores the app with the given id and returns its window id.
func (d *Dock) Launch(appID string) (string, error) {
	app, err := d.catalog.Resolve(appID)
	if err != nil {
		return "", fmt.Errorf("launch: %w", err)
	}
	return d.registry.OpenWindow(app), nil
}

// LaunchApp opens app directly. It matches palette.LaunchFunc.
func (d *Dock) LaunchApp(app apps.AppDefinition) error {
	_, err := d.Launch(app.ID)
	return err
}

// Focus raises an existing window.
func (d *Dock) Focus(windowID string) {
	d.registry.FocusWindow(windowID)
}

// Settings returns the dock layout settings.
func (d *Dock) Settings() config.Dock {
	if d.settings == nil {
		return config.DefaultConfig().Layout.Dock
	}
	return d.settings.Config().Layout.Dock
}

// IconCells returns how many terminal cells each dock entry occupies.
func IconCells(size config.DockSize) int {
	switch size {
	case config.DockSmall:
		return 3
	case config.DockLarge:
		return 7
	default:
		return 5
	}
}
