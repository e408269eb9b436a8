package apps

import (
	"errors"
	"fmt"
	"strings"

	"github.com/1broseidon/aperture/internal/platform"
)

// ErrUnknownApp is returned when an app id is not in the catalog.
var ErrUnknownApp = errors.New("unknown app")

// Content is the static body drawn inside a window.
type Content interface {
	// Lines returns the body text for the given content area in cells.
	Lines(width, height int) []string
}

// ContentFactory builds a fresh Content for a window.
type ContentFactory func() Content

// AppDefinition describes a launchable application.
type AppDefinition struct {
	ID          string
	Name        string
	Icon        string // single glyph used by the dock
	Content     ContentFactory
	DefaultSize *platform.Size
}

// Registry is the ordered, immutable app catalog.
type Registry struct {
	apps []AppDefinition
	byID map[string]int
}

// NewRegistry builds a catalog, rejecting empty or duplicate ids.
func NewRegistry(defs ...AppDefinition) (*Registry, error) {
	r := &Registry{
		apps: make([]AppDefinition, 0, len(defs)),
		byID: make(map[string]int, len(defs)),
	}
	for _, def := range defs {
		id := strings.TrimSpace(def.ID)
		if id == "" {
			return nil, fmt.Errorf("app %q has empty id", def.Name)
		}
		if _, dup := r.byID[id]; dup {
			return nil, fmt.Errorf("duplicate app id %q", id)
		}
		if def.DefaultSize != nil && def.DefaultSize.Empty() {
			return nil, fmt.Errorf("app %q has invalid default size %dx%d", id, def.DefaultSize.Width, def.DefaultSize.Height)
		}
		def.ID = id
		r.byID[id] = len(r.apps)
		r.apps = append(r.apps, def)
	}
	return r, nil
}

// All returns the catalog in registration order.
func (r *Registry) All() []AppDefinition {
	out := make([]AppDefinition, len(r.apps))
	copy(out, r.apps)
	return out
}

// Len returns the number of registered apps.
func (r *Registry) Len() int {
	return len(r.apps)
}

// Lookup returns the app with the given id.
func (r *Registry) Lookup(id string) (AppDefinition, bool) {
	idx, ok := r.byID[id]
	if !ok {
		return AppDefinition{}, false
	}
	return r.apps[idx], true
}

// Resolve returns the app with the given id or ErrUnknownApp.
func (r *Registry) Resolve(id string) (AppDefinition, error) {
	app, ok := r.Lookup(id)
	if !ok {
		return AppDefinition{}, fmt.Errorf("%w: %s", ErrUnknownApp, id)
	}
	return app, nil
}
