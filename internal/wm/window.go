package wm

import (
	"errors"

	"github.com/1broseidon/aperture/internal/platform"
)

const (
	// BaseZIndex is the floor of the stacking order; the first window gets BaseZIndex+1.
	BaseZIndex = 100
	// CascadeStep offsets each new window from the previously assigned position.
	CascadeStep = 30
	// MinWidth and MinHeight are the smallest committed window extents.
	MinWidth  = 400
	MinHeight = 300
)

var (
	// CascadeOrigin is the position the cascade restarts from.
	CascadeOrigin = platform.Point{X: 50, Y: 50}
	// DefaultSize is used when an app has no default size.
	DefaultSize = platform.Size{Width: 800, Height: 600}
)

// ErrWindowNotFound is reported by lookups at the IPC boundary. Registry
// mutations never return it; unknown ids are ignored there.
var ErrWindowNotFound = errors.New("window not found")

// WindowInstance is one open application window.
type WindowInstance struct {
	ID          string         `json:"id"`
	AppID       string         `json:"app_id"`
	Title       string         `json:"title"`
	Position    platform.Point `json:"position"`
	Size        platform.Size  `json:"size"`
	ZIndex      int            `json:"z_index"`
	IsMinimized bool           `json:"is_minimized"`
	IsMaximized bool           `json:"is_maximized"`
}

// Bounds returns the stored geometry, ignoring maximize.
func (w WindowInstance) Bounds() platform.Rect {
	return platform.RectFrom(w.Position, w.Size)
}

// Patch is a partial update for UpdateWindowState. Nil fields are left alone.
// Identity and stacking (ID, AppID, ZIndex) are not patchable.
type Patch struct {
	Title       *string
	Position    *platform.Point
	Size        *platform.Size
	IsMinimized *bool
	IsMaximized *bool
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.Title == nil && p.Position == nil && p.Size == nil && p.IsMinimized == nil && p.IsMaximized == nil
}

// apply merges p into w and reports whether anything changed.
func (p Patch) apply(w *WindowInstance) bool {
	changed := false
	if p.Title != nil && *p.Title != w.Title {
		w.Title = *p.Title
		changed = true
	}
	if p.Position != nil && *p.Position != w.Position {
		w.Position = *p.Position
		changed = true
	}
	if p.Size != nil && *p.Size != w.Size {
		w.Size = *p.Size
		changed = true
	}
	if p.IsMinimized != nil && *p.IsMinimized != w.IsMinimized {
		w.IsMinimized = *p.IsMinimized
		changed = true
	}
	if p.IsMaximized != nil && *p.IsMaximized != w.IsMaximized {
		w.IsMaximized = *p.IsMaximized
		changed = true
	}
	return changed
}

// MovePatch sets only the position.
func MovePatch(p platform.Point) Patch {
	return Patch{Position: &p}
}

// ResizePatch sets only the size.
func ResizePatch(s platform.Size) Patch {
	return Patch{Size: &s}
}

// RenderGeometry is where the window is drawn: the full viewport while
// maximized, the stored geometry otherwise.
func RenderGeometry(w WindowInstance, viewport platform.Size) platform.Rect {
	if w.IsMaximized {
		return platform.Rect{X: 0, Y: 0, Width: max(viewport.Width, 0), Height: max(viewport.Height, 0)}
	}
	return w.Bounds()
}
