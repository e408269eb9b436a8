package wm

import (
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/1broseidon/aperture/internal/apps"
	"github.com/1broseidon/aperture/internal/platform"
)

// Registry owns the open windows and the z-order allocator. It is the only
// place window state changes. The focused window is never stored; it is
// whichever instance holds the highest ZIndex.
type Registry struct {
	mu       sync.RWMutex
	windows  map[string]*WindowInstance
	byApp    map[string]string // appID -> window id
	last     platform.Point    // last cascade position handed out
	viewport platform.ViewportSource
	revision uint64
	newID    func() string
}

// NewRegistry creates an empty registry. viewport is consulted when
// cascading new windows; nil means a zero viewport.
func NewRegistry(viewport platform.ViewportSource) *Registry {
	return &Registry{
		windows:  make(map[string]*WindowInstance),
		byApp:    make(map[string]string),
		last:     CascadeOrigin,
		viewport: viewport,
		newID:    func() string { return "win-" + uuid.NewString() },
	}
}

// Viewport returns the current viewport, or a zero size if unavailable.
func (r *Registry) Viewport() platform.Size {
	if r.viewport == nil {
		return platform.Size{}
	}
	size, err := r.viewport.Viewport()
	if err != nil {
		return platform.Size{}
	}
	return size
}

// OpenWindow opens app, or restores and focuses its existing window.
// It returns the id of the window that is now focused.
func (r *Registry) OpenWindow(app apps.AppDefinition) string {
	viewport := r.Viewport()

	r.mu.Lock()
	defer r.mu.Unlock()

	if id, ok := r.byApp[app.ID]; ok {
		if w := r.windows[id]; w != nil {
			r.focusLocked(w)
			return id
		}
	}

	pos := r.nextCascade(viewport)
	size := DefaultSize
	if app.DefaultSize != nil {
		size = *app.DefaultSize
	}
	size.Width = max(size.Width, MinWidth)
	size.Height = max(size.Height, MinHeight)

	w := &WindowInstance{
		ID:       r.newID(),
		AppID:    app.ID,
		Title:    app.Name,
		Position: pos,
		Size:     size,
		ZIndex:   r.topZLocked() + 1,
	}
	r.windows[w.ID] = w
	r.byApp[app.ID] = w.ID
	r.revision++
	return w.ID
}

// nextCascade steps the cascade and restarts it past half the viewport.
func (r *Registry) nextCascade(viewport platform.Size) platform.Point {
	next := platform.Point{X: r.last.X + CascadeStep, Y: r.last.Y + CascadeStep}
	if next.X > viewport.Width/2 || next.Y > viewport.Height/2 {
		next = CascadeOrigin
	}
	r.last = next
	return next
}

// CloseWindow removes the window. Unknown ids are ignored.
func (r *Registry) CloseWindow(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.windows[id]
	if !ok {
		return
	}
	delete(r.windows, id)
	if r.byApp[w.AppID] == id {
		delete(r.byApp, w.AppID)
	}
	r.revision++
}

// FocusWindow raises the window to the top and restores it if minimized.
// Focusing the window that is already on top does not touch the z-order.
func (r *Registry) FocusWindow(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if w, ok := r.windows[id]; ok {
		r.focusLocked(w)
	}
}

func (r *Registry) focusLocked(w *WindowInstance) {
	top := r.topZLocked()
	changed := false
	if w.ZIndex != top || r.sharesTopLocked(w) {
		w.ZIndex = top + 1
		changed = true
	}
	if w.IsMinimized {
		w.IsMinimized = false
		changed = true
	}
	if changed {
		r.revision++
	}
}

// sharesTopLocked guards the distinct-z invariant should two windows ever
// hold the same top value.
func (r *Registry) sharesTopLocked(w *WindowInstance) bool {
	for _, other := range r.windows {
		if other != w && other.ZIndex == w.ZIndex {
			return true
		}
	}
	return false
}

// UpdateWindowState merges p into the window. No geometry validation is
// done here; callers clamp first. Unknown ids are ignored.
func (r *Registry) UpdateWindowState(id string, p Patch) {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.windows[id]
	if !ok {
		return
	}
	if p.apply(w) {
		r.revision++
	}
}

// Minimize hides the window without changing its z-order.
func (r *Registry) Minimize(id string) {
	minimized := true
	r.UpdateWindowState(id, Patch{IsMinimized: &minimized})
}

// ToggleMaximize flips the maximized flag. Stored geometry is untouched so
// restoring returns the window to where it was.
func (r *Registry) ToggleMaximize(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if w, ok := r.windows[id]; ok {
		w.IsMaximized = !w.IsMaximized
		r.revision++
	}
}

// Window returns a copy of the window with the given id.
func (r *Registry) Window(id string) (WindowInstance, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	w, ok := r.windows[id]
	if !ok {
		return WindowInstance{}, false
	}
	return *w, true
}

// ByApp returns the window for appID, if one is open.
func (r *Registry) ByApp(appID string) (WindowInstance, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byApp[appID]
	if !ok {
		return WindowInstance{}, false
	}
	return *r.windows[id], true
}

// Snapshot returns copies of every window ordered bottom to top.
func (r *Registry) Snapshot() []WindowInstance {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sortedLocked(false)
}

// RenderList returns the visible (non-minimized) windows ordered bottom to top.
func (r *Registry) RenderList() []WindowInstance {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sortedLocked(true)
}

func (r *Registry) sortedLocked(visibleOnly bool) []WindowInstance {
	out := make([]WindowInstance, 0, len(r.windows))
	for _, w := range r.windows {
		if visibleOnly && w.IsMinimized {
			continue
		}
		out = append(out, *w)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ZIndex < out[j].ZIndex
	})
	return out
}

// Active returns the window with the highest ZIndex.
func (r *Registry) Active() (WindowInstance, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var top *WindowInstance
	for _, w := range r.windows {
		if top == nil || w.ZIndex > top.ZIndex {
			top = w
		}
	}
	if top == nil {
		return WindowInstance{}, false
	}
	return *top, true
}

// IsActive reports whether id is the focused window.
func (r *Registry) IsActive(id string) bool {
	active, ok := r.Active()
	return ok && active.ID == id
}

// TopZIndex returns the highest ZIndex, or BaseZIndex when empty.
func (r *Registry) TopZIndex() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.topZLocked()
}

func (r *Registry) topZLocked() int {
	top := BaseZIndex
	for _, w := range r.windows {
		if w.ZIndex > top {
			top = w.ZIndex
		}
	}
	return top
}

// Len returns the number of windows, minimized ones included.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.windows)
}

// Revision increases on every change that affects rendering. Calls that
// leave state untouched (focusing the top window, empty patches) keep it.
func (r *Registry) Revision() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.revision
}
