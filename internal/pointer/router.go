package pointer

import (
	"github.com/1broseidon/aperture/internal/platform"
	"github.com/1broseidon/aperture/internal/wm"
)

// HitTester maps a point inside a window's rendered rect to a chrome region.
type HitTester interface {
	Hit(w wm.WindowInstance, rect platform.Rect, p platform.Point) (Region, Control, bool)
}

// ChromeHitTester lays chrome out in desktop units: a HeaderHeight title bar
// with three ControlWidth buttons at its right end, and a HandleSize square
// resize handle in the bottom-right corner (absent while maximized).
type ChromeHitTester struct {
	ControlWidth int
	HandleSize   int
}

// DefaultHitTester matches the chrome drawn by pixel-based renderers.
var DefaultHitTester = ChromeHitTester{ControlWidth: 28, HandleSize: 16}

// Hit implements HitTester.
func (h ChromeHitTester) Hit(w wm.WindowInstance, rect platform.Rect, p platform.Point) (Region, Control, bool) {
	if !rect.Contains(p) {
		return 0, 0, false
	}
	if p.Y < rect.Y+HeaderHeight {
		right := rect.X + rect.Width
		if p.X >= right-3*h.ControlWidth {
			idx := (p.X - (right - 3*h.ControlWidth)) / h.ControlWidth
			return RegionControl, Control(idx), true
		}
		return RegionHeader, 0, true
	}
	if !w.IsMaximized &&
		p.X >= rect.X+rect.Width-h.HandleSize &&
		p.Y >= rect.Y+rect.Height-h.HandleSize {
		return RegionResizeHandle, 0, true
	}
	return RegionBody, 0, true
}

// RouterStore adds the render list to Store.
type RouterStore interface {
	Store
	RenderList() []wm.WindowInstance
}

// Router owns one Controller per visible window and funnels desktop pointer
// events to the right one.
type Router struct {
	store       RouterStore
	settings    Settings
	capture     *Capture
	hit         HitTester
	controllers map[string]*Controller
}

// NewRouter creates a router. A nil hit tester uses DefaultHitTester.
func NewRouter(store RouterStore, settings Settings, hit HitTester) *Router {
	if hit == nil {
		hit = DefaultHitTester
	}
	return &Router{
		store:       store,
		settings:    settings,
		capture:     NewCapture(),
		hit:         hit,
		controllers: make(map[string]*Controller),
	}
}

// Capture returns the shared pointer capture.
func (r *Router) Capture() *Capture {
	return r.capture
}

// Controller returns the controller for windowID, creating it on first use.
func (r *Router) Controller(windowID string) *Controller {
	c, ok := r.controllers[windowID]
	if !ok {
		c = NewController(windowID, r.store, r.settings, r.capture)
		r.controllers[windowID] = c
	}
	return c
}

// Target hit-tests the render list from the top.
func (r *Router) Target(p platform.Point) (wm.WindowInstance, Region, Control, bool) {
	render := r.store.RenderList()
	viewport := r.store.Viewport()
	for i := len(render) - 1; i >= 0; i-- {
		w := render[i]
		rect := wm.RenderGeometry(w, viewport)
		if region, ctrl, ok := r.hit.Hit(w, rect, p); ok {
			return w, region, ctrl, true
		}
	}
	return wm.WindowInstance{}, 0, 0, false
}

// Down routes a press. It returns the window hit, if any.
func (r *Router) Down(p platform.Point) (string, Region) {
	r.prune()
	w, region, ctrl, ok := r.Target(p)
	if !ok {
		return "", RegionBody
	}
	c := r.Controller(w.ID)
	if region == RegionControl {
		c.Press(ctrl)
		if ctrl == ControlClose {
			delete(r.controllers, w.ID)
		}
		return w.ID, region
	}
	c.PointerDown(region, p)
	return w.ID, region
}

// Move forwards a pointer-move to the active captures.
func (r *Router) Move(p platform.Point) {
	r.capture.Move(p)
}

// Up forwards a pointer-release to the active captures.
func (r *Router) Up(p platform.Point) {
	r.capture.Up(p)
}

// DoubleClick routes a double-click to the window under p.
func (r *Router) DoubleClick(p platform.Point) {
	w, region, _, ok := r.Target(p)
	if !ok {
		return
	}
	r.Controller(w.ID).DoubleClick(region)
}

// prune drops controllers whose windows are gone.
func (r *Router) prune() {
	for id, c := range r.controllers {
		if _, ok := r.store.Window(id); !ok {
			c.Cancel()
			delete(r.controllers, id)
		}
	}
}
