package pointer

import (
	"sync"

	"github.com/1broseidon/aperture/internal/platform"
	"github.com/1broseidon/aperture/internal/wm"
)

// Store is the window registry surface the controllers commit through.
type Store interface {
	Window(id string) (wm.WindowInstance, bool)
	FocusWindow(id string)
	UpdateWindowState(id string, p wm.Patch)
	Minimize(id string)
	ToggleMaximize(id string)
	CloseWindow(id string)
	Viewport() platform.Size
}

// Settings supplies the grid snapping flag, read on every commit.
type Settings interface {
	GridSnapping() bool
}

// Controller turns pointer events on one window's chrome into registry
// commits. Dragging and resizing are mutually exclusive for a window;
// controllers of different windows are independent.
type Controller struct {
	mu       sync.Mutex
	windowID string
	store    Store
	settings Settings
	capture  *Capture

	phase  Phase
	offset platform.Point // pointer minus window origin at drag start
	token  uint64
}

// NewController creates an idle controller for windowID.
func NewController(windowID string, store Store, settings Settings, capture *Capture) *Controller {
	if capture == nil {
		capture = NewCapture()
	}
	return &Controller{
		windowID: windowID,
		store:    store,
		settings: settings,
		capture:  capture,
	}
}

// WindowID returns the controlled window.
func (c *Controller) WindowID() string {
	return c.windowID
}

// Phase returns the current interaction phase.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// PointerDown handles a press at p on region. It returns true when a drag
// or resize began.
func (c *Controller) PointerDown(region Region, p platform.Point) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != PhaseIdle {
		return false
	}
	w, ok := c.store.Window(c.windowID)
	if !ok {
		return false
	}

	switch region {
	case RegionControl:
		// Buttons act on click; a press on them neither focuses nor drags.
		return false
	case RegionHeader:
		c.store.FocusWindow(c.windowID)
		if w.IsMaximized {
			return false
		}
		c.offset = p.Sub(w.Position)
		c.enterLocked(PhaseDragging, CursorGrabbing)
		return true
	case RegionResizeHandle:
		c.store.FocusWindow(c.windowID)
		if w.IsMaximized {
			return false
		}
		c.enterLocked(PhaseResizing, CursorResize)
		return true
	default:
		c.store.FocusWindow(c.windowID)
		return false
	}
}

// DoubleClick toggles maximize when the header is double-clicked.
func (c *Controller) DoubleClick(region Region) {
	if region != RegionHeader {
		return
	}
	if _, ok := c.store.Window(c.windowID); !ok {
		return
	}
	c.store.ToggleMaximize(c.windowID)
}

// Press activates a header button.
func (c *Controller) Press(ctrl Control) {
	switch ctrl {
	case ControlMinimize:
		c.store.Minimize(c.windowID)
	case ControlMaximize:
		c.store.ToggleMaximize(c.windowID)
	case ControlClose:
		c.Cancel()
		c.store.CloseWindow(c.windowID)
	}
}

// Cancel ends any active interaction without further commits. Positions
// already committed stay where they are.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.exitLocked()
}

func (c *Controller) enterLocked(phase Phase, cursor Cursor) {
	c.phase = phase
	c.token = c.capture.attach(cursor, c.onMove, c.onUp)
}

func (c *Controller) exitLocked() {
	if c.phase == PhaseIdle {
		return
	}
	c.capture.detach(c.token)
	c.token = 0
	c.phase = PhaseIdle
	c.offset = platform.Point{}
}

func (c *Controller) onMove(p platform.Point) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.phase {
	case PhaseDragging:
		c.dragLocked(p)
	case PhaseResizing:
		c.resizeLocked(p)
	}
}

func (c *Controller) onUp(platform.Point) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.exitLocked()
}

func (c *Controller) snapping() bool {
	return c.settings != nil && c.settings.GridSnapping()
}
