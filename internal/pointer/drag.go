package pointer

import (
	"github.com/1broseidon/aperture/internal/platform"
	"github.com/1broseidon/aperture/internal/wm"
)

// DragPosition computes the committed position for a pointer at p.
func DragPosition(p, offset platform.Point, size, viewport platform.Size, snap bool) platform.Point {
	pos := ClampPosition(p.Sub(offset), size, viewport)
	if snap {
		pos = SnapPoint(pos)
	}
	return pos
}

func (c *Controller) dragLocked(p platform.Point) {
	w, ok := c.store.Window(c.windowID)
	if !ok {
		// Closed mid-drag: stop listening.
		c.exitLocked()
		return
	}
	pos := DragPosition(p, c.offset, w.Size, c.store.Viewport(), c.snapping())
	c.store.UpdateWindowState(c.windowID, wm.MovePatch(pos))
}
