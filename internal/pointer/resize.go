package pointer

import (
	"github.com/1broseidon/aperture/internal/platform"
	"github.com/1broseidon/aperture/internal/wm"
)

// ResizeSize computes the committed size for a pointer at p on a window
// whose origin is at origin. The minimum extent always wins.
func ResizeSize(p, origin platform.Point, snap bool) platform.Size {
	size := platform.Size{Width: p.X - origin.X, Height: p.Y - origin.Y}
	if snap {
		size = SnapSize(size)
	}
	return ClampSize(size)
}

func (c *Controller) resizeLocked(p platform.Point) {
	w, ok := c.store.Window(c.windowID)
	if !ok {
		c.exitLocked()
		return
	}
	size := ResizeSize(p, w.Position, c.snapping())
	c.store.UpdateWindowState(c.windowID, wm.ResizePatch(size))
}
