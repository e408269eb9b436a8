package pointer

import (
	"sync"

	"github.com/1broseidon/aperture/internal/platform"
)

// Capture is the desktop-wide pointer stream. Controllers attach move and
// release listeners when a drag or resize begins and detach when it ends;
// nothing is attached while every window is idle.
type Capture struct {
	mu        sync.Mutex
	nextToken uint64
	entries   []captureEntry
}

type captureEntry struct {
	token  uint64
	cursor Cursor
	move   func(platform.Point)
	up     func(platform.Point)
}

// NewCapture creates an empty capture.
func NewCapture() *Capture {
	return &Capture{}
}

func (c *Capture) attach(cursor Cursor, move, up func(platform.Point)) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextToken++
	c.entries = append(c.entries, captureEntry{
		token:  c.nextToken,
		cursor: cursor,
		move:   move,
		up:     up,
	})
	return c.nextToken
}

func (c *Capture) detach(token uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, e := range c.entries {
		if e.token == token {
			c.entries = append(c.entries[:i], c.entries[i+1:]...)
			return
		}
	}
}

// Move delivers a pointer-move to every attached listener.
func (c *Capture) Move(p platform.Point) {
	c.mu.Lock()
	entries := make([]captureEntry, len(c.entries))
	copy(entries, c.entries)
	c.mu.Unlock()

	for _, e := range entries {
		if e.move != nil {
			e.move(p)
		}
	}
}

// Up delivers a pointer-release. Release listeners fire once: every entry is
// detached before its handler runs.
func (c *Capture) Up(p platform.Point) {
	c.mu.Lock()
	entries := c.entries
	c.entries = nil
	c.mu.Unlock()

	for _, e := range entries {
		if e.up != nil {
			e.up(p)
		}
	}
}

// Active reports whether any listener is attached.
func (c *Capture) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries) > 0
}

// Cursor returns the cursor of the most recent capture, or the default.
func (c *Capture) Cursor() Cursor {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.entries) == 0 {
		return CursorDefault
	}
	return c.entries[len(c.entries)-1].cursor
}

// SelectionDisabled reports whether text selection should be suppressed.
func (c *Capture) SelectionDisabled() bool {
	return c.Active()
}
