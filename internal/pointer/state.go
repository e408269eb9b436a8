package pointer

// Phase is the interaction state of one window.
type Phase int

const (
	// PhaseIdle means no pointer interaction is in progress.
	PhaseIdle Phase = iota
	// PhaseDragging means the header was grabbed and moves reposition the window.
	PhaseDragging
	// PhaseResizing means the corner handle was grabbed and moves resize the window.
	PhaseResizing
)

// String returns the string representation of the phase
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseDragging:
		return "dragging"
	case PhaseResizing:
		return "resizing"
	default:
		return "unknown"
	}
}

// Region is the part of a window's chrome a press landed on.
type Region int

const (
	RegionBody Region = iota
	RegionHeader
	RegionControl
	RegionResizeHandle
)

func (r Region) String() string {
	switch r {
	case RegionBody:
		return "body"
	case RegionHeader:
		return "header"
	case RegionControl:
		return "control"
	case RegionResizeHandle:
		return "resize-handle"
	default:
		return "unknown"
	}
}

// Control is a header button.
type Control int

const (
	ControlMinimize Control = iota
	ControlMaximize
	ControlClose
)

// Cursor is the pointer styling requested while a capture is active.
type Cursor int

const (
	CursorDefault Cursor = iota
	CursorGrabbing
	CursorResize
)

func (c Cursor) String() string {
	switch c {
	case CursorGrabbing:
		return "grabbing"
	case CursorResize:
		return "nwse-resize"
	default:
		return "default"
	}
}
