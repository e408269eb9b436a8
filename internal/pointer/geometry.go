package pointer

import (
	"math"

	"github.com/1broseidon/aperture/internal/platform"
	"github.com/1broseidon/aperture/internal/wm"
)

const (
	// GridSize is the snapping unit for drag and resize commits.
	GridSize = 20
	// HeaderHeight is the window title bar height used to keep a header
	// reachable at the bottom of the viewport. It is a fixed value rather
	// than the measured chrome height.
	HeaderHeight = 36
)

// Snap rounds v to the nearest multiple of GridSize, halves rounding up.
func Snap(v int) int {
	return int(math.Floor(float64(v)/GridSize+0.5)) * GridSize
}

// SnapPoint snaps both axes.
func SnapPoint(p platform.Point) platform.Point {
	return platform.Point{X: Snap(p.X), Y: Snap(p.Y)}
}

// SnapSize snaps both extents.
func SnapSize(s platform.Size) platform.Size {
	return platform.Size{Width: Snap(s.Width), Height: Snap(s.Height)}
}

// ClampPosition keeps a window of the given size inside the viewport,
// leaving the header visible at the bottom edge. Degenerate viewports pin
// the window at the origin instead of producing negative coordinates.
func ClampPosition(p platform.Point, size platform.Size, viewport platform.Size) platform.Point {
	return platform.Point{
		X: clamp(p.X, 0, viewport.Width-size.Width),
		Y: clamp(p.Y, 0, viewport.Height-HeaderHeight),
	}
}

// ClampSize enforces the minimum window extent.
func ClampSize(s platform.Size) platform.Size {
	return platform.Size{
		Width:  max(wm.MinWidth, s.Width),
		Height: max(wm.MinHeight, s.Height),
	}
}

// clamp bounds v to [lo, hi]; lo wins when hi < lo.
func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
