package platform

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// Terminal cells are mapped onto desktop units so that window geometry keeps
// the same scale whether the desktop is drawn in a terminal or elsewhere.
const (
	CellWidth  = 10
	CellHeight = 20
)

// ViewportSource reports the current usable desktop extent.
type ViewportSource interface {
	Viewport() (Size, error)
}

// FixedViewport always reports the same extent.
type FixedViewport Size

// Viewport implements ViewportSource.
func (f FixedViewport) Viewport() (Size, error) {
	return Size(f), nil
}

// TerminalViewport derives the viewport from the controlling terminal size.
// ReservedRows are excluded from the height (dock row, status line).
type TerminalViewport struct {
	File         *os.File
	ReservedRows int
}

// Viewport implements ViewportSource.
func (t TerminalViewport) Viewport() (Size, error) {
	f := t.File
	if f == nil {
		f = os.Stdout
	}
	cols, rows, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return Size{}, fmt.Errorf("failed to read terminal size: %w", err)
	}
	return CellsToSize(cols, rows-t.ReservedRows), nil
}

// CellsToSize converts a terminal extent into desktop units.
func CellsToSize(cols, rows int) Size {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	return Size{Width: cols * CellWidth, Height: rows * CellHeight}
}

// CellToPoint converts a terminal cell coordinate into desktop units.
func CellToPoint(col, row int) Point {
	return Point{X: col * CellWidth, Y: row * CellHeight}
}

// PointToCell converts desktop units into the terminal cell containing them.
func PointToCell(p Point) (col, row int) {
	return floorDiv(p.X, CellWidth), floorDiv(p.Y, CellHeight)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// FallbackViewport reads Source and reports Fallback whenever the read fails
// or yields an empty extent, e.g. a terminal source without a TTY.
type FallbackViewport struct {
	Source   ViewportSource
	Fallback Size
}

// Viewport implements ViewportSource. It never returns an error.
func (f FallbackViewport) Viewport() (Size, error) {
	if f.Source == nil {
		return f.Fallback, nil
	}
	size, err := f.Source.Viewport()
	if err != nil || size.Empty() {
		return f.Fallback, nil
	}
	return size, nil
}

// Close releases the wrapped source if it holds a connection.
func (f FallbackViewport) Close() {
	if c, ok := f.Source.(interface{ Close() }); ok {
		c.Close()
	}
}

// ResolveViewport picks a source by name. Supported names are "fixed",
// "terminal" and "x11". Non-fixed sources report fallback whenever they
// cannot be read; an X server that cannot be reached at all is an error.
func ResolveViewport(source string, fallback Size) (ViewportSource, error) {
	switch source {
	case "", "fixed":
		return FixedViewport(fallback), nil
	case "terminal":
		return FallbackViewport{Source: TerminalViewport{ReservedRows: 1}, Fallback: fallback}, nil
	case "x11":
		xv, err := NewX11Viewport()
		if err != nil {
			return nil, err
		}
		return FallbackViewport{Source: xv, Fallback: fallback}, nil
	default:
		return nil, fmt.Errorf("unknown viewport source %q", source)
	}
}
