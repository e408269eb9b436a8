package tui

import (
	"github.com/1broseidon/aperture/internal/config"
	"github.com/1broseidon/aperture/internal/dock"
	"github.com/1broseidon/aperture/internal/palette"
	"github.com/1broseidon/aperture/internal/platform"
	"github.com/1broseidon/aperture/internal/pointer"
	"github.com/1broseidon/aperture/internal/wm"
)

const (
	controlCells = 3
	paletteRows  = 8
	paletteWidth = 56
)

// hitTester lays chrome out on the cell grid: each control is three cells
// wide, the resize handle is the bottom-right cell pair.
var hitTester = pointer.ChromeHitTester{
	ControlWidth: controlCells * platform.CellWidth,
	HandleSize:   platform.CellHeight,
}

// layout splits the screen into status bar, desktop and dock.
type layout struct {
	width, height int
	status        cellRect
	desk          cellRect
	dock          cellRect
	dockCfg       config.Dock
}

func computeLayout(width, height int, d config.Dock) layout {
	l := layout{width: width, height: height, dockCfg: d}
	l.status = cellRect{col: 0, row: 0, cols: width, rows: 1}
	body := cellRect{col: 0, row: 1, cols: width, rows: height - 1}
	iw := dock.IconCells(d.Size)

	switch d.Position {
	case config.DockLeft:
		l.dock = cellRect{col: 0, row: 1, cols: iw, rows: body.rows}
		if !d.AutoHide {
			body.col += iw
			body.cols -= iw
		}
	case config.DockRight:
		l.dock = cellRect{col: width - iw, row: 1, cols: iw, rows: body.rows}
		if !d.AutoHide {
			body.cols -= iw
		}
	default:
		l.dock = cellRect{col: 0, row: height - 1, cols: width, rows: 1}
		if !d.AutoHide {
			body.rows--
		}
	}
	if body.cols < 0 {
		body.cols = 0
	}
	if body.rows < 0 {
		body.rows = 0
	}
	l.desk = body
	return l
}

// viewport is the desktop area in units.
func (l layout) viewport() platform.Size {
	return platform.CellsToSize(l.desk.cols, l.desk.rows)
}

// deskPoint maps a screen cell to the desktop unit at the cell's centre.
func (l layout) deskPoint(col, row int) platform.Point {
	p := platform.CellToPoint(col-l.desk.col, row-l.desk.row)
	return p.Add(platform.Point{X: platform.CellWidth / 2, Y: platform.CellHeight / 2})
}

func (l layout) dockVertical() bool {
	return l.dockCfg.Position == config.DockLeft || l.dockCfg.Position == config.DockRight
}

// dockSlot returns the dock entry under a screen cell.
func (l layout) dockSlot(col, row, n int) (int, bool) {
	if !l.dock.contains(col, row) {
		return 0, false
	}
	var i int
	if l.dockVertical() {
		i = row - l.dock.row
	} else {
		off := col - l.dock.col - 1
		if off < 0 {
			return 0, false
		}
		i = off / dock.IconCells(l.dockCfg.Size)
	}
	if i < 0 || i >= n {
		return 0, false
	}
	return i, true
}

// windowCells is the cell span of a rendered window rect in desktop cells.
// A cell belongs to the window when its centre lies inside the rect, which
// is the same rule the hit tester applies to pointer input.
type windowCells struct {
	c0, c1, r0, r1 int // half-open
	headerEnd      int // first body row
}

func spanOf(rect platform.Rect) windowCells {
	hw, hh := platform.CellWidth/2, platform.CellHeight/2
	return windowCells{
		c0:        ceilDiv(rect.X-hw, platform.CellWidth),
		c1:        ceilDiv(rect.X+rect.Width-hw, platform.CellWidth),
		r0:        ceilDiv(rect.Y-hh, platform.CellHeight),
		r1:        ceilDiv(rect.Y+rect.Height-hh, platform.CellHeight),
		headerEnd: ceilDiv(rect.Y+pointer.HeaderHeight-hh, platform.CellHeight),
	}
}

// bodySize is the content area in cells, leaving one column of padding.
func (s windowCells) bodySize() (cols, rows int) {
	return s.c1 - s.c0 - 2, s.r1 - s.headerEnd
}

func controlGlyph(ctrl pointer.Control, maximized bool) rune {
	switch ctrl {
	case pointer.ControlMinimize:
		return '_'
	case pointer.ControlMaximize:
		if maximized {
			return '❐'
		}
		return '□'
	default:
		return '×'
	}
}

// controlCenter reports whether col is the middle cell of ctrl's button.
func controlCenter(rect platform.Rect, col int, ctrl pointer.Control) bool {
	cw := hitTester.ControlWidth
	start := rect.X + rect.Width - 3*cw + int(ctrl)*cw
	mid, _ := platform.PointToCell(platform.Point{X: start + cw/2})
	return col == mid
}

func drawWindow(c *canvas, l layout, w wm.WindowInstance, rect platform.Rect, active bool, lines []string) {
	s := spanOf(rect)
	header := styleHeader
	if active {
		header = styleHeaderActive
	}

	for row := s.r0; row < s.r1; row++ {
		for col := s.c0; col < s.c1; col++ {
			sc, sr := col+l.desk.col, row+l.desk.row
			if !l.desk.contains(sc, sr) {
				continue
			}
			p := platform.Point{
				X: col*platform.CellWidth + platform.CellWidth/2,
				Y: row*platform.CellHeight + platform.CellHeight/2,
			}
			region, ctrl, ok := hitTester.Hit(w, rect, p)
			if !ok {
				continue
			}
			switch region {
			case pointer.RegionHeader:
				ch := ' '
				if row != s.r0 {
					ch = '─'
				}
				c.set(sc, sr, ch, header)
			case pointer.RegionControl:
				st := styleControl
				if ctrl == pointer.ControlClose {
					st = styleControlClose
				}
				ch := ' '
				if row != s.r0 {
					ch, st = '─', header
				} else if controlCenter(rect, col, ctrl) {
					ch = controlGlyph(ctrl, w.IsMaximized)
				}
				c.set(sc, sr, ch, st)
			case pointer.RegionResizeHandle:
				ch := ' '
				if col == s.c1-1 && row == s.r1-1 {
					ch = '◢'
				}
				c.set(sc, sr, ch, styleHandle)
			default:
				ch := ' '
				br, bc := row-s.headerEnd, col-s.c0-1
				if br >= 0 && br < len(lines) {
					if rs := []rune(lines[br]); bc >= 0 && bc < len(rs) {
						ch = rs[bc]
					}
				}
				c.set(sc, sr, ch, styleBody)
			}
		}
	}

	// Title, stopping before the controls.
	ctrlStart, _ := platform.PointToCell(platform.Point{X: rect.X + rect.Width - 3*hitTester.ControlWidth})
	col := s.c0 + 1
	for _, r := range w.Title {
		if col >= ctrlStart || col >= s.c1 {
			break
		}
		if sc, sr := col+l.desk.col, s.r0+l.desk.row; l.desk.contains(sc, sr) {
			c.set(sc, sr, r, header)
		}
		col++
	}
}

func drawDock(c *canvas, l layout, items []dock.Indicator) {
	c.fill(l.dock, styleDock)
	iw := dock.IconCells(l.dockCfg.Size)
	for i, it := range items {
		st, marker := styleDock, ' '
		switch {
		case it.Active:
			st, marker = styleDockActive, '▪'
		case it.Minimized:
			st, marker = styleDockMinimized, '◦'
		case it.Running:
			st, marker = styleDockRunning, '•'
		}
		label := it.Icon + string(marker)
		if l.dockVertical() {
			row := l.dock.row + i
			if row >= l.dock.row+l.dock.rows {
				return
			}
			c.text(l.dock.col+(iw-2)/2, row, label, st, 2)
			continue
		}
		start := l.dock.col + 1 + i*iw
		if start+iw > l.dock.col+l.dock.cols {
			return
		}
		c.text(start+(iw-2)/2, l.dock.row, label, st, 2)
	}
}

// paletteGeometry places the palette box and its visible slice of results.
type paletteGeometry struct {
	box     cellRect
	offset  int
	visible int
}

func layoutPalette(l layout, p *palette.Palette) paletteGeometry {
	w := paletteWidth
	if w > l.width-4 {
		w = l.width - 4
	}
	if w < 20 {
		w = l.width
	}
	n := len(p.Filtered())
	visible := n
	if visible > paletteRows {
		visible = paletteRows
	}
	offset := 0
	if sel := p.Selected(); sel >= paletteRows {
		offset = sel - paletteRows + 1
	}
	listRows := visible
	if listRows == 0 {
		listRows = 1
	}
	return paletteGeometry{
		box:     cellRect{col: (l.width - w) / 2, row: l.status.row + 3, cols: w, rows: listRows + 3},
		offset:  offset,
		visible: visible,
	}
}

// itemAt returns the filtered index under a screen cell.
func (g paletteGeometry) itemAt(col, row int) (int, bool) {
	if !g.box.contains(col, row) {
		return 0, false
	}
	i := row - g.box.row - 2
	if i < 0 || i >= g.visible {
		return 0, false
	}
	return g.offset + i, true
}

func drawPalette(c *canvas, l layout, p *palette.Palette, query string, cursor int) {
	g := layoutPalette(l, p)
	b := g.box
	c.fill(b, stylePalette)
	inner := b.cols - 2

	c.text(b.col+1, b.row, "> ", stylePaletteDim, 2)
	if query == "" {
		c.text(b.col+3, b.row, "Search apps and commands", stylePaletteDim, inner-2)
	} else {
		c.text(b.col+3, b.row, query, stylePalette, inner-2)
	}
	cur := c.at(b.col+3+cursor, b.row)
	c.set(b.col+3+cursor, b.row, cur.ch, stylePaletteSelected)

	for col := b.col; col < b.col+b.cols; col++ {
		c.set(col, b.row+1, '─', stylePaletteDim)
	}

	items := p.Filtered()
	if len(items) == 0 {
		c.text(b.col+1, b.row+2, "No matching commands", stylePaletteDim, inner)
	}
	for i := 0; i < g.visible; i++ {
		idx := g.offset + i
		it := items[idx]
		row := b.row + 2 + i
		st, dim := stylePalette, stylePaletteDim
		if idx == p.Selected() {
			st, dim = stylePaletteSelected, stylePaletteSelected
			c.fill(cellRect{col: b.col, row: row, cols: b.cols, rows: 1}, st)
		}
		c.text(b.col+1, row, it.Icon+" "+it.Title, st, inner)
		if cat := []rune(it.Category); len(cat)+len([]rune(it.Title))+4 < inner {
			c.text(b.col+b.cols-1-len(cat), row, it.Category, dim, len(cat))
		}
	}

	hint := "↑↓ select  enter open  esc close"
	c.text(b.col+1, b.row+b.rows-1, hint, stylePaletteDim, inner)
}
