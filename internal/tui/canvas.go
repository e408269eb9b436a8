package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type cell struct {
	ch    rune
	style styleID
}

// canvas is a grid of single-width cells, flushed to styled lines.
type canvas struct {
	cols, rows int
	cells      []cell
}

func newCanvas(cols, rows int, fill styleID) *canvas {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	c := &canvas{cols: cols, rows: rows, cells: make([]cell, cols*rows)}
	for i := range c.cells {
		c.cells[i] = cell{ch: ' ', style: fill}
	}
	return c
}

func (c *canvas) set(col, row int, ch rune, style styleID) {
	if col < 0 || row < 0 || col >= c.cols || row >= c.rows {
		return
	}
	c.cells[row*c.cols+col] = cell{ch: ch, style: style}
}

func (c *canvas) at(col, row int) cell {
	if col < 0 || row < 0 || col >= c.cols || row >= c.rows {
		return cell{}
	}
	return c.cells[row*c.cols+col]
}

// text writes s from (col,row), stopping after maxCols cells.
func (c *canvas) text(col, row int, s string, style styleID, maxCols int) {
	i := 0
	for _, r := range s {
		if i >= maxCols {
			return
		}
		c.set(col+i, row, r, style)
		i++
	}
}

// fill paints a rectangle.
func (c *canvas) fill(r cellRect, style styleID) {
	for row := r.row; row < r.row+r.rows; row++ {
		for col := r.col; col < r.col+r.cols; col++ {
			c.set(col, row, ' ', style)
		}
	}
}

// lines renders each row, grouping runs that share a style.
func (c *canvas) lines(styles []lipgloss.Style) []string {
	out := make([]string, 0, c.rows)
	var run strings.Builder
	for row := 0; row < c.rows; row++ {
		var sb strings.Builder
		start := 0
		for start < c.cols {
			st := c.cells[row*c.cols+start].style
			run.Reset()
			end := start
			for end < c.cols && c.cells[row*c.cols+end].style == st {
				run.WriteRune(c.cells[row*c.cols+end].ch)
				end++
			}
			sb.WriteString(styles[st].Render(run.String()))
			start = end
		}
		out = append(out, sb.String())
	}
	return out
}

// plain returns row text without styling.
func (c *canvas) plain(row int) string {
	if row < 0 || row >= c.rows {
		return ""
	}
	rs := make([]rune, c.cols)
	for col := 0; col < c.cols; col++ {
		rs[col] = c.cells[row*c.cols+col].ch
	}
	return string(rs)
}

// cellRect is a rectangle in terminal cells.
type cellRect struct {
	col, row, cols, rows int
}

func (r cellRect) contains(col, row int) bool {
	return col >= r.col && col < r.col+r.cols && row >= r.row && row < r.row+r.rows
}

func ceilDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) == (b < 0) {
		q++
	}
	return q
}
