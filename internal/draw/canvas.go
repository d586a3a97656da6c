package draw

import (
	"math"
	"strings"

	"github.com/tomz197/invaders/internal/physics"
)

// Canvas is a colour drawing buffer with 2x vertical resolution using
// half-block characters. Game objects draw in logical coordinates which are
// scaled to the terminal size.
//
// Render only repaints cells that changed since the previous frame, so text
// drawn over the canvas must be reported with MarkTextDirty to be erased.
type Canvas struct {
	termWidth      int     // Actual terminal columns
	termHeight     int     // Actual terminal rows
	subPixelHeight int     // termHeight * 2
	pixels         []Color // [y * termWidth + x]

	prev  []Color // pixels as last rendered
	stale []bool  // per terminal cell, forces a repaint on next Render

	logicalWidth  float64
	logicalHeight float64
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight
}

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal pixels.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping logical
// size. A changed size forces a full repaint.
func (c *Canvas) Resize(termWidth, termHeight int) {
	termWidth = max(termWidth, 1)
	termHeight = max(termHeight, 1)

	if termWidth != c.termWidth || termHeight != c.termHeight || c.pixels == nil {
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = termHeight * 2
		c.pixels = make([]Color, c.subPixelHeight*termWidth)
		c.prev = make([]Color, c.subPixelHeight*termWidth)
		c.stale = make([]bool, termHeight*termWidth)
		c.ForceRedraw()
	}

	c.scaleX = float64(c.termWidth) / c.logicalWidth
	c.scaleY = float64(c.subPixelHeight) / c.logicalHeight
}

// Clear resets all pixels in the canvas.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// ForceRedraw makes the next Render repaint every cell.
func (c *Canvas) ForceRedraw() {
	for i := range c.stale {
		c.stale[i] = true
	}
}

// MarkTextDirty records that text was written over width cells starting at
// the 1-based canvas position (col, row).
func (c *Canvas) MarkTextDirty(col, row, width int) {
	r := row - 1
	if r < 0 || r >= c.termHeight {
		return
	}
	start := max(col-1, 0)
	end := min(col-1+width, c.termWidth)
	for x := start; x < end; x++ {
		c.stale[r*c.termWidth+x] = true
	}
}

// FillRect paints a logical rectangle. Anything visible covers at least one
// sub-pixel so thin objects like bullets never vanish at small sizes.
func (c *Canvas) FillRect(r physics.Rect, col Color) {
	if r.W <= 0 || r.H <= 0 || col == ColorNone {
		return
	}

	x0 := int(math.Round(float64(r.X) * c.scaleX))
	x1 := int(math.Round(float64(r.X+r.W) * c.scaleX))
	y0 := int(math.Round(float64(r.Y) * c.scaleY))
	y1 := int(math.Round(float64(r.Y+r.H) * c.scaleY))
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}

	x0, x1 = max(x0, 0), min(x1, c.termWidth)
	y0, y1 = max(y0, 0), min(y1, c.subPixelHeight)
	for y := y0; y < y1; y++ {
		row := c.pixels[y*c.termWidth : (y+1)*c.termWidth]
		for x := x0; x < x1; x++ {
			row[x] = col
		}
	}
}

// Render writes every changed cell to cw using half-block glyphs from p.
// Consecutive changed cells on a row share one cursor move.
func (c *Canvas) Render(cw *ChunkWriter, p *Palette) {
	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := topOffset + c.termWidth
		cursorAt := -1

		for col := 0; col < c.termWidth; col++ {
			top := c.pixels[topOffset+col]
			bottom := c.pixels[bottomOffset+col]
			cell := row*c.termWidth + col

			if !c.stale[cell] && c.prev[topOffset+col] == top && c.prev[bottomOffset+col] == bottom {
				continue
			}

			if cursorAt != col {
				cw.MoveCursor(col+1, row+1)
			}
			cw.WriteString(p.cell(top, bottom))
			cursorAt = col + 1

			c.prev[topOffset+col] = top
			c.prev[bottomOffset+col] = bottom
			c.stale[cell] = false
		}
	}
}

// RenderBorder draws a box around the canvas when the terminal is larger than
// the render area. Sides are only drawn where the centering offset leaves room.
func (c *Canvas) RenderBorder(cw *ChunkWriter) {
	offCol, offRow := cw.Offset()
	hasH := offCol >= 1
	hasV := offRow >= 1

	bar := strings.Repeat("─", c.termWidth)
	if hasV {
		top, bottom := 0, c.termHeight+1
		if hasH {
			cw.WriteAt(0, top, "┌"+bar+"┐")
			cw.WriteAt(0, bottom, "└"+bar+"┘")
		} else {
			cw.WriteAt(1, top, bar)
			cw.WriteAt(1, bottom, bar)
		}
	}
	if hasH {
		for row := 1; row <= c.termHeight; row++ {
			cw.WriteAt(0, row, "│")
			cw.WriteAt(c.termWidth+1, row, "│")
		}
	}
}

// TerminalWidth returns the canvas column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// LogicalToTerminal converts logical coordinates to a 1-based canvas position (col, row).
// Used for placing text overlays at positions matching canvas-drawn objects.
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px := int(math.Round(x * c.scaleX))
	py := int(math.Round(y * c.scaleY))
	return px + 1, py/2 + 1
}
