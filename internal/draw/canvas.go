package draw

import (
	"fmt"
	"io"
	"math"
	"strings"
)

// Canvas is a drawing buffer with 2x vertical resolution using half-block characters.
// Supports scaling from logical coordinates to actual terminal pixels.
// The top reserved rows are left to text (HUD) and not covered by the scene.
// Only cells that changed since the last Render are written.
type Canvas struct {
	termWidth      int     // Actual terminal columns
	termHeight     int     // Actual terminal rows
	subPixelHeight int     // termHeight * 2
	pixels         []Color // Flat slice: [y * termWidth + x]
	rendered       []cell  // What the terminal currently shows, per cell
	reserved       int     // Rows at the top kept free for text

	// Scaling from logical to pixel coordinates
	logicalWidth  float64
	logicalHeight float64
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // scene sub-pixels / logicalHeight

	// Offset for centering the render area when terminal is larger than max resolution.
	// These are 0-based terminal offsets (columns/rows to skip).
	offsetCol int
	offsetRow int

	renderBuf strings.Builder
}

// cell is what one terminal cell shows: two stacked sub-pixels.
type cell struct {
	top, bottom Color
	valid       bool // False forces a rewrite on the next Render
}

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal pixels.
// logicalWidth/Height define the coordinate space used by game objects.
// termWidth/Height are the actual terminal dimensions.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
// A size change invalidates everything on screen.
func (c *Canvas) Resize(termWidth, termHeight int) {
	termWidth = max(termWidth, 0)
	termHeight = max(termHeight, 0)

	if termWidth != c.termWidth || termHeight != c.termHeight || c.pixels == nil {
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = termHeight * 2
		c.pixels = make([]Color, c.subPixelHeight*termWidth)
		c.rendered = make([]cell, termHeight*termWidth)
	}
	c.updateScale()
}

// SetReservedRows keeps the top n rows free of scene pixels.
func (c *Canvas) SetReservedRows(n int) {
	if n != c.reserved {
		c.reserved = n
		c.ForceRedraw()
	}
	c.updateScale()
}

func (c *Canvas) updateScale() {
	sceneRows := max(c.termHeight-c.reserved, 0)
	c.scaleX = float64(c.termWidth) / c.logicalWidth
	c.scaleY = float64(sceneRows*2) / c.logicalHeight
}

// SetOffset sets the column and row offset for centering the canvas.
// Offsets are 0-based terminal positions: the canvas starts at (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// Clear resets all pixels in the canvas.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// ForceRedraw makes the next Render rewrite every cell.
func (c *Canvas) ForceRedraw() {
	clear(c.rendered)
}

// MarkTextDirty marks n cells starting at the 1-based (col, row) as overwritten
// by text, so the next Render repaints them.
func (c *Canvas) MarkTextDirty(col, row, n int) {
	r := row - 1
	if r < 0 || r >= c.termHeight {
		return
	}
	for x := max(col-1, 0); x < col-1+n && x < c.termWidth; x++ {
		c.rendered[r*c.termWidth+x].valid = false
	}
}

// setPixel sets a pixel at actual sub-pixel coordinates (no scaling).
func (c *Canvas) setPixel(x, y int, col Color) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = col
	}
}

// pixelSpan maps a logical interval [from, from+size) onto pixel indices.
// Anything with a positive size covers at least one pixel.
func pixelSpan(from, size, scale float64, origin int) (lo, hi int) {
	lo = int(math.Floor(from*scale)) + origin
	hi = int(math.Ceil((from+size)*scale)) - 1 + origin
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

// sceneBox converts a logical rect to an inclusive pixel box, clipped to the scene.
func (c *Canvas) sceneBox(x, y, w, h float64) (x0, y0, x1, y1 int, ok bool) {
	if w <= 0 || h <= 0 {
		return 0, 0, 0, 0, false
	}
	top := c.reserved * 2
	x0, x1 = pixelSpan(x, w, c.scaleX, 0)
	y0, y1 = pixelSpan(y, h, c.scaleY, top)

	x0, x1 = max(x0, 0), min(x1, c.termWidth-1)
	y0, y1 = max(y0, top), min(y1, c.subPixelHeight-1)
	return x0, y0, x1, y1, x0 <= x1 && y0 <= y1
}

// FillRect fills a logical rectangle.
func (c *Canvas) FillRect(x, y, w, h float64, col Color) {
	x0, y0, x1, y1, ok := c.sceneBox(x, y, w, h)
	if !ok {
		return
	}
	for py := y0; py <= y1; py++ {
		row := c.pixels[py*c.termWidth:]
		for px := x0; px <= x1; px++ {
			row[px] = col
		}
	}
}

// StrokeRect draws the one-pixel outline of a logical rectangle.
func (c *Canvas) StrokeRect(x, y, w, h float64, col Color) {
	x0, y0, x1, y1, ok := c.sceneBox(x, y, w, h)
	if !ok {
		return
	}
	for px := x0; px <= x1; px++ {
		c.setPixel(px, y0, col)
		c.setPixel(px, y1, col)
	}
	for py := y0; py <= y1; py++ {
		c.setPixel(x0, py, col)
		c.setPixel(x1, py, col)
	}
}

// Render writes every cell that changed since the last Render using
// half-block characters. Cells that became empty are blanked.
// Render into a Frame to have the output split into packet-sized writes.
func (c *Canvas) Render(w io.Writer) {
	c.renderBuf.Reset()

	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := topOffset + c.termWidth

		for col := 0; col < c.termWidth; col++ {
			next := cell{
				top:    c.pixels[topOffset+col],
				bottom: c.pixels[bottomOffset+col],
				valid:  true,
			}
			idx := row*c.termWidth + col
			if c.rendered[idx] == next {
				continue
			}
			c.rendered[idx] = next

			fmt.Fprintf(&c.renderBuf, "\033[%d;%dH", row+1+c.offsetRow, col+1+c.offsetCol)
			writeCell(&c.renderBuf, next.top, next.bottom)
		}
	}

	io.WriteString(w, c.renderBuf.String())
}

// writeCell emits one half-block cell with its colors and resets attributes.
func writeCell(b *strings.Builder, top, bottom Color) {
	switch {
	case top == ColorNone && bottom == ColorNone:
		b.WriteString(ColorReset)
		b.WriteRune(BlockEmpty)
		return
	case top == bottom:
		b.WriteString(top.Fg())
		b.WriteRune(BlockFull)
	case bottom == ColorNone:
		b.WriteString(top.Fg())
		b.WriteRune(BlockUpperHalf)
	case top == ColorNone:
		b.WriteString(bottom.Fg())
		b.WriteRune(BlockLowerHalf)
	default:
		b.WriteString(top.Fg())
		b.WriteString(bottom.Bg())
		b.WriteRune(BlockUpperHalf)
	}
	b.WriteString(ColorReset)
}

// RenderBorder draws a box border around the canvas area when the terminal
// exceeds the max render resolution on either axis.
// Draws horizontal borders when there is vertical offset, vertical borders
// when there is horizontal offset, and corners when both are present.
func (c *Canvas) RenderBorder(w io.Writer, col Color) {
	hasH := c.offsetCol >= 1 // Room for left/right vertical bars
	hasV := c.offsetRow >= 1 // Room for top/bottom horizontal bars
	if !hasH && !hasV {
		return
	}

	// Border positions (1-based terminal coordinates)
	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1
	line := strings.Repeat("─", c.termWidth)

	var buf strings.Builder
	buf.WriteString(col.Fg())

	if hasV {
		if hasH {
			fmt.Fprintf(&buf, "\033[%d;%dH┌%s┐", top, left, line)
			fmt.Fprintf(&buf, "\033[%d;%dH└%s┘", bottom, left, line)
		} else {
			fmt.Fprintf(&buf, "\033[%d;%dH%s", top, c.offsetCol+1, line)
			fmt.Fprintf(&buf, "\033[%d;%dH%s", bottom, c.offsetCol+1, line)
		}
	}

	if hasH {
		for row := c.offsetRow + 1; row <= c.offsetRow+c.termHeight; row++ {
			fmt.Fprintf(&buf, "\033[%d;%dH│\033[%d;%dH│", row, left, row, right)
		}
	}

	buf.WriteString(ColorReset)
	io.WriteString(w, buf.String())
}

// LogicalWidth returns the logical width (target resolution).
func (c *Canvas) LogicalWidth() float64 {
	return c.logicalWidth
}

// LogicalHeight returns the logical height (target resolution).
func (c *Canvas) LogicalHeight() float64 {
	return c.logicalHeight
}

// TerminalWidth returns the actual terminal column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the actual terminal row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// LogicalToTerminal converts logical coordinates to 1-based terminal position (col, row).
// This is useful for placing text overlays at positions matching canvas-drawn objects.
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px := int(math.Floor(x * c.scaleX))
	py := int(math.Floor(y*c.scaleY)) + c.reserved*2
	return px + 1, py/2 + 1
}
