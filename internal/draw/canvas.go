package draw

import (
	"io"
	"math"
	"strconv"
)

// Canvas is a drawing buffer with 2x vertical resolution using half-block characters.
// Supports scaling from logical coordinates to actual terminal pixels.
// Render only emits cells that changed since the previous Render.
type Canvas struct {
	termWidth      int    // Actual terminal columns
	termHeight     int    // Actual terminal rows
	subPixelHeight int    // termHeight * 2
	pixels         []bool // Flat slice: [y * termWidth + x] - true if pixel is set
	shown          []rune // Last rune written per terminal cell

	// Scaling from logical to pixel coordinates
	logicalWidth  float64
	logicalHeight float64
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// Offset for centering the render area when terminal is larger than max resolution.
	// These are 0-based terminal offsets (columns/rows to skip).
	offsetCol int
	offsetRow int
}

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal pixels.
// logicalWidth/Height define the coordinate space used by callers (origin top-left, y down).
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
// The terminal is assumed blank afterwards.
func (c *Canvas) Resize(termWidth, termHeight int) {
	termWidth = max(termWidth, 1)
	termHeight = max(termHeight, 1)
	subPixelHeight := termHeight * 2

	if termWidth != c.termWidth || termHeight != c.termHeight || c.pixels == nil {
		c.pixels = make([]bool, subPixelHeight*termWidth)
		c.shown = make([]rune, termHeight*termWidth)
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = subPixelHeight
	}
	c.ForceRedraw()

	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(subPixelHeight) / c.logicalHeight
}

// ForceRedraw forgets what was rendered so the next Render repaints every
// set cell. Call it after the screen has been cleared.
func (c *Canvas) ForceRedraw() {
	for i := range c.shown {
		c.shown[i] = BlockEmpty
	}
}

// SetOffset sets the column and row offset for centering the canvas.
// Offsets are 0-based terminal positions: the canvas starts at (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	c.offsetCol = col
	c.offsetRow = row
}

// Clear resets all pixels in the canvas.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// setPixel sets a pixel at actual terminal coordinates (no scaling).
func (c *Canvas) setPixel(x, y int) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = true
	}
}

// pixel reports whether the pixel at terminal coordinates is set.
func (c *Canvas) pixel(x, y int) bool {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return false
	}
	return c.pixels[y*c.termWidth+x]
}

// SetFloat sets a pixel using float logical coordinates (applies scaling).
func (c *Canvas) SetFloat(x, y float64) {
	c.setPixel(int(math.Round(x*c.scaleX)), int(math.Round(y*c.scaleY)))
}

// DrawLine draws a line on the canvas using Bresenham's algorithm.
// Coordinates are in logical space and get scaled to pixels.
func (c *Canvas) DrawLine(p1, p2 Point) {
	x1 := int(math.Round(p1.X * c.scaleX))
	y1 := int(math.Round(p1.Y * c.scaleY))
	x2 := int(math.Round(p2.X * c.scaleX))
	y2 := int(math.Round(p2.Y * c.scaleY))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy
	for {
		c.setPixel(x1, y1)
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// DrawDashedLine draws a vertical dashed line at logical x from y0 to y1,
// alternating dash and gap logical units.
func (c *Canvas) DrawDashedLine(x, y0, y1, dash, gap float64) {
	if dash <= 0 {
		return
	}
	for y := y0; y < y1; y += dash + gap {
		c.DrawLine(Point{x, y}, Point{x, math.Min(y+dash, y1)})
	}
}

// FillRect fills the logical rectangle from (x0, y0) up to (x1, y1). At least one pixel
// is set so thin shapes never vanish at small terminal sizes.
func (c *Canvas) FillRect(x0, y0, x1, y1 float64) {
	px0 := int(math.Round(x0 * c.scaleX))
	px1 := max(int(math.Round(x1*c.scaleX))-1, px0)
	py0 := int(math.Round(y0 * c.scaleY))
	py1 := max(int(math.Round(y1*c.scaleY))-1, py0)

	for y := py0; y <= py1; y++ {
		for x := px0; x <= px1; x++ {
			c.setPixel(x, y)
		}
	}
}

// FillCircle fills a disc of logical radius r centred on (cx, cy). Pixels
// whose centre lies inside the ellipse the disc maps to are set; the pixel
// under the centre is always set.
func (c *Canvas) FillCircle(cx, cy, r float64) {
	pcx, pcy := cx*c.scaleX, cy*c.scaleY
	rx, ry := r*c.scaleX, r*c.scaleY

	c.setPixel(int(math.Floor(pcx)), int(math.Floor(pcy)))
	if rx <= 0 || ry <= 0 {
		return
	}

	for y := int(math.Floor(pcy - ry)); y <= int(math.Ceil(pcy+ry)); y++ {
		for x := int(math.Floor(pcx - rx)); x <= int(math.Ceil(pcx+rx)); x++ {
			dx := (float64(x) + 0.5 - pcx) / rx
			dy := (float64(y) + 0.5 - pcy) / ry
			if dx*dx+dy*dy <= 1 {
				c.setPixel(x, y)
			}
		}
	}
}

// cell returns the half-block rune for a terminal cell.
func (c *Canvas) cell(col, row int) rune {
	top := c.pixel(col, row*2)
	bottom := c.pixel(col, row*2+1)
	switch {
	case top && bottom:
		return BlockFull
	case top:
		return BlockUpperHalf
	case bottom:
		return BlockLowerHalf
	}
	return BlockEmpty
}

// Render writes the cells that differ from the previous Render using
// half-block characters.
func (c *Canvas) Render(w io.Writer) error {
	var out []byte
	for row := 0; row < c.termHeight; row++ {
		for col := 0; col < c.termWidth; col++ {
			ch := c.cell(col, row)
			idx := row*c.termWidth + col
			if c.shown[idx] == ch {
				continue
			}
			c.shown[idx] = ch

			out = append(out, "\033["...)
			out = strconv.AppendInt(out, int64(row+1+c.offsetRow), 10)
			out = append(out, ';')
			out = strconv.AppendInt(out, int64(col+1+c.offsetCol), 10)
			out = append(out, 'H')
			out = append(out, string(ch)...)
		}
	}
	if len(out) == 0 {
		return nil
	}
	_, err := w.Write(out)
	return err
}

// RenderBorder draws a box border around the canvas area when the terminal
// exceeds the max render resolution on either axis. cw must carry the same
// offset as the canvas.
func (c *Canvas) RenderBorder(cw *ChunkWriter) {
	hasH := c.offsetCol >= 1 // Room for left/right vertical bars
	hasV := c.offsetRow >= 1 // Room for top/bottom horizontal bars

	// Border positions relative to the canvas (1-based)
	left, right := 0, c.termWidth+1
	top, bottom := 0, c.termHeight+1

	bar := make([]rune, c.termWidth)
	for i := range bar {
		bar[i] = '─'
	}

	if hasV {
		if hasH {
			cw.MoveCursor(left, top)
			cw.WriteString("┌" + string(bar) + "┐")
			cw.MoveCursor(left, bottom)
			cw.WriteString("└" + string(bar) + "┘")
		} else {
			cw.MoveCursor(1, top)
			cw.WriteString(string(bar))
			cw.MoveCursor(1, bottom)
			cw.WriteString(string(bar))
		}
	}
	if hasH {
		for row := 1; row <= c.termHeight; row++ {
			cw.MoveCursor(left, row)
			cw.WriteString("│")
			cw.MoveCursor(right, row)
			cw.WriteString("│")
		}
	}
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
	px := int(math.Round(x * c.scaleX))
	py := int(math.Round(y * c.scaleY))
	return px + 1, py/2 + 1
}
