package loop

import (
	"fmt"
	"io"
	"strings"

	"github.com/tomz197/pong/internal/config"
	"github.com/tomz197/pong/internal/draw"
	"github.com/tomz197/pong/internal/object"
)

// Terminal is a Surface that draws the arena on an ANSI terminal with the
// half-block canvas. The arena keeps its logical size and is scaled to fit.
type Terminal struct {
	cfg      config.Config
	writer   io.Writer
	cw       *draw.ChunkWriter
	canvas   *draw.Canvas
	sizeFunc draw.TermSizeFunc

	termWidth, termHeight int
	lastState             State
	lastWinner            object.Side
	lastScore             object.Scoreboard
}

// NewTerminal creates a terminal surface writing to w. sizeFunc reports the
// terminal size; nil uses os.Stdout.
func NewTerminal(w io.Writer, cfg config.Config, sizeFunc draw.TermSizeFunc) *Terminal {
	if sizeFunc == nil {
		sizeFunc = draw.DefaultTermSizeFunc
	}
	return &Terminal{
		cfg:       cfg,
		writer:    w,
		cw:        draw.NewChunkWriter(w, 0, 0),
		canvas:    draw.NewScaledCanvas(1, 1, float64(cfg.Width), float64(cfg.Height)),
		sizeFunc:  sizeFunc,
		lastState: StateRunning,
	}
}

// Width returns the arena width in logical units.
func (t *Terminal) Width() int { return t.cfg.Width }

// Height returns the arena height in logical units.
func (t *Terminal) Height() int { return t.cfg.Height }

// Open hides the cursor and clears the screen.
func (t *Terminal) Open() {
	draw.HideCursor(t.writer)
	draw.ClearScreen(t.writer)
}

// Close clears the screen and restores the cursor.
func (t *Terminal) Close() {
	draw.ClearScreen(t.writer)
	draw.ShowCursor(t.writer)
}

// PresentFrame draws the match and flushes it to the terminal.
func (t *Terminal) PresentFrame(m *Match) error {
	if err := t.updateScreen(m); err != nil {
		return err
	}

	t.canvas.Clear()
	drawArena(t.canvas, m)

	if err := t.canvas.Render(t.cw); err != nil {
		return err
	}
	t.canvas.RenderBorder(t.cw)
	drawUI(t.cw, t.canvas, m)

	return t.cw.Flush()
}

// updateScreen follows terminal resizes and wipes the screen when an overlay
// message appears or disappears or a score changes, so shorter text never
// leaves stale characters behind.
func (t *Terminal) updateScreen(m *Match) error {
	w, h, err := t.sizeFunc()
	if err != nil {
		return fmt.Errorf("terminal size: %w", err)
	}

	resized := w != t.termWidth || h != t.termHeight
	changed := m.State != t.lastState || m.Winner != t.lastWinner || m.Score != t.lastScore
	t.lastState, t.lastWinner, t.lastScore = m.State, m.Winner, m.Score
	if !resized && !changed {
		return nil
	}

	draw.ClearScreen(t.cw)
	if resized {
		t.termWidth, t.termHeight = w, h
		renderW, renderH, offCol, offRow := draw.ClampTermSize(w, h, MaxTermWidth, MaxTermHeight)
		t.canvas.Resize(renderW, renderH)
		t.canvas.SetOffset(offCol, offRow)
		t.cw.SetOffset(offCol, offRow)
	}
	t.canvas.ForceRedraw()
	return nil
}

// drawArena draws the divider, paddles and ball. Arena y points up; canvas y
// points down from the top-left corner.
func drawArena(c *draw.Canvas, m *Match) {
	hw, hh := m.HalfWidth(), m.HalfHeight()
	toCanvas := func(x, y float64) (float64, float64) {
		return x + hw, hh - y
	}

	c.DrawDashedLine(hw, 0, 2*hh, dividerDash, dividerGap)

	for _, p := range []*object.Paddle{m.Left, m.Right} {
		x, y := toCanvas(p.X, p.Y)
		c.FillRect(x-p.Width/2, y-p.Height/2, x+p.Width/2, y+p.Height/2)
	}

	bx, by := toCanvas(m.Ball.X, m.Ball.Y)
	c.FillCircle(bx, by, m.Ball.Radius)
}

// drawUI draws the scores and any overlay message on top of the canvas.
func drawUI(cw *draw.ChunkWriter, c *draw.Canvas, m *Match) {
	hw := m.HalfWidth()
	leftCol, _ := c.LogicalToTerminal(hw/2, 0)
	rightCol, _ := c.LogicalToTerminal(hw*3/2, 0)
	cw.WriteCentered(leftCol, 2, fmt.Sprint(m.Score.Left))
	cw.WriteCentered(rightCol, 2, fmt.Sprint(m.Score.Right))

	centerCol := c.TerminalWidth()/2 + 1
	centerRow := c.TerminalHeight() / 2

	switch {
	case m.Over():
		drawMessage(cw, centerCol, centerRow,
			strings.ToUpper(m.Winner.String())+" PLAYER WINS",
			fmt.Sprintf("%d : %d", m.Score.Left, m.Score.Right),
			"r new match   q quit")
	case m.State == StatePaused:
		drawMessage(cw, centerCol, centerRow,
			"PAUSED",
			"w/s left   ↑/↓ right",
			"space resume   r restart   q quit")
	}
}

// drawMessage writes lines centred on (col, row), title first.
func drawMessage(cw *draw.ChunkWriter, col, row int, lines ...string) {
	row -= len(lines) / 2
	for i, line := range lines {
		cw.WriteCentered(col, row+i*2, line)
	}
}
