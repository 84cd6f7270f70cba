package loop

import (
	"github.com/tomz197/pong/internal/input"
	"github.com/tomz197/pong/internal/object"
)

// Apply handles one input event. Call it only between ticks.
func (m *Match) Apply(ev input.Event) {
	m.mustBeReady()
	if m.State == StateTerminated {
		return
	}

	switch ev.Kind {
	case input.MoveUp:
		m.MovePaddle(paddleSide(ev.Side), m.cfg.Paddle.Speed)
	case input.MoveDown:
		m.MovePaddle(paddleSide(ev.Side), -m.cfg.Paddle.Speed)
	case input.TogglePause:
		m.TogglePause()
	case input.Restart:
		m.Restart()
	case input.Quit:
		m.Quit()
	}
}

func paddleSide(s input.Side) object.Side {
	switch s {
	case input.Left:
		return object.SideLeft
	case input.Right:
		return object.SideRight
	}
	return object.SideNone
}

// MovePaddle shifts the paddle on side by dy (positive is up), clamped to
// the arena. Paddles move while paused too.
func (m *Match) MovePaddle(side object.Side, dy float64) {
	m.mustBeReady()
	p := m.Paddle(side)
	if p == nil {
		return
	}
	before := p.Y
	p.Move(dy, m.halfH)
	if p.Y != before {
		m.notify(Event{Kind: EventPaddleMoved, Side: side, X: p.X, Y: p.Y})
	}
}

// TogglePause flips between running and paused.
func (m *Match) TogglePause() {
	m.mustBeReady()
	switch m.State {
	case StateRunning:
		m.State = StatePaused
		m.logger.Info("paused", "tick", m.TickCount)
		m.notify(Event{Kind: EventPaused})
	case StatePaused:
		m.State = StateRunning
		m.logger.Info("resumed", "tick", m.TickCount)
		m.notify(Event{Kind: EventResumed})
	}
}

// Restart zeroes the scores, clears any winner and serves a fresh ball
// toward the right player. Running or paused stays as it was; paddles keep
// their positions.
func (m *Match) Restart() {
	m.mustBeReady()
	m.Score.Reset()
	m.Winner = object.SideNone
	m.Ball.Reset(1)

	m.logger.Info("restarted", "state", m.State)
	m.notify(Event{Kind: EventRestarted})
	m.notify(Event{Kind: EventScoreChanged})
	m.notifyBall(EventBallMoved)
}

// Quit terminates the match; Run returns at the next tick boundary.
func (m *Match) Quit() {
	m.mustBeReady()
	if m.State == StateTerminated {
		return
	}
	m.State = StateTerminated
	m.logger.Info("quit", "tick", m.TickCount, "left", m.Score.Left, "right", m.Score.Right)
}
