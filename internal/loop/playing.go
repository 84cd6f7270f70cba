package loop

import (
	"github.com/tomz197/pong/internal/object"
	"github.com/tomz197/pong/internal/physics"
)

// Tick advances the match by one step: move the ball, resolve walls, then
// paddles. It is a no-op unless the match is running and undecided.
func (m *Match) Tick() {
	m.mustBeReady()
	if m.State != StateRunning || m.Over() {
		return
	}
	m.TickCount++

	m.Ball.Step()
	if !m.handleWalls() {
		m.handlePaddles()
	}
	m.notifyBall(EventBallMoved)
}

// scorePoint awards a point for a breach of the gutter wall and serves the
// ball back toward the side that lost it.
func (m *Match) scorePoint(wall physics.Wall) {
	loser := object.SideLeft
	if wall == physics.WallRight {
		loser = object.SideRight
	}
	scorer := loser.Opponent()

	m.Score.Award(scorer)
	m.Ball.Reset(loser.Direction())

	m.logger.Info("point scored", "scorer", scorer, "left", m.Score.Left, "right", m.Score.Right)
	m.notify(Event{Kind: EventPoint, Side: scorer})
	m.notify(Event{Kind: EventScoreChanged})

	if m.cfg.MaxScore > 0 && m.Score.Of(scorer) >= m.cfg.MaxScore {
		m.Winner = scorer
		m.logger.Info("match over", "winner", scorer, "left", m.Score.Left, "right", m.Score.Right)
		m.notify(Event{Kind: EventMatchOver, Side: scorer})
	}
}
