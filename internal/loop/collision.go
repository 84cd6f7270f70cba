package loop

import (
	"github.com/tomz197/pong/internal/object"
	"github.com/tomz197/pong/internal/physics"
)

// handleWalls resolves contact with the arena edges. It reports whether a
// point was scored, in which case paddle checks are skipped for this tick.
func (m *Match) handleWalls() bool {
	n, wall, ok := physics.WallNormal(m.Ball.X, m.Ball.Y, m.halfW, m.halfH, m.Ball.Radius)
	if !ok {
		return false
	}
	if wall.IsGutter() {
		m.scorePoint(wall)
		return true
	}

	// A ball still overlapping the wall after a bounce is already heading
	// back in and must not be reflected outward again. Normal play never
	// reaches that state; it guards hand-placed balls.
	v := physics.Vec{X: m.Ball.VX, Y: m.Ball.VY}
	if v.Dot(n) < 0 {
		m.Ball.Bounce(n)
		m.notify(Event{Kind: EventWallBounce, X: m.Ball.X, Y: m.Ball.Y})
	}
	return false
}

// handlePaddles bounces the ball off a paddle it is moving toward. Paddles
// always reflect horizontally, whatever the contact point.
func (m *Match) handlePaddles() {
	c := m.Ball.Circle()
	switch {
	case m.Ball.VX < 0 && physics.Intersects(c, m.Left.Rect()):
		m.paddleHit(m.Left, physics.NormalLeft)
	case m.Ball.VX > 0 && physics.Intersects(c, m.Right.Rect()):
		m.paddleHit(m.Right, physics.NormalRight)
	}
}

func (m *Match) paddleHit(p *object.Paddle, n physics.Vec) {
	m.Ball.Bounce(n)
	m.Ball.Accelerate()

	m.logger.Debug("paddle hit", "side", p.Side, "speed", m.Ball.Speed())
	m.notify(Event{Kind: EventPaddleHit, Side: p.Side, X: m.Ball.X, Y: m.Ball.Y})
}
