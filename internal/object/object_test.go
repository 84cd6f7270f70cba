package object

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/pong/internal/config"
	"github.com/tomz197/pong/internal/physics"
)

func newTestBall(seed int64) *Ball {
	return NewBall(config.Default().Ball, rand.New(rand.NewSource(seed)))
}

func TestBallStep(t *testing.T) {
	b := &Ball{X: 1, Y: 2, VX: 3, VY: -4}
	b.Step()
	assert.Equal(t, 4.0, b.X)
	assert.Equal(t, -2.0, b.Y)
}

func TestBallBounce(t *testing.T) {
	b := &Ball{VX: 5, VY: 2}
	b.Bounce(physics.NormalRight)
	assert.InDelta(t, -5, b.VX, 1e-12)
	assert.InDelta(t, 2, b.VY, 1e-12)

	b.Bounce(physics.NormalBottom)
	assert.InDelta(t, -5, b.VX, 1e-12)
	assert.InDelta(t, -2, b.VY, 1e-12)
}

func TestBallReset(t *testing.T) {
	cfg := config.Default().Ball
	for seed := int64(0); seed < 50; seed++ {
		b := newTestBall(seed)
		b.X, b.Y, b.VX, b.VY = 100, -50, -20, 3

		b.Reset(1)
		assert.Zero(t, b.X)
		assert.Zero(t, b.Y)
		assert.Greater(t, b.VX, 0.0)
		assert.InDelta(t, cfg.InitSpeed, b.Speed(), 1e-12)

		b.Reset(-1)
		assert.Less(t, b.VX, 0.0)
		assert.InDelta(t, cfg.InitSpeed, b.Speed(), 1e-12)
		assert.NotZero(t, b.VY, "serve is never flat")
	}
}

func TestBallResetAngles(t *testing.T) {
	b := newTestBall(7)
	seen := map[int]bool{}
	for i := 0; i < 500; i++ {
		b.Reset(1)
		deg := int(math.Round(math.Atan2(b.VY, b.VX) * 180 / math.Pi))
		seen[deg] = true
	}
	for deg := range seen {
		assert.Contains(t, []int{-30, -20, -15, 15, 20, 30}, deg)
	}
	assert.Len(t, seen, 6)
}

func TestBallAccelerate(t *testing.T) {
	b := newTestBall(1)
	b.VX, b.VY = -7, 0

	prev := b.Speed()
	for i := 0; i < 100; i++ {
		b.Accelerate()
		speed := b.Speed()
		require.GreaterOrEqual(t, speed, prev)
		require.LessOrEqual(t, speed, b.SpeedCap+1e-9)
		prev = speed
	}
	assert.InDelta(t, b.SpeedCap, b.Speed(), 1e-9)
	assert.Less(t, b.VX, 0.0, "direction preserved")
	assert.InDelta(t, 0, b.VY, 1e-9)
}

func TestBallAcceleratePreservesDirection(t *testing.T) {
	b := &Ball{VX: 3, VY: 4, SpeedIncrease: 2, SpeedCap: 100}
	b.Accelerate()
	assert.InDelta(t, 6, b.VX, 1e-9)
	assert.InDelta(t, 8, b.VY, 1e-9)
}

func TestBallAccelerateAtRest(t *testing.T) {
	b := &Ball{SpeedIncrease: 1.06, SpeedCap: 22}
	b.Accelerate()
	assert.Zero(t, b.VX)
	assert.Zero(t, b.VY)
}

func TestBallAccelerateAboveCap(t *testing.T) {
	b := &Ball{VX: 30, SpeedIncrease: 1.06, SpeedCap: 22}
	b.Accelerate()
	assert.Equal(t, 30.0, b.VX)
}

func TestPaddleMoveClamps(t *testing.T) {
	cfg := config.Default()
	halfH := cfg.HalfHeight()
	left, right := NewPaddles(cfg, cfg.HalfWidth())
	maxY := halfH - cfg.Paddle.Height/2

	for i := 0; i < 100; i++ {
		left.Move(1000, halfH)
		require.LessOrEqual(t, left.Y, maxY)
	}
	assert.Equal(t, maxY, left.Y)

	for i := 0; i < 100; i++ {
		right.Move(-cfg.Paddle.Speed, halfH)
		require.GreaterOrEqual(t, right.Y, -maxY)
	}
	assert.Equal(t, -maxY, right.Y)

	right.Move(cfg.Paddle.Speed, halfH)
	assert.Equal(t, -maxY+cfg.Paddle.Speed, right.Y)
}

func TestNewPaddles(t *testing.T) {
	cfg := config.Default()
	left, right := NewPaddles(cfg, cfg.HalfWidth())

	assert.Equal(t, SideLeft, left.Side)
	assert.Equal(t, SideRight, right.Side)
	assert.Equal(t, -440.0, left.X)
	assert.Equal(t, 440.0, right.X)
	assert.Zero(t, left.Y)
	assert.Zero(t, right.Y)
}

func TestPaddleRect(t *testing.T) {
	p := &Paddle{X: -440, Y: 12, Width: 20, Height: 100, Epsilon: 1}
	assert.Equal(t, physics.Rect{CX: -440, CY: 12, W: 21, H: 101}, p.Rect())
}

func TestScoreboard(t *testing.T) {
	var s Scoreboard
	assert.Equal(t, SideNone, s.Leader())

	s.Award(SideLeft)
	s.Award(SideLeft)
	s.Award(SideRight)
	s.Award(SideNone)
	assert.Equal(t, 2, s.Of(SideLeft))
	assert.Equal(t, 1, s.Of(SideRight))
	assert.Equal(t, SideLeft, s.Leader())

	s.Reset()
	assert.Equal(t, Scoreboard{}, s)
}

func TestSide(t *testing.T) {
	assert.Equal(t, SideRight, SideLeft.Opponent())
	assert.Equal(t, SideLeft, SideRight.Opponent())
	assert.Equal(t, SideNone, SideNone.Opponent())
	assert.Equal(t, -1, SideLeft.Direction())
	assert.Equal(t, 1, SideRight.Direction())
	assert.Equal(t, "left", SideLeft.String())
}

func TestRandomDirection(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	seen := map[int]bool{}
	for i := 0; i < 100; i++ {
		seen[RandomDirection(rng)] = true
	}
	assert.Equal(t, map[int]bool{-1: true, 1: true}, seen)
}
