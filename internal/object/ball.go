package object

import (
	"math"
	"math/rand"

	"github.com/tomz197/pong/internal/config"
	"github.com/tomz197/pong/internal/physics"
)

// serveAngles are the launch angles (degrees) used by Reset. None is
// horizontal so a fresh rally never runs flat between the paddles.
var serveAngles = []float64{-30, -20, -15, 15, 20, 30}

// Ball is the single ball in play.
type Ball struct {
	X, Y   float64 // Centre, arena coordinates
	VX, VY float64 // Displacement per tick
	Radius float64

	InitSpeed     float64 // Speed after every reset
	SpeedIncrease float64 // Multiplier applied on each paddle hit
	SpeedCap      float64 // Accelerate never exceeds this

	rng *rand.Rand
}

// NewBall creates a ball at the origin, served toward a random side.
func NewBall(cfg config.BallConfig, rng *rand.Rand) *Ball {
	b := &Ball{
		Radius:        cfg.Radius,
		InitSpeed:     cfg.InitSpeed,
		SpeedIncrease: cfg.SpeedIncrease,
		SpeedCap:      cfg.SpeedCap,
		rng:           rng,
	}
	b.Reset(RandomDirection(rng))
	return b
}

// Step advances the ball by one tick. Walls are detected by the loop
// afterwards, so the ball may overlap a wall for a single tick.
func (b *Ball) Step() {
	b.X += b.VX
	b.Y += b.VY
}

// Bounce reflects the velocity across the surface normal n.
func (b *Ball) Bounce(n physics.Vec) {
	v := physics.Reflect(physics.Vec{X: b.VX, Y: b.VY}, n)
	b.VX, b.VY = v.X, v.Y
}

// Speed returns the current velocity magnitude.
func (b *Ball) Speed() float64 {
	return math.Hypot(b.VX, b.VY)
}

// Accelerate scales the speed by SpeedIncrease, capped at SpeedCap, keeping
// the direction. A ball at rest has angle 0 by convention and stays at rest.
// A ball already above the cap keeps its speed.
func (b *Ball) Accelerate() {
	speed := b.Speed()
	if speed >= b.SpeedCap {
		return
	}
	speed = math.Min(speed*b.SpeedIncrease, b.SpeedCap)

	theta := 0.0
	if b.VX != 0 || b.VY != 0 {
		theta = math.Atan2(b.VY, b.VX)
	}
	b.VX = speed * math.Cos(theta)
	b.VY = speed * math.Sin(theta)
}

// Reset puts the ball back at the centre, served at InitSpeed with a
// horizontal sign equal to direction (+1 right, -1 left).
func (b *Ball) Reset(direction int) {
	b.X, b.Y = 0, 0

	deg := serveAngles[b.intn(len(serveAngles))]
	rad := deg * math.Pi / 180
	sign := 1.0
	if direction < 0 {
		sign = -1.0
	}
	b.VX = b.InitSpeed * math.Cos(rad) * sign
	b.VY = b.InitSpeed * math.Sin(rad)
}

// Circle returns the ball's collider.
func (b *Ball) Circle() physics.Circle {
	return physics.Circle{X: b.X, Y: b.Y, R: b.Radius}
}

func (b *Ball) intn(n int) int {
	if b.rng == nil {
		return rand.Intn(n)
	}
	return b.rng.Intn(n)
}

// RandomDirection returns +1 or -1.
func RandomDirection(rng *rand.Rand) int {
	n := 0
	if rng == nil {
		n = rand.Intn(2)
	} else {
		n = rng.Intn(2)
	}
	if n == 0 {
		return -1
	}
	return 1
}
