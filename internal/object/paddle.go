package object

import (
	"github.com/tomz197/pong/internal/config"
	"github.com/tomz197/pong/internal/physics"
)

// Paddle is a vertical bat fixed in x that slides along y.
type Paddle struct {
	Side   Side
	X      float64 // Fixed centre x
	Y      float64 // Centre y, kept within [-MaxY, MaxY]
	Width  float64
	Height float64

	Epsilon float64 // Collision padding added to Rect
}

// NewPaddles creates the left and right paddles for an arena of half width
// halfW, each PaddleConfig.Margin in from its gutter.
func NewPaddles(cfg config.Config, halfW float64) (left, right *Paddle) {
	mk := func(side Side, x float64) *Paddle {
		return &Paddle{
			Side:    side,
			X:       x,
			Width:   cfg.Paddle.Width,
			Height:  cfg.Paddle.Height,
			Epsilon: cfg.CollisionEpsilon,
		}
	}
	return mk(SideLeft, -halfW+cfg.Paddle.Margin), mk(SideRight, halfW-cfg.Paddle.Margin)
}

// MaxY is the furthest the centre can travel from 0 with the paddle fully
// inside an arena of half height halfH.
func (p *Paddle) MaxY(halfH float64) float64 {
	return halfH - p.Height/2
}

// Move shifts the paddle by dy and clamps it into the arena.
func (p *Paddle) Move(dy, halfH float64) {
	maxY := p.MaxY(halfH)
	p.Y = physics.Clamp(p.Y+dy, -maxY, maxY)
}

// Rect returns the collision rectangle, padded by Epsilon on both axes.
func (p *Paddle) Rect() physics.Rect {
	return physics.Rect{
		CX: p.X,
		CY: p.Y,
		W:  p.Width + p.Epsilon,
		H:  p.Height + p.Epsilon,
	}
}
