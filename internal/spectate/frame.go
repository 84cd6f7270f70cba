package spectate

import (
	"github.com/tomz197/pong/internal/config"
	"github.com/tomz197/pong/internal/loop"
	"github.com/tomz197/pong/internal/object"
)

// Point is a position in arena coordinates (origin at the centre, y up).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Frame is the snapshot sent to spectators after every match event.
type Frame struct {
	Event string `json:"event"`

	Width        int     `json:"width"`
	Height       int     `json:"height"`
	BallRadius   float64 `json:"ball_radius"`
	PaddleWidth  float64 `json:"paddle_width"`
	PaddleHeight float64 `json:"paddle_height"`

	Ball  Point `json:"ball"`
	Left  Point `json:"left"`
	Right Point `json:"right"`

	ScoreLeft  int    `json:"score_left"`
	ScoreRight int    `json:"score_right"`
	Paused     bool   `json:"paused"`
	Winner     string `json:"winner,omitempty"`
}

// newFrame returns the frame of a freshly set up match.
func newFrame(cfg config.Config) Frame {
	left, right := object.NewPaddles(cfg, cfg.HalfWidth())
	return Frame{
		Event:        "hello",
		Width:        cfg.Width,
		Height:       cfg.Height,
		BallRadius:   cfg.Ball.Radius,
		PaddleWidth:  cfg.Paddle.Width,
		PaddleHeight: cfg.Paddle.Height,
		Left:         Point{X: left.X, Y: left.Y},
		Right:        Point{X: right.X, Y: right.Y},
	}
}

// apply folds a match event into the frame.
func (f *Frame) apply(e loop.Event) {
	f.Event = e.Kind.String()
	f.ScoreLeft, f.ScoreRight = e.Left, e.Right

	switch e.Kind {
	case loop.EventBallMoved, loop.EventWallBounce, loop.EventPaddleHit:
		f.Ball = Point{X: e.X, Y: e.Y}
	case loop.EventPaddleMoved:
		switch e.Side {
		case object.SideLeft:
			f.Left = Point{X: e.X, Y: e.Y}
		case object.SideRight:
			f.Right = Point{X: e.X, Y: e.Y}
		}
	case loop.EventPaused:
		f.Paused = true
	case loop.EventResumed:
		f.Paused = false
	case loop.EventMatchOver:
		f.Winner = e.Side.String()
	case loop.EventRestarted:
		f.Winner = ""
	}
}
