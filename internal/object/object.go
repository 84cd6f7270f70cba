// Package object holds the physical state of the game pieces: the ball, the
// two paddles and the scoreboard. Nothing here knows how it is drawn.
package object

// Side identifies a player's half of the arena.
type Side int

const (
	SideNone Side = iota
	SideLeft
	SideRight
)

func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return "none"
	}
}

// Opponent returns the other side.
func (s Side) Opponent() Side {
	switch s {
	case SideLeft:
		return SideRight
	case SideRight:
		return SideLeft
	}
	return SideNone
}

// Direction is the horizontal sign pointing toward s: -1 left, +1 right.
func (s Side) Direction() int {
	switch s {
	case SideLeft:
		return -1
	case SideRight:
		return 1
	}
	return 0
}
