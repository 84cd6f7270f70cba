package object

// Scoreboard holds the two scores. The loop increments the counters directly;
// deciding when a match ends is the loop's job too.
type Scoreboard struct {
	Left  int
	Right int
}

// Reset zeroes both scores.
func (s *Scoreboard) Reset() {
	s.Left = 0
	s.Right = 0
}

// Award adds a point to side.
func (s *Scoreboard) Award(side Side) {
	switch side {
	case SideLeft:
		s.Left++
	case SideRight:
		s.Right++
	}
}

// Of returns the score of side.
func (s *Scoreboard) Of(side Side) int {
	switch side {
	case SideLeft:
		return s.Left
	case SideRight:
		return s.Right
	}
	return 0
}

// Leader returns the side ahead, or SideNone when level.
func (s *Scoreboard) Leader() Side {
	switch {
	case s.Left > s.Right:
		return SideLeft
	case s.Right > s.Left:
		return SideRight
	}
	return SideNone
}
